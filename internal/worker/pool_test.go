package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var counter int64
	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()

	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
	if atomic.LoadInt64(&counter) != 20 {
		t.Errorf("Expected 20 executions, got %d", counter)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	var counter int64
	pool.Submit(&countJob{counter: &counter})
	pool.Submit(&countJob{counter: &counter, fail: true})

	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	pool.Start()

	var counter int64
	pool.Submit(&countJob{counter: &counter})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
