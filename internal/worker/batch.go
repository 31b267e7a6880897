package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nfetools/conciliador/internal/pipeline"
)

// Correlator processes one batch folder. Satisfied by *pipeline.Pipeline.
type Correlator interface {
	ProcessFolder(ctx context.Context, folder string) (*pipeline.Result, error)
}

// FolderJob correlates a single batch folder.
type FolderJob struct {
	Folder     string
	Correlator Correlator
}

// Execute runs the correlation for the folder.
func (j *FolderJob) Execute(ctx context.Context) Result {
	result, err := j.Correlator.ProcessFolder(ctx, j.Folder)
	if err != nil {
		return &FolderResult{Folder: j.Folder, Error: err}
	}
	return &FolderResult{Folder: j.Folder, Report: result.Report}
}

// FolderResult is the outcome of one folder job.
type FolderResult struct {
	Folder string
	Report *pipeline.Report
	Error  error
}

// GetError returns the job error, if any.
func (r *FolderResult) GetError() error {
	return r.Error
}

// BatchProcessor correlates many batch folders concurrently. Each envelope
// is owned by exactly one engine invocation, so no cross-batch locking is
// needed.
type BatchProcessor struct {
	correlator  Correlator
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(correlator Correlator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		correlator:  correlator,
		concurrency: concurrency,
	}
}

// ProcessFolders correlates the given folders in parallel.
func (b *BatchProcessor) ProcessFolders(ctx context.Context, folders []string) []*FolderResult {
	if len(folders) == 0 {
		return nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, folder := range folders {
		pool.Submit(&FolderJob{Folder: folder, Correlator: b.correlator})
	}

	results := pool.Wait()

	out := make([]*FolderResult, len(results))
	for i, result := range results {
		out[i] = result.(*FolderResult)
	}
	return out
}

// ProcessRoot discovers batch folders under root (one subdirectory per
// email) and correlates them all.
func (b *BatchProcessor) ProcessRoot(ctx context.Context, root string) ([]*FolderResult, error) {
	folders, err := DiscoverFolders(root)
	if err != nil {
		return nil, err
	}
	return b.ProcessFolders(ctx, folders), nil
}

// DiscoverFolders lists the immediate subdirectories of root, sorted.
func DiscoverFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read root directory: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(folders)
	return folders, nil
}
