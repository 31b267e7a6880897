package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/nfetools/conciliador/internal/correlate"
	"github.com/nfetools/conciliador/internal/identity"
	"github.com/nfetools/conciliador/internal/llm"
	"github.com/nfetools/conciliador/internal/model"
	"github.com/nfetools/conciliador/internal/store"
)

// Pipeline orchestrates one batch folder end to end: load documents, run
// the correlation engine, build the report, optionally explain and persist.
type Pipeline struct {
	loader     *Loader
	engine     *correlate.Engine
	renderer   *Renderer
	summarizer *llm.Summarizer // nil when disabled
	store      *store.Store    // nil when disabled
	config     *model.Config
}

// New creates a pipeline from the configuration. LLM and store stay
// disabled unless configured; a summarizer init failure only warns, the
// engine result never depends on it.
func New(ctx context.Context, cfg *model.Config) (*Pipeline, error) {
	var matcher identity.Matcher
	if len(cfg.Identity.OwnCNPJs) > 0 {
		matcher = identity.NewCachedMatcher(cfg.Identity.OwnCNPJs, cfg.Identity.CacheTTL)
	}

	p := &Pipeline{
		loader:   NewLoader(matcher),
		engine:   correlate.NewEngine(),
		renderer: NewRenderer(cfg.Output.Verbose),
		config:   cfg,
	}

	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.Config{
			Provider:          cfg.LLM.Provider,
			Model:             cfg.LLM.Model,
			APIKey:            cfg.LLM.APIKey,
			BaseURL:           cfg.LLM.BaseURL,
			RequestsPerSecond: cfg.RateLimiting.RequestsPerSecond,
			Burst:             cfg.RateLimiting.BurstSize,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summarizer disabled: %v\n", err)
		} else {
			p.summarizer = s
		}
	}

	if cfg.Store.DatabaseURL != "" {
		st, err := store.New(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		p.store = st
	}

	return p, nil
}

// Result is the outcome of processing one batch folder.
type Result struct {
	Folder string
	Report *Report
	Error  error
}

// ProcessFolder correlates one batch folder and returns its report.
func (p *Pipeline) ProcessFolder(ctx context.Context, folder string) (*Result, error) {
	batch, email, err := p.loader.Load(folder)
	if err != nil {
		return nil, fmt.Errorf("load batch %s: %w", folder, err)
	}

	if len(batch.Documents) == 0 {
		return nil, fmt.Errorf("batch %s has no documents", folder)
	}

	verdict := p.engine.Correlate(batch, email)
	report := BuildReport(batch, verdict)

	// Explanation runs strictly after the engine and never changes the
	// verdict. A failure is reported, not fatal.
	if p.summarizer != nil {
		summary, err := p.summarizer.Explain(ctx, verdict)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed for %s: %v\n", folder, err)
		} else {
			report.Summary = summary
		}
	}

	if p.store != nil {
		if err := p.store.SaveVerdict(ctx, verdict); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: persist verdict for %s: %v\n", folder, err)
		}
	}

	return &Result{Folder: folder, Report: report}, nil
}

// Renderer exposes the pipeline's renderer for callers that write reports
// themselves (the batch command names output files per folder).
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
}
