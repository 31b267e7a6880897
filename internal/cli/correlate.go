package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfetools/conciliador/internal/model"
	"github.com/nfetools/conciliador/internal/pipeline"
)

var (
	outJSON     string
	timeout     time.Duration
	ownCNPJs    []string
	dbURL       string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// correlateCmd represents the correlate command
var correlateCmd = &cobra.Command{
	Use:   "correlate <folder>",
	Short: "Correlate one batch folder of extracted documents",
	Long: `Correlate reads every extracted document JSON file in one batch folder
(plus the optional email.json context), runs the correlation engine and
writes a per-batch report:

- propagates missing fields between documents of different kinds
- detects duplicate submissions
- cross-validates the invoice value against the boleto total
- emits CONCILIADO, DIVERGENTE or CONFERIR with an explanation

Example:
  conciliador correlate ./inbox/2024-08-12-acme
  conciliador correlate ./inbox/2024-08-12-acme --json report.json
  conciliador correlate ./inbox/2024-08-12-acme --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runCorrelate,
}

func init() {
	rootCmd.AddCommand(correlateCmd)

	correlateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: <folder>/report.json)")
	correlateCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	correlateCmd.Flags().StringSliceVar(&ownCNPJs, "own-cnpj", nil, "CNPJ(s) of our own company, repeatable")
	correlateCmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres URL for report persistence (default: DATABASE_URL)")

	correlateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM verdict explanation")
	correlateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	correlateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// applyFlags overlays command-line flags onto the loaded configuration.
func applyFlags(cfg *model.Config) error {
	if len(ownCNPJs) > 0 {
		cfg.Identity.OwnCNPJs = ownCNPJs
	}

	if dbURL != "" {
		cfg.Store.DatabaseURL = dbURL
	} else if cfg.Store.DatabaseURL == "" {
		cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	return nil
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	folder := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	if err := applyFlags(cfg); err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Correlating: %s\n", folder)
	}

	result, err := p.ProcessFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("correlate failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d documents\n", len(result.Report.Documents))
		fmt.Fprintf(os.Stderr, "✓ Status: %s\n", result.Report.Status)
	}

	jsonPath := outJSON
	if jsonPath == "" {
		jsonPath = filepath.Join(folder, "report.json")
	}
	if err := p.Renderer().RenderJSON(result.Report, jsonPath); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	p.Renderer().RenderSummary(result.Report)

	return nil
}
