package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfetools/conciliador/internal/pipeline"
	"github.com/nfetools/conciliador/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <root>",
	Short: "Correlate every batch folder under a root directory in parallel",
	Long: `Batch correlates many email batches concurrently:
- one subdirectory per email under the root directory
- each folder is correlated by its own engine invocation
- one JSON report per batch in the output directory

Example:
  conciliador batch ./inbox
  conciliador batch ./inbox --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./conciliador-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringSliceVar(&ownCNPJs, "own-cnpj", nil, "CNPJ(s) of our own company, repeatable")
	batchCmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres URL for report persistence (default: DATABASE_URL)")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM verdict explanation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if err := applyFlags(cfg); err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Dir = outputDir

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "Processing batches under %s with %d workers...\n", root, concurrency)

	results, err := processor.ProcessRoot(ctx, root)
	if err != nil {
		return fmt.Errorf("process root: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Folder, result.Error)
			continue
		}
		successCount++

		jsonPath := filepath.Join(outputDir, filepath.Base(result.Folder)+".json")
		if err := p.Renderer().RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Folder, err)
			continue
		}
		p.Renderer().RenderSummary(result.Report)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d ok, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}
