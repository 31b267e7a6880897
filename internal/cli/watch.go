package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nfetools/conciliador/internal/pipeline"
)

var settleDelay time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Watch a directory and correlate new batch folders as they appear",
	Long: `Watch monitors the root directory the email ingestion writes into and
correlates each newly created batch folder. A short settle delay lets the
ingestion finish writing the folder before correlation starts.

Example:
  conciliador watch ./inbox
  conciliador watch ./inbox --settle 5s --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&outputDir, "output-dir", "./conciliador-reports", "output directory for reports")
	watchCmd.Flags().DurationVar(&settleDelay, "settle", 3*time.Second, "delay before correlating a new folder")
	watchCmd.Flags().StringSliceVar(&ownCNPJs, "own-cnpj", nil, "CNPJ(s) of our own company, repeatable")
	watchCmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres URL for report persistence (default: DATABASE_URL)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx := context.Background()

	cfg := loadConfig()
	if err := applyFlags(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s for new batch folders...\n", root)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil || !info.IsDir() {
				continue
			}
			go correlateWatched(ctx, p, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}

// correlateWatched waits for the ingestion to settle, then correlates the
// folder and writes its report.
func correlateWatched(ctx context.Context, p *pipeline.Pipeline, folder string) {
	time.Sleep(settleDelay)

	result, err := p.ProcessFolder(ctx, folder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", folder, err)
		return
	}

	jsonPath := filepath.Join(outputDir, filepath.Base(folder)+".json")
	if err := p.Renderer().RenderJSON(result.Report, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", folder, err)
		return
	}
	p.Renderer().RenderSummary(result.Report)
}
