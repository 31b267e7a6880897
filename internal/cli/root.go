package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nfetools/conciliador/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "conciliador",
	Short: "Conciliador - correlation of fiscal documents extracted per email batch",
	Long: `Conciliador takes batches of extracted fiscal documents (NFSe, DANFE,
boletos and miscellaneous attachments), one folder per email, and reconciles
each batch into a single purchase record.

For every batch it fills missing fields across documents, detects duplicate
submissions, cross-validates the invoice value against the boleto total and
emits one auditable verdict: CONCILIADO, DIVERGENTE or CONFERIR.

Missing data never aborts a batch - it degrades to CONFERIR with an
explanation.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("conciliador v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.conciliador/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.conciliador")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables matching CONCILIADOR_*
	viper.SetEnvPrefix("CONCILIADOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the runtime configuration: defaults overlaid with the
// config file and environment. Flag values are applied per-command on top.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	cfg.Output.Verbose = verbose
	return cfg
}
