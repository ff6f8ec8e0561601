package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/config"
	"github.com/AI2HU/tubedash/internal/loader"
	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/services"
	"github.com/AI2HU/tubedash/internal/store"
)

var (
	cfgFile   string
	cfg       *config.Config
	snapStore *store.Store
	dashboard *services.DashboardService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tubedash",
	Short: "Content tracking analytics dashboard",
	Long: `Tubedash loads channel and video tracking snapshots and serves them as an
analytics dashboard: rankings, trends, predictions, period comparisons,
keyword analysis and CSV exports, over an HTTP API and this CLI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip init for the init command itself
		if cmd.Name() == "init" {
			return nil
		}

		// Load configuration
		if cfgFile == "" {
			cfgFile = config.GetConfigPath()
		}

		if !config.Exists(cfgFile) {
			return fmt.Errorf("configuration file not found. Run 'tubedash init' to create one")
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Init(logger.ParseLogLevel(cfg.LogLevel), os.Stdout)

		snapLoader := loader.New(loader.Options{
			BaseURL:           cfg.Snapshots.BaseURL,
			Dir:               cfg.Snapshots.Dir,
			MaxRetries:        cfg.Snapshots.MaxRetries,
			RetryDelay:        cfg.Snapshots.RetryDelay,
			RequestsPerSecond: cfg.Snapshots.RequestsPerSecond,
			Timeout:           cfg.Snapshots.Timeout,
		})

		snapStore = store.New()
		dashboard = services.NewDashboardService(snapLoader, snapStore)

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tubedash/config.yaml)")

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(predictionsCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartsCmd)
}
