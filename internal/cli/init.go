package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tubedash configuration",
	Long:  `Interactive wizard to set up tubedash configuration: snapshot source, API server and reload schedule.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🚀 Welcome to Tubedash Setup")
	fmt.Println("============================")
	fmt.Println()

	// Check if config already exists
	configPath := config.GetConfigPath()
	if config.Exists(configPath) {
		fmt.Printf("Configuration file already exists at: %s\n", configPath)
		confirmed, err := promptYesNo(reader, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	// Snapshot source configuration
	fmt.Println("\n📦 Snapshot Source")
	fmt.Println("------------------")

	baseURL, err := promptOptional(reader, "Snapshot base URL [http://localhost:8000]: ", "http://localhost:8000")
	if err != nil {
		return err
	}
	cfg.Snapshots.BaseURL = baseURL

	dir, err := promptOptional(reader, "Local snapshot directory (overrides URL, empty to skip) []: ", "")
	if err != nil {
		return err
	}
	cfg.Snapshots.Dir = dir

	// Server configuration
	fmt.Println("\n🌐 API Server")
	fmt.Println("-------------")

	portStr, err := promptOptional(reader, "API port [8080]: ", "8080")
	if err != nil {
		return err
	}
	if port, convErr := strconv.Atoi(portStr); convErr == nil {
		cfg.Server.Port = port
	}

	// Scheduler configuration
	fmt.Println("\n⏰ Snapshot Reload Schedule")
	fmt.Println("---------------------------")

	enabled, err := promptYesNo(reader, "Enable periodic snapshot reload? (y/N): ")
	if err != nil {
		return err
	}
	cfg.Scheduler.Enabled = enabled

	if enabled {
		cronExpr, cronErr := promptOptional(reader, "Cron expression [*/15 * * * *]: ", "*/15 * * * *")
		if cronErr != nil {
			return cronErr
		}
		cfg.Scheduler.CronExpr = cronExpr
	}

	// Save configuration
	fmt.Println("\n💾 Saving configuration...")
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Configuration saved to: %s\n", configPath)

	// Summary
	fmt.Println("\n📋 Configuration Summary")
	fmt.Println("========================")
	fmt.Printf("Snapshot source: %s\n", sourceSummary(cfg))
	fmt.Printf("API: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Reload schedule: %s (enabled: %v)\n", cfg.Scheduler.CronExpr, cfg.Scheduler.Enabled)
	fmt.Println()
	fmt.Println("🎉 Setup complete! You can now use tubedash.")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Check the snapshot source: tubedash load")
	fmt.Println("  2. Start the dashboard API: tubedash serve")
	fmt.Println("  3. Inspect the ranking: tubedash ranking")

	return nil
}

func sourceSummary(cfg *config.Config) string {
	if cfg.Snapshots.Dir != "" {
		return "dir " + cfg.Snapshots.Dir
	}
	return cfg.Snapshots.BaseURL
}
