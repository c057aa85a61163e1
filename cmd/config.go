package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/yt-export/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage the ytexport configuration file (~/.yt-export/config.yaml).`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [API_KEY]",
	Short: "Initialize configuration file",
	Long:  `Create a configuration file holding the YouTube Data API key and export defaults.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var apiKey string
		if len(args) > 0 {
			apiKey = args[0]
		}

		if err := config.InitConfig(apiKey); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created configuration file: %s\n", configPath)
		if apiKey == "" {
			fmt.Fprintln(out, "Please set api_key in this file or export YT_API_KEY.")
		}

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the configuration file path and the resolved settings. The API key is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file: %s\n\n", configPath)
		fmt.Fprintf(out, "API_KEY:       %s\n", cfg.MaskedAPIKey())
		fmt.Fprintf(out, "OUTPUT_DIR:    %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "REQUEST_DELAY: %s\n", cfg.RequestDelay)
		fmt.Fprintf(out, "LOG_LEVEL:     %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "LOG_FILE:      %s\n", valueOrNone(cfg.LogFile))
		fmt.Fprintf(out, "DATABASE_URL:  %s\n", valueOrNone(cfg.RedactedDatabaseURL()))
		fmt.Fprintf(out, "METRICS_FILE:  %s\n", valueOrNone(cfg.MetricsFile))

		return nil
	},
}

func valueOrNone(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
