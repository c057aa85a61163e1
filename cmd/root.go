package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/yt-export/internal/config"
	"github.com/Taichi-iskw/yt-export/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytexport",
	Short: "Export YouTube channel and video metadata to CSV",
	Long: `ytexport resolves YouTube channel references through the YouTube Data API v3
and writes channel and video metadata to CSV files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}
		logFile := cfg.LogFile
		if cmd.Flags().Changed("log-file") {
			logFile, _ = cmd.Flags().GetString("log-file")
		}

		return logger.Init(level, logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command with ctx, which is cancelled on interrupt
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}
