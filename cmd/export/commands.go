package export

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Taichi-iskw/yt-export/internal/config"
	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/input"
	"github.com/Taichi-iskw/yt-export/internal/service/export"
	"github.com/Taichi-iskw/yt-export/pkg/logger"
)

// Runner executes one export run
type Runner interface {
	Run(ctx context.Context, inputs []string) (*export.Summary, error)
}

// Factory builds a Runner for a validated configuration. The returned
// cleanup func releases whatever the runner holds.
type Factory interface {
	CreateRunner(ctx context.Context, cfg *config.Config, log *zap.Logger) (Runner, func(), error)
}

// NewExportCommand creates the export command
func NewExportCommand(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export channel and video metadata to CSV",
		Long: `Read channel references (IDs, URLs, @handles or names) from a text file,
resolve them through the YouTube Data API and write channels_metadata.csv plus
one <channel>_videosinfo.csv per channel into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			format, _ := cmd.Flags().GetString("format")

			formatter, err := NewFormatter(format)
			if err != nil {
				return err
			}

			inputs, err := input.ReadFile(inputPath)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("no channel references in %s", inputPath))
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), FormatDryRunResult(PlanInputs(inputs)))
				return nil
			}

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, cleanup, err := factory.CreateRunner(ctx, cfg, logger.Log)
			if err != nil {
				return fmt.Errorf("failed to set up export: %w", err)
			}
			defer cleanup()

			summary, runErr := runner.Run(ctx, inputs)
			if summary != nil {
				output, err := formatter.Format(summary)
				if err != nil {
					return fmt.Errorf("failed to format summary: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), output)
			}
			if runErr != nil {
				return fmt.Errorf("export failed: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "Text file with one channel reference per line")
	cmd.Flags().StringP("outdir", "o", config.DefaultOutputDir, "Output directory for the CSV files")
	cmd.Flags().String("api-key", "", "YouTube Data API v3 key (default from YT_API_KEY or config file)")
	cmd.Flags().Duration("request-delay", config.DefaultRequestDelay, "Pause before each video detail batch")
	cmd.Flags().String("database-url", "", "Also mirror exported rows into this PostgreSQL database")
	cmd.Flags().String("metrics-file", "", "Write run counters to this Prometheus textfile")
	cmd.Flags().String("format", "text", "Summary format (text, json)")
	cmd.Flags().Bool("dry-run", false, "Classify the input without calling the API")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// applyFlags overrides cfg with the flags set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("outdir") {
		cfg.OutputDir, _ = flags.GetString("outdir")
	}
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("request-delay") {
		delay, err := flags.GetDuration("request-delay")
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInvalidArg, "invalid request delay")
		}
		cfg.RequestDelay = delay
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL, _ = flags.GetString("database-url")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	return nil
}
