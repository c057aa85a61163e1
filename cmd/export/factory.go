package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Taichi-iskw/yt-export/internal/config"
	"github.com/Taichi-iskw/yt-export/internal/metrics"
	"github.com/Taichi-iskw/yt-export/internal/repository"
	"github.com/Taichi-iskw/yt-export/internal/service/export"
	"github.com/Taichi-iskw/yt-export/internal/service/youtube"
)

// ServiceFactory wires the YouTube client, the exporter and the optional
// mirror and metrics sinks
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateRunner creates a Runner with all dependencies
func (f *ServiceFactory) CreateRunner(ctx context.Context, cfg *config.Config, log *zap.Logger) (Runner, func(), error) {
	client, err := youtube.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	recorder := metrics.NewRecorder()
	service := youtube.NewService(client,
		youtube.WithLogger(log),
		youtube.WithRequestDelay(cfg.RequestDelay),
		youtube.WithObserver(recorder),
	)

	opts := []export.Option{
		export.WithLogger(log),
		export.WithRecorder(recorder),
	}

	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		pool, err := config.NewDatabasePool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := repository.Migrate(cfg.DatabaseURL); err != nil {
			config.CloseDatabasePool(pool)
			return nil, nil, err
		}
		opts = append(opts, export.WithMirror(
			repository.NewChannelRepository(pool),
			repository.NewVideoRepository(pool),
		))
		cleanup = func() {
			config.CloseDatabasePool(pool)
		}
		log.Info("mirroring export into PostgreSQL")
	}

	return &pipeline{
		exporter:    export.NewExporter(service, cfg.OutputDir, opts...),
		recorder:    recorder,
		metricsFile: cfg.MetricsFile,
		log:         log,
	}, cleanup, nil
}

// pipeline runs the exporter and then writes the metrics textfile
type pipeline struct {
	exporter    *export.Exporter
	recorder    *metrics.Recorder
	metricsFile string
	log         *zap.Logger
}

func (p *pipeline) Run(ctx context.Context, inputs []string) (*export.Summary, error) {
	summary, err := p.exporter.Run(ctx, inputs)

	if p.metricsFile != "" {
		p.recorder.Finish()
		if werr := p.recorder.WriteTextfile(p.metricsFile); werr != nil {
			p.log.Warn("failed to write metrics file", zap.String("path", p.metricsFile), zap.Error(werr))
		}
	}
	return summary, err
}
