package export

import (
	"context"
	"iter"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
	"github.com/Taichi-iskw/yt-export/internal/repository"
	"github.com/Taichi-iskw/yt-export/internal/service/youtube"
	"github.com/Taichi-iskw/yt-export/internal/writer"
)

// Skip reasons reported to the Recorder
const (
	ReasonUnresolved    = "unresolved"
	ReasonChannelLookup = "channel_lookup"
	ReasonVideos        = "videos"
)

// ChannelService is the part of youtube.Service the exporter drives
type ChannelService interface {
	Resolve(ctx context.Context, ref model.ChannelReference) (string, error)
	FetchChannel(ctx context.Context, channelID string) (*model.Channel, error)
	Uploads(ctx context.Context, playlistID string) iter.Seq2[string, error]
	VideoDetails(ctx context.Context, channel *model.Channel, ids iter.Seq2[string, error]) iter.Seq2[*model.Video, error]
}

var _ ChannelService = (*youtube.Service)(nil)

// Recorder receives run counters
type Recorder interface {
	ChannelExported()
	ChannelSkipped(reason string)
	VideosWritten(n int)
}

// Summary describes a finished run
type Summary struct {
	RunID        uuid.UUID
	Resolved     int // channel rows written
	Skipped      int // references dropped without a channel row
	Failed       int // channel rows whose video file was not written
	Videos       int
	ChannelsFile string
}

// Exporter runs the per-channel export loop
type Exporter struct {
	service   ChannelService
	outputDir string
	runID     uuid.UUID
	logger    *zap.Logger
	recorder  Recorder
	channels  repository.ChannelRepository
	videos    repository.VideoRepository
}

// Option configures an Exporter
type Option func(*Exporter)

// WithLogger sets the logger for progress and skipped channels
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder reports run counters to r
func WithRecorder(r Recorder) Option {
	return func(e *Exporter) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithMirror also upserts every exported row into PostgreSQL
func WithMirror(channels repository.ChannelRepository, videos repository.VideoRepository) Option {
	return func(e *Exporter) {
		e.channels = channels
		e.videos = videos
	}
}

// WithRunID overrides the generated run ID
func WithRunID(id uuid.UUID) Option {
	return func(e *Exporter) {
		e.runID = id
	}
}

// NewExporter creates an Exporter writing into outputDir
func NewExporter(service ChannelService, outputDir string, opts ...Option) *Exporter {
	e := &Exporter{
		service:   service,
		outputDir: outputDir,
		runID:     uuid.New(),
		logger:    zap.NewNop(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunID returns the ID tagging this exporter's mirrored rows
func (e *Exporter) RunID() uuid.UUID {
	return e.runID
}

// Run exports every input in order. A channel that cannot be exported is
// logged and skipped. The channel file is written once the loop ends, even
// when ctx was cancelled part way.
func (e *Exporter) Run(ctx context.Context, inputs []string) (*Summary, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create output directory")
	}

	summary := &Summary{
		RunID:        e.runID,
		ChannelsFile: filepath.Join(e.outputDir, writer.ChannelsFileName),
	}
	logger := e.logger.With(zap.String("run_id", e.runID.String()))
	logger.Info("export started", zap.Int("inputs", len(inputs)), zap.String("output_dir", e.outputDir))

	var channels []*model.Channel
	var interrupted error
	for _, raw := range inputs {
		if err := ctx.Err(); err != nil {
			interrupted = err
			break
		}

		channel, reason, err := e.lookupChannel(ctx, raw)
		if err != nil {
			logger.Warn("skipping channel reference", zap.String("input", raw), zap.String("reason", reason), zap.Error(err))
			e.recorder.ChannelSkipped(reason)
			summary.Skipped++
			continue
		}
		channels = append(channels, channel)
		summary.Resolved++
		e.recorder.ChannelExported()

		written, mirrored, err := e.writeVideos(ctx, channel)
		if err != nil {
			logger.Warn("video export failed, channel row kept",
				zap.String("input", raw),
				zap.String("channel_id", channel.ID),
				zap.Error(err),
			)
			e.recorder.ChannelSkipped(ReasonVideos)
			summary.Failed++
		} else {
			summary.Videos += written
			e.recorder.VideosWritten(written)
			logger.Info("channel exported",
				zap.String("input", raw),
				zap.String("channel_id", channel.ID),
				zap.String("title", channel.Title),
				zap.Int("videos", written),
			)
		}

		e.mirror(ctx, logger, channel, mirrored)
	}

	if interrupted == nil {
		interrupted = ctx.Err()
	}

	if err := writer.WriteChannels(summary.ChannelsFile, channels); err != nil {
		return summary, err
	}

	logger.Info("export finished",
		zap.Int("resolved", summary.Resolved),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("videos", summary.Videos),
	)
	if interrupted != nil {
		return summary, errors.Wrap(interrupted, errors.CodeInternal, "export interrupted")
	}
	return summary, nil
}

// lookupChannel classifies and resolves raw, then fetches the channel.
// On failure it also returns the skip reason.
func (e *Exporter) lookupChannel(ctx context.Context, raw string) (*model.Channel, string, error) {
	ref := youtube.Classify(raw)

	channelID, err := e.service.Resolve(ctx, ref)
	if err != nil {
		return nil, ReasonUnresolved, err
	}

	channel, err := e.service.FetchChannel(ctx, channelID)
	if err != nil {
		return nil, ReasonChannelLookup, err
	}
	channel.SourceInput = raw
	return channel, "", nil
}

// writeVideos streams the channel's uploads into its video file. On error
// no file is left behind. Videos are returned only when mirroring.
func (e *Exporter) writeVideos(ctx context.Context, channel *model.Channel) (int, []*model.Video, error) {
	file, err := writer.CreateVideoFile(e.outputDir, channel)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()

	var mirrored []*model.Video
	ids := e.service.Uploads(ctx, channel.UploadsPlaylistID)
	for video, err := range e.service.VideoDetails(ctx, channel, ids) {
		if err != nil {
			return 0, nil, err
		}
		if err := file.Write(video); err != nil {
			return 0, nil, err
		}
		if e.videos != nil {
			mirrored = append(mirrored, video)
		}
	}

	if err := file.Commit(); err != nil {
		return 0, nil, err
	}
	return file.Count(), mirrored, nil
}

// mirror upserts the channel and its videos; failures only warn
func (e *Exporter) mirror(ctx context.Context, logger *zap.Logger, channel *model.Channel, videos []*model.Video) {
	if e.channels == nil || e.videos == nil {
		return
	}
	if err := e.channels.Upsert(ctx, e.runID, channel); err != nil {
		logger.Warn("mirror channel failed", zap.String("channel_id", channel.ID), zap.Error(err))
		return
	}
	if err := e.videos.UpsertBatch(ctx, e.runID, videos); err != nil {
		logger.Warn("mirror videos failed",
			zap.String("channel_id", channel.ID),
			zap.Int("count", len(videos)),
			zap.Error(err),
		)
	}
}

type nopRecorder struct{}

func (nopRecorder) ChannelExported()      {}
func (nopRecorder) ChannelSkipped(string) {}
func (nopRecorder) VideosWritten(int)     {}
