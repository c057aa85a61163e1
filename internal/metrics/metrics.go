package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/service/youtube"
)

var _ youtube.CallObserver = (*Recorder)(nil)

// API call results
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Recorder holds the counters of one export run
type Recorder struct {
	registry *prometheus.Registry

	APIRequests       *prometheus.CounterVec
	ChannelsExported  prometheus.Counter
	ChannelsSkipped   *prometheus.CounterVec
	VideosExported    prometheus.Counter
	VideoBatchFailure prometheus.Counter
	LastRunTimestamp  prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		APIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytexport_api_requests_total",
				Help: "YouTube Data API calls, by operation and result.",
			},
			[]string{"operation", "result"},
		),
		ChannelsExported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ytexport_channels_exported_total",
				Help: "Channels written to the channel file.",
			},
		),
		ChannelsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ytexport_channels_skipped_total",
				Help: "Input references that produced no complete export, by reason.",
			},
			[]string{"reason"},
		),
		VideosExported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ytexport_videos_exported_total",
				Help: "Video rows written.",
			},
		),
		VideoBatchFailure: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ytexport_video_batch_failures_total",
				Help: "Video detail batches dropped after a failed lookup.",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ytexport_last_run_timestamp_seconds",
				Help: "Unix time the last export run finished.",
			},
		),
	}

	r.registry.MustRegister(
		r.APIRequests,
		r.ChannelsExported,
		r.ChannelsSkipped,
		r.VideosExported,
		r.VideoBatchFailure,
		r.LastRunTimestamp,
	)
	return r
}

// ObserveCall counts one API call. A failed videos call is one dropped batch.
func (r *Recorder) ObserveCall(operation string, err error) {
	r.APIRequests.WithLabelValues(operation, resultOf(err)).Inc()
	if err != nil && operation == youtube.OpVideos {
		r.VideoBatchFailure.Inc()
	}
}

// ChannelExported counts a channel row
func (r *Recorder) ChannelExported() {
	r.ChannelsExported.Inc()
}

// ChannelSkipped counts a reference that did not export fully
func (r *Recorder) ChannelSkipped(reason string) {
	r.ChannelsSkipped.WithLabelValues(reason).Inc()
}

// VideosWritten adds n video rows
func (r *Recorder) VideosWritten(n int) {
	r.VideosExported.Add(float64(n))
}

// Finish stamps the end of the run
func (r *Recorder) Finish() {
	r.LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes the counters in the node_exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write metrics file")
	}
	return nil
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.HasCode(err, errors.CodeNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
