package youtube

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// DefaultRequestDelay is the pause before each videos.list batch
const DefaultRequestDelay = 100 * time.Millisecond

// Service resolves channel references and walks a channel's uploads through the API.
// Calls are issued one at a time; Service holds no per-channel state.
type Service struct {
	api       API
	logger    *zap.Logger
	observer  CallObserver
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	resolvers map[model.Strategy]resolveFunc
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for skipped batches
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequestDelay sets the fixed pause before each video detail batch
func WithRequestDelay(d time.Duration) Option {
	return func(s *Service) {
		s.delay = d
	}
}

// WithObserver reports every remote call to o
func WithObserver(o CallObserver) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// NewService creates a new Service on top of api
func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:    api,
		logger: zap.NewNop(),
		delay:  DefaultRequestDelay,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.resolvers = map[model.Strategy]resolveFunc{
		model.StrategyID:       resolveDirect,
		model.StrategyUsername: s.resolveUsername,
		model.StrategyQuery:    s.resolveQuery,
	}

	return s
}

func (s *Service) observe(operation string, err error) {
	if s.observer != nil {
		s.observer.ObserveCall(operation, err)
	}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
