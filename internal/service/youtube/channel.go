package youtube

import (
	"context"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

// FetchChannel retrieves channel attributes and its uploads playlist ID.
// A channel that no longer exists yields a NOT_FOUND error.
func (s *Service) FetchChannel(ctx context.Context, channelID string) (*model.Channel, error) {
	// Input validation
	if channelID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}

	channel, err := s.api.Channel(ctx, channelID)
	s.observe(OpChannel, err)
	if err != nil {
		return nil, err
	}

	return channel, nil
}
