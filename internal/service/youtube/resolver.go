package youtube

import (
	"context"
	"fmt"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

type resolveFunc func(ctx context.Context, token string) (string, error)

// Resolve turns a classified reference into a canonical channel ID.
// Only the username and query strategies issue a remote call (exactly one).
// A reference that matches nothing yields a NOT_FOUND error.
func (s *Service) Resolve(ctx context.Context, ref model.ChannelReference) (string, error) {
	resolve, ok := s.resolvers[ref.Strategy]
	if !ok {
		return "", errors.New(errors.CodeInvalidArg, fmt.Sprintf("unknown resolution strategy %d", ref.Strategy))
	}
	if ref.Token == "" {
		return "", errors.New(errors.CodeInvalidArg, "channel reference is empty")
	}

	return resolve(ctx, ref.Token)
}

func resolveDirect(_ context.Context, token string) (string, error) {
	return token, nil
}

func (s *Service) resolveUsername(ctx context.Context, username string) (string, error) {
	channelID, err := s.api.ChannelIDForUsername(ctx, username)
	s.observe(OpUsernameLookup, err)
	return channelID, err
}

// resolveQuery takes the first channel search hit as is; popular names may
// match the wrong channel.
func (s *Service) resolveQuery(ctx context.Context, query string) (string, error) {
	channelID, err := s.api.SearchChannelID(ctx, query)
	s.observe(OpSearch, err)
	return channelID, err
}
