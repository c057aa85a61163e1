package youtube

import (
	"context"
	"fmt"
	"iter"

	"github.com/Taichi-iskw/yt-export/internal/errors"
)

// Uploads lazily drains an uploads playlist, yielding video IDs in server
// order and following page tokens until the server stops sending one.
// Repeated IDs are yielded once. A failed page is yielded as a single
// error, after which the sequence ends.
func (s *Service) Uploads(ctx context.Context, playlistID string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if playlistID == "" {
			return
		}

		seen := make(map[string]struct{})
		pageToken := ""
		for {
			page, err := s.api.PlaylistItems(ctx, playlistID, pageToken)
			s.observe(OpPlaylistItems, err)
			if err != nil {
				yield("", errors.Wrap(err, errors.CodeExternal,
					fmt.Sprintf("failed to list uploads playlist %s", playlistID)))
				return
			}

			for _, videoID := range page.VideoIDs {
				if videoID == "" {
					continue
				}
				if _, dup := seen[videoID]; dup {
					continue
				}
				seen[videoID] = struct{}{}
				if !yield(videoID, nil) {
					return
				}
			}

			if page.NextPageToken == "" {
				return
			}
			pageToken = page.NextPageToken
		}
	}
}
