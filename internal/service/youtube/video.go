package youtube

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// VideoDetails lazily fetches details for the IDs produced by ids, at most
// MaxBatchSize per videos.list call, pausing the fixed request delay before
// each call. Every video is tagged with channel's ID, title and source input.
//
// A failed batch is logged and dropped; the remaining batches still run.
// An error from ids (a failed uploads page) is passed through and ends the
// sequence.
func (s *Service) VideoDetails(ctx context.Context, channel *model.Channel, ids iter.Seq2[string, error]) iter.Seq2[*model.Video, error] {
	return func(yield func(*model.Video, error) bool) {
		window := make([]string, 0, MaxBatchSize)
		for videoID, err := range ids {
			if err != nil {
				yield(nil, err)
				return
			}

			window = append(window, videoID)
			if len(window) == MaxBatchSize {
				if !s.fetchBatch(ctx, channel, window, yield) {
					return
				}
				window = make([]string, 0, MaxBatchSize)
			}
		}

		if len(window) > 0 {
			s.fetchBatch(ctx, channel, window, yield)
		}
	}
}

// fetchBatch reports whether the sequence should go on
func (s *Service) fetchBatch(ctx context.Context, channel *model.Channel, batch []string, yield func(*model.Video, error) bool) bool {
	if err := s.sleep(ctx, s.delay); err != nil {
		yield(nil, err)
		return false
	}

	videos, err := s.api.Videos(ctx, batch)
	s.observe(OpVideos, err)
	if err != nil {
		s.logger.Warn("video batch failed, skipping",
			zap.String("channel_id", channel.ID),
			zap.String("first_id", batch[0]),
			zap.String("last_id", batch[len(batch)-1]),
			zap.Int("count", len(batch)),
			zap.Error(err),
		)
		return true
	}

	for _, video := range videos {
		video.ChannelID = channel.ID
		video.ChannelTitle = channel.Title
		video.SourceInput = channel.SourceInput
		if !yield(video, nil) {
			return false
		}
	}
	return true
}
