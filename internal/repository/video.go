package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// VideoRepository defines operations for the video mirror table
type VideoRepository interface {
	// UpsertBatch inserts or refreshes videos in one transaction, tagging them with runID
	UpsertBatch(ctx context.Context, runID uuid.UUID, videos []*model.Video) error

	// CountByChannel returns the number of mirrored videos of a channel
	CountByChannel(ctx context.Context, channelID string) (int, error)
}
