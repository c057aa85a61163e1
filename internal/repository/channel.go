package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// ChannelRepository defines operations for the channel mirror table
type ChannelRepository interface {
	// Upsert inserts the channel or refreshes the stored row, tagging it with runID
	Upsert(ctx context.Context, runID uuid.UUID, channel *model.Channel) error

	// GetByID retrieves a mirrored channel by its ID
	GetByID(ctx context.Context, id string) (*model.Channel, error)
}
