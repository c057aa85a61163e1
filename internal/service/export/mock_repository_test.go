package export

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// mockChannelRepository is a mock implementation of repository.ChannelRepository
type mockChannelRepository struct {
	mock.Mock
}

func (m *mockChannelRepository) Upsert(ctx context.Context, runID uuid.UUID, channel *model.Channel) error {
	args := m.Called(ctx, runID, channel)
	return args.Error(0)
}

func (m *mockChannelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Channel), args.Error(1)
}

// mockVideoRepository is a mock implementation of repository.VideoRepository
type mockVideoRepository struct {
	mock.Mock
}

func (m *mockVideoRepository) UpsertBatch(ctx context.Context, runID uuid.UUID, videos []*model.Video) error {
	args := m.Called(ctx, runID, videos)
	return args.Error(0)
}

func (m *mockVideoRepository) CountByChannel(ctx context.Context, channelID string) (int, error) {
	args := m.Called(ctx, channelID)
	return args.Int(0), args.Error(1)
}
