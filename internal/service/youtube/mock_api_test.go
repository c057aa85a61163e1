package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// mockAPI is a mock implementation of API for testing
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) SearchChannelID(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) Channel(ctx context.Context, channelID string) (*model.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Channel), args.Error(1)
}

func (m *mockAPI) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*UploadPage, error) {
	args := m.Called(ctx, playlistID, pageToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadPage), args.Error(1)
}

func (m *mockAPI) Videos(ctx context.Context, videoIDs []string) ([]*model.Video, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, []string) []*model.Video); ok {
		return fn(ctx, videoIDs), args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

// recordingObserver collects observed operations
type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveCall(operation string, err error) {
	o.calls = append(o.calls, operation)
}

// newTestService builds a Service that never actually sleeps and counts pauses
func newTestService(api API, opts ...Option) (*Service, *int) {
	s := NewService(api, opts...)
	pauses := 0
	s.sleep = func(ctx context.Context, d time.Duration) error {
		pauses++
		return ctx.Err()
	}
	return s, &pauses
}

// videoIDs returns n distinct video IDs, vid000 onwards
func videoIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%03d", i)
	}
	return ids
}

// videosFor builds bare video records for ids, as videos.list would return them
func videosFor(ids []string) []*model.Video {
	videos := make([]*model.Video, len(ids))
	for i, id := range ids {
		videos[i] = &model.Video{ID: id, Title: "Title " + id}
	}
	return videos
}
