package youtube

import (
	"context"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

// Per-request ceilings enforced by the YouTube Data API
const (
	MaxPageSize  = 50 // playlistItems.list maxResults
	MaxBatchSize = 50 // videos.list id count
)

// Operation names reported to a CallObserver
const (
	OpUsernameLookup = "channels.forUsername"
	OpSearch         = "search"
	OpChannel        = "channels"
	OpPlaylistItems  = "playlistItems"
	OpVideos         = "videos"
)

// UploadPage is one page of an uploads playlist
type UploadPage struct {
	VideoIDs      []string
	NextPageToken string
}

// API is the part of the YouTube Data API v3 the exporter consumes.
// Lookups that match nothing return a NOT_FOUND AppError; failed calls
// return EXTERNAL_ERROR.
type API interface {
	ChannelIDForUsername(ctx context.Context, username string) (string, error)
	SearchChannelID(ctx context.Context, query string) (string, error)
	Channel(ctx context.Context, channelID string) (*model.Channel, error)
	PlaylistItems(ctx context.Context, playlistID, pageToken string) (*UploadPage, error)
	Videos(ctx context.Context, videoIDs []string) ([]*model.Video, error)
}

// CallObserver is told about every remote call and its outcome
type CallObserver interface {
	ObserveCall(operation string, err error)
}
