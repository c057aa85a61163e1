package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

var (
	channelParts = []string{"snippet", "contentDetails", "statistics"}
	videoParts   = []string{"snippet", "contentDetails", "statistics"}
)

// Client implements API on top of the YouTube Data API v3 client library
type Client struct {
	service *ytapi.Service
}

// NewClient creates a new YouTube API client authenticated with a static API key.
// Extra options (endpoint, HTTP client) are mainly for tests.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "YouTube API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create YouTube service")
	}

	return &Client{service: service}, nil
}

// ChannelIDForUsername looks up a legacy username
func (c *Client) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.service.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "channels.list by username failed")
	}

	if len(resp.Items) == 0 {
		return "", errors.New(errors.CodeNotFound, fmt.Sprintf("no channel for username %q", username))
	}
	return resp.Items[0].Id, nil
}

// SearchChannelID returns the channel ID of the top channel search hit
func (c *Client) SearchChannelID(ctx context.Context, query string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "search.list failed")
	}

	for _, item := range resp.Items {
		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			return item.Snippet.ChannelId, nil
		}
		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
	}
	return "", errors.New(errors.CodeNotFound, fmt.Sprintf("no channel matches %q", query))
}

// Channel fetches descriptive fields, content details and statistics in one call
func (c *Client) Channel(ctx context.Context, channelID string) (*model.Channel, error) {
	resp, err := c.service.Channels.List(channelParts).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "channels.list failed")
	}

	if len(resp.Items) == 0 {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("channel not found: %s", channelID))
	}
	return mapChannel(resp.Items[0]), nil
}

// PlaylistItems fetches one page of video IDs from a playlist
func (c *Client) PlaylistItems(ctx context.Context, playlistID, pageToken string) (*UploadPage, error) {
	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(MaxPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "playlistItems.list failed")
	}

	page := &UploadPage{
		VideoIDs:      make([]string, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			page.VideoIDs = append(page.VideoIDs, item.ContentDetails.VideoId)
		}
	}
	return page, nil
}

// Videos retrieves details for up to 50 videos in a single batch
func (c *Client) Videos(ctx context.Context, videoIDs []string) ([]*model.Video, error) {
	if len(videoIDs) == 0 {
		return nil, errors.New(errors.CodeInvalidArg, "no video IDs provided")
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, errors.New(errors.CodeInvalidArg,
			fmt.Sprintf("too many video IDs (max %d, got %d)", MaxBatchSize, len(videoIDs)))
	}

	resp, err := c.service.Videos.List(videoParts).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "videos.list failed")
	}

	videos := make([]*model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, mapVideo(item))
	}
	return videos, nil
}

// mapChannel converts a channels.list item to our model
func mapChannel(item *ytapi.Channel) *model.Channel {
	channel := &model.Channel{ID: item.Id}

	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
		channel.Description = item.Snippet.Description
		channel.Country = item.Snippet.Country
		channel.PublishedAt = parseYouTubeTime(item.Snippet.PublishedAt)
	}

	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	if item.Statistics != nil {
		channel.ViewCount = uint64Ptr(item.Statistics.ViewCount)
		channel.VideoCount = uint64Ptr(item.Statistics.VideoCount)
		if !item.Statistics.HiddenSubscriberCount {
			channel.SubscriberCount = uint64Ptr(item.Statistics.SubscriberCount)
		}
	}

	return channel
}

// mapVideo converts a videos.list item to our model; channel fields are
// filled in by the caller
func mapVideo(item *ytapi.Video) *model.Video {
	video := &model.Video{ID: item.Id}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.PublishedAt = parseYouTubeTime(item.Snippet.PublishedAt)
		video.CategoryID = item.Snippet.CategoryId
		video.Tags = item.Snippet.Tags
	}

	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
		video.Definition = item.ContentDetails.Definition
		video.Caption = item.ContentDetails.Caption
		video.LicensedContent = item.ContentDetails.LicensedContent
		video.Projection = item.ContentDetails.Projection
	}

	if item.Statistics != nil {
		video.ViewCount = uint64Ptr(item.Statistics.ViewCount)
		video.LikeCount = uint64Ptr(item.Statistics.LikeCount)
		video.CommentCount = uint64Ptr(item.Statistics.CommentCount)
		video.FavoriteCount = uint64Ptr(item.Statistics.FavoriteCount)
	}

	return video
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// parseYouTubeTime parses RFC3339 timestamps from YouTube API; malformed
// values become the zero time
func parseYouTubeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
