package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
	"github.com/Taichi-iskw/yt-export/internal/service/youtube"
)

const (
	mkbhdID  = "UCBJycsmduvYEL83R_U4JriQ"
	lttID    = "UCXuqSBlHAE6Xw-yeJA0Tunw"
	googleID = "UC_x5XG1OV2P6uZZ5FSM9Ttw"
)

var testPublishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeAPI serves a small in-memory YouTube
type fakeAPI struct {
	usernames map[string]string
	searches  map[string]string
	channels  map[string]*model.Channel
	uploads   map[string][]string
	failPage  map[string]int
	failIDs   map[string]bool

	videoCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		usernames: map[string]string{},
		searches:  map[string]string{},
		channels:  map[string]*model.Channel{},
		uploads:   map[string][]string{},
		failPage:  map[string]int{},
		failIDs:   map[string]bool{},
	}
}

// addChannel registers a channel with n uploads named <prefix>-000 onwards
func (f *fakeAPI) addChannel(id, title, prefix string, n int) {
	playlistID := "UU" + strings.TrimPrefix(id, "UC")
	f.channels[id] = &model.Channel{
		ID:                id,
		Title:             title,
		PublishedAt:       testPublishedAt,
		UploadsPlaylistID: playlistID,
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%03d", prefix, i)
	}
	f.uploads[playlistID] = ids
}

func (f *fakeAPI) ChannelIDForUsername(_ context.Context, username string) (string, error) {
	if id, ok := f.usernames[username]; ok {
		return id, nil
	}
	return "", errors.New(errors.CodeNotFound, "no channel for username "+username)
}

func (f *fakeAPI) SearchChannelID(_ context.Context, query string) (string, error) {
	if id, ok := f.searches[query]; ok {
		return id, nil
	}
	return "", errors.New(errors.CodeNotFound, "no channel matches "+query)
}

func (f *fakeAPI) Channel(_ context.Context, channelID string) (*model.Channel, error) {
	channel, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "channel not found: "+channelID)
	}
	c := *channel
	return &c, nil
}

func (f *fakeAPI) PlaylistItems(_ context.Context, playlistID, pageToken string) (*youtube.UploadPage, error) {
	page := 0
	if pageToken != "" {
		page, _ = strconv.Atoi(strings.TrimPrefix(pageToken, "page-"))
	}
	if failAt, ok := f.failPage[playlistID]; ok && failAt == page {
		return nil, errors.New(errors.CodeExternal, "playlistItems quota exceeded")
	}

	ids := f.uploads[playlistID]
	start := page * youtube.MaxPageSize
	end := min(start+youtube.MaxPageSize, len(ids))
	result := &youtube.UploadPage{VideoIDs: ids[start:end]}
	if end < len(ids) {
		result.NextPageToken = fmt.Sprintf("page-%d", page+1)
	}
	return result, nil
}

func (f *fakeAPI) Videos(_ context.Context, videoIDs []string) ([]*model.Video, error) {
	f.videoCalls++
	for _, id := range videoIDs {
		if f.failIDs[id] {
			return nil, errors.New(errors.CodeExternal, "videos backend error")
		}
	}
	videos := make([]*model.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		videos = append(videos, &model.Video{
			ID:          id,
			Title:       "Title " + id,
			PublishedAt: testPublishedAt,
			Duration:    "PT1M",
		})
	}
	return videos, nil
}
