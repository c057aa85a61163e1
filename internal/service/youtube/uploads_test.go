package youtube

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/yt-export/internal/errors"
)

const uploadsID = "UUuAXFkgsw1L7xaCfnd5JJOw"

// collectIDs drains seq, stopping at the first error
func collectIDs(seq iter.Seq2[string, error]) ([]string, error) {
	var ids []string
	for id, err := range seq {
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func TestService_Uploads_FollowsPageTokens(t *testing.T) {
	all := videoIDs(120)

	api := new(mockAPI)
	api.On("PlaylistItems", mock.Anything, uploadsID, "").
		Return(&UploadPage{VideoIDs: all[:50], NextPageToken: "page2"}, nil).Once()
	api.On("PlaylistItems", mock.Anything, uploadsID, "page2").
		Return(&UploadPage{VideoIDs: all[50:100], NextPageToken: "page3"}, nil).Once()
	api.On("PlaylistItems", mock.Anything, uploadsID, "page3").
		Return(&UploadPage{VideoIDs: all[100:]}, nil).Once()

	observer := &recordingObserver{}
	svc := NewService(api, WithObserver(observer))

	got, err := collectIDs(svc.Uploads(context.Background(), uploadsID))
	require.NoError(t, err)

	assert.Equal(t, all, got)
	api.AssertNumberOfCalls(t, "PlaylistItems", 3)
	assert.Equal(t, []string{OpPlaylistItems, OpPlaylistItems, OpPlaylistItems}, observer.calls)
	api.AssertExpectations(t)
}

func TestService_Uploads_Empty(t *testing.T) {
	api := new(mockAPI)
	api.On("PlaylistItems", mock.Anything, uploadsID, "").
		Return(&UploadPage{VideoIDs: []string{}}, nil).Once()
	svc := NewService(api)

	got, err := collectIDs(svc.Uploads(context.Background(), uploadsID))
	require.NoError(t, err)
	assert.Empty(t, got)
	api.AssertExpectations(t)
}

func TestService_Uploads_NoPlaylist(t *testing.T) {
	api := new(mockAPI)
	svc := NewService(api)

	got, err := collectIDs(svc.Uploads(context.Background(), ""))
	require.NoError(t, err)
	assert.Empty(t, got)
	api.AssertNotCalled(t, "PlaylistItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Uploads_DropsDuplicatesAndBlanks(t *testing.T) {
	api := new(mockAPI)
	api.On("PlaylistItems", mock.Anything, uploadsID, "").
		Return(&UploadPage{VideoIDs: []string{"a", "b", "", "a"}, NextPageToken: "next"}, nil).Once()
	api.On("PlaylistItems", mock.Anything, uploadsID, "next").
		Return(&UploadPage{VideoIDs: []string{"b", "c"}}, nil).Once()
	svc := NewService(api)

	got, err := collectIDs(svc.Uploads(context.Background(), uploadsID))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestService_Uploads_PageFailure(t *testing.T) {
	all := videoIDs(60)

	api := new(mockAPI)
	api.On("PlaylistItems", mock.Anything, uploadsID, "").
		Return(&UploadPage{VideoIDs: all[:50], NextPageToken: "page2"}, nil).Once()
	api.On("PlaylistItems", mock.Anything, uploadsID, "page2").
		Return(nil, errors.Wrap(assert.AnError, errors.CodeExternal, "playlistItems.list failed")).Once()
	svc := NewService(api)

	got, err := collectIDs(svc.Uploads(context.Background(), uploadsID))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeExternal))
	assert.Contains(t, err.Error(), uploadsID)
	assert.Len(t, got, 50)
	api.AssertExpectations(t)
}

func TestService_Uploads_StopsWhenConsumerStops(t *testing.T) {
	api := new(mockAPI)
	api.On("PlaylistItems", mock.Anything, uploadsID, "").
		Return(&UploadPage{VideoIDs: videoIDs(50), NextPageToken: "page2"}, nil).Once()
	svc := NewService(api)

	count := 0
	for _, err := range svc.Uploads(context.Background(), uploadsID) {
		require.NoError(t, err)
		count++
		if count == 10 {
			break
		}
	}

	assert.Equal(t, 10, count)
	// The second page is never requested
	api.AssertNumberOfCalls(t, "PlaylistItems", 1)
}
