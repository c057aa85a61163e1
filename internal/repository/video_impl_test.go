package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

func testVideos() []*model.Video {
	return []*model.Video{
		{
			SourceInput:  "@mkbhd",
			ChannelID:    "UCBJycsmduvYEL83R_U4JriQ",
			ChannelTitle: "Marques Brownlee",
			ID:           "video1",
			Title:        "Video 1",
			Tags:         []string{"tech"},
			Duration:     "PT5M",
			ViewCount:    u64(300),
		},
		{
			SourceInput:  "@mkbhd",
			ChannelID:    "UCBJycsmduvYEL83R_U4JriQ",
			ChannelTitle: "Marques Brownlee",
			ID:           "video2",
			Title:        "Video 2",
		},
	}
}

func TestVideoRepository_UpsertBatch(t *testing.T) {
	tests := []struct {
		name     string
		videos   []*model.Video
		setup    func(mock pgxmock.PgxPoolIface)
		wantCode string
	}{
		{
			name:   "stages and merges in one transaction",
			videos: testVideos(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnResult(2)
				mock.ExpectExec("INSERT INTO videos").
					WillReturnResult(pgxmock.NewResult("INSERT", 2))
				mock.ExpectCommit()
			},
		},
		{
			name:   "empty batch does nothing",
			videos: nil,
			setup:  func(mock pgxmock.PgxPoolIface) {},
		},
		{
			name:   "begin fails",
			videos: testVideos(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(&pgconn.PgError{Code: "08006"})
			},
			wantCode: apperrors.CodeInternal,
		},
		{
			name:   "copy fails and rolls back",
			videos: testVideos(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnError(&pgconn.PgError{Code: "22003"})
				mock.ExpectRollback()
			},
			wantCode: apperrors.CodeInvalidArg,
		},
		{
			name:   "channel not mirrored",
			videos: testVideos(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnResult(2)
				mock.ExpectExec("INSERT INTO videos").
					WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "videos_channel_id_fkey"})
				mock.ExpectRollback()
			},
			wantCode: apperrors.CodeDependency,
		},
		{
			name:   "commit fails",
			videos: testVideos(),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnResult(2)
				mock.ExpectExec("INSERT INTO videos").
					WillReturnResult(pgxmock.NewResult("INSERT", 2))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewVideoRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err = repo.UpsertBatch(ctx, testRunID, tt.videos)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			} else {
				assert.NoError(t, err)
			}

			err = mock.ExpectationsWereMet()
			assert.NoError(t, err, "pgxmock expectations were not met")
		})
	}
}

func TestVideoRepository_CountByChannel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM videos WHERE channel_id = \\$1").
		WithArgs("UCBJycsmduvYEL83R_U4JriQ").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	repo := NewVideoRepository(mock)
	count, err := repo.CountByChannel(context.Background(), "UCBJycsmduvYEL83R_U4JriQ")

	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRow(t *testing.T) {
	publishedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("full video", func(t *testing.T) {
		row := videoRow(&model.Video{
			SourceInput:     "@mkbhd",
			ChannelID:       "UC1",
			ID:              "video1",
			Title:           "t",
			Description:     "d",
			PublishedAt:     publishedAt,
			Tags:            []string{"a", "b"},
			CategoryID:      "28",
			Duration:        "PT1M",
			Definition:      "hd",
			Caption:         "false",
			LicensedContent: true,
			Projection:      "rectangular",
			ViewCount:       u64(1),
			LikeCount:       u64(2),
			CommentCount:    u64(3),
			FavoriteCount:   u64(0),
		}, testRunID)

		require.Len(t, row, len(videoColumns))
		assert.Equal(t, []any{
			"video1", "UC1", "t", "d", publishedAt, []string{"a", "b"},
			"28", "PT1M", "hd", "false", true, "rectangular",
			int64(1), int64(2), int64(3), int64(0),
			"@mkbhd", testRunID,
		}, row)
	})

	t.Run("absent values", func(t *testing.T) {
		row := videoRow(&model.Video{ID: "video2", ChannelID: "UC1"}, testRunID)

		require.Len(t, row, len(videoColumns))
		assert.Nil(t, row[4])
		assert.Equal(t, []string{}, row[5])
		for _, i := range []int{12, 13, 14, 15} {
			assert.Nil(t, row[i], "column %s", videoColumns[i])
		}
	})
}
