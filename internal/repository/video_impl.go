package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

const videoStagingTable = "videos_staging"

var videoColumns = []string{
	"id", "channel_id", "title", "description", "published_at", "tags",
	"category_id", "duration", "definition", "caption", "licensed_content", "projection",
	"view_count", "like_count", "comment_count", "favorite_count",
	"source_input", "export_run_id",
}

const createVideoStagingSQL = `CREATE TEMP TABLE videos_staging (LIKE videos INCLUDING DEFAULTS) ON COMMIT DROP`

const mergeVideoStagingSQL = `
	INSERT INTO videos (
		id, channel_id, title, description, published_at, tags,
		category_id, duration, definition, caption, licensed_content, projection,
		view_count, like_count, comment_count, favorite_count,
		source_input, export_run_id, exported_at
	)
	SELECT
		id, channel_id, title, description, published_at, tags,
		category_id, duration, definition, caption, licensed_content, projection,
		view_count, like_count, comment_count, favorite_count,
		source_input, export_run_id, now()
	FROM videos_staging
	ON CONFLICT (id) DO UPDATE SET
		channel_id = EXCLUDED.channel_id,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		published_at = EXCLUDED.published_at,
		tags = EXCLUDED.tags,
		category_id = EXCLUDED.category_id,
		duration = EXCLUDED.duration,
		definition = EXCLUDED.definition,
		caption = EXCLUDED.caption,
		licensed_content = EXCLUDED.licensed_content,
		projection = EXCLUDED.projection,
		view_count = EXCLUDED.view_count,
		like_count = EXCLUDED.like_count,
		comment_count = EXCLUDED.comment_count,
		favorite_count = EXCLUDED.favorite_count,
		source_input = EXCLUDED.source_input,
		export_run_id = EXCLUDED.export_run_id,
		exported_at = EXCLUDED.exported_at`

// videoRepository implements VideoRepository using PostgreSQL
type videoRepository struct {
	pool Pool
}

// NewVideoRepository creates a new instance of VideoRepository
func NewVideoRepository(pool Pool) VideoRepository {
	return &videoRepository{
		pool: pool,
	}
}

// UpsertBatch copies the videos into a per-transaction staging table and
// merges them into videos, so the whole batch lands or none of it does
func (r *videoRepository) UpsertBatch(ctx context.Context, runID uuid.UUID, videos []*model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return handlePostgreSQLError(err, "failed to begin video upsert")
	}

	if _, err := tx.Exec(ctx, createVideoStagingSQL); err != nil {
		_ = tx.Rollback(ctx)
		return handlePostgreSQLError(err, "failed to create video staging table")
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{videoStagingTable}, videoColumns,
		pgx.CopyFromSlice(len(videos), func(i int) ([]any, error) {
			return videoRow(videos[i], runID), nil
		}))
	if err != nil {
		_ = tx.Rollback(ctx)
		return handlePostgreSQLError(err, "failed to copy videos")
	}

	if _, err := tx.Exec(ctx, mergeVideoStagingSQL); err != nil {
		_ = tx.Rollback(ctx)
		return handlePostgreSQLError(err, "failed to upsert videos")
	}

	if err := tx.Commit(ctx); err != nil {
		return handlePostgreSQLError(err, "failed to commit video upsert")
	}
	return nil
}

// CountByChannel returns the number of mirrored videos of a channel
func (r *videoRepository) CountByChannel(ctx context.Context, channelID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT count(*) FROM videos WHERE channel_id = $1", channelID).Scan(&count)
	if err != nil {
		return 0, handlePostgreSQLError(err, "failed to count videos")
	}
	return count, nil
}

func videoRow(v *model.Video, runID uuid.UUID) []any {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return []any{
		v.ID,
		v.ChannelID,
		v.Title,
		v.Description,
		timeArg(v.PublishedAt),
		tags,
		v.CategoryID,
		v.Duration,
		v.Definition,
		v.Caption,
		v.LicensedContent,
		v.Projection,
		countArg(v.ViewCount),
		countArg(v.LikeCount),
		countArg(v.CommentCount),
		countArg(v.FavoriteCount),
		v.SourceInput,
		runID,
	}
}
