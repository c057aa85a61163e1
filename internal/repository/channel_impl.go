package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const upsertChannelSQL = `
	INSERT INTO channels (
		id, title, description, published_at, country,
		view_count, subscriber_count, video_count,
		uploads_playlist_id, source_input, export_run_id, exported_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		published_at = EXCLUDED.published_at,
		country = EXCLUDED.country,
		view_count = EXCLUDED.view_count,
		subscriber_count = EXCLUDED.subscriber_count,
		video_count = EXCLUDED.video_count,
		uploads_playlist_id = EXCLUDED.uploads_playlist_id,
		source_input = EXCLUDED.source_input,
		export_run_id = EXCLUDED.export_run_id,
		exported_at = EXCLUDED.exported_at`

// channelRepository implements ChannelRepository using PostgreSQL
type channelRepository struct {
	pool Pool
}

// NewChannelRepository creates a new instance of ChannelRepository
func NewChannelRepository(pool Pool) ChannelRepository {
	return &channelRepository{
		pool: pool,
	}
}

// Upsert inserts or refreshes a channel row
func (r *channelRepository) Upsert(ctx context.Context, runID uuid.UUID, channel *model.Channel) error {
	_, err := r.pool.Exec(ctx, upsertChannelSQL,
		channel.ID,
		channel.Title,
		channel.Description,
		timeArg(channel.PublishedAt),
		channel.Country,
		countArg(channel.ViewCount),
		countArg(channel.SubscriberCount),
		countArg(channel.VideoCount),
		channel.UploadsPlaylistID,
		channel.SourceInput,
		runID,
	)
	if err != nil {
		return handlePostgreSQLError(err, "failed to upsert channel")
	}
	return nil
}

// GetByID retrieves a channel by its ID
func (r *channelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	sql := `SELECT id, title, description, published_at, country,
		view_count, subscriber_count, video_count, uploads_playlist_id, source_input
		FROM channels WHERE id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var (
		channel     model.Channel
		publishedAt *time.Time
		views       *int64
		subscribers *int64
		videos      *int64
	)
	err := row.Scan(
		&channel.ID,
		&channel.Title,
		&channel.Description,
		&publishedAt,
		&channel.Country,
		&views,
		&subscribers,
		&videos,
		&channel.UploadsPlaylistID,
		&channel.SourceInput,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get channel")
	}

	if publishedAt != nil {
		channel.PublishedAt = publishedAt.UTC()
	}
	channel.ViewCount = countFromDB(views)
	channel.SubscriberCount = countFromDB(subscribers)
	channel.VideoCount = countFromDB(videos)

	return &channel, nil
}

// timeArg maps the zero time to NULL
func timeArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// countArg maps an absent count to NULL; stored counts are BIGINT
func countArg(n *uint64) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func countFromDB(n *int64) *uint64 {
	if n == nil {
		return nil
	}
	v := uint64(*n)
	return &v
}
