package model

import "time"

// Strategy is how a channel reference gets turned into a channel ID
type Strategy int

const (
	// StrategyID means the token already is a canonical channel ID
	StrategyID Strategy = iota
	// StrategyUsername means the token is a legacy username (/user/<name>)
	StrategyUsername
	// StrategyQuery means the token is searched for as free text
	StrategyQuery
)

func (s Strategy) String() string {
	switch s {
	case StrategyID:
		return "id"
	case StrategyUsername:
		return "username"
	case StrategyQuery:
		return "query"
	default:
		return "unknown"
	}
}

// ChannelReference is a classified input line
type ChannelReference struct {
	Raw      string   `json:"raw"`
	Strategy Strategy `json:"strategy"`
	Token    string   `json:"token"`
}

// Channel represents YouTube channel information
type Channel struct {
	SourceInput       string    `json:"source_input" db:"source_input"`
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	PublishedAt       time.Time `json:"published_at" db:"published_at"`
	Country           string    `json:"country,omitempty" db:"country"`
	ViewCount         *uint64   `json:"view_count,omitempty" db:"view_count"`
	SubscriberCount   *uint64   `json:"subscriber_count,omitempty" db:"subscriber_count"` // nil when hidden
	VideoCount        *uint64   `json:"video_count,omitempty" db:"video_count"`
	UploadsPlaylistID string    `json:"uploads_playlist_id" db:"uploads_playlist_id"`
}

// Video represents YouTube video information
type Video struct {
	SourceInput     string    `json:"source_input" db:"source_input"`
	ChannelID       string    `json:"channel_id" db:"channel_id"`
	ChannelTitle    string    `json:"channel_title" db:"channel_title"`
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	PublishedAt     time.Time `json:"published_at" db:"published_at"`
	Tags            []string  `json:"tags" db:"tags"`
	CategoryID      string    `json:"category_id" db:"category_id"`
	Duration        string    `json:"duration" db:"duration"` // ISO 8601, e.g. PT4M13S
	Definition      string    `json:"definition" db:"definition"`
	Caption         string    `json:"caption" db:"caption"`
	LicensedContent bool      `json:"licensed_content" db:"licensed_content"`
	Projection      string    `json:"projection" db:"projection"`
	ViewCount       *uint64   `json:"view_count,omitempty" db:"view_count"`
	LikeCount       *uint64   `json:"like_count,omitempty" db:"like_count"`
	CommentCount    *uint64   `json:"comment_count,omitempty" db:"comment_count"`
	FavoriteCount   *uint64   `json:"favorite_count,omitempty" db:"favorite_count"`
}
