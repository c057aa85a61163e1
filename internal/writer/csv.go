package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/model"
)

// ChannelsFileName is the single file holding one row per exported channel
const ChannelsFileName = "channels_metadata.csv"

const (
	videoFileSuffix = "_videosinfo.csv"
	maxFilenameLen  = 120
	tagSeparator    = "|"
	fileMode        = 0644
)

// ChannelHeader is the column layout of the channels file
var ChannelHeader = []string{
	"source_input",
	"channel_id",
	"channel_title",
	"channel_description",
	"channel_published_at",
	"channel_country",
	"channel_view_count",
	"channel_subscriber_count",
	"channel_video_count",
}

// VideoHeader is the column layout of every per-channel video file
var VideoHeader = []string{
	"source_input",
	"channel_id",
	"channel_title",
	"video_id",
	"video_title",
	"video_description",
	"video_published_at",
	"video_tags",
	"video_category_id",
	"video_duration",
	"video_definition",
	"video_caption",
	"video_licensed_content",
	"video_projection",
	"video_view_count",
	"video_like_count",
	"video_comment_count",
	"video_favorite_count",
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// WriteChannels writes the channels file; with no channels it holds only the header
func WriteChannels(path string, channels []*model.Channel) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to create channels file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ChannelHeader); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write channels header")
	}
	for _, channel := range channels {
		if err := w.Write(channelRow(channel)); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to write channel row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to flush channels file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to close channels file")
	}
	return nil
}

// VideoFile streams one channel's video rows into a temp file that only
// becomes visible under its final name on Commit
type VideoFile struct {
	path    string
	tmp     *os.File
	w       *csv.Writer
	count   int
	settled bool
}

// CreateVideoFile opens the video file for channel in dir and writes the header
func CreateVideoFile(dir string, channel *model.Channel) (*VideoFile, error) {
	tmp, err := os.CreateTemp(dir, ".videosinfo-*.csv.tmp")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create video file")
	}

	f := &VideoFile{
		path: VideoFilePath(dir, channel.Title),
		tmp:  tmp,
		w:    csv.NewWriter(tmp),
	}
	if err := f.w.Write(VideoHeader); err != nil {
		f.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to write video header")
	}
	return f, nil
}

// Write appends one video row
func (f *VideoFile) Write(video *model.Video) error {
	if err := f.w.Write(videoRow(video)); err != nil {
		return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to write video %s", video.ID))
	}
	f.count++
	return nil
}

// Count returns the number of rows written so far, header excluded
func (f *VideoFile) Count() int {
	return f.count
}

// Path returns the final file path
func (f *VideoFile) Path() string {
	return f.path
}

// Commit flushes the rows and moves the file to its final path
func (f *VideoFile) Commit() error {
	if f.settled {
		return errors.New(errors.CodeInternal, "video file already closed")
	}
	f.settled = true

	f.w.Flush()
	if err := f.w.Error(); err != nil {
		f.discard()
		return errors.Wrap(err, errors.CodeInternal, "failed to flush video file")
	}
	if err := f.tmp.Chmod(fileMode); err != nil {
		f.discard()
		return errors.Wrap(err, errors.CodeInternal, "failed to set video file mode")
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return errors.Wrap(err, errors.CodeInternal, "failed to close video file")
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		_ = os.Remove(f.tmp.Name())
		return errors.Wrap(err, errors.CodeInternal, "failed to move video file into place")
	}
	return nil
}

// Close discards the file unless it was committed. It is safe to defer.
func (f *VideoFile) Close() error {
	if f.settled {
		return nil
	}
	f.settled = true
	return f.discard()
}

func (f *VideoFile) discard() error {
	_ = f.tmp.Close()
	return os.Remove(f.tmp.Name())
}

// VideoFilePath returns where the video file of a channel titled title goes
func VideoFilePath(dir, title string) string {
	return filepath.Join(dir, SanitizeFilename(title)+videoFileSuffix)
}

// SanitizeFilename turns a channel title into a safe file name stem
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "channel"
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(name, " ")

	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = string(runes[:maxFilenameLen])
	}
	return name
}

func channelRow(c *model.Channel) []string {
	return []string{
		c.SourceInput,
		c.ID,
		c.Title,
		c.Description,
		formatTime(c.PublishedAt),
		c.Country,
		formatCount(c.ViewCount),
		formatCount(c.SubscriberCount),
		formatCount(c.VideoCount),
	}
}

func videoRow(v *model.Video) []string {
	return []string{
		v.SourceInput,
		v.ChannelID,
		v.ChannelTitle,
		v.ID,
		v.Title,
		v.Description,
		formatTime(v.PublishedAt),
		strings.Join(v.Tags, tagSeparator),
		v.CategoryID,
		v.Duration,
		v.Definition,
		v.Caption,
		strconv.FormatBool(v.LicensedContent),
		v.Projection,
		formatCount(v.ViewCount),
		formatCount(v.LikeCount),
		formatCount(v.CommentCount),
		formatCount(v.FavoriteCount),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatCount(n *uint64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatUint(*n, 10)
}
