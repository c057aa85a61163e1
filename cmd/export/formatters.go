package export

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
	"github.com/Taichi-iskw/yt-export/internal/service/export"
)

// Formatter renders a run summary
type Formatter interface {
	Format(summary *export.Summary) (string, error)
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unknown format %q (expected text or json)", name))
	}
}

// TextFormatter formats a summary for humans
type TextFormatter struct{}

func (f *TextFormatter) Format(summary *export.Summary) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Export run: %s\n", summary.RunID)
	fmt.Fprintf(&b, "Channels exported: %d\n", summary.Resolved)
	fmt.Fprintf(&b, "References skipped: %d\n", summary.Skipped)
	if summary.Failed > 0 {
		fmt.Fprintf(&b, "Channels without video file: %d\n", summary.Failed)
	}
	fmt.Fprintf(&b, "Videos written: %d\n", summary.Videos)
	fmt.Fprintf(&b, "Channel file: %s", summary.ChannelsFile)
	return b.String(), nil
}

// JSONFormatter formats a summary as JSON
type JSONFormatter struct{}

type summaryJSON struct {
	RunID        string `json:"run_id"`
	Resolved     int    `json:"resolved"`
	Skipped      int    `json:"skipped"`
	Failed       int    `json:"failed"`
	Videos       int    `json:"videos"`
	ChannelsFile string `json:"channels_file"`
}

func (f *JSONFormatter) Format(summary *export.Summary) (string, error) {
	data, err := json.MarshalIndent(summaryJSON{
		RunID:        summary.RunID.String(),
		Resolved:     summary.Resolved,
		Skipped:      summary.Skipped,
		Failed:       summary.Failed,
		Videos:       summary.Videos,
		ChannelsFile: summary.ChannelsFile,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
