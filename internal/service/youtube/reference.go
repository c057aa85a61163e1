package youtube

import (
	"regexp"
	"strings"

	"github.com/Taichi-iskw/yt-export/internal/model"
)

var (
	channelIDPattern  = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	channelURLPattern = regexp.MustCompile(`/channel/([A-Za-z0-9_-]+)`)
	userURLPattern    = regexp.MustCompile(`/user/([A-Za-z0-9_-]+)`)
	handleURLPattern  = regexp.MustCompile(`/@([A-Za-z0-9_.-]+)`)
	bareHandlePattern = regexp.MustCompile(`^@(.+)$`)
	customURLPattern  = regexp.MustCompile(`/c/([A-Za-z0-9_.-]+)`)
)

// referenceRule maps a pattern's first capture group to a strategy.
// Rules are tried in order; the first match wins.
type referenceRule struct {
	pattern  *regexp.Regexp
	strategy model.Strategy
}

var referenceRules = []referenceRule{
	{channelURLPattern, model.StrategyID},
	{userURLPattern, model.StrategyUsername},
	{handleURLPattern, model.StrategyQuery},
	{bareHandlePattern, model.StrategyQuery},
	{customURLPattern, model.StrategyQuery},
}

// Classify decides how a raw input line resolves to a channel ID.
// It never fails: anything unrecognised is searched for as free text.
func Classify(raw string) model.ChannelReference {
	value := strings.TrimSpace(raw)

	if channelIDPattern.MatchString(value) {
		return model.ChannelReference{Raw: raw, Strategy: model.StrategyID, Token: value}
	}

	for _, rule := range referenceRules {
		if m := rule.pattern.FindStringSubmatch(value); m != nil {
			return model.ChannelReference{Raw: raw, Strategy: rule.strategy, Token: m[1]}
		}
	}

	return model.ChannelReference{Raw: raw, Strategy: model.StrategyQuery, Token: value}
}
