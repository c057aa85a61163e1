package export

import (
	"fmt"
	"strings"

	"github.com/Taichi-iskw/yt-export/internal/model"
	"github.com/Taichi-iskw/yt-export/internal/service/youtube"
)

// DryRunResult is the classification of every input line
type DryRunResult struct {
	References []model.ChannelReference
	// ResolutionCalls is the number of remote lookups resolving needs
	ResolutionCalls int
}

// PlanInputs classifies inputs without touching the API
func PlanInputs(inputs []string) *DryRunResult {
	result := &DryRunResult{References: make([]model.ChannelReference, 0, len(inputs))}
	for _, raw := range inputs {
		ref := youtube.Classify(raw)
		if ref.Strategy != model.StrategyID {
			result.ResolutionCalls++
		}
		result.References = append(result.References, ref)
	}
	return result
}

// FormatDryRunResult formats the dry-run result for display
func FormatDryRunResult(result *DryRunResult) string {
	var b strings.Builder
	b.WriteString("DRY RUN ANALYSIS\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "References: %d\n", len(result.References))
	fmt.Fprintf(&b, "Resolution calls: %d\n\n", result.ResolutionCalls)

	for i, ref := range result.References {
		fmt.Fprintf(&b, "  [%d] %-8s %s", i+1, ref.Strategy, ref.Token)
		if ref.Token != ref.Raw {
			fmt.Fprintf(&b, "  (from %s)", ref.Raw)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nThis is a dry run - no API calls were made.")
	return b.String()
}
