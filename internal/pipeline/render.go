package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/signalsift/signalsift/internal/model"
)

// RenderJSON writes the full result (records plus summary) to the given path
func RenderJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a compact human-readable summary
func RenderSummary(w io.Writer, summary model.AggregateSummary) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Analysis Summary\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Comments:            %d (%d clean, %d flagged)\n",
		summary.TotalCount, summary.CleanCount, summary.FlaggedCount)
	fmt.Fprintf(w, "  Authenticity score:  %.3f (%s credibility)\n",
		summary.AuthenticityScore, summary.ContentCredibility)

	if summary.TotalCount > 0 {
		fmt.Fprintf(w, "  Fallback share:      %.0f%%\n", summary.FallbackShare*100)
	}

	if len(summary.SentimentCounts) > 0 {
		fmt.Fprintf(w, "\n  Organic sentiment:\n")
		for _, s := range sortedSentiments(summary.SentimentCounts) {
			fmt.Fprintf(w, "    %-10s %d\n", s, summary.SentimentCounts[s])
		}
	}

	if summary.FlaggedCount > 0 {
		fmt.Fprintf(w, "\n  Bias breakdown:\n")
		for _, b := range sortedBiasTypes(summary.BiasTypeCounts) {
			fmt.Fprintf(w, "    %-20s %d\n", b, summary.BiasTypeCounts[b])
		}
		fmt.Fprintf(w, "  Average bias score:  %.3f\n", summary.AverageBiasScore)
		fmt.Fprintf(w, "  High risk:           %d\n", summary.HighRiskCount)
		fmt.Fprintf(w, "  Manipulation reach:  %.0f%% of engagement\n", summary.ManipulationInfluence*100)
	}
	fmt.Fprintf(w, "\n")
}

func sortedSentiments(m map[model.Sentiment]int) []model.Sentiment {
	keys := make([]model.Sentiment, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedBiasTypes(m map[model.BiasType]int) []model.BiasType {
	keys := make([]model.BiasType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
