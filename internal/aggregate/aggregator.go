// Package aggregate reduces completed pipeline records into population-level
// authenticity metrics. The Aggregator is the only shared mutable state in
// the pipeline: every ingest applies one record's contribution atomically
// under a single lock, so a snapshot can never observe half of a record.
package aggregate

import (
	"sync"

	"github.com/signalsift/signalsift/internal/model"
)

// Authenticity score term weights
const (
	cleanFractionWeight  = 0.6
	biasComplementWeight = 0.3
	credibilityWeight    = 0.1
)

// Aggregator accumulates record contributions. Ingest order does not matter:
// every derived field is a function of counts and sums.
type Aggregator struct {
	mu sync.Mutex

	total   int
	clean   int
	flagged int

	sentiments map[model.Sentiment]int
	biasTypes  map[model.BiasType]int
	riskLevels map[model.RiskLevel]int

	fallback int

	biasScoreSum   float64
	credibilitySum float64
	highRisk       int

	engagementAll          int
	engagementManipulative int
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		sentiments: make(map[model.Sentiment]int),
		biasTypes:  make(map[model.BiasType]int),
		riskLevels: make(map[model.RiskLevel]int),
	}
}

// Ingest applies one completed record. Call exactly once per record; safe for
// concurrent use.
func (a *Aggregator) Ingest(record *model.PipelineRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.engagementAll += record.Comment.Engagement()

	if record.Classification.IsFallback {
		a.fallback++
	}

	if record.Bias == nil {
		// Clean path: this record counts toward the organic sentiment view.
		a.clean++
		a.sentiments[record.Classification.Sentiment]++
		return
	}

	a.flagged++
	a.biasTypes[record.Bias.BiasType]++
	a.riskLevels[record.Bias.RiskLevel]++
	a.biasScoreSum += record.Bias.BiasScore
	a.credibilitySum += record.Bias.AccountCredibility
	if record.Bias.RiskLevel == model.RiskHigh {
		a.highRisk++
	}
	if record.Bias.BiasType != model.BiasAuthentic {
		a.engagementManipulative += record.Comment.Engagement()
	}
}

// Snapshot returns a consistent view of the accumulated state. It is not
// linearizable with concurrent ingests, but never reflects a partial one.
func (a *Aggregator) Snapshot() model.AggregateSummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	summary := model.AggregateSummary{
		TotalCount:      a.total,
		CleanCount:      a.clean,
		FlaggedCount:    a.flagged,
		SentimentCounts: make(map[model.Sentiment]int, len(a.sentiments)),
		BiasTypeCounts:  make(map[model.BiasType]int, len(a.biasTypes)),
		RiskLevelCounts: make(map[model.RiskLevel]int, len(a.riskLevels)),
		HighRiskCount:   a.highRisk,
		FallbackCount:   a.fallback,
	}
	for k, v := range a.sentiments {
		summary.SentimentCounts[k] = v
	}
	for k, v := range a.biasTypes {
		summary.BiasTypeCounts[k] = v
	}
	for k, v := range a.riskLevels {
		summary.RiskLevelCounts[k] = v
	}

	if a.flagged > 0 {
		summary.AverageBiasScore = a.biasScoreSum / float64(a.flagged)
	}
	if a.engagementAll > 0 {
		summary.ManipulationInfluence = float64(a.engagementManipulative) / float64(a.engagementAll)
	}
	if a.total > 0 {
		summary.FallbackShare = float64(a.fallback) / float64(a.total)
	}

	summary.AuthenticityScore = a.authenticityScore()
	summary.ContentCredibility = model.BucketCredibility(summary.AuthenticityScore)
	return summary
}

// authenticityScore combines the clean fraction with the inverse mean bias
// and the mean account credibility of flagged records. With zero flagged
// records the bias and credibility terms default to their maximal value.
// Caller holds the lock.
func (a *Aggregator) authenticityScore() float64 {
	cleanFraction := 1.0
	if a.total > 0 {
		cleanFraction = float64(a.clean) / float64(a.total)
	}

	biasComplement := 1.0
	credibility := 1.0
	if a.flagged > 0 {
		biasComplement = 1.0 - a.biasScoreSum/float64(a.flagged)
		credibility = a.credibilitySum / float64(a.flagged)
	}

	// Summed as weighted deficits from 1.0 so a batch with nothing flagged
	// lands on exactly 1.0 rather than a float hair below it.
	deficit := cleanFractionWeight*(1.0-cleanFraction) +
		biasComplementWeight*(1.0-biasComplement) +
		credibilityWeight*(1.0-credibility)
	return 1.0 - deficit
}
