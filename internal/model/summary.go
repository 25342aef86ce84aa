package model

// CredibilityBucket buckets the final authenticity score
type CredibilityBucket string

const (
	CredibilityHigh   CredibilityBucket = "high"   // authenticity_score >= 0.8
	CredibilityMedium CredibilityBucket = "medium" // authenticity_score >= 0.6
	CredibilityLow    CredibilityBucket = "low"
)

// BucketCredibility maps an authenticity score to its bucket
func BucketCredibility(score float64) CredibilityBucket {
	switch {
	case score >= 0.8:
		return CredibilityHigh
	case score >= 0.6:
		return CredibilityMedium
	default:
		return CredibilityLow
	}
}

// AggregateSummary is the population-level view of one processed batch.
// Sentiment counts cover clean (non-routed) records only, so they read as the
// organic sentiment distribution with manipulation stripped out.
type AggregateSummary struct {
	TotalCount   int `json:"total_count"`
	CleanCount   int `json:"clean_count"`
	FlaggedCount int `json:"flagged_count"`

	SentimentCounts map[Sentiment]int `json:"organic_sentiment"`
	BiasTypeCounts  map[BiasType]int  `json:"bias_type_distribution"`
	RiskLevelCounts map[RiskLevel]int `json:"risk_distribution"`

	AverageBiasScore float64 `json:"average_bias_score"`
	HighRiskCount    int     `json:"high_risk_count"`

	// ManipulationInfluence is the share of total engagement carried by
	// flagged, non-authentic records.
	ManipulationInfluence float64 `json:"manipulation_influence"`

	AuthenticityScore  float64           `json:"authenticity_score"`
	ContentCredibility CredibilityBucket `json:"content_credibility"`

	// FallbackShare is the fraction of records classified without the oracle,
	// so consumers can judge overall result confidence.
	FallbackCount int     `json:"fallback_count"`
	FallbackShare float64 `json:"fallback_share"`
}
