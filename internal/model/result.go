package model

import "fmt"

// Category classifies the nature of a comment's content
type Category string

const (
	CategoryFactual       Category = "factual"       // Verifiable statements
	CategoryOpinionated   Category = "opinionated"   // Personal views and judgments
	CategoryPromotional   Category = "promotional"   // Marketing or sales language
	CategoryInformational Category = "informational" // Neutral, non-assertive content
)

// Valid reports whether the category is one of the closed set
func (c Category) Valid() bool {
	switch c {
	case CategoryFactual, CategoryOpinionated, CategoryPromotional, CategoryInformational:
		return true
	}
	return false
}

// Sentiment is the polarity of a comment
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the sentiment is one of the closed set
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Route is the triage decision for a classified comment
type Route string

const (
	RouteBiasInvestigation  Route = "bias_investigation"
	RouteStandardProcessing Route = "standard_processing"
)

// BiasType identifies the dominant manipulation pattern for a routed comment
type BiasType string

const (
	BiasCommercial        BiasType = "commercial"
	BiasAstroturfing      BiasType = "astroturfing"
	BiasCoordinatedAttack BiasType = "coordinated_attack"
	BiasAuthentic         BiasType = "authentic"
)

// Valid reports whether the bias type is one of the closed set
func (b BiasType) Valid() bool {
	switch b {
	case BiasCommercial, BiasAstroturfing, BiasCoordinatedAttack, BiasAuthentic:
		return true
	}
	return false
}

// RiskLevel buckets a bias score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the risk level is one of the closed set
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ClassificationResult is produced once per comment by the classifier stage,
// either by the content oracle or by the deterministic fallback.
type ClassificationResult struct {
	Category           Category  `json:"category"`
	Confidence         float64   `json:"confidence"`
	Sentiment          Sentiment `json:"sentiment"`
	SentimentIntensity float64   `json:"sentiment_intensity"`
	ToxicityScore      float64   `json:"toxicity_score"`
	HasPII             bool      `json:"has_pii"`
	RiskFactors        []string  `json:"risk_factors,omitempty"`
	Flagged            bool      `json:"flagged"`
	IsFallback         bool      `json:"is_fallback"`
}

// Validate checks that every field is within its documented range. The oracle
// client uses this to reject malformed responses rather than propagate them.
func (r *ClassificationResult) Validate() error {
	if !r.Category.Valid() {
		return fmt.Errorf("invalid category: %q", r.Category)
	}
	if !r.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment: %q", r.Sentiment)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %v", r.Confidence)
	}
	if r.SentimentIntensity < 0 || r.SentimentIntensity > 1 {
		return fmt.Errorf("sentiment_intensity out of range: %v", r.SentimentIntensity)
	}
	if r.ToxicityScore < 0 || r.ToxicityScore > 1 {
		return fmt.Errorf("toxicity_score out of range: %v", r.ToxicityScore)
	}
	return nil
}

// RiskSignals is the triage router's output: four risk sub-scores, the named
// signals that fired, and the routing decision.
type RiskSignals struct {
	CommercialIntent  float64  `json:"commercial_intent"`
	AttackPattern     float64  `json:"attack_pattern"`
	EngagementAnomaly float64  `json:"engagement_anomaly"`
	ProfileSuspicion  float64  `json:"profile_suspicion"`
	Triggers          []string `json:"triggers,omitempty"`
	Route             Route    `json:"route"`
}

// BiasResult is produced by the bias analyzer for routed comments only.
type BiasResult struct {
	BiasScore              float64   `json:"bias_score"`
	BiasType               BiasType  `json:"bias_type"`
	RiskLevel              RiskLevel `json:"risk_level"`
	CommercialIndicators   float64   `json:"commercial_indicators"`
	AstroturfingIndicators float64   `json:"astroturfing_indicators"`
	AttackCoordination     float64   `json:"attack_coordination"`
	AuthenticitySignals    float64   `json:"authenticity_signals"`
	AccountCredibility     float64   `json:"account_credibility"`
	Confidence             float64   `json:"confidence"`
	IsFallback             bool      `json:"is_fallback"`
}

// Validate checks that every field is within its documented range.
func (r *BiasResult) Validate() error {
	if !r.BiasType.Valid() {
		return fmt.Errorf("invalid bias_type: %q", r.BiasType)
	}
	if !r.RiskLevel.Valid() {
		return fmt.Errorf("invalid risk_level: %q", r.RiskLevel)
	}
	for name, v := range map[string]float64{
		"bias_score":              r.BiasScore,
		"commercial_indicators":   r.CommercialIndicators,
		"astroturfing_indicators": r.AstroturfingIndicators,
		"attack_coordination":     r.AttackCoordination,
		"authenticity_signals":    r.AuthenticitySignals,
		"account_credibility":     r.AccountCredibility,
		"confidence":              r.Confidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s out of range: %v", name, v)
		}
	}
	return nil
}

// PipelineRecord is the durable unit threaded through all stages. It owns
// exactly one Comment and one ClassificationResult; RiskSignals and BiasResult
// are appended by the triage and bias stages. Once a record reaches the
// aggregator it is immutable.
type PipelineRecord struct {
	Comment        Comment              `json:"comment"`
	Classification ClassificationResult `json:"classification"`
	Risk           *RiskSignals         `json:"risk_signals,omitempty"`
	Bias           *BiasResult          `json:"bias_result,omitempty"`
}

// Routed reports whether the record was sent down the deep-analysis path.
func (r *PipelineRecord) Routed() bool {
	return r.Risk != nil && r.Risk.Route == RouteBiasInvestigation
}
