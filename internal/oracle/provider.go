// Package oracle wraps the external content-analysis source. The oracle is
// opaque: it receives a comment plus context and returns a structured
// judgment, or fails. Every failure mode — transport, timeout, malformed
// payload, out-of-range field — surfaces uniformly as *model.OracleError so
// callers have exactly one failure case to recover from.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/signalsift/signalsift/internal/model"
)

// Provider defines the interface for content oracle backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify analyzes one comment and returns its classification
	Classify(ctx context.Context, comment model.Comment) (*model.ClassificationResult, error)

	// AnalyzeBias performs deep bias analysis on a routed comment
	AnalyzeBias(ctx context.Context, comment model.Comment, classification model.ClassificationResult) (*model.BiasResult, error)
}

// Config holds oracle provider configuration
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	// TimeoutSeconds bounds each individual call
	TimeoutSeconds int

	MaxTokens int
}

// ConfigFromModel converts model.OracleConfig to oracle.Config
func ConfigFromModel(mc model.OracleConfig) Config {
	return Config{
		Provider:       mc.Provider,
		Model:          mc.Model,
		APIKey:         mc.APIKey,
		BaseURL:        mc.BaseURL,
		TimeoutSeconds: int(mc.Timeout.Seconds()),
	}
}

// classifyPrompt asks for the exact ClassificationResult JSON schema. The
// response is parsed strictly: unknown enum values and out-of-range numbers
// are rejected, never coerced.
func classifyPrompt(comment model.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a social media content analyst. Analyze this comment and respond with ONLY valid JSON.\n\n")
	fmt.Fprintf(&b, "Comment: %q\n", comment.Text)
	fmt.Fprintf(&b, "Author: @%s\n", comment.AuthorUsername)
	fmt.Fprintf(&b, "Bio: %q\n", comment.AuthorBio)
	fmt.Fprintf(&b, "Engagement: likes=%d replies=%d shares=%d followers=%d verified=%v\n",
		comment.Likes, comment.Replies, comment.Shares, comment.AuthorFollowers, comment.Verified)
	if comment.Context != "" {
		fmt.Fprintf(&b, "Context: %q\n", comment.Context)
	}
	b.WriteString(`
Return exactly this JSON structure:
{
  "category": "factual",
  "confidence": 0.9,
  "sentiment": "positive",
  "sentiment_intensity": 0.5,
  "toxicity_score": 0.1,
  "has_pii": false,
  "risk_factors": []
}

Category options: "factual", "opinionated", "promotional", "informational"
Sentiment options: "positive", "negative", "neutral"
All numeric scores are between 0.0 and 1.0.
Risk factors: array of short strings describing any concerns.

Respond with ONLY the JSON, no other text.`)
	return b.String()
}

// biasPrompt asks for the BiasResult JSON schema
func biasPrompt(comment model.Comment, classification model.ClassificationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a bias detection specialist. Analyze this comment routed for deep investigation.\n\n")
	fmt.Fprintf(&b, "Comment: %q\n", comment.Text)
	fmt.Fprintf(&b, "Author: @%s\n", comment.AuthorUsername)
	fmt.Fprintf(&b, "Bio: %q\n", comment.AuthorBio)
	fmt.Fprintf(&b, "Category: %s, Sentiment: %s, Toxicity: %.2f\n",
		classification.Category, classification.Sentiment, classification.ToxicityScore)
	fmt.Fprintf(&b, "Engagement: likes=%d replies=%d shares=%d followers=%d verified=%v\n",
		comment.Likes, comment.Replies, comment.Shares, comment.AuthorFollowers, comment.Verified)
	b.WriteString(`
Return exactly this JSON structure:
{
  "bias_score": 0.3,
  "bias_type": "authentic",
  "risk_level": "low",
  "commercial_indicators": 0.2,
  "astroturfing_indicators": 0.1,
  "attack_coordination": 0.0,
  "authenticity_signals": 0.8,
  "account_credibility": 0.7,
  "confidence": 0.85
}

Bias type options: "commercial", "astroturfing", "coordinated_attack", "authentic"
Risk level options: "low", "medium", "high"
All numeric scores are between 0.0 and 1.0.

Respond with ONLY the JSON, no other text.`)
	return b.String()
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
	} else {
		return s
	}
	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}

// parseClassification decodes and validates an oracle classification payload
func parseClassification(raw string) (*model.ClassificationResult, error) {
	var result model.ClassificationResult
	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("validate classification: %w", err)
	}
	result.Flagged = result.ToxicityScore > 0.5 || result.HasPII
	result.IsFallback = false
	return &result, nil
}

// oracleBiasConfidence is assumed when the model omits the confidence field.
// It must stay above the deterministic fallback's 0.6.
const oracleBiasConfidence = 0.8

// parseBias decodes and validates an oracle bias payload
func parseBias(raw string) (*model.BiasResult, error) {
	var result model.BiasResult
	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode bias result: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("validate bias result: %w", err)
	}
	if result.Confidence == 0 {
		result.Confidence = oracleBiasConfidence
	}
	result.IsFallback = false
	return &result, nil
}
