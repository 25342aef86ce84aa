// Package classify produces one ClassificationResult per comment. The oracle
// does the real language understanding; when it is unavailable a deterministic
// keyword classifier takes over so the pipeline can always produce a result.
package classify

import (
	"strings"

	"github.com/signalsift/signalsift/internal/model"
)

// Fallback keyword vocabularies. Matching is lowercase substring matching,
// counting distinct vocabulary entries present.
var (
	promotionalKeywords = []string{
		"use code", "promo", "discount", "sale", "buy now", "link in bio",
		"check out", "limited time", "sponsored", "giveaway", "dm me",
	}
	factualKeywords = []string{
		"according to", "research", "study", "data", "source", "percent",
		"statistics", "evidence", "measured", "report",
	}
	opinionKeywords = []string{
		"think", "feel", "believe", "opinion", "personally", "imo", "honestly",
	}
	toxicKeywords = []string{
		"idiot", "stupid", "hate", "trash", "scam", "awful", "terrible",
		"fraud", "garbage", "moron",
	}
	positiveKeywords = []string{
		"love", "great", "amazing", "good", "excellent", "helpful", "thanks",
		"awesome", "best", "appreciate",
	}
	negativeKeywords = []string{
		"hate", "bad", "terrible", "awful", "worst", "stupid", "trash",
		"horrible", "disappointing", "waste",
	}
)

// FallbackConfidence is the fixed confidence of every fallback classification
const FallbackConfidence = 0.7

// countMatches counts distinct vocabulary entries present in text
func countMatches(text string, vocabulary []string) int {
	count := 0
	for _, keyword := range vocabulary {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// FallbackClassify is the deterministic substitute invoked whenever the
// oracle fails. It is total: any text input yields a structurally valid
// result. It never asserts PII without the oracle.
func FallbackClassify(comment model.Comment) model.ClassificationResult {
	text := strings.ToLower(comment.Text)

	// Category precedence: promotional beats everything, factual wins ties
	// against opinion, opinion beats informational.
	var category model.Category
	factualCount := countMatches(text, factualKeywords)
	opinionCount := countMatches(text, opinionKeywords)
	switch {
	case countMatches(text, promotionalKeywords) > 0:
		category = model.CategoryPromotional
	case factualCount > 0 && factualCount >= opinionCount:
		category = model.CategoryFactual
	case opinionCount > 0:
		category = model.CategoryOpinionated
	default:
		category = model.CategoryInformational
	}

	posCount := countMatches(text, positiveKeywords)
	negCount := countMatches(text, negativeKeywords)
	sentiment := model.SentimentNeutral
	if posCount > negCount {
		sentiment = model.SentimentPositive
	} else if negCount > posCount {
		sentiment = model.SentimentNegative
	}

	intensity := float64(posCount+negCount) * 0.25
	if intensity > 1.0 {
		intensity = 1.0
	}

	toxicity := float64(countMatches(text, toxicKeywords)) * 0.3
	if toxicity > 1.0 {
		toxicity = 1.0
	}

	var riskFactors []string
	if toxicity > 0.5 {
		riskFactors = append(riskFactors, "toxic_language")
	}

	return model.ClassificationResult{
		Category:           category,
		Confidence:         FallbackConfidence,
		Sentiment:          sentiment,
		SentimentIntensity: intensity,
		ToxicityScore:      toxicity,
		HasPII:             false,
		RiskFactors:        riskFactors,
		Flagged:            toxicity > 0.5,
		IsFallback:         true,
	}
}
