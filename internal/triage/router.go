// Package triage decides which classified comments need deep bias
// investigation and which can take the standard path. Scoring is pure
// arithmetic over keyword and ratio heuristics: deterministic, reproducible
// bit-for-bit for identical inputs.
package triage

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/signalsift/signalsift/internal/model"
)

// Scoring vocabularies. Matching is lowercase substring matching over
// distinct entries, mirroring the fallback classifier.
var (
	commercialVocabulary = []string{
		"use code", "promo", "discount", "sale", "buy now", "link in bio",
		"affiliate", "sponsored", "ambassador", "partner",
	}
	attackVocabulary = []string{
		"fraud", "scam", "liar", "lies", "fake", "don't trust", "exposed",
		"save your money", "stop buying", "boycott",
	}
	brandBioKeywords = []string{
		"ambassador", "affiliate", "partner", "sponsored", "brand",
		"pr friendly", "collab",
	}
)

var (
	discountCodeRE    = regexp.MustCompile(`(?i)\bcode\s+[a-z0-9]{3,}\b`)
	genericUsernameRE = regexp.MustCompile(`^[a-z][a-z._-]*(19|20)\d{2}$`)
	atMentionRE       = regexp.MustCompile(`@\w+`)
)

// Fixed scoring constants. The configurable knobs live in model.TriageConfig;
// these shape the individual sub-scores.
const (
	capsRatioLimit  = 0.4 // above this share of uppercase letters, attack bonus applies
	capsBonus       = 0.3
	newAccountBonus = 0.3 // young account posting with high intensity
	highIntensity   = 0.7

	discountCodeWeight = 0.65 // a discount code alone is commercial intent
	noDisclosureWeight = 0.2  // promotional language without #ad/#sponsored

	brandWeight       = 0.7
	brandSaturation   = 3 // brand mentions at which the bio sub-score saturates
	genericUserWeight = 0.3
)

// Trigger names carried in RiskSignals.Triggers
const (
	TriggerCommercial = "commercial_intent"
	TriggerAttack     = "attack_pattern"
	TriggerEngagement = "engagement_anomaly"
	TriggerProfile    = "profile_suspicion"
)

// Router computes risk signals and the routing decision
type Router struct {
	cfg model.TriageConfig
}

// NewRouter creates a router with the given thresholds
func NewRouter(cfg model.TriageConfig) *Router {
	return &Router{cfg: cfg}
}

// Route computes the four risk sub-scores for a classified comment and
// decides between bias_investigation and standard_processing. A fast
// pre-filter may short-circuit to bias_investigation; every pre-filter
// condition is gated so that full scoring would have made the same call.
func (r *Router) Route(classification model.ClassificationResult, comment model.Comment) model.RiskSignals {
	if trigger, ok := r.preFilter(classification, comment); ok {
		// Short-circuit: only the sub-score that justified the decision is
		// computed; the rest stay zero.
		signals := model.RiskSignals{
			Triggers: []string{"pre_filter:" + trigger},
			Route:    model.RouteBiasInvestigation,
		}
		switch trigger {
		case "brand_bio":
			signals.ProfileSuspicion = r.profileSuspicion(comment)
		case "discount_code":
			signals.CommercialIntent = r.commercialIntent(comment)
		case "engagement_ratio", "new_account":
			signals.EngagementAnomaly = r.engagementAnomaly(classification, comment)
		}
		return signals
	}
	return r.fullRoute(classification, comment)
}

// fullRoute runs the complete four-score path
func (r *Router) fullRoute(classification model.ClassificationResult, comment model.Comment) model.RiskSignals {
	signals := r.score(classification, comment)

	switch {
	case signals.CommercialIntent > r.cfg.CommercialIntentThreshold,
		signals.AttackPattern > r.cfg.AttackPatternThreshold,
		signals.EngagementAnomaly > r.cfg.EngagementAnomalyThreshold,
		signals.ProfileSuspicion > r.cfg.ProfileSuspicionThreshold:
		signals.Route = model.RouteBiasInvestigation
	case len(signals.Triggers) >= r.cfg.CombinedTriggerCount:
		// Co-occurrence rule: several weak signals firing at once.
		signals.Route = model.RouteBiasInvestigation
	default:
		signals.Route = model.RouteStandardProcessing
	}
	return signals
}

// score computes the four sub-scores and names the triggers that fired
func (r *Router) score(classification model.ClassificationResult, comment model.Comment) model.RiskSignals {
	signals := model.RiskSignals{
		CommercialIntent:  r.commercialIntent(comment),
		AttackPattern:     r.attackPattern(comment),
		EngagementAnomaly: r.engagementAnomaly(classification, comment),
		ProfileSuspicion:  r.profileSuspicion(comment),
	}

	for _, t := range []struct {
		name  string
		score float64
	}{
		{TriggerCommercial, signals.CommercialIntent},
		{TriggerAttack, signals.AttackPattern},
		{TriggerEngagement, signals.EngagementAnomaly},
		{TriggerProfile, signals.ProfileSuspicion},
	} {
		if t.score >= r.cfg.CombinedTriggerFloor {
			signals.Triggers = append(signals.Triggers, t.name)
		}
	}
	return signals
}

// preFilter checks single deterministic conditions that let us route to
// bias_investigation without the full scorer. Each condition is enabled only
// while the configured thresholds keep it implied by full scoring, so the
// pre-filter can never produce a routing full scoring would have rejected.
func (r *Router) preFilter(classification model.ClassificationResult, comment model.Comment) (string, bool) {
	// Brand-heavy bio saturates the profile sub-score at >= brandWeight.
	if BrandMentionCount(comment.AuthorBio) > 2 && r.cfg.ProfileSuspicionThreshold < brandWeight {
		return "brand_bio", true
	}

	// A discount code alone carries discountCodeWeight of commercial intent.
	if discountCodeRE.MatchString(comment.Text) && r.cfg.CommercialIntentThreshold < discountCodeWeight {
		return "discount_code", true
	}

	// Engagement ratio saturating the anomaly score.
	ratio := EngagementRatio(comment)
	if ratio*r.cfg.FollowerRatioConstant >= 1.0 && r.cfg.EngagementAnomalyThreshold < 1.0 {
		return "engagement_ratio", true
	}

	// Young account, high-intensity sentiment, and an already elevated ratio:
	// the anomaly bonus pushes the score past the default threshold.
	if IsNewAccount(comment, r.cfg.NewAccountDays) &&
		classification.SentimentIntensity > highIntensity &&
		ratio*r.cfg.FollowerRatioConstant > r.cfg.EngagementAnomalyThreshold-newAccountBonus &&
		r.cfg.EngagementAnomalyThreshold <= 0.7 {
		return "new_account", true
	}

	return "", false
}

// commercialIntent measures promotional pressure across text and bio
func (r *Router) commercialIntent(comment model.Comment) float64 {
	combined := strings.ToLower(comment.Text + " " + comment.AuthorBio)

	matches := 0
	for _, keyword := range commercialVocabulary {
		if strings.Contains(combined, keyword) {
			matches++
		}
	}
	score := float64(matches) / float64(len(commercialVocabulary))

	if discountCodeRE.MatchString(comment.Text) {
		score += discountCodeWeight
	}

	// Promotional language with no disclosure token is its own signal.
	if matches > 0 && !strings.Contains(combined, "#ad") && !strings.Contains(combined, "#sponsored") {
		score += noDisclosureWeight
	}

	return clamp(score)
}

// attackPattern measures hostile coordination language in the text
func (r *Router) attackPattern(comment model.Comment) float64 {
	text := strings.ToLower(comment.Text)

	matches := 0
	for _, keyword := range attackVocabulary {
		if strings.Contains(text, keyword) {
			matches++
		}
	}
	score := float64(matches) / float64(len(attackVocabulary))

	if CapsRatio(comment.Text) > capsRatioLimit {
		score += capsBonus
	}

	return clamp(score)
}

// engagementAnomaly flags inorganic amplification: high likes against a low
// follower count, worsened by a brand-new account posting at high intensity.
func (r *Router) engagementAnomaly(classification model.ClassificationResult, comment model.Comment) float64 {
	score := EngagementRatio(comment) * r.cfg.FollowerRatioConstant

	if IsNewAccount(comment, r.cfg.NewAccountDays) && classification.SentimentIntensity > highIntensity {
		score += newAccountBonus
	}

	return clamp(score)
}

// profileSuspicion combines bio brand mentions with a generic-username test
func (r *Router) profileSuspicion(comment model.Comment) float64 {
	brand := float64(BrandMentionCount(comment.AuthorBio)) / brandSaturation
	if brand > 1.0 {
		brand = 1.0
	}

	generic := 0.0
	if genericUsernameRE.MatchString(strings.ToLower(comment.AuthorUsername)) {
		generic = 1.0
	}

	return clamp(brandWeight*brand + genericUserWeight*generic)
}

// BrandMentionCount counts brand keywords and @-handles in a bio
func BrandMentionCount(bio string) int {
	lower := strings.ToLower(bio)
	count := 0
	for _, keyword := range brandBioKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count + len(atMentionRE.FindAllString(bio, -1))
}

// EngagementRatio is likes over followers, guarding the zero-follower case
func EngagementRatio(comment model.Comment) float64 {
	followers := comment.AuthorFollowers
	if followers < 1 {
		followers = 1
	}
	return float64(comment.Likes) / float64(followers)
}

// IsNewAccount reports whether the account age is known and under the
// configured threshold. Unknown ages count as old.
func IsNewAccount(comment model.Comment, newAccountDays int) bool {
	return comment.AccountAgeDays != nil && *comment.AccountAgeDays < newAccountDays
}

// CapsRatio is the share of alphabetic characters that are uppercase
func CapsRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
