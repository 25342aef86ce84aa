// Package bias performs deep analysis of comments routed to
// bias_investigation: was this engagement bought, coordinated, or faked?
// Like classification, the oracle does the real judgment and a deterministic
// keyword/ratio substitute takes over whenever the oracle fails.
package bias

import (
	"context"
	"strings"

	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
	"github.com/signalsift/signalsift/internal/triage"
)

// Sub-score weights for the combined bias score
const (
	commercialWeight   = 0.3
	astroturfingWeight = 0.3
	coordinationWeight = 0.2
	authenticityWeight = 0.2
)

// FallbackConfidence is the fixed confidence of a heuristic bias result
const FallbackConfidence = 0.6

// authenticBiasScoreLimit: below this bias score an authenticity-dominant
// comment is labeled authentic rather than by its highest manipulation score.
const authenticBiasScoreLimit = 0.3

var (
	promoTextKeywords = []string{
		"buy", "discount", "sale", "code", "link", "check out", "must have",
		"life changing",
	}
	genericBioKeywords = []string{
		"exposing", "truth", "follow for", "real reviews", "honest reviews",
		"dm for", "partnerships welcome",
	}
)

// Analyzer runs the bias-investigation stage
type Analyzer struct {
	provider  oracle.Provider // nil disables the oracle
	cfg       model.TriageConfig
	watchlist []string // attack-language watchlist for coordination scoring
}

// NewAnalyzer creates a bias analyzer. The triage config supplies the shared
// follower-ratio and new-account constants.
func NewAnalyzer(provider oracle.Provider, cfg model.TriageConfig) *Analyzer {
	return &Analyzer{
		provider: provider,
		cfg:      cfg,
		watchlist: []string{
			"fraud", "scam", "liar", "lies", "don't trust", "exposed",
			"save your money", "wake up people",
		},
	}
}

// Analyze produces a BiasResult for a routed comment. It is total: oracle
// failures degrade to the deterministic fallback, never to an error.
func (a *Analyzer) Analyze(ctx context.Context, comment model.Comment, classification model.ClassificationResult, signals model.RiskSignals) model.BiasResult {
	if a.provider != nil {
		if result, err := a.provider.AnalyzeBias(ctx, comment, classification); err == nil {
			return *result
		}
	}
	return a.Fallback(comment, classification)
}

// Fallback is the deterministic keyword/ratio substitute. Pure function of
// the comment and its classification; always structurally valid.
func (a *Analyzer) Fallback(comment model.Comment, classification model.ClassificationResult) model.BiasResult {
	commercial := a.commercialIndicators(comment)
	astroturfing := a.astroturfingIndicators(comment, classification)
	coordination := a.attackCoordination(comment)
	authenticity := a.authenticitySignals(comment)

	score := clamp(commercialWeight*commercial +
		astroturfingWeight*astroturfing +
		coordinationWeight*coordination +
		authenticityWeight*(1-authenticity))

	return model.BiasResult{
		BiasScore:              score,
		BiasType:               classifyBiasType(commercial, astroturfing, coordination, authenticity, score),
		RiskLevel:              riskLevel(score),
		CommercialIndicators:   commercial,
		AstroturfingIndicators: astroturfing,
		AttackCoordination:     coordination,
		AuthenticitySignals:    authenticity,
		AccountCredibility:     AccountCredibility(comment),
		Confidence:             FallbackConfidence,
		IsFallback:             true,
	}
}

// classifyBiasType picks the dominant manipulation pattern, unless
// authenticity dominates all three and the combined score stays low.
func classifyBiasType(commercial, astroturfing, coordination, authenticity, score float64) model.BiasType {
	if authenticity >= commercial && authenticity >= astroturfing && authenticity >= coordination &&
		score < authenticBiasScoreLimit {
		return model.BiasAuthentic
	}

	biasType := model.BiasCommercial
	highest := commercial
	if astroturfing > highest {
		biasType, highest = model.BiasAstroturfing, astroturfing
	}
	if coordination > highest {
		biasType = model.BiasCoordinatedAttack
	}
	return biasType
}

// riskLevel buckets a bias score
func riskLevel(score float64) model.RiskLevel {
	switch {
	case score < 0.3:
		return model.RiskLow
	case score < 0.7:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// commercialIndicators reuses the bio/brand detection: saturated brand
// mentions plus promotional language in the text.
func (a *Analyzer) commercialIndicators(comment model.Comment) float64 {
	brand := float64(triage.BrandMentionCount(comment.AuthorBio)) / 3
	if brand > 1.0 {
		brand = 1.0
	}

	text := strings.ToLower(comment.Text)
	matches := 0
	for _, keyword := range promoTextKeywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}
	promo := float64(matches) / float64(len(promoTextKeywords))

	return clamp(0.6*brand + 0.4*promo)
}

// astroturfingIndicators tests account-age-vs-opinion-strength mismatch and
// generic campaign-style bio language.
func (a *Analyzer) astroturfingIndicators(comment model.Comment, classification model.ClassificationResult) float64 {
	score := 0.0

	// A brand-new account posting at full intensity is the classic astroturf
	// shape; unknown account ages count as old and contribute nothing.
	if triage.IsNewAccount(comment, a.cfg.NewAccountDays) && classification.SentimentIntensity > 0.7 {
		score += 0.5
	}

	bio := strings.ToLower(comment.AuthorBio)
	matches := 0
	for _, keyword := range genericBioKeywords {
		if strings.Contains(bio, keyword) {
			matches++
		}
	}
	generic := float64(matches) / 2 // saturates at two generic phrases
	if generic > 1.0 {
		generic = 1.0
	}
	score += 0.5 * generic
	return clamp(score)
}

// attackCoordination tests language-pattern overlap with the watchlist,
// boosted by shouting.
func (a *Analyzer) attackCoordination(comment model.Comment) float64 {
	text := strings.ToLower(comment.Text)

	matches := 0
	for _, pattern := range a.watchlist {
		if strings.Contains(text, pattern) {
			matches++
		}
	}
	score := float64(matches) / float64(len(a.watchlist))

	if triage.CapsRatio(comment.Text) > 0.4 {
		score += 0.3
	}
	return clamp(score)
}

// authenticitySignals is the complement source: a coherent non-promotional
// bio, normal engagement, and specific rather than sloganized feedback.
func (a *Analyzer) authenticitySignals(comment model.Comment) float64 {
	score := 0.0

	if comment.AuthorBio != "" && triage.BrandMentionCount(comment.AuthorBio) == 0 {
		score += 0.4
	}

	if triage.EngagementRatio(comment)*a.cfg.FollowerRatioConstant <= 1.0 {
		score += 0.3
	}

	// Specific feedback runs longer and asks questions; slogans don't.
	if len(comment.Text) >= 80 || strings.Contains(comment.Text, "?") {
		score += 0.3
	}
	return clamp(score)
}

// AccountCredibility estimates profile authenticity: verified accounts and
// established followings earn trust, capped at 1.0.
func AccountCredibility(comment model.Comment) float64 {
	credibility := 0.5

	if comment.Verified {
		credibility += 0.3
	}

	if comment.AuthorFollowers > 0 {
		boost := float64(comment.AuthorFollowers) / 100000 * 0.3
		if boost > 0.3 {
			boost = 0.3
		}
		credibility += boost
	}

	return clamp(credibility)
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
