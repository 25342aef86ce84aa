package bias

import (
	"context"
	"errors"
	"testing"

	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
)

func testTriageConfig() model.TriageConfig {
	return model.TriageConfig{
		CommercialIntentThreshold:  0.6,
		AttackPatternThreshold:     0.5,
		EngagementAnomalyThreshold: 0.7,
		ProfileSuspicionThreshold:  0.6,
		CombinedTriggerFloor:       0.3,
		CombinedTriggerCount:       2,
		FollowerRatioConstant:      10.0,
		NewAccountDays:             30,
	}
}

func TestAnalyzer_Fallback_CommercialDominant(t *testing.T) {
	analyzer := NewAnalyzer(nil, testTriageConfig())

	comment := model.Comment{
		ID:              "c1",
		Text:            "Must have! Buy it now with my discount code, check out the link",
		AuthorBio:       "Brand ambassador for @TechCorp @BeautyBrand @FashionHouse | Partnerships welcome",
		AuthorFollowers: 15420,
		Likes:           87,
	}
	classification := model.ClassificationResult{
		Category: model.CategoryPromotional, Confidence: 0.9,
		Sentiment: model.SentimentPositive, SentimentIntensity: 0.9,
	}

	result := analyzer.Fallback(comment, classification)

	if err := result.Validate(); err != nil {
		t.Fatalf("Fallback produced invalid result: %v", err)
	}
	if result.BiasType != model.BiasCommercial {
		t.Errorf("Expected commercial bias type, got %s", result.BiasType)
	}
	if !result.IsFallback {
		t.Error("Expected IsFallback")
	}
	if result.Confidence != FallbackConfidence {
		t.Errorf("Expected fallback confidence %v, got %v", FallbackConfidence, result.Confidence)
	}
}

func TestAnalyzer_Fallback_CoordinatedAttack(t *testing.T) {
	analyzer := NewAnalyzer(nil, testTriageConfig())

	age := 12
	comment := model.Comment{
		ID:              "c3",
		Text:            "This creator is a FRAUD! Don't trust anything they say. LIES! Save your money, it's a scam, they got exposed!",
		AuthorUsername:  "truth_teller_2024",
		AuthorBio:       "Nobody special",
		AuthorFollowers: 1,
		Likes:           156,
		AccountAgeDays:  &age,
	}
	classification := model.ClassificationResult{
		Category: model.CategoryOpinionated, Confidence: 0.9,
		Sentiment: model.SentimentNegative, SentimentIntensity: 0.9,
		ToxicityScore: 0.6,
	}

	result := analyzer.Fallback(comment, classification)

	if result.BiasType != model.BiasCoordinatedAttack {
		t.Errorf("Expected coordinated_attack, got %s (result %+v)", result.BiasType, result)
	}
	if result.RiskLevel == model.RiskLow {
		t.Errorf("Expected elevated risk, got %s", result.RiskLevel)
	}
}

func TestAnalyzer_Fallback_AuthenticRequiresLowScore(t *testing.T) {
	analyzer := NewAnalyzer(nil, testTriageConfig())

	comment := model.Comment{
		ID:              "c6",
		Text:            "Has anyone tried this with sensitive skin? I'm interested but worried about allergic reactions based on the ingredient list.",
		AuthorUsername:  "jenny_wellness",
		AuthorBio:       "Skincare journey | Sensitive skin struggles | Sharing what works",
		AuthorFollowers: 567,
		Likes:           8,
	}
	classification := model.ClassificationResult{
		Category: model.CategoryInformational, Confidence: 0.9,
		Sentiment: model.SentimentNeutral, SentimentIntensity: 0.2,
	}

	result := analyzer.Fallback(comment, classification)

	if result.BiasType != model.BiasAuthentic {
		t.Errorf("Expected authentic, got %s (result %+v)", result.BiasType, result)
	}
	if result.BiasScore >= 0.3 {
		t.Errorf("Authentic label requires bias score under 0.3, got %v", result.BiasScore)
	}
	if result.RiskLevel != model.RiskLow {
		t.Errorf("Expected low risk, got %s", result.RiskLevel)
	}
}

func TestAnalyzer_Fallback_WeightedScore(t *testing.T) {
	analyzer := NewAnalyzer(nil, testTriageConfig())

	comment := model.Comment{ID: "c", Text: "plain text", AuthorFollowers: 100}
	classification := model.ClassificationResult{
		Category: model.CategoryOpinionated, Confidence: 0.9, Sentiment: model.SentimentNeutral,
	}

	result := analyzer.Fallback(comment, classification)

	expected := 0.3*result.CommercialIndicators +
		0.3*result.AstroturfingIndicators +
		0.2*result.AttackCoordination +
		0.2*(1-result.AuthenticitySignals)
	if diff := result.BiasScore - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("BiasScore %v does not match weighted sub-scores %v", result.BiasScore, expected)
	}
}

func TestRiskLevelBuckets(t *testing.T) {
	tests := []struct {
		score float64
		want  model.RiskLevel
	}{
		{0.0, model.RiskLow},
		{0.29, model.RiskLow},
		{0.3, model.RiskMedium},
		{0.69, model.RiskMedium},
		{0.7, model.RiskHigh},
		{1.0, model.RiskHigh},
	}
	for _, tt := range tests {
		if got := riskLevel(tt.score); got != tt.want {
			t.Errorf("riskLevel(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAccountCredibility(t *testing.T) {
	tests := []struct {
		name    string
		comment model.Comment
		want    float64
	}{
		{"baseline", model.Comment{Text: "x"}, 0.5},
		{"verified", model.Comment{Text: "x", Verified: true}, 0.8},
		{"large following", model.Comment{Text: "x", AuthorFollowers: 100000}, 0.8},
		{"verified and huge following", model.Comment{Text: "x", Verified: true, AuthorFollowers: 500000}, 1.0},
		{"small following", model.Comment{Text: "x", AuthorFollowers: 10000}, 0.53},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccountCredibility(tt.comment)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAnalyzer_Analyze_OracleFirst(t *testing.T) {
	scripted := &model.BiasResult{
		BiasScore: 0.9, BiasType: model.BiasAstroturfing, RiskLevel: model.RiskHigh,
		AccountCredibility: 0.2, Confidence: 0.95,
	}
	fake := &oracle.Fake{BiasResults: []*model.BiasResult{scripted}}
	analyzer := NewAnalyzer(fake, testTriageConfig())

	result := analyzer.Analyze(context.Background(), model.Comment{ID: "c", Text: "x"}, model.ClassificationResult{}, model.RiskSignals{})

	if result.BiasType != model.BiasAstroturfing || result.IsFallback {
		t.Errorf("Expected scripted oracle result, got %+v", result)
	}
}

func TestAnalyzer_Analyze_OracleErrorFallsBack(t *testing.T) {
	fake := &oracle.Fake{BiasErrs: []error{errors.New("boom")}}
	analyzer := NewAnalyzer(fake, testTriageConfig())

	result := analyzer.Analyze(context.Background(), model.Comment{ID: "c", Text: "plain text"}, model.ClassificationResult{Category: model.CategoryOpinionated, Sentiment: model.SentimentNeutral}, model.RiskSignals{})

	if !result.IsFallback {
		t.Error("Expected fallback after oracle error")
	}
	if result.Confidence != FallbackConfidence {
		t.Errorf("Expected fallback confidence, got %v", result.Confidence)
	}
}
