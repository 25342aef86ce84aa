package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/signalsift/signalsift/internal/cache"
	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
)

func oracleResult() *model.ClassificationResult {
	return &model.ClassificationResult{
		Category:           model.CategoryFactual,
		Confidence:         0.92,
		Sentiment:          model.SentimentNeutral,
		SentimentIntensity: 0.1,
		ToxicityScore:      0.05,
	}
}

func TestClassifier_NilProvider_UsesFallback(t *testing.T) {
	classifier := NewClassifier(nil, nil, 0)

	result := classifier.Classify(context.Background(), model.Comment{ID: "c1", Text: "I think this is fine"})

	if !result.IsFallback {
		t.Error("Expected fallback result without a provider")
	}
	if result.Confidence != FallbackConfidence {
		t.Errorf("Expected fallback confidence, got %v", result.Confidence)
	}
}

func TestClassifier_OracleSuccess(t *testing.T) {
	fake := &oracle.Fake{ClassifyResults: []*model.ClassificationResult{oracleResult()}}
	classifier := NewClassifier(fake, nil, 0)

	result := classifier.Classify(context.Background(), model.Comment{ID: "c1", Text: "the data shows"})

	if result.IsFallback {
		t.Error("Expected oracle result, got fallback")
	}
	if result.Category != model.CategoryFactual {
		t.Errorf("Expected factual, got %s", result.Category)
	}
}

func TestClassifier_OracleError_DegradesToFallback(t *testing.T) {
	fake := &oracle.Fake{ClassifyErrs: []error{errors.New("connection refused")}}
	classifier := NewClassifier(fake, nil, 0)

	result := classifier.Classify(context.Background(), model.Comment{ID: "c1", Text: "I think this is fine"})

	if !result.IsFallback {
		t.Error("Expected fallback result after oracle error")
	}
	if result.Confidence != FallbackConfidence {
		t.Errorf("Expected fallback confidence %v, got %v", FallbackConfidence, result.Confidence)
	}
}

func TestClassifier_CacheHit_SkipsOracle(t *testing.T) {
	fake := &oracle.Fake{ClassifyResults: []*model.ClassificationResult{oracleResult()}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := NewClassifier(fake, c, time.Minute)

	comment := model.Comment{ID: "c1", Text: "identical spam text"}

	first := classifier.Classify(context.Background(), comment)
	second := classifier.Classify(context.Background(), model.Comment{ID: "c2", Text: "identical spam text"})

	if fake.ClassifyCalls() != 1 {
		t.Errorf("Expected 1 oracle call, got %d", fake.ClassifyCalls())
	}
	if first.Category != second.Category || first.Confidence != second.Confidence {
		t.Errorf("Cached result differs: %+v vs %+v", first, second)
	}
}

func TestClassifier_FallbackNotCached(t *testing.T) {
	fake := &oracle.Fake{ClassifyErrs: []error{errors.New("timeout")},
		ClassifyResults: []*model.ClassificationResult{nil, oracleResult()}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	classifier := NewClassifier(fake, c, time.Minute)

	comment := model.Comment{ID: "c1", Text: "some text"}

	first := classifier.Classify(context.Background(), comment)
	if !first.IsFallback {
		t.Fatal("Expected first call to fall back")
	}

	// The failed call must not have poisoned the cache; the retry reaches
	// the oracle and gets the real judgment.
	second := classifier.Classify(context.Background(), comment)
	if second.IsFallback {
		t.Error("Expected second call to reach the oracle")
	}
	if fake.ClassifyCalls() != 2 {
		t.Errorf("Expected 2 oracle calls, got %d", fake.ClassifyCalls())
	}
}
