package classify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/signalsift/signalsift/internal/cache"
	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
)

// Classifier runs the classification stage: oracle first, deterministic
// fallback on any OracleError. Classify is total — one comment's oracle
// failure degrades that comment's confidence, nothing else.
type Classifier struct {
	provider oracle.Provider // nil disables the oracle entirely
	cache    cache.Cache     // nil disables caching
	cacheTTL time.Duration
}

// NewClassifier creates a classifier. A nil provider yields a fallback-only
// classifier; a nil cache disables response caching.
func NewClassifier(provider oracle.Provider, c cache.Cache, ttl time.Duration) *Classifier {
	return &Classifier{
		provider: provider,
		cache:    c,
		cacheTTL: ttl,
	}
}

// Classify produces exactly one ClassificationResult for the comment
func (c *Classifier) Classify(ctx context.Context, comment model.Comment) model.ClassificationResult {
	if c.provider == nil {
		return FallbackClassify(comment)
	}

	key := cache.ClassifyKey(comment.Text)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var cached model.ClassificationResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
			_ = c.cache.Delete(key)
		}
	}

	result, err := c.provider.Classify(ctx, comment)
	if err != nil {
		return FallbackClassify(comment)
	}

	if c.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}

	return *result
}
