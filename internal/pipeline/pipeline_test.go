package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Oracle.RequestsPerSecond = 1000
	cfg.Oracle.Burst = 1000
	return cfg
}

func testComments() []model.Comment {
	return []model.Comment{
		{
			ID:              "organic",
			Text:            "Good breakdown of the features. Appreciate you mentioning both pros and cons.",
			AuthorUsername:  "sarah_thompson",
			AuthorBio:       "Software engineer | Dog mom",
			AuthorFollowers: 1247,
			Likes:           23,
		},
		{
			ID:              "promo",
			Text:            "Use code SAVE20 for a discount, link in bio!",
			AuthorUsername:  "dealfinder",
			AuthorFollowers: 5000,
			Likes:           40,
		},
		{
			ID:              "amplified",
			Text:            "Everyone needs to see this right now",
			AuthorUsername:  "brand_new_voice",
			AuthorFollowers: 1,
			Likes:           156,
		},
	}
}

func TestPipeline_Run_FallbackOnly(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	result, err := p.Run(context.Background(), testComments())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(result.Records))
	}

	for _, record := range result.Records {
		if !record.Classification.IsFallback {
			t.Errorf("Record %s: expected fallback classification without an oracle", record.Comment.ID)
		}
		if record.Risk == nil {
			t.Errorf("Record %s: missing risk signals", record.Comment.ID)
		}
		if record.Routed() != (record.Bias != nil) {
			t.Errorf("Record %s: bias result presence must match routing", record.Comment.ID)
		}
		if record.Bias != nil && !record.Bias.IsFallback {
			t.Errorf("Record %s: expected fallback bias result", record.Comment.ID)
		}
	}

	if result.Summary.TotalCount != 3 {
		t.Errorf("Expected summary over 3 records, got %d", result.Summary.TotalCount)
	}
	if result.Summary.FallbackShare != 1.0 {
		t.Errorf("Expected full fallback share, got %v", result.Summary.FallbackShare)
	}
}

func TestPipeline_Run_RoutesSuspiciousComments(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	result, err := p.Run(context.Background(), testComments())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	byID := make(map[string]*model.PipelineRecord, len(result.Records))
	for _, record := range result.Records {
		byID[record.Comment.ID] = record
	}

	if byID["organic"].Routed() {
		t.Error("Organic comment should take the standard path")
	}
	if !byID["promo"].Routed() {
		t.Error("Discount-code comment should be routed for investigation")
	}
	if !byID["amplified"].Routed() {
		t.Error("Amplified comment should be routed for investigation")
	}

	if result.Summary.CleanCount != 1 || result.Summary.FlaggedCount != 2 {
		t.Errorf("Expected 1 clean / 2 flagged, got %d/%d",
			result.Summary.CleanCount, result.Summary.FlaggedCount)
	}
}

func TestPipeline_Run_ValidationFailsBatch(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	comments := []model.Comment{
		{ID: "ok", Text: "fine"},
		{ID: "broken", Text: ""},
	}

	result, err := p.Run(context.Background(), comments)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if result != nil {
		t.Error("Expected no result on validation failure")
	}

	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %T: %v", err, err)
	}
	if vErr.CommentID != "broken" {
		t.Errorf("Expected error for comment broken, got %s", vErr.CommentID)
	}
}

func TestPipeline_Run_OracleFailureDegradesPerComment(t *testing.T) {
	fake := &oracle.Fake{
		ClassifyErrs: []error{errors.New("deadline exceeded")},
		ClassifyResults: []*model.ClassificationResult{
			nil,
			{
				Category: model.CategoryInformational, Confidence: 0.95,
				Sentiment: model.SentimentNeutral,
			},
		},
	}

	cfg := testConfig()
	cfg.Concurrency.Workers = 1 // keep oracle call order deterministic
	cfg.Cache.Enabled = false
	p, err := NewPipelineWithProvider(cfg, fake)
	if err != nil {
		t.Fatalf("NewPipelineWithProvider failed: %v", err)
	}

	comments := []model.Comment{
		{ID: "first", Text: "hello there"},
		{ID: "second", Text: "general remark"},
	}

	result, err := p.Run(context.Background(), comments)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result.Records))
	}

	byID := make(map[string]*model.PipelineRecord)
	for _, record := range result.Records {
		byID[record.Comment.ID] = record
	}

	if !byID["first"].Classification.IsFallback {
		t.Error("First comment should have degraded to fallback")
	}
	if byID["second"].Classification.IsFallback {
		t.Error("Second comment should carry the oracle result")
	}
	if result.Summary.FallbackCount != 1 {
		t.Errorf("Expected fallback count 1, got %d", result.Summary.FallbackCount)
	}
}

func TestPipeline_Run_CachedClassification(t *testing.T) {
	scripted := &model.ClassificationResult{
		Category: model.CategoryInformational, Confidence: 0.95,
		Sentiment: model.SentimentNeutral,
	}
	fake := &oracle.Fake{ClassifyResults: []*model.ClassificationResult{scripted, scripted}}

	cfg := testConfig()
	cfg.Concurrency.Workers = 1 // identical texts must hit the cache, not race past it
	p, err := NewPipelineWithProvider(cfg, fake)
	if err != nil {
		t.Fatalf("NewPipelineWithProvider failed: %v", err)
	}

	comments := []model.Comment{
		{ID: "a", Text: "identical spam text"},
		{ID: "b", Text: "identical spam text"},
	}

	if _, err := p.Run(context.Background(), comments); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if fake.ClassifyCalls() != 1 {
		t.Errorf("Expected 1 oracle call for identical texts, got %d", fake.ClassifyCalls())
	}
}

func TestPipeline_Run_CancelledContextStillConsistent(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	comments := make([]model.Comment, 40)
	for i := range comments {
		comments[i] = model.Comment{ID: "c", Text: "hello"}
	}

	result, err := p.Run(ctx, comments)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The batch may be truncated, but the summary covers exactly the records
	// that completed.
	if len(result.Records) > len(comments) {
		t.Fatalf("More records than comments: %d", len(result.Records))
	}
	if result.Summary.TotalCount != len(result.Records) {
		t.Errorf("Summary covers %d records but %d were returned",
			result.Summary.TotalCount, len(result.Records))
	}
}

func TestPipeline_NewPipeline_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Triage.CommercialIntentThreshold = 2.0

	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("Expected configuration error, got nil")
	}
}

func TestRenderJSON(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	result, err := p.Run(context.Background(), testComments())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := RenderJSON(result, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read report failed: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if len(decoded.Records) != len(result.Records) {
		t.Errorf("Expected %d records in report, got %d", len(result.Records), len(decoded.Records))
	}
}
