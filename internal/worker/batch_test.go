package worker

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/signalsift/signalsift/internal/model"
)

// countingAnalyzer implements Analyzer
type countingAnalyzer struct {
	calls int32
}

func (a *countingAnalyzer) ProcessComment(ctx context.Context, comment model.Comment) *model.PipelineRecord {
	atomic.AddInt32(&a.calls, 1)
	return &model.PipelineRecord{
		Comment: comment,
		Classification: model.ClassificationResult{
			Category: model.CategoryInformational, Confidence: 0.7,
			Sentiment: model.SentimentNeutral, IsFallback: true,
		},
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	analyzer := &countingAnalyzer{}
	processor := NewBatchProcessor(analyzer, 4)

	comments := make([]model.Comment, 25)
	for i := range comments {
		comments[i] = model.Comment{ID: "c", Text: "hello"}
	}

	records := processor.Process(context.Background(), comments)

	if len(records) != len(comments) {
		t.Errorf("expected %d records, got %d", len(comments), len(records))
	}
	if atomic.LoadInt32(&analyzer.calls) != int32(len(comments)) {
		t.Errorf("expected %d analyzer calls, got %d", len(comments), analyzer.calls)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	processor := NewBatchProcessor(&countingAnalyzer{}, 4)

	records := processor.Process(context.Background(), nil)

	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
