package worker

import (
	"context"

	"github.com/signalsift/signalsift/internal/model"
)

// Analyzer defines the interface for processing a single comment end to end
type Analyzer interface {
	ProcessComment(ctx context.Context, comment model.Comment) *model.PipelineRecord
}

// AnalyzeJob runs one comment through the pipeline
type AnalyzeJob struct {
	Comment  model.Comment
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	record := j.Analyzer.ProcessComment(ctx, j.Comment)
	return &AnalyzeResult{CommentID: j.Comment.ID, Record: record}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	CommentID string
	Record    *model.PipelineRecord
	Error     error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple comments concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process runs all comments through the pipeline concurrently and returns the
// completed records. On cancellation only the completed records come back.
func (b *BatchProcessor) Process(ctx context.Context, comments []model.Comment) []*model.PipelineRecord {
	if len(comments) == 0 {
		return []*model.PipelineRecord{}
	}

	pool := NewPool(ctx, b.concurrency, len(comments))
	pool.Start()

	for _, comment := range comments {
		pool.Submit(&AnalyzeJob{Comment: comment, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	records := make([]*model.PipelineRecord, 0, len(results))
	for _, result := range results {
		if r, ok := result.(*AnalyzeResult); ok && r.Record != nil {
			records = append(records, r.Record)
		}
	}
	return records
}
