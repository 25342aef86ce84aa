// Package pipeline orchestrates the full analysis flow: validate, classify,
// route, bias-analyze, aggregate. Comments are processed independently on a
// bounded worker pool; the aggregator is the only point where their results
// meet.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/signalsift/signalsift/internal/aggregate"
	"github.com/signalsift/signalsift/internal/bias"
	"github.com/signalsift/signalsift/internal/cache"
	"github.com/signalsift/signalsift/internal/classify"
	"github.com/signalsift/signalsift/internal/model"
	"github.com/signalsift/signalsift/internal/oracle"
	"github.com/signalsift/signalsift/internal/triage"
	"github.com/signalsift/signalsift/internal/worker"
)

// Pipeline wires the analysis stages together
type Pipeline struct {
	classifier *classify.Classifier
	router     *triage.Router
	analyzer   *bias.Analyzer
	limiter    *worker.Limiter // nil when the oracle is disabled
	config     *model.Config
}

// Result contains one batch's completed records and their aggregate view
type Result struct {
	Records []*model.PipelineRecord `json:"records"`
	Summary model.AggregateSummary  `json:"summary"`
}

// NewPipeline creates a pipeline from configuration. Configuration errors
// fail here, before any comment is touched.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := oracle.NewProvider(oracle.ConfigFromModel(cfg.Oracle))
	if err != nil {
		return nil, fmt.Errorf("create oracle provider: %w", err)
	}

	return newPipeline(cfg, provider), nil
}

// NewPipelineWithProvider wires an explicit oracle provider, bypassing the
// factory. Used by tests and embedders with their own provider.
func NewPipelineWithProvider(cfg *model.Config, provider oracle.Provider) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newPipeline(cfg, provider), nil
}

func newPipeline(cfg *model.Config, provider oracle.Provider) *Pipeline {
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	var limiter *worker.Limiter
	if provider != nil {
		limiter = worker.NewLimiter(cfg.Oracle.RequestsPerSecond, cfg.Oracle.Burst)
	}

	return &Pipeline{
		classifier: classify.NewClassifier(provider, responseCache, cfg.Cache.TTL),
		router:     triage.NewRouter(cfg.Triage),
		analyzer:   bias.NewAnalyzer(provider, cfg.Triage),
		limiter:    limiter,
		config:     cfg,
	}
}

// Run processes one batch of comments and returns the per-comment records
// plus the aggregate summary. Malformed comments fail the batch up front with
// a ValidationError; oracle failures never do — they degrade individual
// records to fallback results. On cancellation the result is truncated to
// the records that completed, and the summary covers exactly those.
func (p *Pipeline) Run(ctx context.Context, comments []model.Comment) (*Result, error) {
	for i := range comments {
		if err := comments[i].Validate(); err != nil {
			return nil, err
		}
	}

	r := &run{pipeline: p, aggregator: aggregate.NewAggregator()}

	batch := worker.NewBatchProcessor(r, p.config.Concurrency.Workers)
	records := batch.Process(ctx, comments)

	return &Result{
		Records: records,
		Summary: r.aggregator.Snapshot(),
	}, nil
}

// run binds one batch's aggregator to the pipeline stages
type run struct {
	pipeline   *Pipeline
	aggregator *aggregate.Aggregator
}

// ProcessComment takes one validated comment through every stage. It is
// total: by the time it returns, the record is complete and ingested. A
// cancelled context makes the oracle calls fail fast, which lands the record
// on the fallback path rather than abandoning it half-done.
func (r *run) ProcessComment(ctx context.Context, comment model.Comment) *model.PipelineRecord {
	p := r.pipeline

	p.waitOracle(ctx)
	classification := p.classifier.Classify(ctx, comment)

	record := &model.PipelineRecord{
		Comment:        comment,
		Classification: classification,
	}

	signals := p.router.Route(classification, comment)
	record.Risk = &signals

	if signals.Route == model.RouteBiasInvestigation {
		p.waitOracle(ctx)
		biasResult := p.analyzer.Analyze(ctx, comment, classification, signals)
		record.Bias = &biasResult
	}

	r.aggregator.Ingest(record)
	return record
}

// waitOracle paces oracle calls. A cancelled wait is not an error here: the
// subsequent oracle call fails fast and the fallback takes over.
func (p *Pipeline) waitOracle(ctx context.Context) {
	if p.limiter == nil {
		return
	}
	_ = p.limiter.Wait(ctx)
}
