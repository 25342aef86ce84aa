package oracle

import (
	"context"
	"sync"

	"github.com/signalsift/signalsift/internal/model"
)

// Fake is a scriptable in-memory oracle for tests and offline runs. Each call
// consumes the next scripted response; when the script runs out the fake
// returns a timeout wrapped as an OracleError, which exercises the fallback
// path downstream.
type Fake struct {
	ClassifyResults []*model.ClassificationResult
	ClassifyErrs    []error
	BiasResults     []*model.BiasResult
	BiasErrs        []error

	mu            sync.Mutex
	classifyCalls int
	biasCalls     int
}

// Name returns the provider name
func (f *Fake) Name() string { return "fake" }

// Classify returns the next scripted classification
func (f *Fake) Classify(_ context.Context, comment model.Comment) (*model.ClassificationResult, error) {
	f.mu.Lock()
	i := f.classifyCalls
	f.classifyCalls++
	f.mu.Unlock()
	if i < len(f.ClassifyErrs) && f.ClassifyErrs[i] != nil {
		return nil, &model.OracleError{Op: "classify", Err: f.ClassifyErrs[i]}
	}
	if i < len(f.ClassifyResults) {
		return f.ClassifyResults[i], nil
	}
	return nil, &model.OracleError{Op: "classify", Err: context.DeadlineExceeded}
}

// AnalyzeBias returns the next scripted bias result
func (f *Fake) AnalyzeBias(_ context.Context, comment model.Comment, _ model.ClassificationResult) (*model.BiasResult, error) {
	f.mu.Lock()
	i := f.biasCalls
	f.biasCalls++
	f.mu.Unlock()
	if i < len(f.BiasErrs) && f.BiasErrs[i] != nil {
		return nil, &model.OracleError{Op: "bias", Err: f.BiasErrs[i]}
	}
	if i < len(f.BiasResults) {
		return f.BiasResults[i], nil
	}
	return nil, &model.OracleError{Op: "bias", Err: context.DeadlineExceeded}
}

// ClassifyCalls reports how many classification calls were made
func (f *Fake) ClassifyCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.classifyCalls
}

// BiasCalls reports how many bias calls were made
func (f *Fake) BiasCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.biasCalls
}
