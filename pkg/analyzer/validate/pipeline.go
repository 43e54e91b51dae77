// Package validate implements the multi-step validation pipeline: a
// registry of per-step executors run in parallel or sequentially, with
// per-step timeout and panic isolation, weighted scoring, and quality gates.
package validate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/augur-dev/augur/internal/fileproc"
	"github.com/augur-dev/augur/pkg/lang"
	"github.com/augur-dev/augur/pkg/models"
	"github.com/augur-dev/augur/pkg/source"
	"github.com/rs/xid"
	"github.com/sourcegraph/conc/pool"
)

// Target is the resolved input handed to step executors.
type Target struct {
	FilePath string
	Content  string
	Language string
}

// Outcome is what an executor reports back. The pipeline fills in the step
// name, duration, and score.
type Outcome struct {
	Passed   bool
	Issues   []models.QualityIssue
	Metadata map[string]any
}

// Executor runs one validation step against a target. Returning an error (or
// panicking) produces a synthetic critical-error result; it never aborts the
// rest of the run.
type Executor func(ctx context.Context, target Target) (Outcome, error)

// Scanner discovers project files for ValidateProject.
type Scanner interface {
	ScanDir(root string) ([]string, error)
}

// Pipeline executes validation steps against files and projects.
type Pipeline struct {
	mu        sync.RWMutex
	executors map[models.ValidationStep]Executor
	config    Config

	src     source.Reader
	scanner Scanner
	onError fileproc.ErrorFunc
}

// Option is a functional option for configuring Pipeline.
type Option func(*Pipeline)

// WithSource sets the file content reader.
func WithSource(src source.Reader) Option {
	return func(p *Pipeline) { p.src = src }
}

// WithScanner sets the project file scanner.
func WithScanner(s Scanner) Option {
	return func(p *Pipeline) { p.scanner = s }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) { p.config = cfg }
}

// WithErrorHandler sets the callback invoked when a file fails entirely
// during a project run.
func WithErrorHandler(fn fileproc.ErrorFunc) Option {
	return func(p *Pipeline) { p.onError = fn }
}

// New creates a pipeline with the baseline executors registered.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		executors: defaultExecutors(),
		config:    DefaultConfig(),
		src:       source.NewFS(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterExecutor replaces the executor for a step. This is the extension
// point for servers that validate with real tooling.
func (p *Pipeline) RegisterExecutor(step models.ValidationStep, exec Executor) {
	p.mu.Lock()
	p.executors[step] = exec
	p.mu.Unlock()
}

// UpdateConfig replaces the pipeline configuration.
func (p *Pipeline) UpdateConfig(cfg Config) {
	p.mu.Lock()
	p.config = cfg
	p.mu.Unlock()
}

// Config returns a snapshot of the current configuration.
func (p *Pipeline) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}

// Input describes one file validation request.
type Input struct {
	FilePath string
	Content  string
	Language string
	// EnabledSteps defaults to all steps in declaration order.
	EnabledSteps []models.ValidationStep
}

// ValidateFile runs the enabled steps against one file. With parallel
// execution the result order follows completion, not request order;
// sequential execution preserves the requested order. Step failures are
// contained: the returned error covers only target resolution.
func (p *Pipeline) ValidateFile(ctx context.Context, in Input) ([]models.ValidationResult, error) {
	content := in.Content
	if content == "" {
		text, err := p.src.ReadFile(in.FilePath)
		if err != nil {
			return nil, err
		}
		content = text
	}

	language := in.Language
	if language == "" {
		language = lang.DetectLanguage(in.FilePath)
	}

	target := Target{FilePath: in.FilePath, Content: content, Language: language}

	steps := in.EnabledSteps
	if len(steps) == 0 {
		steps = models.AllSteps()
	}

	cfg := p.Config()

	enabled := make([]models.ValidationStep, 0, len(steps))
	for _, step := range steps {
		if cfg.stepConfig(step).Enabled {
			enabled = append(enabled, step)
		}
	}

	if len(enabled) == 0 {
		return []models.ValidationResult{}, nil
	}

	if cfg.Parallel {
		return p.runParallel(ctx, enabled, target, cfg), nil
	}
	return p.runSequential(ctx, enabled, target, cfg), nil
}

func (p *Pipeline) runParallel(ctx context.Context, steps []models.ValidationStep, target Target, cfg Config) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(steps))
	var mu sync.Mutex

	pl := pool.New().WithMaxGoroutines(len(steps))
	for _, step := range steps {
		pl.Go(func() {
			result := p.runStep(ctx, step, target, cfg.stepConfig(step))
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	pl.Wait()

	return results
}

// runSequential processes the full step list in order regardless of earlier
// failures. Fail-open by design, not fail-fast.
func (p *Pipeline) runSequential(ctx context.Context, steps []models.ValidationStep, target Target, cfg Config) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(steps))
	for _, step := range steps {
		results = append(results, p.runStep(ctx, step, target, cfg.stepConfig(step)))
	}
	return results
}

// runStep executes one step under its timeout, converting panics, errors,
// and timeouts into a synthetic critical-error result. Exceptions never
// escape a step.
func (p *Pipeline) runStep(ctx context.Context, step models.ValidationStep, target Target, sc StepConfig) models.ValidationResult {
	p.mu.RLock()
	exec, ok := p.executors[step]
	p.mu.RUnlock()

	start := time.Now()

	if !ok {
		return errorResult(step, target, start, fmt.Sprintf("no executor registered for step %s", step))
	}

	stepCtx := ctx
	var cancel context.CancelFunc
	if sc.Timeout > 0 {
		stepCtx, cancel = context.WithTimeout(ctx, sc.Timeout)
		defer cancel()
	}

	type stepReturn struct {
		outcome Outcome
		err     error
	}
	done := make(chan stepReturn, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- stepReturn{err: fmt.Errorf("step panicked: %v", r)}
			}
		}()
		outcome, err := exec(stepCtx, target)
		done <- stepReturn{outcome: outcome, err: err}
	}()

	select {
	case <-stepCtx.Done():
		// Best effort: the executor goroutine may still be running, but the
		// pipeline stops waiting and discards its eventual result.
		if errors.Is(stepCtx.Err(), context.Canceled) {
			return errorResult(step, target, start, fmt.Sprintf("step %s cancelled: %v", step, stepCtx.Err()))
		}
		return errorResult(step, target, start, fmt.Sprintf("step %s timed out after %s", step, sc.Timeout))
	case ret := <-done:
		if ret.err != nil {
			return errorResult(step, target, start, fmt.Sprintf("step %s failed: %v", step, ret.err))
		}
		return models.ValidationResult{
			Step:       step,
			Passed:     ret.outcome.Passed,
			Score:      ScoreIssues(ret.outcome.Issues),
			Issues:     ret.outcome.Issues,
			DurationMS: time.Since(start).Milliseconds(),
			Metadata:   ret.outcome.Metadata,
		}
	}
}

func errorResult(step models.ValidationStep, target Target, start time.Time, msg string) models.ValidationResult {
	issue := models.QualityIssue{
		ID:          xid.New().String(),
		Severity:    models.SeverityCritical,
		Step:        step,
		Title:       "Step execution failed",
		Description: msg,
		File:        target.FilePath,
	}
	return models.ValidationResult{
		Step:       step,
		Passed:     false,
		Score:      0,
		Issues:     []models.QualityIssue{issue},
		DurationMS: time.Since(start).Milliseconds(),
	}
}

// ProjectOptions configures a project-wide validation run.
type ProjectOptions struct {
	EnabledSteps []models.ValidationStep
}

// ValidateProject validates every discovered file. Files run in FIFO batches
// of MaxConcurrency; a file whose validation fails entirely yields an empty
// result list and an error callback rather than aborting the scan.
func (p *Pipeline) ValidateProject(ctx context.Context, projectPath string, opts ProjectOptions) (map[string][]models.ValidationResult, error) {
	if p.scanner == nil {
		return nil, fmt.Errorf("no scanner configured for project validation")
	}

	files, err := p.scanner.ScanDir(projectPath)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", projectPath, err)
	}

	cfg := p.Config()
	batchSize := cfg.MaxConcurrency
	if !cfg.Parallel {
		batchSize = 1
	}

	batched, err := fileproc.InBatches(ctx, files, batchSize, func(ctx context.Context, path string) ([]models.ValidationResult, error) {
		return p.ValidateFile(ctx, Input{FilePath: path, EnabledSteps: opts.EnabledSteps})
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]models.ValidationResult, len(batched))
	for _, br := range batched {
		if br.Err != nil {
			if p.onError != nil {
				p.onError(br.Path, br.Err)
			}
			out[br.Path] = []models.ValidationResult{}
			continue
		}
		out[br.Path] = br.Value
	}
	return out, nil
}
