package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/config"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxConcurrency replaces a non-positive max_goroutines setting.
	DefaultMaxConcurrency = 4
	// DefaultTimeout bounds one Execute call across all of its reports.
	DefaultTimeout = 5 * time.Minute

	defaultDescription = "Parsing reports"
)

// TaskError ties a failure to the report task that produced it.
type TaskError struct {
	TaskName string
	Err      error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError lists every failed task, in the order the tasks were given.
type AggregatedError struct {
	Errors []TaskError
}

func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d tasks failed:\n", len(e.Errors))
	for i, te := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, te.Error())
	}
	return sb.String()
}

// Unwrap lets errors.Is and errors.As reach each task's cause.
func (e *AggregatedError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, te := range e.Errors {
		errs[i] = te.Err
	}
	return errs
}

// ParallelExecutorImpl fans report tasks out over a bounded errgroup.
type ParallelExecutorImpl struct {
	mu             sync.RWMutex
	maxConcurrency int
	timeout        time.Duration
	description    string
	progress       domain.ProgressManager
}

func newParallelExecutor(maxConcurrency int, timeout time.Duration) *ParallelExecutorImpl {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
		description:    defaultDescription,
	}
}

// NewParallelExecutor runs one task per CPU.
func NewParallelExecutor() *ParallelExecutorImpl {
	return newParallelExecutor(runtime.NumCPU(), DefaultTimeout)
}

func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig) *ParallelExecutorImpl {
	return newParallelExecutor(cfg.MaxGoroutines, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// NewParallelExecutorWithProgress reports one progress tick per finished task.
func NewParallelExecutorWithProgress(cfg *config.PerformanceConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	e := NewParallelExecutorFromConfig(cfg)
	e.progress = pm
	return e
}

// Execute runs the enabled tasks. A failing task does not stop the others;
// all failures come back together as an *AggregatedError.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	if len(enabled) == 0 {
		return nil
	}

	e.mu.RLock()
	limit, timeout, description := e.maxConcurrency, e.timeout, e.description
	e.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bar domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		bar = e.progress.StartTask(description, len(enabled))
	}
	defer bar.Complete()

	// Each goroutine owns one slot, so no lock is needed and order is kept.
	failures := make([]*TaskError, len(enabled))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, t := range enabled {
		g.Go(func() error {
			err := gctx.Err()
			if err == nil {
				_, err = t.Execute(gctx)
			}
			bar.Describe(t.Name())
			bar.Increment(1)
			if err != nil {
				failures[i] = &TaskError{TaskName: t.Name(), Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	var agg AggregatedError
	for _, f := range failures {
		if f != nil {
			agg.Errors = append(agg.Errors, *f)
		}
	}
	if len(agg.Errors) > 0 {
		return &agg
	}
	return nil
}

// SetMaxConcurrency ignores non-positive values.
func (e *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	if max <= 0 {
		return
	}
	e.mu.Lock()
	e.maxConcurrency = max
	e.mu.Unlock()
}

// SetTimeout ignores non-positive values.
func (e *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	e.mu.Lock()
	e.timeout = timeout
	e.mu.Unlock()
}

// SetDescription changes the progress bar label.
func (e *ParallelExecutorImpl) SetDescription(description string) {
	e.mu.Lock()
	e.description = description
	e.mu.Unlock()
}
