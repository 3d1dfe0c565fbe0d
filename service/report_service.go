package service

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/config"
	"github.com/ludo-technologies/narcscan/internal/parser"
)

// parseTask parses one report file into its slot of the result slice
type parseTask struct {
	path   string
	parser domain.ReportParser
	slot   *domain.ParsedReport
}

func (t *parseTask) Name() string {
	return t.path
}

func (t *parseTask) Execute(ctx context.Context) (interface{}, error) {
	report, err := t.parser.ParseFile(ctx, t.path)
	if err != nil {
		return nil, err
	}
	t.slot.Path = t.path
	t.slot.Report = report
	return report, nil
}

func (t *parseTask) IsEnabled() bool {
	return true
}

// ReportServiceImpl implements domain.ReportService
type ReportServiceImpl struct {
	newParser func() domain.ReportParser
	executor  domain.ParallelExecutor
}

// NewReportService creates a report service that parses with a fresh parser per
// file through the given executor
func NewReportService(executor domain.ParallelExecutor) *ReportServiceImpl {
	return &ReportServiceImpl{
		newParser: func() domain.ReportParser { return parser.NewParser() },
		executor:  executor,
	}
}

// NewReportServiceFromConfig creates a report service from performance
// configuration, reporting progress to pm
func NewReportServiceFromConfig(cfg *config.PerformanceConfig, pm domain.ProgressManager) *ReportServiceImpl {
	return NewReportService(NewParallelExecutorWithProgress(cfg, pm))
}

// WithParser replaces the parser factory
func (s *ReportServiceImpl) WithParser(newParser func() domain.ReportParser) *ReportServiceImpl {
	s.newParser = newParser
	return s
}

// ParseAll parses every path. Results keep the order of paths; any failure
// fails the whole call.
func (s *ReportServiceImpl) ParseAll(ctx context.Context, paths []string) ([]domain.ParsedReport, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no report files to parse", nil)
	}

	results := make([]domain.ParsedReport, len(paths))
	tasks := make([]domain.ExecutableTask, len(paths))
	for i, path := range paths {
		tasks[i] = &parseTask{
			path:   path,
			parser: s.newParser(),
			slot:   &results[i],
		}
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		return nil, fmt.Errorf("parsing %d report(s): %w", len(paths), err)
	}

	return results, nil
}
