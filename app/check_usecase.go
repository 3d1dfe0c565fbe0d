package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/ludo-technologies/narcscan/internal/version"
)

// CheckUseCase verifies parsed reports against per-priority thresholds
type CheckUseCase struct {
	service    domain.ReportService
	fileHelper *FileHelper
	log        io.Writer
	now        func() time.Time
}

// NewCheckUseCase creates a new check use case. Verbose parse summaries go
// to log.
func NewCheckUseCase(service domain.ReportService, log io.Writer) *CheckUseCase {
	if log == nil {
		log = io.Discard
	}
	return &CheckUseCase{
		service:    service,
		fileHelper: NewFileHelper(),
		log:        log,
		now:        time.Now,
	}
}

// Execute parses every report named by req and compares the violation
// totals with the thresholds. A failed threshold is reported in the result,
// not as an error.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.CheckRequest) (*domain.CheckResult, error) {
	start := uc.now()

	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveReportPaths(uc.fileHelper, req.Paths, req.Recursive, req.ReportPatterns, req.ExcludePatterns)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect report files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no CodeNarc report files found in the specified paths", nil)
	}

	reports, err := uc.service.ParseAll(ctx, files)
	if err != nil {
		return nil, domain.NewAnalysisError("report parsing failed", err)
	}

	result := &domain.CheckResult{
		RunID:      uuid.NewString(),
		Passed:     true,
		ExitCode:   constants.ExitCodeSuccess,
		Violations: []domain.CheckViolation{},
		Reports:    make([]domain.ReportSummary, 0, len(reports)),
	}

	var totals domain.PriorityCounts
	for _, parsed := range reports {
		summary := domain.Summarize(parsed.Path, parsed.Report)
		if req.Verbose {
			fmt.Fprintf(uc.log, "%s: Parsing completed: (p1=%d; p2=%d; p3=%d)\n",
				parsed.Path, summary.Violations.Priority1, summary.Violations.Priority2, summary.Violations.Priority3)
		}

		result.Reports = append(result.Reports, summary)
		result.Summary.TotalFiles += summary.TotalFiles
		result.Summary.FilesWithViolations += summary.FilesWithViolations
		totals.Priority1 += summary.Violations.Priority1
		totals.Priority2 += summary.Violations.Priority2
		totals.Priority3 += summary.Violations.Priority3
	}

	result.Violations = EvaluateThresholds(totals, req.Thresholds)
	if len(result.Violations) > 0 {
		result.Passed = false
		result.ExitCode = constants.ExitCodeThresholdsExceeded
	}

	result.Summary.ReportsParsed = len(reports)
	result.Summary.Violations = totals
	result.Summary.TotalViolations = totals.Total()
	result.Summary.ThresholdViolations = len(result.Violations)

	end := uc.now()
	result.Duration = end.Sub(start).Milliseconds()
	result.GeneratedAt = end.Format(time.RFC3339)
	result.Version = version.GetVersion()

	return result, nil
}

// EvaluateThresholds returns one violation per priority whose count exceeds a
// non-negative threshold
func EvaluateThresholds(counts domain.PriorityCounts, thresholds domain.PriorityThresholds) []domain.CheckViolation {
	violations := []domain.CheckViolation{}
	for p := domain.PriorityOne; p <= domain.MaxPriority; p++ {
		threshold := thresholds.For(p)
		actual := counts.Of(p)
		if threshold < 0 || actual <= threshold {
			continue
		}
		rule := fmt.Sprintf("totalPriority%dViolations", p)
		violations = append(violations, domain.CheckViolation{
			Rule:      rule,
			Priority:  p,
			Severity:  "error",
			Message:   fmt.Sprintf("%s exceeded threshold of %d errors with %d", rule, threshold, actual),
			Actual:    actual,
			Threshold: threshold,
		})
	}
	return violations
}

// validateRequest validates the check request
func (uc *CheckUseCase) validateRequest(req domain.CheckRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	for p := domain.PriorityOne; p <= domain.MaxPriority; p++ {
		if limit := req.Thresholds.For(p); limit < domain.UnlimitedViolations {
			return fmt.Errorf("priority %d threshold must be -1 (unlimited) or greater, got %d", p, limit)
		}
	}

	if len(req.ReportPatterns) == 0 {
		return fmt.Errorf("no report patterns specified")
	}

	return nil
}
