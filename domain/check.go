package domain

import "io"

// Threshold disabled marker: a negative maximum never fails the check
const UnlimitedViolations = -1

// InheritThreshold marks a request threshold that keeps the configured value
const InheritThreshold = -2

// PriorityThresholds holds the maximum allowed violations per priority
type PriorityThresholds struct {
	MaxPriority1Violations int `json:"max_priority1_violations" yaml:"max_priority1_violations"`
	MaxPriority2Violations int `json:"max_priority2_violations" yaml:"max_priority2_violations"`
	MaxPriority3Violations int `json:"max_priority3_violations" yaml:"max_priority3_violations"`
}

// For returns the threshold of a single priority
func (t PriorityThresholds) For(priority int) int {
	switch priority {
	case PriorityOne:
		return t.MaxPriority1Violations
	case PriorityTwo:
		return t.MaxPriority2Violations
	case PriorityThree:
		return t.MaxPriority3Violations
	default:
		return UnlimitedViolations
	}
}

// Set replaces the threshold of a single priority
func (t *PriorityThresholds) Set(priority, value int) {
	switch priority {
	case PriorityOne:
		t.MaxPriority1Violations = value
	case PriorityTwo:
		t.MaxPriority2Violations = value
	case PriorityThree:
		t.MaxPriority3Violations = value
	}
}

// InheritAll returns thresholds that keep every configured value
func InheritAll() PriorityThresholds {
	return PriorityThresholds{
		MaxPriority1Violations: InheritThreshold,
		MaxPriority2Violations: InheritThreshold,
		MaxPriority3Violations: InheritThreshold,
	}
}

// CheckRequest represents a request to verify reports against thresholds
type CheckRequest struct {
	// Report files or directories holding reports
	Paths []string

	Thresholds PriorityThresholds

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	Verbose      bool

	// Configuration
	ConfigPath string

	// Discovery options
	Recursive       bool
	ReportPatterns  []string
	ExcludePatterns []string
}

// CheckResult represents the result of a quality check
type CheckResult struct {
	RunID       string           `json:"run_id"`
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Reports     []ReportSummary  `json:"reports"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single threshold violation
type CheckViolation struct {
	Rule      string `json:"rule"`               // totalPriority1Violations, ...
	Priority  int    `json:"priority"`           // 1, 2, 3
	Severity  string `json:"severity"`           // error
	Message   string `json:"message"`            // Human-readable description
	Location  string `json:"location,omitempty"` // Report file if per-report
	Actual    int    `json:"actual"`
	Threshold int    `json:"threshold"`
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	ReportsParsed       int            `json:"reports_parsed"`
	TotalFiles          int            `json:"total_files"`
	FilesWithViolations int            `json:"files_with_violations"`
	TotalViolations     int            `json:"total_violations"`
	Violations          PriorityCounts `json:"violations_by_priority"`
	ThresholdViolations int            `json:"threshold_violations"`
}

// ReportSummary describes one parsed report
type ReportSummary struct {
	Path                string         `json:"path" yaml:"path"`
	ToolVersion         string         `json:"tool_version" yaml:"tool_version"`
	ProjectTitle        string         `json:"project_title" yaml:"project_title"`
	ReportTimestamp     string         `json:"report_timestamp" yaml:"report_timestamp"`
	TotalFiles          int            `json:"total_files" yaml:"total_files"`
	FilesWithViolations int            `json:"files_with_violations" yaml:"files_with_violations"`
	Violations          PriorityCounts `json:"violations_by_priority" yaml:"violations_by_priority"`
}

// Summarize builds the summary row of a parsed report
func Summarize(path string, report *AnalysisReport) ReportSummary {
	summary := ReportSummary{
		Path:            path,
		ToolVersion:     report.ToolVersion,
		ProjectTitle:    report.ProjectTitle,
		ReportTimestamp: report.ReportTimestamp,
	}
	if report.Root != nil {
		summary.TotalFiles = report.Root.CountFiles(true)
		summary.FilesWithViolations = report.Root.CountFilesWithViolations(MaxPriority, true)
		summary.Violations = CountByPriority(report.Root, true)
	}
	return summary
}
