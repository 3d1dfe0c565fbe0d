package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
	OutputFormatDOT  OutputFormat = "dot"
)

// ReportRequest represents a request to render one or more reports
type ReportRequest struct {
	// Report files or directories holding reports
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file (for HTML format)
	ShowDetails  bool

	// Configuration
	ConfigPath string

	// Discovery options
	Recursive       bool
	ReportPatterns  []string
	ExcludePatterns []string
}

// ParsedReport pairs a reconstructed report with the file it came from
type ParsedReport struct {
	Path   string          `json:"path" yaml:"path"`
	Report *AnalysisReport `json:"report" yaml:"report"`
}

// ReportParser reconstructs report trees from report documents
type ReportParser interface {
	// Parse reads one report document from r
	Parse(ctx context.Context, source string, r io.Reader) (*AnalysisReport, error)

	// ParseFile opens, parses and closes a report file
	ParseFile(ctx context.Context, path string) (*AnalysisReport, error)
}

// ReportService parses sets of report files
type ReportService interface {
	// ParseAll parses every path; results keep the order of paths
	ParseAll(ctx context.Context, paths []string) ([]ParsedReport, error)
}

// ReportFormatter renders parsed reports
type ReportFormatter interface {
	// Write writes the reports in the given format
	Write(reports []ParsedReport, format OutputFormat, writer io.Writer) error
}

// ExecutableTask is a unit of work run by a ParallelExecutor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}

// ProgressManager creates progress tasks
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CheckRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CheckRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CheckRequest, override *CheckRequest) *CheckRequest
}
