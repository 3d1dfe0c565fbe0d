package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/version"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements domain.ReportFormatter
type OutputFormatterImpl struct {
	showDetails bool
	dot         *DOTFormatterConfig
	now         func() time.Time
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{now: time.Now}
}

// WithDetails makes text output include package and file tables
func (f *OutputFormatterImpl) WithDetails(show bool) *OutputFormatterImpl {
	f.showDetails = show
	return f
}

// WithDOTConfig sets the graph options of dot output
func (f *OutputFormatterImpl) WithDOTConfig(config *DOTFormatterConfig) *OutputFormatterImpl {
	f.dot = config
	return f
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// ReportsResponse wraps parsed reports with output metadata
type ReportsResponse struct {
	Version     string                 `json:"version" yaml:"version"`
	GeneratedAt string                 `json:"generated_at" yaml:"generated_at"`
	Summaries   []domain.ReportSummary `json:"summaries" yaml:"summaries"`
	Reports     []ReportDocument       `json:"reports" yaml:"reports"`
}

// Write writes the reports in the specified format
func (f *OutputFormatterImpl) Write(reports []domain.ParsedReport, format domain.OutputFormat, writer io.Writer) error {
	var err error
	switch format {
	case domain.OutputFormatText:
		err = f.writeText(reports, writer)
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, f.response(reports))
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, f.response(reports))
	case domain.OutputFormatCSV:
		err = f.writeCSV(reports, writer)
	case domain.OutputFormatHTML:
		err = f.WriteHTML(reports, writer)
	case domain.OutputFormatDOT:
		err = NewDOTFormatter(f.dot).WriteReports(reports, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s output", format), err)
	}
	return nil
}

func (f *OutputFormatterImpl) response(reports []domain.ParsedReport) ReportsResponse {
	response := ReportsResponse{
		Version:     version.GetVersion(),
		GeneratedAt: f.now().Format(time.RFC3339),
		Summaries:   make([]domain.ReportSummary, 0, len(reports)),
		Reports:     make([]ReportDocument, 0, len(reports)),
	}
	for _, parsed := range reports {
		response.Summaries = append(response.Summaries, domain.Summarize(parsed.Path, parsed.Report))
		response.Reports = append(response.Reports, BuildReportDocument(parsed))
	}
	return response
}

// writeText writes reports as plain text
func (f *OutputFormatterImpl) writeText(reports []domain.ParsedReport, writer io.Writer) error {
	for _, parsed := range reports {
		doc := BuildReportDocument(parsed)

		fmt.Fprintf(writer, "\n=== CodeNarc Report: %s ===\n\n", doc.Path)
		if doc.ProjectTitle != "" {
			fmt.Fprintf(writer, "Project: %s\n", doc.ProjectTitle)
		}
		fmt.Fprintf(writer, "CodeNarc version: %s\n", doc.ToolVersion)
		fmt.Fprintf(writer, "Generated: %s\n\n", doc.ReportTimestamp)

		fmt.Fprintf(writer, "Summary:\n")
		if err := writeTextTable(writer, doc.Summary); err != nil {
			return err
		}

		if !doc.HasViolations {
			fmt.Fprintf(writer, "\nNo violations found.\n")
			continue
		}
		if !f.showDetails {
			continue
		}

		fmt.Fprintf(writer, "\nPackage Summary:\n")
		for _, source := range doc.Sources {
			writeSourceHeading(writer, source)
			if err := writeTextTable(writer, source.Packages); err != nil {
				return err
			}
		}

		fmt.Fprintf(writer, "\nFiles:\n")
		for _, source := range doc.Sources {
			writeSourceHeading(writer, source)
			for _, file := range source.Files {
				fmt.Fprintf(writer, "\n  %s\n", file.Path)
				if err := writeTextTable(writer, file.Violations); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeSourceHeading(writer io.Writer, source SourceSection) {
	if source.SourceDirectory != "" {
		fmt.Fprintf(writer, "\n Source Directory: %s\n", source.SourceDirectory)
	}
}

// writeTextTable aligns a table in columns; multi-line cells are flattened
func writeTextTable(writer io.Writer, table Table) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "\n", " / ")
		}
		fmt.Fprintf(tw, "  %s\n", strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// writeCSV writes one row per violation, or a summary row for reports
// without violations
func (f *OutputFormatterImpl) writeCSV(reports []domain.ParsedReport, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"report", "file", "rule", "priority", "line", "source_line", "message"}); err != nil {
		return err
	}

	for _, parsed := range reports {
		if parsed.Report == nil || parsed.Report.Root == nil {
			continue
		}
		var current *domain.DirectoryNode
		var werr error
		domain.Walk(parsed.Report.Root, domain.DirectoriesWithFiles.Or(domain.Files), func(n domain.Node) {
			if werr != nil {
				return
			}
			switch node := n.(type) {
			case *domain.DirectoryNode:
				current = node
			case *domain.FileNode:
				path := domain.FilePath(current, node)
				for _, v := range node.Violations {
					werr = w.Write([]string{
						parsed.Path,
						path,
						v.Rule.Name,
						fmt.Sprintf("%d", v.Rule.Priority),
						fmt.Sprintf("%d", v.LineNumber),
						v.SourceLine,
						v.Message,
					})
					if werr != nil {
						return
					}
				}
			}
		})
		if werr != nil {
			return werr
		}
	}

	w.Flush()
	return w.Error()
}

// WriteCheckResult writes the result of a threshold check
func (f *OutputFormatterImpl) WriteCheckResult(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, result)
	case domain.OutputFormatText, "":
		return f.writeCheckText(result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, writer io.Writer) error {
	if err := writeTextTable(writer, RenderTable[domain.ReportSummary](ReportSummaryTableRenderer{}, result.Reports)); err != nil {
		return err
	}
	fmt.Fprintln(writer)

	if result.Passed {
		fmt.Fprintf(writer, "✓ Check passed: %d report(s), %d violation(s) within thresholds\n",
			result.Summary.ReportsParsed, result.Summary.TotalViolations)
		return nil
	}

	fmt.Fprintf(writer, "✗ Check failed: %d threshold(s) exceeded\n", len(result.Violations))
	for _, v := range result.Violations {
		fmt.Fprintf(writer, "  - %s\n", v.Message)
	}
	return nil
}
