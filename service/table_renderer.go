package service

import (
	"strconv"

	"github.com/ludo-technologies/narcscan/domain"
)

// TableRenderer describes how elements of type T become table rows
type TableRenderer[T any] interface {
	// Headers returns the column titles; their count fixes the column count
	Headers() []string

	// Cell returns the text of column index for element
	Cell(element T, index int) string
}

// Table is a rendered table: headers plus one row per element
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// RenderTable renders elements with r
func RenderTable[T any](r TableRenderer[T], elements []T) Table {
	headers := r.Headers()
	rows := make([][]string, 0, len(elements))
	for _, element := range elements {
		row := make([]string, len(headers))
		for i := range headers {
			row[i] = r.Cell(element, i)
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}
}

// RenderWalk renders the nodes under root accepted by filter, in walk order.
// Nodes of another type than T are skipped.
func RenderWalk[T domain.Node](r TableRenderer[T], root domain.Node, filter domain.NodeFilter) Table {
	var elements []T
	domain.Walk(root, filter, func(n domain.Node) {
		if element, ok := n.(T); ok {
			elements = append(elements, element)
		}
	})
	return RenderTable(r, elements)
}

// SummaryTableRenderer renders the whole-report summary row
type SummaryTableRenderer struct{}

func (SummaryTableRenderer) Headers() []string {
	return []string{
		"Total Files",
		"Files with Violations",
		"Total Violations",
		"Priority 1 Violations",
		"Priority 2 Violations",
		"Priority 3 Violations",
	}
}

func (SummaryTableRenderer) Cell(dir *domain.DirectoryNode, index int) string {
	switch index {
	case 0:
		return strconv.Itoa(dir.CountFiles(true))
	case 1:
		return strconv.Itoa(dir.CountFilesWithViolations(domain.MaxPriority, true))
	case 2:
		return strconv.Itoa(dir.TotalViolations(true))
	case 3, 4, 5:
		return strconv.Itoa(dir.CountViolations(index-2, true))
	default:
		return ""
	}
}

// PackageSummaryTableRenderer renders one row per package, counting only the
// files placed directly in it
type PackageSummaryTableRenderer struct{}

func (PackageSummaryTableRenderer) Headers() []string {
	return []string{
		"Package",
		"Files with Violations",
		"Total Violations",
		"Priority 1 Violations",
		"Priority 2 Violations",
		"Priority 3 Violations",
	}
}

func (PackageSummaryTableRenderer) Cell(dir *domain.DirectoryNode, index int) string {
	switch index {
	case 0:
		return dir.PackageName()
	case 1:
		return strconv.Itoa(dir.CountFilesWithViolations(domain.MaxPriority, false))
	case 2:
		return strconv.Itoa(dir.TotalViolations(false))
	case 3, 4, 5:
		return strconv.Itoa(dir.CountViolations(index-2, false))
	default:
		return ""
	}
}

// ViolationTableRenderer renders the violations of a file
type ViolationTableRenderer struct{}

func (ViolationTableRenderer) Headers() []string {
	return []string{"Rule Name", "Priority", "Line", "Source Line / Message"}
}

func (ViolationTableRenderer) Cell(v domain.Violation, index int) string {
	switch index {
	case 0:
		return v.Rule.Name
	case 1:
		return strconv.Itoa(v.Rule.Priority)
	case 2:
		return strconv.Itoa(v.LineNumber)
	case 3:
		if v.SourceLine == "" {
			return v.Message
		}
		return v.SourceLine + "\n" + v.Message
	default:
		return ""
	}
}

// ReportSummaryTableRenderer renders one row per parsed report file
type ReportSummaryTableRenderer struct{}

func (ReportSummaryTableRenderer) Headers() []string {
	return []string{
		"Report",
		"CodeNarc Version",
		"Total Files",
		"Files with Violations",
		"Priority 1 Violations",
		"Priority 2 Violations",
		"Priority 3 Violations",
	}
}

func (ReportSummaryTableRenderer) Cell(s domain.ReportSummary, index int) string {
	switch index {
	case 0:
		return s.Path
	case 1:
		return s.ToolVersion
	case 2:
		return strconv.Itoa(s.TotalFiles)
	case 3:
		return strconv.Itoa(s.FilesWithViolations)
	case 4, 5, 6:
		return strconv.Itoa(s.Violations.Of(index - 3))
	default:
		return ""
	}
}
