package service

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/version"
)

// DOTFormatterConfig configures the DOT formatter behavior
type DOTFormatterConfig struct {
	// IncludeFiles adds a node per file, not just per package
	IncludeFiles bool

	// ShowLegend includes a legend subgraph
	ShowLegend bool

	// MaxDepth limits how many package levels below a source root are drawn
	// (0 = unlimited)
	MaxDepth int

	// RankDir is the layout direction: TB, LR, BT, RL
	RankDir string
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		IncludeFiles: true,
		ShowLegend:   true,
		MaxDepth:     0,
		RankDir:      "LR",
	}
}

// DOTFormatter draws the package tree of a report for Graphviz
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

// nodeColors is keyed by the most severe priority found under a node; 0 is clean
var nodeColors = map[int]struct {
	fill   string
	border string
}{
	0:                    {fill: "#90EE90", border: "#228B22"},
	domain.PriorityThree: {fill: "#FFF3B0", border: "#C9A400"},
	domain.PriorityTwo:   {fill: "#FFD27F", border: "#FFA500"},
	domain.PriorityOne:   {fill: "#FF6B6B", border: "#DC143C"},
}

// validRankDirs contains the valid Graphviz rank directions
var validRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
	"BT": true,
	"RL": true,
}

// dotWriter numbers nodes in the order they are emitted, so IDs never
// collide however the paths are spelled
type dotWriter struct {
	w      io.Writer
	config *DOTFormatterConfig
	next   int
}

func (d *dotWriter) id() string {
	id := fmt.Sprintf("n%d", d.next)
	d.next++
	return id
}

// WriteReports writes one digraph holding a cluster per report
func (f *DOTFormatter) WriteReports(reports []domain.ParsedReport, writer io.Writer) error {
	if !validRankDirs[f.config.RankDir] {
		return fmt.Errorf("invalid rank direction %q: must be one of TB, LR, BT, RL", f.config.RankDir)
	}

	fmt.Fprintf(writer, "/* narcscan package tree - Version: %s */\n", version.GetVersion())
	fmt.Fprintln(writer, "digraph codenarc {")
	fmt.Fprintf(writer, "    rankdir=%s;\n", f.config.RankDir)
	fmt.Fprintln(writer, "    node [shape=box, style=filled, fontname=\"Helvetica\"];")
	fmt.Fprintln(writer, "    edge [arrowhead=none];")
	fmt.Fprintln(writer)

	d := &dotWriter{w: writer, config: f.config}
	for i, parsed := range reports {
		if parsed.Report == nil || parsed.Report.Root == nil {
			continue
		}
		fmt.Fprintf(writer, "    subgraph cluster_report_%d {\n", i)
		fmt.Fprintf(writer, "        label=\"%s\";\n", escapeDOTLabel(reportLabel(parsed)))
		fmt.Fprintln(writer, "        color=\"#CCCCCC\";")
		d.writeReport(parsed.Report)
		fmt.Fprintln(writer, "    }")
		fmt.Fprintln(writer)
	}

	if f.config.ShowLegend {
		f.writeLegend(writer)
	}

	fmt.Fprintln(writer, "}")
	return nil
}

func reportLabel(parsed domain.ParsedReport) string {
	if parsed.Report.ProjectTitle != "" {
		return parsed.Report.ProjectTitle
	}
	return parsed.Path
}

func (d *dotWriter) writeReport(report *domain.AnalysisReport) {
	root := report.Root
	rootID := d.id()
	d.writeNode(rootID, "Report", root, "ellipse")

	for _, file := range root.Files() {
		d.writeFile(rootID, file)
	}
	for i, dir := range root.Directories() {
		label := report.SourceDirectoryFor(i)
		if label == "" {
			label = dir.PackageName()
		}
		d.writeDirectory(rootID, dir, label, 0)
	}
}

func (d *dotWriter) writeDirectory(parentID string, dir *domain.DirectoryNode, label string, depth int) {
	id := d.id()
	d.writeNode(id, label, dir, "folder")
	d.writeEdge(parentID, id)

	if d.config.MaxDepth > 0 && depth >= d.config.MaxDepth {
		return
	}
	for _, file := range dir.Files() {
		d.writeFile(id, file)
	}
	for _, sub := range dir.Directories() {
		d.writeDirectory(id, sub, packageLabel(dir, sub), depth+1)
	}
}

// packageLabel shows a package by the path segment it adds to its parent
func packageLabel(parent, dir *domain.DirectoryNode) string {
	if parent.Path != "" && strings.HasPrefix(dir.Path, parent.Path+domain.PathSeparator) {
		return strings.TrimPrefix(dir.Path, parent.Path+domain.PathSeparator)
	}
	if dir.Path == "" {
		return domain.DefaultPackageName
	}
	return dir.Path
}

func (d *dotWriter) writeFile(parentID string, file *domain.FileNode) {
	if !d.config.IncludeFiles {
		return
	}
	id := d.id()
	d.writeNode(id, path.Base(file.Name), file, "note")
	d.writeEdge(parentID, id)
}

func (d *dotWriter) writeNode(id, label string, node domain.Node, shape string) {
	colors := nodeColors[worstPriority(node)]
	counts := domain.CountByPriority(node, true)
	if counts.Total() > 0 {
		label = fmt.Sprintf("%s\n%d / %d / %d", label, counts.Priority1, counts.Priority2, counts.Priority3)
	}
	fmt.Fprintf(d.w, "        %s [label=\"%s\", shape=%s, fillcolor=\"%s\", color=\"%s\"];\n",
		id, escapeDOTLabel(label), shape, colors.fill, colors.border)
}

func (d *dotWriter) writeEdge(from, to string) {
	fmt.Fprintf(d.w, "        %s -> %s;\n", from, to)
}

// worstPriority returns the most severe priority under node, or 0 when clean
func worstPriority(node domain.Node) int {
	for p := domain.PriorityOne; p <= domain.MaxPriority; p++ {
		if node.CountViolations(p, true) > 0 {
			return p
		}
	}
	return 0
}

// writeLegend writes the legend subgraph
func (f *DOTFormatter) writeLegend(writer io.Writer) {
	fmt.Fprintln(writer, "    // Legend")
	fmt.Fprintln(writer, "    subgraph cluster_legend {")
	fmt.Fprintln(writer, "        label=\"Legend (p1 / p2 / p3)\";")
	fmt.Fprintln(writer, "        style=filled;")
	fmt.Fprintln(writer, "        fillcolor=\"#F5F5F5\";")
	fmt.Fprintln(writer, "        color=\"#CCCCCC\";")
	fmt.Fprintln(writer, "        fontsize=10;")
	legend := []struct {
		id       string
		label    string
		priority int
	}{
		{"legend_p1", "Priority 1", domain.PriorityOne},
		{"legend_p2", "Priority 2", domain.PriorityTwo},
		{"legend_p3", "Priority 3", domain.PriorityThree},
		{"legend_clean", "No violations", 0},
	}
	for _, entry := range legend {
		fmt.Fprintf(writer, "        %s [label=\"%s\", fillcolor=\"%s\", color=\"%s\"];\n",
			entry.id, entry.label, nodeColors[entry.priority].fill, nodeColors[entry.priority].border)
	}
	fmt.Fprintln(writer, "    }")
}

// escapeDOTLabel escapes a string for use as a DOT label
func escapeDOTLabel(label string) string {
	// backslash must be first to avoid double-escaping
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "",
		"\t", "\\t",
	)
	return replacer.Replace(label)
}
