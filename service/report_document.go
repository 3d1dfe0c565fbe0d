package service

import (
	"github.com/ludo-technologies/narcscan/domain"
)

// ReportDocument is the renderer-neutral layout of one parsed report
type ReportDocument struct {
	Path            string `json:"path" yaml:"path"`
	ToolVersion     string `json:"tool_version" yaml:"tool_version"`
	ProjectTitle    string `json:"project_title,omitempty" yaml:"project_title,omitempty"`
	ReportTimestamp string `json:"report_timestamp" yaml:"report_timestamp"`

	Summary       Table `json:"summary" yaml:"summary"`
	HasViolations bool  `json:"has_violations" yaml:"has_violations"`

	// Sources is empty unless HasViolations is set
	Sources []SourceSection `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// SourceSection groups the package summary and file tables of one source root
type SourceSection struct {
	SourceDirectory string        `json:"source_directory,omitempty" yaml:"source_directory,omitempty"`
	Packages        Table         `json:"packages" yaml:"packages"`
	Files           []FileSection `json:"files" yaml:"files"`
}

// FileSection holds the violation table of one file
type FileSection struct {
	Path       string `json:"path" yaml:"path"`
	Violations Table  `json:"violations" yaml:"violations"`
}

// BuildReportDocument lays out a parsed report. Source sections follow the
// directories directly under the root, each paired with the source directory
// declared at the same position.
func BuildReportDocument(parsed domain.ParsedReport) ReportDocument {
	report := parsed.Report
	doc := ReportDocument{
		Path:            parsed.Path,
		ToolVersion:     report.ToolVersion,
		ProjectTitle:    report.ProjectTitle,
		ReportTimestamp: report.ReportTimestamp,
		HasViolations:   report.HasViolations(),
	}

	root := report.Root
	if root == nil {
		root = domain.NewDirectoryNode("", 0)
	}
	doc.Summary = RenderTable[*domain.DirectoryNode](SummaryTableRenderer{}, []*domain.DirectoryNode{root})

	if !doc.HasViolations {
		return doc
	}

	if files := root.Files(); len(files) > 0 {
		doc.Sources = append(doc.Sources, SourceSection{
			Packages: RenderTable[*domain.DirectoryNode](PackageSummaryTableRenderer{}, []*domain.DirectoryNode{root}),
			Files:    directFileSections(root, files),
		})
	}
	for i, sourceRoot := range root.Directories() {
		doc.Sources = append(doc.Sources, SourceSection{
			SourceDirectory: report.SourceDirectoryFor(i),
			Packages:        RenderWalk[*domain.DirectoryNode](PackageSummaryTableRenderer{}, sourceRoot, domain.DirectoriesWithFiles),
			Files:           fileSections(sourceRoot),
		})
	}

	return doc
}

func directFileSections(dir *domain.DirectoryNode, files []*domain.FileNode) []FileSection {
	sections := make([]FileSection, 0, len(files))
	for _, file := range files {
		sections = append(sections, fileSection(dir, file))
	}
	return sections
}

func fileSection(dir *domain.DirectoryNode, file *domain.FileNode) FileSection {
	return FileSection{
		Path:       domain.FilePath(dir, file),
		Violations: RenderTable[domain.Violation](ViolationTableRenderer{}, file.Violations),
	}
}

// fileSections lists every file under dir, each with the package that holds it
func fileSections(dir *domain.DirectoryNode) []FileSection {
	var sections []FileSection
	var current *domain.DirectoryNode
	domain.Walk(dir, domain.DirectoriesWithFiles.Or(domain.Files), func(n domain.Node) {
		switch node := n.(type) {
		case *domain.DirectoryNode:
			current = node
		case *domain.FileNode:
			sections = append(sections, fileSection(current, node))
		}
	})
	return sections
}
