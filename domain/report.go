package domain

import "strings"

// Rule priorities. Priority 1 is the most severe.
const (
	PriorityOne   = 1
	PriorityTwo   = 2
	PriorityThree = 3

	// MaxPriority is the lowest severity tier a report can carry
	MaxPriority = PriorityThree
)

// PathSeparator separates the segments of a package path
const PathSeparator = "/"

// DefaultPackageName is shown for the empty-path directory
const DefaultPackageName = "(default package)"

// Rule identifies the rule a violation was raised against
type Rule struct {
	Name          string `json:"name" yaml:"name"`
	Priority      int    `json:"priority" yaml:"priority"`
	CompilerPhase int    `json:"compiler_phase,omitempty" yaml:"compiler_phase,omitempty"`
}

// Violation is a single rule breach on a line of a file
type Violation struct {
	LineNumber int    `json:"line_number" yaml:"line_number"`
	SourceLine string `json:"source_line" yaml:"source_line"`
	Message    string `json:"message" yaml:"message"`
	Rule       Rule   `json:"rule" yaml:"rule"`
}

// Node is an entry of the result tree: either a *FileNode or a *DirectoryNode
type Node interface {
	// IsDirectory reports whether the node is a *DirectoryNode
	IsDirectory() bool

	// NodePath returns the file name or the slash-separated package path
	NodePath() string

	// CountFiles returns the number of files under the node
	CountFiles(recursive bool) int

	// CountFilesWithViolations returns the number of files holding at least
	// one violation with priority <= maxPriority
	CountFilesWithViolations(maxPriority int, recursive bool) int

	// CountViolations returns the number of violations with exactly priority
	CountViolations(priority int, recursive bool) int
}

// FileNode is a leaf of the result tree
type FileNode struct {
	Name       string      `json:"name" yaml:"name"`
	Violations []Violation `json:"violations" yaml:"violations"`
}

// NewFileNode creates a file node
func NewFileNode(name string, violations []Violation) *FileNode {
	if violations == nil {
		violations = []Violation{}
	}
	return &FileNode{Name: name, Violations: violations}
}

// IsDirectory implements Node
func (f *FileNode) IsDirectory() bool { return false }

// NodePath implements Node
func (f *FileNode) NodePath() string { return f.Name }

// CountFiles implements Node
func (f *FileNode) CountFiles(_ bool) int { return 1 }

// CountFilesWithViolations implements Node
func (f *FileNode) CountFilesWithViolations(maxPriority int, _ bool) int {
	for _, v := range f.Violations {
		if v.Rule.Priority <= maxPriority {
			return 1
		}
	}
	return 0
}

// CountViolations implements Node
func (f *FileNode) CountViolations(priority int, _ bool) int {
	count := 0
	for _, v := range f.Violations {
		if v.Rule.Priority == priority {
			count++
		}
	}
	return count
}

// DirectoryNode is a package of the result tree.
// DeclaredFileCount is the totalFiles attribute as reported; derived counts
// always come from walking Children.
type DirectoryNode struct {
	Path              string `json:"path" yaml:"path"`
	DeclaredFileCount int    `json:"declared_file_count" yaml:"declared_file_count"`
	Children          []Node `json:"children" yaml:"children"`
}

// NewDirectoryNode creates a directory node without children
func NewDirectoryNode(path string, declaredFileCount int) *DirectoryNode {
	return &DirectoryNode{
		Path:              path,
		DeclaredFileCount: declaredFileCount,
		Children:          []Node{},
	}
}

// IsDirectory implements Node
func (d *DirectoryNode) IsDirectory() bool { return true }

// NodePath implements Node
func (d *DirectoryNode) NodePath() string { return d.Path }

// AddChild appends a child node
func (d *DirectoryNode) AddChild(child Node) {
	d.Children = append(d.Children, child)
}

// Files returns the direct file children in order
func (d *DirectoryNode) Files() []*FileNode {
	var files []*FileNode
	for _, child := range d.Children {
		if f, ok := child.(*FileNode); ok {
			files = append(files, f)
		}
	}
	return files
}

// Directories returns the direct directory children in order
func (d *DirectoryNode) Directories() []*DirectoryNode {
	var dirs []*DirectoryNode
	for _, child := range d.Children {
		if sub, ok := child.(*DirectoryNode); ok {
			dirs = append(dirs, sub)
		}
	}
	return dirs
}

// IsAntecedentOf reports whether d is the empty-path root or a strict
// ancestor of path on a separator boundary
func (d *DirectoryNode) IsAntecedentOf(path string) bool {
	return d.Path == "" || strings.HasPrefix(path, d.Path+PathSeparator)
}

// PackageName returns the dotted package name, or DefaultPackageName for the
// empty path
func (d *DirectoryNode) PackageName() string {
	if strings.TrimSpace(d.Path) == "" {
		return DefaultPackageName
	}
	return strings.ReplaceAll(d.Path, PathSeparator, ".")
}

// CountFiles implements Node
func (d *DirectoryNode) CountFiles(recursive bool) int {
	return d.sum(recursive, func(n Node) int { return n.CountFiles(true) })
}

// CountFilesWithViolations implements Node
func (d *DirectoryNode) CountFilesWithViolations(maxPriority int, recursive bool) int {
	return d.sum(recursive, func(n Node) int { return n.CountFilesWithViolations(maxPriority, true) })
}

// CountViolations implements Node
func (d *DirectoryNode) CountViolations(priority int, recursive bool) int {
	return d.sum(recursive, func(n Node) int { return n.CountViolations(priority, true) })
}

// TotalViolations returns the number of violations across all priorities
func (d *DirectoryNode) TotalViolations(recursive bool) int {
	total := 0
	for p := PriorityOne; p <= MaxPriority; p++ {
		total += d.CountViolations(p, recursive)
	}
	return total
}

// sum adds count over file children, and over directory children when
// recursive is set
func (d *DirectoryNode) sum(recursive bool, count func(Node) int) int {
	total := 0
	for _, child := range d.Children {
		if child.IsDirectory() && !recursive {
			continue
		}
		total += count(child)
	}
	return total
}

// AnalysisReport is the reconstructed content of one report document
type AnalysisReport struct {
	ToolVersion       string         `json:"tool_version" yaml:"tool_version"`
	ProjectTitle      string         `json:"project_title" yaml:"project_title"`
	ReportTimestamp   string         `json:"report_timestamp" yaml:"report_timestamp"`
	SourceDirectories []string       `json:"source_directories" yaml:"source_directories"`
	Root              *DirectoryNode `json:"root" yaml:"root"`
}

// NewAnalysisReport creates an empty report
func NewAnalysisReport() *AnalysisReport {
	return &AnalysisReport{
		SourceDirectories: []string{},
	}
}

// AddSourceDirectory records a scanned source root in declaration order
func (r *AnalysisReport) AddSourceDirectory(dir string) {
	r.SourceDirectories = append(r.SourceDirectories, dir)
}

// HasViolations reports whether any file carries a violation of any priority
func (r *AnalysisReport) HasViolations() bool {
	return r.Root != nil && r.Root.CountFilesWithViolations(MaxPriority, true) > 0
}

// SourceRoots returns the empty-path directories directly under Root. Each
// one pairs with the SourceDirectories entry at the same index.
func (r *AnalysisReport) SourceRoots() []*DirectoryNode {
	if r.Root == nil {
		return nil
	}
	var roots []*DirectoryNode
	for _, dir := range r.Root.Directories() {
		if dir.Path == "" {
			roots = append(roots, dir)
		}
	}
	return roots
}

// SourceDirectoryFor returns the source directory paired with the i-th source
// root, or "" if the report declared fewer directories
func (r *AnalysisReport) SourceDirectoryFor(i int) string {
	if i < 0 || i >= len(r.SourceDirectories) {
		return ""
	}
	return r.SourceDirectories[i]
}

// PriorityCounts summarises violation counts of a subtree
type PriorityCounts struct {
	Priority1 int `json:"priority1" yaml:"priority1"`
	Priority2 int `json:"priority2" yaml:"priority2"`
	Priority3 int `json:"priority3" yaml:"priority3"`
}

// Total returns the sum over all priorities
func (c PriorityCounts) Total() int {
	return c.Priority1 + c.Priority2 + c.Priority3
}

// Of returns the count for a single priority
func (c PriorityCounts) Of(priority int) int {
	switch priority {
	case PriorityOne:
		return c.Priority1
	case PriorityTwo:
		return c.Priority2
	case PriorityThree:
		return c.Priority3
	default:
		return 0
	}
}

// CountByPriority collects per-priority violation counts of a node
func CountByPriority(n Node, recursive bool) PriorityCounts {
	if n == nil {
		return PriorityCounts{}
	}
	return PriorityCounts{
		Priority1: n.CountViolations(PriorityOne, recursive),
		Priority2: n.CountViolations(PriorityTwo, recursive),
		Priority3: n.CountViolations(PriorityThree, recursive),
	}
}

// FilePath joins a file name to the path of its directory
func FilePath(dir *DirectoryNode, file *FileNode) string {
	if dir == nil || strings.TrimSpace(dir.Path) == "" {
		return file.Name
	}
	return dir.Path + PathSeparator + file.Name
}
