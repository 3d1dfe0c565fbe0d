// Package testutil provides helper functions for testing narcscan components
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ViolationSpec describes a Violation element of a sample report
type ViolationSpec struct {
	Rule       string
	Priority   int
	Line       int
	SourceLine string
	Message    string
}

// FileSpec describes a File element of a sample report
type FileSpec struct {
	Name       string
	Violations []ViolationSpec
}

// PackageSpec describes a Package element. Packages are written flat, in
// slice order, after the files of their parent.
type PackageSpec struct {
	Path       string
	TotalFiles int
	Files      []FileSpec
}

// ReportBuilder assembles CodeNarc XML documents for tests
type ReportBuilder struct {
	version   string
	timestamp string
	title     string
	sources   []string
	packages  []PackageSpec
}

// NewReportBuilder creates a builder with default metadata
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		version:   "3.3.0",
		timestamp: "Oct 16, 2026, 10:00:00 AM",
		title:     "Sample",
	}
}

// WithTitle sets the project title
func (b *ReportBuilder) WithTitle(title string) *ReportBuilder {
	b.title = title
	return b
}

// WithSource adds a SourceDirectory entry
func (b *ReportBuilder) WithSource(dir string) *ReportBuilder {
	b.sources = append(b.sources, dir)
	return b
}

// WithPackage adds a package
func (b *ReportBuilder) WithPackage(pkg PackageSpec) *ReportBuilder {
	b.packages = append(b.packages, pkg)
	return b
}

// Build renders the document
func (b *ReportBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, "<CodeNarc url=\"https://codenarc.org\" version=\"%s\">\n", b.version)
	fmt.Fprintf(&sb, "  <Report timestamp=\"%s\"/>\n", b.timestamp)
	fmt.Fprintf(&sb, "  <Project title=\"%s\">\n", b.title)
	for _, src := range b.sources {
		fmt.Fprintf(&sb, "    <SourceDirectory>%s</SourceDirectory>\n", src)
	}
	sb.WriteString("  </Project>\n")

	total, withViolations := 0, 0
	counts := [4]int{}
	for _, pkg := range b.packages {
		for _, f := range pkg.Files {
			total++
			if len(f.Violations) > 0 {
				withViolations++
			}
			for _, v := range f.Violations {
				if v.Priority >= 1 && v.Priority <= 3 {
					counts[v.Priority]++
				}
			}
		}
	}
	fmt.Fprintf(&sb, "  <PackageSummary totalFiles=\"%d\" filesWithViolations=\"%d\" priority1=\"%d\" priority2=\"%d\" priority3=\"%d\"/>\n",
		total, withViolations, counts[1], counts[2], counts[3])

	for _, pkg := range b.packages {
		fmt.Fprintf(&sb, "  <Package path=\"%s\" totalFiles=\"%d\" filesWithViolations=\"0\" priority1=\"0\" priority2=\"0\" priority3=\"0\">\n",
			pkg.Path, pkg.TotalFiles)
		for _, f := range pkg.Files {
			writeFile(&sb, f)
		}
		sb.WriteString("  </Package>\n")
	}

	sb.WriteString("  <Rules>\n")
	sb.WriteString("    <Rule name=\"EmptyMethod\"><Description><![CDATA[Empty methods]]></Description></Rule>\n")
	sb.WriteString("  </Rules>\n")
	sb.WriteString("</CodeNarc>\n")
	return sb.String()
}

func writeFile(sb *strings.Builder, f FileSpec) {
	fmt.Fprintf(sb, "    <File name=\"%s\">\n", f.Name)
	for _, v := range f.Violations {
		fmt.Fprintf(sb, "      <Violation ruleName=\"%s\" priority=\"%d\" lineNumber=\"%d\">\n", v.Rule, v.Priority, v.Line)
		if v.SourceLine != "" {
			fmt.Fprintf(sb, "        <SourceLine><![CDATA[%s]]></SourceLine>\n", v.SourceLine)
		}
		if v.Message != "" {
			fmt.Fprintf(sb, "        <Message><![CDATA[%s]]></Message>\n", v.Message)
		}
		sb.WriteString("      </Violation>\n")
	}
	sb.WriteString("    </File>\n")
}

// SampleReport is a small report with nested packages and all priorities
func SampleReport() string {
	return NewReportBuilder().
		WithTitle("Sample Project").
		WithSource("src/main/groovy").
		WithPackage(PackageSpec{Path: "", TotalFiles: 3, Files: []FileSpec{
			{Name: "Script.groovy", Violations: []ViolationSpec{
				{Rule: "EmptyMethod", Priority: 2, Line: 12, SourceLine: "void run() { }", Message: "Violation in class Script"},
			}},
		}}).
		WithPackage(PackageSpec{Path: "org", TotalFiles: 2}).
		WithPackage(PackageSpec{Path: "org/example", TotalFiles: 2, Files: []FileSpec{
			{Name: "Service.groovy", Violations: []ViolationSpec{
				{Rule: "CatchThrowable", Priority: 1, Line: 30, SourceLine: "catch (Throwable t)", Message: "Catching Throwable"},
				{Rule: "UnusedImport", Priority: 3, Line: 3, SourceLine: "import java.util.List", Message: "Unused import"},
			}},
			{Name: "Clean.groovy"},
		}}).
		Build()
}

// WriteTempReport writes content to a file named name in a temp directory
func WriteTempReport(t *testing.T, dir, name, content string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}
	return path
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}
