package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/parser"
	"github.com/ludo-technologies/narcscan/internal/testutil"
)

func parseSample(t *testing.T) domain.ParsedReport {
	t.Helper()
	report, err := parser.NewParser().ParseString(context.Background(), "sample.xml", testutil.SampleReport())
	testutil.AssertNoError(t, err)
	return domain.ParsedReport{Path: "build/CodeNarcReport.xml", Report: report}
}

func TestRenderTable(t *testing.T) {
	violations := []domain.Violation{
		{LineNumber: 7, SourceLine: "def x", Message: "unused", Rule: domain.Rule{Name: "UnusedVariable", Priority: 2}},
		{LineNumber: 9, Message: "no source", Rule: domain.Rule{Name: "EmptyClass", Priority: 3}},
	}

	table := RenderTable[domain.Violation](ViolationTableRenderer{}, violations)

	want := Table{
		Headers: []string{"Rule Name", "Priority", "Line", "Source Line / Message"},
		Rows: [][]string{
			{"UnusedVariable", "2", "7", "def x\nunused"},
			{"EmptyClass", "3", "9", "no source"},
		},
	}
	if !reflect.DeepEqual(table, want) {
		t.Errorf("unexpected table:\n got %#v\nwant %#v", table, want)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	table := RenderTable[domain.Violation](ViolationTableRenderer{}, nil)
	if len(table.Headers) != 4 || len(table.Rows) != 0 {
		t.Errorf("expected headers only, got %#v", table)
	}
}

func TestSummaryTableRenderer(t *testing.T) {
	parsed := parseSample(t)

	table := RenderTable[*domain.DirectoryNode](SummaryTableRenderer{}, []*domain.DirectoryNode{parsed.Report.Root})

	want := [][]string{{"3", "2", "3", "1", "1", "1"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("unexpected summary rows %v, want %v", table.Rows, want)
	}
	if table.Headers[0] != "Total Files" {
		t.Errorf("unexpected headers %v", table.Headers)
	}
}

func TestPackageSummaryTableRenderer(t *testing.T) {
	parsed := parseSample(t)
	sourceRoot := parsed.Report.SourceRoots()[0]

	table := RenderWalk[*domain.DirectoryNode](PackageSummaryTableRenderer{}, sourceRoot, domain.DirectoriesWithFiles)

	want := [][]string{
		{domain.DefaultPackageName, "1", "1", "0", "1", "0"},
		{"org.example", "1", "2", "1", "0", "1"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("unexpected package rows %v, want %v", table.Rows, want)
	}
}

func TestReportSummaryTableRenderer(t *testing.T) {
	parsed := parseSample(t)
	summary := domain.Summarize(parsed.Path, parsed.Report)

	table := RenderTable[domain.ReportSummary](ReportSummaryTableRenderer{}, []domain.ReportSummary{summary})

	want := []string{"build/CodeNarcReport.xml", "3.3.0", "3", "2", "1", "1", "1"}
	if !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("unexpected row %v, want %v", table.Rows[0], want)
	}
}

func TestRendererCellOutOfRange(t *testing.T) {
	dir := domain.NewDirectoryNode("a", 0)
	if got := (SummaryTableRenderer{}).Cell(dir, 42); got != "" {
		t.Errorf("expected empty cell, got %q", got)
	}
	if got := (PackageSummaryTableRenderer{}).Cell(dir, -1); got != "" {
		t.Errorf("expected empty cell, got %q", got)
	}
}

func TestBuildReportDocument(t *testing.T) {
	doc := BuildReportDocument(parseSample(t))

	if !doc.HasViolations {
		t.Fatal("sample report has violations")
	}
	if doc.ProjectTitle != "Sample Project" || doc.ToolVersion != "3.3.0" {
		t.Errorf("unexpected metadata %+v", doc)
	}
	if len(doc.Sources) != 1 {
		t.Fatalf("expected 1 source section, got %d", len(doc.Sources))
	}

	source := doc.Sources[0]
	if source.SourceDirectory != "src/main/groovy" {
		t.Errorf("unexpected source directory %q", source.SourceDirectory)
	}
	if len(source.Packages.Rows) != 2 {
		t.Errorf("expected 2 package rows, got %d", len(source.Packages.Rows))
	}

	var paths []string
	for _, f := range source.Files {
		paths = append(paths, f.Path)
	}
	wantPaths := []string{"Script.groovy", "org/example/Service.groovy", "org/example/Clean.groovy"}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Errorf("unexpected file paths %v, want %v", paths, wantPaths)
	}
	if len(source.Files[2].Violations.Rows) != 0 {
		t.Error("clean file should have an empty violation table")
	}
}

func TestBuildReportDocument_NoViolations(t *testing.T) {
	xml := testutil.NewReportBuilder().
		WithSource("src").
		WithPackage(testutil.PackageSpec{Path: "", TotalFiles: 1, Files: []testutil.FileSpec{{Name: "Clean.groovy"}}}).
		Build()
	report, err := parser.NewParser().ParseString(context.Background(), "clean.xml", xml)
	testutil.AssertNoError(t, err)

	doc := BuildReportDocument(domain.ParsedReport{Path: "clean.xml", Report: report})

	if doc.HasViolations {
		t.Error("expected no violations")
	}
	if len(doc.Sources) != 0 {
		t.Errorf("package and file sections are only built for reports with violations, got %d", len(doc.Sources))
	}
	if doc.Summary.Rows[0][0] != "1" {
		t.Errorf("summary should still count files, got %v", doc.Summary.Rows)
	}
}

func TestBuildReportDocument_MultipleSources(t *testing.T) {
	xml := testutil.NewReportBuilder().
		WithSource("src/main/groovy").
		WithSource("src/test/groovy").
		WithPackage(testutil.PackageSpec{Path: "", TotalFiles: 1}).
		WithPackage(testutil.PackageSpec{Path: "app", TotalFiles: 1, Files: []testutil.FileSpec{
			{Name: "App.groovy", Violations: []testutil.ViolationSpec{{Rule: "Println", Priority: 2, Line: 4, Message: "println"}}},
		}}).
		WithPackage(testutil.PackageSpec{Path: "", TotalFiles: 1}).
		WithPackage(testutil.PackageSpec{Path: "app", TotalFiles: 1, Files: []testutil.FileSpec{
			{Name: "AppTest.groovy", Violations: []testutil.ViolationSpec{{Rule: "JUnitStyle", Priority: 3, Line: 8, Message: "style"}}},
		}}).
		Build()
	report, err := parser.NewParser().ParseString(context.Background(), "multi.xml", xml)
	testutil.AssertNoError(t, err)

	doc := BuildReportDocument(domain.ParsedReport{Path: "multi.xml", Report: report})

	if len(doc.Sources) != 2 {
		t.Fatalf("expected 2 source sections, got %d", len(doc.Sources))
	}
	if doc.Sources[0].SourceDirectory != "src/main/groovy" || doc.Sources[1].SourceDirectory != "src/test/groovy" {
		t.Errorf("source directories not paired in order: %q, %q", doc.Sources[0].SourceDirectory, doc.Sources[1].SourceDirectory)
	}
	if doc.Sources[1].Files[0].Path != "app/AppTest.groovy" {
		t.Errorf("unexpected file path %q", doc.Sources[1].Files[0].Path)
	}
}
