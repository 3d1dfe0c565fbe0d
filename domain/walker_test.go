package domain

import (
	"strings"
	"testing"
)

func walkPaths(n Node, filter NodeFilter) string {
	var paths []string
	Walk(n, filter, func(n Node) {
		if n.NodePath() == "" {
			paths = append(paths, "<root>")
			return
		}
		paths = append(paths, n.NodePath())
	})
	return strings.Join(paths, ",")
}

func TestWalkOrder(t *testing.T) {
	// directory added before the file still comes after it
	dir := NewDirectoryNode("", 0)
	sub := NewDirectoryNode("a", 0)
	sub.AddChild(NewFileNode("Inner.groovy", nil))
	dir.AddChild(sub)
	dir.AddChild(NewFileNode("First.groovy", nil))
	dir.AddChild(NewFileNode("Second.groovy", nil))

	got := walkPaths(dir, All)
	want := "<root>,First.groovy,Second.groovy,a,Inner.groovy"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	// the tree itself is untouched
	if !dir.Children[0].IsDirectory() {
		t.Error("Walk must not reorder children")
	}
}

func TestWalkFilters(t *testing.T) {
	report := sampleReport()

	tests := []struct {
		name   string
		filter NodeFilter
		want   string
	}{
		{"files", Files, "A.groovy,B.groovy,C.groovy,D.groovy"},
		{"directories", Directories, "<root>,<root>,org,org/x"},
		{"source roots", SourceRoots, "<root>,<root>"},
		{"directories with files", DirectoriesWithFiles, "<root>,org,org/x"},
		{"or", SourceRoots.Or(Files), "<root>,<root>,A.groovy,B.groovy,C.groovy,D.groovy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := walkPaths(report.Root, tt.filter); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWalkNil(t *testing.T) {
	called := false
	Walk(nil, All, func(Node) { called = true })
	if called {
		t.Error("Walk over nil must not visit")
	}
}
