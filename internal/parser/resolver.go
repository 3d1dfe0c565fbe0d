package parser

import (
	"fmt"

	"github.com/ludo-technologies/narcscan/domain"
)

// attachDirectory places child under parent using its path only.
//
// An empty path is a source root and attaches to parent directly. Otherwise
// the search descends, level by level, into the most recently added
// directory that is an antecedent of child's path, and child is attached
// where no further antecedent exists. Packages arrive in pre-order, so the
// most recent match is the deepest branch still open.
func attachDirectory(parent, child *domain.DirectoryNode) error {
	if child.Path == "" {
		parent.AddChild(child)
		return nil
	}

	current := parent
	for {
		next := findAntecedent(current, child.Path)
		if next == nil {
			break
		}
		current = next
	}

	for _, sibling := range current.Directories() {
		if sibling.Path == child.Path {
			return domain.NewMalformedReportError(fmt.Sprintf("duplicate package path %q", child.Path))
		}
	}
	current.AddChild(child)
	return nil
}

// findAntecedent scans dir's children from the newest backwards for a
// directory that is an antecedent of path. Files are skipped.
func findAntecedent(dir *domain.DirectoryNode, path string) *domain.DirectoryNode {
	for i := len(dir.Children) - 1; i >= 0; i-- {
		sub, ok := dir.Children[i].(*domain.DirectoryNode)
		if ok && sub.IsAntecedentOf(path) {
			return sub
		}
	}
	return nil
}
