package domain

import "sort"

// NodeFilter selects nodes visited by Walk
type NodeFilter func(Node) bool

// Or combines two filters
func (f NodeFilter) Or(other NodeFilter) NodeFilter {
	return func(n Node) bool {
		return f(n) || other(n)
	}
}

// And combines two filters
func (f NodeFilter) And(other NodeFilter) NodeFilter {
	return func(n Node) bool {
		return f(n) && other(n)
	}
}

// Predefined filters
var (
	// Files selects file nodes
	Files NodeFilter = func(n Node) bool { return !n.IsDirectory() }

	// Directories selects directory nodes
	Directories NodeFilter = func(n Node) bool { return n.IsDirectory() }

	// SourceRoots selects empty-path directories, one per scanned source root
	SourceRoots = Directories.And(func(n Node) bool { return n.NodePath() == "" })

	// DirectoriesWithFiles selects directories with at least one direct file child
	DirectoriesWithFiles NodeFilter = func(n Node) bool {
		dir, ok := n.(*DirectoryNode)
		if !ok {
			return false
		}
		for _, child := range dir.Children {
			if !child.IsDirectory() {
				return true
			}
		}
		return false
	}

	// All selects every node
	All NodeFilter = func(Node) bool { return true }
)

// Walk performs a depth-first pre-order traversal from n, calling visit for
// every node accepted by filter. Within a directory, file children are
// visited before subdirectories.
func Walk(n Node, filter NodeFilter, visit func(Node)) {
	if n == nil {
		return
	}
	if filter(n) {
		visit(n)
	}
	dir, ok := n.(*DirectoryNode)
	if !ok {
		return
	}
	children := make([]Node, len(dir.Children))
	copy(children, dir.Children)
	sort.SliceStable(children, func(i, j int) bool {
		return !children[i].IsDirectory() && children[j].IsDirectory()
	})
	for _, child := range children {
		Walk(child, filter, visit)
	}
}
