package parser

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/narcscan/domain"
)

// frameKind tags the variant held by a frame
type frameKind int

const (
	rootFrame frameKind = iota
	directoryFrame
	fileFrame
	violationFrame
	textFrame
)

func (k frameKind) String() string {
	switch k {
	case rootFrame:
		return "report"
	case directoryFrame:
		return "directory"
	case fileFrame:
		return "file"
	case violationFrame:
		return "violation"
	case textFrame:
		return "text"
	default:
		return "unknown"
	}
}

// frame is an in-progress node. Only the field matching kind is set.
type frame struct {
	kind frameKind
	tag  string

	report    *domain.AnalysisReport
	dir       *domain.DirectoryNode
	summary   bool // directory opened by the package summary
	file      *fileAccumulator
	violation *domain.Violation
	text      *strings.Builder
}

// fileAccumulator collects violations until its File element closes
type fileAccumulator struct {
	name       string
	violations []domain.Violation
}

func (a *fileAccumulator) toFileNode() *domain.FileNode {
	return domain.NewFileNode(a.name, a.violations)
}

// frameStack is the context stack of the reconstruction
type frameStack struct {
	frames []*frame
}

func (s *frameStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) len() int {
	return len(s.frames)
}

func (s *frameStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// pop removes the top frame, which must be of the given kind. tag names the
// element being closed.
func (s *frameStack) pop(kind frameKind, tag string) (*frame, error) {
	f, err := s.peek(kind, tag)
	if err != nil {
		return nil, err
	}
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// peek returns the top frame, which must be of the given kind
func (s *frameStack) peek(kind frameKind, tag string) (*frame, error) {
	f := s.top()
	if f == nil {
		return nil, domain.NewMalformedReportError(fmt.Sprintf("<%s> has no enclosing %s", tag, kind))
	}
	if f.kind != kind {
		return nil, domain.NewMalformedReportError(
			fmt.Sprintf("<%s> expects an enclosing %s but found %s opened by <%s>", tag, kind, f.kind, f.tag))
	}
	return f, nil
}

func (s *frameStack) describe() string {
	parts := make([]string, 0, len(s.frames))
	for _, f := range s.frames {
		parts = append(parts, "<"+f.tag+">")
	}
	return strings.Join(parts, " ")
}
