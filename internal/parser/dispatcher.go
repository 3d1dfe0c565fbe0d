package parser

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/narcscan/domain"
)

type (
	startHandler func(ev Event) error
	endHandler   func() error
	textHandler  func(text string) error
)

// dispatcher routes events to the handlers registered for their tag
type dispatcher struct {
	starts  map[string]startHandler
	ends    map[string]endHandler
	text    textHandler
	ignored map[string]struct{}
	skipped map[string]struct{}
}

// dispatch handles one filtered event. Skipped subtrees are consumed from
// source directly.
func (d *dispatcher) dispatch(source EventSource, ev Event) error {
	switch ev.Kind {
	case EventStart:
		if _, skip := d.skipped[ev.Name]; skip {
			return skipSubtree(source, ev.Name)
		}
		if handler, ok := d.starts[ev.Name]; ok {
			return handler(ev)
		}
		return d.verifyIgnored(ev.Name)
	case EventEnd:
		if handler, ok := d.ends[ev.Name]; ok {
			return handler()
		}
		return d.verifyIgnored(ev.Name)
	case EventText:
		return d.text(ev.Text)
	default:
		return nil
	}
}

func (d *dispatcher) verifyIgnored(name string) error {
	if _, ok := d.ignored[name]; !ok {
		return domain.NewUnrecognizedTagError(name)
	}
	return nil
}

// skipSubtree discards events up to and including the end tag matching an
// already consumed start tag called name. Nested elements of the same name
// are tracked by depth.
func skipSubtree(source EventSource, name string) error {
	depth := 1
	for depth > 0 {
		ev, err := source.Next()
		if err == io.EOF {
			return domain.NewMalformedReportError(fmt.Sprintf("document ended inside <%s>", name))
		}
		if err != nil {
			return domain.NewStreamError(err)
		}
		if ev.Name != name {
			continue
		}
		switch ev.Kind {
		case EventStart:
			depth++
		case EventEnd:
			depth--
		}
	}
	return nil
}

func setOf(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
