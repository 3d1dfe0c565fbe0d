package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// EventKind classifies document events
type EventKind int

const (
	// EventOther covers comments, processing instructions and directives
	EventOther EventKind = iota
	EventStart
	EventEnd
	EventText
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventText:
		return "text"
	default:
		return "other"
	}
}

// Attr is an element attribute keyed by local name
type Attr struct {
	Name  string
	Value string
}

// Event is one structural event of a report document
type Event struct {
	Kind  EventKind
	Name  string // local element name for start and end events
	Attrs []Attr // start events only
	Text  string // text events only
}

// Attr returns the value of the named attribute
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// EventSource yields document events in order and io.EOF after the last one
type EventSource interface {
	Next() (Event, error)
}

// xmlEventSource adapts an xml.Decoder to EventSource
type xmlEventSource struct {
	decoder *xml.Decoder
}

// NewEventSource creates an unfiltered event source reading XML from r
func NewEventSource(r io.Reader) EventSource {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return &xmlEventSource{decoder: decoder}
}

// Next implements EventSource
func (s *xmlEventSource) Next() (Event, error) {
	token, err := s.decoder.Token()
	if err != nil {
		return Event{}, err
	}

	switch t := token.(type) {
	case xml.StartElement:
		attrs := make([]Attr, 0, len(t.Attr))
		for _, a := range t.Attr {
			attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
		}
		return Event{Kind: EventStart, Name: t.Name.Local, Attrs: attrs}, nil
	case xml.EndElement:
		return Event{Kind: EventEnd, Name: t.Name.Local}, nil
	case xml.CharData:
		// CharData is only valid until the next Token call
		return Event{Kind: EventText, Text: string(t)}, nil
	default:
		return Event{Kind: EventOther}, nil
	}
}

// filteredSource keeps element events and non-blank text
type filteredSource struct {
	source EventSource
}

// Filter wraps source so that only element-open, element-close and
// non-blank text events are returned. Order is preserved and nothing is
// buffered.
func Filter(source EventSource) EventSource {
	return &filteredSource{source: source}
}

// Next implements EventSource
func (f *filteredSource) Next() (Event, error) {
	for {
		ev, err := f.source.Next()
		if err != nil {
			return Event{}, err
		}
		if accept(ev) {
			return ev, nil
		}
	}
}

// accept reports whether an event survives filtering
func accept(ev Event) bool {
	switch ev.Kind {
	case EventStart, EventEnd:
		return true
	case EventText:
		return !isWhitespace(ev.Text)
	default:
		return false
	}
}

// isWhitespace reports whether text holds only XML whitespace
func isWhitespace(text string) bool {
	return strings.Trim(text, " \t\r\n") == ""
}
