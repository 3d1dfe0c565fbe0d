package parser

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/narcscan/domain"
)

// Parser rebuilds report trees from CodeNarc XML documents.
// A Parser holds no state between calls and is safe for concurrent use.
type Parser struct{}

// NewParser creates a new report parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a single report document from r. source names the document in
// error messages. r is not closed.
func (p *Parser) Parse(ctx context.Context, source string, r io.Reader) (*domain.AnalysisReport, error) {
	report, err := p.parse(ctx, Filter(NewEventSource(r)))
	if err != nil {
		return nil, domain.NewParseError(source, err)
	}
	return report, nil
}

// ParseReadCloser parses rc and closes it exactly once, on success and on
// failure. A close error is not reported.
func (p *Parser) ParseReadCloser(ctx context.Context, source string, rc io.ReadCloser) (*domain.AnalysisReport, error) {
	defer rc.Close()
	return p.Parse(ctx, source, rc)
}

// ParseFile opens and parses the report file at path
func (p *Parser) ParseFile(ctx context.Context, path string) (*domain.AnalysisReport, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewParseError(path, domain.NewFileNotFoundError(path, err))
		}
		return nil, domain.NewParseError(path, domain.NewStreamError(err))
	}
	return p.ParseReadCloser(ctx, path, file)
}

// ParseString parses a report held in memory
func (p *Parser) ParseString(ctx context.Context, source, content string) (*domain.AnalysisReport, error) {
	return p.Parse(ctx, source, strings.NewReader(content))
}

// ParseEvents runs the reconstruction over an already filtered event source
func (p *Parser) ParseEvents(ctx context.Context, source string, events EventSource) (*domain.AnalysisReport, error) {
	report, err := p.parse(ctx, events)
	if err != nil {
		return nil, domain.NewParseError(source, err)
	}
	return report, nil
}

func (p *Parser) parse(ctx context.Context, events EventSource) (*domain.AnalysisReport, error) {
	builder := newReportBuilder()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err := events.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.NewStreamError(err)
		}
		if err := builder.dispatch(events, ev); err != nil {
			return nil, err
		}
	}
	return builder.finish()
}
