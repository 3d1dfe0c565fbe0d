package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ludo-technologies/narcscan/domain"
)

// Report vocabulary
const (
	tagCodeNarc        = "CodeNarc"
	tagReport          = "Report"
	tagProject         = "Project"
	tagSourceDirectory = "SourceDirectory"
	tagPackageSummary  = "PackageSummary"
	tagPackage         = "Package"
	tagFile            = "File"
	tagViolation       = "Violation"
	tagSourceLine      = "SourceLine"
	tagMessage         = "Message"
	tagRules           = "Rules"
	tagRule            = "Rule"
	tagDescription     = "Description"

	attrVersion       = "version"
	attrTimestamp     = "timestamp"
	attrTitle         = "title"
	attrTotalFiles    = "totalFiles"
	attrPath          = "path"
	attrName          = "name"
	attrRuleName      = "ruleName"
	attrPriority      = "priority"
	attrLineNumber    = "lineNumber"
	attrCompilerPhase = "compilerPhase"
)

// reportBuilder is the context stack machine rebuilding one report
type reportBuilder struct {
	stack      frameStack
	dispatcher *dispatcher
	hasSummary bool
}

func newReportBuilder() *reportBuilder {
	b := &reportBuilder{}
	b.dispatcher = &dispatcher{
		starts: map[string]startHandler{
			tagCodeNarc:        b.startCodeNarc,
			tagReport:          b.startReport,
			tagProject:         b.startProject,
			tagSourceDirectory: b.startText,
			tagPackageSummary:  b.startPackageSummary,
			tagPackage:         b.startPackage,
			tagFile:            b.startFile,
			tagViolation:       b.startViolation,
			tagSourceLine:      b.startText,
			tagMessage:         b.startText,
		},
		ends: map[string]endHandler{
			tagCodeNarc:        b.endCodeNarc,
			tagReport:          noop,
			tagProject:         noop,
			tagSourceDirectory: b.endSourceDirectory,
			tagPackageSummary:  noop,
			tagPackage:         b.endPackage,
			tagFile:            b.endFile,
			tagViolation:       b.endViolation,
			tagSourceLine:      b.endSourceLine,
			tagMessage:         b.endMessage,
		},
		text:    b.consumeText,
		ignored: setOf(tagRules, tagRule, tagDescription),
		skipped: setOf(tagRules),
	}
	return b
}

func noop() error { return nil }

// dispatch hands one event to the dispatcher
func (b *reportBuilder) dispatch(source EventSource, ev Event) error {
	return b.dispatcher.dispatch(source, ev)
}

// finish returns the completed report once the document has ended
func (b *reportBuilder) finish() (*domain.AnalysisReport, error) {
	switch b.stack.len() {
	case 0:
		return nil, domain.NewMalformedReportError("document has no <" + tagCodeNarc + "> element")
	case 1:
		f, err := b.stack.peek(rootFrame, tagCodeNarc)
		if err != nil {
			return nil, err
		}
		return f.report, nil
	default:
		return nil, domain.NewMalformedReportError(
			fmt.Sprintf("document ended with unclosed elements: %s", b.stack.describe()))
	}
}

func (b *reportBuilder) consumeText(text string) error {
	top := b.stack.top()
	if top == nil || top.kind != textFrame {
		where := "document"
		if top != nil {
			where = "<" + top.tag + ">"
		}
		return domain.NewMalformedReportError(fmt.Sprintf("unexpected text %q inside %s", abbreviate(text), where))
	}
	top.text.WriteString(text)
	return nil
}

func (b *reportBuilder) startCodeNarc(ev Event) error {
	if b.stack.len() != 0 {
		return domain.NewMalformedReportError("nested <" + tagCodeNarc + "> element")
	}
	version, err := requiredAttr(ev, attrVersion)
	if err != nil {
		return err
	}
	report := domain.NewAnalysisReport()
	report.ToolVersion = version
	b.stack.push(&frame{kind: rootFrame, tag: ev.Name, report: report})
	return nil
}

func (b *reportBuilder) startReport(ev Event) error {
	root, err := b.stack.peek(rootFrame, ev.Name)
	if err != nil {
		return err
	}
	timestamp, err := requiredAttr(ev, attrTimestamp)
	if err != nil {
		return err
	}
	root.report.ReportTimestamp = timestamp
	return nil
}

func (b *reportBuilder) startProject(ev Event) error {
	root, err := b.stack.peek(rootFrame, ev.Name)
	if err != nil {
		return err
	}
	title, err := requiredAttr(ev, attrTitle)
	if err != nil {
		return err
	}
	root.report.ProjectTitle = title
	return nil
}

func (b *reportBuilder) startText(ev Event) error {
	b.stack.push(&frame{kind: textFrame, tag: ev.Name, text: &strings.Builder{}})
	return nil
}

func (b *reportBuilder) startPackageSummary(ev Event) error {
	if b.hasSummary {
		return domain.NewMalformedReportError("duplicate <" + tagPackageSummary + "> element")
	}
	if _, err := b.stack.peek(rootFrame, ev.Name); err != nil {
		return err
	}
	totalFiles, err := intAttr(ev, attrTotalFiles)
	if err != nil {
		return err
	}
	b.hasSummary = true
	b.stack.push(&frame{
		kind:    directoryFrame,
		tag:     ev.Name,
		dir:     domain.NewDirectoryNode("", totalFiles),
		summary: true,
	})
	return nil
}

func (b *reportBuilder) startPackage(ev Event) error {
	path, err := requiredAttr(ev, attrPath)
	if err != nil {
		return err
	}
	totalFiles, err := intAttr(ev, attrTotalFiles)
	if err != nil {
		return err
	}
	b.stack.push(&frame{kind: directoryFrame, tag: ev.Name, dir: domain.NewDirectoryNode(path, totalFiles)})
	return nil
}

func (b *reportBuilder) startFile(ev Event) error {
	name, err := requiredAttr(ev, attrName)
	if err != nil {
		return err
	}
	b.stack.push(&frame{kind: fileFrame, tag: ev.Name, file: &fileAccumulator{name: name}})
	return nil
}

func (b *reportBuilder) startViolation(ev Event) error {
	ruleName, err := requiredAttr(ev, attrRuleName)
	if err != nil {
		return err
	}
	priority, err := intAttr(ev, attrPriority)
	if err != nil {
		return err
	}
	if priority < domain.PriorityOne || priority > domain.MaxPriority {
		return domain.NewMalformedReportError(
			fmt.Sprintf("<%s> attribute %q must be between %d and %d, got %d",
				ev.Name, attrPriority, domain.PriorityOne, domain.MaxPriority, priority))
	}
	lineNumber, err := intAttr(ev, attrLineNumber)
	if err != nil {
		return err
	}
	compilerPhase, err := optionalIntAttr(ev, attrCompilerPhase)
	if err != nil {
		return err
	}
	b.stack.push(&frame{
		kind: violationFrame,
		tag:  ev.Name,
		violation: &domain.Violation{
			LineNumber: lineNumber,
			Rule: domain.Rule{
				Name:          ruleName,
				Priority:      priority,
				CompilerPhase: compilerPhase,
			},
		},
	})
	return nil
}

func (b *reportBuilder) endCodeNarc() error {
	summary, err := b.stack.pop(directoryFrame, tagCodeNarc)
	if err != nil {
		if !b.hasSummary {
			return domain.NewMalformedReportError("report has no <" + tagPackageSummary + "> element")
		}
		return err
	}
	if !summary.summary {
		return domain.NewMalformedReportError(
			fmt.Sprintf("<%s> closed while <%s path=%q> is open", tagCodeNarc, summary.tag, summary.dir.Path))
	}
	root, err := b.stack.peek(rootFrame, tagCodeNarc)
	if err != nil {
		return err
	}
	root.report.Root = summary.dir
	return nil
}

func (b *reportBuilder) endSourceDirectory() error {
	text, err := b.stack.pop(textFrame, tagSourceDirectory)
	if err != nil {
		return err
	}
	root, err := b.stack.peek(rootFrame, tagSourceDirectory)
	if err != nil {
		return err
	}
	root.report.AddSourceDirectory(text.text.String())
	return nil
}

func (b *reportBuilder) endPackage() error {
	child, err := b.stack.pop(directoryFrame, tagPackage)
	if err != nil {
		return err
	}
	parent, err := b.stack.peek(directoryFrame, tagPackage)
	if err != nil {
		return err
	}
	return attachDirectory(parent.dir, child.dir)
}

func (b *reportBuilder) endFile() error {
	file, err := b.stack.pop(fileFrame, tagFile)
	if err != nil {
		return err
	}
	dir, err := b.stack.peek(directoryFrame, tagFile)
	if err != nil {
		return err
	}
	dir.dir.AddChild(file.file.toFileNode())
	return nil
}

func (b *reportBuilder) endViolation() error {
	violation, err := b.stack.pop(violationFrame, tagViolation)
	if err != nil {
		return err
	}
	file, err := b.stack.peek(fileFrame, tagViolation)
	if err != nil {
		return err
	}
	file.file.violations = append(file.file.violations, *violation.violation)
	return nil
}

func (b *reportBuilder) endSourceLine() error {
	text, err := b.stack.pop(textFrame, tagSourceLine)
	if err != nil {
		return err
	}
	violation, err := b.stack.peek(violationFrame, tagSourceLine)
	if err != nil {
		return err
	}
	violation.violation.SourceLine = text.text.String()
	return nil
}

func (b *reportBuilder) endMessage() error {
	text, err := b.stack.pop(textFrame, tagMessage)
	if err != nil {
		return err
	}
	violation, err := b.stack.peek(violationFrame, tagMessage)
	if err != nil {
		return err
	}
	violation.violation.Message = text.text.String()
	return nil
}

func requiredAttr(ev Event, name string) (string, error) {
	value, ok := ev.Attr(name)
	if !ok {
		return "", domain.NewMalformedReportError(fmt.Sprintf("<%s> is missing attribute %q", ev.Name, name))
	}
	return value, nil
}

func intAttr(ev Event, name string) (int, error) {
	value, err := requiredAttr(ev, name)
	if err != nil {
		return 0, err
	}
	return toInt(ev, name, value)
}

func optionalIntAttr(ev Event, name string) (int, error) {
	value, ok := ev.Attr(name)
	if !ok || strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return toInt(ev, name, value)
}

func toInt(ev Event, name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, domain.NewMalformedReportError(
			fmt.Sprintf("<%s> attribute %q is not a number: %q", ev.Name, name, value))
	}
	return n, nil
}

func abbreviate(text string) string {
	const max = 40
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
