package service

import (
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/version"
)

// HTMLData represents the data for HTML template
type HTMLData struct {
	GeneratedAt string
	Version     string
	Reports     []HTMLReport
}

// HTMLReport is one report section of the page
type HTMLReport struct {
	ID       string
	Document ReportDocument
	Counts   domain.PriorityCounts
	Files    int
	Flagged  int
}

// sourceAndMessage splits the last cell of a violation row
type sourceAndMessage struct {
	Source  string
	Message string
}

// WriteHTML writes the parsed reports as a single HTML page
func (f *OutputFormatterImpl) WriteHTML(reports []domain.ParsedReport, writer io.Writer) error {
	data := HTMLData{
		GeneratedAt: f.now().Format("2006-01-02 15:04:05"),
		Version:     version.GetVersion(),
	}

	for i, parsed := range reports {
		summary := domain.Summarize(parsed.Path, parsed.Report)
		data.Reports = append(data.Reports, HTMLReport{
			ID:       "report-" + strconv.Itoa(i),
			Document: BuildReportDocument(parsed),
			Counts:   summary.Violations,
			Files:    summary.TotalFiles,
			Flagged:  summary.FilesWithViolations,
		})
	}

	funcMap := template.FuncMap{
		"splitCell": func(cell string) sourceAndMessage {
			source, message, found := strings.Cut(cell, "\n")
			if !found {
				return sourceAndMessage{Message: source}
			}
			return sourceAndMessage{Source: source, Message: message}
		},
		"priorityClass": func(priority string) string {
			switch priority {
			case "1":
				return "priority-1"
			case "2":
				return "priority-2"
			default:
				return "priority-3"
			}
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(writer, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>narcscan Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #eef1f7;
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header, .report {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 { color: #3f51b5; margin-bottom: 10px; }
        .subtitle { color: #666; font-size: 14px; }
        h2 { color: #2c3e50; margin-bottom: 10px; }
        h3 { color: #2c3e50; margin: 24px 0 8px; }
        h4 { color: #555; margin: 16px 0 4px; font-family: monospace; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }
        .metric-card { background: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center; }
        .metric-value { font-size: 32px; font-weight: bold; color: #3f51b5; }
        .metric-label { color: #666; margin-top: 5px; }
        .table { width: 100%; border-collapse: collapse; margin: 12px 0; }
        .table th, .table td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; vertical-align: top; }
        .table th { background: #f8f9fa; font-weight: 600; }
        .source-line { font-family: monospace; font-style: italic; color: #555; }
        .priority-1 { color: #f44336; font-weight: bold; }
        .priority-2 { color: #ff9800; font-weight: bold; }
        .priority-3 { color: #2196f3; }
        .clean { color: #4caf50; font-weight: bold; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>narcscan Report</h1>
            <p class="subtitle">Generated: {{.GeneratedAt}} | Version: {{.Version}} | Reports: {{len .Reports}}</p>
        </div>

        {{range .Reports}}
        <div class="report" id="{{.ID}}">
            <h2>{{if .Document.ProjectTitle}}{{.Document.ProjectTitle}}{{else}}{{.Document.Path}}{{end}}</h2>
            <p class="subtitle">Report: {{.Document.Path}} | CodeNarc version: <em>{{.Document.ToolVersion}}</em> | Generated: <em>{{.Document.ReportTimestamp}}</em></p>

            <div class="metric-grid">
                <div class="metric-card">
                    <div class="metric-value">{{.Files}}</div>
                    <div class="metric-label">Files</div>
                </div>
                <div class="metric-card">
                    <div class="metric-value">{{.Flagged}}</div>
                    <div class="metric-label">Files with Violations</div>
                </div>
                <div class="metric-card">
                    <div class="metric-value priority-1">{{.Counts.Priority1}}</div>
                    <div class="metric-label">Priority 1</div>
                </div>
                <div class="metric-card">
                    <div class="metric-value priority-2">{{.Counts.Priority2}}</div>
                    <div class="metric-label">Priority 2</div>
                </div>
                <div class="metric-card">
                    <div class="metric-value priority-3">{{.Counts.Priority3}}</div>
                    <div class="metric-label">Priority 3</div>
                </div>
            </div>

            <h3>Summary</h3>
            {{template "table" .Document.Summary}}

            {{if .Document.HasViolations}}
            <h3>Package Summary</h3>
            {{range .Document.Sources}}
            {{if .SourceDirectory}}<p>Source Directory: <em>{{.SourceDirectory}}</em></p>{{end}}
            {{template "table" .Packages}}
            {{end}}

            <h3>Files</h3>
            {{range .Document.Sources}}
            {{if .SourceDirectory}}<p>Source Directory: <em>{{.SourceDirectory}}</em></p>{{end}}
            {{range .Files}}
            <h4>{{.Path}}</h4>
            <table class="table">
                <thead>
                    <tr>{{range .Violations.Headers}}<th>{{.}}</th>{{end}}</tr>
                </thead>
                <tbody>
                    {{range .Violations.Rows}}
                    <tr>
                        <td>{{index . 0}}</td>
                        <td class="{{priorityClass (index . 1)}}">{{index . 1}}</td>
                        <td>{{index . 2}}</td>
                        {{$cell := splitCell (index . 3)}}<td>{{if $cell.Source}}<p class="source-line">{{$cell.Source}}</p>{{end}}<p>{{$cell.Message}}</p></td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            {{end}}
            {{end}}
            {{else}}
            <p class="clean">✓ No violations found</p>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
{{define "table"}}
<table class="table">
    <thead>
        <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
        {{range .Rows}}
        <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
        {{end}}
    </tbody>
</table>
{{end}}`
