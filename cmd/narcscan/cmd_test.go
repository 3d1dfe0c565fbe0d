package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/ludo-technologies/narcscan/internal/testutil"
	"gopkg.in/yaml.v3"
)

// writeCheckConfig pins the config so discovery never reaches the host
func writeCheckConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "narcscan.yaml")
	content := `thresholds:
  max_priority1_violations: -1
  max_priority2_violations: -1
  max_priority3_violations: -1
discovery:
  report_patterns:
    - "CodeNarc*.xml"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"report", "check", "init", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Missing subcommand %s", name)
		}
	}
}

func TestVersionCmd_Output(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "narcscan version ") {
		t.Errorf("Unexpected version output %q", out.String())
	}
}

func TestReportCmd_FlagsExist(t *testing.T) {
	cmd := reportCmd()

	expectedFlags := []string{"format", "json", "html", "output", "details", "config", "no-recursive", "max-depth", "rankdir", "packages-only"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestReportCmd_ShortFlags(t *testing.T) {
	cmd := reportCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
			continue
		}
		if flag.Name != long {
			t.Errorf("Short flag -%s maps to --%s, expected --%s", short, flag.Name, long)
		}
	}
}

func TestReportCmd_NoPathsError(t *testing.T) {
	cmd := reportCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestReportCmd_JSONAndHTMLConflict(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := reportCmd()
	cmd.SetArgs([]string{"--json", "--html", "--config", writeCheckConfig(t, dir), report})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when --json and --html are combined")
	}
}

func TestReportCmd_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := reportCmd()
	cmd.SetArgs([]string{"--format", "xml", "--config", writeCheckConfig(t, dir), report})

	err := cmd.Execute()
	if !domain.HasErrorCode(err, domain.ErrCodeUnsupportedFormat) {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestReportCmd_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := reportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json", "--config", writeCheckConfig(t, dir), report})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out.String())
	}
	if _, ok := decoded["reports"]; !ok {
		t.Error("Expected a reports key")
	}
	if !strings.Contains(out.String(), "Sample Project") {
		t.Error("Expected the project title in the output")
	}
}

func TestReportCmd_TextDetails(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := reportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--details", "--config", writeCheckConfig(t, dir), report})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Summary:", "Package Summary:", "org.example", "CatchThrowable"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestReportCmd_HTMLFile(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())
	outputPath := filepath.Join(dir, "out", "report.html")

	cmd := reportCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--html", "-o", outputPath, "--config", writeCheckConfig(t, dir), report})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("HTML report not written: %v", err)
	}
	if !strings.Contains(string(content), "<html") {
		t.Error("Expected an HTML document")
	}
	if !strings.Contains(stderr.String(), "HTML report saved to:") {
		t.Errorf("Expected save message, got %q", stderr.String())
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"max-priority1", "max-priority2", "max-priority3", "verbose", "json", "config", "no-recursive"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_DefaultValues(t *testing.T) {
	cmd := checkCmd()

	for _, name := range []string{"max-priority1", "max-priority2", "max-priority3"} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != "-1" {
			t.Errorf("Expected default %s to be '-1', got '%s'", name, flag.DefValue)
		}
	}

	if cmd.Flags().ShorthandLookup("v") == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected CheckExitError, got %v", err)
	}
	if exitErr.Code != constants.ExitCodeError {
		t.Errorf("Expected exit code %d, got %d", constants.ExitCodeError, exitErr.Code)
	}
}

func TestCheckCmd_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		wantCode int
		wantText string
	}{
		{
			name:     "unlimited by default",
			flags:    nil,
			wantCode: constants.ExitCodeSuccess,
			wantText: "Check passed",
		},
		{
			name:     "within limits",
			flags:    []string{"--max-priority1", "1", "--max-priority3", "1"},
			wantCode: constants.ExitCodeSuccess,
			wantText: "Check passed",
		},
		{
			name:     "priority 1 exceeded",
			flags:    []string{"--max-priority1", "0"},
			wantCode: constants.ExitCodeThresholdsExceeded,
			wantText: "totalPriority1Violations exceeded threshold of 0 errors with 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

			cmd := checkCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			args := append([]string{"--config", writeCheckConfig(t, dir)}, tt.flags...)
			cmd.SetArgs(append(args, report))

			err := cmd.Execute()
			code := constants.ExitCodeSuccess
			var exitErr *CheckExitError
			if errors.As(err, &exitErr) {
				code = exitErr.Code
			} else if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if code != tt.wantCode {
				t.Errorf("Expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.Contains(out.String(), tt.wantText) {
				t.Errorf("Expected %q in output:\n%s", tt.wantText, out.String())
			}
		})
	}
}

func TestCheckCmd_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := checkCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json", "--max-priority2", "0", "--config", writeCheckConfig(t, dir), report})

	err := cmd.Execute()
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitCodeThresholdsExceeded {
		t.Fatalf("Expected threshold failure, got %v", err)
	}

	var result domain.CheckResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out.String())
	}
	if result.Passed {
		t.Error("Expected the check to fail")
	}
	if len(result.Violations) != 1 || result.Violations[0].Priority != domain.PriorityTwo {
		t.Errorf("Expected one priority 2 violation, got %+v", result.Violations)
	}
}

func TestCheckCmd_ConfiguredOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		check  func(t *testing.T, out string)
	}{
		{
			name:   "yaml from config",
			format: "yaml",
			check: func(t *testing.T, out string) {
				var result domain.CheckResult
				if err := yaml.Unmarshal([]byte(out), &result); err != nil {
					t.Fatalf("Output is not YAML: %v\n%s", err, out)
				}
				if !result.Passed || result.Summary.ReportsParsed != 1 {
					t.Errorf("Unexpected result: %+v", result)
				}
				if strings.Contains(out, "Check passed") {
					t.Errorf("Expected YAML, got text:\n%s", out)
				}
			},
		},
		{
			name:   "json flag beats config",
			format: "yaml",
			args:   []string{"--json"},
			check: func(t *testing.T, out string) {
				if !json.Valid([]byte(out)) {
					t.Errorf("Expected JSON output, got:\n%s", out)
				}
			},
		},
		{
			name:   "report-only format prints text",
			format: "html",
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "Check passed") {
					t.Errorf("Expected text output, got:\n%s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())
			configPath := writeCheckConfig(t, dir)
			f, err := os.OpenFile(configPath, os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				t.Fatalf("Failed to open config: %v", err)
			}
			if _, err := f.WriteString("output:\n  format: " + tt.format + "\n"); err != nil {
				t.Fatalf("Failed to append output format: %v", err)
			}
			f.Close()

			cmd := checkCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append(tt.args, "--config", configPath, report))

			if err := cmd.Execute(); err != nil {
				t.Fatalf("check failed: %v", err)
			}
			tt.check(t, out.String())
		})
	}
}

func TestCheckCmd_VerboseLog(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", testutil.SampleReport())

	cmd := checkCmd()
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-v", "--config", writeCheckConfig(t, dir), report})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "Parsing completed: (p1=1; p2=1; p3=1)") {
		t.Errorf("Expected verbose summary, got %q", stderr.String())
	}
}

func TestCheckCmd_MalformedReport(t *testing.T) {
	dir := t.TempDir()
	report := testutil.WriteTempReport(t, dir, "CodeNarc.xml", "<CodeNarc><Mystery/></CodeNarc>")

	cmd := checkCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", writeCheckConfig(t, dir), report})

	err := cmd.Execute()
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected CheckExitError, got %v", err)
	}
	if exitErr.Code != constants.ExitCodeError {
		t.Errorf("Expected exit code %d, got %d", constants.ExitCodeError, exitErr.Code)
	}
}
