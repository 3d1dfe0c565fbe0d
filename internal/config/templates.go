package config

import (
	"strconv"
	"strings"
)

// BuildTool represents the build layout producing the CodeNarc reports
type BuildTool string

const (
	BuildToolGeneric BuildTool = "generic"
	BuildToolMaven   BuildTool = "maven"
	BuildToolGradle  BuildTool = "gradle"
)

// Strictness represents the threshold strictness level
type Strictness string

const (
	StrictnessReportOnly Strictness = "report-only"
	StrictnessRelaxed    Strictness = "relaxed"
	StrictnessStandard   Strictness = "standard"
	StrictnessStrict     Strictness = "strict"
)

// BuildToolPreset holds discovery presets for a build layout
type BuildToolPreset struct {
	ReportPatterns  []string
	ExcludePatterns []string
}

// StrictnessPreset holds threshold values for a strictness level
type StrictnessPreset struct {
	MaxPriority1Violations int
	MaxPriority2Violations int
	MaxPriority3Violations int
}

// GetBuildToolPresets returns discovery presets for the supported build layouts
func GetBuildToolPresets() map[BuildTool]BuildToolPreset {
	return map[BuildTool]BuildToolPreset{
		BuildToolGeneric: {
			ReportPatterns:  []string{"CodeNarc*.xml", "codenarc*.xml"},
			ExcludePatterns: []string{".git/", "node_modules/"},
		},
		BuildToolMaven: {
			// codenarc-maven-plugin writes target/CodeNarcXmlReport.xml
			ReportPatterns:  []string{"CodeNarc*.xml"},
			ExcludePatterns: []string{".git/", "target/classes/", "target/test-classes/"},
		},
		BuildToolGradle: {
			// the gradle plugin writes build/reports/codenarc/<sourceSet>.xml
			ReportPatterns:  []string{"main.xml", "test.xml", "integrationTest.xml"},
			ExcludePatterns: []string{".git/", ".gradle/", "build/tmp/", "build/classes/"},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessReportOnly: {
			MaxPriority1Violations: -1,
			MaxPriority2Violations: -1,
			MaxPriority3Violations: -1,
		},
		StrictnessRelaxed: {
			MaxPriority1Violations: 0,
			MaxPriority2Violations: -1, // No limit
			MaxPriority3Violations: -1, // No limit
		},
		StrictnessStandard: {
			MaxPriority1Violations: 0,
			MaxPriority2Violations: 10,
			MaxPriority3Violations: -1, // No limit
		},
		StrictnessStrict: {
			MaxPriority1Violations: 0,
			MaxPriority2Violations: 0,
			MaxPriority3Violations: 0,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(buildTool BuildTool, strictness Strictness, format string) string {
	preset, ok := GetBuildToolPresets()[buildTool]
	if !ok {
		preset = GetBuildToolPresets()[BuildToolGeneric]
	}
	strict, ok := GetStrictnessPresets()[strictness]
	if !ok {
		strict = GetStrictnessPresets()[StrictnessReportOnly]
	}
	if format == "" {
		format = "text"
	}

	return `# narcscan configuration
# Documentation: https://github.com/ludo-technologies/narcscan

# ============================================================================
# THRESHOLDS
# ============================================================================
# Maximum number of violations allowed per priority before "narcscan check"
# fails with exit code 1. Priority 1 is the most severe. -1 disables a limit.
thresholds:
  max_priority1_violations: ` + strconv.Itoa(strict.MaxPriority1Violations) + `
  max_priority2_violations: ` + strconv.Itoa(strict.MaxPriority2Violations) + `
  max_priority3_violations: ` + strconv.Itoa(strict.MaxPriority3Violations) + `

# ============================================================================
# OUTPUT SETTINGS
# ============================================================================
output:
  # Output format: text, json, yaml, csv, html, dot
  format: ` + format + `

  # Print the per-file violation tables
  show_details: false

  # Directory for HTML reports (empty = .narcscan/reports)
  directory: ""

# ============================================================================
# REPORT DISCOVERY
# ============================================================================
# Controls which files are picked up when a directory is given
discovery:
  # File name patterns of CodeNarc XML reports
  report_patterns:
` + formatYAMLList(preset.ReportPatterns) + `
  # Paths to skip, in .gitignore syntax
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns) + `
  # Search subdirectories
  recursive: true

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # Number of reports parsed in parallel
  max_goroutines: ` + strconv.Itoa(DefaultMaxGoroutines) + `

  # Timeout for the whole run in seconds
  timeout_seconds: ` + strconv.Itoa(DefaultTimeoutSeconds) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# narcscan configuration (minimal)
# See full options: https://github.com/ludo-technologies/narcscan

thresholds:
  max_priority1_violations: 0
  max_priority2_violations: -1
  max_priority3_violations: -1

discovery:
  report_patterns:
    - "CodeNarc*.xml"
`
}

// formatYAMLList formats a string slice as an indented YAML block sequence
func formatYAMLList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(`    - "` + item + `"` + "\n")
	}
	return sb.String()
}
