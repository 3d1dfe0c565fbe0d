package main

import (
	"fmt"

	"github.com/ludo-technologies/narcscan/app"
	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/config"
	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/ludo-technologies/narcscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries the process exit code of a command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMaxPriority1 int
	checkMaxPriority2 int
	checkMaxPriority3 int
	checkVerbose      bool
	checkJSON         bool
	checkConfigPath   string
	checkNoRecursive  bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fail when CodeNarc violation counts exceed thresholds",
		Long: `Parse CodeNarc XML reports and compare the violation totals per priority
with the configured maximums.

Paths may be report files or directories searched for reports.

Exit codes:
  0 - All thresholds hold
  1 - A priority threshold was exceeded
  2 - Error (report not found, malformed report, bad configuration)

Examples:
  # Check every report under build/reports
  narcscan check build/reports

  # Allow no priority 1 and at most 5 priority 2 violations
  narcscan check --max-priority1 0 --max-priority2 5 build/reports/codenarc/main.xml

  # JSON output for machine parsing
  narcscan check --json build/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkMaxPriority1, "max-priority1", domain.UnlimitedViolations,
		"Maximum allowed priority 1 violations (-1 = unlimited, default from config)")
	cmd.Flags().IntVar(&checkMaxPriority2, "max-priority2", domain.UnlimitedViolations,
		"Maximum allowed priority 2 violations (-1 = unlimited, default from config)")
	cmd.Flags().IntVar(&checkMaxPriority3, "max-priority3", domain.UnlimitedViolations,
		"Maximum allowed priority 3 violations (-1 = unlimited, default from config)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Print per-report priority counts")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&checkNoRecursive, "no-recursive", false,
		"Do not search subdirectories for reports")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitCodeError, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	req := service.NewConfigurationLoader().MergeConfig(service.ConvertToCheckRequest(cfg), checkOverrides(cmd, args))
	req.ConfigPath = checkConfigPath
	if checkNoRecursive {
		req.Recursive = false
	}
	req.OutputFormat = checkOutputFormat(req.OutputFormat)

	// Progress is auto-disabled for machine-readable output or non-TTY/CI
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewReportServiceFromConfig(&cfg.Performance, pm)
	useCase := app.NewCheckUseCase(svc, cmd.ErrOrStderr())

	result, err := useCase.Execute(cmd.Context(), *req)
	pm.Close()
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: err.Error()}
	}

	formatter := service.NewOutputFormatter()
	if err := formatter.WriteCheckResult(result, req.OutputFormat, cmd.OutOrStdout()); err != nil {
		return &CheckExitError{Code: constants.ExitCodeError, Message: fmt.Sprintf("failed to write result: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: result.ExitCode}
	}
	return nil
}

// checkOutputFormat keeps a configured json or yaml format. Report-only
// formats (csv, html, dot) have no check rendering and print as text.
func checkOutputFormat(format domain.OutputFormat) domain.OutputFormat {
	switch format {
	case domain.OutputFormatJSON, domain.OutputFormatYAML:
		return format
	default:
		return domain.OutputFormatText
	}
}

// checkOverrides builds the CLI side of the merge. Thresholds whose flag was
// not given inherit the configured value.
func checkOverrides(cmd *cobra.Command, args []string) *domain.CheckRequest {
	override := &domain.CheckRequest{
		Paths:      args,
		Thresholds: domain.InheritAll(),
		Verbose:    checkVerbose,
	}

	flags := []struct {
		name     string
		priority int
		value    int
	}{
		{"max-priority1", domain.PriorityOne, checkMaxPriority1},
		{"max-priority2", domain.PriorityTwo, checkMaxPriority2},
		{"max-priority3", domain.PriorityThree, checkMaxPriority3},
	}
	for _, f := range flags {
		if cmd.Flags().Changed(f.name) {
			override.Thresholds.Set(f.priority, f.value)
		}
	}

	if checkJSON {
		override.OutputFormat = domain.OutputFormatJSON
	}
	return override
}
