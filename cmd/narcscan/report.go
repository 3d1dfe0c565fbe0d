package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/narcscan/app"
	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/config"
	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/ludo-technologies/narcscan/service"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [path...]",
		Short: "Render CodeNarc XML reports",
		Long: `Parse CodeNarc XML reports and print a summary of the violations,
optionally with per-package and per-file tables.

Examples:
  # Summary of a Gradle report
  narcscan report build/reports/codenarc/main.xml

  # Package and file tables
  narcscan report --details build/reports

  # HTML report (written to .narcscan/reports unless --output is given)
  narcscan report --html build/reports

  # Package tree for Graphviz
  narcscan report -f dot build/reports | dot -Tsvg > tree.svg

  # CSV rows for a spreadsheet
  narcscan report -f csv -o violations.csv build/reports`,
		RunE:          runReport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("format", "f", "",
		"Output format: text, json, yaml, csv, html, dot (default from config)")
	cmd.Flags().Bool("json", false, "Shorthand for --format json")
	cmd.Flags().Bool("html", false, "Shorthand for --format html")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().Bool("details", false,
		"Include package and file violation tables")
	cmd.Flags().StringP("config", "c", "", "Path to config file")
	cmd.Flags().Bool("no-recursive", false,
		"Do not search subdirectories for reports")
	cmd.Flags().Int("max-depth", 0,
		"dot: package levels drawn below each source root (0 = unlimited)")
	cmd.Flags().String("rankdir", "LR",
		"dot: layout direction (TB, LR, BT, RL)")
	cmd.Flags().Bool("packages-only", false,
		"dot: omit file nodes")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfigWithTarget(configPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format, err := reportFormat(cmd, cfg)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" && format == domain.OutputFormatHTML {
		dir := cfg.Output.Directory
		if dir == "" {
			dir = constants.DefaultReportDirectory
		}
		outputPath = filepath.Join(dir, constants.ToolName+"-report.html")
	}

	details, _ := cmd.Flags().GetBool("details")
	noRecursive, _ := cmd.Flags().GetBool("no-recursive")

	req := domain.ReportRequest{
		Paths:           args,
		OutputFormat:    format,
		OutputPath:      outputPath,
		ShowDetails:     details || cfg.Output.ShowDetails,
		ConfigPath:      configPath,
		Recursive:       cfg.Discovery.Recursive && !noRecursive,
		ReportPatterns:  cfg.Discovery.ReportPatterns,
		ExcludePatterns: cfg.Discovery.ExcludePatterns,
	}
	if outputPath == "" {
		req.OutputWriter = cmd.OutOrStdout()
	}

	pm := service.NewProgressManager(outputPath != "" || format == domain.OutputFormatText)
	defer pm.Close()

	svc := service.NewReportServiceFromConfig(&cfg.Performance, pm)
	formatter := service.NewOutputFormatter().
		WithDetails(req.ShowDetails).
		WithDOTConfig(dotConfig(cmd))

	if _, err := app.NewReportUseCase(svc, formatter).Execute(cmd.Context(), req); err != nil {
		return err
	}
	pm.Close()

	if outputPath != "" {
		displayPath := outputPath
		if absPath, err := filepath.Abs(outputPath); err == nil {
			displayPath = absPath
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s report saved to: %s\n", strings.ToUpper(string(format)), displayPath)
	}
	return nil
}

// reportFormat resolves the output format from the flags, falling back to
// the configured format
func reportFormat(cmd *cobra.Command, cfg *config.Config) (domain.OutputFormat, error) {
	format, _ := cmd.Flags().GetString("format")
	asJSON, _ := cmd.Flags().GetBool("json")
	asHTML, _ := cmd.Flags().GetBool("html")

	if asJSON && asHTML {
		return "", fmt.Errorf("--json and --html cannot be combined")
	}
	switch {
	case asJSON:
		format = constants.OutputFormatJSON
	case asHTML:
		format = constants.OutputFormatHTML
	case format == "":
		format = cfg.Output.Format
	}

	switch format {
	case constants.OutputFormatText, constants.OutputFormatJSON, constants.OutputFormatYAML,
		constants.OutputFormatCSV, constants.OutputFormatHTML, constants.OutputFormatDOT:
		return domain.OutputFormat(format), nil
	case "":
		return domain.OutputFormatText, nil
	default:
		return "", domain.NewUnsupportedFormatError(format)
	}
}

func dotConfig(cmd *cobra.Command) *service.DOTFormatterConfig {
	cfg := service.DefaultDOTFormatterConfig()
	cfg.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
	cfg.RankDir, _ = cmd.Flags().GetString("rankdir")
	packagesOnly, _ := cmd.Flags().GetBool("packages-only")
	cfg.IncludeFiles = !packagesOnly
	return cfg
}
