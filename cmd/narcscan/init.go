package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/narcscan/internal/config"
	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const defaultInitConfigPath = "narcscan.yaml"

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a narcscan configuration file",
		Long: `Generate a documented narcscan configuration file.

By default, creates narcscan.yaml in the current directory with discovery
settings for a generic layout and report-only thresholds. Use --interactive
for a guided setup wizard.

Examples:
  # Create narcscan.yaml in current directory
  narcscan init

  # Gradle layout with standard thresholds
  narcscan init --build-tool gradle --strictness standard

  # Overwrite existing file
  narcscan init --force

  # Generate smaller config with essential options only
  narcscan init --minimal

  # Interactive setup wizard
  narcscan init -i

  # Show the built-in defaults
  narcscan init --print-defaults`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", defaultInitConfigPath,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")
	cmd.Flags().String("build-tool", string(config.BuildToolGeneric),
		"Report layout preset: generic, maven, gradle")
	cmd.Flags().String("strictness", string(config.StrictnessReportOnly),
		"Threshold preset: report-only, relaxed, standard, strict")
	cmd.Flags().String("format", constants.OutputFormatText,
		"Default output format written to the config")
	cmd.Flags().Bool("print-defaults", false,
		"Print the built-in defaults as JSON and exit")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if printDefaults, _ := cmd.Flags().GetBool("print-defaults"); printDefaults {
		_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigJSON)
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	buildToolName, _ := cmd.Flags().GetString("build-tool")
	strictnessName, _ := cmd.Flags().GetString("strictness")
	format, _ := cmd.Flags().GetString("format")

	buildTool := config.BuildTool(buildToolName)
	if _, ok := config.GetBuildToolPresets()[buildTool]; !ok {
		return fmt.Errorf("unknown build tool %q", buildToolName)
	}
	strictness := config.Strictness(strictnessName)
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("unknown strictness %q", strictnessName)
	}

	if interactive {
		var err error
		buildTool, strictness, format, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(buildTool, strictness, format)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nRun 'narcscan check <report>' to enforce the thresholds.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.BuildTool, config.Strictness, string, string, error) {
	fmt.Println()
	fmt.Println("narcscan Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	buildTools := []struct {
		Label string
		Value config.BuildTool
	}{
		{"Gradle (build/reports/codenarc)", config.BuildToolGradle},
		{"Maven (target/CodeNarcXmlReport.xml)", config.BuildToolMaven},
		{"Other / CodeNarc CLI", config.BuildToolGeneric},
	}

	buildToolPrompt := promptui.Select{
		Label: "Which build produces the CodeNarc reports?",
		Items: buildTools,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }}",
			Inactive: "   {{ .Label | white }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	buildToolIdx, _, err := buildToolPrompt.Run()
	if err != nil {
		return "", "", "", "", fmt.Errorf("build tool selection cancelled: %w", err)
	}

	fmt.Println()

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Report only", "Never fail, just print the counts", config.StrictnessReportOnly},
		{"Relaxed", "Fail on any priority 1 violation", config.StrictnessRelaxed},
		{"Standard (recommended)", "No priority 1, at most 10 priority 2", config.StrictnessStandard},
		{"Strict", "Fail on any violation", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the check be?",
		Items: strictnessLevels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Println()

	formatPrompt := promptui.Select{
		Label: "Default output format",
		Items: []string{
			constants.OutputFormatText,
			constants.OutputFormatHTML,
			constants.OutputFormatJSON,
			constants.OutputFormatYAML,
			constants.OutputFormatCSV,
		},
	}

	_, format, err := formatPrompt.Run()
	if err != nil {
		return "", "", "", "", fmt.Errorf("format selection cancelled: %w", err)
	}

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()

	return buildTools[buildToolIdx].Value, strictnessLevels[strictnessIdx].Value, format, outputPath, nil
}
