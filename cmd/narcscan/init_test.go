package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/narcscan/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "narcscan.yaml")

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	expectedSections := []string{
		"thresholds:",
		"max_priority1_violations: -1",
		"output:",
		"discovery:",
		"report_patterns:",
		"performance:",
	}
	for _, section := range expectedSections {
		if !strings.Contains(string(content), section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "narcscan.yaml")
	if err := os.WriteFile(configPath, []byte("existing: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error when file exists without --force")
	}

	cmd = initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init with --force failed: %v", err)
	}

	content, _ := os.ReadFile(configPath)
	if strings.Contains(string(content), "existing: true") {
		t.Error("File was not overwritten")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "narcscan.yaml")

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	content, _ := os.ReadFile(configPath)
	if !strings.Contains(string(content), "(minimal)") {
		t.Error("Expected the minimal template")
	}
}

func TestInitCommand_PresetsLoadBack(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "narcscan.yaml")

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "--build-tool", "gradle", "--strictness", "standard", "--format", "html"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Thresholds.MaxPriority1Violations != 0 || cfg.Thresholds.MaxPriority2Violations != 10 {
		t.Errorf("Unexpected thresholds %+v", cfg.Thresholds)
	}
	if cfg.Output.Format != "html" {
		t.Errorf("Expected html format, got %s", cfg.Output.Format)
	}
	if len(cfg.Discovery.ReportPatterns) == 0 || cfg.Discovery.ReportPatterns[0] != "main.xml" {
		t.Errorf("Expected gradle report patterns, got %v", cfg.Discovery.ReportPatterns)
	}
}

func TestInitCommand_UnknownPreset(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "narcscan.yaml")

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "--strictness", "paranoid"})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for an unknown strictness")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("No file should be written for an invalid preset")
	}
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing", "narcscan.yaml")

	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when the parent directory is missing")
	}
}

func TestInitCommand_PrintDefaults(t *testing.T) {
	var out bytes.Buffer
	cmd := initCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--print-defaults", "--config", filepath.Join(t.TempDir(), "unused.yaml")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --print-defaults failed: %v", err)
	}
	if out.String() != config.DefaultConfigJSON {
		t.Errorf("Expected the embedded defaults, got:\n%s", out.String())
	}
}
