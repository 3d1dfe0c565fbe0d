package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/narcscan/internal/constants"
	"github.com/spf13/viper"
)

// Default threshold settings. A negative maximum disables the check, which
// makes a plain run report-only.
const (
	DefaultMaxPriority1Violations = -1
	DefaultMaxPriority2Violations = -1
	DefaultMaxPriority3Violations = -1
)

// Default performance settings
const (
	// DefaultMaxGoroutines bounds concurrent report parsing
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds bounds a whole parsing run
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Thresholds holds the per-priority violation limits
	Thresholds ThresholdsConfig `json:"thresholds" mapstructure:"thresholds" yaml:"thresholds"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Discovery holds report file discovery configuration
	Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery" yaml:"discovery"`

	// Performance holds parallel parsing configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// ThresholdsConfig holds the maximum number of violations allowed per priority
type ThresholdsConfig struct {
	// MaxPriority1Violations fails the check when exceeded; -1 means unlimited
	MaxPriority1Violations int `json:"max_priority1_violations" mapstructure:"max_priority1_violations" yaml:"max_priority1_violations"`

	// MaxPriority2Violations fails the check when exceeded; -1 means unlimited
	MaxPriority2Violations int `json:"max_priority2_violations" mapstructure:"max_priority2_violations" yaml:"max_priority2_violations"`

	// MaxPriority3Violations fails the check when exceeded; -1 means unlimited
	MaxPriority3Violations int `json:"max_priority3_violations" mapstructure:"max_priority3_violations" yaml:"max_priority3_violations"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html, dot
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether per-file violation tables are printed
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// Directory specifies the output directory for HTML reports (empty = ".narcscan/reports")
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// DiscoveryConfig controls how report files are found under directories
type DiscoveryConfig struct {
	// ReportPatterns are glob patterns matched against file base names
	ReportPatterns []string `json:"report_patterns" mapstructure:"report_patterns" yaml:"report_patterns"`

	// ExcludePatterns use gitignore syntax relative to the searched directory
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether subdirectories are searched
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// PerformanceConfig controls parallel report parsing
type PerformanceConfig struct {
	// MaxGoroutines is the number of reports parsed at once
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds the whole run
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdsConfig{
			MaxPriority1Violations: DefaultMaxPriority1Violations,
			MaxPriority2Violations: DefaultMaxPriority2Violations,
			MaxPriority3Violations: DefaultMaxPriority3Violations,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		Discovery: DiscoveryConfig{
			ReportPatterns: []string{
				"CodeNarc*.xml",
				"codenarc*.xml",
			},
			ExcludePatterns: []string{
				".git/",
				"node_modules/",
				".gradle/",
			},
			Recursive: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// discoverConfigFile finds the appropriate config file path
func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// newViper creates an isolated viper instance with environment overrides
// such as NARCSCAN_THRESHOLDS_MAX_PRIORITY1_VIOLATIONS
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key so that AutomaticEnv can see it even when
// the config file leaves it out
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("thresholds.max_priority1_violations", cfg.Thresholds.MaxPriority1Violations)
	v.SetDefault("thresholds.max_priority2_violations", cfg.Thresholds.MaxPriority2Violations)
	v.SetDefault("thresholds.max_priority3_violations", cfg.Thresholds.MaxPriority3Violations)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.show_details", cfg.Output.ShowDetails)
	v.SetDefault("output.directory", cfg.Output.Directory)
	v.SetDefault("discovery.report_patterns", cfg.Discovery.ReportPatterns)
	v.SetDefault("discovery.exclude_patterns", cfg.Discovery.ExcludePatterns)
	v.SetDefault("discovery.recursive", cfg.Discovery.Recursive)
	v.SetDefault("performance.max_goroutines", cfg.Performance.MaxGoroutines)
	v.SetDefault("performance.timeout_seconds", cfg.Performance.TimeoutSeconds)
}

// loadConfigFromFile reads and parses a configuration file. An empty path
// yields the defaults with environment overrides applied.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := newViper()
	config := DefaultConfig()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configCandidates lists the recognised config file names in priority order
func configCandidates() []string {
	return []string{
		constants.ToolName + ".yaml",
		constants.ToolName + ".yml",
		constants.ConfigFileName,
		"." + constants.ToolName + ".yml",
		constants.ToolName + ".json",
		"." + constants.ToolName + ".json",
	}
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the report file or directory being checked.
func findDefaultConfig(targetPath string) string {
	candidates := configCandidates()

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Handle Windows volume roots (C:\) and UNC paths as well as "/"
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	for priority := 1; priority <= 3; priority++ {
		if value := c.Thresholds.Limit(priority); value < -1 {
			return fmt.Errorf("thresholds.max_priority%d_violations must be >= -1, got %d", priority, value)
		}
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
		"dot":  true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html, dot", c.Output.Format)
	}

	if len(c.Discovery.ReportPatterns) == 0 {
		return fmt.Errorf("discovery.report_patterns cannot be empty")
	}

	for _, pattern := range c.Discovery.ReportPatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid discovery.report_patterns entry '%s': %w", pattern, err)
		}
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// Limit returns the threshold of a single priority, -1 when unknown
func (t *ThresholdsConfig) Limit(priority int) int {
	switch priority {
	case 1:
		return t.MaxPriority1Violations
	case 2:
		return t.MaxPriority2Violations
	case 3:
		return t.MaxPriority3Violations
	default:
		return -1
	}
}

// IsEnforcing reports whether any priority has a limit
func (t *ThresholdsConfig) IsEnforcing() bool {
	return t.MaxPriority1Violations >= 0 ||
		t.MaxPriority2Violations >= 0 ||
		t.MaxPriority3Violations >= 0
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("thresholds", config.Thresholds)
	v.Set("output", config.Output)
	v.Set("discovery", config.Discovery)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
