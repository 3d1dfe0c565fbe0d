package service

import (
	"github.com/ludo-technologies/narcscan/domain"
	"github.com/ludo-technologies/narcscan/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct {
	// targetPath anchors upward config discovery
	targetPath string
}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// NewConfigurationLoaderForTarget creates a loader that discovers config
// files starting from targetPath
func NewConfigurationLoaderForTarget(targetPath string) *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{targetPath: targetPath}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CheckRequest, error) {
	cfg, err := config.LoadConfigWithTarget(path, c.targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return ConvertToCheckRequest(cfg), nil
}

// LoadDefaultConfig loads the discovered configuration, falling back to
// built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CheckRequest {
	cfg, err := config.LoadConfigWithTarget("", c.targetPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return ConvertToCheckRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file values. Paths and
// output settings from override always win; thresholds win unless set to
// domain.InheritThreshold.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CheckRequest, override *domain.CheckRequest) *domain.CheckRequest {
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	for p := domain.PriorityOne; p <= domain.MaxPriority; p++ {
		if limit := override.Thresholds.For(p); limit != domain.InheritThreshold {
			merged.Thresholds.Set(p, limit)
		}
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.Verbose {
		merged.Verbose = true
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	if len(override.ReportPatterns) > 0 {
		merged.ReportPatterns = override.ReportPatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// ConvertToCheckRequest converts a Config to a CheckRequest
func ConvertToCheckRequest(cfg *config.Config) *domain.CheckRequest {
	return &domain.CheckRequest{
		// Paths are set by the caller, not from config
		Paths: []string{},

		Thresholds: domain.PriorityThresholds{
			MaxPriority1Violations: cfg.Thresholds.MaxPriority1Violations,
			MaxPriority2Violations: cfg.Thresholds.MaxPriority2Violations,
			MaxPriority3Violations: cfg.Thresholds.MaxPriority3Violations,
		},

		OutputFormat: domain.OutputFormat(cfg.Output.Format),

		Recursive:       cfg.Discovery.Recursive,
		ReportPatterns:  cfg.Discovery.ReportPatterns,
		ExcludePatterns: cfg.Discovery.ExcludePatterns,
	}
}
