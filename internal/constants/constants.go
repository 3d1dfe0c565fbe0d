package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "narcscan"

	// ConfigFileName is the default config file name
	ConfigFileName = ".narcscan.toml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "NARCSCAN"

	// DefaultReportDirectory is where HTML reports go when output.directory is empty
	DefaultReportDirectory = ".narcscan/reports"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
	OutputFormatHTML = "html"
	OutputFormatCSV  = "csv"
	OutputFormatDOT  = "dot"
)

// Exit codes of the check command
const (
	ExitCodeSuccess            = 0
	ExitCodeThresholdsExceeded = 1
	ExitCodeError              = 2
)
