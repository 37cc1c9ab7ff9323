// Package constants provides shared constants for the roi-estimator application.
package constants

// Automation impact assumptions. These are fixed for the model and are only
// changed by rebuilding.
const (
	// AutomationEfficiencyGain is the fraction of manual processing time eliminated.
	AutomationEfficiencyGain = 0.70

	// ErrorRateReduction is the fraction of manual-error cost eliminated.
	ErrorRateReduction = 0.80

	// AuditPrepTimeReduction is the fraction of audit preparation cost eliminated.
	AuditPrepTimeReduction = 0.50

	// StorageOptimization is the fraction of storage cost eliminated.
	StorageOptimization = 0.30

	// IntegrationConsolidationSavings is the fraction of legacy integration cost eliminated.
	IntegrationConsolidationSavings = 0.40
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MinutesPerHour converts per-document minutes into hours
	MinutesPerHour = 60

	// ROIHorizonYears is the number of years covered by the ROI figure
	ROIHorizonYears = 3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxErrorRatePercent is the upper bound of the manual error rate input
	MaxErrorRatePercent = 100.0
)

// Display strings used when a result has no meaningful numeric value.
const (
	// PaybackNotApplicable is shown when there is no positive return to pay back the investment.
	PaybackNotApplicable = "N/A (No positive ROI)"

	// NegativeROI is shown when the three-year ROI is negative or undefined.
	NegativeROI = "Negative ROI"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
