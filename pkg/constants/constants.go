// Package constants provides shared constants for the advisor-forecast application.
package constants

// Projection constants
const (
	// MaxAssetHorizonYears caps the projection horizon of an instrument with a
	// declared term.
	MaxAssetHorizonYears = 20

	// OpenTermExtraYears is added to the client's life expectancy when an
	// instrument has no term.
	OpenTermExtraYears = 5

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Input bounds
const (
	// MinYear and MaxYear bound every calendar year read from a client record.
	MinYear = 1900
	MaxYear = 2200

	// MaxLifeExpectancy bounds the remaining years of life for a client.
	MaxLifeExpectancy = 150

	// MaxTermYears bounds the term of an asset, debt or business.
	MaxTermYears = 150

	// MaxRatePercent bounds an annual growth or interest rate.
	MaxRatePercent = 100

	// MaxAmount bounds input amounts and saturates projected values so that
	// every figure stays finite and fits in int64 minor units.
	MaxAmount = 1e15

	// MaxSeriesYears caps the number of years in a net worth timeline.
	MaxSeriesYears = 500
)

// Budget and insurance constants
const (
	// MinIncomePercentage is the share of income used as the budget floor.
	MinIncomePercentage = 5.0

	// MaxInsurableFloor is the smallest maximum insurable amount offered.
	MaxInsurableFloor = 100000.0

	// MaxInsurableNetWorthShare is the share of net worth that may be insured.
	MaxInsurableNetWorthShare = 0.25

	// BudgetBasisIncome labels a maximum budget derived from income.
	BudgetBasisIncome = "income"

	// BudgetBasisNetWorth labels a maximum budget derived from net worth.
	BudgetBasisNetWorth = "net worth"
)

// Display constants
const (
	// DefaultCurrency is the ISO code used for all amounts.
	DefaultCurrency = "CAD"

	// BusinessesBucket is the synthetic diversification bucket for businesses.
	BusinessesBucket = "Businesses"
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
	// DefaultConfigFile is the default client file name
	DefaultConfigFile = "client.yaml"

	// ExampleConfigFile is the example client file name
	ExampleConfigFile = "client.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for client files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
