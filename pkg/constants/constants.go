// Package constants provides shared constants for the calcsuite application.
package constants

// DateLayout is the ISO calendar date format accepted on input and used for
// output.
const DateLayout = "2006-01-02"

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerWeek is the number of days in a week
	DaysPerWeek = 7

	// MillisPerSecond is the number of milliseconds in a second
	MillisPerSecond int64 = 1000

	// MillisPerMinute is the number of milliseconds in a minute
	MillisPerMinute int64 = 60 * MillisPerSecond

	// MillisPerHour is the number of milliseconds in an hour
	MillisPerHour int64 = 60 * MillisPerMinute

	// MillisPerDay is the number of milliseconds in a day
	MillisPerDay int64 = 24 * MillisPerHour
)

// Pregnancy constants
const (
	// GestationDays is the length of a full-term pregnancy counted from the
	// first day of the last menstrual period.
	GestationDays = 280

	// ConceptionOffsetDays is the typical gap between LMP and conception.
	ConceptionOffsetDays = 14

	// FirstTrimesterEndWeek is the first gestational week of the second trimester.
	FirstTrimesterEndWeek = 13

	// SecondTrimesterEndWeek is the first gestational week of the third trimester.
	SecondTrimesterEndWeek = 27

	// FullTermWeek is the last gestational week of the third trimester.
	FullTermWeek = 40
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyDecimalPlaces is the number of decimal places for currency values
	CurrencyDecimalPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa/cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCurrencySymbol is used when the configuration does not set one
	DefaultCurrencySymbol = "₹"
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
	DefaultConfigFile = "calcsuite.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. CALC_LOGGING_LEVEL
	EnvPrefix = "CALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Input limit defaults
const (
	// DefaultMaxPrincipal caps loan principals and investment amounts
	DefaultMaxPrincipal = 1e12

	// DefaultMaxTermMonths caps loan terms (100 years)
	DefaultMaxTermMonths = 1200

	// DefaultMaxRatePercent caps annual interest and return rates
	DefaultMaxRatePercent = 200.0

	// DefaultMaxSpanYears caps date offsets and elapsed spans
	DefaultMaxSpanYears = 1000
)

// Cache defaults
const (
	// CacheBackendNone disables result caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in an in-process LRU
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps results in Redis
	CacheBackendRedis = "redis"

	// DefaultCacheSize is the default number of cached schedules
	DefaultCacheSize = 512
)
