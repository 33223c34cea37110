package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is used when printing entry timestamps
	DateTimeFormat = "Jan 2 15:04"

	// MillisPerDay is the length of a day as used by the daily average
	MillisPerDay = 86_400_000
)
