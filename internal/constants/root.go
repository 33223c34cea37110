package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current screen of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "tally"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tally/tally.db"
	Version            = "v0.3.0"

	// EnvConnection holds a PostgreSQL connection string when set
	EnvConnection = "TALLY_DB_CONNECTION"

	// Counter defaults
	DefaultUnit      = "Units"
	DefaultColor     = "#2bcdee"
	DefaultIcon      = "fa-solid fa-star"
	MaxNameLength    = 80
	MaxUnitLength    = 32
	MaxTagLength     = 32
	RecentEntryLimit = 15

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".db"

	// Postgres pool settings
	PostgresMaxOpenConns    = 10
	PostgresConnMaxLifetime = 5 * time.Minute
)

// Session States
const (
	StateList SessionState = iota
	StateDetail
	StateHistory
	StateNewCounter
	StateEditCounter
	StateConfirm
)

// PresetColors is the palette offered when creating a counter.
var PresetColors = []string{
	"#2bcdee", // cyan
	"#ff6b6b", // red
	"#ffd93d", // yellow
	"#6c5ce7", // purple
	"#a8e6cf", // mint
	"#ff8fab", // pink
	"#fb923c", // orange
}

// CommonIcons are the symbolic icon references offered in the counter form.
var CommonIcons = []string{
	"fa-solid fa-star",
	"fa-solid fa-heart",
	"fa-solid fa-droplet",
	"fa-solid fa-coffee",
	"fa-solid fa-dumbbell",
	"fa-solid fa-book",
	"fa-solid fa-bicycle",
	"fa-solid fa-running",
	"fa-solid fa-medkit",
	"fa-solid fa-clock",
	"fa-solid fa-apple-whole",
	"fa-solid fa-brain",
	"fa-solid fa-pills",
	"fa-solid fa-seedling",
	"fa-solid fa-bolt",
}
