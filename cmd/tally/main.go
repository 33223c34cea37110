package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/cli/backups"
	"github.com/julianstephens/tally/internal/cli/counters"
	"github.com/julianstephens/tally/internal/cli/data"
	"github.com/julianstephens/tally/internal/cli/system"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string. Defaults to the stored PostgreSQL connection if one exists, else ~/.config/tally/tally.db. PostgreSQL credentials must NOT be embedded; use the keyring, TALLY_DB_CONNECTION or .pgpass." env:"TALLY_CONFIG" type:"string" default:""`
	Debug   bool   `help:"Log debug output to stderr as well as the log file." env:"TALLY_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize tally storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Validate system.ValidateCmd `cmd:"" help:"Check stored counters and entries for integrity problems."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Counter  struct {
		Add    counters.CounterAddCmd    `cmd:"" help:"Add a new counter."`
		Edit   counters.CounterEditCmd   `cmd:"" help:"Edit an existing counter."`
		Delete counters.CounterDeleteCmd `cmd:"" help:"Delete a counter and its entries."`
		List   counters.CounterListCmd   `cmd:"" help:"List counters." default:"1"`
		Show   counters.CounterShowCmd   `cmd:"" help:"Show one counter."`
	} `cmd:"" help:"Manage counters."`
	Inc     counters.IncCmd     `cmd:"" help:"Add to a counter."`
	Dec     counters.DecCmd     `cmd:"" help:"Subtract from a counter."`
	Reset   counters.ResetCmd   `cmd:"" help:"Clear every entry of a counter."`
	History counters.HistoryCmd `cmd:"" help:"Chart a counter's running total."`
	Stats   counters.StatsCmd   `cmd:"" help:"Show period totals, averages and goal progress."`
	Tags    counters.TagsCmd    `cmd:"" help:"List tags in use."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export    data.ExportCmd   `cmd:"" help:"Export counters and entries to YAML or JSON."`
	Import    data.ImportCmd   `cmd:"" help:"Import counters and entries from YAML or JSON."`
	ConfigCmd system.ConfigCmd `cmd:"" name:"config" help:"Manage the stored PostgreSQL connection."`
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Count anything: habits, reps, glasses of water"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := utils.ConfigDir(CLI.Config)
	if err != nil {
		errors.Fatalf("invalid --config %q: %v", CLI.Config, err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "version", constants.Version)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	err = ctx.Run(cli.NewContext(store))
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
