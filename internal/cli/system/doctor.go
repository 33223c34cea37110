package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/validation"
)

// Overridden in tests.
var (
	listProcesses = ps.Processes
	currentPID    = os.Getpid
)

type DoctorCmd struct{}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkFail
	checkWarn
	checkSkip
)

type doctorReport struct {
	hasError bool
}

func (r *doctorReport) print(name string, status checkStatus, detail error) {
	switch status {
	case checkOK:
		fmt.Printf("✓ %s: OK\n", name)
	case checkFail:
		r.hasError = true
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", detail)
	case checkWarn:
		fmt.Printf("⚠ %s: WARNING\n", name)
		fmt.Printf("   %v\n", detail)
	case checkSkip:
		fmt.Printf("⊘ %s: SKIPPED (%v)\n", name, detail)
	}
}

// check runs fn and reports a failure as status.
func (r *doctorReport) check(name string, failStatus checkStatus, fn func() error) {
	if err := fn(); err != nil {
		r.print(name, failStatus, err)
		return
	}
	r.print(name, checkOK, nil)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	r := &doctorReport{}
	unreachable := fmt.Errorf("database not reachable")

	dbErr := checkDBReachable(ctx)
	if dbErr != nil {
		r.print("Database reachable", checkFail, dbErr)
	} else {
		r.print("Database reachable", checkOK, nil)
	}

	migrator, hasSchema := ctx.Store.(storage.Migrator)
	switch {
	case dbErr != nil:
		r.print("Schema version", checkSkip, unreachable)
		r.print("Migrations complete", checkSkip, unreachable)
	case !hasSchema:
		r.print("Schema version", checkSkip, fmt.Errorf("backend has no schema"))
		r.print("Migrations complete", checkSkip, fmt.Errorf("backend has no schema"))
	default:
		r.check("Schema version", checkFail, func() error { return checkSchemaVersion(migrator) })
		r.check("Migrations complete", checkFail, func() error { return checkMigrationsComplete(migrator) })
	}

	if _, err := ctx.BackupManager(); err != nil {
		r.print("Backups present", checkSkip, err)
	} else {
		r.check("Backups present", checkWarn, func() error { return checkBackupsPresent(ctx) })
	}

	if dbErr != nil {
		r.print("Data integrity", checkSkip, unreachable)
	} else {
		r.check("Data integrity", checkFail, func() error { return checkIntegrity(ctx) })
	}

	r.check("Clock/timezone", checkFail, checkClockTimezone)
	r.check("Other tally processes", checkWarn, checkOtherProcesses)

	fmt.Println()
	if r.hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.CountCounters(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(m storage.Migrator) error {
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(m storage.Migrator) error {
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'tally migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tally backup create'")
	}
	return nil
}

func checkIntegrity(ctx *cli.Context) error {
	counters, entries, err := ctx.Store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	result := validation.CheckIntegrity(counters, entries)
	if result.HasIssues() {
		return fmt.Errorf("%d issue(s) found - run 'tally validate' for details", len(result.Issues))
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset%900 != 0 {
		return fmt.Errorf("unusual timezone offset %ds", offset)
	}
	return nil
}

// checkOtherProcesses warns when another tally is running, since two
// sessions writing to one database see each other's changes only on reload.
func checkOtherProcesses() error {
	procs, err := listProcesses()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	self := currentPID()
	var others []string
	for _, p := range procs {
		if p == nil || p.Pid() == self {
			continue
		}
		if strings.EqualFold(p.Executable(), constants.AppName) {
			others = append(others, fmt.Sprintf("%d", p.Pid()))
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("other tally processes are running (pid %s)", strings.Join(others, ", "))
	}
	return nil
}
