package system

import (
	"errors"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tally/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (p *mockProcess) Pid() int           { return p.pid }
func (p *mockProcess) PPid() int          { return 1 }
func (p *mockProcess) Executable() string { return p.executable }

func stubProcesses(t *testing.T, procs []ps.Process, err error) {
	t.Helper()
	origList, origPID := listProcesses, currentPID
	listProcesses = func() ([]ps.Process, error) { return procs, err }
	currentPID = func() int { return 100 }
	t.Cleanup(func() {
		listProcesses, currentPID = origList, origPID
	})
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDB(t)
	stubProcesses(t, nil, nil)

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDB(t)
	stubProcesses(t, nil, nil)

	db := store.GetDB()
	if _, err := db.Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("failed to corrupt schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail on a future schema version")
	}
}

func TestDoctorCmd_IncompleteMigrations(t *testing.T) {
	ctx, store := setupTestDB(t)
	stubProcesses(t, nil, nil)

	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatal(err)
	}
	if err := checkMigrationsComplete(store); err == nil {
		t.Error("expected incomplete migrations to be reported")
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with pending migrations")
	}
}

func TestDoctorCmd_IntegrityIssue(t *testing.T) {
	ctx, store := setupTestDB(t)
	stubProcesses(t, nil, nil)

	if err := store.InsertCounter(models.Counter{ID: "c1", Name: "  ", Unit: "Units", Color: "#2bcdee", Tags: []string{}}); err != nil {
		t.Fatal(err)
	}
	if err := checkIntegrity(ctx); err == nil {
		t.Error("expected the blank name to be reported")
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail on integrity issues")
	}
	if err := (&ValidateCmd{}).Run(ctx); err == nil {
		t.Error("validate command should fail on integrity issues")
	}
}

func TestDoctorCmd_UninitializedDB(t *testing.T) {
	ctx, _ := newUninitialized(t, "missing.db")
	stubProcesses(t, nil, nil)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail when the database does not exist")
	}
}

func TestCheckOtherProcesses(t *testing.T) {
	tests := []struct {
		name    string
		procs   []ps.Process
		listErr error
		wantErr bool
	}{
		{"none", []ps.Process{&mockProcess{200, "bash"}}, nil, false},
		{"only self", []ps.Process{&mockProcess{100, "tally"}}, nil, false},
		{"another tally", []ps.Process{&mockProcess{100, "tally"}, &mockProcess{321, "tally"}}, nil, true},
		{"list failure", nil, errors.New("permission denied"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcesses(t, tt.procs, tt.listErr)
			if err := checkOtherProcesses(); (err != nil) != tt.wantErr {
				t.Errorf("checkOtherProcesses() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoctorCmd_OtherProcessIsWarningOnly(t *testing.T) {
	ctx, _ := setupTestDB(t)
	stubProcesses(t, []ps.Process{&mockProcess{321, "tally"}}, nil)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("another running tally should only warn: %v", err)
	}
}
