package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/tally/internal/app"
	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Service *app.Service
	// Stdin is read by confirmation prompts; nil means os.Stdin.
	Stdin io.Reader
}

func NewContext(store storage.Provider, opts ...app.Option) *Context {
	return &Context{
		Store:   store,
		Service: app.NewService(store, opts...),
	}
}

// State loads every counter and entry from the store.
func (c *Context) State() (app.State, error) {
	if err := c.Store.Load(); err != nil {
		return app.State{}, err
	}
	return c.Service.Load()
}

// Resolve loads the state and looks up a counter by id or name.
func (c *Context) Resolve(ref string) (app.State, models.Counter, error) {
	st, err := c.State()
	if err != nil {
		return app.State{}, models.Counter{}, err
	}
	counter, err := st.Find(ref)
	if err != nil {
		return st, models.Counter{}, err
	}
	return st, counter, nil
}

// BackupManager returns a manager for file backed SQLite stores. Other
// backends have no file to snapshot.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup takes the first backup of the day and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	path, created, err := mgr.CreateDailyBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if created {
		logger.Info("Automatic backup created", "path", path)
	}
}

// Confirm asks a yes/no question on stdout and reads the answer from Stdin.
// Anything but y or yes declines.
func (c *Context) Confirm(question string) (bool, error) {
	in := c.Stdin
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", question)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
