package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/storage/postgres"
	"github.com/julianstephens/tally/internal/transfer"
	"github.com/julianstephens/tally/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy counters and entries from."`
	NoSeed bool   `help:"Do not add the sample counters to an empty database."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	_, isPostgres := ctx.Store.(*postgres.Store)

	if c.Force {
		if isPostgres {
			return fmt.Errorf("--force is only supported for file databases")
		}
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDB, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDB
			}
			src, err := utils.ExpandPath(c.Source)
			if err == nil {
				if absSource, err := filepath.Abs(src); err == nil && absSource == dbPath {
					return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
				}
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release the file before deleting it
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tally storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		res, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("  %s\n", res)
		fmt.Println("Migration completed successfully!")
		return nil
	}

	if c.NoSeed {
		return nil
	}
	st, err := ctx.Service.Load()
	if err != nil {
		return err
	}
	if _, seeded, err := ctx.Service.Seed(st); err != nil {
		return fmt.Errorf("failed to add sample counters: %w", err)
	} else if seeded {
		fmt.Println("Added sample counters. Run 'tally counter list' to see them.")
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, source string) (transfer.Result, error) {
	if utils.IsPostgres(source) {
		// Source strings are typed on the command line, so the password rule applies
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return transfer.Result{}, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return transfer.Result{}, err
		}
	}

	src, err := cli.OpenStore(source)
	if err != nil {
		return transfer.Result{}, err
	}
	if err := src.Load(); err != nil {
		return transfer.Result{}, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	return transfer.Copy(src, ctx.Store, ctx.Service.Now())
}
