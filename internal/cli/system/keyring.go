package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/keyring"
	"github.com/julianstephens/tally/internal/storage/postgres"
	"github.com/julianstephens/tally/internal/utils"
)

type ConfigCmd struct {
	Set    ConfigSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Show   ConfigShowCmd   `cmd:"" help:"Show the active connection string and where it comes from."`
	Delete ConfigDeleteCmd `cmd:"" help:"Remove the connection string from the OS keyring."`
	Status ConfigStatusCmd `cmd:"" help:"Check whether the OS keyring is available."`
}

// ConfigSetCmd stores database connection credentials in the OS keyring
type ConfigSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *ConfigSetCmd) Run(ctx *cli.Context) error {
	if !utils.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		fmt.Println("   To keep passwords out of the connection string, use .pgpass instead.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  tally will use it whenever --config is not given")
	return nil
}

// ConfigShowCmd prints the connection string tally would use, password masked
type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *cli.Context) error {
	connStr, source, err := keyring.ResolveConnectionString()
	if err != nil {
		return fmt.Errorf("failed to retrieve connection string: %w", err)
	}
	if source == keyring.SourceNone {
		fmt.Println("No connection string configured.")
		fmt.Printf("Using: %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	fmt.Printf("Connection string (from %s):\n", source)
	fmt.Println(keyring.Redact(connStr))
	return nil
}

// ConfigDeleteCmd removes database connection credentials from the OS keyring
type ConfigDeleteCmd struct{}

func (cmd *ConfigDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// ConfigStatusCmd checks the availability of the OS keyring
type ConfigStatusCmd struct{}

func (cmd *ConfigStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}
