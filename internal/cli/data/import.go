package data

import (
	"fmt"
	"os"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/transfer"
)

// ImportCmd adds the counters and entries of an export file whose ids are not
// already present. Existing data is never modified.
type ImportCmd struct {
	File   string `arg:"" help:"Export file to read." type:"existingfile"`
	Format string `help:"Input format: yaml or json. Defaults to the file extension."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format := transfer.FormatFromPath(c.File)
	if c.Format != "" {
		f, err := transfer.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	doc, err := transfer.Decode(f, format)
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	res, err := transfer.Import(ctx.Store, doc)
	if err != nil {
		return fmt.Errorf("import failed after %s: %w", res, err)
	}
	fmt.Printf("✓ %s\n", res)
	return nil
}
