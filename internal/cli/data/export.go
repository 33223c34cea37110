package data

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/transfer"
)

type ExportCmd struct {
	Format string `help:"Output format: yaml or json. Defaults to the output file extension, else yaml."`
	Output string `short:"o" help:"File to write; stdout when omitted." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format := transfer.FormatFromPath(c.Output)
	if c.Format != "" {
		f, err := transfer.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	}

	st, err := ctx.State()
	if err != nil {
		return err
	}
	doc := transfer.NewDocument(st.Counters, st.Entries, ctx.Service.Now())

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := transfer.Encode(w, doc, format); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		fmt.Printf("✓ Exported %d counters and %d entries to %s\n", len(doc.Counters), len(doc.Entries), c.Output)
	}
	return nil
}
