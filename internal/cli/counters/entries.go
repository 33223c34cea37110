package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/utils"
)

type IncCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
	By      int    `help:"Amount to add." default:"1"`
}

func (c *IncCmd) Run(ctx *cli.Context) error {
	return logDelta(ctx, c.Counter, c.By, 1)
}

type DecCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
	By      int    `help:"Amount to subtract." default:"1"`
}

func (c *DecCmd) Run(ctx *cli.Context) error {
	return logDelta(ctx, c.Counter, c.By, -1)
}

func logDelta(ctx *cli.Context, ref string, by, sign int) error {
	if by <= 0 {
		return fmt.Errorf("--by must be a positive number")
	}
	value := by * sign

	st, counter, err := ctx.Resolve(ref)
	if err != nil {
		return err
	}
	next, entry, err := ctx.Service.LogEntry(st, counter.ID, value)
	if err != nil {
		return err
	}

	total := aggregate.Total(counter, next.Entries)
	fmt.Printf("%s %s %s → %s\n", swatch(counter.Color), counter.Name, utils.FormatDelta(entry.Value), formatTotal(counter, total))
	if p, ok := aggregate.GoalProgress(total, counter.Goal); ok && p.Reached && total-entry.Value < p.Goal {
		fmt.Println("🎉 Goal reached!")
	}
	return nil
}

type ResetCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Clear all %d entries of %q?", len(st.EntriesFor(counter.ID)), counter.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if _, err := ctx.Service.ClearEntries(st, counter.ID); err != nil {
		return err
	}
	fmt.Printf("✓ %s reset to %s\n", counter.Name, formatTotal(counter, counter.InitialCount))
	return nil
}
