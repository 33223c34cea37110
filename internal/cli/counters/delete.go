package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type CounterDeleteCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CounterDeleteCmd) Run(ctx *cli.Context) error {
	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}

	if !c.Yes {
		n := len(st.EntriesFor(counter.ID))
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its %d entries?", counter.Name, n))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.Service.DeleteCounter(st, counter.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Counter deleted: %s\n", counter.Name)
	return nil
}
