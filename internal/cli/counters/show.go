package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
)

type CounterShowCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
}

func (c *CounterShowCmd) Run(ctx *cli.Context) error {
	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}
	total := aggregate.Total(counter, st.Entries)

	fmt.Printf("%s %s\n\n", swatch(counter.Color), counter.Name)
	fmt.Printf("  ID:       %s\n", counter.ID)
	fmt.Printf("  Total:    %s\n", formatTotal(counter, total))
	if goal := formatGoal(counter, total); goal != "" {
		fmt.Printf("  Goal:     %s\n", goal)
	} else {
		fmt.Printf("  Goal:     -\n")
	}
	fmt.Printf("  Start:    %d\n", counter.InitialCount)
	fmt.Printf("  Color:    %s\n", counter.Color)
	fmt.Printf("  Icon:     %s\n", formatIcon(counter.Icon))
	fmt.Printf("  Tags:     %s\n", formatTags(counter.Tags))
	fmt.Printf("  Entries:  %d\n", len(st.EntriesFor(counter.ID)))
	fmt.Printf("  Created:  %s\n", counter.CreatedAt.Format(constants.DateTimeFormat))
	return nil
}
