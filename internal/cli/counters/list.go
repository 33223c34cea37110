package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
)

type CounterListCmd struct {
	Tag    string `help:"Only show counters with this tag."`
	Search string `help:"Only show counters whose name contains this text."`
}

func (c *CounterListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}

	counters := st.Filter(c.Tag, c.Search)
	if len(counters) == 0 {
		if len(st.Counters) == 0 {
			fmt.Println("No counters yet. Add one with 'tally counter add <name>'.")
		} else {
			fmt.Println("No counters match.")
		}
		return nil
	}

	fmt.Println("Counters:")
	for _, counter := range counters {
		total := aggregate.Total(counter, st.Entries)
		line := fmt.Sprintf("  %s %s - %s", swatch(counter.Color), counter.Name, formatTotal(counter, total))
		if goal := formatGoal(counter, total); goal != "" {
			line += fmt.Sprintf(" [goal %s]", goal)
		}
		fmt.Println(line)
		if len(counter.Tags) > 0 {
			fmt.Printf("      %s\n", formatTags(counter.Tags))
		}
	}
	return nil
}
