package counters

import (
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

var periodLabels = map[aggregate.Period]string{
	aggregate.PeriodDay:   "Today",
	aggregate.PeriodWeek:  "This week",
	aggregate.PeriodMonth: "This month",
	aggregate.PeriodYear:  "This year",
}

// StatsCmd prints period totals for one counter, or a summary of all of them.
type StatsCmd struct {
	Counter string `arg:"" optional:"" help:"Name or ID of the counter; omit for every counter."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	now := ctx.Service.Now()
	if c.Counter == "" {
		st, err := ctx.State()
		if err != nil {
			return err
		}
		if len(st.Counters) == 0 {
			fmt.Println("No counters yet.")
			return nil
		}
		fmt.Printf("%-24s %10s %10s %10s %10s\n", "Counter", "Today", "Week", "Month", "Total")
		for _, counter := range st.Counters {
			totals := aggregate.PeriodTotals(counter, st.Entries, now)
			fmt.Printf("%-24s %10s %10s %10s %10s\n",
				truncate(counter.Name, 24),
				utils.FormatCount(totals[aggregate.PeriodDay]),
				utils.FormatCount(totals[aggregate.PeriodWeek]),
				utils.FormatCount(totals[aggregate.PeriodMonth]),
				utils.FormatCount(aggregate.Total(counter, st.Entries)))
		}
		return nil
	}

	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}
	printStats(counter, st.EntriesFor(counter.ID), now)
	return nil
}

func printStats(counter models.Counter, entries []models.Entry, now time.Time) {
	total := aggregate.Total(counter, entries)
	totals := aggregate.PeriodTotals(counter, entries, now)

	fmt.Printf("%s %s\n\n", swatch(counter.Color), counter.Name)
	for _, p := range aggregate.Periods {
		fmt.Printf("  %-14s %s\n", periodLabels[p]+":", utils.FormatDelta(totals[p]))
	}
	fmt.Printf("  %-14s %s\n", "All time:", formatTotal(counter, total))
	if goal := formatGoal(counter, total); goal != "" {
		fmt.Printf("  %-14s %s\n", "Goal:", goal)
	}
	fmt.Printf("  %-14s %s\n", "Daily average:", aggregate.FormatAverage(aggregate.DailyAverage(counter, entries, now)))
	fmt.Printf("  %-14s %s\n", "Peak day:", utils.FormatCount(aggregate.PeakDay(entries, now.Location())))
	fmt.Printf("  %-14s %d\n", "Entries:", len(entries))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
