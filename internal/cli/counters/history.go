package counters

import (
	"fmt"
	"slices"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/tui/components/chart"
	"github.com/julianstephens/tally/internal/utils"
)

const chartRows = 8

type HistoryCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter."`
	Range   string `help:"Chart range: day, week or month." default:"week" enum:"day,week,month"`
	Log     int    `help:"Number of recent entries to list." default:"15"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	r, err := aggregate.ParseRange(c.Range)
	if err != nil {
		return err
	}
	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}

	now := ctx.Service.Now()
	entries := st.EntriesFor(counter.ID)
	points := slices.Collect(aggregate.Series(counter, entries, r, now))

	fmt.Printf("%s %s - last %s\n\n", swatch(counter.Color), counter.Name, r)
	fmt.Println(chart.Bars(points, chartRows, counter.Color))
	fmt.Println()
	fmt.Printf("Daily average: %s %s\n", aggregate.FormatAverage(aggregate.DailyAverage(counter, entries, now)), counter.Unit)
	fmt.Printf("Peak day:      %s %s\n", utils.FormatCount(aggregate.PeakDay(entries, now.Location())), counter.Unit)

	if c.Log <= 0 {
		return nil
	}
	recent := aggregate.Recent(entries, c.Log)
	fmt.Println()
	if len(recent) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}
	fmt.Println("Recent activity:")
	for _, e := range recent {
		fmt.Printf("  %-4s %s  (%s)\n", utils.FormatDelta(e.Value), e.Timestamp.In(now.Location()).Format(constants.DateTimeFormat), utils.RelativeTime(e.Timestamp, now))
	}
	return nil
}
