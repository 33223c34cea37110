package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

// CounterEditCmd changes only the fields whose flags are given.
type CounterEditCmd struct {
	Counter   string   `arg:"" help:"Name or ID of the counter."`
	Name      string   `help:"New name."`
	Unit      string   `help:"New unit label."`
	Color     string   `help:"New hex color."`
	AddTag    []string `help:"Tags to add." sep:","`
	RemoveTag []string `help:"Tags to remove." sep:","`
	Initial   string   `help:"New starting value."`
	Goal      string   `help:"New target total." xor:"goal"`
	ClearGoal bool     `help:"Remove the goal." xor:"goal"`
	Icon      string   `help:"New icon reference." xor:"icon"`
	Image     string   `help:"New image URL for the icon." xor:"icon"`
	NoIcon    bool     `help:"Remove the icon." xor:"icon"`
}

func (c *CounterEditCmd) Run(ctx *cli.Context) error {
	st, counter, err := ctx.Resolve(c.Counter)
	if err != nil {
		return err
	}

	in, err := c.apply(validation.InputFrom(counter))
	if err != nil {
		return err
	}
	if _, err := ctx.Service.UpdateCounter(st, counter.ID, in); err != nil {
		return err
	}

	fmt.Printf("✓ Counter updated: %s\n", in.Name)
	return nil
}

func (c *CounterEditCmd) apply(in validation.CounterInput) (validation.CounterInput, error) {
	if c.Name != "" {
		in.Name = c.Name
	}
	if c.Unit != "" {
		in.Unit = c.Unit
	}
	if c.Color != "" {
		in.Color = c.Color
	}
	for _, tag := range c.AddTag {
		in.Tags = validation.AddTag(in.Tags, tag)
	}
	for _, tag := range c.RemoveTag {
		in.Tags = validation.RemoveTag(in.Tags, validation.SanitizeText(tag))
	}
	if c.Initial != "" {
		initial, err := validation.ParseInitialCount(c.Initial)
		if err != nil {
			return in, err
		}
		in.InitialCount = initial
	}
	if c.Goal != "" {
		goal, err := validation.ParseGoal(c.Goal)
		if err != nil {
			return in, err
		}
		in.Goal = goal
	}
	if c.ClearGoal {
		in.Goal = nil
	}
	switch {
	case c.NoIcon:
		in.IconKind, in.Icon = "", ""
	case c.Image != "":
		in.IconKind, in.Icon = models.IconKindImage, c.Image
	case c.Icon != "":
		in.IconKind, in.Icon = models.IconKindSymbol, c.Icon
	}
	return in, nil
}
