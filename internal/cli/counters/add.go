package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

type CounterAddCmd struct {
	Name    string   `arg:"" help:"Counter name."`
	Unit    string   `help:"Unit label (default: Units)."`
	Color   string   `help:"Hex color such as #2bcdee."`
	Tags    []string `help:"Comma-separated tags." sep:","`
	Initial string   `help:"Starting value (default 0)."`
	Goal    string   `help:"Target total; leave empty for no goal."`
	Icon    string   `help:"Icon reference such as 'fa-solid fa-droplet'." xor:"icon"`
	Image   string   `help:"Image URL to use as the icon." xor:"icon"`
}

func (c *CounterAddCmd) Run(ctx *cli.Context) error {
	in, err := c.input()
	if err != nil {
		return err
	}

	st, err := ctx.State()
	if err != nil {
		return err
	}
	_, counter, err := ctx.Service.AddCounter(st, in)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Counter added: %s %s (%s)\n", swatch(counter.Color), counter.Name, counter.ID)
	return nil
}

func (c *CounterAddCmd) input() (validation.CounterInput, error) {
	initial, err := validation.ParseInitialCount(c.Initial)
	if err != nil {
		return validation.CounterInput{}, err
	}
	goal, err := validation.ParseGoal(c.Goal)
	if err != nil {
		return validation.CounterInput{}, err
	}

	in := validation.CounterInput{
		Name:         c.Name,
		Unit:         c.Unit,
		Color:        c.Color,
		InitialCount: initial,
		Goal:         goal,
		Tags:         []string{},
	}
	for _, tag := range c.Tags {
		in.Tags = validation.AddTag(in.Tags, tag)
	}
	switch {
	case c.Image != "":
		in.IconKind, in.Icon = models.IconKindImage, c.Image
	case c.Icon != "":
		in.IconKind, in.Icon = models.IconKindSymbol, c.Icon
	}
	return in, nil
}
