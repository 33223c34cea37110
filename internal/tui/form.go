package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

// newCounterFormModel prefills the form from c, or with defaults when c is nil.
func newCounterFormModel(c *models.Counter) *CounterFormModel {
	if c == nil {
		return &CounterFormModel{
			Unit:  constants.DefaultUnit,
			Color: constants.DefaultColor,
			Icon:  constants.DefaultIcon,
		}
	}
	fm := &CounterFormModel{
		Name:    c.Name,
		Unit:    c.Unit,
		Color:   c.Color,
		Tags:    strings.Join(c.Tags, ", "),
		Initial: fmt.Sprint(c.InitialCount),
	}
	if c.Goal != nil {
		fm.Goal = fmt.Sprint(*c.Goal)
	}
	if c.Icon != nil {
		fm.Icon = c.Icon.Value()
	}
	return fm
}

func colorOptions(current string) []huh.Option[string] {
	colors := slices.Clone(constants.PresetColors)
	if current != "" && !slices.Contains(colors, current) {
		colors = append([]string{current}, colors...)
	}
	opts := make([]huh.Option[string], len(colors))
	for i, c := range colors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
		opts[i] = huh.NewOption(swatch+" "+c, c)
	}
	return opts
}

func iconOptions(current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	if current != "" && !slices.Contains(constants.CommonIcons, current) {
		opts = append(opts, huh.NewOption(current, current))
	}
	for _, icon := range constants.CommonIcons {
		opts = append(opts, huh.NewOption(strings.TrimPrefix(icon, "fa-solid fa-"), icon))
	}
	return opts
}

// NewCounterForm builds the add/edit form. existingTags feeds the tag
// suggestions.
func NewCounterForm(fm *CounterFormModel, existingTags []string) *huh.Form {
	tagHint := "Comma separated"
	if len(existingTags) > 0 {
		tagHint += ". In use: #" + strings.Join(existingTags, " #")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					if len(s) > constants.MaxNameLength {
						return fmt.Errorf("name must be at most %d characters", constants.MaxNameLength)
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder(constants.DefaultUnit).
				Value(&fm.Unit),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions(fm.Color)...).
				Value(&fm.Color),
			huh.NewInput().
				Title("Tags").
				Description(tagHint).
				SuggestionsFunc(func() []string {
					return tagSuggestions(existingTags, fm.Tags)
				}, &fm.Tags).
				Value(&fm.Tags),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Initial count").
				Value(&fm.Initial).
				Validate(func(s string) error {
					_, err := validation.ParseInitialCount(s)
					return err
				}),
			huh.NewInput().
				Title("Goal").
				Description("Leave blank for no goal").
				Value(&fm.Goal).
				Validate(func(s string) error {
					_, err := validation.ParseGoal(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions(fm.Icon)...).
				Value(&fm.Icon),
		),
	).WithTheme(huh.ThemeDracula())
}

// tagSuggestions completes the tag being typed after the last comma, skipping
// tags already entered.
func tagSuggestions(existing []string, text string) []string {
	prefix, partial := "", text
	if i := strings.LastIndex(text, ","); i >= 0 {
		prefix, partial = text[:i+1], text[i+1:]
	}
	trimmed := strings.TrimLeft(partial, " ")
	prefix += partial[:len(partial)-len(trimmed)]

	current := validation.ParseTags(prefix)
	var out []string
	for _, tag := range validation.SuggestTags(existing, current, trimmed) {
		out = append(out, prefix+tag)
	}
	return out
}

// Input converts the submitted form into a CounterInput. When editing, base
// carries the counter being edited so an unchanged image icon survives.
func (fm *CounterFormModel) Input(base *models.Counter) (validation.CounterInput, error) {
	var in validation.CounterInput
	if base != nil {
		in = validation.InputFrom(*base)
	}

	initial, err := validation.ParseInitialCount(fm.Initial)
	if err != nil {
		return in, err
	}
	goal, err := validation.ParseGoal(fm.Goal)
	if err != nil {
		return in, err
	}

	in.Name = fm.Name
	in.Unit = fm.Unit
	in.Color = fm.Color
	in.Tags = validation.ParseTags(fm.Tags)
	in.InitialCount = initial
	in.Goal = goal

	icon := strings.TrimSpace(fm.Icon)
	switch {
	case icon == "":
		in.IconKind, in.Icon = "", ""
	case base != nil && base.Icon != nil && base.Icon.Value() == icon:
		// keep the existing kind
	default:
		in.IconKind, in.Icon = models.IconKindSymbol, icon
	}
	return in, nil
}
