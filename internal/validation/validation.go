package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

func init() {
	Validate = validator.New()
	if err := Validate.RegisterValidation("icon_kind", validateIconKind); err != nil {
		panic(fmt.Sprintf("failed to register icon_kind validator: %v", err))
	}
}

func validateIconKind(fl validator.FieldLevel) bool {
	switch models.IconKind(fl.Field().String()) {
	case models.IconKindSymbol, models.IconKindImage:
		return true
	default:
		return false
	}
}

// CounterInput is the user-editable part of a counter as submitted by a form
// or the command line.
type CounterInput struct {
	Name         string          `validate:"required,max=80"`
	Unit         string          `validate:"required,max=32"`
	Color        string          `validate:"required,hexcolor"`
	Tags         []string        `validate:"unique,dive,required,max=32"`
	InitialCount int             `validate:"gte=0"`
	Goal         *int            `validate:"omitempty,gt=0"`
	IconKind     models.IconKind `validate:"omitempty,icon_kind"`
	Icon         string
}

// Normalize trims text fields and fills the unit and color defaults.
func (in CounterInput) Normalize() CounterInput {
	in.Name = SanitizeText(in.Name)
	in.Unit = SanitizeText(in.Unit)
	if in.Unit == "" {
		in.Unit = constants.DefaultUnit
	}
	in.Color = strings.TrimSpace(in.Color)
	if in.Color == "" {
		in.Color = constants.DefaultColor
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon != "" && in.IconKind == "" {
		in.IconKind = models.IconKindSymbol
	}
	return in
}

// ValidateCounter normalizes in and checks it, returning the cleaned input.
func ValidateCounter(in CounterInput) (CounterInput, error) {
	in = in.Normalize()
	if err := Validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return in, describe(fieldErrs[0])
		}
		return in, err
	}
	return in, nil
}

func describe(fe validator.FieldError) error {
	field := strings.ToLower(fe.StructField())
	switch fe.Field() {
	case "InitialCount":
		field = "initial count"
	case "IconKind":
		field = "icon type"
	}

	switch fe.Tag() {
	case "required":
		if strings.HasPrefix(fe.Namespace(), "CounterInput.Tags[") {
			return errors.New("tags cannot be empty")
		}
		return fmt.Errorf("%s is required", field)
	case "max":
		if strings.HasPrefix(fe.Namespace(), "CounterInput.Tags[") {
			return fmt.Errorf("tags must be at most %s characters", fe.Param())
		}
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "hexcolor":
		return fmt.Errorf("color %q is not a hex color like #2bcdee", fe.Value())
	case "unique":
		return errors.New("tags must be unique")
	case "gte":
		return fmt.Errorf("%s cannot be negative", field)
	case "gt":
		return fmt.Errorf("%s must be a positive number", field)
	case "icon_kind":
		return fmt.Errorf("icon type must be %q or %q", models.IconKindSymbol, models.IconKindImage)
	default:
		return fmt.Errorf("%s is invalid (%s)", field, fe.Tag())
	}
}

// Apply copies validated input onto c, leaving ID and CreatedAt alone.
func (in CounterInput) Apply(c models.Counter) models.Counter {
	c.Name = in.Name
	c.Unit = in.Unit
	c.Color = in.Color
	c.Tags = append([]string{}, in.Tags...)
	c.InitialCount = in.InitialCount
	c.Goal = in.Goal
	c.Icon = models.NewIcon(in.IconKind, in.Icon)
	return c
}

// InputFrom returns the editable fields of c.
func InputFrom(c models.Counter) CounterInput {
	kind, icon := models.SplitIcon(c.Icon)
	var goal *int
	if c.Goal != nil {
		goal = models.IntPtr(*c.Goal)
	}
	return CounterInput{
		Name:         c.Name,
		Unit:         c.Unit,
		Color:        c.Color,
		Tags:         append([]string{}, c.Tags...),
		InitialCount: c.InitialCount,
		Goal:         goal,
		IconKind:     kind,
		Icon:         icon,
	}
}

// ParseGoal reads an optional goal. Blank input means no goal.
func ParseGoal(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("goal %q is not a whole number", s)
	}
	if v <= 0 {
		return nil, fmt.Errorf("goal must be a positive number")
	}
	return &v, nil
}

// ParseInitialCount reads the starting value of a counter. Blank input is 0.
func ParseInitialCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("initial count %q is not a whole number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("initial count cannot be negative")
	}
	return v, nil
}

// SanitizeText trims whitespace and drops control characters.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
