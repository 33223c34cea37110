package system

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	fmt.Printf("Validating %d counters and %d entries...\n", len(st.Counters), len(st.Entries))
	result := validation.CheckIntegrity(st.Counters, st.Entries)

	fmt.Println()
	fmt.Println(result.FormatReport())

	if result.HasIssues() {
		return fmt.Errorf("%d integrity issue(s) found", len(result.Issues))
	}
	return nil
}
