package counters

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type TagsCmd struct{}

func (c *TagsCmd) Run(ctx *cli.Context) error {
	st, err := ctx.State()
	if err != nil {
		return err
	}
	tags, err := ctx.Store.ListDistinctTags()
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	if len(tags) == 0 {
		fmt.Println("No tags in use.")
		return nil
	}

	fmt.Println("Tags:")
	for _, tag := range tags {
		fmt.Printf("  #%-20s %d counter(s)\n", tag, len(st.Filter(tag, "")))
	}
	return nil
}
