package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show database and log paths."`
	DumpCounter *DebugDumpCounterCmd `cmd:"" help:"Dump a counter and its entries as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.Path(),
	}
	return printJSON(output)
}

type DebugDumpCounterCmd struct {
	Counter string `arg:"" help:"Name or ID of the counter to dump."`
}

type counterDump struct {
	Counter models.CounterRecord `json:"counter"`
	Total   int                  `json:"total"`
	Entries []models.EntryRecord `json:"entries"`
}

func (cmd *DebugDumpCounterCmd) Run(ctx *cli.Context) error {
	st, c, err := ctx.Resolve(cmd.Counter)
	if err != nil {
		return err
	}

	entries := st.EntriesFor(c.ID)
	dump := counterDump{
		Counter: c.Record(),
		Total:   aggregate.Total(c, entries),
		Entries: make([]models.EntryRecord, 0, len(entries)),
	}
	for _, e := range entries {
		dump.Entries = append(dump.Entries, e.Record())
	}
	return printJSON(dump)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
