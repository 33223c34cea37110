package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/storage"
)

// Format renders err for the terminal with an "Error: " prefix.
// A store that was never created gets the init hint on its own.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, storage.ErrNotInitialized) {
		return "Error: " + storage.ErrNotInitialized.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
