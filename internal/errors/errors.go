// Package errors turns command failures into the message printed before
// mindful exits, adding a hint for failures the user can act on.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/mindful/internal/journal"
	"github.com/julianstephens/mindful/internal/lockfile"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/relay"
)

// Hint suggests a next step for err, or returns "" when there is none.
func Hint(err error) string {
	var (
		persistErr *journal.PersistenceError
		importErr  *journal.ImportFormatError
		relayErr   *relay.RelayError
	)
	switch {
	case stderrors.As(err, &persistErr):
		return "your journal was not changed; run 'mindful doctor' to check the storage location"
	case stderrors.As(err, &importErr):
		return "import expects a JSON array of entries as written by 'mindful export'"
	case stderrors.Is(err, journal.ErrNotFound):
		return "run 'mindful list' to see entry ids"
	case stderrors.Is(err, lockfile.ErrLocked):
		return "wait for the running summary to finish and try again"
	case stderrors.As(err, &relayErr):
		switch {
		case relayErr.StatusCode == 0:
			return "is the relay running? start it with 'mindful serve' or point --relay-url at it"
		case relayErr.StatusCode >= http.StatusInternalServerError:
			return "the relay could not reach the model; check its logs and OPENAI_API_KEY"
		}
	}
	return ""
}

// Format renders err as "Error: ..." followed by a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Fatal logs err, prints it and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
