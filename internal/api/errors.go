package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShowNotFound       = errors.New("show not found")
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrLocked             = errors.New("another tvlog process is writing")
	ErrImportUnsupported  = errors.New("import requires the sqlite backend")
)

// NotFoundError reports an unknown show name with close matches.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrShowNotFound, e.Name)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + quoteJoin(e.Suggestions) + "?)"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrShowNotFound }

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, " or ")
}
