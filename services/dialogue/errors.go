package dialogue

import (
	"fmt"
	"strings"
)

// IncompleteQueryError signals a user-recoverable query with missing or
// malformed fields. The controller turns it into a field checklist reply.
type IncompleteQueryError struct {
	Missing []string
	Reason  string
}

func (e *IncompleteQueryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("incompleteQuery: %s", e.Reason)
	}
	return fmt.Sprintf("incompleteQuery: missing %s", strings.Join(e.Missing, ", "))
}

func NewIncompleteQueryError(missing ...string) error {
	return &IncompleteQueryError{Missing: missing}
}
