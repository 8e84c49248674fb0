package equity

import (
	"fmt"

	"github.com/lox/holdem-equity/poker"
)

// CardConflictError reports cards that appear in more than one place of a
// request: two participants, a participant and the board, or the board and
// the dead cards.
type CardConflictError struct {
	Cards  poker.CardSet
	Reason string
}

func (e *CardConflictError) Error() string {
	if e.Cards.IsEmpty() {
		return "card conflict: " + e.Reason
	}
	return fmt.Sprintf("card conflict [%s]: %s", e.Cards, e.Reason)
}

// ConfigError reports a request or configuration value that cannot be used.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
