package poker

import "fmt"

// ParseError reports a malformed card token.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Token, e.Reason)
}

// InvalidHandError reports a card set that cannot be evaluated.
type InvalidHandError struct {
	Cards int
}

func (e *InvalidHandError) Error() string {
	return fmt.Sprintf("cannot evaluate %d cards: need between 5 and 7", e.Cards)
}
