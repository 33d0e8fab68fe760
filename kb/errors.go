package kb

import (
	"errors"
	"fmt"
)

// ErrClauseSyntax is matched by every *ClauseSyntaxError.
var ErrClauseSyntax = errors.New("clause syntax")

// ClauseSyntaxError reports text that ParseLiteral or ParseClause rejected.
type ClauseSyntaxError struct {
	Input  string
	Reason string
}

func (e *ClauseSyntaxError) Error() string {
	return fmt.Sprintf("clause syntax: %q: %s", e.Input, e.Reason)
}

func (e *ClauseSyntaxError) Is(target error) bool { return target == ErrClauseSyntax }

func syntaxError(input, format string, args ...any) *ClauseSyntaxError {
	return &ClauseSyntaxError{Input: input, Reason: fmt.Sprintf(format, args...)}
}
