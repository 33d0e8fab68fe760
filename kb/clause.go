package kb

import (
	"slices"
	"strings"
)

// EmptyClauseText is how the empty clause is written.
const EmptyClauseText = "□"

// Clause is a disjunction of literals. It is immutable: operations derive new
// clauses. The zero value is the empty clause, which is unsatisfiable.
type Clause struct {
	literals  []Literal
	key       string
	tautology bool
}

// NewClause builds a clause from literals, dropping duplicates. A clause holding
// a literal and its negation is a tautology.
func NewClause(literals ...Literal) Clause {
	sorted := slices.Clone(literals)
	slices.SortFunc(sorted, compareLiteral)
	sorted = slices.CompactFunc(sorted, func(a, b Literal) bool { return a == b })

	c := Clause{literals: sorted}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Prop == sorted[i-1].Prop {
			c.tautology = true
			break
		}
	}
	parts := make([]string, len(sorted))
	for i, l := range sorted {
		parts[i] = l.String()
	}
	c.key = strings.Join(parts, " | ")
	return c
}

// ParseClause reads literals separated by "|", "∨" or a spaced " v ", for
// example "!X@1,1 | Y@1,1". "□" and "[]" denote the empty clause.
func ParseClause(text string) (Clause, error) {
	trimmed := strings.TrimSpace(text)
	switch trimmed {
	case EmptyClauseText, "[]":
		return Clause{}, nil
	case "":
		return Clause{}, syntaxError(text, "no literals; write %s for the empty clause", EmptyClauseText)
	}
	trimmed = strings.ReplaceAll(trimmed, " v ", "|")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '|' || r == '∨' })
	literals := make([]Literal, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := ParseLiteral(part)
		if err != nil {
			return Clause{}, err
		}
		literals = append(literals, l)
	}
	if len(literals) == 0 {
		return Clause{}, syntaxError(text, "no literals")
	}
	return NewClause(literals...), nil
}

// MustParseClause is like ParseClause but panics on error.
func MustParseClause(text string) Clause {
	c, err := ParseClause(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Literals returns the literals in canonical order.
func (c Clause) Literals() []Literal { return slices.Clone(c.literals) }

func (c Clause) Len() int { return len(c.literals) }

// IsEmpty reports whether c is the empty clause.
func (c Clause) IsEmpty() bool { return len(c.literals) == 0 }

// IsTautology reports whether c contains some literal together with its negation.
func (c Clause) IsTautology() bool { return c.tautology }

// Contains reports whether l is one of the literals of c.
func (c Clause) Contains(l Literal) bool {
	_, found := slices.BinarySearchFunc(c.literals, l, compareLiteral)
	return found
}

// Key is the canonical text of c; equal clauses have equal keys.
func (c Clause) Key() string { return c.key }

func (c Clause) Equal(other Clause) bool { return c.key == other.key }

func (c Clause) String() string {
	if c.IsEmpty() {
		return EmptyClauseText
	}
	return c.key
}

// Resolve returns every resolvent of a and b: for each literal of a whose
// negation is in b, the union of the remaining literals of both. Tautologies
// are discarded and duplicates collapse.
func Resolve(a, b Clause) []Clause {
	var resolvents []Clause
	seen := make(map[string]bool)
	for _, l := range a.literals {
		complement := l.Negate()
		if !b.Contains(complement) {
			continue
		}
		remaining := make([]Literal, 0, len(a.literals)+len(b.literals)-2)
		for _, other := range a.literals {
			if other != l {
				remaining = append(remaining, other)
			}
		}
		for _, other := range b.literals {
			if other != complement {
				remaining = append(remaining, other)
			}
		}
		resolvent := NewClause(remaining...)
		if resolvent.IsTautology() || seen[resolvent.key] {
			continue
		}
		seen[resolvent.key] = true
		resolvents = append(resolvents, resolvent)
	}
	return resolvents
}
