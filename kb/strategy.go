package kb

import (
	"fmt"
	"strings"

	"github.com/crillab/gophersat/solver"
)

// Strategy selects the decision procedure behind Entails.
type Strategy int

const (
	// StrategyResolution saturates the clause set with binary resolution.
	StrategyResolution Strategy = iota
	// StrategySAT asks a CDCL solver whether the clauses plus the negated query
	// are unsatisfiable.
	StrategySAT
)

func (s Strategy) String() string {
	switch s {
	case StrategyResolution:
		return "resolution"
	case StrategySAT:
		return "sat"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps "resolution" or "sat" (any case) to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "resolution":
		return StrategyResolution, nil
	case "sat":
		return StrategySAT, nil
	}
	return StrategyResolution, fmt.Errorf("unknown entailment strategy %q", name)
}

// satisfiabilityEntails numbers each proposition from 1 and hands the DIMACS
// style clause list to gophersat.
func satisfiabilityEntails(base []Clause, query Clause) bool {
	variables := make(map[Proposition]int)
	variable := func(literal Literal) int {
		id, ok := variables[literal.Prop]
		if !ok {
			id = len(variables) + 1
			variables[literal.Prop] = id
		}
		if !literal.Positive {
			return -id
		}
		return id
	}

	cnf := make([][]int, 0, len(base)+query.Len())
	for _, clause := range base {
		row := make([]int, 0, clause.Len())
		for _, literal := range clause.literals {
			row = append(row, variable(literal))
		}
		cnf = append(cnf, row)
	}
	for _, literal := range query.literals {
		cnf = append(cnf, []int{variable(literal.Negate())})
	}
	if len(cnf) == 0 {
		return false
	}

	problem := solver.ParseSlice(cnf)
	return solver.New(problem).Solve() == solver.Unsat
}
