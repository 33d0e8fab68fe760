// Package kb is a propositional knowledge base over maze cells. Clauses are
// asserted monotonically and queries are answered by refutation: either
// resolution saturation or a SAT solver.
package kb

import (
	"log/slog"
	"slices"
	"sync"
)

// KnowledgeBase is a set of clauses. It is safe for concurrent use: Assert
// takes the write lock and Entails works on a snapshot taken under the read lock.
type KnowledgeBase struct {
	mu       sync.RWMutex
	clauses  []Clause
	keys     map[string]bool
	hasEmpty bool

	strategy Strategy
	logger   *slog.Logger
}

// Option configures a KnowledgeBase.
type Option func(*KnowledgeBase)

// WithStrategy selects how Entails decides queries. Defaults to StrategyResolution.
func WithStrategy(strategy Strategy) Option {
	return func(knowledgeBase *KnowledgeBase) { knowledgeBase.strategy = strategy }
}

// WithLogger sets the logger for saturation records. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(knowledgeBase *KnowledgeBase) { knowledgeBase.logger = logger }
}

// New returns an empty knowledge base.
func New(options ...Option) *KnowledgeBase {
	knowledgeBase := &KnowledgeBase{
		keys:     make(map[string]bool),
		strategy: StrategyResolution,
	}
	for _, option := range options {
		option(knowledgeBase)
	}
	if knowledgeBase.logger == nil {
		knowledgeBase.logger = slog.Default()
	}
	return knowledgeBase
}

// Assert adds clause and reports whether it was new. Tautologies are not
// stored. No consistency check is made: asserting a contradiction makes every
// query entailed.
func (knowledgeBase *KnowledgeBase) Assert(clause Clause) bool {
	if clause.IsTautology() {
		return false
	}
	knowledgeBase.mu.Lock()
	defer knowledgeBase.mu.Unlock()

	if knowledgeBase.keys[clause.key] {
		return false
	}
	knowledgeBase.keys[clause.key] = true
	knowledgeBase.clauses = append(knowledgeBase.clauses, clause)
	if clause.IsEmpty() {
		knowledgeBase.hasEmpty = true
	}
	assertionsTotal.Inc()
	return true
}

// AssertAll asserts every clause and returns how many were new.
func (knowledgeBase *KnowledgeBase) AssertAll(clauses ...Clause) int {
	added := 0
	for _, clause := range clauses {
		if knowledgeBase.Assert(clause) {
			added++
		}
	}
	return added
}

// Len is the number of stored clauses.
func (knowledgeBase *KnowledgeBase) Len() int {
	knowledgeBase.mu.RLock()
	defer knowledgeBase.mu.RUnlock()
	return len(knowledgeBase.clauses)
}

// Clauses returns the stored clauses in assertion order.
func (knowledgeBase *KnowledgeBase) Clauses() []Clause {
	knowledgeBase.mu.RLock()
	defer knowledgeBase.mu.RUnlock()
	return slices.Clone(knowledgeBase.clauses)
}

func (knowledgeBase *KnowledgeBase) Strategy() Strategy { return knowledgeBase.strategy }

// Entails reports whether the stored clauses logically imply query, read as a
// disjunction. The query is negated into unit clauses and added to a snapshot
// of the knowledge base; the query is entailed iff the result is unsatisfiable.
func (knowledgeBase *KnowledgeBase) Entails(query Clause) bool {
	knowledgeBase.mu.RLock()
	snapshot := slices.Clone(knowledgeBase.clauses)
	hasEmpty := knowledgeBase.hasEmpty
	knowledgeBase.mu.RUnlock()

	strategy := knowledgeBase.strategy
	var entailed bool
	switch {
	case hasEmpty, query.IsTautology():
		entailed = true
	case strategy == StrategySAT:
		entailed = satisfiabilityEntails(snapshot, query)
	default:
		var stats saturationStats
		entailed, stats = resolutionEntails(snapshot, query)
		resolutionRounds.Observe(float64(stats.rounds))
		resolventsTotal.Add(float64(stats.resolvents))
		knowledgeBase.logger.Debug("saturation finished",
			"query", query.String(),
			"rounds", stats.rounds,
			"resolvents", stats.resolvents,
			"entailed", entailed)
	}

	result := resultNotEntailed
	if entailed {
		result = resultEntailed
	}
	entailmentQueriesTotal.WithLabelValues(strategy.String(), result).Inc()
	return entailed
}

type saturationStats struct {
	rounds     int
	resolvents int
}

// resolutionEntails saturates base together with the negated query. Each round
// resolves the pairs that involve at least one clause added by the previous
// round; older pairs were already resolved.
func resolutionEntails(base []Clause, query Clause) (bool, saturationStats) {
	var stats saturationStats
	known := make(map[string]bool, len(base)+query.Len())
	clauses := make([]Clause, 0, len(base)+query.Len())
	add := func(clause Clause) {
		if !known[clause.key] {
			known[clause.key] = true
			clauses = append(clauses, clause)
		}
	}
	for _, clause := range base {
		add(clause)
	}
	for _, literal := range query.literals {
		add(NewClause(literal.Negate()))
	}

	fresh := 0
	for {
		stats.rounds++
		end := len(clauses)
		var added []Clause
		for j := fresh; j < end; j++ {
			for i := 0; i < j; i++ {
				for _, resolvent := range Resolve(clauses[i], clauses[j]) {
					if resolvent.IsEmpty() {
						stats.resolvents += len(added) + 1
						return true, stats
					}
					if !known[resolvent.key] {
						known[resolvent.key] = true
						added = append(added, resolvent)
					}
				}
			}
		}
		stats.resolvents += len(added)
		if len(added) == 0 {
			return false, stats
		}
		fresh = end
		clauses = append(clauses, added...)
	}
}
