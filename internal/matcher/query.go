package matcher

import (
	"context"

	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// Query is a fluent builder over Matcher that accumulates variable
// declarations and a root term before running a match.
type Query struct {
	matcher   *Matcher
	variables []string
	root      pattern.Term
	predicate func(Result) bool
	limit     int
}

// NewQuery starts a fluent query over m.
func NewQuery(m *Matcher) *Query {
	return &Query{matcher: m}
}

// Variable declares a reported variable, optionally type-constrained.
func (q *Query) Variable(name string, typ ...core.AtomType) *Query {
	q.variables = append(q.variables, name)
	if len(typ) > 0 {
		q.root = combineRoot(q.root, pattern.TypedVar(name, typ[0]))
	} else {
		q.root = combineRoot(q.root, pattern.Var(name))
	}
	return q
}

// Match sets (or And-combines) the root term to a Link pattern over
// subTerms.
func (q *Query) Match(typ core.AtomType, subTerms ...pattern.Term) *Query {
	q.root = combineRoot(q.root, pattern.LinkPattern(typ, subTerms...))
	return q
}

// Where attaches a post-match filter predicate; only results
// satisfying predicate are reported downstream.
func (q *Query) Where(predicate func(Result) bool) *Query {
	q.predicate = predicate
	return q
}

// Limit caps the number of results Collect/Exists will pull.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func combineRoot(existing pattern.Term, next pattern.Term) pattern.Term {
	if existing == nil {
		return next
	}
	if and, ok := existing.(pattern.And); ok {
		return pattern.And{Terms: append(append([]pattern.Term(nil), and.Terms...), next)}
	}
	return pattern.And{Terms: []pattern.Term{existing, next}}
}

func (q *Query) pattern() pattern.Pattern {
	return pattern.New(q.root, q.variables...)
}

// Collect runs the query and returns every matching Result, honoring
// Limit and Where. Limit bounds the number of Where-filtered results
// Collect hands back, not the matcher's raw pre-filter match count —
// Each's own MaxResults can't be reused here since it counts every
// structural match it feeds to the callback, before the callback's
// predicate gets a vote. So the predicate is applied first, inside the
// callback, and only a post-filter count is compared against Limit.
func (q *Query) Collect(ctx context.Context) ([]Result, error) {
	cfg := Config{DeterministicOrder: true}
	var out []Result
	err := q.matcher.Each(ctx, q.pattern(), cfg, func(r Result) bool {
		if q.predicate != nil && !q.predicate(r) {
			return true
		}
		out = append(out, r)
		return q.limit <= 0 || len(out) < q.limit
	})
	if err == core.ErrBudgetExceeded {
		err = nil
	}
	return out, err
}

// Exists reports whether the query matches at least once.
func (q *Query) Exists(ctx context.Context) (bool, error) {
	found := false
	err := q.matcher.Each(ctx, q.pattern(), Config{DeterministicOrder: true}, func(r Result) bool {
		if q.predicate != nil && !q.predicate(r) {
			return true
		}
		found = true
		return false
	})
	return found, err
}
