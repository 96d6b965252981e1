// Package matcher implements the lazy, cancellable, backtracking
// pattern matcher: depth-first search over an AtomSpace driven by a
// pattern.Term tree, yielding one BindingSet at a time to a consumer
// callback. The search state is an explicit recursive call stack
// (continuation-passing via the yield callbacks below) rather than a
// goroutine+channel generator, so an abandoned search leaves nothing
// running in the background — the same design note the matcher's
// C++ coroutine ancestor left as an implementation choice.
package matcher

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// Config tunes a single match run. MaxResults of 0 means unlimited.
type Config struct {
	MaxResults         int
	Trace              bool
	DeterministicOrder bool
}

// DefaultConfig returns a Config with deterministic ordering on and no
// result cap.
func DefaultConfig() Config {
	return Config{DeterministicOrder: true}
}

// Result is one match: the root atom the whole pattern matched
// against, the bindings for the pattern's declared variables, and any
// glob bindings (which carry a contiguous span of ids, so they cannot
// live in a plain BindingSet).
type Result struct {
	Root   core.AtomId
	Binds  pattern.BindingSet
	Globs  map[string][]core.AtomId
}

// frame is the mutable-by-copy matching state threaded through a
// single search: scalar variable bindings plus glob bindings.
type frame struct {
	vars  pattern.BindingSet
	globs map[string][]core.AtomId
}

func emptyFrame() frame {
	return frame{vars: pattern.BindingSet{}, globs: map[string][]core.AtomId{}}
}

func (f frame) bindVar(name string, id core.AtomId) (frame, bool) {
	next, ok := f.vars.Bind(name, id)
	if !ok {
		return f, false
	}
	return frame{vars: next, globs: f.globs}, true
}

func (f frame) bindGlob(name string, span []core.AtomId) (frame, bool) {
	if existing, ok := f.globs[name]; ok {
		if !idsEqual(existing, span) {
			return f, false
		}
		return f, true
	}
	next := make(map[string][]core.AtomId, len(f.globs)+1)
	for k, v := range f.globs {
		next[k] = v
	}
	next[name] = span
	return frame{vars: f.vars, globs: next}, true
}

func idsEqual(a, b []core.AtomId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Matcher runs pattern matches against a fixed AtomSpace.
type Matcher struct {
	space  *atomspace.AtomSpace
	logger *zap.Logger
}

// New creates a Matcher over space. A nil logger installs zap's no-op
// logger.
func New(space *atomspace.AtomSpace, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{space: space, logger: logger}
}

// Each runs p against the matcher's space, calling fn once per match
// in deterministic order (root AtomId ascending; ties broken by
// declaration-order choices at each position). fn returning false
// stops the search early — not an error, just consumer-requested
// completion. Each returns core.ErrCancelled if ctx is done before the
// search completes naturally or the consumer stops it, and
// core.ErrBudgetExceeded if cfg.MaxResults is reached.
func (m *Matcher) Each(ctx context.Context, p pattern.Pattern, cfg Config, fn func(Result) bool) error {
	candidates := candidateIds(m.space, p.Root)
	if cfg.DeterministicOrder {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	}

	emitted := 0
	var budgetHit bool
	for _, root := range candidates {
		if ctx.Err() != nil {
			return core.ErrCancelled
		}
		if cfg.MaxResults > 0 && emitted >= cfg.MaxResults {
			budgetHit = true
			break
		}
		keepGoing := matchAtom(m.space, p.Root, root, emptyFrame(), func(f frame) bool {
			if cfg.MaxResults > 0 && emitted >= cfg.MaxResults {
				budgetHit = true
				return false
			}
			result := Result{Root: root, Binds: projectVars(f.vars, p.Variables), Globs: f.globs}
			if cfg.Trace {
				m.logger.Debug("matched", zap.Uint64("root", uint64(root)))
			}
			emitted++
			cont := fn(result)
			if !cont {
				return false
			}
			if cfg.MaxResults > 0 && emitted >= cfg.MaxResults {
				budgetHit = true
				return false
			}
			return true
		})
		if !keepGoing {
			if budgetHit {
				return core.ErrBudgetExceeded
			}
			return nil
		}
	}
	if budgetHit {
		return core.ErrBudgetExceeded
	}
	return nil
}

func projectVars(vars pattern.BindingSet, names []string) pattern.BindingSet {
	out := make(pattern.BindingSet, len(names))
	for _, n := range names {
		if id, ok := vars[n]; ok {
			out[n] = id
		}
	}
	return out
}

// FindFirst returns the first match of p, if any.
func (m *Matcher) FindFirst(ctx context.Context, p pattern.Pattern) (Result, bool, error) {
	var found Result
	ok := false
	err := m.Each(ctx, p, Config{DeterministicOrder: true, MaxResults: 1}, func(r Result) bool {
		found, ok = r, true
		return false
	})
	if err == core.ErrBudgetExceeded {
		err = nil
	}
	return found, ok, err
}

// FindAll returns every match of p, honoring cfg.MaxResults as an
// upper bound on the returned slice's length.
func (m *Matcher) FindAll(ctx context.Context, p pattern.Pattern, cfg Config) ([]Result, error) {
	var out []Result
	err := m.Each(ctx, p, cfg, func(r Result) bool {
		out = append(out, r)
		return true
	})
	if err == core.ErrBudgetExceeded {
		err = nil
	}
	return out, err
}

// AnyMatch reports whether p matches at least once.
func (m *Matcher) AnyMatch(ctx context.Context, p pattern.Pattern) (bool, error) {
	_, ok, err := m.FindFirst(ctx, p)
	return ok, err
}

// CountMatches counts every match of p (a full, unbounded walk).
func (m *Matcher) CountMatches(ctx context.Context, p pattern.Pattern) (int, error) {
	count := 0
	err := m.Each(ctx, p, Config{DeterministicOrder: true}, func(Result) bool {
		count++
		return true
	})
	return count, err
}
