package matcher

import (
	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// matchAtom attempts to structurally match term against the specific
// atom id, extending bindings and invoking yield once per successful
// branch. The boolean return threads a single "keep searching"
// signal: false propagates all the way back up to Matcher.Each,
// meaning the consumer (or a budget) asked the whole search to stop.
func matchAtom(space *atomspace.AtomSpace, term pattern.Term, id core.AtomId, bindings frame, yield func(frame) bool) bool {
	h := core.Handle{Id: id}
	switch v := term.(type) {
	case pattern.Variable:
		if v.TypeConstraint != nil && space.Type(h) != *v.TypeConstraint {
			return true
		}
		next, ok := bindings.bindVar(v.Name, id)
		if !ok {
			return true
		}
		return yield(next)

	case pattern.Grounded:
		if id != v.Id {
			return true
		}
		return yield(bindings)

	case pattern.Typed:
		if space.Type(h) != v.Type {
			return true
		}
		return yield(bindings)

	case pattern.Link:
		if space.Type(h) != v.Type {
			return true
		}
		outgoing := space.Outgoing(h)
		actual := make([]core.AtomId, len(outgoing))
		for i, o := range outgoing {
			actual[i] = o.Id
		}
		return matchOutgoing(space, v.Outgoing, actual, 0, 0, bindings, yield)

	case pattern.And:
		return matchAllAtom(space, v.Terms, 0, id, bindings, yield)

	case pattern.Or:
		for _, t := range v.Terms {
			if !matchAtom(space, t, id, bindings, yield) {
				return false
			}
		}
		return true

	case pattern.Not:
		found := false
		matchAtom(space, v.Term, id, bindings, func(frame) bool {
			found = true
			return false
		})
		if found {
			return true
		}
		return yield(bindings)

	default:
		return true
	}
}

// matchAllAtom requires every term in terms[idx:] to match id in turn,
// threading the evolving bindings through each conjunct (an And
// nested at a pinned position, not at the pattern root).
func matchAllAtom(space *atomspace.AtomSpace, terms []pattern.Term, idx int, id core.AtomId, bindings frame, yield func(frame) bool) bool {
	if idx == len(terms) {
		return yield(bindings)
	}
	return matchAtom(space, terms[idx], id, bindings, func(next frame) bool {
		return matchAllAtom(space, terms, idx+1, id, next, yield)
	})
}

// matchOutgoing walks a Link pattern's sub-terms against a link's
// actual outgoing sequence, term index ti and actual-atom index ai in
// lockstep except where a Glob consumes more than one actual position.
func matchOutgoing(space *atomspace.AtomSpace, terms []pattern.Term, actual []core.AtomId, ti, ai int, bindings frame, yield func(frame) bool) bool {
	if ti == len(terms) {
		if ai != len(actual) {
			return true // arity mismatch once globs are accounted for; not a match
		}
		return yield(bindings)
	}

	if glob, ok := terms[ti].(pattern.Glob); ok {
		maxCount := glob.MaxCount
		if maxCount < 0 || ai+maxCount > len(actual) {
			maxCount = len(actual) - ai
		}
		for k := glob.MinCount; k <= maxCount; k++ {
			if ai+k > len(actual) {
				break
			}
			span := append([]core.AtomId(nil), actual[ai:ai+k]...)
			next, ok := bindings.bindGlob(glob.Name, span)
			if !ok {
				continue
			}
			if !matchOutgoing(space, terms, actual, ti+1, ai+k, next, yield) {
				return false
			}
		}
		return true
	}

	if ai >= len(actual) {
		return true // term left but no actual atom to match against
	}
	return matchAtom(space, terms[ti], actual[ai], bindings, func(next frame) bool {
		return matchOutgoing(space, terms, actual, ti+1, ai+1, next, yield)
	})
}
