package matcher

import (
	"sort"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// candidateIds computes the root candidate set for term, per the
// matcher's §4.5 algorithm: a singleton for Grounded, the by-type
// index for Typed/Link, every atom for an unconstrained Variable,
// intersection for And, union for Or, every atom for Not. Always
// returned sorted ascending so callers that want deterministic order
// don't re-sort per call site; Each sorts once more when
// DeterministicOrder is set.
func candidateIds(space *atomspace.AtomSpace, term pattern.Term) []core.AtomId {
	switch v := term.(type) {
	case pattern.Grounded:
		if space.Contains(core.Handle{Id: v.Id}) {
			return []core.AtomId{v.Id}
		}
		return nil
	case pattern.Typed:
		return sortedIdsByType(space, v.Type)
	case pattern.Link:
		return sortedIdsByType(space, v.Type)
	case pattern.Variable:
		if v.TypeConstraint != nil {
			return sortedIdsByType(space, *v.TypeConstraint)
		}
		return sortedAllIds(space)
	case pattern.And:
		var result []core.AtomId
		for i, t := range v.Terms {
			ids := candidateIds(space, t)
			if i == 0 {
				result = ids
				continue
			}
			result = intersectSorted(result, ids)
		}
		return result
	case pattern.Or:
		seen := make(map[core.AtomId]bool)
		var all []core.AtomId
		for _, t := range v.Terms {
			for _, id := range candidateIds(space, t) {
				if !seen[id] {
					seen[id] = true
					all = append(all, id)
				}
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
		return all
	case pattern.Not:
		return sortedAllIds(space)
	default:
		return nil
	}
}

func sortedIdsByType(space *atomspace.AtomSpace, typ core.AtomType) []core.AtomId {
	handles := space.GetAtomsByType(typ)
	ids := make([]core.AtomId, len(handles))
	for i, h := range handles {
		ids[i] = h.Id
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedAllIds(space *atomspace.AtomSpace) []core.AtomId {
	var ids []core.AtomId
	space.ForEachAtom(func(h core.Handle) bool {
		ids = append(ids, h.Id)
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// intersectSorted intersects two ascending-sorted, duplicate-free
// AtomId slices.
func intersectSorted(a, b []core.AtomId) []core.AtomId {
	var out []core.AtomId
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
