package matcher

import (
	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
)

// FilterByType returns every live atom of typ, in ascending AtomId
// order — the matcher's own root-candidate source for Typed/Link
// terms, exposed directly for callers that want the unfiltered
// candidate stream without building a Pattern around it.
func FilterByType(space *atomspace.AtomSpace, typ core.AtomType) []core.Handle {
	ids := sortedIdsByType(space, typ)
	out := make([]core.Handle, len(ids))
	for i, id := range ids {
		out[i] = core.Handle{Id: id}
	}
	return out
}
