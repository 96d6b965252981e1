// Package atomspace provides the public facade over the atom table and
// secondary indices: add/remove/query operations translated between
// external Handles and internal AtomIds, plus the canonical
// human-readable rendering used for debugging and logs.
package atomspace

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cogweave/hyperspace/internal/atomtable"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/index"
)

// AtomSpace is the single in-process hypergraph store: an atom table
// plus its secondary indices, kept in lockstep under a single writer
// lock so structural mutations are atomic from any reader's
// perspective (add a link, register it in by-type and
// by-type-and-target, update incoming sets — all or nothing).
type AtomSpace struct {
	mu     sync.RWMutex
	table  *atomtable.Table
	index  *index.Manager
	types  *core.TypeRegistry
	logger *zap.Logger
}

// New creates an empty AtomSpace. A nil logger installs zap's no-op
// logger so callers never need a nil check.
func New(logger *zap.Logger) *AtomSpace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AtomSpace{
		table:  atomtable.New(),
		index:  index.New(),
		types:  core.NewTypeRegistry(),
		logger: logger,
	}
}

// RegisterType extends this AtomSpace's own extension-type side table
// with an embedder-defined type at or above core.UserDefinedType. Two
// AtomSpaces in the same process can register the same id with
// different meanings without colliding with each other.
func (s *AtomSpace) RegisterType(t core.AtomType, name string, isLink bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types.Register(t, name, isLink)
}

// IsLinkType reports whether t falls in the link partition, including
// extension types this AtomSpace has registered.
func (s *AtomSpace) IsLinkType(t core.AtomType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types.IsLink(t)
}

// TypeName returns t's name as known to this AtomSpace: the built-in
// registry, falling back to its own registered extensions.
func (s *AtomSpace) TypeName(t core.AtomType) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types.TypeName(t)
}

// handle wraps id with a back-reference to this space.
func (s *AtomSpace) handle(id core.AtomId) core.Handle {
	return core.Handle{Id: id, Space: s}
}

// AddNode inserts or finds a node of type typ named name, with tv
// applied only on first creation (a dedup hit keeps the existing
// atom's truth value untouched).
func (s *AtomSpace) AddNode(typ core.AtomType, name string, tv core.TruthValue) core.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, created := s.table.AddNode(typ, name, tv)
	if created {
		s.index.OnAdd(id, typ, nil)
		s.logger.Debug("added node", zap.String("type", s.types.TypeName(typ)), zap.String("name", name))
	}
	return s.handle(id)
}

// AddLink inserts or finds a link of type typ over outgoing, with tv
// applied only on first creation. Returns an error if any outgoing id
// is not a live atom in this space.
func (s *AtomSpace) AddLink(typ core.AtomType, outgoing []core.Handle, tv core.TruthValue) (core.Handle, error) {
	ids := make([]core.AtomId, len(outgoing))
	for i, h := range outgoing {
		ids[i] = h.Id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, created, err := s.table.AddLink(typ, ids, tv)
	if err != nil {
		return core.Handle{}, err
	}
	if created {
		s.index.OnAdd(id, typ, ids)
		s.logger.Debug("added link", zap.String("type", s.types.TypeName(typ)), zap.Int("arity", len(ids)))
	}
	return s.handle(id), nil
}

// Remove deletes the atom at h. If recursive is false and h's
// incoming set is non-empty, Remove fails and returns false. A
// recursive removal also drops every incoming link transitively; the
// table reports every atom it actually dropped so the indices can be
// retracted for all of them, not just h.
func (s *AtomSpace) Remove(h core.Handle, recursive bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, ok := s.table.Remove(h.Id, recursive)
	if !ok {
		return false
	}
	for _, r := range removed {
		s.index.OnRemove(r.Id, r.Type, r.Outgoing)
	}
	return true
}

// Contains reports whether h refers to a live atom.
func (s *AtomSpace) Contains(h core.Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Contains(h.Id)
}

// GetNode returns the Handle for an existing node, or an invalid
// Handle if none exists.
func (s *AtomSpace) GetNode(typ core.AtomType, name string) (core.Handle, bool) {
	id, ok := s.table.LookupNode(typ, name)
	if !ok {
		return core.Handle{}, false
	}
	return s.handle(id), true
}

// GetLink returns the Handle for an existing link, or an invalid
// Handle if none exists.
func (s *AtomSpace) GetLink(typ core.AtomType, outgoing []core.Handle) (core.Handle, bool) {
	ids := make([]core.AtomId, len(outgoing))
	for i, h := range outgoing {
		ids[i] = h.Id
	}
	id, ok := s.table.LookupLink(typ, ids)
	if !ok {
		return core.Handle{}, false
	}
	return s.handle(id), true
}

// Type returns h's atom type, or core.InvalidType if stale.
func (s *AtomSpace) Type(h core.Handle) core.AtomType {
	return s.table.Type(h.Id)
}

// Name returns h's node name, or "" if stale or a link.
func (s *AtomSpace) Name(h core.Handle) string {
	return s.table.Name(h.Id)
}

// Outgoing returns h's outgoing set as Handles.
func (s *AtomSpace) Outgoing(h core.Handle) []core.Handle {
	ids := s.table.Outgoing(h.Id)
	out := make([]core.Handle, len(ids))
	for i, id := range ids {
		out[i] = s.handle(id)
	}
	return out
}

// Arity returns h's outgoing-set length.
func (s *AtomSpace) Arity(h core.Handle) int {
	return s.table.Arity(h.Id)
}

// GetTV returns h's truth value.
func (s *AtomSpace) GetTV(h core.Handle) core.TruthValue {
	return s.table.TV(h.Id)
}

// SetTV replaces h's truth value.
func (s *AtomSpace) SetTV(h core.Handle, tv core.TruthValue) {
	s.table.SetTV(h.Id, tv)
}

// GetAV returns h's attention value.
func (s *AtomSpace) GetAV(h core.Handle) core.AttentionValue {
	return s.table.AV(h.Id)
}

// SetAV replaces h's attention value.
func (s *AtomSpace) SetAV(h core.Handle, av core.AttentionValue) {
	s.table.SetAV(h.Id, av)
}

// GetIncoming returns every link whose outgoing set contains h.
func (s *AtomSpace) GetIncoming(h core.Handle) []core.Handle {
	ids := s.table.Incoming(h.Id)
	out := make([]core.Handle, len(ids))
	for i, id := range ids {
		out[i] = s.handle(id)
	}
	return out
}

// GetIncomingByType filters GetIncoming to links of the given type.
func (s *AtomSpace) GetIncomingByType(h core.Handle, typ core.AtomType) []core.Handle {
	var out []core.Handle
	for _, parent := range s.GetIncoming(h) {
		if s.Type(parent) == typ {
			out = append(out, parent)
		}
	}
	return out
}

// GetAtomsByType returns every live atom of type typ, in insertion
// order.
func (s *AtomSpace) GetAtomsByType(typ core.AtomType) []core.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.index.ByType(typ)
	byInsertion := s.table.AllAtoms()
	order := make(map[core.AtomId]int, len(byInsertion))
	for i, id := range byInsertion {
		order[id] = i
	}
	present := make(map[core.AtomId]bool, len(ids))
	for _, id := range ids {
		if s.table.Contains(id) {
			present[id] = true
		}
	}
	out := make([]core.Handle, 0, len(present))
	for _, id := range byInsertion {
		if present[id] {
			out = append(out, s.handle(id))
		}
	}
	return out
}

// CountAtoms returns the number of live atoms of type typ.
func (s *AtomSpace) CountAtoms(typ core.AtomType) int {
	return len(s.GetAtomsByType(typ))
}

// ForEachAtom calls fn for every live atom in insertion order. fn
// returning false stops iteration early.
func (s *AtomSpace) ForEachAtom(fn func(core.Handle) bool) {
	for _, id := range s.table.AllAtoms() {
		if !fn(s.handle(id)) {
			return
		}
	}
}

// Size returns the total number of live atoms.
func (s *AtomSpace) Size() int { return s.table.Size() }

// NodeCount returns the number of live node atoms.
func (s *AtomSpace) NodeCount() int { return s.table.NodeCount() }

// LinkCount returns the number of live link atoms.
func (s *AtomSpace) LinkCount() int { return s.table.LinkCount() }

// Clear drops every atom and resets dedup and secondary indices. It
// does not reset table generations, so handles minted before Clear
// remain permanently invalid.
func (s *AtomSpace) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Clear()
	s.index.Clear()
}

// ToString renders h in its canonical human-readable form: "TypeName
// Name <s,c>" for nodes, an indented tree for links. This is a
// debugging aid, not a wire format.
func (s *AtomSpace) ToString(h core.Handle) string {
	var b strings.Builder
	s.writeAtom(&b, h, 0)
	return b.String()
}

func (s *AtomSpace) writeAtom(b *strings.Builder, h core.Handle, depth int) {
	indent := strings.Repeat("  ", depth)
	typ := s.Type(h)
	tv := s.GetTV(h)
	if typ.IsNode() {
		fmt.Fprintf(b, "%s%s %s <%.3f,%.3f>", indent, s.TypeName(typ), s.Name(h), tv.Strength, tv.Confidence)
		return
	}
	fmt.Fprintf(b, "%s%s <%.3f,%.3f>", indent, s.TypeName(typ), tv.Strength, tv.Confidence)
	for _, child := range s.Outgoing(h) {
		b.WriteString("\n")
		s.writeAtom(b, child, depth+1)
	}
}
