// Package atomtable implements the structure-of-arrays atom storage:
// parallel slot arrays for headers, truth values, attention values,
// generations, node/link payloads, and incoming sets, backed by a
// free-slot list and content-addressed dedup indices. Table is the
// single source of truth the index manager and AtomSpace facade build
// on; it knows nothing about patterns or inference.
package atomtable

import (
	"sync"

	"github.com/emirpasic/gods/v2/sets/hashset"
	"github.com/emirpasic/gods/v2/stack/arraystack"
	"golang.org/x/text/unicode/norm"

	"github.com/cogweave/hyperspace/internal/core"
)

const initialCapacity = 1024

type nodeSlot struct {
	name string
}

type linkSlot struct {
	outgoing []core.AtomId
}

type nodeKey struct {
	typ  core.AtomType
	name string
}

type linkKey struct {
	typ  core.AtomType
	hash uint64
}

// Table is the structure-of-arrays atom store. All exported methods
// are safe for concurrent use: structural mutation (Add*/Remove) takes
// the write lock; SetTV/SetAV also take the write lock, held only for
// the single-slot store, since Go has no portable lock-free CAS over a
// float64+struct pair without additional indirection.
type Table struct {
	mu sync.RWMutex

	headers         []core.AtomHeader
	truthValues     []core.TruthValue
	attentionValues []core.AttentionValue
	generations     []uint16
	nodeData        []nodeSlot
	linkData        []linkSlot
	incomingSets    []*hashset.Set[core.AtomId]
	occupied        []bool

	free *arraystack.Stack[uint64]

	nodeDedup map[nodeKey]core.AtomId
	linkDedup map[linkKey][]core.AtomId

	insertionOrder []core.AtomId // by_type iteration relies on stable insertion order
	nodeCount      int
	linkCount      int
}

// New creates an empty Table with room for initialCapacity atoms
// before its first grow.
func New() *Table {
	return &Table{
		headers:         make([]core.AtomHeader, 0, initialCapacity),
		truthValues:     make([]core.TruthValue, 0, initialCapacity),
		attentionValues: make([]core.AttentionValue, 0, initialCapacity),
		generations:     make([]uint16, 0, initialCapacity),
		nodeData:        make([]nodeSlot, 0, initialCapacity),
		linkData:        make([]linkSlot, 0, initialCapacity),
		incomingSets:    make([]*hashset.Set[core.AtomId], 0, initialCapacity),
		occupied:        make([]bool, 0, initialCapacity),
		free:            arraystack.New[uint64](),
		nodeDedup:       make(map[nodeKey]core.AtomId),
		linkDedup:       make(map[linkKey][]core.AtomId),
	}
}

func normalizeName(name string) string {
	return norm.NFC.String(name)
}

// allocSlot returns an index ready for a fresh atom, reusing a freed
// slot if one is available. Caller must hold mu for writing.
func (t *Table) allocSlot() uint64 {
	if idx, ok := t.free.Pop(); ok {
		return idx
	}
	idx := uint64(len(t.headers))
	t.headers = append(t.headers, core.AtomHeader{})
	t.truthValues = append(t.truthValues, core.TruthValue{})
	t.attentionValues = append(t.attentionValues, core.AttentionValue{})
	t.generations = append(t.generations, 0)
	t.nodeData = append(t.nodeData, nodeSlot{})
	t.linkData = append(t.linkData, linkSlot{})
	t.incomingSets = append(t.incomingSets, hashset.New[core.AtomId]())
	t.occupied = append(t.occupied, false)
	return idx
}

// validAt reports whether id's generation matches the slot's current
// generation and the slot is occupied. Caller must hold mu.
func (t *Table) validAt(id core.AtomId) bool {
	idx := id.Index()
	if idx >= uint64(len(t.headers)) {
		return false
	}
	return t.occupied[idx] && t.generations[idx] == id.Generation()
}

// Contains reports whether id refers to a live atom.
func (t *Table) Contains(id core.AtomId) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.validAt(id)
}

// AddNode inserts (or finds) a node of the given type and name,
// returning its AtomId and whether this call created it (false on a
// dedup hit).
func (t *Table) AddNode(typ core.AtomType, name string, tv core.TruthValue) (core.AtomId, bool) {
	name = normalizeName(name)
	key := nodeKey{typ: typ, name: name}

	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.nodeDedup[key]; ok && t.validAt(existing) {
		return existing, false
	}

	idx := t.allocSlot()
	gen := t.generations[idx] + 1
	if gen == 0 {
		gen = 1 // generation 0 is reserved for "never assigned"
	}
	t.generations[idx] = gen
	id := core.NewAtomId(idx, gen)

	t.headers[idx] = core.AtomHeader{Type: typ, Arity: 0, Generation: gen}
	t.truthValues[idx] = tv
	t.attentionValues[idx] = core.AttentionValue{}
	t.nodeData[idx] = nodeSlot{name: name}
	t.linkData[idx] = linkSlot{}
	t.incomingSets[idx].Clear()
	t.occupied[idx] = true

	t.nodeDedup[key] = id
	t.insertionOrder = append(t.insertionOrder, id)
	t.nodeCount++
	return id, true
}

// AddLink inserts (or finds) a link of the given type over an ordered
// outgoing set, returning its AtomId, whether this call created it,
// and an error if any outgoing id is not a live atom.
func (t *Table) AddLink(typ core.AtomType, outgoing []core.AtomId, tv core.TruthValue) (core.AtomId, bool, error) {
	out := append([]core.AtomId(nil), outgoing...)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, target := range out {
		if !t.validAt(target) {
			return 0, false, core.ErrInvalidReference
		}
	}

	key := linkKey{typ: typ, hash: core.HashOutgoing(out)}
	for _, candidate := range t.linkDedup[key] {
		if t.validAt(candidate) && outgoingEqual(t.linkData[candidate.Index()].outgoing, out) {
			return candidate, false, nil
		}
	}

	idx := t.allocSlot()
	gen := t.generations[idx] + 1
	if gen == 0 {
		gen = 1
	}
	t.generations[idx] = gen
	id := core.NewAtomId(idx, gen)

	t.headers[idx] = core.AtomHeader{Type: typ, Arity: uint16(len(out)), Generation: gen}
	t.truthValues[idx] = tv
	t.attentionValues[idx] = core.AttentionValue{}
	t.nodeData[idx] = nodeSlot{}
	t.linkData[idx] = linkSlot{outgoing: out}
	t.incomingSets[idx].Clear()
	t.occupied[idx] = true

	for _, target := range out {
		t.incomingSets[target.Index()].Add(id)
	}

	t.linkDedup[key] = append(t.linkDedup[key], id)
	t.insertionOrder = append(t.insertionOrder, id)
	t.linkCount++
	return id, true, nil
}

func outgoingEqual(a, b []core.AtomId) bool {
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

// LookupNode returns the AtomId registered for (typ, name), without
// creating one on a miss.
func (t *Table) LookupNode(typ core.AtomType, name string) (core.AtomId, bool) {
	name = normalizeName(name)
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.nodeDedup[nodeKey{typ: typ, name: name}]
	if !ok || !t.validAt(id) {
		return 0, false
	}
	return id, true
}

// LookupLink returns the AtomId registered for (typ, outgoing),
// without creating one on a miss.
func (t *Table) LookupLink(typ core.AtomType, outgoing []core.AtomId) (core.AtomId, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	key := linkKey{typ: typ, hash: core.HashOutgoing(outgoing)}
	for _, candidate := range t.linkDedup[key] {
		if t.validAt(candidate) && outgoingEqual(t.linkData[candidate.Index()].outgoing, outgoing) {
			return candidate, true
		}
	}
	return 0, false
}

// Removed describes one atom dropped by a Remove call, carrying
// enough information (type, former outgoing set) for a caller (the
// index manager, via the AtomSpace facade) to retract it from
// secondary indices after the fact.
type Removed struct {
	Id       core.AtomId
	Type     core.AtomType
	Outgoing []core.AtomId
}

// Remove deletes id. If recursive is false and id's incoming set is
// non-empty, Remove fails and returns (nil, false). If recursive is
// true, all incoming links are removed first (depth-first, each atom
// visited at most once), then id itself; the returned slice lists
// every atom actually dropped, in removal order.
func (t *Table) Remove(id core.AtomId, recursive bool) ([]Removed, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	visited := make(map[core.AtomId]bool)
	var removed []Removed
	if !t.removeLocked(id, recursive, visited, &removed) {
		return nil, false
	}
	return removed, true
}

func (t *Table) removeLocked(id core.AtomId, recursive bool, visited map[core.AtomId]bool, removed *[]Removed) bool {
	if !t.validAt(id) {
		return false
	}
	if visited[id] {
		return true
	}
	idx := id.Index()
	incoming := t.incomingSets[idx].Values()
	if len(incoming) > 0 {
		if !recursive {
			return false
		}
		visited[id] = true
		for _, parent := range incoming {
			t.removeLocked(parent, recursive, visited, removed)
		}
	}

	header := t.headers[idx]
	outgoingCopy := append([]core.AtomId(nil), t.linkData[idx].outgoing...)
	if header.Type.IsNode() {
		delete(t.nodeDedup, nodeKey{typ: header.Type, name: t.nodeData[idx].name})
	} else {
		out := t.linkData[idx].outgoing
		key := linkKey{typ: header.Type, hash: core.HashOutgoing(out)}
		t.linkDedup[key] = removeId(t.linkDedup[key], id)
		if len(t.linkDedup[key]) == 0 {
			delete(t.linkDedup, key)
		}
		for _, target := range out {
			if t.validAt(target) {
				t.incomingSets[target.Index()].Remove(id)
			}
		}
	}

	if header.Type.IsNode() {
		t.nodeCount--
	} else {
		t.linkCount--
	}
	t.incomingSets[idx].Clear()
	t.nodeData[idx] = nodeSlot{}
	t.linkData[idx] = linkSlot{}
	t.truthValues[idx] = core.TruthValue{}
	t.attentionValues[idx] = core.AttentionValue{}
	t.occupied[idx] = false
	t.headers[idx] = core.AtomHeader{}
	t.free.Push(idx)
	*removed = append(*removed, Removed{Id: id, Type: header.Type, Outgoing: outgoingCopy})
	return true
}

func removeId(ids []core.AtomId, target core.AtomId) []core.AtomId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Type returns id's atom type, or core.InvalidType if id is stale.
func (t *Table) Type(id core.AtomId) core.AtomType {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return core.InvalidType
	}
	return t.headers[id.Index()].Type
}

// Name returns id's node name, or "" if id is stale or is a link.
func (t *Table) Name(id core.AtomId) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return ""
	}
	return t.nodeData[id.Index()].name
}

// Outgoing returns a copy of id's outgoing sequence, or nil if id is
// stale or is a node.
func (t *Table) Outgoing(id core.AtomId) []core.AtomId {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return nil
	}
	out := t.linkData[id.Index()].outgoing
	if out == nil {
		return nil
	}
	return append([]core.AtomId(nil), out...)
}

// Arity returns id's outgoing-set length (0 for nodes and stale ids).
func (t *Table) Arity(id core.AtomId) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return 0
	}
	return int(t.headers[id.Index()].Arity)
}

// TV returns id's truth value, or the zero value if id is stale.
func (t *Table) TV(id core.AtomId) core.TruthValue {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return core.TruthValue{}
	}
	return t.truthValues[id.Index()]
}

// SetTV replaces id's truth value. No-op on a stale id.
func (t *Table) SetTV(id core.AtomId, tv core.TruthValue) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validAt(id) {
		return
	}
	t.truthValues[id.Index()] = tv
}

// AV returns id's attention value, or the zero value if id is stale.
func (t *Table) AV(id core.AtomId) core.AttentionValue {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return core.AttentionValue{}
	}
	return t.attentionValues[id.Index()]
}

// SetAV replaces id's attention value. No-op on a stale id.
func (t *Table) SetAV(id core.AtomId, av core.AttentionValue) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validAt(id) {
		return
	}
	t.attentionValues[id.Index()] = av
}

// Incoming returns the (unspecified but stable-under-reads) order of
// AtomIds whose outgoing set contains id.
func (t *Table) Incoming(id core.AtomId) []core.AtomId {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.validAt(id) {
		return nil
	}
	return t.incomingSets[id.Index()].Values()
}

// AllAtoms returns every live AtomId in insertion order.
func (t *Table) AllAtoms() []core.AtomId {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]core.AtomId, 0, len(t.insertionOrder))
	for _, id := range t.insertionOrder {
		if t.validAt(id) {
			out = append(out, id)
		}
	}
	return out
}

// Size returns the number of live atoms.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodeCount + t.linkCount
}

// NodeCount returns the number of live node atoms.
func (t *Table) NodeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodeCount
}

// LinkCount returns the number of live link atoms.
func (t *Table) LinkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.linkCount
}

// Clear drops every atom and resets dedup indices but does not reset
// generations, so stale handles minted before Clear remain invalid.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for idx := range t.occupied {
		if !t.occupied[idx] {
			// Already on t.free from an earlier Remove; pushing it
			// again here would duplicate the slot in the free stack.
			continue
		}
		t.occupied[idx] = false
		t.nodeData[idx] = nodeSlot{}
		t.linkData[idx] = linkSlot{}
		t.truthValues[idx] = core.TruthValue{}
		t.attentionValues[idx] = core.AttentionValue{}
		t.incomingSets[idx].Clear()
		t.free.Push(uint64(idx))
	}
	t.nodeDedup = make(map[nodeKey]core.AtomId)
	t.linkDedup = make(map[linkKey][]core.AtomId)
	t.insertionOrder = nil
	t.nodeCount = 0
	t.linkCount = 0
}

