// Package index maintains the secondary indices over an atom table:
// by-type, and by-type-and-target (for fast typed incoming queries).
// IndexManager holds no table state itself; it is kept in lockstep by
// its caller (the AtomSpace facade), which is responsible for pairing
// every table mutation with the matching index update inside a single
// critical section.
package index

import (
	"github.com/emirpasic/gods/v2/sets/hashset"

	"github.com/cogweave/hyperspace/internal/core"
)

type targetKey struct {
	typ    core.AtomType
	target core.AtomId
}

// Manager holds the by-type and by-type-and-target secondary indices.
// It is not safe for concurrent use on its own — callers serialize
// access (see the AtomSpace facade's writer lock).
type Manager struct {
	byType          map[core.AtomType]*hashset.Set[core.AtomId]
	byTypeAndTarget map[targetKey]*hashset.Set[core.AtomId]
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{
		byType:          make(map[core.AtomType]*hashset.Set[core.AtomId]),
		byTypeAndTarget: make(map[targetKey]*hashset.Set[core.AtomId]),
	}
}

func (m *Manager) typeSet(typ core.AtomType) *hashset.Set[core.AtomId] {
	set, ok := m.byType[typ]
	if !ok {
		set = hashset.New[core.AtomId]()
		m.byType[typ] = set
	}
	return set
}

func (m *Manager) targetSet(typ core.AtomType, target core.AtomId) *hashset.Set[core.AtomId] {
	key := targetKey{typ: typ, target: target}
	set, ok := m.byTypeAndTarget[key]
	if !ok {
		set = hashset.New[core.AtomId]()
		m.byTypeAndTarget[key] = set
	}
	return set
}

// OnAdd records a newly created atom: id of type typ, with outgoing
// set (empty for nodes) used to populate the by-type-and-target index.
func (m *Manager) OnAdd(id core.AtomId, typ core.AtomType, outgoing []core.AtomId) {
	m.typeSet(typ).Add(id)
	for _, target := range outgoing {
		m.targetSet(typ, target).Add(id)
	}
}

// OnRemove retracts id (of type typ, with the outgoing set it held) from
// every index entry it participated in.
func (m *Manager) OnRemove(id core.AtomId, typ core.AtomType, outgoing []core.AtomId) {
	if set, ok := m.byType[typ]; ok {
		set.Remove(id)
	}
	for _, target := range outgoing {
		key := targetKey{typ: typ, target: target}
		if set, ok := m.byTypeAndTarget[key]; ok {
			set.Remove(id)
		}
	}
}

// ByType returns every AtomId registered under typ.
func (m *Manager) ByType(typ core.AtomType) []core.AtomId {
	set, ok := m.byType[typ]
	if !ok {
		return nil
	}
	return set.Values()
}

// ByTypeAndTarget returns every link of type typ whose outgoing set
// contains target.
func (m *Manager) ByTypeAndTarget(typ core.AtomType, target core.AtomId) []core.AtomId {
	set, ok := m.byTypeAndTarget[targetKey{typ: typ, target: target}]
	if !ok {
		return nil
	}
	return set.Values()
}

// Clear empties both indices (used by AtomSpace.Clear).
func (m *Manager) Clear() {
	m.byType = make(map[core.AtomType]*hashset.Set[core.AtomId])
	m.byTypeAndTarget = make(map[targetKey]*hashset.Set[core.AtomId])
}
