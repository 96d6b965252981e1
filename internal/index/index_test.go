package index

import (
	"testing"

	"github.com/cogweave/hyperspace/internal/core"
)

func TestOnAddPopulatesByTypeAndTarget(t *testing.T) {
	m := New()
	a := core.NewAtomId(1, 1)
	b := core.NewAtomId(2, 1)
	link := core.NewAtomId(3, 1)

	m.OnAdd(link, core.InheritanceLinkType, []core.AtomId{a, b})

	byType := m.ByType(core.InheritanceLinkType)
	if len(byType) != 1 || byType[0] != link {
		t.Errorf("ByType should return just the link, got %v", byType)
	}
	byTarget := m.ByTypeAndTarget(core.InheritanceLinkType, b)
	if len(byTarget) != 1 || byTarget[0] != link {
		t.Errorf("ByTypeAndTarget(b) should return just the link, got %v", byTarget)
	}
	if len(m.ByTypeAndTarget(core.InheritanceLinkType, core.NewAtomId(99, 1))) != 0 {
		t.Error("ByTypeAndTarget for an untouched target should be empty")
	}
}

func TestOnRemoveRetracts(t *testing.T) {
	m := New()
	a := core.NewAtomId(1, 1)
	link := core.NewAtomId(2, 1)

	m.OnAdd(link, core.InheritanceLinkType, []core.AtomId{a})
	m.OnRemove(link, core.InheritanceLinkType, []core.AtomId{a})

	if len(m.ByType(core.InheritanceLinkType)) != 0 {
		t.Error("OnRemove should retract the atom from ByType")
	}
	if len(m.ByTypeAndTarget(core.InheritanceLinkType, a)) != 0 {
		t.Error("OnRemove should retract the atom from ByTypeAndTarget")
	}
}

func TestClearEmptiesBothIndices(t *testing.T) {
	m := New()
	a := core.NewAtomId(1, 1)
	m.OnAdd(a, core.ConceptNodeType, nil)
	m.Clear()
	if len(m.ByType(core.ConceptNodeType)) != 0 {
		t.Error("Clear should empty ByType")
	}
}
