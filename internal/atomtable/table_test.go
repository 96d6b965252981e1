package atomtable

import (
	"testing"

	"github.com/cogweave/hyperspace/internal/core"
)

func TestAddNodeDedup(t *testing.T) {
	tbl := New()
	id1, created1 := tbl.AddNode(core.ConceptNodeType, "Cat", core.Simple(0.9))
	if !created1 {
		t.Fatal("first AddNode should create")
	}
	id2, created2 := tbl.AddNode(core.ConceptNodeType, "Cat", core.Simple(0.1))
	if created2 {
		t.Error("second AddNode with same (type, name) should not create")
	}
	if id1 != id2 {
		t.Errorf("dedup should return the same AtomId, got %v and %v", id1, id2)
	}
	// The first call's truth value wins; the second's is discarded.
	if tv := tbl.TV(id1); tv.Strength != 0.9 {
		t.Errorf("dedup hit should not overwrite truth value, got %v", tv.Strength)
	}
}

func TestAddNodeNormalizesName(t *testing.T) {
	tbl := New()
	// "Café" as a precomposed é (U+00E9) vs. an NFD e + combining acute
	// should dedup to the same node once normalized to NFC.
	precomposed := "Café"
	decomposed := "Café"

	id1, _ := tbl.AddNode(core.ConceptNodeType, precomposed, core.Simple(0.5))
	id2, created := tbl.AddNode(core.ConceptNodeType, decomposed, core.Simple(0.5))
	if created {
		t.Error("NFC/NFD variants of the same name should dedup")
	}
	if id1 != id2 {
		t.Error("NFC/NFD variants should resolve to the same AtomId")
	}
}

func TestAddLinkRejectsInvalidOutgoing(t *testing.T) {
	tbl := New()
	bogus := core.NewAtomId(999, 1)
	_, _, err := tbl.AddLink(core.InheritanceLinkType, []core.AtomId{bogus}, core.TruthValue{})
	if err != core.ErrInvalidReference {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestAddLinkDedupAndIncoming(t *testing.T) {
	tbl := New()
	a, _ := tbl.AddNode(core.ConceptNodeType, "A", core.Simple(0.5))
	b, _ := tbl.AddNode(core.ConceptNodeType, "B", core.Simple(0.5))

	l1, created1, err := tbl.AddLink(core.InheritanceLinkType, []core.AtomId{a, b}, core.Simple(0.8))
	if err != nil || !created1 {
		t.Fatalf("first AddLink failed: created=%v err=%v", created1, err)
	}
	l2, created2, err := tbl.AddLink(core.InheritanceLinkType, []core.AtomId{a, b}, core.Simple(0.1))
	if err != nil || created2 {
		t.Fatalf("second AddLink should dedup: created=%v err=%v", created2, err)
	}
	if l1 != l2 {
		t.Error("dedup should return the same link AtomId")
	}

	incoming := tbl.Incoming(a)
	if len(incoming) != 1 || incoming[0] != l1 {
		t.Errorf("A's incoming set should contain only the link, got %v", incoming)
	}
}

func TestRemoveNonRecursiveRefusesWithIncoming(t *testing.T) {
	tbl := New()
	a, _ := tbl.AddNode(core.ConceptNodeType, "A", core.Simple(0.5))
	b, _ := tbl.AddNode(core.ConceptNodeType, "B", core.Simple(0.5))
	tbl.AddLink(core.InheritanceLinkType, []core.AtomId{a, b}, core.Simple(0.8))

	_, ok := tbl.Remove(a, false)
	if ok {
		t.Error("non-recursive Remove should refuse an atom with a non-empty incoming set")
	}
	if !tbl.Contains(a) {
		t.Error("A should remain after a refused Remove")
	}
}

func TestRemoveRecursiveDropsIncoming(t *testing.T) {
	tbl := New()
	a, _ := tbl.AddNode(core.ConceptNodeType, "A", core.Simple(0.5))
	b, _ := tbl.AddNode(core.ConceptNodeType, "B", core.Simple(0.5))
	l, _, _ := tbl.AddLink(core.InheritanceLinkType, []core.AtomId{a, b}, core.Simple(0.8))

	removed, ok := tbl.Remove(a, true)
	if !ok {
		t.Fatal("recursive Remove should succeed")
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 atoms removed (A and the link), got %d: %+v", len(removed), removed)
	}
	if tbl.Contains(a) || tbl.Contains(l) {
		t.Error("both A and the link should be gone")
	}
	if tbl.Contains(b) {
		t.Error("B should survive (it was not in A's incoming chain)")
	}
}

func TestGenerationBumpInvalidatesOldHandle(t *testing.T) {
	tbl := New()
	a, _ := tbl.AddNode(core.ConceptNodeType, "A", core.Simple(0.5))
	tbl.Remove(a, false)

	reused, _ := tbl.AddNode(core.ConceptNodeType, "A2", core.Simple(0.5))
	if reused.Index() != a.Index() {
		// Slot reuse is not guaranteed on every run if the free stack
		// holds other slots, but with a single prior removal it is the
		// only free slot available.
		t.Skip("slot was not reused; nothing to assert")
	}
	if tbl.Contains(a) {
		t.Error("the stale AtomId should no longer be considered live even if its slot was reused")
	}
	if !tbl.Contains(reused) {
		t.Error("the freshly minted AtomId for the reused slot should be live")
	}
}

func TestLookupNodeMissDoesNotMutate(t *testing.T) {
	tbl := New()
	sizeBefore := tbl.Size()
	_, ok := tbl.LookupNode(core.ConceptNodeType, "Nonexistent")
	if ok {
		t.Error("LookupNode should report a miss for a name never added")
	}
	if tbl.Size() != sizeBefore {
		t.Error("LookupNode must not create an atom on a miss")
	}
}
