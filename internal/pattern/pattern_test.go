package pattern

import (
	"testing"

	"github.com/cogweave/hyperspace/internal/core"
)

func TestBindingSetBindConsistency(t *testing.T) {
	b := BindingSet{}
	b, ok := b.Bind("X", core.NewAtomId(1, 1))
	if !ok {
		t.Fatal("binding an unbound name should succeed")
	}
	if _, ok := b.Bind("X", core.NewAtomId(1, 1)); !ok {
		t.Error("rebinding X to the same id should succeed")
	}
	if _, ok := b.Bind("X", core.NewAtomId(2, 1)); ok {
		t.Error("rebinding X to a different id should fail")
	}
}

func TestBindingSetBindIsImmutable(t *testing.T) {
	b := BindingSet{}
	b2, _ := b.Bind("X", core.NewAtomId(1, 1))
	if len(b) != 0 {
		t.Error("Bind should not mutate the receiver")
	}
	if len(b2) != 1 {
		t.Error("Bind should return a new map with the binding added")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := BindingSet{"X": core.NewAtomId(1, 1)}
	clone := b.Clone()
	clone["Y"] = core.NewAtomId(2, 1)
	if _, ok := b["Y"]; ok {
		t.Error("mutating a clone should not affect the original")
	}
}
