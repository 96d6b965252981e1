package core

import "testing"

func TestDisposable(t *testing.T) {
	av := Disposable()
	if !av.IsDisposable() {
		t.Error("Disposable() should itself be IsDisposable()")
	}
	if av.Protected() {
		t.Error("Disposable() should not be Protected()")
	}
}

func TestProtectedOverridesLowSTI(t *testing.T) {
	av := AttentionValue{STI: -500, VLTI: 1}
	if av.IsDisposable() {
		t.Error("non-zero VLTI should make an atom non-disposable regardless of STI")
	}
	if !av.Protected() {
		t.Error("non-zero VLTI should report Protected()")
	}
}

func TestPositiveSTINotDisposable(t *testing.T) {
	av := AttentionValue{STI: 10, VLTI: 0}
	if av.IsDisposable() {
		t.Error("positive STI should not be disposable even with VLTI == 0")
	}
}
