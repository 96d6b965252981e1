package core

import "testing"

func TestHashOutgoingOrderSensitive(t *testing.T) {
	a := HashOutgoing([]AtomId{1, 2, 3})
	b := HashOutgoing([]AtomId{3, 2, 1})
	if a == b {
		t.Error("HashOutgoing should be order-sensitive, got equal hashes for reversed sequences")
	}
}

func TestHashOutgoingDeterministic(t *testing.T) {
	ids := []AtomId{10, 20, 30}
	a := HashOutgoing(ids)
	b := HashOutgoing(ids)
	if a != b {
		t.Errorf("HashOutgoing not deterministic: %v != %v", a, b)
	}
}

func TestHashOutgoingEmpty(t *testing.T) {
	if HashOutgoing(nil) != 0 {
		t.Error("HashOutgoing(nil) should be the zero seed")
	}
}
