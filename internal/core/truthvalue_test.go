package core

import "testing"

func TestFromCountRoundTrip(t *testing.T) {
	tv := Simple(0.75)
	count := tv.Count()

	back := FromCount(tv.Strength, count)
	if back.Strength != tv.Strength {
		t.Errorf("strength round-trip: got %v, want %v", back.Strength, tv.Strength)
	}
	if diff := back.Confidence - tv.Confidence; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence round-trip: got %v, want %v", back.Confidence, tv.Confidence)
	}
}

func TestCountConfidenceBijection(t *testing.T) {
	for _, count := range []float64{0, 1, 20, 100, 1000} {
		tv := FromCount(0.5, count)
		got := tv.Count()
		if diff := got - count; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Count(FromCount(0.5, %v)) = %v, want %v", count, got, count)
		}
	}
}

func TestIsTrue(t *testing.T) {
	cases := []struct {
		tv        TruthValue
		threshold []float64
		want      bool
	}{
		{TruthValue{Strength: 0.6, Confidence: 0.9}, nil, true},
		{TruthValue{Strength: 0.4, Confidence: 0.9}, nil, false},
		{TruthValue{Strength: 0.3, Confidence: 0.9}, []float64{0.2}, true},
	}
	for _, c := range cases {
		if got := c.tv.IsTrue(c.threshold...); got != c.want {
			t.Errorf("IsTrue(%+v, %v) = %v, want %v", c.tv, c.threshold, got, c.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 {
		t.Error("Clamp01(-0.5) should clamp to 0")
	}
	if Clamp01(1.5) != 1 {
		t.Error("Clamp01(1.5) should clamp to 1")
	}
	if Clamp01(0.3) != 0.3 {
		t.Error("Clamp01(0.3) should be unchanged")
	}
}
