package pln

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cogweave/hyperspace/internal/core"
)

func TestRevisionIsCommutative(t *testing.T) {
	a := core.TruthValue{Strength: 0.6, Confidence: 0.8}
	b := core.TruthValue{Strength: 0.3, Confidence: 0.5}

	ab := Revision(a, b)
	ba := Revision(b, a)

	assert.InDelta(t, ab.Strength, ba.Strength, 1e-9)
	assert.InDelta(t, ab.Confidence, ba.Confidence, 1e-9)
}

func TestRevisionOfZeroConfidenceIsNoOp(t *testing.T) {
	a := core.TruthValue{Strength: 0.5, Confidence: 0}
	b := core.TruthValue{Strength: 0.9, Confidence: 0.7}

	got := Revision(a, b)
	assert.InDelta(t, b.Strength, got.Strength, 1e-9)
}

func TestDeductionDegenerateBWhenConfidentlyTrue(t *testing.T) {
	ab := core.TruthValue{Strength: 0.9, Confidence: 0.9}
	bc := core.TruthValue{Strength: 0.8, Confidence: 0.9}
	b := core.TruthValue{Strength: 1.0, Confidence: 0.9}

	got := Deduction(ab, bc, b)
	assert.Equal(t, core.TruthValue{}, got, "deduction should degenerate to the zero TV when 1-s_B is ~0")
}

func TestScalarVectorAgreement(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		tvGen := rapid.Custom(func(rt *rapid.T) core.TruthValue {
			return core.TruthValue{
				Strength:   rapid.Float64Range(0, 1).Draw(rt, "s"),
				Confidence: rapid.Float64Range(0, 1).Draw(rt, "c"),
			}
		})

		ab := make([]core.TruthValue, n)
		bc := make([]core.TruthValue, n)
		bv := make([]core.TruthValue, n)
		for i := 0; i < n; i++ {
			ab[i] = tvGen.Draw(rt, "ab")
			bc[i] = tvGen.Draw(rt, "bc")
			bv[i] = tvGen.Draw(rt, "b")
		}

		scalarOut := make([]core.TruthValue, n)
		for i := 0; i < n; i++ {
			scalarOut[i] = Deduction(ab[i], bc[i], bv[i])
		}
		vectorOut := DeductionVector(ab, bc, bv)

		assert.Equal(t, scalarOut, vectorOut, "Deduction and DeductionVector must agree element-wise")
	})
}

func TestAndOrNotBasics(t *testing.T) {
	tv := core.TruthValue{Strength: 0.8, Confidence: 0.9}

	notTV := Not(tv)
	assert.InDelta(t, 1-tv.Strength, notTV.Strength, 1e-9)
	assert.InDelta(t, tv.Confidence, notTV.Confidence, 1e-9)

	andTV := And(tv, tv)
	assert.InDelta(t, tv.Strength*tv.Strength, andTV.Strength, 1e-9)

	orTV := Or(tv, core.TruthValue{Strength: 0, Confidence: 0.9})
	assert.InDelta(t, tv.Strength, orTV.Strength, 1e-9)
}
