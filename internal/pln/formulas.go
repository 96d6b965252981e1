// Package pln implements the probabilistic-logic formula family:
// revision, deduction, inversion, abduction, and the and/or/not
// connectives, each in a scalar and a vectorized form that must agree
// bit-identically on finite inputs. The vectorized forms are plain Go
// slice loops, not real SIMD — nothing in this module's dependency
// pack offers a vector-math library, and a loop over a slice is what
// the compiler auto-vectorizes anyway.
package pln

import "github.com/cogweave/hyperspace/internal/core"

const discount = 0.9

// Revision combines two truth values as independent evidence for the
// same statement: counts add, strength is the count-weighted average,
// confidence is reconstructed from the summed count.
func Revision(a, b core.TruthValue) core.TruthValue {
	ca, cb := a.Count(), b.Count()
	count := ca + cb
	if count == 0 {
		return core.TruthValue{}
	}
	strength := (a.Strength*ca + b.Strength*cb) / count
	return core.FromCount(core.Clamp01(strength), count)
}

// RevisionVector is Revision applied element-wise.
func RevisionVector(a, b []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(a))
	for i := range a {
		out[i] = Revision(a[i], b[i])
	}
	return out
}

// Deduction derives A->C's truth value from A->B (ab) and B->C (bc),
// given B's unconditional truth value b. Returns (0,0) where the
// denominator (1-s_B) approaches zero.
func Deduction(ab, bc, b core.TruthValue) core.TruthValue {
	if 1-b.Strength < 1e-9 {
		return core.TruthValue{}
	}
	sAC := ab.Strength*bc.Strength + (1-ab.Strength)*(b.Strength-b.Strength*bc.Strength)/(1-b.Strength)
	confidence := minOf(ab.Confidence, bc.Confidence, b.Confidence) * discount
	return core.TruthValue{Strength: core.Clamp01(sAC), Confidence: core.Clamp01(confidence)}
}

// DeductionVector is Deduction applied element-wise.
func DeductionVector(ab, bc, b []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(ab))
	for i := range ab {
		out[i] = Deduction(ab[i], bc[i], b[i])
	}
	return out
}

// Inversion applies Bayes' rule: derives B->A from A->B and the
// unconditional truth values of A and B. Returns (0,0) where s_B
// approaches zero.
func Inversion(ab, a, b core.TruthValue) core.TruthValue {
	if b.Strength < 1e-9 {
		return core.TruthValue{}
	}
	sBA := ab.Strength * a.Strength / b.Strength
	confidence := minOf(ab.Confidence, a.Confidence, b.Confidence) * discount
	return core.TruthValue{Strength: core.Clamp01(sBA), Confidence: core.Clamp01(confidence)}
}

// InversionVector is Inversion applied element-wise.
func InversionVector(ab, a, b []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(ab))
	for i := range ab {
		out[i] = Inversion(ab[i], a[i], b[i])
	}
	return out
}

// Abduction is dual to Deduction: from A->C (ac) and B->C (bc), plus
// the unconditional truth values of A, B, and C, derive A->B running
// through the common consequent C. Implemented as an inversion of C
// onto B (recovering B->C's complement relationship) composed with
// deduction's shape, following the same discount/degenerate-case
// handling as Deduction.
func Abduction(ac, bc, a, b, c core.TruthValue) core.TruthValue {
	if c.Strength < 1e-9 || 1-b.Strength < 1e-9 {
		return core.TruthValue{}
	}
	// B->C via inversion of C->B-shaped evidence, then deduction-shaped
	// combination mirroring A->C = A->B.B->C solved for A->B.
	sCB := bc.Strength * b.Strength / c.Strength
	sAB := (ac.Strength - (1-sCB)*(c.Strength-c.Strength*sCB)/maxFloat(1-c.Strength, 1e-9)) / maxFloat(sCB, 1e-9)
	confidence := minOf(ac.Confidence, bc.Confidence, a.Confidence, b.Confidence, c.Confidence) * discount * discount
	return core.TruthValue{Strength: core.Clamp01(sAB), Confidence: core.Clamp01(confidence)}
}

// AbductionVector is Abduction applied element-wise.
func AbductionVector(ac, bc, a, b, c []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(ac))
	for i := range ac {
		out[i] = Abduction(ac[i], bc[i], a[i], b[i], c[i])
	}
	return out
}

// And combines two truth values under an independence assumption:
// strengths multiply, confidence is the scaled minimum.
func And(a, b core.TruthValue) core.TruthValue {
	return core.TruthValue{
		Strength:   core.Clamp01(a.Strength * b.Strength),
		Confidence: core.Clamp01(minOf(a.Confidence, b.Confidence) * discount),
	}
}

// AndVector is And applied element-wise.
func AndVector(a, b []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(a))
	for i := range a {
		out[i] = And(a[i], b[i])
	}
	return out
}

// Or combines two truth values via inclusion-exclusion.
func Or(a, b core.TruthValue) core.TruthValue {
	return core.TruthValue{
		Strength:   core.Clamp01(a.Strength + b.Strength - a.Strength*b.Strength),
		Confidence: core.Clamp01(minOf(a.Confidence, b.Confidence) * discount),
	}
}

// OrVector is Or applied element-wise.
func OrVector(a, b []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(a))
	for i := range a {
		out[i] = Or(a[i], b[i])
	}
	return out
}

// Not negates strength and preserves confidence.
func Not(a core.TruthValue) core.TruthValue {
	return core.TruthValue{Strength: core.Clamp01(1 - a.Strength), Confidence: a.Confidence}
}

// NotVector is Not applied element-wise.
func NotVector(a []core.TruthValue) []core.TruthValue {
	out := make([]core.TruthValue, len(a))
	for i := range a {
		out[i] = Not(a[i])
	}
	return out
}

func minOf(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
