package inference

import (
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/matcher"
	"github.com/cogweave/hyperspace/internal/pattern"
	"github.com/cogweave/hyperspace/internal/pln"
)

// NewStandardRegistry builds a Registry seeded with the three classic
// PLN rules, each packaged against the pattern matcher instead of
// scanning a flat atom slice: deduction (modus-ponens-style chaining
// through a shared middle term), induction (generalizing instances
// that share a common parent into a SimilarityLink), and abduction
// (hypothesizing an inheritance between two things that share a
// common consequent). Priorities mirror the relative trust classical
// PLN practice places in each: deduction highest, abduction lowest.
func NewStandardRegistry() *Registry {
	reg := NewRegistry()
	reg.Add(NewDeductionRule())
	reg.Add(NewInductionRule())
	reg.Add(NewAbductionRule())
	return reg
}

// NewDeductionRule builds the rule A->B, B->C |- A->C. Its premise
// matches a single InheritanceLink A->B; the formula then looks up
// every InheritanceLink with B as its source to find the second hop,
// so one premise match can yield several conclusions.
func NewDeductionRule() Rule {
	premise := pattern.New(
		pattern.LinkPattern(core.InheritanceLinkType, pattern.Var("A"), pattern.Var("B")),
		"A", "B",
	)
	conclusion := pattern.New(
		pattern.LinkPattern(core.InheritanceLinkType, pattern.Var("A"), pattern.Var("C")),
		"A", "C",
	)
	return Rule{
		Name:       "deduction",
		Priority:   10,
		Premise:    premise,
		Conclusion: conclusion,
		Formula: func(result matcher.Result, fc FormulaContext) []Conclusion {
			aId, ok := result.Binds["A"]
			if !ok {
				return nil
			}
			bId, ok := result.Binds["B"]
			if !ok {
				return nil
			}
			var out []Conclusion
			for _, link := range fc.Space.GetIncomingByType(core.Handle{Id: bId}, core.InheritanceLinkType) {
				outgoing := fc.Space.Outgoing(link)
				if len(outgoing) != 2 || outgoing[0].Id != bId {
					continue
				}
				cId := outgoing[1].Id
				if cId == aId {
					continue
				}
				ab := fc.TVLookup(result.Root)
				bc := fc.TVLookup(link.Id)
				bTV := fc.TVLookup(bId)
				tv := pln.Deduction(ab, bc, bTV)
				if tv.Confidence <= 0 {
					continue
				}
				out = append(out, Conclusion{
					Template: ConclusionTemplate{
						Type:     core.InheritanceLinkType,
						Outgoing: []TemplateRef{LiteralRef(aId), LiteralRef(cId)},
					},
					TV: tv,
				})
			}
			return out
		},
	}
}

// NewInductionRule builds generalization-from-shared-parent: whenever
// two things A1, A2 both inherit from the same B, conclude a
// SimilarityLink between A1 and A2. The conclusion's truth value
// combines both premises as conjunctive evidence (pln.And) rather than
// the fixed strength/confidence pair a flat atom scan would have to
// fall back to, now that the matcher gives us both premises' truth
// values directly.
func NewInductionRule() Rule {
	premise := pattern.New(
		pattern.LinkPattern(core.InheritanceLinkType, pattern.Var("A"), pattern.Var("B")),
		"A", "B",
	)
	conclusion := pattern.New(
		pattern.LinkPattern(core.SimilarityLinkType, pattern.Var("A"), pattern.Var("C")),
		"A", "C",
	)
	return Rule{
		Name:       "induction",
		Priority:   5,
		Premise:    premise,
		Conclusion: conclusion,
		Formula: func(result matcher.Result, fc FormulaContext) []Conclusion {
			aId, ok := result.Binds["A"]
			if !ok {
				return nil
			}
			bId, ok := result.Binds["B"]
			if !ok {
				return nil
			}
			var out []Conclusion
			for _, link := range fc.Space.GetIncomingByType(core.Handle{Id: bId}, core.InheritanceLinkType) {
				outgoing := fc.Space.Outgoing(link)
				if len(outgoing) != 2 || outgoing[1].Id != bId {
					continue
				}
				siblingId := outgoing[0].Id
				// Canonical ordering (siblingId > aId) so the pair fires
				// exactly once: this rule also matches with A and the
				// sibling swapped, which would otherwise emit the mirror
				// image link and double the work.
				if siblingId <= aId {
					continue
				}
				ab := fc.TVLookup(result.Root)
				siblingTV := fc.TVLookup(link.Id)
				tv := pln.And(ab, siblingTV)
				if tv.Confidence <= 0 {
					continue
				}
				out = append(out, Conclusion{
					Template: ConclusionTemplate{
						Type:     core.SimilarityLinkType,
						Outgoing: []TemplateRef{LiteralRef(aId), LiteralRef(siblingId)},
					},
					TV: tv,
				})
			}
			return out
		},
	}
}

// NewAbductionRule builds hypothesis generation: A->C, B->C |- A->B,
// running the shared consequent C through pln.Abduction.
func NewAbductionRule() Rule {
	premise := pattern.New(
		pattern.LinkPattern(core.InheritanceLinkType, pattern.Var("A"), pattern.Var("C")),
		"A", "C",
	)
	conclusion := pattern.New(
		pattern.LinkPattern(core.InheritanceLinkType, pattern.Var("A"), pattern.Var("B")),
		"A", "B",
	)
	return Rule{
		Name:       "abduction",
		Priority:   3,
		Premise:    premise,
		Conclusion: conclusion,
		Formula: func(result matcher.Result, fc FormulaContext) []Conclusion {
			aId, ok := result.Binds["A"]
			if !ok {
				return nil
			}
			cId, ok := result.Binds["C"]
			if !ok {
				return nil
			}
			var out []Conclusion
			for _, link := range fc.Space.GetIncomingByType(core.Handle{Id: cId}, core.InheritanceLinkType) {
				outgoing := fc.Space.Outgoing(link)
				if len(outgoing) != 2 || outgoing[1].Id != cId {
					continue
				}
				bId := outgoing[0].Id
				if bId == aId {
					continue
				}
				ac := fc.TVLookup(result.Root)
				bc := fc.TVLookup(link.Id)
				aTV := fc.TVLookup(aId)
				bTV := fc.TVLookup(bId)
				cTV := fc.TVLookup(cId)
				tv := pln.Abduction(ac, bc, aTV, bTV, cTV)
				if tv.Confidence <= 0 {
					continue
				}
				out = append(out, Conclusion{
					Template: ConclusionTemplate{
						Type:     core.InheritanceLinkType,
						Outgoing: []TemplateRef{LiteralRef(aId), LiteralRef(bId)},
					},
					TV: tv,
				})
			}
			return out
		},
	}
}
