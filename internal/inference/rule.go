// Package inference implements the forward-chaining and
// backward-chaining inference drivers over a Rule registry: each rule
// pairs a premise Pattern with a formula that computes zero or more
// conclusions from one premise match.
package inference

import (
	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/matcher"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// TemplateRef names one slot in a ConclusionTemplate's outgoing set:
// either a pattern variable (resolved against the match's bindings)
// or a fixed AtomId.
type TemplateRef struct {
	Variable string
	Literal  core.AtomId
}

// VarRef builds a TemplateRef that resolves to a bound variable.
func VarRef(name string) TemplateRef { return TemplateRef{Variable: name} }

// LiteralRef builds a TemplateRef that resolves to a fixed AtomId.
func LiteralRef(id core.AtomId) TemplateRef { return TemplateRef{Literal: id} }

// Resolve looks up ref's target AtomId in binds, reporting ok=false if
// it names an unbound variable.
func (ref TemplateRef) Resolve(binds pattern.BindingSet) (core.AtomId, bool) {
	if ref.Variable == "" {
		return ref.Literal, true
	}
	id, ok := binds[ref.Variable]
	return id, ok
}

// ConclusionTemplate describes the atom a rule's formula wants
// materialized: a link type over a sequence of outgoing refs, each
// resolved against a matcher.Result's bindings — or, for conclusions a
// formula computed from atoms it looked up itself rather than from
// the premise match's bindings, directly as literal ids via
// LiteralRef.
type ConclusionTemplate struct {
	Type     core.AtomType
	Outgoing []TemplateRef
}

// Conclusion pairs a ConclusionTemplate with the truth value to assign
// it once materialized.
type Conclusion struct {
	Template ConclusionTemplate
	TV       core.TruthValue
}

// FormulaContext gives a rule's formula the collaborators it needs to
// look beyond its own premise match — e.g. a second hop's outgoing
// links — the way the teacher's DeductionRule nested-loops over a
// second InheritanceLink once it has the first.
type FormulaContext struct {
	TVLookup func(core.AtomId) core.TruthValue
	Space    *atomspace.AtomSpace
	Matcher  *matcher.Matcher
}

// Formula computes zero or more conclusions from one premise match.
type Formula func(result matcher.Result, fc FormulaContext) []Conclusion

// Rule pairs a premise pattern with a priority and a conclusion
// formula. Name is used for logging and for backward-chaining proof
// trees. Conclusion describes the shape of atom this rule produces —
// used only by backward chaining to decide whether a rule is a
// candidate for proving a given goal; forward chaining only ever
// calls Formula.
type Rule struct {
	Name       string
	Priority   int
	Premise    pattern.Pattern
	Conclusion pattern.Pattern
	Formula    Formula
}

// conclusionType returns the AtomType a rule's conclusion pattern
// targets, for the coarse "does this rule even produce the right
// shape of atom" filter backward chaining uses before attempting to
// satisfy the rule's premise.
func conclusionType(p pattern.Pattern) (core.AtomType, bool) {
	switch v := p.Root.(type) {
	case pattern.Link:
		return v.Type, true
	case pattern.Typed:
		return v.Type, true
	default:
		return core.InvalidType, false
	}
}
