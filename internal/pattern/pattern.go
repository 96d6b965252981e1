// Package pattern defines the term tree the matcher walks: a closed
// family of Variable/Grounded/Typed/Link/And/Or/Not/Glob terms, plus
// the Pattern (term + declared variable names) and BindingSet types
// that carry match results.
package pattern

import "github.com/cogweave/hyperspace/internal/core"

// Term is the closed family of pattern terms. It is a tagged variant
// expressed as an interface with an unexported marker method — new
// implementations outside this package are not possible by design,
// matching the "closed family, dispatch on tag" design note this
// engine follows for both atoms and terms.
type Term interface {
	isTerm()
}

// Variable matches any atom, binding it to Name. TypeConstraint, if
// non-nil, restricts matches to that atom type.
type Variable struct {
	Name           string
	TypeConstraint *core.AtomType
}

func (Variable) isTerm() {}

// Var is a convenience constructor for an untyped Variable term.
func Var(name string) Variable { return Variable{Name: name} }

// TypedVar is a convenience constructor for a type-constrained
// Variable term.
func TypedVar(name string, typ core.AtomType) Variable {
	t := typ
	return Variable{Name: name, TypeConstraint: &t}
}

// Grounded matches exactly the atom identified by Id.
type Grounded struct {
	Id core.AtomId
}

func (Grounded) isTerm() {}

// Ground is a convenience constructor for a Grounded term.
func Ground(id core.AtomId) Grounded { return Grounded{Id: id} }

// Typed matches any atom of the given type (node or link, no further
// structural constraint).
type Typed struct {
	Type core.AtomType
}

func (Typed) isTerm() {}

// OfType is a convenience constructor for a Typed term.
func OfType(typ core.AtomType) Typed { return Typed{Type: typ} }

// Link matches a link atom of Type whose outgoing sequence matches
// Outgoing term-by-term (arity must match exactly unless one of the
// sub-terms is a Glob).
type Link struct {
	Type     core.AtomType
	Outgoing []Term
}

func (Link) isTerm() {}

// LinkPattern is a convenience constructor for a Link term.
func LinkPattern(typ core.AtomType, outgoing ...Term) Link {
	return Link{Type: typ, Outgoing: outgoing}
}

// And succeeds only where every sub-term succeeds with a jointly
// consistent binding set.
type And struct {
	Terms []Term
}

func (And) isTerm() {}

// Or succeeds wherever any sub-term succeeds (results from each
// sub-term are produced in declaration order, not interleaved).
type Or struct {
	Terms []Term
}

func (Or) isTerm() {}

// Not succeeds (with no new bindings) iff its sub-term produces no
// match at all in the current binding context.
type Not struct {
	Term Term
}

func (Not) isTerm() {}

// Glob consumes between MinCount and MaxCount contiguous positions in
// the enclosing link's outgoing set and binds the whole span to Name.
type Glob struct {
	Name     string
	MinCount int
	MaxCount int
}

func (Glob) isTerm() {}

// GlobTerm is a convenience constructor for a Glob term.
func GlobTerm(name string, min, max int) Glob {
	return Glob{Name: name, MinCount: min, MaxCount: max}
}

// Pattern pairs a root term with the set of variable names whose
// bindings should be reported in a match Result; variables bound only
// internally (e.g. to express a shared sub-structure) can be omitted.
type Pattern struct {
	Root      Term
	Variables []string
}

// New builds a Pattern over root, reporting bindings for the named
// variables.
func New(root Term, variables ...string) Pattern {
	return Pattern{Root: root, Variables: variables}
}

// BindingSet maps a variable name to the AtomId it is bound to within
// one match. Binding is consistent: attempting to rebind a name to a
// different id fails the branch that attempted it (see
// BindingSet.Bind).
type BindingSet map[string]core.AtomId

// Bind returns a new BindingSet with name bound to id, and true, if
// name is unbound or already bound to id; otherwise returns the
// receiver unchanged and false.
func (b BindingSet) Bind(name string, id core.AtomId) (BindingSet, bool) {
	if existing, ok := b[name]; ok {
		return b, existing == id
	}
	next := make(BindingSet, len(b)+1)
	for k, v := range b {
		next[k] = v
	}
	next[name] = id
	return next, true
}

// Clone returns a shallow copy of b.
func (b BindingSet) Clone() BindingSet {
	next := make(BindingSet, len(b))
	for k, v := range b {
		next[k] = v
	}
	return next
}
