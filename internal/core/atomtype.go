package core

// AtomType is a closed enumeration partitioned into node types and
// link types. Values below linkTypeBoundary are node types; values at
// or above it are link types. UserDefinedType is the extension
// threshold: an embedding application may register additional types
// starting at UserDefinedType without colliding with the built-in
// registry.
type AtomType uint16

const (
	InvalidType AtomType = iota

	// Node types.
	NodeBaseType
	ConceptNodeType
	PredicateNodeType
	VariableNodeType
	NumberNodeType
	TypeNodeType
	GroundedObjectNodeType
	AnchorNodeType
	SchemaNodeType
	GroundedSchemaNodeType
	DefinedSchemaNodeType

	linkTypeBoundary // marks the start of link types; not itself assignable

	// Link types.
	LinkBaseType
	OrderedLinkType
	UnorderedLinkType
	AndLinkType
	OrLinkType
	NotLinkType
	InheritanceLinkType
	SimilarityLinkType
	SubsetLinkType
	IntensionalInheritanceLinkType
	EvaluationLinkType
	ExecutionLinkType
	ExecutionOutputLinkType
	ScopeLinkType
	BindLinkType
	GetLinkType
	PutLinkType
	LambdaLinkType
	ContextLinkType
	StateLinkType
	DefineLinkType
	AtTimeLinkType
	TimeIntervalLinkType
	BeforeLinkType
	OverlapsLinkType
	ImplicationLinkType
	EquivalenceLinkType
	ForAllLinkType
	ExistsLinkType
	AverageLinkType

	// UserDefinedType is the first id an embedder may safely assign to
	// its own extension types.
	UserDefinedType AtomType = 1000
)

var typeNames = map[AtomType]string{
	InvalidType:                    "Invalid",
	NodeBaseType:                   "Node",
	ConceptNodeType:                "ConceptNode",
	PredicateNodeType:              "PredicateNode",
	VariableNodeType:               "VariableNode",
	NumberNodeType:                 "NumberNode",
	TypeNodeType:                   "TypeNode",
	GroundedObjectNodeType:         "GroundedObjectNode",
	AnchorNodeType:                 "AnchorNode",
	SchemaNodeType:                 "SchemaNode",
	GroundedSchemaNodeType:         "GroundedSchemaNode",
	DefinedSchemaNodeType:          "DefinedSchemaNode",
	LinkBaseType:                   "Link",
	OrderedLinkType:                "OrderedLink",
	UnorderedLinkType:              "UnorderedLink",
	AndLinkType:                    "AndLink",
	OrLinkType:                     "OrLink",
	NotLinkType:                    "NotLink",
	InheritanceLinkType:            "InheritanceLink",
	SimilarityLinkType:             "SimilarityLink",
	SubsetLinkType:                 "SubsetLink",
	IntensionalInheritanceLinkType: "IntensionalInheritanceLink",
	EvaluationLinkType:             "EvaluationLink",
	ExecutionLinkType:              "ExecutionLink",
	ExecutionOutputLinkType:        "ExecutionOutputLink",
	ScopeLinkType:                  "ScopeLink",
	BindLinkType:                   "BindLink",
	GetLinkType:                    "GetLink",
	PutLinkType:                    "PutLink",
	LambdaLinkType:                 "LambdaLink",
	ContextLinkType:                "ContextLink",
	StateLinkType:                  "StateLink",
	DefineLinkType:                 "DefineLink",
	AtTimeLinkType:                 "AtTimeLink",
	TimeIntervalLinkType:           "TimeIntervalLink",
	BeforeLinkType:                 "BeforeLink",
	OverlapsLinkType:               "OverlapsLink",
	ImplicationLinkType:            "ImplicationLink",
	EquivalenceLinkType:            "EquivalenceLink",
	ForAllLinkType:                 "ForAllLink",
	ExistsLinkType:                 "ExistsLink",
	AverageLinkType:                "AverageLink",
}

var namesToType = func() map[string]AtomType {
	m := make(map[string]AtomType, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// IsNode reports whether t falls in the node partition.
func (t AtomType) IsNode() bool {
	return t > InvalidType && t < linkTypeBoundary
}

// IsLink reports whether t falls in the built-in link partition.
// Extension types at or above UserDefinedType are not known here —
// their node/link partition lives in whichever TypeRegistry they were
// registered into; use TypeRegistry.IsLink to account for those.
func (t AtomType) IsLink() bool {
	return t > linkTypeBoundary && t < UserDefinedType
}

// TypeName returns the canonical built-in name of t, or "UserDefinedType"
// for an extension type not known to this function. Extension types
// registered into a TypeRegistry should be looked up through it
// instead, since the name they were registered under lives there.
func TypeName(t AtomType) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	if t >= UserDefinedType {
		return "UserDefinedType"
	}
	return "Invalid"
}

// TypeFromName looks up the AtomType registered under name among the
// built-in types, reporting ok=false if no built-in type carries that
// name. Extension-type names live in a TypeRegistry.
func TypeFromName(name string) (AtomType, bool) {
	t, ok := namesToType[name]
	return t, ok
}

// TypeRegistry is a per-AtomSpace side table of embedder-defined
// extension types at or above UserDefinedType. The built-in type
// enumeration above is immutable, build-time data shared by every
// AtomSpace; a TypeRegistry is where one particular AtomSpace's
// runtime extensions live, so two AtomSpaces in the same process can
// register the same UserDefinedType id with different meanings
// without colliding.
type TypeRegistry struct {
	names      map[AtomType]string
	namesToIds map[string]AtomType
	linkTypes  map[AtomType]bool
}

// NewTypeRegistry returns an empty extension-type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		names:      make(map[AtomType]string),
		namesToIds: make(map[string]AtomType),
		linkTypes:  make(map[AtomType]bool),
	}
}

// Register extends r with an embedder-defined type at or above
// UserDefinedType. isLink distinguishes the node/link partition for
// the new type.
func (r *TypeRegistry) Register(t AtomType, name string, isLink bool) {
	if t < UserDefinedType {
		panic("core: TypeRegistry.Register requires t >= UserDefinedType")
	}
	r.names[t] = name
	r.namesToIds[name] = t
	if isLink {
		r.linkTypes[t] = true
	}
}

// IsLink reports whether t falls in the link partition, consulting
// both the built-in enumeration and r's own registered extensions.
func (r *TypeRegistry) IsLink(t AtomType) bool {
	if t.IsLink() {
		return true
	}
	return t >= UserDefinedType && r.linkTypes[t]
}

// TypeName returns t's name, preferring the built-in registry and
// falling back to r's extensions, then "UserDefinedType" for an
// unregistered extension id.
func (r *TypeRegistry) TypeName(t AtomType) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	if n, ok := r.names[t]; ok {
		return n
	}
	if t >= UserDefinedType {
		return "UserDefinedType"
	}
	return "Invalid"
}

// TypeFromName looks up the AtomType registered under name, checking
// the built-in registry first and then r's own extensions.
func (r *TypeRegistry) TypeFromName(name string) (AtomType, bool) {
	if t, ok := namesToType[name]; ok {
		return t, true
	}
	t, ok := r.namesToIds[name]
	return t, ok
}
