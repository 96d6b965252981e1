package core

import "testing"

func TestNodeLinkPartition(t *testing.T) {
	if !ConceptNodeType.IsNode() {
		t.Error("ConceptNodeType should be a node type")
	}
	if ConceptNodeType.IsLink() {
		t.Error("ConceptNodeType should not be a link type")
	}
	if !InheritanceLinkType.IsLink() {
		t.Error("InheritanceLinkType should be a link type")
	}
	if InheritanceLinkType.IsNode() {
		t.Error("InheritanceLinkType should not be a node type")
	}
}

func TestTypeNameRoundTrip(t *testing.T) {
	for _, typ := range []AtomType{ConceptNodeType, PredicateNodeType, InheritanceLinkType, SimilarityLinkType} {
		name := TypeName(typ)
		got, ok := TypeFromName(name)
		if !ok {
			t.Fatalf("TypeFromName(%q) not found", name)
		}
		if got != typ {
			t.Errorf("TypeFromName(TypeName(%v)) = %v, want %v", typ, got, typ)
		}
	}
}

func TestRegisterUserDefinedType(t *testing.T) {
	custom := UserDefinedType + 1
	reg := NewTypeRegistry()
	reg.Register(custom, "MyCustomLink", true)

	if !reg.IsLink(custom) {
		t.Error("registered user-defined link type should report IsLink() on its registry")
	}
	if reg.TypeName(custom) != "MyCustomLink" {
		t.Errorf("reg.TypeName(custom) = %q, want MyCustomLink", reg.TypeName(custom))
	}
	got, ok := reg.TypeFromName("MyCustomLink")
	if !ok || got != custom {
		t.Errorf("reg.TypeFromName(MyCustomLink) = (%v, %v), want (%v, true)", got, ok, custom)
	}
}

func TestTypeRegistryIsolatedAcrossInstances(t *testing.T) {
	custom := UserDefinedType + 2
	a := NewTypeRegistry()
	b := NewTypeRegistry()
	a.Register(custom, "OnlyInA", true)

	if !a.IsLink(custom) {
		t.Error("a should see its own registration")
	}
	if b.IsLink(custom) {
		t.Error("registering a type in one TypeRegistry must not leak into another")
	}
	if b.TypeName(custom) != "UserDefinedType" {
		t.Errorf("b.TypeName(custom) = %q, want UserDefinedType (unregistered there)", b.TypeName(custom))
	}
}

func TestUnregisteredUserDefinedTypeName(t *testing.T) {
	unregistered := UserDefinedType + 999
	if TypeName(unregistered) != "UserDefinedType" {
		t.Errorf("TypeName(unregistered) = %q, want UserDefinedType", TypeName(unregistered))
	}
}
