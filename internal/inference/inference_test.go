package inference

import (
	"context"
	"testing"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/config"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/matcher"
	"github.com/cogweave/hyperspace/internal/pattern"
)

func TestDeductionRuleChainsThroughSharedMiddleTerm(t *testing.T) {
	space := atomspace.New(nil)
	cat := space.AddNode(core.ConceptNodeType, "Cat", core.Simple(0.9))
	mammal := space.AddNode(core.ConceptNodeType, "Mammal", core.Simple(0.6))
	animal := space.AddNode(core.ConceptNodeType, "Animal", core.Simple(0.7))

	if _, err := space.AddLink(core.InheritanceLinkType, []core.Handle{cat, mammal}, core.Simple(0.9)); err != nil {
		t.Fatalf("AddLink(cat,mammal): %v", err)
	}
	if _, err := space.AddLink(core.InheritanceLinkType, []core.Handle{mammal, animal}, core.Simple(0.8)); err != nil {
		t.Fatalf("AddLink(mammal,animal): %v", err)
	}

	m := matcher.New(space, nil)
	reg := NewRegistry()
	reg.Add(NewDeductionRule())

	cfg := config.DefaultInferenceConfig()
	stats, err := ForwardChain(context.Background(), space, m, reg, cfg, nil)
	if err != nil {
		t.Fatalf("ForwardChain error: %v", err)
	}
	if stats.AtomsAdded == 0 {
		t.Fatal("expected deduction to add at least one new inheritance link")
	}

	if _, ok := space.GetLink(core.InheritanceLinkType, []core.Handle{cat, animal}); !ok {
		t.Error("expected a derived InheritanceLink(Cat, Animal)")
	}
}

func TestInductionRuleBuildsSimilarityFromSharedParent(t *testing.T) {
	space := atomspace.New(nil)
	cat := space.AddNode(core.ConceptNodeType, "Cat", core.Simple(0.9))
	dog := space.AddNode(core.ConceptNodeType, "Dog", core.Simple(0.9))
	animal := space.AddNode(core.ConceptNodeType, "Animal", core.Simple(0.7))

	space.AddLink(core.InheritanceLinkType, []core.Handle{cat, animal}, core.Simple(0.9))
	space.AddLink(core.InheritanceLinkType, []core.Handle{dog, animal}, core.Simple(0.85))

	m := matcher.New(space, nil)
	reg := NewRegistry()
	reg.Add(NewInductionRule())

	cfg := config.DefaultInferenceConfig()
	if _, err := ForwardChain(context.Background(), space, m, reg, cfg, nil); err != nil {
		t.Fatalf("ForwardChain error: %v", err)
	}

	lo, hi := cat, dog
	if dog.Id < cat.Id {
		lo, hi = dog, cat
	}
	if _, ok := space.GetLink(core.SimilarityLinkType, []core.Handle{lo, hi}); !ok {
		t.Error("expected a derived SimilarityLink between Cat and Dog")
	}
}

func TestBackwardChainProvesGoalViaDeduction(t *testing.T) {
	space := atomspace.New(nil)
	cat := space.AddNode(core.ConceptNodeType, "Cat", core.Simple(0.9))
	mammal := space.AddNode(core.ConceptNodeType, "Mammal", core.Simple(0.6))
	animal := space.AddNode(core.ConceptNodeType, "Animal", core.Simple(0.7))
	space.AddLink(core.InheritanceLinkType, []core.Handle{cat, mammal}, core.Simple(0.9))
	space.AddLink(core.InheritanceLinkType, []core.Handle{mammal, animal}, core.Simple(0.8))

	m := matcher.New(space, nil)
	reg := NewStandardRegistry()

	goal := pattern.New(pattern.LinkPattern(core.InheritanceLinkType, pattern.Ground(cat.Id), pattern.Ground(animal.Id)))
	proof, err := BackwardChain(context.Background(), space, m, reg, goal, config.DefaultInferenceConfig())
	if err != nil {
		t.Fatalf("BackwardChain error: %v", err)
	}
	if proof == nil {
		t.Fatal("expected a proof for Cat->Animal")
	}
}

func TestRegistryOrdersByDescendingPriority(t *testing.T) {
	reg := NewStandardRegistry()
	rules := reg.Rules()
	for i := 1; i < len(rules); i++ {
		if rules[i].Priority > rules[i-1].Priority {
			t.Errorf("rules not sorted by descending priority: %+v", rules)
		}
	}
}
