package inference

import (
	"context"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/config"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/matcher"
	"github.com/cogweave/hyperspace/internal/pattern"
)

// Proof is a backward-chaining proof tree: either a leaf (the goal
// already held as a fact, Rule == "") or a node recording which rule
// fired and the premise proof that justified firing it.
type Proof struct {
	Goal    matcher.Result
	Rule    string
	Premise *Proof
}

// BackwardChain recursively decomposes goal into sub-goals via rules
// whose conclusion could produce an atom of goal's shape, bottomed
// out by direct matches against the live AtomSpace. cfg.MaxIterations
// bounds recursion depth (there being no natural "iteration" concept
// in a single top-down proof search).
func BackwardChain(ctx context.Context, space *atomspace.AtomSpace, m *matcher.Matcher, reg *Registry, goal pattern.Pattern, cfg config.InferenceConfig) (*Proof, error) {
	maxDepth := cfg.MaxIterations
	if maxDepth <= 0 {
		maxDepth = 50
	}
	fc := FormulaContext{
		TVLookup: func(id core.AtomId) core.TruthValue { return space.GetTV(core.Handle{Id: id}) },
		Space:    space,
		Matcher:  m,
	}
	return backwardChainDepth(ctx, space, m, reg, goal, maxDepth, fc)
}

func backwardChainDepth(ctx context.Context, space *atomspace.AtomSpace, m *matcher.Matcher, reg *Registry, goal pattern.Pattern, depth int, fc FormulaContext) (*Proof, error) {
	if ctx.Err() != nil {
		return nil, core.ErrCancelled
	}

	if result, ok, err := m.FindFirst(ctx, goal); err != nil {
		return nil, err
	} else if ok {
		return &Proof{Goal: result}, nil
	}

	if depth <= 0 {
		return nil, core.ErrBudgetExceeded
	}

	wantType, ok := conclusionType(goal)
	if !ok {
		return nil, core.ErrNotFound
	}

	for _, rule := range reg.Rules() {
		ruleType, ok := conclusionType(rule.Conclusion)
		if !ok || ruleType != wantType {
			continue
		}
		premiseProof, err := backwardChainDepth(ctx, space, m, reg, rule.Premise, depth-1, fc)
		if err != nil || premiseProof == nil {
			continue
		}
		result, matched, err := m.FindFirst(ctx, rule.Premise)
		if err != nil || !matched {
			continue
		}
		for _, c := range rule.Formula(result, fc) {
			outgoing, ok := resolveOutgoing(c.Template, result)
			if !ok {
				continue
			}
			if _, _, _, err := addOrRevise(space, c.Template.Type, outgoing, c.TV); err != nil {
				continue
			}
		}
		if goalResult, found, err := m.FindFirst(ctx, goal); err == nil && found {
			return &Proof{Goal: goalResult, Rule: rule.Name, Premise: premiseProof}, nil
		}
	}

	return nil, core.ErrNotFound
}
