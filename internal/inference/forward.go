package inference

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/config"
	"github.com/cogweave/hyperspace/internal/core"
	"github.com/cogweave/hyperspace/internal/matcher"
	"github.com/cogweave/hyperspace/internal/pln"
)

// Termination names why a forward-chaining run stopped.
type Termination int

const (
	Converged Termination = iota
	BudgetExceeded
	Cancelled
)

// Stats summarizes one forward-chaining run, tagged with a UUID so
// separate runs are distinguishable in logs.
type Stats struct {
	RunID        uuid.UUID
	Iterations   int
	AtomsAdded   int
	AtomsRevised int
	Terminated   Termination
}

// ForwardChain iterates every registered rule to a fixed point (no new
// atom added and no truth value moved by more than cfg.Epsilon) or
// until cfg.MaxIterations/cfg.Deadline is exhausted. Each iteration
// applies all rules concurrently via an errgroup, bounded by the
// atoms a single premise match can produce.
func ForwardChain(ctx context.Context, space *atomspace.AtomSpace, m *matcher.Matcher, reg *Registry, cfg config.InferenceConfig, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stats := Stats{RunID: uuid.New()}

	if cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}

	fc := FormulaContext{
		TVLookup: func(id core.AtomId) core.TruthValue { return space.GetTV(core.Handle{Id: id}) },
		Space:    space,
		Matcher:  m,
	}

	rules := reg.Rules()
	for {
		if ctx.Err() != nil {
			stats.Terminated = Cancelled
			return stats, core.ErrCancelled
		}
		if cfg.MaxIterations > 0 && stats.Iterations >= cfg.MaxIterations {
			stats.Terminated = BudgetExceeded
			return stats, core.ErrBudgetExceeded
		}

		var mu sync.Mutex
		addedThisRound := 0
		revisedThisRound := 0
		maxDelta := 0.0

		g, gctx := errgroup.WithContext(ctx)
		for _, rule := range rules {
			rule := rule
			g.Go(func() error {
				results, err := m.FindAll(gctx, rule.Premise, matcher.Config{DeterministicOrder: true})
				if err != nil {
					return err
				}
				for _, r := range results {
					for _, c := range rule.Formula(r, fc) {
						outgoing, ok := resolveOutgoing(c.Template, r)
						if !ok {
							continue
						}
						added, revised, delta, err := addOrRevise(space, c.Template.Type, outgoing, c.TV)
						if err != nil {
							continue
						}
						mu.Lock()
						if added {
							addedThisRound++
						}
						if revised {
							revisedThisRound++
							if delta > maxDelta {
								maxDelta = delta
							}
						}
						mu.Unlock()
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			stats.Terminated = Cancelled
			return stats, err
		}

		stats.Iterations++
		stats.AtomsAdded += addedThisRound
		stats.AtomsRevised += revisedThisRound
		logger.Debug("forward chain iteration",
			zap.String("run", stats.RunID.String()),
			zap.Int("iteration", stats.Iterations),
			zap.Int("added", addedThisRound),
			zap.Int("revised", revisedThisRound),
		)

		if addedThisRound == 0 && maxDelta <= cfg.Epsilon {
			stats.Terminated = Converged
			return stats, nil
		}
	}
}

func resolveOutgoing(tmpl ConclusionTemplate, r matcher.Result) ([]core.Handle, bool) {
	outgoing := make([]core.Handle, len(tmpl.Outgoing))
	for i, ref := range tmpl.Outgoing {
		id, ok := ref.Resolve(r.Binds)
		if !ok {
			return nil, false
		}
		outgoing[i] = core.Handle{Id: id}
	}
	return outgoing, true
}

// addOrRevise materializes (typ, outgoing) with truth value tv: if the
// atom already exists, its truth value is revised (combined as
// independent evidence) rather than overwritten; otherwise it is
// created fresh with tv.
func addOrRevise(space *atomspace.AtomSpace, typ core.AtomType, outgoing []core.Handle, tv core.TruthValue) (added, revised bool, delta float64, err error) {
	if existing, ok := space.GetLink(typ, outgoing); ok {
		oldTV := space.GetTV(existing)
		newTV := pln.Revision(oldTV, tv)
		space.SetTV(existing, newTV)
		delta = math.Abs(newTV.Strength-oldTV.Strength) + math.Abs(newTV.Confidence-oldTV.Confidence)
		return false, true, delta, nil
	}
	if _, err := space.AddLink(typ, outgoing, tv); err != nil {
		return false, false, 0, err
	}
	return true, false, 0, nil
}
