package attention

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/core"
)

// Agent is an autonomous maintenance task run periodically over a
// Bank, mirroring the teacher's cognitive-agent contract minus the
// tenant scoping this module has no notion of.
type Agent interface {
	Name() string
	Priority() int
	Run(ctx context.Context) error
	Stats() Stats
}

// Stats reports one agent's run history.
type Stats struct {
	RunCount  int64
	LastRun   time.Time
	TotalTime time.Duration
}

// base carries the bookkeeping every Agent implementation shares.
type base struct {
	name     string
	priority int
	mu       sync.RWMutex
	stats    Stats
}

func (b *base) Name() string     { return b.name }
func (b *base) Priority() int    { return b.priority }
func (b *base) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

func (b *base) record(start time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.RunCount++
	b.stats.LastRun = time.Now()
	b.stats.TotalTime += time.Since(start)
}

// ImportanceDiffusionAgent periodically spreads STI from every atom
// currently in the attentional focus to its graph neighbours.
type ImportanceDiffusionAgent struct {
	base
	space  *atomspace.AtomSpace
	bank   *Bank
	logger *zap.Logger
}

// NewImportanceDiffusionAgent creates an ImportanceDiffusionAgent over
// bank/space. A nil logger installs zap's no-op logger.
func NewImportanceDiffusionAgent(space *atomspace.AtomSpace, bank *Bank, logger *zap.Logger) *ImportanceDiffusionAgent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportanceDiffusionAgent{
		base:   base{name: "importance-diffusion", priority: 8},
		space:  space,
		bank:   bank,
		logger: logger,
	}
}

// Run spreads activation once across every live atom in the space.
func (a *ImportanceDiffusionAgent) Run(ctx context.Context) error {
	start := time.Now()
	defer a.record(start)

	var atoms []core.Handle
	a.space.ForEachAtom(func(h core.Handle) bool {
		atoms = append(atoms, h)
		return true
	})

	if err := a.bank.SpreadActivation(ctx, atoms); err != nil {
		return err
	}
	a.logger.Debug("importance diffusion cycle", zap.Int("atoms", len(atoms)))
	return nil
}

// ForgettingAgent periodically sweeps the space for atoms the bank
// marks for forgetting and removes them recursively, freeing the
// table slots they and every atom that depended on them occupied.
type ForgettingAgent struct {
	base
	space  *atomspace.AtomSpace
	bank   *Bank
	logger *zap.Logger
}

// NewForgettingAgent creates a ForgettingAgent over bank/space.
func NewForgettingAgent(space *atomspace.AtomSpace, bank *Bank, logger *zap.Logger) *ForgettingAgent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForgettingAgent{
		base:   base{name: "forgetting", priority: 2},
		space:  space,
		bank:   bank,
		logger: logger,
	}
}

// Run sweeps every live atom once, removing those marked for
// forgetting.
func (a *ForgettingAgent) Run(ctx context.Context) error {
	start := time.Now()
	defer a.record(start)

	var candidates []core.Handle
	a.space.ForEachAtom(func(h core.Handle) bool {
		if ctx.Err() != nil {
			return false
		}
		if a.bank.MarkForForgetting(h) {
			candidates = append(candidates, h)
		}
		return true
	})
	if ctx.Err() != nil {
		return core.ErrCancelled
	}

	removed := 0
	for _, h := range candidates {
		if a.space.Remove(h, true) {
			removed++
		}
	}
	a.logger.Debug("forgetting cycle", zap.Int("candidates", len(candidates)), zap.Int("removed", removed))
	return nil
}

// Scheduler runs a fixed set of Agents in priority order, the same
// round-robin shape as the teacher's AgentScheduler but synchronous —
// there is no cross-request concurrency to hide latency behind here,
// just a maintenance loop an embedder ticks on its own schedule.
type Scheduler struct {
	agents []Agent
}

// NewScheduler builds a Scheduler over agents, sorted by descending
// priority.
func NewScheduler(agents ...Agent) *Scheduler {
	ordered := append([]Agent(nil), agents...)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].Priority() > ordered[i].Priority() {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	return &Scheduler{agents: ordered}
}

// RunOnce runs every agent once, in priority order, stopping early if
// ctx is cancelled. The first error stops the sweep and is returned.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	for _, agent := range s.agents {
		if ctx.Err() != nil {
			return core.ErrCancelled
		}
		if err := agent.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Agents returns the scheduler's agents in run order.
func (s *Scheduler) Agents() []Agent {
	return append([]Agent(nil), s.agents...)
}
