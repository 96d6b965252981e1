// Package attention implements the economic attention bank (ECAN):
// short- and long-term importance funds that atoms draw stimulus from
// and pay rent back into, diffusion of short-term importance across
// graph neighbours, and the forgetting criterion that lets an embedder
// reclaim atoms that have become both unimportant and disposable.
package attention

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cogweave/hyperspace/internal/atomspace"
	"github.com/cogweave/hyperspace/internal/config"
	"github.com/cogweave/hyperspace/internal/core"
)

// Bank is the economic attention bank over a single AtomSpace. It owns
// two finite funds (short-term and long-term importance) that atoms'
// AttentionValues are drawn from and returned to, so the bank's own
// bookkeeping — not the atoms themselves — is what a caller should
// inspect to confirm STI conservation.
type Bank struct {
	mu       sync.Mutex
	space    *atomspace.AtomSpace
	cfg      config.ECANConfig
	logger   *zap.Logger
	stiFunds float64
	ltiFunds float64
}

// New creates a Bank over space, seeded with cfg's initial fund sizes.
func New(space *atomspace.AtomSpace, cfg config.ECANConfig, logger *zap.Logger) *Bank {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bank{
		space:    space,
		cfg:      cfg,
		logger:   logger,
		stiFunds: cfg.InitialSTIFunds,
		ltiFunds: cfg.InitialLTIFunds,
	}
}

// STIFunds returns the bank's current short-term importance reserve.
func (b *Bank) STIFunds() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stiFunds
}

// LTIFunds returns the bank's current long-term importance reserve.
func (b *Bank) LTIFunds() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ltiFunds
}

// AddSTIFunds adds amount (which may be negative) to the bank's
// short-term reserve directly, bypassing any atom — used to seed the
// bank or to account for STI entering/leaving the system at its edges.
func (b *Bank) AddSTIFunds(amount float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stiFunds += amount
}

// AddLTIFunds is AddSTIFunds for the long-term reserve.
func (b *Bank) AddLTIFunds(amount float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ltiFunds += amount
}

// Stimulate pays amount of STI from the bank's reserve directly onto
// h's AttentionValue, the bank's side of an external signal ("this
// atom was just useful") deciding to reward it.
func (b *Bank) Stimulate(h core.Handle, amount float64) {
	b.mu.Lock()
	b.stiFunds -= amount
	b.mu.Unlock()

	av := b.space.GetAV(h)
	av.STI += amount
	b.space.SetAV(h, av)
}

// TransferSTI moves amount of STI directly from one atom to another,
// without passing through the bank's reserve — the mechanism
// SpreadActivation uses so activation diffusing through the graph
// never touches the funds that Stimulate and UpdateCycle account
// against.
func (b *Bank) TransferSTI(from, to core.Handle, amount float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fromAV := b.space.GetAV(from)
	fromAV.STI -= amount
	b.space.SetAV(from, fromAV)

	toAV := b.space.GetAV(to)
	toAV.STI += amount
	b.space.SetAV(to, toAV)
}

// InAttentionalFocus reports whether h's STI is at or above the
// bank's attentional-focus boundary.
func (b *Bank) InAttentionalFocus(h core.Handle) bool {
	return b.space.GetAV(h).STI >= b.cfg.AFBoundary
}

// MarkForForgetting reports whether h is both unimportant (STI at or
// below ForgettingThreshold) and disposable (VLTI == 0, i.e. nothing
// has asked that it be protected from removal).
func (b *Bank) MarkForForgetting(h core.Handle) bool {
	av := b.space.GetAV(h)
	return av.STI <= b.cfg.ForgettingThreshold && av.IsDisposable()
}

// SpreadActivation diffuses each atom's STI surplus above the bank's
// attentional-focus boundary to its graph neighbours (an atom's
// incoming links and a link's outgoing targets): a SpreadRate
// fraction of the surplus leaves the atom, split evenly among its
// neighbours. Atoms are processed concurrently via an errgroup since
// each atom's spread only touches its own and its neighbours'
// AttentionValues — TransferSTI holds the bank's lock for each
// pairwise move, which is what keeps concurrent spreads from
// corrupting each other's bookkeeping, not a global lock over the
// whole pass.
func (b *Bank) SpreadActivation(ctx context.Context, atoms []core.Handle) error {
	g, _ := errgroup.WithContext(ctx)
	for _, h := range atoms {
		h := h
		g.Go(func() error {
			if ctx.Err() != nil {
				return core.ErrCancelled
			}
			av := b.space.GetAV(h)
			surplus := av.STI - b.cfg.AFBoundary
			if surplus <= 0 {
				return nil
			}
			neighbours := b.neighboursOf(h)
			if len(neighbours) == 0 {
				return nil
			}
			share := surplus * b.cfg.SpreadRate / float64(len(neighbours))
			for _, n := range neighbours {
				b.TransferSTI(h, n, share)
			}
			return nil
		})
	}
	return g.Wait()
}

// neighboursOf returns h's immediate graph neighbours for spreading
// purposes: its incoming links if h is a node/link target, or its own
// outgoing targets if h is a link.
func (b *Bank) neighboursOf(h core.Handle) []core.Handle {
	neighbours := append([]core.Handle(nil), b.space.GetIncoming(h)...)
	if b.space.IsLinkType(b.space.Type(h)) {
		neighbours = append(neighbours, b.space.Outgoing(h)...)
	}
	return neighbours
}

// CycleStats summarizes one UpdateCycle pass.
type CycleStats struct {
	RentCollected float64
	WagesPaid     float64
	AtomsAged     int
}

// UpdateCycle runs one economic cycle over atoms: each atom pays rent
// (a RentRate fraction of its STI, returned to the bank's reserve),
// the bank pays a flat wage back out of the reserve to atoms whose STI
// is still in the attentional focus after rent (rewarding atoms that
// stayed important), and every atom's STI surplus above zero ages a
// fraction (AgeRate) of itself into LTI, modeling short-term
// importance gradually consolidating into long-term importance.
func (b *Bank) UpdateCycle(atoms []core.Handle) CycleStats {
	var stats CycleStats
	for _, h := range atoms {
		av := b.space.GetAV(h)

		rent := av.STI * b.cfg.RentRate
		av.STI -= rent
		stats.RentCollected += rent

		if av.STI >= b.cfg.AFBoundary {
			av.STI += b.cfg.WageRate
			stats.WagesPaid += b.cfg.WageRate
		}

		if av.STI > 0 {
			aged := av.STI * b.cfg.AgeRate
			av.STI -= aged
			av.LTI += int16(aged)
			stats.AtomsAged++
		}

		b.space.SetAV(h, av)
	}

	b.mu.Lock()
	b.stiFunds += stats.RentCollected - stats.WagesPaid
	b.mu.Unlock()

	b.logger.Debug("attention update cycle",
		zap.Float64("rent_collected", stats.RentCollected),
		zap.Float64("wages_paid", stats.WagesPaid),
		zap.Int("atoms_aged", stats.AtomsAged),
	)
	return stats
}

// TotalSTI sums STI across atoms, for conservation checks and metrics.
func (b *Bank) TotalSTI(atoms []core.Handle) float64 {
	var total float64
	for _, h := range atoms {
		total += b.space.GetAV(h).STI
	}
	return total
}

// MaxSTI returns the highest STI among atoms, or 0 if atoms is empty.
func (b *Bank) MaxSTI(atoms []core.Handle) float64 {
	max := 0.0
	for i, h := range atoms {
		sti := b.space.GetAV(h).STI
		if i == 0 || sti > max {
			max = sti
		}
	}
	return max
}

// MinSTI returns the lowest STI among atoms, or 0 if atoms is empty.
func (b *Bank) MinSTI(atoms []core.Handle) float64 {
	min := 0.0
	for i, h := range atoms {
		sti := b.space.GetAV(h).STI
		if i == 0 || sti < min {
			min = sti
		}
	}
	return min
}
