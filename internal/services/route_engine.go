package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"go.uber.org/atomic"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// ErrPassSuperseded reports that a computation pass was replaced by a
// newer one before it finished. It is an internal signal, not a failure
// the itinerary owner needs to act on.
var ErrPassSuperseded = errors.New("route pass superseded")

// RouteSet is the exported result of one computation pass. Legs is a
// sparse map from leg index to resolved leg: a missing index means that
// leg is still pending or failed. Consumers reconcile by leg index, never
// by position in an array.
type RouteSet struct {
	PassID   uint64
	Mode     domain.TransportMode
	LegCount int
	Legs     map[int]domain.RouteLeg
}

// RouteEngine computes route legs for an itinerary and keeps exactly one
// result set: the one belonging to the newest pass. Starting a new pass
// (mode switch or destination change) supersedes the previous one;
// completions arriving for a superseded pass are discarded and never
// touch the presented results.
type RouteEngine struct {
	provider ports.DirectionsProvider
	cfg      EngineConfig

	passID atomic.Uint64

	mu         sync.Mutex
	current    RouteSet
	terminated int           // legs of the current pass that resolved or failed
	done       chan struct{} // closed when the current pass fully terminated or is superseded
	doneClosed bool

	updates chan RouteSet
}

func NewRouteEngine(provider ports.DirectionsProvider, cfg EngineConfig) *RouteEngine {
	return &RouteEngine{
		provider: provider,
		cfg:      cfg,
		updates:  make(chan RouteSet, 1),
	}
}

// Recompute starts a new computation pass over a snapshot of the given
// destination list and returns the pass id. The destination list is
// copied: concurrent mutation of the caller's slice cannot leak into an
// in-flight pass. Previously started passes are superseded immediately;
// their in-flight provider calls are not suppressed, but their results
// will be dropped on arrival.
func (e *RouteEngine) Recompute(ctx context.Context, dests []domain.Destination, mode domain.TransportMode) uint64 {
	snapshot := make([]domain.Destination, len(dests))
	copy(snapshot, dests)

	legCount := len(snapshot) - 1
	if legCount < 0 {
		legCount = 0
	}

	e.mu.Lock()
	// The id is allocated under the lock: allocation and installation are
	// one atomic step, so concurrent callers can never install an older
	// pass over a newer one.
	pass := e.passID.Inc()
	if e.done != nil && !e.doneClosed {
		close(e.done)
	}
	e.current = RouteSet{
		PassID:   pass,
		Mode:     mode,
		LegCount: legCount,
		Legs:     make(map[int]domain.RouteLeg, legCount),
	}
	e.terminated = 0
	e.done = make(chan struct{})
	e.doneClosed = false
	if legCount == 0 {
		close(e.done)
		e.doneClosed = true
	}
	e.publishLocked()
	e.mu.Unlock()

	sem := make(chan struct{}, e.cfg.maxInFlight())
	for i := 0; i < legCount; i++ {
		go e.runLeg(ctx, sem, pass, i, snapshot[i].Coordinate, snapshot[i+1].Coordinate, mode)
	}

	return pass
}

func (e *RouteEngine) runLeg(ctx context.Context, sem chan struct{}, pass uint64, index int, from, to domain.Coordinate, mode domain.TransportMode) {
	sem <- struct{}{}
	defer func() { <-sem }()

	leg, err := resolveLeg(ctx, e.provider, index, from, to, mode, e.cfg.LegTimeout)

	e.mu.Lock()
	defer e.mu.Unlock()

	// Stale completion from a superseded pass: drop silently.
	if pass != e.current.PassID {
		return
	}

	if err != nil {
		log.Printf("leg resolution failed: pass=%d index=%d mode=%s err=%v", pass, index, mode, err)
	} else {
		e.current.Legs[index] = leg
	}

	e.terminated++
	if e.terminated == e.current.LegCount && !e.doneClosed {
		close(e.done)
		e.doneClosed = true
	}
	e.publishLocked()
}

// Snapshot returns a copy of the currently presented result set.
func (e *RouteEngine) Snapshot() RouteSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Wait blocks until every leg of the given pass has terminated (resolved
// or failed), then returns that pass's result set. It returns
// ErrPassSuperseded if a newer pass replaced the awaited one, or the
// context error on cancellation.
func (e *RouteEngine) Wait(ctx context.Context, pass uint64) (RouteSet, error) {
	for {
		e.mu.Lock()
		if e.current.PassID != pass {
			e.mu.Unlock()
			return RouteSet{}, ErrPassSuperseded
		}
		if e.doneClosed {
			set := e.snapshotLocked()
			e.mu.Unlock()
			return set, nil
		}
		done := e.done
		e.mu.Unlock()

		select {
		case <-ctx.Done():
			return RouteSet{}, ctx.Err()
		case <-done:
		}
	}
}

// Updates returns a conflated stream of result sets: one value is emitted
// each time a pass advances, and a slow consumer only ever observes the
// newest state. The stream replaces the reactive published state the
// presentation layer would otherwise poll for.
func (e *RouteEngine) Updates() <-chan RouteSet {
	return e.updates
}

func (e *RouteEngine) snapshotLocked() RouteSet {
	legs := make(map[int]domain.RouteLeg, len(e.current.Legs))
	for i, leg := range e.current.Legs {
		legs[i] = leg
	}
	return RouteSet{
		PassID:   e.current.PassID,
		Mode:     e.current.Mode,
		LegCount: e.current.LegCount,
		Legs:     legs,
	}
}

// publishLocked pushes the current snapshot, displacing an unconsumed
// older value so the channel always holds the newest state.
func (e *RouteEngine) publishLocked() {
	snap := e.snapshotLocked()
	for {
		select {
		case e.updates <- snap:
			return
		default:
		}
		select {
		case <-e.updates:
		default:
		}
	}
}
