package services

import (
	"sync"

	"github.com/google/uuid"

	"trip-route-service/internal/ports"
)

// RouteEngines hands out one RouteEngine per trip, so recomputation
// passes for the same itinerary supersede each other while different
// trips compute independently.
type RouteEngines struct {
	provider ports.DirectionsProvider
	cfg      EngineConfig

	mu     sync.Mutex
	byTrip map[uuid.UUID]*RouteEngine
}

func NewRouteEngines(provider ports.DirectionsProvider, cfg EngineConfig) *RouteEngines {
	return &RouteEngines{
		provider: provider,
		cfg:      cfg,
		byTrip:   make(map[uuid.UUID]*RouteEngine),
	}
}

// For returns the trip's engine, creating it on first use.
func (r *RouteEngines) For(tripID uuid.UUID) *RouteEngine {
	r.mu.Lock()
	defer r.mu.Unlock()

	engine, ok := r.byTrip[tripID]
	if !ok {
		engine = NewRouteEngine(r.provider, r.cfg)
		r.byTrip[tripID] = engine
	}
	return engine
}

// Drop forgets a trip's engine. Called when the trip is deleted; any
// in-flight pass keeps running to completion but its results become
// unreachable.
func (r *RouteEngines) Drop(tripID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTrip, tripID)
}
