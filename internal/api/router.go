package api

import (
	"net/http"

	"github.com/rs/cors"

	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	trips *services.TripService,
	provider ports.DirectionsProvider,
	cfg services.EngineConfig,
	corsOrigins []string,
) http.Handler {
	mux := http.NewServeMux()

	engines := services.NewRouteEngines(provider, cfg)

	tripHandler := &handlers.TripHandler{Trips: trips, Engines: engines}
	routeHandler := &handlers.RouteHandler{
		Trips:    trips,
		Provider: provider,
		Engines:  engines,
		Cfg:      cfg,
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /trips", tripHandler.Create)
	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("GET /trips/{id}", tripHandler.Get)
	mux.HandleFunc("DELETE /trips/{id}", tripHandler.Delete)

	mux.HandleFunc("POST /trips/{id}/destinations", tripHandler.AddDestination)
	mux.HandleFunc("DELETE /trips/{id}/destinations/{destinationID}", tripHandler.RemoveDestination)

	mux.HandleFunc("POST /trips/{id}/notes", tripHandler.AddNote)
	mux.HandleFunc("PUT /trips/{id}/notes/{noteID}", tripHandler.UpdateNote)
	mux.HandleFunc("DELETE /trips/{id}/notes/{noteID}", tripHandler.RemoveNote)

	mux.HandleFunc("POST /trips/{id}/routes", routeHandler.Compute)
	mux.HandleFunc("POST /trips/{id}/destinations/{destinationID}/route", routeHandler.AdHoc)

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return loggingMiddleware(c.Handler(mux))
}
