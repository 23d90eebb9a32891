package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/config"
	"trip-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/trips.json")
	port := config.Get("PORT", "8080")
	corsOrigins := strings.Split(config.Get("CORS_ORIGINS", "*"), ",")

	engineCfg := services.EngineConfig{
		LegTimeout:  config.GetDuration("LEG_TIMEOUT", 0),
		MaxInFlight: config.GetInt("MAX_INFLIGHT_LEGS", 0),
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// Route lookups are cached in Redis when an address is configured;
	// without one the provider hits ORS on every leg.
	var routeCache *cache.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		routeCache = cache.NewRedisRouteCache(client, config.GetDuration("ROUTE_CACHE_TTL", 0))
		log.Printf("Route cache enabled addr=%s", addr)
	}

	provider, err := directions.NewORSDirectionsProvider(orsKey, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	trips := services.NewTripService(repositories.NewSqliteTripRepository(db))
	router := api.NewRouter(trips, provider, engineCfg, corsOrigins)

	// Timeouts are tuned for cold-cache route computation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
