package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/geodist"
	"route-optimizer-service/internal/adapters/registry"
	"route-optimizer-service/internal/adapters/summary"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (registry backend, distance memo, optional
// Redis cache) behind ports and starts the HTTP server.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")

	locations, closeFn, err := buildRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("location registry setup failed")
	}
	if closeFn != nil {
		defer closeFn()
	}

	opts := []geodist.Option{}
	if capacity := getEnv("MEMO_CAPACITY", ""); capacity != "" {
		n, err := strconv.Atoi(capacity)
		if err != nil || n <= 0 {
			log.Fatal().Str("MEMO_CAPACITY", capacity).Msg("invalid memo capacity")
		}
		opts = append(opts, geodist.WithMemoCapacity(n))
	}

	// A Redis instance, when configured, persists pair distances across
	// restarts. The in-process memo works the same either way.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("redis ping failed")
		}
		opts = append(opts, geodist.WithCache(cache.NewRedisDistanceCache(client)))
		log.Info().Str("addr", addr).Msg("redis distance cache enabled")
	}

	model, err := geodist.NewModel(locations, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("distance model setup failed")
	}
	obs.RegisterMemoStats(func() (int64, int64, int) {
		s := model.Stats()
		return s.Hits, s.Misses, s.Size
	})

	optimizer := services.NewOptimizer(model)
	updater := services.NewUpdater(optimizer, locations)
	summarizer := summary.NewTemplateSummarizer()

	memoStats := func() (int64, int64, int, int) {
		s := model.Stats()
		return s.Hits, s.Misses, s.Size, s.Capacity
	}
	router := api.NewRouter(locations, optimizer, updater, summarizer, memoStats)

	log.Info().Str("port", port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// buildRegistry picks the location backend from the environment: Postgres
// when DATABASE_URL is set, SQLite when SQLITE_PATH is set, otherwise the
// built-in static city table.
func buildRegistry() (ports.LocationRegistry, func() error, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("using postgres location registry")
		return registry.NewSQLLocationRegistry(conn), conn.Close, nil
	}

	if path := os.Getenv("SQLITE_PATH"); strings.TrimSpace(path) != "" {
		conn, err := db.OpenSqlite(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", path).Msg("using sqlite location registry")
		return registry.NewSqliteLocationRegistry(conn), conn.Close, nil
	}

	log.Info().Msg("using built-in static location registry")
	return registry.NewStaticRegistry(), nil, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
