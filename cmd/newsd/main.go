package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/clientstate"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/config"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/httpapi"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/news"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	backend, err := newBackend(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.Store.Backend, err)
	}
	log.Printf("Using %s store backend", cfg.Store.Backend)

	svc := news.New(backend)
	trending := news.NewTrendingCache(svc, cfg.Trending.Limit)

	// Client state lives in redis when configured; the in-process map is
	// fine for dev but forgets everything on restart.
	var clientKV clientstate.KV = clientstate.NewMemoryKV()
	if cfg.Redis.Addr != "" {
		kv, err := clientstate.NewRedisKV(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer kv.Close()
		clientKV = kv
		log.Printf("Client state backed by redis at %s", cfg.Redis.Addr)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Trending.CronExpression, func() {
		entries := trending.Refresh(context.Background())
		log.Printf("Refreshed trending tags, %d entries", len(entries))
	}); err != nil {
		log.Fatalf("Failed to schedule trending refresh %q: %v", cfg.Trending.CronExpression, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Warm the cache so the first front-page hit doesn't pay for it.
	trending.Refresh(ctx)

	r := gin.Default()
	httpapi.NewHandler(svc, trending, clientKV).RegisterRoutes(r)

	log.Printf("Listening on %s", cfg.Server.ListenAddr)
	if err := r.Run(cfg.Server.ListenAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func newBackend(ctx context.Context, cfg config.StoreConfig) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		return store.NewPostgrest(store.PostgrestConfig{
			SupabaseURL: cfg.SupabaseURL,
			SupabaseKey: cfg.SupabaseKey,
		})
	case config.BackendPostgres:
		pg := store.NewPostgres(store.PostgresConfig{DSN: cfg.PostgresDSN})
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		mem := store.NewMemory()
		if cfg.SeedFile != "" {
			if err := mem.LoadSeed(cfg.SeedFile); err != nil {
				return nil, err
			}
		}
		return mem, nil
	}
}
