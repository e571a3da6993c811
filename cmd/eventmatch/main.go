package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventmatch/internal/api"
	"eventmatch/internal/assistant"
	"eventmatch/internal/bookmarks"
	"eventmatch/internal/config"
	"eventmatch/internal/events"
	"eventmatch/internal/events/db"
	"eventmatch/internal/kafka"
	"eventmatch/internal/logger"
	"eventmatch/internal/search"
	"eventmatch/internal/sse"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

const janitorInterval = time.Minute

func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) *events.Catalog {
	bunDB, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	store := &db.DB{Bun: bunDB}
	if err := store.Migrate(ctx); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}

	seeded, err := store.EnsureSeeded(ctx, events.SampleEvents())
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Seeding failed: %v", err))
	}
	if seeded {
		log.LogDatabase("SEED", "events", fmt.Sprintf("empty store seeded with dataset %s", events.DatasetVersion))
	}

	list, err := store.ListEvents(ctx)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to load events: %v", err))
	}

	catalog, err := events.NewCatalog(list)
	if err != nil {
		log.Fatal("CATALOG", err.Error())
	}
	log.Info("CATALOG", fmt.Sprintf("Loaded %d events", len(list)))
	return catalog
}

// bookmarkStore prefers Redis and falls back to process memory when it is unreachable.
func bookmarkStore(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (bookmarks.Store, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unavailable at %s (%v), bookmarks will not survive a restart", cfg.Addr, err))
		client.Close()
		return bookmarks.NewMemoryStore(), func() {}
	}
	log.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Addr, cfg.DB))
	return bookmarks.NewRedisStore(client), func() { client.Close() }
}

func activityPublisher(ctx context.Context, cfg config.KafkaConfig, log *logger.Logger) kafka.Publisher {
	if !cfg.Enabled {
		log.Info("KAFKA", "Activity publishing disabled")
		return kafka.NoopPublisher{}
	}

	topics := []string{cfg.Topics.BookmarkToggled, cfg.Topics.ChatClassified}
	if err := kafka.EnsureTopicsExist(ctx, cfg.Brokers, topics, log); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	} else {
		log.Info("KAFKA", "Required topics ensured successfully")
	}

	log.Info("KAFKA", fmt.Sprintf("Kafka producer initialized for brokers %v", cfg.Brokers))
	return kafka.NewProducer(cfg.Brokers, log)
}

func searchBackend(cfg config.SearchConfig, catalog *events.Catalog, log *logger.Logger) search.Backend {
	if cfg.Hosted() {
		log.Info("SEARCH", fmt.Sprintf("Using hosted index %q for app %s", cfg.Index, cfg.AppID))
		return search.NewHostedIndex(cfg)
	}
	log.Info("SEARCH", "No hosted search credentials, using local index")
	return search.NewLocalIndex(catalog)
}

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.New(logger.Options{
		Dir:      cfg.Log.Dir,
		Service:  "eventmatch",
		MinLevel: logger.ParseLevel(cfg.Log.Level),
	})
	defer log.Close()

	log.Info("APP", "Starting EventMatch initialization")
	log.LogEnvFile(envErr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := loadCatalog(ctx, cfg, log)

	store, closeStore := bookmarkStore(ctx, cfg.Redis, log)
	defer closeStore()

	publisher := activityPublisher(ctx, cfg.Kafka, log)
	defer publisher.Close()

	replies := sse.NewReplyEmitter()
	chat := assistant.NewManager(catalog, replies, publisher, log, cfg.Chat, cfg.Kafka.Topics.ChatClassified)
	go chat.RunJanitor(ctx, janitorInterval)

	handler := &api.Handler{
		Catalog:   catalog,
		Bookmarks: bookmarks.NewService(store, catalog, publisher, cfg.Kafka.Topics.BookmarkToggled, log),
		Search:    search.NewService(searchBackend(cfg.Search, catalog, log), cfg.Search.HitsPerPage, log),
		Chat:      chat,
		Replies:   replies,
		Config:    cfg,
		Logger:    log,
	}

	log.Info("HTTP", "Setting up router and middleware")
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 EventMatch running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ EventMatch shutdown complete")
	}
}
