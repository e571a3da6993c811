package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"eventmatch/internal/config"
	"eventmatch/internal/events"
	"eventmatch/internal/events/db"
	"eventmatch/internal/logger"
	"eventmatch/internal/search"

	"github.com/joho/godotenv"
)

func main() {
	skipIndex := flag.Bool("skip-index", false, "only write the event store, leave the hosted index alone")
	flag.Parse()

	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.New(logger.Options{
		Dir:      cfg.Log.Dir,
		Service:  "eventmatch-seed",
		MinLevel: logger.ParseLevel(cfg.Log.Level),
	})
	defer log.Close()
	log.LogEnvFile(envErr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset := events.SampleEvents()
	if err := events.Validate(dataset); err != nil {
		log.Fatal("SEED", fmt.Sprintf("Dataset %s is invalid: %v", events.DatasetVersion, err))
	}
	log.Info("SEED", fmt.Sprintf("📦 %d events to upload (dataset %s)", len(dataset), events.DatasetVersion))

	bunDB, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	store := &db.DB{Bun: bunDB}
	if err := store.Migrate(ctx); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}
	if err := store.ReplaceAll(ctx, dataset); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to write events: %v", err))
	}
	count, err := store.CountEvents(ctx)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to count events: %v", err))
	}
	log.LogDatabase("SEED", "events", fmt.Sprintf("%d rows stored", count))

	if *skipIndex || cfg.Search.AppID == "" || cfg.Search.AdminKey == "" {
		log.Info("SEED", "Hosted index credentials not set, skipping index push")
		return
	}

	index := search.NewHostedIndex(cfg.Search)
	log.Info("SEED", fmt.Sprintf("🚀 Pushing events to hosted index %q", cfg.Search.Index))

	if err := index.SetSettings(ctx, search.DefaultSettings); err != nil {
		log.Fatal("SEARCH", fmt.Sprintf("Failed to configure index: %v", err))
	}
	objectIDs, err := index.SaveObjects(ctx, dataset)
	if err != nil {
		log.Fatal("SEARCH", fmt.Sprintf("Failed to push events: %v", err))
	}
	log.Info("SEED", fmt.Sprintf("✅ %d objects indexed", len(objectIDs)))
}
