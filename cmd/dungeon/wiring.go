package main

import (
	"context"
	"fmt"
	"log"

	"github.com/KirkDiggler/rpg-dungeon/internal/catalog"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/sim"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts"
)

// generator bundles what every command needs to run a generation
type generator struct {
	catalog      *catalog.Catalog
	scenes       *sim.Factory
	orchestrator dungeon.Service
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Default()
	}
	return catalog.Load(catalogPath)
}

func newGenerator() (*generator, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	scenes, err := sim.NewFactory(&sim.Config{
		Catalog:     cat,
		IDGenerator: idgen.NewUUID("piece"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene factory: %w", err)
	}

	orchestrator, err := dungeon.NewOrchestrator(&dungeon.Config{
		IDGenerator: idgen.NewUUID("layout"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return &generator{
		catalog:      cat,
		scenes:       scenes,
		orchestrator: orchestrator,
	}, nil
}

// settings returns the catalog's generation defaults
func (g *generator) settings() dungeon.Settings {
	return dungeon.SettingsFromCatalog(g.catalog.Generation)
}

// openRepository connects to Redis when addresses are configured. With fallback set and no
// addresses it returns an in-memory store, otherwise nil.
func openRepository(ctx context.Context, fallback bool) (layouts.Repository, func(), error) {
	noop := func() {}

	if redisAddrs == "" {
		if !fallback {
			return nil, noop, nil
		}
		log.Println("No Redis configured, storing layouts in memory")
		return layouts.NewInMemory(clock.New()), noop, nil
	}

	client, err := redis.Connect(ctx, redisAddrs, &redis.Options{})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	repo, err := layouts.NewRedisRepository(&layouts.RedisConfig{Client: client})
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("failed to create layout repository: %w", err)
	}

	log.Printf("Storing layouts in Redis at %s", redisAddrs)
	return repo, cleanup, nil
}
