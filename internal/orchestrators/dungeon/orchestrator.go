// Package dungeon assembles a dungeon by chaining room and corridor templates through
// their connection points until the room target is reached or no exit can take a room.
package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/overlap"
)

// Service defines the interface for dungeon generation
type Service interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	IDGenerator idgen.Generator
	SeedSource  dice.Roller // draws seeds for runs configured with seed 0; dice.DefaultRoller when nil
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen      idgen.Generator
	seedSource dice.Roller
	clock      clock.Clock
}

// NewOrchestrator creates a new dungeon orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		idGen:      cfg.IDGenerator,
		seedSource: cfg.SeedSource,
		clock:      cfg.Clock,
	}
	if o.seedSource == nil {
		o.seedSource = dice.DefaultRoller
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	return o, nil
}

// Generate runs one generation against the input's scene
func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Scene == nil {
		return nil, errors.InvalidArgument("scene is required")
	}

	settings := input.Settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generation settings")
	}

	seed := settings.Seed
	if seed == 0 {
		var err error
		seed, err = rng.NewSeed(o.seedSource)
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw seed")
		}
		slog.Info("Generated dungeon seed", "seed", seed)
	} else {
		slog.Info("Using provided dungeon seed", "seed", seed)
	}

	validator, err := overlap.NewValidator(&overlap.Config{Query: input.Scene})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create overlap validator")
	}

	r := &run{
		scene:     input.Scene,
		validator: validator,
		settings:  settings,
		state:     newGenerationState(seed, rng.NewStream(seed), settings.RoomCount),
	}

	origin := geometry.Identity()
	if input.Origin != nil {
		origin = *input.Origin
	}

	out, err := input.Scene.Spawn(ctx, &engine.SpawnInput{TemplateID: settings.FirstRoom, Transform: &origin})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to spawn first room").
			WithMeta("template_id", settings.FirstRoom)
	}
	if out == nil || out.Piece == nil {
		return nil, errors.Unavailablef("scene could not spawn first room %s", settings.FirstRoom).
			WithMeta("template_id", settings.FirstRoom)
	}
	r.state.place(out.Piece, "")

	slog.Info("Dungeon generation started",
		"seed", seed,
		"target_rooms", settings.RoomCount,
		"first_room", settings.FirstRoom,
		"entrance_policy", settings.EntrancePolicy)

	r.state.halt = o.grow(ctx, r)

	if r.state.halt != entities.HaltCanceled {
		o.finish(ctx, r)
	}

	layout := r.state.Layout(o.idGen.Generate(), settings.EntrancePolicy, o.clock.Now())

	slog.Info("Dungeon generation finished",
		"layout_id", layout.ID,
		"rooms_placed", layout.RoomsPlaced,
		"target_rooms", layout.TargetRooms,
		"halt_reason", layout.HaltReason,
		"attempts", len(layout.Attempts))

	return &GenerateOutput{
		Layout: layout,
		State:  r.state,
	}, nil
}

// grow places rooms until the target is reached. One failed call ends the run.
func (o *orchestrator) grow(ctx context.Context, r *run) entities.HaltReason {
	for r.state.roomsPlaced < r.state.targetRooms {
		if err := ctx.Err(); err != nil {
			slog.Warn("Dungeon generation canceled",
				"rooms_placed", r.state.roomsPlaced,
				"error", err)
			return entities.HaltCanceled
		}

		if !r.generateNextRoom(ctx) {
			slog.Warn("Dungeon generation stalled, no exit could take another room",
				"rooms_placed", r.state.roomsPlaced,
				"target_rooms", r.state.targetRooms)
			return entities.HaltExhausted
		}
	}
	return entities.HaltTargetReached
}

// finish rebuilds navigation once and lets rooms populate themselves
func (o *orchestrator) finish(ctx context.Context, r *run) {
	if err := r.scene.RebuildNavigation(ctx); err != nil {
		slog.Warn("Navigation rebuild failed", "error", err)
	}

	for _, room := range r.state.Rooms() {
		populator, ok := room.Populator()
		if !ok {
			continue
		}
		if err := populator.Populate(ctx); err != nil {
			slog.Error("Failed to populate room",
				"piece_id", room.GetID(),
				"template_id", room.TemplateID(),
				"error", err)
		}
	}
}
