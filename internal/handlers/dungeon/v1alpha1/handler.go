// Package v1alpha1 handles the dungeon generation grpc service interface
package v1alpha1

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts"
)

// HandlerConfig holds dependencies for the dungeon handler
type HandlerConfig struct {
	Orchestrator dungeon.Service
	SceneFactory engine.SceneFactory
	Defaults     dungeon.Settings
	Repository   layouts.Repository // optional; layouts are not stored when nil
	TTL          time.Duration      // layouts.DefaultTTL when zero
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Orchestrator == nil {
		vb.RequiredField("Orchestrator")
	}
	if c.SceneFactory == nil {
		vb.RequiredField("SceneFactory")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

// Handler implements DungeonServiceServer
type Handler struct {
	orchestrator dungeon.Service
	sceneFactory engine.SceneFactory
	defaults     dungeon.Settings
	repository   layouts.Repository
	ttl          time.Duration
}

var _ DungeonServiceServer = (*Handler)(nil)

// NewHandler creates a new dungeon handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid handler config")
	}

	return &Handler{
		orchestrator: cfg.Orchestrator,
		sceneFactory: cfg.SceneFactory,
		defaults:     cfg.Defaults,
		repository:   cfg.Repository,
		ttl:          cfg.TTL,
	}, nil
}

// GenerateDungeon runs one generation in a fresh scene and stores the layout when storage is configured
func (h *Handler) GenerateDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GenerateDungeonRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := in.Validate(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	scene, err := h.sceneFactory.NewScene(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create scene"))
	}

	out, err := h.orchestrator.Generate(ctx, &dungeon.GenerateInput{
		Scene:    scene,
		Settings: in.Apply(h.defaults),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if out.Layout.HaltReason == entities.HaltCanceled {
		slog.Warn("Dungeon generation canceled, layout discarded",
			"layout_id", out.Layout.ID,
			"rooms_placed", out.Layout.RoomsPlaced)
		return nil, errors.ToGRPCError(errors.Canceled("dungeon generation canceled").
			WithMeta("rooms_placed", out.Layout.RoomsPlaced))
	}

	resp := &GenerateDungeonResponse{Layout: out.Layout}

	if h.repository != nil {
		ttl := h.ttl
		if in.TTLSeconds > 0 {
			ttl = time.Duration(in.TTLSeconds) * time.Second
		}

		saved, err := h.repository.Save(ctx, &layouts.SaveInput{
			Layout: out.Layout,
			TTL:    ttl,
		})
		if err != nil {
			return nil, errors.ToGRPCError(errors.Wrap(err, "failed to save layout"))
		}
		resp.Saved = true
		resp.ExpiresAt = &saved.ExpiresAt
	}

	slog.Info("Dungeon generated",
		"layout_id", out.Layout.ID,
		"seed", out.Layout.Seed,
		"rooms_placed", out.Layout.RoomsPlaced,
		"target_rooms", out.Layout.TargetRooms,
		"halt_reason", out.Layout.HaltReason,
		"saved", resp.Saved)

	return h.respond(resp)
}

// GetLayout returns a stored layout
func (h *Handler) GetLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetLayoutRequest
	if err := h.decodeStored(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	out, err := h.repository.Get(ctx, &layouts.GetInput{ID: in.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(&GetLayoutResponse{Layout: out.Layout})
}

// ListLayouts returns the IDs of stored layouts generated from a seed
func (h *Handler) ListLayouts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListLayoutsRequest
	if err := h.decodeStored(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.repository.ListBySeed(ctx, &layouts.ListBySeedInput{Seed: in.Seed})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	ids := out.IDs
	if ids == nil {
		ids = []string{}
	}
	return h.respond(&ListLayoutsResponse{IDs: ids})
}

// DeleteLayout removes a stored layout
func (h *Handler) DeleteLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in DeleteLayoutRequest
	if err := h.decodeStored(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	if _, err := h.repository.Delete(ctx, &layouts.DeleteInput{ID: in.ID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	slog.Info("Layout deleted", "layout_id", in.ID)

	return h.respond(&DeleteLayoutResponse{})
}

func (h *Handler) decodeStored(req *structpb.Struct, msg any) error {
	if h.repository == nil {
		return errors.FailedPrecondition("layout storage is not configured")
	}
	return FromStruct(req, msg)
}

func (h *Handler) respond(msg any) (*structpb.Struct, error) {
	out, err := ToStruct(msg)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
