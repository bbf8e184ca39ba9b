// Package overlap checks freshly aligned pieces against the geometry already in the scene.
package overlap

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// Config holds the dependencies for the validator
type Config struct {
	Query engine.CollisionQuery
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Query == nil {
		vb.RequiredField("Query")
	}

	return vb.Build()
}

// Validator answers whether a piece intersects anything else on the dynamic layer
type Validator struct {
	query engine.CollisionQuery
}

// NewValidator creates a validator bound to one scene
func NewValidator(cfg *Config) (*Validator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid overlap validator config")
	}

	return &Validator{query: cfg.Query}, nil
}

// IsOverlapping queries the scene with the piece's collider. A piece without a collider
// never overlaps.
func (v *Validator) IsOverlapping(ctx context.Context, piece *entities.Piece) (bool, error) {
	if piece == nil {
		return false, errors.InvalidArgument("piece is required")
	}

	bounds, ok := piece.Bounds()
	if !ok {
		slog.Warn("Piece has no box collider, skipping overlap check",
			"piece_id", piece.GetID(),
			"template_id", piece.TemplateID())
		return false, nil
	}

	out, err := v.query.OverlapBox(ctx, &engine.OverlapBoxInput{
		Box:       bounds,
		Layer:     entities.LayerDynamic,
		IgnoreIDs: []string{piece.GetID()},
	})
	if err != nil {
		return false, errors.Wrapf(err, "overlap query failed for piece %s", piece.GetID())
	}
	if out == nil {
		return false, errors.Internalf("scene returned no overlap result for piece %s", piece.GetID())
	}

	for _, hit := range out.Hits {
		if hit.PieceID != piece.GetID() {
			slog.Debug("Piece overlaps placed geometry",
				"piece_id", piece.GetID(),
				"hit_id", hit.PieceID,
				"hit_template", hit.TemplateID)
			return true, nil
		}
	}
	return false, nil
}
