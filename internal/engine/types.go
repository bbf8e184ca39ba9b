package engine

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// SpawnInput contains the template to spawn and an optional transform
type SpawnInput struct {
	TemplateID string
	Transform  *geometry.Pose
}

// SpawnOutput contains the spawned piece. Piece is nil when the scene could not
// instantiate the template.
type SpawnOutput struct {
	Piece *entities.Piece
}

// OverlapBoxInput describes a box overlap query
type OverlapBoxInput struct {
	Box       geometry.Box
	Layer     entities.CollisionLayer
	IgnoreIDs []string
}

// OverlapHit is one intersecting piece
type OverlapHit struct {
	PieceID    string
	TemplateID string
}

// OverlapBoxOutput lists every piece the box intersects
type OverlapBoxOutput struct {
	Hits []OverlapHit
}
