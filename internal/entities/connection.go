package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// ConnectionPoint is a directed socket on a piece. Exits sit on placed pieces and
// entrances on the piece being attached. The value is comparable and used as a set key.
type ConnectionPoint struct {
	Piece *Piece
	Node  *Component
}

// IsZero reports whether the point is unset
func (c ConnectionPoint) IsZero() bool {
	return c.Piece == nil || c.Node == nil
}

// Name returns the authored component name
func (c ConnectionPoint) Name() string {
	if c.Node == nil {
		return ""
	}
	return c.Node.Name
}

// Key is a stable, human-readable identity: <pieceID>/<name>
func (c ConnectionPoint) Key() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s/%s", c.Piece.GetID(), c.Node.Name)
}

// WorldPose returns the point's world transform
func (c ConnectionPoint) WorldPose() geometry.Pose {
	return c.Piece.WorldPose(c.Node)
}

// Position returns the point's world position
func (c ConnectionPoint) Position() mgl64.Vec3 {
	return c.WorldPose().Position
}

// Forward returns the direction the point faces
func (c ConnectionPoint) Forward() mgl64.Vec3 {
	return c.WorldPose().Forward()
}
