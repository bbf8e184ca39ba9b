// Package alignment moves a piece so one of its connection points meets another point.
package alignment

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// Align repositions piece so that source sits on target and faces exactly opposite it.
// The source keeps its rigid offset from the piece origin. The piece is left untouched
// when an input is missing or source does not belong to piece.
func Align(target, source entities.ConnectionPoint, piece *entities.Piece) error {
	switch {
	case target.IsZero():
		return errors.InvalidArgument("alignment target is required")
	case source.IsZero():
		return errors.InvalidArgument("alignment source is required")
	case piece == nil:
		return errors.InvalidArgument("piece to align is required")
	case source.Piece != piece || !piece.Owns(source.Node):
		return errors.InvalidArgument("source point does not belong to the piece").
			WithMeta("piece_id", piece.GetID()).
			WithMeta("source", source.Key())
	}

	targetWorld := target.WorldPose()
	sourceWorld := source.WorldPose()
	current := piece.Pose()

	// offset of the source in the piece frame; rotation only, so it survives the re-orientation
	offset := current.Inverse().TransformPoint(sourceWorld.Position)

	alignRot := geometry.RotFromXZ(targetWorld.Forward().Mul(-1), geometry.UpAxis)
	rotation := alignRot.Mul(sourceWorld.Rotation.Inverse()).Mul(current.Rotation).Normalize()

	piece.SetPose(geometry.Pose{
		Position: targetWorld.Position.Sub(rotation.Rotate(offset)),
		Rotation: rotation,
	})
	return nil
}
