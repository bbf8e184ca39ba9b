// Package connections finds the connection points a piece exposes.
package connections

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// DefaultGroup is the component that holds both exits and entrances unless configured otherwise
const DefaultGroup = "ExitList"

// Points returns the arrow components under the first node named group, at any depth,
// in depth-first authoring order. A missing piece or group yields no points.
func Points(piece *entities.Piece, group string) []entities.ConnectionPoint {
	if piece == nil || piece.Root() == nil {
		return nil
	}
	if group == "" {
		group = DefaultGroup
	}

	node := piece.Root().Find(group)
	if node == nil {
		return nil
	}

	var points []entities.ConnectionPoint
	for _, d := range node.Descendants() {
		if d.Kind == entities.ComponentArrow {
			points = append(points, entities.ConnectionPoint{Piece: piece, Node: d})
		}
	}
	return points
}

// Count returns how many connection points a template authors under group
func Count(t *entities.Template, group string) int {
	if t == nil || t.Root == nil {
		return 0
	}
	if group == "" {
		group = DefaultGroup
	}

	node := t.Root.Find(group)
	if node == nil {
		return 0
	}

	n := 0
	for _, d := range node.Descendants() {
		if d.Kind == entities.ComponentArrow {
			n++
		}
	}
	return n
}
