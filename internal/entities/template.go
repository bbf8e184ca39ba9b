package entities

import "github.com/KirkDiggler/rpg-dungeon/internal/geometry"

// TemplateKind classifies spawnable content
type TemplateKind string

// Template kinds
const (
	KindFirstRoom TemplateKind = "first_room"
	KindRoom      TemplateKind = "room"
	KindShop      TemplateKind = "shop"
	KindEndRoom   TemplateKind = "end_room"
	KindCorridor  TemplateKind = "corridor"
)

// IsRoom reports whether the kind counts toward the room total
func (k TemplateKind) IsRoom() bool {
	return k != KindCorridor
}

// Template is read-only authored content that pieces are instantiated from
type Template struct {
	ID         string
	Kind       TemplateKind
	Root       *Component
	Encounters []string // content a populated room spawns
}

// Instantiate creates a piece with its own copy of the component tree
func (t *Template) Instantiate(id string, pose geometry.Pose) *Piece {
	var root *Component
	if t.Root != nil {
		root = t.Root.Clone()
	} else {
		root = NewComponent("Root", ComponentScene, geometry.Identity())
	}

	return &Piece{
		id:         id,
		templateID: t.ID,
		kind:       t.Kind,
		pose:       pose,
		root:       root,
	}
}
