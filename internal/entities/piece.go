package entities

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// Populator is the optional capability of a placed room to fill itself with content
// once the layout is final
type Populator interface {
	Populate(ctx context.Context) error
}

// Piece is an instantiated room or corridor in world space
type Piece struct {
	id         string
	templateID string
	kind       TemplateKind
	pose       geometry.Pose
	root       *Component
	populator  Populator
}

var _ core.Entity = (*Piece)(nil)

// GetID returns the piece's unique identity
func (p *Piece) GetID() string {
	return p.id
}

// GetType returns the template kind
func (p *Piece) GetType() string {
	return string(p.kind)
}

// TemplateID returns the template the piece was spawned from
func (p *Piece) TemplateID() string {
	return p.templateID
}

// Kind returns the template kind
func (p *Piece) Kind() TemplateKind {
	return p.kind
}

// Pose returns the piece's world transform
func (p *Piece) Pose() geometry.Pose {
	return p.pose
}

// SetPose moves the piece
func (p *Piece) SetPose(pose geometry.Pose) {
	p.pose = pose
}

// Root returns the root of the component tree
func (p *Piece) Root() *Component {
	return p.root
}

// Owns reports whether c belongs to this piece's component tree
func (p *Piece) Owns(c *Component) bool {
	return c != nil && c.Root() == p.root
}

// WorldPose returns the world transform of a component of this piece
func (p *Piece) WorldPose(c *Component) geometry.Pose {
	var chain []*Component
	for n := c; n != nil; n = n.parent {
		chain = append(chain, n)
	}

	world := p.pose
	for i := len(chain) - 1; i >= 0; i-- {
		world = world.Compose(chain[i].Local)
	}
	return world
}

// Collider returns the first box component in authoring order
func (p *Piece) Collider() (*Component, bool) {
	var collider *Component
	p.root.Walk(func(n *Component) bool {
		if n.Kind == ComponentBox {
			collider = n
			return false
		}
		return true
	})
	return collider, collider != nil
}

// Bounds returns the collider as a world-space box
func (p *Piece) Bounds() (geometry.Box, bool) {
	collider, ok := p.Collider()
	if !ok {
		return geometry.Box{}, false
	}

	world := p.WorldPose(collider)
	return geometry.Box{
		Center:   world.Position,
		Rotation: world.Rotation,
		Extent:   collider.Extent,
	}, true
}

// SetPopulator attaches the content capability
func (p *Piece) SetPopulator(populator Populator) {
	p.populator = populator
}

// Populator returns the content capability when the piece has one
func (p *Piece) Populator() (Populator, bool) {
	return p.populator, p.populator != nil
}
