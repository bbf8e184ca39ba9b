// Package entities contains the dungeon domain model: templates, pieces, their component
// trees and connection points, and the persisted layout snapshot.
package entities

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// ComponentKind identifies what a component node contributes to a piece
type ComponentKind string

// Component kinds
const (
	ComponentScene ComponentKind = "scene" // plain transform node
	ComponentGroup ComponentKind = "group" // named container, e.g. "ExitList"
	ComponentArrow ComponentKind = "arrow" // directed connection point
	ComponentBox   ComponentKind = "box"   // bounding collider
)

// CollisionLayer scopes overlap queries
type CollisionLayer string

// Collision layers
const (
	LayerDynamic CollisionLayer = "world_dynamic"
	LayerStatic  CollisionLayer = "world_static"
)

// Component is a node in a piece's scene graph. Local is relative to the parent node,
// or to the piece origin for the root.
type Component struct {
	Name     string
	Kind     ComponentKind
	Local    geometry.Pose
	Extent   mgl64.Vec3     // box half-size
	Layer    CollisionLayer // box only
	Children []*Component

	parent *Component
}

// NewComponent creates a detached component
func NewComponent(name string, kind ComponentKind, local geometry.Pose) *Component {
	return &Component{Name: name, Kind: kind, Local: local}
}

// Parent returns the parent node, nil for a root
func (c *Component) Parent() *Component {
	return c.parent
}

// AddChild attaches child under c and returns it
func (c *Component) AddChild(child *Component) *Component {
	child.parent = c
	c.Children = append(c.Children, child)
	return child
}

// Clone deep-copies the subtree rooted at c; the copy is detached from c's parent.
func (c *Component) Clone() *Component {
	cp := &Component{
		Name:   c.Name,
		Kind:   c.Kind,
		Local:  c.Local,
		Extent: c.Extent,
		Layer:  c.Layer,
	}
	for _, child := range c.Children {
		cp.AddChild(child.Clone())
	}
	return cp
}

// Walk visits c and its descendants depth first in authoring order until fn returns false.
func (c *Component) Walk(fn func(*Component) bool) bool {
	if !fn(c) {
		return false
	}
	for _, child := range c.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node named name, searching depth first
func (c *Component) Find(name string) *Component {
	var found *Component
	c.Walk(func(n *Component) bool {
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Descendants returns every node under c, excluding c, in authoring order
func (c *Component) Descendants() []*Component {
	var out []*Component
	for _, child := range c.Children {
		child.Walk(func(n *Component) bool {
			out = append(out, n)
			return true
		})
	}
	return out
}

// Root returns the top of c's tree
func (c *Component) Root() *Component {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}
