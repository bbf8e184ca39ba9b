// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// TemplateBuilder provides a fluent interface for building test templates
type TemplateBuilder struct {
	tmpl   *entities.Template
	groups map[string]*entities.Component
}

// NewTemplateBuilder creates a builder for an empty template
func NewTemplateBuilder(id string, kind entities.TemplateKind) *TemplateBuilder {
	return &TemplateBuilder{
		tmpl: &entities.Template{
			ID:   id,
			Kind: kind,
			Root: entities.NewComponent("Root", entities.ComponentScene, geometry.Identity()),
		},
		groups: make(map[string]*entities.Component),
	}
}

// WithBox adds a dynamic-layer collider
func (b *TemplateBuilder) WithBox(center, extent mgl64.Vec3) *TemplateBuilder {
	box := entities.NewComponent("Bounds", entities.ComponentBox, geometry.At(center))
	box.Extent = extent
	box.Layer = entities.LayerDynamic
	b.tmpl.Root.AddChild(box)
	return b
}

// WithArrow adds a connection point under group, creating the group on first use
func (b *TemplateBuilder) WithArrow(group, name string, position mgl64.Vec3, yaw float64) *TemplateBuilder {
	g, ok := b.groups[group]
	if !ok {
		g = b.tmpl.Root.AddChild(entities.NewComponent(group, entities.ComponentGroup, geometry.Identity()))
		b.groups[group] = g
	}
	g.AddChild(entities.NewComponent(name, entities.ComponentArrow, geometry.Yawed(position, yaw)))
	return b
}

// WithEncounters sets the content the room populates
func (b *TemplateBuilder) WithEncounters(encounters ...string) *TemplateBuilder {
	b.tmpl.Encounters = encounters
	return b
}

// Build returns the template
func (b *TemplateBuilder) Build() *entities.Template {
	return b.tmpl
}
