// Package catalog loads room and corridor templates, plus generation defaults, from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/connections"
)

//go:embed default.yaml
var defaultCatalog []byte

// Generation holds the generation defaults a catalog ships with
type Generation struct {
	RoomCount      int      `yaml:"room_count"`
	Seed           int64    `yaml:"seed"`
	FirstRoom      string   `yaml:"first_room"`
	Rooms          []string `yaml:"rooms"`
	Shop           string   `yaml:"shop"`
	EndRoom        string   `yaml:"end_room"`
	Corridors      []string `yaml:"corridors"`
	EntrancePolicy string   `yaml:"entrance_policy"`
	ExitGroup      string   `yaml:"exit_group"`
	EntranceGroup  string   `yaml:"entrance_group"`
}

type fileSchema struct {
	Generation Generation    `yaml:"generation"`
	Templates  []templateDef `yaml:"templates"`
}

type templateDef struct {
	ID         string         `yaml:"id"`
	Kind       string         `yaml:"kind"`
	Encounters []string       `yaml:"encounters"`
	Components []componentDef `yaml:"components"`
}

type componentDef struct {
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind"`
	Position [3]float64     `yaml:"position"`
	Yaw      float64        `yaml:"yaw"`
	Extent   [3]float64     `yaml:"extent"`
	Layer    string         `yaml:"layer"`
	Children []componentDef `yaml:"children"`
}

// Catalog is a read-only set of templates
type Catalog struct {
	Generation Generation

	templates map[string]*entities.Template
	order     []string
}

// New builds a catalog from already constructed templates
func New(generation Generation, templates ...*entities.Template) (*Catalog, error) {
	c := &Catalog{
		Generation: generation,
		templates:  make(map[string]*entities.Template, len(templates)),
	}
	for _, t := range templates {
		if t == nil || t.ID == "" {
			return nil, errors.InvalidArgument("template ID is required")
		}
		if _, exists := c.templates[t.ID]; exists {
			return nil, errors.InvalidArgumentf("duplicate template ID: %s", t.ID)
		}
		c.templates[t.ID] = t
		c.order = append(c.order, t.ID)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, fmt.Sprintf("failed to read catalog %s", path))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog %s", path)
	}
	return c, nil
}

// Parse decodes catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog yaml")
	}

	templates := make([]*entities.Template, 0, len(schema.Templates))
	for _, def := range schema.Templates {
		t, err := def.build()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return New(schema.Generation, templates...)
}

// Template looks a template up by ID
func (c *Catalog) Template(id string) (*entities.Template, error) {
	t, ok := c.templates[id]
	if !ok {
		return nil, errors.NotFoundf("template not found: %s", id).WithMeta("template_id", id)
	}
	return t, nil
}

// Templates returns every template in file order
func (c *Catalog) Templates() []*entities.Template {
	out := make([]*entities.Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id])
	}
	return out
}

// Validate checks corridor shape and that generation defaults reference known templates
func (c *Catalog) Validate() error {
	vb := errors.NewValidationBuilder()

	group := c.Generation.ExitGroup
	if group == "" {
		group = connections.DefaultGroup
	}
	for _, id := range c.order {
		t := c.templates[id]
		if t.Kind == entities.KindCorridor && connections.Count(t, group) < 2 {
			vb.Fieldf(id, "corridor needs at least 2 connection points under %s", group)
		}
	}

	refs := map[string][]string{
		"generation.first_room": {c.Generation.FirstRoom},
		"generation.shop":       {c.Generation.Shop},
		"generation.end_room":   {c.Generation.EndRoom},
		"generation.rooms":      c.Generation.Rooms,
		"generation.corridors":  c.Generation.Corridors,
	}
	for field, ids := range refs {
		for _, id := range ids {
			if id == "" {
				continue
			}
			if _, ok := c.templates[id]; !ok {
				vb.Fieldf(field, "unknown template %s", id)
			}
		}
	}

	return vb.Build()
}

func (d templateDef) build() (*entities.Template, error) {
	kind := entities.TemplateKind(d.Kind)
	switch kind {
	case entities.KindFirstRoom, entities.KindRoom, entities.KindShop, entities.KindEndRoom, entities.KindCorridor:
	default:
		return nil, errors.InvalidArgumentf("template %s has unknown kind %q", d.ID, d.Kind)
	}

	root := entities.NewComponent("Root", entities.ComponentScene, geometry.Identity())
	for _, cd := range d.Components {
		child, err := cd.build()
		if err != nil {
			return nil, errors.Wrapf(err, "template %s", d.ID)
		}
		root.AddChild(child)
	}

	return &entities.Template{
		ID:         d.ID,
		Kind:       kind,
		Root:       root,
		Encounters: d.Encounters,
	}, nil
}

func (d componentDef) build() (*entities.Component, error) {
	kind := entities.ComponentKind(d.Kind)
	switch kind {
	case entities.ComponentScene, entities.ComponentGroup, entities.ComponentArrow, entities.ComponentBox:
	case "":
		kind = entities.ComponentScene
	default:
		return nil, errors.InvalidArgumentf("component %s has unknown kind %q", d.Name, d.Kind)
	}

	c := entities.NewComponent(d.Name, kind, geometry.Yawed(mgl64.Vec3(d.Position), d.Yaw))
	if kind == entities.ComponentBox {
		c.Extent = d.Extent
		c.Layer = entities.CollisionLayer(d.Layer)
		if c.Layer == "" {
			c.Layer = entities.LayerDynamic
		}
	}

	for _, cd := range d.Children {
		child, err := cd.build()
		if err != nil {
			return nil, err
		}
		c.AddChild(child)
	}
	return c, nil
}
