// Package sim is an in-memory scene: it spawns catalog templates as pieces, answers box
// overlap queries with oriented-box tests and records navigation rebuilds and room content.
package sim

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-dungeon/internal/catalog"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
)

// DefaultTolerance is how deep two boxes may touch before they count as overlapping
const DefaultTolerance = 1e-3

// Config holds the dependencies for simulated scenes
type Config struct {
	Catalog     *catalog.Catalog
	IDGenerator idgen.Generator
	Tolerance   float64 // DefaultTolerance when zero
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Tolerance < 0 {
		vb.Field("Tolerance", "must not be negative")
	}

	return vb.Build()
}

// Factory creates empty scenes over one catalog
type Factory struct {
	catalog   *catalog.Catalog
	idGen     idgen.Generator
	tolerance float64
}

var _ engine.SceneFactory = (*Factory)(nil)

// NewFactory creates a scene factory
func NewFactory(cfg *Config) (*Factory, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sim config")
	}

	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	return &Factory{
		catalog:   cfg.Catalog,
		idGen:     cfg.IDGenerator,
		tolerance: tolerance,
	}, nil
}

// NewScene returns an empty scene
func (f *Factory) NewScene(_ context.Context) (engine.Scene, error) {
	return f.Scene(), nil
}

// Scene returns an empty scene with its concrete type
func (f *Factory) Scene() *Scene {
	return &Scene{
		catalog:   f.catalog,
		idGen:     f.idGen,
		tolerance: f.tolerance,
		pieces:    make(map[string]*entities.Piece),
		populated: make(map[string][]string),
	}
}

// Scene is one simulated world
type Scene struct {
	catalog   *catalog.Catalog
	idGen     idgen.Generator
	tolerance float64

	mu          sync.Mutex
	order       []string
	pieces      map[string]*entities.Piece
	populated   map[string][]string
	spawned     int
	destroyed   int
	navRebuilds int
}

var _ engine.Scene = (*Scene)(nil)

// Spawn instantiates a catalog template
func (s *Scene) Spawn(_ context.Context, input *engine.SpawnInput) (*engine.SpawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	tmpl, err := s.catalog.Template(input.TemplateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to spawn")
	}

	pose := geometry.Identity()
	if input.Transform != nil {
		pose = *input.Transform
	}

	piece := tmpl.Instantiate(s.idGen.Generate(), pose)
	if tmpl.Kind.IsRoom() && len(tmpl.Encounters) > 0 {
		piece.SetPopulator(&encounterPopulator{scene: s, pieceID: piece.GetID(), encounters: tmpl.Encounters})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pieces[piece.GetID()] = piece
	s.order = append(s.order, piece.GetID())
	s.spawned++

	return &engine.SpawnOutput{Piece: piece}, nil
}

// Destroy removes a piece
func (s *Scene) Destroy(_ context.Context, piece *entities.Piece) error {
	if piece == nil {
		return errors.InvalidArgument("piece is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pieces[piece.GetID()]; !ok {
		return errors.NotFoundf("piece %s is not in the scene", piece.GetID())
	}

	delete(s.pieces, piece.GetID())
	for i, id := range s.order {
		if id == piece.GetID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.destroyed++
	return nil
}

// OverlapBox returns every piece on the requested layer whose collider intersects the box
func (s *Scene) OverlapBox(_ context.Context, input *engine.OverlapBoxInput) (*engine.OverlapBoxOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ignore := make(map[string]struct{}, len(input.IgnoreIDs))
	for _, id := range input.IgnoreIDs {
		ignore[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := &engine.OverlapBoxOutput{}
	for _, id := range s.order {
		if _, skip := ignore[id]; skip {
			continue
		}

		piece := s.pieces[id]
		collider, ok := piece.Collider()
		if !ok || collider.Layer != input.Layer {
			continue
		}

		bounds, _ := piece.Bounds()
		if input.Box.Intersects(bounds, s.tolerance) {
			out.Hits = append(out.Hits, engine.OverlapHit{PieceID: id, TemplateID: piece.TemplateID()})
		}
	}
	return out, nil
}

// RebuildNavigation records a rebuild
func (s *Scene) RebuildNavigation(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.navRebuilds++
	slog.Debug("Navigation rebuilt", "pieces", len(s.pieces))
	return nil
}

// Pieces returns the live pieces in spawn order
func (s *Scene) Pieces() []*entities.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.Piece, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.pieces[id])
	}
	return out
}

// Stats reports lifetime counters
func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Live:        len(s.pieces),
		Spawned:     s.spawned,
		Destroyed:   s.destroyed,
		NavRebuilds: s.navRebuilds,
		Populated:   len(s.populated),
	}
}

// Encounters returns what was populated into a room
func (s *Scene) Encounters(pieceID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.populated[pieceID]...)
}

// Stats are scene lifetime counters
type Stats struct {
	Live        int
	Spawned     int
	Destroyed   int
	NavRebuilds int
	Populated   int
}

type encounterPopulator struct {
	scene      *Scene
	pieceID    string
	encounters []string
}

func (p *encounterPopulator) Populate(_ context.Context) error {
	p.scene.mu.Lock()
	defer p.scene.mu.Unlock()

	if _, ok := p.scene.pieces[p.pieceID]; !ok {
		return errors.FailedPreconditionf("room %s is no longer in the scene", p.pieceID)
	}

	p.scene.populated[p.pieceID] = append(p.scene.populated[p.pieceID], p.encounters...)
	slog.Debug("Room populated", "piece_id", p.pieceID, "encounters", p.encounters)
	return nil
}
