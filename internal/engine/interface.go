// Package engine defines the scene collaborators the dungeon generator consumes:
// spawning and destroying pieces, collision queries, and navigation rebuilds.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-dungeon/internal/engine Scene,SceneFactory

import (
	"context"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// Spawner instantiates templates into the scene
type Spawner interface {
	// Spawn instantiates a template. A nil Transform spawns at the origin, unrotated.
	Spawn(ctx context.Context, input *SpawnInput) (*SpawnOutput, error)

	// Destroy removes a piece and everything attached to it
	Destroy(ctx context.Context, piece *entities.Piece) error
}

// CollisionQuery answers point-in-time overlap questions against live scene geometry
type CollisionQuery interface {
	OverlapBox(ctx context.Context, input *OverlapBoxInput) (*OverlapBoxOutput, error)
}

// NavigationRebuilder rebuilds the scene's navigation data
type NavigationRebuilder interface {
	RebuildNavigation(ctx context.Context) error
}

// Scene is everything one generation run needs from the world
type Scene interface {
	Spawner
	CollisionQuery
	NavigationRebuilder
}

// SceneFactory creates a fresh, empty scene per run
type SceneFactory interface {
	NewScene(ctx context.Context) (Scene, error)
}
