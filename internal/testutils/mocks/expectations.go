// Package mocks provides mock expectation helpers for common scene interactions
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-dungeon/internal/engine/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// SpawnOf matches a spawn request for templateID
func SpawnOf(templateID string) gomock.Matcher {
	return gomock.Cond(func(input *engine.SpawnInput) bool {
		return input != nil && input.TemplateID == templateID
	})
}

// ExpectSpawn sets up a spawn of templateID that returns piece
func ExpectSpawn(
	ctx context.Context, scene *enginemock.MockScene,
	templateID string, piece *entities.Piece,
) *gomock.Call {
	return scene.EXPECT().
		Spawn(ctx, SpawnOf(templateID)).
		Return(&engine.SpawnOutput{Piece: piece}, nil)
}

// ExpectSpawnError sets up a spawn of templateID that fails
func ExpectSpawnError(
	ctx context.Context, scene *enginemock.MockScene,
	templateID string, err error,
) *gomock.Call {
	return scene.EXPECT().
		Spawn(ctx, SpawnOf(templateID)).
		Return(nil, err)
}

// ExpectNoOverlap sets up an overlap query that finds nothing
func ExpectNoOverlap(ctx context.Context, scene *enginemock.MockScene) *gomock.Call {
	return scene.EXPECT().
		OverlapBox(ctx, gomock.Any()).
		Return(&engine.OverlapBoxOutput{}, nil)
}
