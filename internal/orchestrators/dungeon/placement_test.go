package dungeon_test

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-dungeon/internal/engine/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils/builders"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils/mocks"
)

type failingPopulator struct {
	calls int
}

func (p *failingPopulator) Populate(_ context.Context) error {
	p.calls++
	return errors.Internal("content service down")
}

type PlacementTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	scene        *enginemock.MockScene
	orchestrator dungeon.Service
	ctx          context.Context
	settings     dungeon.Settings
}

func TestPlacementSuite(t *testing.T) {
	suite.Run(t, new(PlacementTestSuite))
}

func (s *PlacementTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.scene = enginemock.NewMockScene(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.orchestrator, err = dungeon.NewOrchestrator(&dungeon.Config{IDGenerator: idgen.NewSequential("layout")})
	s.Require().NoError(err)

	s.settings = dungeon.Settings{
		RoomCount:      2,
		Seed:           42,
		FirstRoom:      "entry",
		Rooms:          []string{"hall"},
		Corridors:      []string{"straight"},
		EntrancePolicy: dungeon.EntrancePolicyFirst,
	}
}

func (s *PlacementTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func entryPiece() *entities.Piece {
	return builders.NewTemplateBuilder("entry", entities.KindFirstRoom).
		WithBox(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{5, 5, 2}).
		WithArrow("ExitList", "East", mgl64.Vec3{5, 0, 0}, 0).
		Build().
		Instantiate("entry_1", geometry.Identity())
}

func corridorPiece(arrows int) *entities.Piece {
	b := builders.NewTemplateBuilder("straight", entities.KindCorridor).
		WithBox(mgl64.Vec3{3, 0, 1.5}, mgl64.Vec3{3, 1.5, 1.5}).
		WithArrow("ExitList", "Start", mgl64.Vec3{}, 180)
	if arrows > 1 {
		b.WithArrow("ExitList", "End", mgl64.Vec3{6, 0, 0}, 0)
	}
	return b.Build().Instantiate("corridor_1", geometry.Identity())
}

func hallPiece(withEntrance bool) *entities.Piece {
	b := builders.NewTemplateBuilder("hall", entities.KindRoom).
		WithBox(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{5, 5, 2})
	if withEntrance {
		b.WithArrow("ExitList", "West", mgl64.Vec3{-5, 0, 0}, 180)
	}
	return b.Build().Instantiate("hall_1", geometry.Identity())
}

func (s *PlacementTestSuite) generate() *dungeon.GenerateOutput {
	out, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: s.scene, Settings: s.settings})
	s.Require().NoError(err)
	return out
}

func (s *PlacementTestSuite) TestCorridorSpawnFailure() {
	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawnError(s.ctx, s.scene, "straight", errors.Unavailable("pool empty")),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(1, out.Layout.RoomsPlaced)
	s.Equal(entities.HaltExhausted, out.Layout.HaltReason)
	s.Empty(out.Layout.ConsumedExits, "spawn failures do not burn the exit")
	s.Require().Len(out.Layout.Attempts, 1)
	s.Equal(entities.OutcomeSpawnFailed, out.Layout.Attempts[0].Outcome)
}

func (s *PlacementTestSuite) TestRoomSpawnReturnsNoPiece() {
	corridor := corridorPiece(2)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		s.scene.EXPECT().Spawn(s.ctx, mocks.SpawnOf("hall")).Return(&engine.SpawnOutput{}, nil),
		s.scene.EXPECT().Destroy(s.ctx, corridor).Return(nil),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(entities.OutcomeSpawnFailed, out.Layout.Attempts[0].Outcome)
	s.Equal("hall", out.Layout.Attempts[0].RoomTemplate)
	s.Empty(out.Layout.ConsumedExits)
}

func (s *PlacementTestSuite) TestMalformedCorridor() {
	corridor := corridorPiece(1)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		s.scene.EXPECT().Destroy(s.ctx, corridor).Return(errors.Internal("already gone")),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(entities.OutcomeMalformed, out.Layout.Attempts[0].Outcome)
	s.Empty(out.Layout.Attempts[0].RoomTemplate)
	s.Equal(entities.HaltExhausted, out.Layout.HaltReason)
}

func (s *PlacementTestSuite) TestRoomWithoutEntrances() {
	corridor := corridorPiece(2)
	room := hallPiece(false)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		mocks.ExpectSpawn(s.ctx, s.scene, "hall", room),
		s.scene.EXPECT().Destroy(s.ctx, room).Return(nil),
		s.scene.EXPECT().Destroy(s.ctx, corridor).Return(nil),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(entities.OutcomeMalformed, out.Layout.Attempts[0].Outcome)
	s.Equal(-1, out.Layout.Attempts[0].EntranceIndex)
}

func (s *PlacementTestSuite) TestOverlapQueryErrorCountsAsConflict() {
	corridor := corridorPiece(2)
	room := hallPiece(true)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		mocks.ExpectSpawn(s.ctx, s.scene, "hall", room),
		s.scene.EXPECT().OverlapBox(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("physics offline")),
		s.scene.EXPECT().Destroy(s.ctx, room).Return(nil),
		s.scene.EXPECT().Destroy(s.ctx, corridor).Return(nil),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(entities.OutcomeOverlap, out.Layout.Attempts[0].Outcome)
	s.Equal([]string{"entry_1/East"}, out.Layout.ConsumedExits)
}

func (s *PlacementTestSuite) TestMissingOverlapResultCountsAsConflict() {
	corridor := corridorPiece(2)
	room := hallPiece(true)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		mocks.ExpectSpawn(s.ctx, s.scene, "hall", room),
		s.scene.EXPECT().OverlapBox(s.ctx, gomock.Any()).Return(nil, nil),
		s.scene.EXPECT().Destroy(s.ctx, room).Return(nil),
		s.scene.EXPECT().Destroy(s.ctx, corridor).Return(nil),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.Equal(entities.HaltExhausted, out.Layout.HaltReason)
	s.Equal(entities.OutcomeOverlap, out.Layout.Attempts[0].Outcome)
	s.Equal([]string{"entry_1/East"}, out.Layout.ConsumedExits)
}

func (s *PlacementTestSuite) TestPlacedAlignsPieces() {
	corridor := corridorPiece(2)
	room := hallPiece(true)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", entryPiece()),
		mocks.ExpectSpawn(s.ctx, s.scene, "straight", corridor),
		mocks.ExpectSpawn(s.ctx, s.scene, "hall", room),
		mocks.ExpectNoOverlap(s.ctx, s.scene).Times(2),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(nil),
	)

	out := s.generate()

	s.True(out.Layout.Complete)
	s.True(geometry.Near(corridor.Pose().Position, mgl64.Vec3{5, 0, 0}, 1e-9), corridor.Pose().Position)
	s.True(geometry.Near(room.Pose().Position, mgl64.Vec3{16, 0, 0}, 1e-9), room.Pose().Position)
	s.Equal([]*entities.Piece{corridor}, out.State.Corridors())
	s.True(out.State.IsConsumed(entities.ConnectionPoint{Piece: out.State.Rooms()[0], Node: out.State.Rooms()[0].Root().Find("East")}))
}

func (s *PlacementTestSuite) TestPopulateFailureIsNotFatal() {
	s.settings.RoomCount = 1
	first := entryPiece()
	populator := &failingPopulator{}
	first.SetPopulator(populator)

	gomock.InOrder(
		mocks.ExpectSpawn(s.ctx, s.scene, "entry", first),
		s.scene.EXPECT().RebuildNavigation(s.ctx).Return(errors.Unavailable("navmesh busy")),
	)

	out := s.generate()

	s.True(out.Layout.Complete)
	s.Equal(1, populator.calls)
}

func (s *PlacementTestSuite) TestFirstRoomSpawnError() {
	mocks.ExpectSpawnError(s.ctx, s.scene, "entry", errors.Internal("boom"))

	_, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: s.scene, Settings: s.settings})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *PlacementTestSuite) TestFirstRoomSpawnReturnsNoPiece() {
	s.scene.EXPECT().Spawn(s.ctx, mocks.SpawnOf("entry")).Return(&engine.SpawnOutput{}, nil)

	_, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: s.scene, Settings: s.settings})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.Contains(err.Error(), "entry")
}
