package dungeon_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/catalog"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine/sim"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	orchestrator dungeon.Service
	linear       *catalog.Catalog
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.linear = testutils.LinearCatalog(s.T())

	var err error
	s.orchestrator, err = dungeon.NewOrchestrator(&dungeon.Config{
		IDGenerator: idgen.NewSequential("layout"),
		SeedSource:  testutils.NewScriptedRoller(777),
		Clock:       &clock.Fixed{At: fixedNow},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) newScene(c *catalog.Catalog) *sim.Scene {
	factory, err := sim.NewFactory(&sim.Config{Catalog: c, IDGenerator: idgen.NewSequential("piece")})
	s.Require().NoError(err)
	return factory.Scene()
}

func linearSettings(rooms int) dungeon.Settings {
	return dungeon.Settings{
		RoomCount:      rooms,
		Seed:           42,
		FirstRoom:      "entry",
		Rooms:          []string{"hall"},
		Corridors:      []string{"straight"},
		EntrancePolicy: dungeon.EntrancePolicyFirst,
	}
}

func (s *OrchestratorTestSuite) generate(scene *sim.Scene, settings dungeon.Settings) *dungeon.GenerateOutput {
	out, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: scene, Settings: settings})
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.Require().NotNil(out.Layout)
	return out
}

func (s *OrchestratorTestSuite) TestHappyPath() {
	scene := s.newScene(s.linear)

	out := s.generate(scene, linearSettings(3))
	layout := out.Layout

	s.Equal("layout_1", layout.ID)
	s.Equal(int64(42), layout.Seed)
	s.Equal(3, layout.RoomsPlaced)
	s.True(layout.Complete)
	s.Equal(entities.HaltTargetReached, layout.HaltReason)
	s.Equal(fixedNow, layout.CreatedAt)
	s.Len(layout.Rooms(), 3)
	s.Len(layout.Corridors(), 2)
	s.Equal([]string{"piece_1/East", "piece_3/East"}, layout.ConsumedExits)

	rooms := layout.Rooms()
	for i, want := range []float64{0, 16, 32} {
		s.InDelta(want, rooms[i].Position[0], 1e-9, "room %d x", i)
		s.InDelta(0, rooms[i].Position[1], 1e-9, "room %d y", i)
	}
	s.Equal("piece_2/End", rooms[1].AttachedTo)
	s.Equal("piece_1/East", layout.Corridors()[0].AttachedTo)

	s.Require().Len(layout.Attempts, 2)
	for i, a := range layout.Attempts {
		s.Equal(i+1, a.Call)
		s.Equal(entities.OutcomePlaced, a.Outcome)
		s.Equal(0, a.EntranceIndex)
	}

	stats := scene.Stats()
	s.Equal(1, stats.NavRebuilds)
	s.Equal(0, stats.Destroyed)
	s.Equal([]string{"rats"}, scene.Encounters(rooms[1].ID))
	s.Equal(2, stats.Populated)
}

func (s *OrchestratorTestSuite) TestHappyPathTwoRoomTemplates() {
	settings := linearSettings(3)
	settings.Rooms = []string{"hall", "vault"}

	first := s.generate(s.newScene(s.linear), settings).Layout

	s.Equal(3, first.RoomsPlaced)
	s.Equal(entities.HaltTargetReached, first.HaltReason)
	s.Len(first.Rooms(), 3)
	s.Len(first.Corridors(), 2)
	s.GreaterOrEqual(len(first.ConsumedExits), 2)
	for _, room := range first.Rooms()[1:] {
		s.Contains(settings.Rooms, room.TemplateID)
	}

	second := s.generate(s.newScene(s.linear), settings).Layout
	s.Require().Len(second.Pieces, len(first.Pieces))
	for i := range first.Pieces {
		s.Equal(first.Pieces[i].TemplateID, second.Pieces[i].TemplateID, "piece %d", i)
	}
}

func (s *OrchestratorTestSuite) TestSingleRoomTarget() {
	scene := s.newScene(s.linear)

	out := s.generate(scene, linearSettings(1))

	s.Equal(1, out.Layout.RoomsPlaced)
	s.True(out.Layout.Complete)
	s.Empty(out.Layout.Attempts)
	s.Equal(1, scene.Stats().Spawned)
}

func (s *OrchestratorTestSuite) TestRoomCountNeverExceedsTarget() {
	for _, target := range []int{2, 5, 8} {
		scene := s.newScene(s.linear)
		out := s.generate(scene, linearSettings(target))

		s.Equal(target, out.State.RoomsPlaced())
		s.Len(out.State.Rooms(), target)
		s.Len(out.State.Corridors(), target-1)
	}
}

func (s *OrchestratorTestSuite) TestForcedOverlap() {
	scene := s.newScene(s.linear)
	settings := linearSettings(2)
	settings.Corridors = []string{"uturn"}

	out := s.generate(scene, settings)
	layout := out.Layout

	s.Equal(1, layout.RoomsPlaced)
	s.False(layout.Complete)
	s.Equal(entities.HaltExhausted, layout.HaltReason)
	s.Equal([]string{"piece_1/East"}, layout.ConsumedExits)
	s.Require().Len(layout.Attempts, 1)
	s.Equal(entities.OutcomeOverlap, layout.Attempts[0].Outcome)

	s.Len(scene.Pieces(), 1, "corridor and room must be destroyed")
	s.Equal(2, scene.Stats().Destroyed)
	s.Equal(1, scene.Stats().NavRebuilds)
}

func (s *OrchestratorTestSuite) TestExhaustedPool() {
	scene := s.newScene(s.linear)
	settings := linearSettings(5)
	settings.Rooms = []string{"dead_end"}
	settings.Corridors = []string{"uturn"}

	out := s.generate(scene, settings)
	layout := out.Layout

	s.Equal(1, layout.RoomsPlaced)
	s.Equal(entities.HaltExhausted, layout.HaltReason)
	s.False(layout.Complete)
	s.Equal([]string{"piece_1/East"}, layout.ConsumedExits)
	s.Require().Len(layout.Attempts, 1)
	s.Equal(entities.OutcomeOverlap, layout.Attempts[0].Outcome)
	s.Len(scene.Pieces(), 1)
}

func (s *OrchestratorTestSuite) TestDeadEndRoomsExhaustPool() {
	scene := s.newScene(s.linear)
	settings := linearSettings(4)
	settings.Rooms = []string{"dead_end"}

	out := s.generate(scene, settings)

	s.Equal(2, out.Layout.RoomsPlaced)
	s.Equal(entities.HaltExhausted, out.Layout.HaltReason)
	s.False(out.Layout.Complete)
	s.Len(out.Layout.ConsumedExits, 1)
	s.Len(out.Layout.Attempts, 1, "the second call has no candidates to try")
}

func (s *OrchestratorTestSuite) TestShopAndEndRoomSlots() {
	scene := s.newScene(s.linear)
	settings := linearSettings(4)
	settings.Shop = "market"
	settings.EndRoom = "lair"

	out := s.generate(scene, settings)

	var kinds []entities.TemplateKind
	for _, r := range out.Layout.Rooms() {
		kinds = append(kinds, r.Kind)
	}
	s.Equal([]entities.TemplateKind{
		entities.KindFirstRoom,
		entities.KindRoom,
		entities.KindShop,
		entities.KindEndRoom,
	}, kinds)
}

func (s *OrchestratorTestSuite) TestEndRoomOnlyTakesLastSlot() {
	scene := s.newScene(s.linear)
	settings := linearSettings(2)
	settings.Shop = "market"
	settings.EndRoom = "lair"

	out := s.generate(scene, settings)

	rooms := out.Layout.Rooms()
	s.Require().Len(rooms, 2)
	s.Equal(entities.KindEndRoom, rooms[1].Kind)
}

func (s *OrchestratorTestSuite) TestOrigin() {
	scene := s.newScene(s.linear)
	origin := geometry.Yawed(mgl64.Vec3{10, 20, 0}, 90)

	out, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{
		Scene:    scene,
		Settings: linearSettings(2),
		Origin:   &origin,
	})
	s.Require().NoError(err)

	rooms := out.Layout.Rooms()
	s.Require().Len(rooms, 2)
	s.True(rooms[0].Pose().ApproxEqual(origin, 1e-9))
	s.InDelta(10.0, rooms[1].Position[0], 1e-9)
	s.InDelta(36.0, rooms[1].Position[1], 1e-9)
}

func (s *OrchestratorTestSuite) TestSeedZeroDrawsFromSeedSource() {
	scene := s.newScene(s.linear)
	settings := linearSettings(2)
	settings.Seed = 0

	out := s.generate(scene, settings)

	s.Equal(int64(777), out.Layout.Seed)
	s.Equal(int64(777), out.State.Seed())
}

func (s *OrchestratorTestSuite) TestCanceledContext() {
	scene := s.newScene(s.linear)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	out, err := s.orchestrator.Generate(ctx, &dungeon.GenerateInput{Scene: scene, Settings: linearSettings(3)})
	s.Require().NoError(err)

	s.Equal(entities.HaltCanceled, out.Layout.HaltReason)
	s.Equal(1, out.Layout.RoomsPlaced)
	s.Equal(0, scene.Stats().NavRebuilds)
}

func (s *OrchestratorTestSuite) TestInvalidSettings() {
	testCases := []struct {
		name   string
		mutate func(*dungeon.Settings)
		field  string
	}{
		{name: "no first room", mutate: func(st *dungeon.Settings) { st.FirstRoom = "" }, field: "first_room"},
		{name: "no corridors", mutate: func(st *dungeon.Settings) { st.Corridors = nil }, field: "corridors"},
		{name: "no rooms", mutate: func(st *dungeon.Settings) { st.Rooms = nil }, field: "rooms"},
		{name: "negative room count", mutate: func(st *dungeon.Settings) { st.RoomCount = -1 }, field: "room_count"},
		{name: "negative seed", mutate: func(st *dungeon.Settings) { st.Seed = -5 }, field: "seed"},
		{name: "unknown policy", mutate: func(st *dungeon.Settings) { st.EntrancePolicy = "last" }, field: "entrance_policy"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			scene := s.newScene(s.linear)
			settings := linearSettings(3)
			tc.mutate(&settings)

			_, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: scene, Settings: settings})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
			s.Equal(0, scene.Stats().Spawned, "nothing may be spawned")
		})
	}
}

func (s *OrchestratorTestSuite) TestMissingInput() {
	_, err := s.orchestrator.Generate(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Settings: linearSettings(2)})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUnknownFirstRoom() {
	scene := s.newScene(s.linear)
	settings := linearSettings(2)
	settings.FirstRoom = "missing"

	_, err := s.orchestrator.Generate(s.ctx, &dungeon.GenerateInput{Scene: scene, Settings: settings})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := dungeon.NewOrchestrator(&dungeon.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = dungeon.NewOrchestrator(&dungeon.Config{IDGenerator: idgen.NewSequential("")})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestSettingsFromCatalog() {
	settings := dungeon.SettingsFromCatalog(testutils.DefaultCatalog(s.T()).Generation)

	s.Equal(10, settings.RoomCount)
	s.Equal("start_hall", settings.FirstRoom)
	s.Equal("shop", settings.Shop)
	s.Equal("boss_room", settings.EndRoom)
	s.Equal(dungeon.EntrancePolicyRandom, settings.EntrancePolicy)
	s.NoError(settings.WithDefaults().Validate())
}

func (s *OrchestratorTestSuite) TestWithDefaults() {
	settings := dungeon.Settings{}.WithDefaults()

	s.Equal(dungeon.DefaultRoomCount, settings.RoomCount)
	s.Equal(dungeon.EntrancePolicyRandom, settings.EntrancePolicy)
	s.Equal("ExitList", settings.ExitGroup)
	s.Equal("ExitList", settings.EntranceGroup)
}
