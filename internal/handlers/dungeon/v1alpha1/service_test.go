package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine/sim"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *grpc.Server
	conn   *grpc.ClientConn
	client v1alpha1.DungeonServiceClient
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	linear := testutils.LinearCatalog(s.T())
	factory, err := sim.NewFactory(&sim.Config{
		Catalog:     linear,
		IDGenerator: idgen.NewSequential("piece"),
	})
	s.Require().NoError(err)

	orchestrator, err := dungeon.NewOrchestrator(&dungeon.Config{
		IDGenerator: idgen.NewSequential("layout"),
		Clock:       &clock.Fixed{At: now},
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Orchestrator: orchestrator,
		SceneFactory: factory,
		Defaults: dungeon.Settings{
			RoomCount:      3,
			Seed:           42,
			FirstRoom:      "entry",
			Rooms:          []string{"hall"},
			Corridors:      []string{"straight"},
			EntrancePolicy: dungeon.EntrancePolicyFirst,
		},
		Repository: layouts.NewInMemory(&clock.Fixed{At: now}),
	})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterDungeonServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.client = v1alpha1.NewDungeonServiceClient(s.conn)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.conn.Close())
	s.server.Stop()
}

func (s *ServiceTestSuite) call(
	method func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error),
	fields map[string]any,
	out any,
) error {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)

	resp, err := method(s.ctx, req)
	if err != nil {
		return err
	}
	if out != nil {
		s.Require().NoError(v1alpha1.FromStruct(resp, out))
	}
	return nil
}

func (s *ServiceTestSuite) TestLayoutLifecycle() {
	var generated v1alpha1.GenerateDungeonResponse
	s.Require().NoError(s.call(s.client.GenerateDungeon, map[string]any{}, &generated))

	layout := generated.Layout
	s.Require().NotNil(layout)
	s.True(generated.Saved)
	s.Equal("layout_1", layout.ID)
	s.Equal(int64(42), layout.Seed)
	s.Equal(3, layout.RoomsPlaced)
	s.True(layout.Complete)
	s.Equal(entities.HaltTargetReached, layout.HaltReason)
	s.Len(layout.Rooms(), 3)
	s.Len(layout.Corridors(), 2)

	var fetched v1alpha1.GetLayoutResponse
	s.Require().NoError(s.call(s.client.GetLayout, map[string]any{"id": layout.ID}, &fetched))
	s.Equal(layout, fetched.Layout)

	var listed v1alpha1.ListLayoutsResponse
	s.Require().NoError(s.call(s.client.ListLayouts, map[string]any{"seed": 42}, &listed))
	s.Equal([]string{layout.ID}, listed.IDs)

	s.Require().NoError(s.call(s.client.DeleteLayout, map[string]any{"id": layout.ID}, nil))

	err := s.call(s.client.GetLayout, map[string]any{"id": layout.ID}, nil)
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *ServiceTestSuite) TestGenerateDungeon_OverridesReachTheRun() {
	var generated v1alpha1.GenerateDungeonResponse
	s.Require().NoError(s.call(s.client.GenerateDungeon, map[string]any{
		"room_count": 2,
		"seed":       9,
		"end_room":   "lair",
	}, &generated))

	layout := generated.Layout
	s.Require().NotNil(layout)
	s.Equal(int64(9), layout.Seed)
	s.Equal(2, layout.TargetRooms)

	rooms := layout.Rooms()
	s.Require().Len(rooms, 2)
	s.Equal("lair", rooms[1].TemplateID)
}

func (s *ServiceTestSuite) TestGenerateDungeon_InvalidSettings() {
	err := s.call(s.client.GenerateDungeon, map[string]any{"entrance_policy": "sideways"}, nil)
	s.Equal(codes.InvalidArgument, status.Code(err))

	err = s.call(s.client.GenerateDungeon, map[string]any{"first_room": "missing"}, nil)
	s.Equal(codes.Unavailable, status.Code(err))
}
