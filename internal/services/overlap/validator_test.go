package overlap_test

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
	"github.com/KirkDiggler/rpg-dungeon/internal/services/overlap"
)

type ValidatorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	scene     *enginemock.MockScene
	validator *overlap.Validator
	ctx       context.Context
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.scene = enginemock.NewMockScene(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.validator, err = overlap.NewValidator(&overlap.Config{Query: s.scene})
	s.Require().NoError(err)
}

func (s *ValidatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func boxedPiece(id string, withBox bool) *entities.Piece {
	root := entities.NewComponent("Root", entities.ComponentScene, geometry.Identity())
	if withBox {
		box := entities.NewComponent("Bounds", entities.ComponentBox, geometry.At(mgl64.Vec3{0, 0, 1}))
		box.Extent = mgl64.Vec3{2, 2, 1}
		box.Layer = entities.LayerDynamic
		root.AddChild(box)
	}
	tmpl := &entities.Template{ID: "tmpl", Kind: entities.KindRoom, Root: root}
	return tmpl.Instantiate(id, geometry.At(mgl64.Vec3{10, 0, 0}))
}

func (s *ValidatorTestSuite) TestNoHits() {
	piece := boxedPiece("room-1", true)

	s.scene.EXPECT().
		OverlapBox(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.OverlapBoxInput) (*engine.OverlapBoxOutput, error) {
			s.Equal(entities.LayerDynamic, input.Layer)
			s.Equal([]string{"room-1"}, input.IgnoreIDs)
			s.InDelta(10.0, input.Box.Center.X(), 1e-9)
			s.InDelta(1.0, input.Box.Center.Z(), 1e-9)
			s.InDelta(2.0, input.Box.Extent.X(), 1e-9)
			return &engine.OverlapBoxOutput{}, nil
		})

	overlapping, err := s.validator.IsOverlapping(s.ctx, piece)
	s.Require().NoError(err)
	s.False(overlapping)
}

func (s *ValidatorTestSuite) TestHitOtherPiece() {
	piece := boxedPiece("room-1", true)

	s.scene.EXPECT().
		OverlapBox(s.ctx, gomock.Any()).
		Return(&engine.OverlapBoxOutput{Hits: []engine.OverlapHit{{PieceID: "room-0", TemplateID: "start"}}}, nil)

	overlapping, err := s.validator.IsOverlapping(s.ctx, piece)
	s.Require().NoError(err)
	s.True(overlapping)
}

func (s *ValidatorTestSuite) TestSelfHitIgnored() {
	piece := boxedPiece("room-1", true)

	s.scene.EXPECT().
		OverlapBox(s.ctx, gomock.Any()).
		Return(&engine.OverlapBoxOutput{Hits: []engine.OverlapHit{{PieceID: "room-1"}}}, nil)

	overlapping, err := s.validator.IsOverlapping(s.ctx, piece)
	s.Require().NoError(err)
	s.False(overlapping)
}

func (s *ValidatorTestSuite) TestNoCollider() {
	piece := boxedPiece("room-1", false)

	overlapping, err := s.validator.IsOverlapping(s.ctx, piece)
	s.Require().NoError(err)
	s.False(overlapping)
}

func (s *ValidatorTestSuite) TestQueryError() {
	piece := boxedPiece("room-1", true)

	s.scene.EXPECT().
		OverlapBox(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("physics offline"))

	_, err := s.validator.IsOverlapping(s.ctx, piece)
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *ValidatorTestSuite) TestNilOutput() {
	piece := boxedPiece("room-1", true)

	s.scene.EXPECT().
		OverlapBox(s.ctx, gomock.Any()).
		Return(nil, nil)

	var err error
	s.Require().NotPanics(func() {
		_, err = s.validator.IsOverlapping(s.ctx, piece)
	})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *ValidatorTestSuite) TestConfigValidation() {
	_, err := overlap.NewValidator(&overlap.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = overlap.NewValidator(nil)
	s.Require().Error(err)
}
