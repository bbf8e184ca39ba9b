package dungeon

import (
	"github.com/KirkDiggler/rpg-dungeon/internal/catalog"
	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/connections"
)

// DefaultRoomCount is the room target when none is configured
const DefaultRoomCount = 10

// EntrancePolicy selects which entrance of a new room meets the corridor
type EntrancePolicy string

// Entrance policies
const (
	EntrancePolicyFirst  EntrancePolicy = "first"
	EntrancePolicyRandom EntrancePolicy = "random"
)

// Settings configures one generation run
type Settings struct {
	RoomCount      int   // rooms including the first room; 0 means DefaultRoomCount
	Seed           int64 // 0 draws a seed from the orchestrator's seed source
	FirstRoom      string
	Rooms          []string
	Shop           string // optional, placed in the second to last slot
	EndRoom        string // optional, placed in the last slot
	Corridors      []string
	EntrancePolicy EntrancePolicy
	ExitGroup      string
	EntranceGroup  string
}

// SettingsFromCatalog builds settings from a catalog's generation defaults
func SettingsFromCatalog(g catalog.Generation) Settings {
	return Settings{
		RoomCount:      g.RoomCount,
		Seed:           g.Seed,
		FirstRoom:      g.FirstRoom,
		Rooms:          append([]string(nil), g.Rooms...),
		Shop:           g.Shop,
		EndRoom:        g.EndRoom,
		Corridors:      append([]string(nil), g.Corridors...),
		EntrancePolicy: EntrancePolicy(g.EntrancePolicy),
		ExitGroup:      g.ExitGroup,
		EntranceGroup:  g.EntranceGroup,
	}
}

// WithDefaults fills the optional fields
func (s Settings) WithDefaults() Settings {
	if s.RoomCount == 0 {
		s.RoomCount = DefaultRoomCount
	}
	if s.EntrancePolicy == "" {
		s.EntrancePolicy = EntrancePolicyRandom
	}
	if s.ExitGroup == "" {
		s.ExitGroup = connections.DefaultGroup
	}
	if s.EntranceGroup == "" {
		s.EntranceGroup = connections.DefaultGroup
	}
	return s
}

// Validate checks the settings a run cannot start without
func (s Settings) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("first_room", s.FirstRoom, vb)
	if len(s.Corridors) == 0 {
		vb.Field("corridors", "at least one corridor template is required")
	}
	if len(s.Rooms) == 0 {
		vb.Field("rooms", "at least one room template is required")
	}
	errors.ValidateMin("room_count", s.RoomCount, 1, vb)
	if s.Seed < 0 {
		vb.Field("seed", "must not be negative")
	}
	errors.ValidateEnum("entrance_policy", string(s.EntrancePolicy),
		[]string{string(EntrancePolicyFirst), string(EntrancePolicyRandom)}, vb)

	return vb.Build()
}

// GenerateInput defines the request for one generation run
type GenerateInput struct {
	Scene    engine.Scene
	Settings Settings
	Origin   *geometry.Pose // first room transform; identity when nil
}

// GenerateOutput defines the response for one generation run
type GenerateOutput struct {
	Layout *entities.Layout
	State  *GenerationState
}
