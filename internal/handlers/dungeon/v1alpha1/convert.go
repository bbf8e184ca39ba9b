package v1alpha1

import (
	"bytes"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
)

// MaxWireSeed is the largest seed a Struct number carries without losing precision
const MaxWireSeed = int64(1) << 53

// GenerateDungeonRequest overrides the server's generation defaults.
// Unset fields keep the default.
type GenerateDungeonRequest struct {
	RoomCount      *int     `json:"room_count,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	EntrancePolicy string   `json:"entrance_policy,omitempty"`
	FirstRoom      string   `json:"first_room,omitempty"`
	Rooms          []string `json:"rooms,omitempty"`
	Shop           string   `json:"shop,omitempty"`
	EndRoom        string   `json:"end_room,omitempty"`
	Corridors      []string `json:"corridors,omitempty"`
	TTLSeconds     int64    `json:"ttl_seconds,omitempty"`
}

// Apply merges the request over defaults
func (r *GenerateDungeonRequest) Apply(defaults dungeon.Settings) dungeon.Settings {
	s := defaults
	if r.RoomCount != nil {
		s.RoomCount = *r.RoomCount
	}
	if r.Seed != nil {
		s.Seed = *r.Seed
	}
	if r.EntrancePolicy != "" {
		s.EntrancePolicy = dungeon.EntrancePolicy(r.EntrancePolicy)
	}
	if r.FirstRoom != "" {
		s.FirstRoom = r.FirstRoom
	}
	if r.Rooms != nil {
		s.Rooms = append([]string(nil), r.Rooms...)
	}
	if r.Shop != "" {
		s.Shop = r.Shop
	}
	if r.EndRoom != "" {
		s.EndRoom = r.EndRoom
	}
	if r.Corridors != nil {
		s.Corridors = append([]string(nil), r.Corridors...)
	}
	return s
}

// Validate checks the fields that cannot be judged against defaults
func (r *GenerateDungeonRequest) Validate() error {
	vb := errors.NewValidationBuilder()

	if r.Seed != nil && *r.Seed > MaxWireSeed {
		vb.Fieldf("seed", "must not exceed %d", MaxWireSeed)
	}
	if r.TTLSeconds < 0 {
		vb.Field("ttl_seconds", "must not be negative")
	}

	return vb.Build()
}

// GenerateDungeonResponse carries the generated layout
type GenerateDungeonResponse struct {
	Layout    *entities.Layout `json:"layout"`
	Saved     bool             `json:"saved"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}

// GetLayoutRequest selects a stored layout
type GetLayoutRequest struct {
	ID string `json:"id"`
}

// GetLayoutResponse carries a stored layout
type GetLayoutResponse struct {
	Layout *entities.Layout `json:"layout"`
}

// ListLayoutsRequest selects stored layouts by seed
type ListLayoutsRequest struct {
	Seed int64 `json:"seed"`
}

// ListLayoutsResponse lists stored layout IDs
type ListLayoutsResponse struct {
	IDs []string `json:"ids"`
}

// DeleteLayoutRequest selects a stored layout
type DeleteLayoutRequest struct {
	ID string `json:"id"`
}

// DeleteLayoutResponse is empty
type DeleteLayoutResponse struct{}

// ToStruct converts a JSON-tagged message into a Struct
func ToStruct(msg any) (*structpb.Struct, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert message to struct")
	}
	return out, nil
}

// FromStruct decodes a Struct into a JSON-tagged message. Unknown fields are rejected.
func FromStruct(in *structpb.Struct, msg any) error {
	if in == nil {
		in = &structpb.Struct{}
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.InvalidArgumentf("failed to read request: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}
