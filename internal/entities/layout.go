package entities

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
)

// HaltReason records why a run stopped adding rooms
type HaltReason string

// Halt reasons
const (
	HaltTargetReached HaltReason = "target_reached"
	HaltExhausted     HaltReason = "exhausted"
	HaltCanceled      HaltReason = "canceled"
)

// AttemptOutcome is how one exit -> corridor -> room trial ended
type AttemptOutcome string

// Attempt outcomes
const (
	OutcomePlaced      AttemptOutcome = "placed"
	OutcomeOverlap     AttemptOutcome = "overlap"
	OutcomeSpawnFailed AttemptOutcome = "spawn_failed"
	OutcomeMalformed   AttemptOutcome = "malformed"
)

// Attempt is one trial recorded in the run's attempt log
type Attempt struct {
	Call             int            `json:"call"` // 1-based placement call the trial belongs to
	Exit             string         `json:"exit"`
	CorridorTemplate string         `json:"corridor_template,omitempty"`
	RoomTemplate     string         `json:"room_template,omitempty"`
	EntranceIndex    int            `json:"entrance_index"`
	Outcome          AttemptOutcome `json:"outcome"`
}

// BoxData is the serialisable form of a geometry.Box
type BoxData struct {
	Center   [3]float64 `json:"center"`
	Rotation [4]float64 `json:"rotation"` // w, x, y, z
	Extent   [3]float64 `json:"extent"`
}

// NewBoxData converts a box for storage
func NewBoxData(b geometry.Box) *BoxData {
	return &BoxData{
		Center:   b.Center,
		Rotation: quatArray(b.Rotation),
		Extent:   b.Extent,
	}
}

// Box converts back to geometry
func (b *BoxData) Box() geometry.Box {
	return geometry.Box{
		Center:   b.Center,
		Rotation: arrayQuat(b.Rotation),
		Extent:   b.Extent,
	}
}

// PlacedPiece is the stored record of a committed piece
type PlacedPiece struct {
	ID         string       `json:"id"`
	TemplateID string       `json:"template_id"`
	Kind       TemplateKind `json:"kind"`
	Position   [3]float64   `json:"position"`
	Rotation   [4]float64   `json:"rotation"` // w, x, y, z
	Bounds     *BoxData     `json:"bounds,omitempty"`
	AttachedTo string       `json:"attached_to,omitempty"` // exit or corridor point key
}

// NewPlacedPiece snapshots a piece
func NewPlacedPiece(p *Piece, attachedTo string) PlacedPiece {
	pose := p.Pose()
	placed := PlacedPiece{
		ID:         p.GetID(),
		TemplateID: p.TemplateID(),
		Kind:       p.Kind(),
		Position:   pose.Position,
		Rotation:   quatArray(pose.Rotation),
		AttachedTo: attachedTo,
	}
	if bounds, ok := p.Bounds(); ok {
		placed.Bounds = NewBoxData(bounds)
	}
	return placed
}

// Pose returns the stored transform
func (p PlacedPiece) Pose() geometry.Pose {
	return geometry.Pose{Position: p.Position, Rotation: arrayQuat(p.Rotation)}
}

// Layout is the result of one generation run
type Layout struct {
	ID             string        `json:"id"`
	Seed           int64         `json:"seed"`
	TargetRooms    int           `json:"target_rooms"`
	RoomsPlaced    int           `json:"rooms_placed"`
	Complete       bool          `json:"complete"`
	HaltReason     HaltReason    `json:"halt_reason"`
	EntrancePolicy string        `json:"entrance_policy"`
	Pieces         []PlacedPiece `json:"pieces"`
	ConsumedExits  []string      `json:"consumed_exits"`
	Attempts       []Attempt     `json:"attempts"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Rooms returns the placed rooms in placement order
func (l *Layout) Rooms() []PlacedPiece {
	return l.filter(func(k TemplateKind) bool { return k.IsRoom() })
}

// Corridors returns the placed corridors in placement order
func (l *Layout) Corridors() []PlacedPiece {
	return l.filter(func(k TemplateKind) bool { return !k.IsRoom() })
}

func (l *Layout) filter(keep func(TemplateKind) bool) []PlacedPiece {
	var out []PlacedPiece
	for _, p := range l.Pieces {
		if keep(p.Kind) {
			out = append(out, p)
		}
	}
	return out
}

func quatArray(q mgl64.Quat) [4]float64 {
	return [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
}

func arrayQuat(a [4]float64) mgl64.Quat {
	return mgl64.Quat{W: a[0], V: mgl64.Vec3{a[1], a[2], a[3]}}
}
