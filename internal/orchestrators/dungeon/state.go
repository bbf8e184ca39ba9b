package dungeon

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// GenerationState is everything one run accumulates. It is created by Generate and
// owned by that call.
type GenerationState struct {
	seed   int64
	roller dice.Roller

	placed     []*entities.Piece
	attachedTo map[string]string

	consumed      map[entities.ConnectionPoint]struct{}
	consumedOrder []entities.ConnectionPoint
	retired       map[entities.ConnectionPoint]struct{}

	roomsPlaced int
	targetRooms int
	calls       int
	attempts    []entities.Attempt
	halt        entities.HaltReason
}

func newGenerationState(seed int64, roller dice.Roller, targetRooms int) *GenerationState {
	return &GenerationState{
		seed:        seed,
		roller:      roller,
		attachedTo:  make(map[string]string),
		consumed:    make(map[entities.ConnectionPoint]struct{}),
		retired:     make(map[entities.ConnectionPoint]struct{}),
		targetRooms: targetRooms,
	}
}

// Seed returns the seed the run's stream was created from
func (s *GenerationState) Seed() int64 {
	return s.seed
}

// RoomsPlaced returns how many rooms, the first room included, are in the layout
func (s *GenerationState) RoomsPlaced() int {
	return s.roomsPlaced
}

// TargetRooms returns the configured room target
func (s *GenerationState) TargetRooms() int {
	return s.targetRooms
}

// HaltReason returns why the run stopped
func (s *GenerationState) HaltReason() entities.HaltReason {
	return s.halt
}

// Pieces returns every placed piece in placement order
func (s *GenerationState) Pieces() []*entities.Piece {
	return append([]*entities.Piece(nil), s.placed...)
}

// Rooms returns the placed rooms in placement order
func (s *GenerationState) Rooms() []*entities.Piece {
	var out []*entities.Piece
	for _, p := range s.placed {
		if p.Kind().IsRoom() {
			out = append(out, p)
		}
	}
	return out
}

// Corridors returns the placed corridors in placement order
func (s *GenerationState) Corridors() []*entities.Piece {
	var out []*entities.Piece
	for _, p := range s.placed {
		if !p.Kind().IsRoom() {
			out = append(out, p)
		}
	}
	return out
}

// ConsumedExits returns the burned exits in the order they were consumed
func (s *GenerationState) ConsumedExits() []entities.ConnectionPoint {
	return append([]entities.ConnectionPoint(nil), s.consumedOrder...)
}

// IsConsumed reports whether an exit has been burned
func (s *GenerationState) IsConsumed(p entities.ConnectionPoint) bool {
	_, ok := s.consumed[p]
	return ok
}

// Attempts returns the attempt log
func (s *GenerationState) Attempts() []entities.Attempt {
	return append([]entities.Attempt(nil), s.attempts...)
}

func (s *GenerationState) consume(p entities.ConnectionPoint) {
	if s.IsConsumed(p) {
		return
	}
	s.consumed[p] = struct{}{}
	s.consumedOrder = append(s.consumedOrder, p)
}

func (s *GenerationState) retire(points ...entities.ConnectionPoint) {
	for _, p := range points {
		s.retired[p] = struct{}{}
	}
}

// usable reports whether an exit may still start an attempt
func (s *GenerationState) usable(p entities.ConnectionPoint) bool {
	if _, ok := s.consumed[p]; ok {
		return false
	}
	_, ok := s.retired[p]
	return !ok
}

func (s *GenerationState) place(p *entities.Piece, attachedTo string) {
	s.placed = append(s.placed, p)
	if attachedTo != "" {
		s.attachedTo[p.GetID()] = attachedTo
	}
	if p.Kind().IsRoom() {
		s.roomsPlaced++
	}
}

func (s *GenerationState) record(a entities.Attempt) {
	s.attempts = append(s.attempts, a)
}

// Layout snapshots the state
func (s *GenerationState) Layout(id string, policy EntrancePolicy, createdAt time.Time) *entities.Layout {
	layout := &entities.Layout{
		ID:             id,
		Seed:           s.seed,
		TargetRooms:    s.targetRooms,
		RoomsPlaced:    s.roomsPlaced,
		Complete:       s.roomsPlaced >= s.targetRooms,
		HaltReason:     s.halt,
		EntrancePolicy: string(policy),
		Pieces:         make([]entities.PlacedPiece, 0, len(s.placed)),
		ConsumedExits:  make([]string, 0, len(s.consumedOrder)),
		Attempts:       s.Attempts(),
		CreatedAt:      createdAt,
	}
	for _, p := range s.placed {
		layout.Pieces = append(layout.Pieces, entities.NewPlacedPiece(p, s.attachedTo[p.GetID()]))
	}
	for _, p := range s.consumedOrder {
		layout.ConsumedExits = append(layout.ConsumedExits, p.Key())
	}
	return layout
}
