package dungeon

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-dungeon/internal/engine"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/alignment"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/connections"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/overlap"
)

// run binds a state to the scene and settings it is generated against
type run struct {
	scene     engine.Scene
	validator *overlap.Validator
	settings  Settings
	state     *GenerationState
}

// availableExits lists the usable exits of every placed room, rooms in placement order
func (r *run) availableExits() []entities.ConnectionPoint {
	var exits []entities.ConnectionPoint
	for _, room := range r.state.Rooms() {
		for _, p := range connections.Points(room, r.settings.ExitGroup) {
			if r.state.usable(p) {
				exits = append(exits, p)
			}
		}
	}
	return exits
}

// generateNextRoom tries exits until one corridor and one room fit. It returns false
// when every candidate exit failed.
func (r *run) generateNextRoom(ctx context.Context) bool {
	r.state.calls++
	call := r.state.calls

	candidates := r.availableExits()
	for len(candidates) > 0 {
		idx, err := rng.Pick(r.state.roller, len(candidates))
		if err != nil {
			slog.Error("Failed to draw exit", "error", err)
			return false
		}
		exit := candidates[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)

		attempt := entities.Attempt{Call: call, Exit: exit.Key(), EntranceIndex: -1}
		attempt.Outcome = r.tryExit(ctx, exit, &attempt)
		r.state.record(attempt)

		if attempt.Outcome == entities.OutcomePlaced {
			return true
		}
	}

	return false
}

// tryExit runs one exit -> corridor -> room trial and leaves the scene as it found it
// unless the trial succeeds
func (r *run) tryExit(ctx context.Context, exit entities.ConnectionPoint, attempt *entities.Attempt) entities.AttemptOutcome {
	corridorID, err := r.pick(r.settings.Corridors)
	if err != nil {
		slog.Error("Failed to draw corridor template", "error", err)
		return entities.OutcomeMalformed
	}
	attempt.CorridorTemplate = corridorID

	corridor := r.spawn(ctx, corridorID)
	if corridor == nil {
		return entities.OutcomeSpawnFailed
	}

	points := connections.Points(corridor, r.settings.ExitGroup)
	if len(points) < 2 {
		slog.Error("Corridor template needs two connection points",
			"template_id", corridorID,
			"group", r.settings.ExitGroup,
			"found", len(points))
		r.destroy(ctx, corridor)
		return entities.OutcomeMalformed
	}
	start, end := points[0], points[1]

	if err := alignment.Align(exit, start, corridor); err != nil {
		slog.Error("Failed to align corridor", "template_id", corridorID, "exit", exit.Key(), "error", err)
		r.destroy(ctx, corridor)
		return entities.OutcomeMalformed
	}

	roomID, err := r.chooseRoomTemplate()
	if err != nil {
		slog.Error("Failed to draw room template", "error", err)
		r.destroy(ctx, corridor)
		return entities.OutcomeMalformed
	}
	attempt.RoomTemplate = roomID

	room := r.spawn(ctx, roomID)
	if room == nil {
		r.destroy(ctx, corridor)
		return entities.OutcomeSpawnFailed
	}

	entrances := connections.Points(room, r.settings.EntranceGroup)
	if len(entrances) == 0 {
		slog.Error("Room template has no entrances",
			"template_id", roomID,
			"group", r.settings.EntranceGroup)
		r.destroy(ctx, room, corridor)
		return entities.OutcomeMalformed
	}

	entranceIdx, err := r.chooseEntrance(len(entrances))
	if err != nil {
		slog.Error("Failed to draw entrance", "error", err)
		r.destroy(ctx, room, corridor)
		return entities.OutcomeMalformed
	}
	attempt.EntranceIndex = entranceIdx
	entrance := entrances[entranceIdx]

	if err := alignment.Align(end, entrance, room); err != nil {
		slog.Error("Failed to align room", "template_id", roomID, "entrance", entrance.Name(), "error", err)
		r.destroy(ctx, room, corridor)
		return entities.OutcomeMalformed
	}

	if r.overlaps(ctx, corridor) || r.overlaps(ctx, room) {
		slog.Debug("Placement overlaps existing geometry",
			"exit", exit.Key(),
			"corridor", corridorID,
			"room", roomID)
		r.destroy(ctx, room, corridor)
		r.state.consume(exit)
		return entities.OutcomeOverlap
	}

	r.state.consume(exit)
	r.state.place(corridor, exit.Key())
	r.state.place(room, end.Key())
	r.state.retire(start, end, entrance)

	if room.Kind() == entities.KindShop {
		slog.Info("Shop placed", "piece_id", room.GetID(), "slot", r.state.roomsPlaced)
	}
	slog.Debug("Room placed",
		"piece_id", room.GetID(),
		"template_id", roomID,
		"rooms_placed", r.state.roomsPlaced,
		"target_rooms", r.state.targetRooms)

	return entities.OutcomePlaced
}

// chooseRoomTemplate applies the slot policy: the shop takes the second to last slot
// and the end room the last one when they are configured
func (r *run) chooseRoomTemplate() (string, error) {
	placed, target := r.state.roomsPlaced, r.state.targetRooms

	switch {
	case r.settings.Shop != "" && placed == target-2:
		return r.settings.Shop, nil
	case r.settings.EndRoom != "" && placed == target-1:
		return r.settings.EndRoom, nil
	}
	return r.pick(r.settings.Rooms)
}

func (r *run) chooseEntrance(n int) (int, error) {
	if r.settings.EntrancePolicy == EntrancePolicyFirst {
		return 0, nil
	}
	return rng.Pick(r.state.roller, n)
}

func (r *run) pick(ids []string) (string, error) {
	idx, err := rng.Pick(r.state.roller, len(ids))
	if err != nil {
		return "", err
	}
	return ids[idx], nil
}

func (r *run) spawn(ctx context.Context, templateID string) *entities.Piece {
	out, err := r.scene.Spawn(ctx, &engine.SpawnInput{TemplateID: templateID})
	if err != nil {
		slog.Warn("Failed to spawn template", "template_id", templateID, "error", err)
		return nil
	}
	if out == nil || out.Piece == nil {
		slog.Warn("Scene returned no piece", "template_id", templateID)
		return nil
	}
	return out.Piece
}

func (r *run) destroy(ctx context.Context, pieces ...*entities.Piece) {
	for _, p := range pieces {
		if err := r.scene.Destroy(ctx, p); err != nil {
			slog.Error("Failed to destroy piece", "piece_id", p.GetID(), "error", err)
		}
	}
}

// overlaps counts a failed query as a conflict
func (r *run) overlaps(ctx context.Context, piece *entities.Piece) bool {
	overlapping, err := r.validator.IsOverlapping(ctx, piece)
	if err != nil {
		slog.Warn("Overlap query failed", "piece_id", piece.GetID(), "error", err)
		return true
	}
	return overlapping
}
