package testutils

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// ScriptedRoller returns queued values in order, then errors
type ScriptedRoller struct {
	values []int
	calls  int
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller creates a roller that replays values
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if r.calls >= len(r.values) {
		return 0, errors.Internalf("scripted roller exhausted after %d rolls", r.calls)
	}
	v := r.values[r.calls]
	r.calls++
	if v < 1 || v > size {
		return 0, errors.InvalidArgumentf("scripted value %d does not fit a d%d", v, size)
	}
	return v, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Calls reports how many values were consumed
func (r *ScriptedRoller) Calls() int {
	return r.calls
}
