package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
)

func newFlagCommand(t *testing.T, args ...string) (*cobra.Command, *runFlags) {
	t.Helper()

	var f runFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &f
}

func TestRunFlagsApply(t *testing.T) {
	defaults := dungeon.Settings{
		RoomCount: 10,
		Seed:      5,
		FirstRoom: "entry",
		Rooms:     []string{"hall"},
		Corridors: []string{"straight"},
	}

	t.Run("unset flags keep defaults", func(t *testing.T) {
		cmd, f := newFlagCommand(t)
		assert.Equal(t, defaults, f.apply(cmd, defaults))
	})

	t.Run("set flags override", func(t *testing.T) {
		cmd, f := newFlagCommand(t,
			"--rooms", "4",
			"--seed", "0",
			"--entrance-policy", "first",
			"--room-templates", "hall,crypt",
			"--end-room", "lair",
		)

		got := f.apply(cmd, defaults)
		assert.Equal(t, 4, got.RoomCount)
		assert.Equal(t, int64(0), got.Seed)
		assert.Equal(t, dungeon.EntrancePolicyFirst, got.EntrancePolicy)
		assert.Equal(t, []string{"hall", "crypt"}, got.Rooms)
		assert.Equal(t, "lair", got.EndRoom)
		assert.Equal(t, []string{"straight"}, got.Corridors)
		assert.Equal(t, "entry", got.FirstRoom)
	})
}

func TestRunFlagsOriginPose(t *testing.T) {
	_, f := newFlagCommand(t)
	pose, err := f.originPose()
	require.NoError(t, err)
	assert.Nil(t, pose)

	_, f = newFlagCommand(t, "--origin", "1,2,3", "--yaw", "90")
	pose, err = f.originPose()
	require.NoError(t, err)
	require.NotNil(t, pose)
	assert.True(t, pose.ApproxEqual(geometry.Yawed(mgl64.Vec3{1, 2, 3}, 90), 1e-9))

	_, f = newFlagCommand(t, "--origin", "1,2")
	_, err = f.originPose()
	assert.Error(t, err)
}
