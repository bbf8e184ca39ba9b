// Package rng provides the seeded random stream a dungeon run draws every choice from.
//
// A Stream satisfies rpg-toolkit's dice.Roller, so generation code only ever sees the
// dice.Roller interface and tests can substitute a scripted roller.
package rng

import (
	"math"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// streamSalt is the second PCG state word; fixed so a seed alone identifies a stream.
const streamSalt = 0x9e3779b97f4a7c15

// Stream is a deterministic dice.Roller seeded once per run
type Stream struct {
	seed int64
	src  *rand.Rand
}

var _ dice.Roller = (*Stream)(nil)

// NewStream creates a stream for the given seed
func NewStream(seed int64) *Stream {
	return &Stream{
		seed: seed,
		src:  rand.New(rand.NewPCG(uint64(seed), streamSalt)),
	}
}

// Seed returns the seed the stream was created with
func (s *Stream) Seed() int64 {
	return s.seed
}

// Roll returns a value in [1, size]
func (s *Stream) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return s.src.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Stream) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}

	results := make([]int, count)
	for i := range results {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Pick draws a uniform index in [0, n) from roller
func Pick(roller dice.Roller, n int) (int, error) {
	v, err := roller.Roll(n)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to pick from %d candidates", n)
	}
	if v < 1 || v > n {
		return 0, errors.Internalf("roller returned %d outside [1, %d]", v, n)
	}
	return v - 1, nil
}

// NewSeed draws a positive seed from a process-wide roller
func NewSeed(roller dice.Roller) (int64, error) {
	v, err := roller.Roll(math.MaxInt32)
	if err != nil {
		return 0, errors.Wrap(err, "failed to draw seed")
	}
	return int64(v), nil
}
