// Package dice rolls the four tetrahedral dice of the Royal Game of Ur.
package dice

import (
	"math/rand"
	"time"
)

const (
	// Count is the number of dice thrown each turn.
	Count = 4
	// MaxRoll is the highest possible roll.
	MaxRoll = Count
)

// Roller throws the dice from a seeded source so a game can be replayed.
type Roller struct {
	rng  *rand.Rand
	seed int64
}

// NewRoller creates a roller. A seed of 0 picks one from the clock.
func NewRoller(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Roller{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed actually in use.
func (r *Roller) Seed() int64 {
	return r.seed
}

// Roll throws every die. Each die has two marked tips out of four, so it
// scores 1 with probability one half.
func (r *Roller) Roll() int {
	total := 0
	for i := 0; i < Count; i++ {
		total += r.rng.Intn(2)
	}
	return total
}

// Distribution returns the probability of each roll 0..MaxRoll.
func Distribution() [MaxRoll + 1]float64 {
	var out [MaxRoll + 1]float64
	outcomes := 1 << Count
	for mask := 0; mask < outcomes; mask++ {
		marked := 0
		for m := mask; m > 0; m >>= 1 {
			marked += m & 1
		}
		out[marked] += 1 / float64(outcomes)
	}
	return out
}
