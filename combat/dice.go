package combat

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

const (
	DiceSides     = 6
	MaxAttackDice = 3
	MaxDefendDice = 2
)

// Largest multiple of DiceSides below the generator's range. Draws at or
// above this value are rejected so the modulo reduction stays unbiased.
const maxDiceDraw = (math.MaxUint32 / DiceSides) * DiceSides

// Roller produces one side's dice for a combat round, sorted highest-first.
type Roller interface {
	RollDice(count int) []int
}

type diceRoller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller drawing from a source seeded with seed. Each
// Roller owns its stream; rollers are not safe for concurrent use.
func NewRoller(seed uint64) Roller {
	return &diceRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRollerFromSource returns a Roller drawing from src.
func NewRollerFromSource(src rand.Source) Roller {
	return &diceRoller{rng: rand.New(src)}
}

func (r *diceRoller) RollDice(count int) []int {
	dice := make([]int, count)
	for i := range dice {
		dice[i] = r.roll()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(dice)))
	return dice
}

func (r *diceRoller) roll() int {
	for {
		draw := r.rng.Uint32()
		if draw < maxDiceDraw {
			return int(draw%DiceSides) + 1
		}
	}
}
