package combat

import "github.com/rs/zerolog"

// Tracer receives hooks from the combat engine as a vector attack unfolds.
// Implementations must be cheap when tracing is off; the engine calls them
// on every round.
type Tracer interface {
	AttackBegun(frontUnits, territoryUnits int)
	RoundResolved(frontUnits, territoryUnits int, attackDice, defendDice []int, attackerLost, defenderLost int)
	TerritoryConquered(remainingFront int)
	VectorExhausted(remainingFront, remainingEnemies int)
}

type nopTracer struct{}

// NewNopTracer returns a Tracer that discards every hook.
func NewNopTracer() Tracer {
	return nopTracer{}
}

func (nopTracer) AttackBegun(int, int)                           {}
func (nopTracer) RoundResolved(int, int, []int, []int, int, int) {}
func (nopTracer) TerritoryConquered(int)                         {}
func (nopTracer) VectorExhausted(int, int)                       {}

type logTracer struct {
	logger zerolog.Logger
}

// NewLogTracer returns a Tracer that writes each hook as a debug event.
func NewLogTracer(logger zerolog.Logger) Tracer {
	return &logTracer{logger: logger}
}

func (t *logTracer) AttackBegun(frontUnits, territoryUnits int) {
	t.logger.Debug().
		Int("front", frontUnits).
		Int("defenders", territoryUnits).
		Msg("attacking territory")
}

func (t *logTracer) RoundResolved(frontUnits, territoryUnits int, attackDice, defendDice []int, attackerLost, defenderLost int) {
	t.logger.Debug().
		Int("front", frontUnits).
		Int("defenders", territoryUnits).
		Ints("attackDice", attackDice).
		Ints("defendDice", defendDice).
		Int("frontLost", attackerLost).
		Int("defendersLost", defenderLost).
		Msg("round resolved")
}

func (t *logTracer) TerritoryConquered(remainingFront int) {
	t.logger.Debug().
		Int("front", remainingFront).
		Msg("territory conquered")
}

func (t *logTracer) VectorExhausted(remainingFront, remainingEnemies int) {
	t.logger.Debug().
		Int("front", remainingFront).
		Int("defenders", remainingEnemies).
		Msg("attack failed")
}
