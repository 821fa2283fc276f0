package combat

// Engine resolves attacks for one simulation stream. It holds no state
// beyond its dice source and tracer, so every simulation is a pure function
// of its inputs and the dice. Engines are not safe for concurrent use;
// parallel callers each build their own.
type Engine struct {
	roller Roller
	tracer Tracer
}

type Option func(e *Engine)

// WithRoller replaces the engine's dice source.
func WithRoller(roller Roller) Option {
	return func(e *Engine) {
		if roller != nil {
			e.roller = roller
		}
	}
}

// WithSeed replaces the engine's dice source with one seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.roller = NewRoller(seed)
	}
}

// WithTracer installs a tracer on the engine's hook points.
func WithTracer(tracer Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{ // Default values
		roller: NewRoller(1),
		tracer: NewNopTracer(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// SingleRound resolves one exchange of dice between an attacking front and a
// defended territory. One front unit is always garrisoned and cannot attack,
// so the attacker commits min(frontUnits-1, 3) dice; the defender commits
// min(territoryUnits, 2). The top dice are compared pairwise in descending
// order and ties favor the defender. Callers must ensure frontUnits >= 2 and
// territoryUnits >= 1.
func (e *Engine) SingleRound(frontUnits, territoryUnits int) (remainingFront, remainingTerritory int) {
	attackDiceCount := min(frontUnits-1, MaxAttackDice)
	defendDiceCount := min(territoryUnits, MaxDefendDice)

	attackDice := e.roller.RollDice(attackDiceCount)
	defendDice := e.roller.RollDice(defendDiceCount)

	compareCount := min(attackDiceCount, defendDiceCount)
	attackerLost := 0
	defenderLost := 0

	for i := 0; i < compareCount; i++ {
		if attackDice[i] > defendDice[i] {
			defenderLost++
		} else {
			attackerLost++
		}
	}

	e.tracer.RoundResolved(frontUnits, territoryUnits, attackDice, defendDice, attackerLost, defenderLost)

	return frontUnits - attackerLost, territoryUnits - defenderLost
}

// ConquerTerritory rolls rounds until the territory falls or the front is
// down to its garrison unit and cannot continue.
func (e *Engine) ConquerTerritory(frontUnits, territoryUnits int) (remainingFront, remainingTerritory int) {
	for frontUnits > 1 && territoryUnits > 0 {
		frontUnits, territoryUnits = e.SingleRound(frontUnits, territoryUnits)
	}
	return frontUnits, territoryUnits
}

// SimulateVectorAttack runs one full traversal of a vector with the given
// bonus units added to the front. After each conquest one unit stays behind
// to hold the territory; the rest advance. The attack stops at the first
// territory that does not fall.
func (e *Engine) SimulateVectorAttack(vector *AttackVector, bonusUnits int) AttackResult {
	frontUnits := vector.FrontUnits + bonusUnits

	// A lone unit can never leave its origin; report the first territory
	// untouched without rolling any dice.
	if frontUnits <= 1 {
		return AttackResult{
			ConqueredTerritories: 0,
			FrontUnits:           frontUnits,
			EnemyUnitsOnFront:    vector.Territories[0].Units,
		}
	}

	conquered := 0
	enemyUnits := 0

	for _, territory := range vector.Territories {
		e.tracer.AttackBegun(frontUnits, territory.Units)

		frontUnits, enemyUnits = e.ConquerTerritory(frontUnits, territory.Units)

		if enemyUnits > 0 {
			e.tracer.VectorExhausted(frontUnits, enemyUnits)
			break
		}

		// Garrison one unit on the conquered territory.
		frontUnits--
		conquered++
		e.tracer.TerritoryConquered(frontUnits)
	}

	return AttackResult{
		ConqueredTerritories: conquered,
		FrontUnits:           frontUnits,
		EnemyUnitsOnFront:    enemyUnits,
	}
}
