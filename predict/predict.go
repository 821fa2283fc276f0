package predict

import (
	"github.com/agottem/warplan/combat"
)

// Prediction aggregates win/loss statistics over many independent simulated
// traversals of one attack vector at one bonus level.
type Prediction struct {
	WinLikelihood float64
	WinCount      int
	LossCount     int

	unitsIfWinTotal        int
	enemiesIfLossTotal     int
	territoriesIfLossTotal int
}

// RemainingUnitsIfWin is the mean front unit count over winning trials. The
// mean is undefined when no trial won; ok reports whether it exists.
func (p Prediction) RemainingUnitsIfWin() (mean float64, ok bool) {
	if p.WinCount == 0 {
		return 0, false
	}
	return float64(p.unitsIfWinTotal) / float64(p.WinCount), true
}

// RemainingEnemiesIfLoss is the mean defending unit count left across the
// whole chain over losing trials, counting both the territory where the
// attack stalled and every untouched territory beyond it.
func (p Prediction) RemainingEnemiesIfLoss() (mean float64, ok bool) {
	if p.LossCount == 0 {
		return 0, false
	}
	return float64(p.enemiesIfLossTotal) / float64(p.LossCount), true
}

// RemainingTerritoriesIfLoss is the mean count of unconquered territories
// over losing trials.
func (p Prediction) RemainingTerritoriesIfLoss() (mean float64, ok bool) {
	if p.LossCount == 0 {
		return 0, false
	}
	return float64(p.territoriesIfLossTotal) / float64(p.LossCount), true
}

// Predictor estimates attack outcomes by Monte Carlo simulation. It owns a
// single dice stream, so a Predictor must not be shared across goroutines;
// parallel callers each build their own.
type Predictor struct {
	trials    int
	engine    *combat.Engine
	collector Collector
}

type Option func(p *Predictor)

// WithEngineOptions configures the combat engine backing the trials, e.g.
// the dice seed or a tracer.
func WithEngineOptions(options ...combat.Option) Option {
	return func(p *Predictor) {
		p.engine = combat.NewEngine(options...)
	}
}

// WithCollector installs a metrics collector shared with other predictors.
func WithCollector(collector Collector) Option {
	return func(p *Predictor) {
		if collector != nil {
			p.collector = collector
		}
	}
}

func NewPredictor(trials int, options ...Option) *Predictor {
	if trials < 1 {
		panic("Must run at least one simulation trial")
	}
	p := &Predictor{ // Default values
		trials:    trials,
		engine:    combat.NewEngine(),
		collector: NewNopCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Predict runs the configured number of independent trials of vector at the
// given bonus level and aggregates them. A trial is a win when every
// territory in the chain fell.
func (p *Predictor) Predict(vector *combat.AttackVector, bonusUnits int) Prediction {
	prediction := Prediction{}

	for remaining := p.trials; remaining > 0; remaining-- {
		result := p.engine.SimulateVectorAttack(vector, bonusUnits)
		p.collector.AddTrial()

		if result.EnemyUnitsOnFront == 0 {
			prediction.WinCount++
			prediction.unitsIfWinTotal += result.FrontUnits
			p.collector.AddConquest()
			continue
		}

		// The stalled territory keeps its surviving units; territories
		// beyond it were never engaged and keep their full counts.
		enemiesRemaining := result.EnemyUnitsOnFront
		for i := result.ConqueredTerritories + 1; i < len(vector.Territories); i++ {
			enemiesRemaining += vector.Territories[i].Units
		}

		prediction.LossCount++
		prediction.enemiesIfLossTotal += enemiesRemaining
		prediction.territoriesIfLossTotal += len(vector.Territories) - result.ConqueredTerritories
	}

	prediction.WinLikelihood = float64(prediction.WinCount) / float64(p.trials)

	return prediction
}
