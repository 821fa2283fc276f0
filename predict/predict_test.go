package predict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agottem/warplan/combat"
)

// loadedRoller alternates between an attacker roll and a defender roll,
// making every exchange deterministic.
type loadedRoller struct {
	attackerDie int
	defenderDie int
	next        int
}

func (r *loadedRoller) RollDice(count int) []int {
	value := r.attackerDie
	if r.next%2 == 1 {
		value = r.defenderDie
	}
	r.next++

	dice := make([]int, count)
	for i := range dice {
		dice[i] = value
	}
	return dice
}

func TestPredictTrialAccounting(t *testing.T) {
	vector, err := combat.NewAttackVector("7:3,3,1", 7, []int{3, 3, 1})
	require.NoError(t, err)

	predictor := NewPredictor(1000, WithEngineOptions(combat.WithSeed(17)))
	prediction := predictor.Predict(vector, 0)

	require.Equal(t, 1000, prediction.WinCount+prediction.LossCount,
		"Every trial should land as a win or a loss")
	require.GreaterOrEqual(t, prediction.WinLikelihood, 0.0)
	require.LessOrEqual(t, prediction.WinLikelihood, 1.0)
	require.InDelta(t, float64(prediction.WinCount)/1000.0, prediction.WinLikelihood, 1e-9)
}

func TestPredictAllWins(t *testing.T) {
	vector, err := combat.NewAttackVector("5:2,2", 5, []int{2, 2})
	require.NoError(t, err)

	// Attacker always out-rolls the defender: both territories fall in one
	// round each, the front pays only its two garrisons.
	roller := &loadedRoller{attackerDie: 6, defenderDie: 1}
	predictor := NewPredictor(50, WithEngineOptions(combat.WithRoller(roller)))

	prediction := predictor.Predict(vector, 0)

	require.Equal(t, 50, prediction.WinCount)
	require.Equal(t, 0, prediction.LossCount)
	require.Equal(t, 1.0, prediction.WinLikelihood)

	unitsIfWin, ok := prediction.RemainingUnitsIfWin()
	require.True(t, ok)
	require.Equal(t, 3.0, unitsIfWin)

	_, ok = prediction.RemainingEnemiesIfLoss()
	require.False(t, ok, "Loss statistics are undefined without losses")
	_, ok = prediction.RemainingTerritoriesIfLoss()
	require.False(t, ok, "Loss statistics are undefined without losses")
}

func TestPredictAllLosses(t *testing.T) {
	vector, err := combat.NewAttackVector("4:2,3,5", 4, []int{2, 3, 5})
	require.NoError(t, err)

	// Ties favor the defender, so a loaded tie bleeds the attacker dry on
	// the first territory every time.
	roller := &loadedRoller{attackerDie: 3, defenderDie: 3}
	predictor := NewPredictor(40, WithEngineOptions(combat.WithRoller(roller)))

	prediction := predictor.Predict(vector, 0)

	require.Equal(t, 0, prediction.WinCount)
	require.Equal(t, 40, prediction.LossCount)
	require.Equal(t, 0.0, prediction.WinLikelihood)

	_, ok := prediction.RemainingUnitsIfWin()
	require.False(t, ok, "Win statistics are undefined without wins")

	enemiesIfLoss, ok := prediction.RemainingEnemiesIfLoss()
	require.True(t, ok)
	require.Equal(t, 10.0, enemiesIfLoss,
		"Stalled and unengaged territories should all count")

	territoriesIfLoss, ok := prediction.RemainingTerritoriesIfLoss()
	require.True(t, ok)
	require.Equal(t, 3.0, territoriesIfLoss)
}

func TestPredictLoneFrontUnit(t *testing.T) {
	vector, err := combat.NewAttackVector("1:4,2", 1, []int{4, 2})
	require.NoError(t, err)

	predictor := NewPredictor(10)
	prediction := predictor.Predict(vector, 0)

	require.Equal(t, 0, prediction.WinCount)
	require.Equal(t, 10, prediction.LossCount)

	enemiesIfLoss, ok := prediction.RemainingEnemiesIfLoss()
	require.True(t, ok)
	require.Equal(t, 6.0, enemiesIfLoss, "Nothing should have been engaged")
}

func TestPredictCollectsMetrics(t *testing.T) {
	vector, err := combat.NewAttackVector("5:1", 5, []int{1})
	require.NoError(t, err)

	collector := NewCollector()
	roller := &loadedRoller{attackerDie: 6, defenderDie: 1}
	predictor := NewPredictor(
		25,
		WithEngineOptions(combat.WithRoller(roller)),
		WithCollector(collector),
	)

	predictor.Predict(vector, 0)

	totals := collector.Snapshot()
	require.Equal(t, int64(25), totals.Trials)
	require.Equal(t, int64(25), totals.Conquests)
}

func TestNewPredictorRejectsZeroTrials(t *testing.T) {
	require.Panics(t, func() { NewPredictor(0) })
}
