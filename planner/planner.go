package planner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/agottem/warplan/combat"
	"github.com/agottem/warplan/predict"
)

// MaxVectors bounds how many attack vectors one planning run may spread a
// bonus pool across. Enumeration cost is exponential in the vector count, so
// the bound is enforced up front rather than discovered by a hung run.
const MaxVectors = 16

// DefaultMaxStates bounds the (bonus+1)^vectors enumeration space a run will
// attempt before failing fast.
const DefaultMaxStates = uint64(1) << 30

// Setup pairs one attack vector with one candidate bonus level and the
// prediction for that pairing. Score is the win likelihood when it meets the
// planner's threshold, 0 otherwise.
type Setup struct {
	Vector     *combat.AttackVector
	Bonus      int
	Prediction predict.Prediction
	Score      float64
}

// Plan is one feasible allocation of the whole bonus pool: one Setup per
// vector, index-aligned with the vectors given to the planner, with bonus
// levels summing exactly to the pool.
type Plan struct {
	TotalScore float64
	Setups     []*Setup
}

// Planner searches for the bonus allocation maximizing the summed qualifying
// win likelihood across attack vectors.
type Planner struct {
	trials     int
	threshold  float64
	goroutines int
	seed       uint64
	maxStates  uint64
	collector  predict.Collector
}

type Option func(p *Planner)

// WithGoroutines sets how many workers build the setup table. Each worker
// owns an independent dice stream.
func WithGoroutines(goroutines int) Option {
	return func(p *Planner) {
		if goroutines > 0 {
			p.goroutines = goroutines
		}
	}
}

// WithSeed sets the base dice seed; worker streams derive from it.
func WithSeed(seed uint64) Option {
	return func(p *Planner) {
		p.seed = seed
	}
}

// WithMaxStates overrides the enumeration space bound.
func WithMaxStates(maxStates uint64) Option {
	return func(p *Planner) {
		if maxStates > 0 {
			p.maxStates = maxStates
		}
	}
}

// WithCollector installs a metrics collector shared by every worker.
func WithCollector(collector predict.Collector) Option {
	return func(p *Planner) {
		if collector != nil {
			p.collector = collector
		}
	}
}

// New returns a planner running the given number of simulation trials per
// (vector, bonus) pairing. A vector's win likelihood only scores when it
// reaches likelihoodThreshold; a threshold above 1 zeroes every score and
// effectively disables allocation, which is preserved rather than rejected.
func New(trials int, likelihoodThreshold float64, options ...Option) *Planner {
	if trials < 1 {
		panic("Must run at least one simulation trial")
	}
	p := &Planner{ // Default values
		trials:     trials,
		threshold:  likelihoodThreshold,
		goroutines: 1,
		seed:       1,
		maxStates:  DefaultMaxStates,
		collector:  predict.NewNopCollector(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// BestPlan finds the maximum-scoring allocation of bonusUnits across
// vectors. The first plan reaching the maximum score wins ties. Enumeration
// honors ctx for cancellation; total work is vectors*(bonus+1) Predict calls
// plus an enumeration pass exponential in the vector count.
func (p *Planner) BestPlan(ctx context.Context, vectors []*combat.AttackVector, bonusUnits int) (*Plan, error) {
	setups, err := p.BuildSetups(vectors, bonusUnits)
	if err != nil {
		return nil, err
	}

	var best *Plan
	err = p.forEachComposition(ctx, setups, bonusUnits, func(assignment []int, totalScore float64) {
		if best == nil || totalScore > best.TotalScore {
			best = buildPlan(setups, assignment, totalScore)
		}
	})
	if err != nil {
		return nil, err
	}
	return best, nil
}

// RankPlans collects every feasible allocation ordered best-first, for
// inspection of the alternatives BestPlan discards.
func (p *Planner) RankPlans(ctx context.Context, vectors []*combat.AttackVector, bonusUnits int) ([]*Plan, error) {
	setups, err := p.BuildSetups(vectors, bonusUnits)
	if err != nil {
		return nil, err
	}

	var plans []*Plan
	err = p.forEachComposition(ctx, setups, bonusUnits, func(assignment []int, totalScore float64) {
		plans = append(plans, buildPlan(setups, assignment, totalScore))
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].TotalScore > plans[j].TotalScore
	})
	return plans, nil
}

// BuildSetups precomputes the prediction and score for every (vector, bonus
// level) pairing, indexed [vector][bonus]. Pairings are independent, so they
// run on the planner's worker pool.
func (p *Planner) BuildSetups(vectors []*combat.AttackVector, bonusUnits int) ([][]*Setup, error) {
	if err := p.checkScale(len(vectors), bonusUnits); err != nil {
		return nil, err
	}

	setups := make([][]*Setup, len(vectors))
	for i := range setups {
		setups[i] = make([]*Setup, bonusUnits+1)
	}

	type pairing struct {
		vector int
		bonus  int
	}

	task := make(chan pairing, len(vectors)*(bonusUnits+1))
	for v := range vectors {
		for bonus := 0; bonus <= bonusUnits; bonus++ {
			task <- pairing{vector: v, bonus: bonus}
		}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < p.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			predictor := predict.NewPredictor(
				p.trials,
				predict.WithEngineOptions(combat.WithSeed(p.seed+uint64(worker))),
				predict.WithCollector(p.collector),
			)

			// Each pairing writes its own table slot; no locking needed.
			for t := range task {
				vector := vectors[t.vector]
				prediction := predictor.Predict(vector, t.bonus)
				setups[t.vector][t.bonus] = &Setup{
					Vector:     vector,
					Bonus:      t.bonus,
					Prediction: prediction,
					Score:      p.score(prediction),
				}
			}
		}(i)
	}
	wg.Wait()

	return setups, nil
}

func (p *Planner) score(prediction predict.Prediction) float64 {
	if prediction.WinLikelihood >= p.threshold {
		return prediction.WinLikelihood
	}
	return 0
}

func (p *Planner) checkScale(vectorCount, bonusUnits int) error {
	if vectorCount == 0 {
		return fmt.Errorf("no attack vectors to plan across")
	}
	if vectorCount > MaxVectors {
		return fmt.Errorf("%d attack vectors exceeds limit of %d", vectorCount, MaxVectors)
	}
	if bonusUnits < 0 {
		return fmt.Errorf("bonus pool must be non-negative, got %d", bonusUnits)
	}

	states, ok := enumerationStates(bonusUnits+1, vectorCount)
	if !ok || states > p.maxStates {
		return fmt.Errorf(
			"allocating %d bonus units across %d vectors needs more than %d enumeration states; reduce the pool or vector count",
			bonusUnits, vectorCount, p.maxStates,
		)
	}
	return nil
}

// forEachComposition walks the full (bonus+1)^vectors state space and calls
// visit for every assignment summing exactly to bonusUnits. The assignment
// slice is reused between calls; visit must copy what it keeps.
func (p *Planner) forEachComposition(ctx context.Context, setups [][]*Setup, bonusUnits int, visit func(assignment []int, totalScore float64)) error {
	c := newCounter(len(setups), bonusUnits)

	for iteration := 0; ; iteration++ {
		if iteration&0x3ff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if c.sum() == bonusUnits {
			totalScore := 0.0
			for vector, bonus := range c.digits {
				totalScore += setups[vector][bonus].Score
			}
			visit(c.digits, totalScore)
		}

		if !c.next() {
			return nil
		}
	}
}

func buildPlan(setups [][]*Setup, assignment []int, totalScore float64) *Plan {
	planSetups := make([]*Setup, len(assignment))
	for vector, bonus := range assignment {
		planSetups[vector] = setups[vector][bonus]
	}
	return &Plan{
		TotalScore: totalScore,
		Setups:     planSetups,
	}
}

func enumerationStates(base, exp int) (uint64, bool) {
	states := uint64(1)
	for i := 0; i < exp; i++ {
		if states > math.MaxUint64/uint64(base) {
			return 0, false
		}
		states *= uint64(base)
	}
	return states, true
}
