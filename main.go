// WarPlan estimates outcomes of sequential territory-conquest attacks and,
// given a pool of bonus units, searches for the allocation across attack
// vectors that maximizes expected success.
//
// With 0 bonus units the given attack vectors are simply simulated and their
// estimated outcomes printed. With a non-zero bonus pool WarPlan searches
// every feasible split of the pool and prints the best looking course of
// action.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agottem/warplan/combat"
	"github.com/agottem/warplan/planner"
	"github.com/agottem/warplan/predict"
	"github.com/agottem/warplan/scenario"
)

type config struct {
	Debug      bool   `env:"DEBUG_WARPLAN"`
	Pretty     bool   `env:"WARPLAN_PRETTY"`
	Goroutines int    `env:"WARPLAN_GOROUTINES" envDefault:"1"`
	Seed       uint64 `env:"WARPLAN_SEED"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse environment configuration")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	run, err := loadRun(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	vectors, err := scenario.ParseVectors(run.Vectors)
	if err != nil {
		log.Fatal().Err(err).Msg("Malformed attack vector, see usage")
	}

	collector := predict.NewNopCollector()
	if cfg.Debug {
		collector = predict.NewCollector()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if run.BonusUnits == 0 {
		fmt.Println("Simulating simple war and printing predictions")
		simulateWar(run, vectors, cfg, collector)
	} else {
		fmt.Println("Attempting to plan war for specified vectors")
		planWar(ctx, run, vectors, cfg, collector)
	}

	if cfg.Debug {
		totals := collector.Snapshot()
		log.Debug().
			Int64("trials", totals.Trials).
			Int64("conquests", totals.Conquests).
			Msg("simulation totals")
	}
}

// loadRun accepts either the positional argument form or a single YAML
// battle plan file.
func loadRun(args []string) (*scenario.BattlePlan, error) {
	switch {
	case len(args) == 1 && (strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml")):
		return scenario.LoadFile(args[0])
	case len(args) >= 4:
		trials, err := strconv.Atoi(args[0])
		if err != nil || trials < 1 {
			return nil, fmt.Errorf("simulation iterations must be a positive integer, got %q", args[0])
		}
		bonusUnits, err := strconv.Atoi(args[1])
		if err != nil || bonusUnits < 0 {
			return nil, fmt.Errorf("bonus units must be a non-negative integer, got %q", args[1])
		}
		threshold, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return nil, fmt.Errorf("win threshold must be a number, got %q", args[2])
		}
		return &scenario.BattlePlan{
			Trials:              trials,
			BonusUnits:          bonusUnits,
			LikelihoodThreshold: threshold,
			Vectors:             args[3:],
		}, nil
	default:
		return nil, fmt.Errorf("expected a battle plan file or at least 4 arguments, got %d", len(args))
	}
}

func simulateWar(run *scenario.BattlePlan, vectors []*combat.AttackVector, cfg config, collector predict.Collector) {
	engineOptions := []combat.Option{combat.WithSeed(cfg.Seed)}
	if cfg.Debug {
		engineOptions = append(engineOptions, combat.WithTracer(combat.NewLogTracer(log.Logger)))
	}

	predictor := predict.NewPredictor(
		run.Trials,
		predict.WithEngineOptions(engineOptions...),
		predict.WithCollector(collector),
	)

	for _, vector := range vectors {
		prediction := predictor.Predict(vector, 0)
		fmt.Println()
		printPrediction(vector.Name, prediction)
	}
}

func planWar(ctx context.Context, run *scenario.BattlePlan, vectors []*combat.AttackVector, cfg config, collector predict.Collector) {
	p := planner.New(
		run.Trials,
		run.LikelihoodThreshold,
		planner.WithGoroutines(cfg.Goroutines),
		planner.WithSeed(cfg.Seed),
		planner.WithCollector(collector),
	)

	plan, err := p.BestPlan(ctx, vectors, run.BonusUnits)
	if err != nil {
		log.Fatal().Err(err).Msg("Planning failed")
	}

	fmt.Println("Highest scoring setup is below")
	for _, setup := range plan.Setups {
		fmt.Printf("%d bonus armies to attack vector '%s'\n", setup.Bonus, setup.Vector.Name)
		printPrediction(setup.Vector.Name, setup.Prediction)
	}
}

func printPrediction(name string, prediction predict.Prediction) {
	fmt.Printf(
		"Attack vector '%s' prediction\n\tWin count: %d Loss count: %d\n",
		name,
		prediction.WinCount,
		prediction.LossCount,
	)

	if unitsIfWin, ok := prediction.RemainingUnitsIfWin(); ok {
		fmt.Printf(
			"\tWin likelihood: %.2f with %.2f units remaining\n",
			prediction.WinLikelihood,
			unitsIfWin,
		)
	} else {
		fmt.Printf("\tWin likelihood: 0 this is a debo move\n")
	}

	territoriesIfLoss, ok := prediction.RemainingTerritoriesIfLoss()
	if !ok {
		return
	}
	enemiesIfLoss, _ := prediction.RemainingEnemiesIfLoss()
	fmt.Printf(
		"\t\tIf loss, %.2f remaining territories with %.2f enemies total\n",
		territoriesIfLoss,
		enemiesIfLoss,
	)
}

func printUsage() {
	fmt.Print(
		"Usage: warplan [simulation iterations] [bonus units] [win threshold] [attack vectors]\n" +
			"       warplan [battle plan .yaml file]\n" +
			"\n" +
			"Attack vectors are formatted as: " +
			"[units on front]:[enemy territory 1 units],[enemy territory n units]\n" +
			"\n" +
			"Examples:\n\n" +
			"\tJust simulate a single attack vector, no planning:\n" +
			"\t\twarplan 1000 0 0 7:3,3,1\n" +
			"\n" +
			"\tSimulate multiple attack vectors, no planning:\n" +
			"\t\twarplan 1000 0 0 7:1,1,2 4:5,1\n" +
			"\n" +
			"\tGiven 10 bonus armies, plan an attack across multiple vectors requiring a win likelihood of 0.8:\n" +
			"\t\twarplan 1000 10 0.8 3:2,2 4:1,1,1,1 2:2,1,2\n",
	)
}
