// Package scenario turns textual battle definitions into attack vectors. A
// vector definition reads "<front units>:<territory units>,<territory
// units>,...", e.g. "10:3,2,99" for a 10-unit front attacking through
// territories of 3, 2, and 99 defenders.
package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agottem/warplan/combat"
)

// ParseVector parses one vector definition string. The original definition
// is kept as the vector's name for reporting.
func ParseVector(def string) (*combat.AttackVector, error) {
	front, territoryList, found := strings.Cut(def, ":")
	if !found {
		return nil, fmt.Errorf("attack vector %q: missing ':' between front units and territories", def)
	}

	frontUnits, err := strconv.Atoi(front)
	if err != nil {
		return nil, fmt.Errorf("attack vector %q: bad front unit count %q", def, front)
	}

	var territoryUnits []int
	for _, field := range strings.Split(territoryList, ",") {
		units, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("attack vector %q: bad territory unit count %q", def, field)
		}
		territoryUnits = append(territoryUnits, units)
	}

	return combat.NewAttackVector(def, frontUnits, territoryUnits)
}

// ParseVectors parses a sequence of vector definitions, rejecting the whole
// batch on the first malformed one.
func ParseVectors(defs []string) ([]*combat.AttackVector, error) {
	vectors := make([]*combat.AttackVector, len(defs))
	for i, def := range defs {
		vector, err := ParseVector(def)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// BattlePlan bundles a whole run's inputs so a planning session can be
// replayed from a file instead of retyped as arguments.
type BattlePlan struct {
	Trials              int      `yaml:"trials"`
	BonusUnits          int      `yaml:"bonus_units"`
	LikelihoodThreshold float64  `yaml:"likelihood_threshold"`
	Vectors             []string `yaml:"vectors"`
}

// LoadFile reads and validates a YAML battle plan.
func LoadFile(path string) (*BattlePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read battle plan: %w", err)
	}

	var plan BattlePlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse battle plan %s: %w", path, err)
	}

	if plan.Trials < 1 {
		return nil, fmt.Errorf("battle plan %s: trials must be at least 1, got %d", path, plan.Trials)
	}
	if plan.BonusUnits < 0 {
		return nil, fmt.Errorf("battle plan %s: bonus_units must be non-negative, got %d", path, plan.BonusUnits)
	}
	if len(plan.Vectors) == 0 {
		return nil, fmt.Errorf("battle plan %s: no attack vectors", path)
	}

	return &plan, nil
}

// AttackVectors parses the plan's vector definitions.
func (p *BattlePlan) AttackVectors() ([]*combat.AttackVector, error) {
	return ParseVectors(p.Vectors)
}
