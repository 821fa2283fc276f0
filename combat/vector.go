package combat

import "fmt"

// MaxTerritoryChain bounds how many territories a single attack vector may
// chain together. Vectors beyond the bound are rejected at construction.
const MaxTerritoryChain = 128

// Territory is an enemy-held position with a non-negative unit count. The
// definition is never mutated; simulations work on copies of the counts.
type Territory struct {
	Units int
}

// AttackVector is an ordered chain of enemy territories attacked in sequence
// from one origin. Name keeps the textual definition for reporting. Vectors
// are read-only after construction: bonus units and simulation state are
// applied to copies of the front count, never to the vector itself.
type AttackVector struct {
	Name        string
	FrontUnits  int
	Territories []Territory
}

// NewAttackVector builds a vector from an already-parsed front unit count and
// ordered territory unit counts.
func NewAttackVector(name string, frontUnits int, territoryUnits []int) (*AttackVector, error) {
	if frontUnits < 1 {
		return nil, fmt.Errorf("attack vector %q: front units must be at least 1, got %d", name, frontUnits)
	}
	if len(territoryUnits) == 0 {
		return nil, fmt.Errorf("attack vector %q: no territories to attack", name)
	}
	if len(territoryUnits) > MaxTerritoryChain {
		return nil, fmt.Errorf("attack vector %q: %d territories exceeds limit of %d", name, len(territoryUnits), MaxTerritoryChain)
	}

	territories := make([]Territory, len(territoryUnits))
	for i, units := range territoryUnits {
		if units < 0 {
			return nil, fmt.Errorf("attack vector %q: territory %d has negative unit count %d", name, i+1, units)
		}
		territories[i] = Territory{Units: units}
	}

	return &AttackVector{
		Name:        name,
		FrontUnits:  frontUnits,
		Territories: territories,
	}, nil
}

// AttackResult is the outcome of one simulated traversal of a vector.
// EnemyUnitsOnFront is 0 only when every territory in the chain fell.
type AttackResult struct {
	ConqueredTerritories int
	FrontUnits           int
	EnemyUnitsOnFront    int
}
