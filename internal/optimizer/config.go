package optimizer

import "fmt"

// StartingSize is the number of players in the starting XI. The squad size
// itself is the sum of the position quotas (15 with the defaults).
const StartingSize = 11

// Band is an inclusive min/max count for a position in the starting XI.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ObjectiveWeights are the coefficients of the three objective terms:
// squad membership, starting membership, and the cost-of-starters nudge
// that keeps expensive players off the bench.
type ObjectiveWeights struct {
	SquadPoints float64 `json:"squad_points"`
	StartPoints float64 `json:"start_points"`
	StartCost   float64 `json:"start_cost"`
}

// Config is the full, immutable specification of one optimization call.
// Build it with DefaultConfig and override fields before calling Optimize;
// nothing mutates it afterwards and no state survives between calls.
type Config struct {
	Budget         float64 `json:"budget"`
	MinBudgetUsage float64 `json:"min_budget_usage"`

	PositionQuotas map[Position]int  `json:"position_quotas"`
	StartingBands  map[Position]Band `json:"starting_bands"`

	MaxPerTeam         int                      `json:"max_per_team"`
	TeamCountOverrides map[string]int           `json:"team_count_overrides,omitempty"`
	TeamPositionCaps   map[string]map[Position]int `json:"team_position_caps,omitempty"`

	ExpensiveThreshold      float64 `json:"expensive_threshold"`
	VeryExpensiveThreshold  float64 `json:"very_expensive_threshold"`
	MaxVeryExpensiveOnBench int     `json:"max_very_expensive_on_bench"`
	// StartCoupling is the coefficient k in start[p] >= k*squad[p] for
	// players at or above ExpensiveThreshold. On binary variables any
	// k > 0 makes selection imply starting; 0.8 is kept verbatim from the
	// original rule set.
	StartCoupling float64 `json:"start_coupling"`

	ForcedIncludeIDs []int `json:"forced_include_ids,omitempty"`
	ForcedExcludeIDs []int `json:"forced_exclude_ids,omitempty"`

	// PositionWeights scale each player's predicted points before the
	// objective is composed. They never affect any constraint.
	PositionWeights map[Position]float64 `json:"position_weights,omitempty"`

	Weights ObjectiveWeights `json:"objective_weights"`
}

// DefaultConfig returns the standard FPL rule set: £100.0m budget with 99%
// minimum usage, 2/5/5/3 squad quotas, 1/3-5/2-5/1-3 starting bands, at most
// 3 players per club.
func DefaultConfig() Config {
	return Config{
		Budget:         100.0,
		MinBudgetUsage: 0.99,
		PositionQuotas: map[Position]int{
			Goalkeeper: 2,
			Defender:   5,
			Midfielder: 5,
			Forward:    3,
		},
		StartingBands: map[Position]Band{
			Goalkeeper: {Min: 1, Max: 1},
			Defender:   {Min: 3, Max: 5},
			Midfielder: {Min: 2, Max: 5},
			Forward:    {Min: 1, Max: 3},
		},
		MaxPerTeam:              3,
		ExpensiveThreshold:      8.0,
		VeryExpensiveThreshold:  10.0,
		MaxVeryExpensiveOnBench: 1,
		StartCoupling:           0.8,
		PositionWeights: map[Position]float64{
			Goalkeeper: 1.0,
			Defender:   1.0,
			Midfielder: 1.0,
			Forward:    1.0,
		},
		Weights: ObjectiveWeights{
			SquadPoints: 1.0,
			StartPoints: 2.0,
			StartCost:   10.0,
		},
	}
}

// SquadSize returns the total roster size implied by the position quotas.
func (c Config) SquadSize() int {
	total := 0
	for _, quota := range c.PositionQuotas {
		total += quota
	}
	return total
}

// Validate rejects configurations that can never produce a feasible model,
// regardless of the candidate pool. Subtler conflicts (budget floor vs the
// cheapest quota-satisfying squad, forced includes vs team caps) are left to
// surface as solver infeasibility.
func (c Config) Validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %.2f", c.Budget)
	}
	if c.MinBudgetUsage <= 0 || c.MinBudgetUsage > 1 {
		return fmt.Errorf("min budget usage must be in (0, 1], got %.2f", c.MinBudgetUsage)
	}
	if c.MaxPerTeam <= 0 {
		return fmt.Errorf("max players per team must be positive, got %d", c.MaxPerTeam)
	}
	if c.StartCoupling <= 0 || c.StartCoupling > 1 {
		return fmt.Errorf("start coupling must be in (0, 1], got %.2f", c.StartCoupling)
	}
	if c.MaxVeryExpensiveOnBench < 0 {
		return fmt.Errorf("max very expensive on bench must be non-negative, got %d", c.MaxVeryExpensiveOnBench)
	}

	minSum, maxSum := 0, 0
	for _, pos := range Positions {
		quota, ok := c.PositionQuotas[pos]
		if !ok || quota < 0 {
			return fmt.Errorf("missing or negative squad quota for %s", pos)
		}
		band, ok := c.StartingBands[pos]
		if !ok {
			return fmt.Errorf("missing starting band for %s", pos)
		}
		if band.Min < 0 || band.Max < band.Min {
			return fmt.Errorf("invalid starting band for %s: min=%d max=%d", pos, band.Min, band.Max)
		}
		if band.Min > quota {
			return fmt.Errorf("starting band minimum %d for %s exceeds squad quota %d", band.Min, pos, quota)
		}
		minSum += band.Min
		// A band max above the quota is allowed; the quota caps it anyway.
		if band.Max > quota {
			maxSum += quota
		} else {
			maxSum += band.Max
		}
	}
	if minSum > StartingSize {
		return fmt.Errorf("starting band minimums sum to %d, more than the %d starting slots", minSum, StartingSize)
	}
	if maxSum < StartingSize {
		return fmt.Errorf("starting band maximums sum to %d, fewer than the %d starting slots", maxSum, StartingSize)
	}
	if c.SquadSize() < StartingSize {
		return fmt.Errorf("position quotas sum to %d, fewer than the %d starting slots", c.SquadSize(), StartingSize)
	}

	for team, count := range c.TeamCountOverrides {
		if count < 0 {
			return fmt.Errorf("negative squad count override for team %q", team)
		}
	}
	for team, caps := range c.TeamPositionCaps {
		for pos, limit := range caps {
			if !pos.Valid() {
				return fmt.Errorf("unknown position %q in caps for team %q", pos, team)
			}
			if limit < 0 {
				return fmt.Errorf("negative position cap for team %q position %s", team, pos)
			}
		}
	}
	return nil
}

// positionWeight returns the configured multiplier for pos, defaulting to 1.
func (c Config) positionWeight(pos Position) float64 {
	if c.PositionWeights == nil {
		return 1.0
	}
	if w, ok := c.PositionWeights[pos]; ok {
		return w
	}
	return 1.0
}
