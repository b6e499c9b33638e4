package optimizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticPool builds a 50-player catalog: 10 GK (4.0-5.5), 15 DEF
// (4.0-7.0), 15 MID (4.5-9.0), 10 FWD (4.5-10.0), spread round-robin over 5
// teams, with predicted points = cost * 1.2 throughout.
func syntheticPool() []Player {
	var players []Player
	id := 0
	add := func(pos Position, count int, minCost, maxCost float64) {
		for i := 0; i < count; i++ {
			id++
			cost := minCost + (maxCost-minCost)*float64(i)/float64(count-1)
			players = append(players, Player{
				ID:              id,
				Name:            fmt.Sprintf("%s %d", pos, id),
				Position:        pos,
				Team:            fmt.Sprintf("Team%d", i%5+1),
				Cost:            cost,
				PredictedPoints: cost * 1.2,
			})
		}
	}
	add(Goalkeeper, 10, 4.0, 5.5)
	add(Defender, 15, 4.0, 7.0)
	add(Midfielder, 15, 4.5, 9.0)
	add(Forward, 10, 4.5, 10.0)
	return players
}

func assertSquadInvariants(t *testing.T, result *Result, cfg Config) {
	t.Helper()

	assert.Len(t, result.Squad, cfg.SquadSize())
	assert.Len(t, result.StartingXI, StartingSize)
	assert.Len(t, result.Bench, cfg.SquadSize()-StartingSize)

	// Starting players are squad members and the bench is the remainder.
	squadIDs := make(map[int]bool)
	for _, p := range result.Squad {
		assert.False(t, squadIDs[p.ID], "duplicate player %d in squad", p.ID)
		squadIDs[p.ID] = true
	}
	for _, p := range result.StartingXI {
		assert.True(t, squadIDs[p.ID], "starter %d not in squad", p.ID)
		assert.True(t, p.IsStarting)
	}
	for _, p := range result.Bench {
		assert.True(t, squadIDs[p.ID], "bench player %d not in squad", p.ID)
		assert.False(t, p.IsStarting)
	}

	// Position quotas and starting bands.
	for _, pos := range Positions {
		assert.Equal(t, cfg.PositionQuotas[pos], result.PositionBreakdown[pos],
			"squad quota for %s", pos)
		band := cfg.StartingBands[pos]
		starting := result.StartingPositionBreakdown[pos]
		assert.GreaterOrEqual(t, starting, band.Min, "starting band min for %s", pos)
		assert.LessOrEqual(t, starting, band.Max, "starting band max for %s", pos)
	}

	// Budget band.
	assert.LessOrEqual(t, result.TotalCost, cfg.Budget+1e-6)
	assert.GreaterOrEqual(t, result.TotalCost, cfg.Budget*cfg.MinBudgetUsage-1e-6)

	// Team caps (overrides are exact counts).
	for team, count := range result.TeamBreakdown {
		if exact, ok := cfg.TeamCountOverrides[team]; ok {
			assert.Equal(t, exact, count, "override count for %s", team)
		} else {
			assert.LessOrEqual(t, count, cfg.MaxPerTeam, "team cap for %s", team)
		}
	}

	// Expensive players never sit on the bench (the coupling is a hard
	// implication on binary variables), and very expensive bench players
	// stay under the cap.
	veryExpensiveBench := 0
	for _, p := range result.Squad {
		if p.Cost >= cfg.ExpensiveThreshold {
			assert.True(t, p.IsStarting, "expensive player %s (%.1f) benched", p.Name, p.Cost)
		}
		if p.Cost >= cfg.VeryExpensiveThreshold && !p.IsStarting {
			veryExpensiveBench++
		}
	}
	assert.LessOrEqual(t, veryExpensiveBench, cfg.MaxVeryExpensiveOnBench)
}

func TestOptimizeDefaultRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.95

	result, err := Optimize(syntheticPool(), cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)

	assertSquadInvariants(t, result, cfg)
	assert.InDelta(t, result.TotalCost*1.2, result.TotalPredictedPoints, 1e-6,
		"pool has points = cost * 1.2")
	assert.Equal(t, 1, result.StartingPositionBreakdown[Goalkeeper])
}

func TestOptimizeInfeasibleMinUsage(t *testing.T) {
	pool := syntheticPool()
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.99

	// Excluding everything over 6.0 leaves too little spend capacity to
	// reach 99% of the budget.
	for _, p := range pool {
		if p.Cost > 6.0 {
			cfg.ForcedExcludeIDs = append(cfg.ForcedExcludeIDs, p.ID)
		}
	}

	result, err := Optimize(pool, cfg)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.NotEmpty(t, result.Message)
	assert.Empty(t, result.Squad, "infeasible result must not carry a partial squad")
}

func TestOptimizeInfeasibleBudgetFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 60.0 // below the cheapest quota-satisfying 15
	cfg.MinBudgetUsage = 1.0

	result, err := Optimize(syntheticPool(), cfg)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, result.Status)
}

func TestOptimizeForcedInclude(t *testing.T) {
	pool := syntheticPool()
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.90
	cfg.ForcedIncludeIDs = []int{50} // the 10.0 forward

	result, err := Optimize(pool, cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)

	var found *SquadPlayer
	for i := range result.Squad {
		if result.Squad[i].ID == 50 {
			found = &result.Squad[i]
		}
	}
	require.NotNil(t, found, "forced include missing from squad")
	assert.True(t, found.IsStarting, "a 10.0 player is coupled into the XI")
}

func TestOptimizeForcedExclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.90
	cfg.ForcedExcludeIDs = []int{50}

	result, err := Optimize(syntheticPool(), cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)
	for _, p := range result.Squad {
		assert.NotEqual(t, 50, p.ID)
	}
}

func TestOptimizeTeamCountOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.90
	cfg.TeamCountOverrides = map[string]int{"Team2": 5}

	result, err := Optimize(syntheticPool(), cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)

	// The override replaces the default cap for Team2 only.
	assert.Equal(t, 5, result.TeamBreakdown["Team2"])
	for team, count := range result.TeamBreakdown {
		if team != "Team2" {
			assert.LessOrEqual(t, count, cfg.MaxPerTeam, "default cap for %s", team)
		}
	}
}

func TestOptimizeBudgetMonotonic(t *testing.T) {
	pool := syntheticPool()
	prev := 0.0
	for _, budget := range []float64{80, 90, 100} {
		cfg := DefaultConfig()
		cfg.Budget = budget
		cfg.MinBudgetUsage = 0.5 // keep the floor from tightening as budget grows

		result, err := Optimize(pool, cfg)
		require.NoError(t, err)
		require.Equal(t, StatusOptimal, result.Status, "budget %.0f", budget)
		assert.GreaterOrEqual(t, result.ObjectiveValue, prev-1e-6,
			"raising budget to %.0f must not lower the optimum", budget)
		prev = result.ObjectiveValue
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	pool := syntheticPool()
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.95

	first, err := Optimize(pool, cfg)
	require.NoError(t, err)
	second, err := Optimize(pool, cfg)
	require.NoError(t, err)

	require.Equal(t, StatusOptimal, first.Status)
	require.Equal(t, StatusOptimal, second.Status)
	assert.InDelta(t, first.ObjectiveValue, second.ObjectiveValue, 1e-6)
	assert.InDelta(t, first.TotalCost, second.TotalCost, 1e-6)
	assert.InDelta(t, first.TotalPredictedPoints, second.TotalPredictedPoints, 1e-6)
}

func TestOptimizeFiltersInvalidRows(t *testing.T) {
	pool := syntheticPool()
	pool = append(pool,
		Player{ID: 900, Name: "Pep Guardiola", Position: "Manager", Team: "Team1", Cost: 1.0, PredictedPoints: 99},
		Player{ID: 901, Name: "Broken Row", Position: Midfielder, Team: "Team1", Cost: -4.5, PredictedPoints: 99},
	)

	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.95

	result, err := Optimize(pool, cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)
	for _, p := range result.Squad {
		assert.NotEqual(t, 900, p.ID)
		assert.NotEqual(t, 901, p.ID)
	}
}

func TestOptimizeRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingBands[Forward] = Band{Min: 4, Max: 5} // min above the FWD quota of 3

	_, err := Optimize(syntheticPool(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestOptimizeEmptyPool(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Optimize(nil, cfg)
	require.Error(t, err)
}

func TestOptimizePositionWeightsShiftSelection(t *testing.T) {
	pool := syntheticPool()
	cfg := DefaultConfig()
	cfg.MinBudgetUsage = 0.90

	baseline, err := Optimize(pool, cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, baseline.Status)

	// Heavily weighting midfielders must not break any invariant; quotas
	// still pin the squad counts.
	cfg.PositionWeights[Midfielder] = 2.0
	weighted, err := Optimize(pool, cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, weighted.Status)
	assert.Equal(t, cfg.PositionQuotas[Midfielder], weighted.PositionBreakdown[Midfielder])
	assert.GreaterOrEqual(t, weighted.ObjectiveValue, baseline.ObjectiveValue-1e-6)
}
