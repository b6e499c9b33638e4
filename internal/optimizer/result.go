package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Status is the outcome of one optimization call.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
)

// Result is the assembled squad plus derived summaries. On StatusInfeasible
// only Status and Message are set; a partial squad is never fabricated.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	Squad      []SquadPlayer `json:"squad,omitempty"`
	StartingXI []SquadPlayer `json:"starting_xi,omitempty"`
	Bench      []SquadPlayer `json:"bench,omitempty"`

	TotalCost               float64 `json:"total_cost"`
	TotalPredictedPoints    float64 `json:"total_predicted_points"`
	StartingPredictedPoints float64 `json:"starting_predicted_points"`
	RemainingBudget         float64 `json:"remaining_budget"`
	BudgetUsagePct          float64 `json:"budget_usage_pct"`

	PositionBreakdown         map[Position]int `json:"position_breakdown,omitempty"`
	StartingPositionBreakdown map[Position]int `json:"starting_position_breakdown,omitempty"`
	TeamBreakdown             map[string]int   `json:"team_breakdown,omitempty"`

	ObjectiveValue float64 `json:"objective_value"`
	SolveTimeMs    int64   `json:"solve_time_ms"`
}

// assembleResult converts a 0/1 column assignment back into player terms.
// This is pure reporting; no selection logic lives here.
func assembleResult(players []Player, cfg Config, out solveOutcome, solveMs int64) *Result {
	n := len(players)
	res := &Result{
		Status:                    StatusOptimal,
		PositionBreakdown:         make(map[Position]int),
		StartingPositionBreakdown: make(map[Position]int),
		TeamBreakdown:             make(map[string]int),
		ObjectiveValue:            out.objective,
		SolveTimeMs:               solveMs,
	}

	var costs, points, startingPoints []float64
	for i, p := range players {
		if out.assignment[i] < 0.5 {
			continue
		}
		starting := out.assignment[n+i] > 0.5
		sp := SquadPlayer{Player: p, IsStarting: starting}
		res.Squad = append(res.Squad, sp)
		if starting {
			res.StartingXI = append(res.StartingXI, sp)
			res.StartingPositionBreakdown[p.Position]++
			startingPoints = append(startingPoints, p.PredictedPoints)
		} else {
			res.Bench = append(res.Bench, sp)
		}
		res.PositionBreakdown[p.Position]++
		res.TeamBreakdown[p.Team]++
		costs = append(costs, p.Cost)
		points = append(points, p.PredictedPoints)
	}

	sortByPoints(res.Squad)
	sortByPoints(res.StartingXI)
	sortByPoints(res.Bench)

	res.TotalCost = floats.Sum(costs)
	res.TotalPredictedPoints = floats.Sum(points)
	res.StartingPredictedPoints = floats.Sum(startingPoints)
	res.RemainingBudget = cfg.Budget - res.TotalCost
	res.BudgetUsagePct = res.TotalCost / cfg.Budget * 100

	return res
}

func sortByPoints(players []SquadPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].PredictedPoints > players[j].PredictedPoints
	})
}

// Summary renders a human-readable squad report for logs and CLI output.
func (r *Result) Summary() string {
	if r.Status != StatusOptimal {
		return fmt.Sprintf("optimization failed: %s", r.Message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total cost £%.1fm (%.1f%% of budget, £%.1fm remaining)\n",
		r.TotalCost, r.BudgetUsagePct, r.RemainingBudget)
	fmt.Fprintf(&b, "Predicted points: %.1f squad / %.1f starting XI\n",
		r.TotalPredictedPoints, r.StartingPredictedPoints)

	b.WriteString("\nStarting XI:\n")
	for _, pos := range Positions {
		for _, p := range r.StartingXI {
			if p.Position != pos {
				continue
			}
			fmt.Fprintf(&b, "  %-22s %-16s %-10s £%.1fm  %.1fpts\n",
				p.Name, p.Team, p.Position, p.Cost, p.PredictedPoints)
		}
	}

	b.WriteString("\nBench:\n")
	for _, p := range r.Bench {
		fmt.Fprintf(&b, "  %-22s %-16s %-10s £%.1fm  %.1fpts\n",
			p.Name, p.Team, p.Position, p.Cost, p.PredictedPoints)
	}

	b.WriteString("\nTeams:")
	teams := make([]string, 0, len(r.TeamBreakdown))
	for team := range r.TeamBreakdown {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	for _, team := range teams {
		fmt.Fprintf(&b, " %s=%d", team, r.TeamBreakdown[team])
	}
	b.WriteString("\n")

	return b.String()
}
