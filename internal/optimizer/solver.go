package optimizer

import (
	"fmt"

	"github.com/lanl/highs"
)

// solveOutcome carries the solver verdict back to Optimize. assignment and
// objective are only meaningful when status is StatusOptimal.
type solveOutcome struct {
	status     Status
	assignment []float64
	objective  float64
}

// solve runs a single solve attempt. Infeasibility is a normal outcome and
// is reported through the status, never as an error; only solver-level
// failures (load errors, numerical trouble) come back as errors. No retries,
// no internal time limit.
func (sm *squadModel) solve() (solveOutcome, error) {
	sol, err := sm.model.Solve()
	if err != nil {
		return solveOutcome{}, fmt.Errorf("mip solve failed: %w", err)
	}

	switch sol.Status {
	case highs.Optimal:
		return solveOutcome{
			status:     StatusOptimal,
			assignment: sol.ColumnPrimal,
			objective:  sol.Objective,
		}, nil
	case highs.Infeasible:
		return solveOutcome{status: StatusInfeasible}, nil
	default:
		return solveOutcome{}, fmt.Errorf("solver returned status %s", sol.Status.String())
	}
}
