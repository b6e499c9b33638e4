package optimizer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-optimizer/pkg/logger"
)

// Optimize selects the constrained-optimal squad for the given catalog and
// configuration. It is a pure function of its inputs: each call builds a
// fresh model and no state survives between calls. The solve itself is
// CPU-bound and uninterruptible; callers needing responsiveness should run
// it off their critical path.
//
// Infeasibility is reported through Result.Status, not as an error. Errors
// are reserved for invalid configuration, an empty candidate pool, and
// solver-level failures.
func Optimize(players []Player, cfg Config) (*Result, error) {
	optimizationID := uuid.New().String()
	start := time.Now()

	log := logger.WithOptimizationID(optimizationID)
	log.WithFields(logrus.Fields{
		"total_players":    len(players),
		"budget":           cfg.Budget,
		"min_budget_usage": cfg.MinBudgetUsage,
	}).Info("Starting squad optimization")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	candidates := filterCandidates(players, cfg, log)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate players available after filtering")
	}
	logMissingForcedIncludes(candidates, cfg, log)

	model := newSquadModel(candidates, cfg)
	outcome, err := model.solve()
	if err != nil {
		return nil, err
	}
	solveMs := time.Since(start).Milliseconds()

	if outcome.status == StatusInfeasible {
		log.WithField("solve_time_ms", solveMs).Warn("No feasible squad for given constraints")
		return &Result{
			Status:      StatusInfeasible,
			Message:     "no feasible solution found with given constraints",
			SolveTimeMs: solveMs,
		}, nil
	}

	result := assembleResult(candidates, cfg, outcome, solveMs)
	log.WithFields(logrus.Fields{
		"total_cost":       result.TotalCost,
		"total_points":     result.TotalPredictedPoints,
		"starting_points":  result.StartingPredictedPoints,
		"budget_usage_pct": result.BudgetUsagePct,
		"solve_time_ms":    solveMs,
	}).Info("Squad optimization complete")

	return result, nil
}

// filterCandidates removes rows the model must never see: unknown positions
// (the feed includes manager entries), non-positive costs, and
// forced-excluded ids. Exclusion happens here, before model construction,
// rather than through penalty terms.
func filterCandidates(players []Player, cfg Config, log *logrus.Entry) []Player {
	excluded := make(map[int]bool, len(cfg.ForcedExcludeIDs))
	for _, id := range cfg.ForcedExcludeIDs {
		excluded[id] = true
	}

	candidates := make([]Player, 0, len(players))
	invalidPosition := 0
	invalidCost := 0
	excludedCount := 0

	for _, p := range players {
		switch {
		case !p.Position.Valid():
			invalidPosition++
		case p.Cost <= 0:
			invalidCost++
		case excluded[p.ID]:
			excludedCount++
		default:
			candidates = append(candidates, p)
		}
	}

	log.WithFields(logrus.Fields{
		"total_players":    len(players),
		"invalid_position": invalidPosition,
		"invalid_cost":     invalidCost,
		"excluded_count":   excludedCount,
		"candidate_count":  len(candidates),
	}).Debug("Candidate filtering complete")

	return candidates
}

// logMissingForcedIncludes warns about forced-include ids that are not in the
// candidate pool. They are skipped, matching the original behavior, rather
// than turned into an unsatisfiable row.
func logMissingForcedIncludes(candidates []Player, cfg Config, log *logrus.Entry) {
	if len(cfg.ForcedIncludeIDs) == 0 {
		return
	}
	present := make(map[int]bool, len(candidates))
	for _, p := range candidates {
		present[p.ID] = true
	}
	for _, id := range cfg.ForcedIncludeIDs {
		if !present[id] {
			log.WithField("player_id", id).Warn("Forced include not in candidate pool, skipping")
		}
	}
}
