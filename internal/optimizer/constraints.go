package optimizer

import "math"

// addConstraints appends every constraint row to the model. Row order is
// irrelevant to the feasible set; it only affects solver performance.
func (sm *squadModel) addConstraints() {
	sm.addBudgetBand()
	sm.addSquadSize()
	sm.addStartingSize()
	sm.addStartImpliesSquad()
	sm.addPositionQuotas()
	sm.addStartingBands()
	sm.addTeamCounts()
	sm.addTeamPositionCaps()
	sm.addExpensiveStartCoupling()
	sm.addPremiumBenchCap()
	sm.applyForcedIncludes()
}

// addBudgetBand bounds total squad cost into
// [budget*minUsage, budget] in a single double-bounded row.
func (sm *squadModel) addBudgetBand() {
	row := sm.row()
	for i, p := range sm.players {
		row[sm.squadCol(i)] = p.Cost
	}
	sm.model.AddDenseRow(sm.cfg.Budget*sm.cfg.MinBudgetUsage, row, sm.cfg.Budget)
}

func (sm *squadModel) addSquadSize() {
	size := float64(sm.cfg.SquadSize())
	row := sm.row()
	for i := range sm.players {
		row[sm.squadCol(i)] = 1
	}
	sm.model.AddDenseRow(size, row, size)
}

func (sm *squadModel) addStartingSize() {
	row := sm.row()
	for i := range sm.players {
		row[sm.startCol(i)] = 1
	}
	sm.model.AddDenseRow(StartingSize, row, StartingSize)
}

// addStartImpliesSquad enforces start[i] <= squad[i] for every candidate.
func (sm *squadModel) addStartImpliesSquad() {
	for i := range sm.players {
		row := sm.row()
		row[sm.startCol(i)] = 1
		row[sm.squadCol(i)] = -1
		sm.model.AddDenseRow(math.Inf(-1), row, 0)
	}
}

// addPositionQuotas fixes the exact squad count per position. A quota with no
// candidates still gets its row: the empty equality is how the shortage
// surfaces as infeasibility at solve time.
func (sm *squadModel) addPositionQuotas() {
	for _, pos := range Positions {
		quota := float64(sm.cfg.PositionQuotas[pos])
		row := sm.row()
		for i, p := range sm.players {
			if p.Position == pos {
				row[sm.squadCol(i)] = 1
			}
		}
		sm.model.AddDenseRow(quota, row, quota)
	}
}

func (sm *squadModel) addStartingBands() {
	for _, pos := range Positions {
		band := sm.cfg.StartingBands[pos]
		row := sm.row()
		for i, p := range sm.players {
			if p.Position == pos {
				row[sm.startCol(i)] = 1
			}
		}
		sm.model.AddDenseRow(float64(band.Min), row, float64(band.Max))
	}
}

// addTeamCounts applies the default per-team cap, or an exact-count row where
// the caller supplied an override. The override replaces the cap outright.
func (sm *squadModel) addTeamCounts() {
	for _, team := range sm.teams() {
		row := sm.row()
		for i, p := range sm.players {
			if p.Team == team {
				row[sm.squadCol(i)] = 1
			}
		}
		if exact, ok := sm.cfg.TeamCountOverrides[team]; ok {
			sm.model.AddDenseRow(float64(exact), row, float64(exact))
		} else {
			sm.model.AddDenseRow(0, row, float64(sm.cfg.MaxPerTeam))
		}
	}
}

// addTeamPositionCaps limits same-position players from one club. Teams with
// an explicit cap map use only its entries; all other teams get the defaults
// (2 for DEF/MID, 1 for GK/FWD). Pairs with no candidates are vacuous and
// skipped rather than rejected.
func (sm *squadModel) addTeamPositionCaps() {
	for _, team := range sm.teams() {
		caps, overridden := sm.cfg.TeamPositionCaps[team]
		for _, pos := range Positions {
			var limit int
			if overridden {
				capped, ok := caps[pos]
				if !ok {
					continue
				}
				limit = capped
			} else {
				limit = defaultTeamPositionCap(pos)
			}

			row := sm.row()
			present := false
			for i, p := range sm.players {
				if p.Team == team && p.Position == pos {
					row[sm.squadCol(i)] = 1
					present = true
				}
			}
			if !present {
				continue
			}
			sm.model.AddDenseRow(0, row, float64(limit))
		}
	}
}

func defaultTeamPositionCap(pos Position) int {
	switch pos {
	case Defender, Midfielder:
		return 2
	default:
		return 1
	}
}

// addExpensiveStartCoupling adds start[i] >= k*squad[i] for every candidate
// at or above the expensive threshold. With binary variables this makes
// selecting such a player imply starting them; the linear form with k=0.8 is
// preserved from the original rule set rather than rewritten as a hard
// implication.
func (sm *squadModel) addExpensiveStartCoupling() {
	for i, p := range sm.players {
		if p.Cost < sm.cfg.ExpensiveThreshold {
			continue
		}
		row := sm.row()
		row[sm.startCol(i)] = 1
		row[sm.squadCol(i)] = -sm.cfg.StartCoupling
		sm.model.AddDenseRow(0, row, math.Inf(1))
	}
}

// addPremiumBenchCap limits how many players at or above the very-expensive
// threshold may sit on the bench.
func (sm *squadModel) addPremiumBenchCap() {
	row := sm.row()
	present := false
	for i, p := range sm.players {
		if p.Cost < sm.cfg.VeryExpensiveThreshold {
			continue
		}
		row[sm.squadCol(i)] = 1
		row[sm.startCol(i)] = -1
		present = true
	}
	if !present {
		return
	}
	sm.model.AddDenseRow(math.Inf(-1), row, float64(sm.cfg.MaxVeryExpensiveOnBench))
}

// applyForcedIncludes pins squad[i] to 1 by raising the column lower bound,
// the bound form of the forced-selection equality. IDs absent from the
// candidate pool were either excluded or never supplied; Optimize logs them.
func (sm *squadModel) applyForcedIncludes() {
	if len(sm.cfg.ForcedIncludeIDs) == 0 {
		return
	}
	forced := make(map[int]bool, len(sm.cfg.ForcedIncludeIDs))
	for _, id := range sm.cfg.ForcedIncludeIDs {
		forced[id] = true
	}
	for i, p := range sm.players {
		if forced[p.ID] {
			sm.model.ColLower[sm.squadCol(i)] = 1
		}
	}
}

// teams returns the distinct team names in candidate order.
func (sm *squadModel) teams() []string {
	seen := make(map[string]bool)
	var teams []string
	for _, p := range sm.players {
		if !seen[p.Team] {
			seen[p.Team] = true
			teams = append(teams, p.Team)
		}
	}
	return teams
}
