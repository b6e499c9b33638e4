package optimizer

// composeObjective fills the column costs for the maximization
//
//	sum_i  w1*score[i]*squad[i] + w2*score[i]*start[i] + w3*cost[i]*start[i]
//
// where score[i] is the predicted points scaled by the position weight. The
// w3 term is a deliberate bias that pushes expensive players into the
// starting XI instead of the bench; it is not a budget term.
func (sm *squadModel) composeObjective() {
	w := sm.cfg.Weights
	costs := make([]float64, 2*sm.n)
	for i, p := range sm.players {
		score := p.PredictedPoints * sm.cfg.positionWeight(p.Position)
		costs[sm.squadCol(i)] = w.SquadPoints * score
		costs[sm.startCol(i)] = w.StartPoints*score + w.StartCost*p.Cost
	}
	sm.model.ColCosts = costs
}
