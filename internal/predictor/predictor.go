package predictor

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
	"github.com/jstittsworth/fpl-optimizer/pkg/logger"
)

// PlayerStats is the raw per-player input the scorer works from. FDR fields
// are the 1-5 fixture difficulty ratings; zero means unknown and is treated
// as neutral (3.0).
type PlayerStats struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Team          string             `json:"team"`
	Position      optimizer.Position `json:"position"`
	Cost          float64            `json:"cost"`
	Form          float64            `json:"form"`
	TotalPoints   float64            `json:"total_points"`
	PointsPerGame float64            `json:"points_per_game"`
	Minutes       float64            `json:"minutes"`
	Ownership     float64            `json:"selected_by_percent"`
	FDRAttack     float64            `json:"fdr_attack,omitempty"`
	FDRDefence    float64            `json:"fdr_defence,omitempty"`
	FDROverall    float64            `json:"fdr_overall,omitempty"`
}

// ScoreSource produces one predicted-points scalar per player. The optimizer
// consumes these scalars as-is; swapping the scorer never touches the
// constraint model.
type ScoreSource interface {
	PredictPoints(players []PlayerStats) []float64
}

// FDRWeights control how strongly fixture difficulty scales predictions.
type FDRWeights struct {
	Attack  float64 `json:"attack"`
	Defence float64 `json:"defence"`
	Overall float64 `json:"overall"`
}

// StrategicScorer is the heuristic blend: season performance, recent form,
// fixture advantage, points-per-game consistency, value for money, and a
// small boost for top clubs, scaled by minutes, popularity, and position.
// It is deterministic for a given input.
type StrategicScorer struct {
	TopTeams   []string
	UseFDR     bool
	FDRWeights FDRWeights
}

// NewStrategicScorer returns a scorer with the standard weights.
func NewStrategicScorer() *StrategicScorer {
	return &StrategicScorer{
		TopTeams:   []string{"Man City", "Arsenal", "Liverpool", "Chelsea", "Man Utd"},
		UseFDR:     true,
		FDRWeights: FDRWeights{Attack: 0.1, Defence: 0.1, Overall: 0.05},
	}
}

var positionMultipliers = map[optimizer.Position]float64{
	optimizer.Goalkeeper: 0.90,
	optimizer.Defender:   1.00,
	optimizer.Midfielder: 1.10,
	optimizer.Forward:    1.05,
}

// PredictPoints implements ScoreSource.
func (s *StrategicScorer) PredictPoints(players []PlayerStats) []float64 {
	if len(players) == 0 {
		return nil
	}

	totals := make([]float64, len(players))
	for i, p := range players {
		totals[i] = p.TotalPoints
	}
	seasonScale := floats.Max(totals) / 10
	if seasonScale < 1 {
		seasonScale = 1
	}

	topTeams := make(map[string]bool, len(s.TopTeams))
	for _, t := range s.TopTeams {
		topTeams[t] = true
	}

	predictions := make([]float64, len(players))
	for i, p := range players {
		seasonBase := clamp(p.TotalPoints/seasonScale, 0, 10)
		last5Base := clamp(p.Form*1.8, 0, 9)
		fixtureScore := clamp(s.fixtureAdvantage(p), 0, 8)
		form10Base := clamp(p.Form*0.8, 0, 4)
		ppgBase := clamp(p.PointsPerGame*1.5, 0, 7)

		valueBase := 0.0
		if p.Cost > 0 {
			valueBase = clamp(p.TotalPoints/p.Cost*0.8, 0, 6)
		}

		topTeamBonus := 0.0
		if topTeams[p.Team] {
			topTeamBonus = 2.0
		}

		base := seasonBase*0.20 +
			last5Base*0.20 +
			fixtureScore*0.25 +
			form10Base*0.05 +
			ppgBase*0.15 +
			valueBase*0.10 +
			topTeamBonus*0.05

		minutesFactor := clamp(p.Minutes/900, 0.4, 1.1)
		popularityFactor := 1 + (p.Ownership/100)*0.1
		positionFactor, ok := positionMultipliers[p.Position]
		if !ok {
			positionFactor = 1.0
		}

		predicted := base * minutesFactor * popularityFactor * positionFactor
		if s.UseFDR {
			predicted *= s.fdrMultiplier(p)
		}
		predictions[i] = predicted
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"players": len(players),
		"use_fdr": s.UseFDR,
	}).Debug("Strategic predictions generated")

	return predictions
}

// fixtureAdvantage scores upcoming fixtures per position: attackers want low
// attack FDR, defenders and keepers want low defence FDR.
func (s *StrategicScorer) fixtureAdvantage(p PlayerStats) float64 {
	attack := fdrOrNeutral(p.FDRAttack)
	defence := fdrOrNeutral(p.FDRDefence)
	overall := fdrOrNeutral(p.FDROverall)

	var base float64
	switch p.Position {
	case optimizer.Forward, optimizer.Midfielder:
		base = max0(5-attack) + max0(5-overall)*0.5
	case optimizer.Defender:
		base = max0(5-defence)*1.2 + max0(5-attack)*0.4 + max0(5-overall)*0.4
	case optimizer.Goalkeeper:
		base = max0(5-defence)*1.5 + max0(5-overall)*0.3
	}

	return base + (p.Ownership/100)*0.5
}

// fdrMultiplier scales a prediction for fixture difficulty, mirroring the
// position split in fixtureAdvantage.
func (s *StrategicScorer) fdrMultiplier(p PlayerStats) float64 {
	attack := fdrOrNeutral(p.FDRAttack)
	defence := fdrOrNeutral(p.FDRDefence)
	overall := fdrOrNeutral(p.FDROverall)

	switch p.Position {
	case optimizer.Forward, optimizer.Midfielder:
		return 1 + s.FDRWeights.Attack*(5-attack) + s.FDRWeights.Overall*(5-overall)
	case optimizer.Defender:
		return 1 + s.FDRWeights.Defence*(5-defence) + s.FDRWeights.Overall*(5-overall)
	case optimizer.Goalkeeper:
		return 1 + s.FDRWeights.Defence*1.5*(5-defence) + s.FDRWeights.Overall*(5-overall)
	}
	return 1
}

// BuildCatalog turns raw stats plus predictions into the optimizer's catalog,
// applying the small popularity nudge (and its fixture-aware boost when FDR
// data is present) to the final scores. All blending ends here; the optimizer
// sees only the resulting scalar.
func BuildCatalog(players []PlayerStats, predictions []float64) []optimizer.Player {
	catalog := make([]optimizer.Player, len(players))
	for i, p := range players {
		factor := 1 + (p.Ownership/100)*0.03
		if p.FDROverall > 0 {
			factor += (p.Ownership / 100) * (5 - p.FDROverall) / 4 * 0.02
		}
		catalog[i] = optimizer.Player{
			ID:              p.ID,
			Name:            p.Name,
			Position:        p.Position,
			Team:            p.Team,
			Cost:            p.Cost,
			PredictedPoints: predictions[i] * factor,
			Ownership:       p.Ownership,
			Form:            p.Form,
		}
	}
	return catalog
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func fdrOrNeutral(v float64) float64 {
	if v == 0 {
		return 3.0
	}
	return v
}
