package predictor

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
)

// TeamFixtureRating is a team's average fixture difficulty over the upcoming
// stretch, lower being easier.
type TeamFixtureRating struct {
	Team       string  `json:"team"`
	FDROverall float64 `json:"fdr_overall"`
	FDRAttack  float64 `json:"fdr_attack"`
	FDRDefence float64 `json:"fdr_defence"`
}

// Recommendation is one suggested pick within a position.
type Recommendation struct {
	Name         string  `json:"name"`
	Team         string  `json:"team"`
	Cost         float64 `json:"cost"`
	Form         float64 `json:"form"`
	Ownership    float64 `json:"selected_by_percent"`
	SeasonPoints float64 `json:"season_points"`
	Score        float64 `json:"score"`
}

// FixtureAnalysis ranks teams by fixture ease and lists the top picks per
// position for the upcoming gameweeks.
type FixtureAnalysis struct {
	TeamRankings    []TeamFixtureRating                     `json:"team_rankings"`
	Recommendations map[optimizer.Position][]Recommendation `json:"recommendations"`
}

const recommendationsPerPosition = 5

// AnalyzeFixtures combines predictions with fixture difficulty into a
// recommendation report. predictions must be positionally aligned with
// players (as returned by a ScoreSource).
func AnalyzeFixtures(players []PlayerStats, predictions []float64) FixtureAnalysis {
	analysis := FixtureAnalysis{
		Recommendations: make(map[optimizer.Position][]Recommendation),
	}

	// Team rankings: mean FDR per team, easiest first.
	byTeam := make(map[string][]PlayerStats)
	for _, p := range players {
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}
	for team, teamPlayers := range byTeam {
		overall := make([]float64, len(teamPlayers))
		attack := make([]float64, len(teamPlayers))
		defence := make([]float64, len(teamPlayers))
		for i, p := range teamPlayers {
			overall[i] = fdrOrNeutral(p.FDROverall)
			attack[i] = fdrOrNeutral(p.FDRAttack)
			defence[i] = fdrOrNeutral(p.FDRDefence)
		}
		analysis.TeamRankings = append(analysis.TeamRankings, TeamFixtureRating{
			Team:       team,
			FDROverall: stat.Mean(overall, nil),
			FDRAttack:  stat.Mean(attack, nil),
			FDRDefence: stat.Mean(defence, nil),
		})
	}
	sort.Slice(analysis.TeamRankings, func(i, j int) bool {
		return analysis.TeamRankings[i].FDROverall < analysis.TeamRankings[j].FDROverall
	})

	// Per-position picks: blend prediction with fixture ease.
	for _, pos := range optimizer.Positions {
		var recs []Recommendation
		for i, p := range players {
			if p.Position != pos {
				continue
			}
			fixtureScore := fixtureEase(p)
			recs = append(recs, Recommendation{
				Name:         p.Name,
				Team:         p.Team,
				Cost:         p.Cost,
				Form:         p.Form,
				Ownership:    p.Ownership,
				SeasonPoints: p.TotalPoints,
				Score:        predictions[i]*0.7 + fixtureScore*0.3,
			})
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
		if len(recs) > recommendationsPerPosition {
			recs = recs[:recommendationsPerPosition]
		}
		analysis.Recommendations[pos] = recs
	}

	return analysis
}

// fixtureEase is the attack-or-defence FDR inverted onto a 0-4 scale,
// matching the position's scoring route.
func fixtureEase(p PlayerStats) float64 {
	switch p.Position {
	case optimizer.Forward, optimizer.Midfielder:
		return max0(5 - fdrOrNeutral(p.FDRAttack))
	default:
		return max0(5 - fdrOrNeutral(p.FDRDefence))
	}
}
