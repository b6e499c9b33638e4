package optimizer

// Position is the closed set of squad positions. Any other value on an
// incoming player row (the upstream feed includes "Manager" entries) is
// dropped before model construction.
type Position string

const (
	Goalkeeper Position = "Goalkeeper"
	Defender   Position = "Defender"
	Midfielder Position = "Midfielder"
	Forward    Position = "Forward"
)

// Positions lists the valid positions in display order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// Valid reports whether p is one of the four squad positions.
func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

// Player is a single candidate row in the catalog handed to Optimize.
// PredictedPoints is an opaque scalar produced upstream (see the predictor
// package); the optimizer never recomputes it.
type Player struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	Cost            float64  `json:"cost"`
	PredictedPoints float64  `json:"predicted_points"`
	Ownership       float64  `json:"selected_by_percent,omitempty"`
	Form            float64  `json:"form,omitempty"`
}

// SquadPlayer is a selected player plus its starting/bench assignment.
type SquadPlayer struct {
	Player
	IsStarting bool `json:"is_starting"`
}
