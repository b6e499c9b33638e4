package optimizer

import (
	"github.com/lanl/highs"
)

// squadModel is the mixed-integer model for one optimization call. Columns
// come in two families over the same candidate index: squad[i] (player i is
// rostered) occupies columns 0..n-1 and start[i] (player i is in the
// starting XI) occupies columns n..2n-1. All columns are binary.
type squadModel struct {
	players []Player
	cfg     Config
	n       int
	model   *highs.Model
}

func newSquadModel(players []Player, cfg Config) *squadModel {
	n := len(players)
	cols := 2 * n

	m := new(highs.Model)
	m.Maximize = true
	m.VarTypes = make([]highs.VariableType, cols)
	m.ColLower = make([]float64, cols)
	m.ColUpper = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.VarTypes[j] = highs.IntegerType
		m.ColUpper[j] = 1
	}

	sm := &squadModel{
		players: players,
		cfg:     cfg,
		n:       n,
		model:   m,
	}
	sm.composeObjective()
	sm.addConstraints()
	return sm
}

// squadCol returns the column index of squad[i].
func (sm *squadModel) squadCol(i int) int { return i }

// startCol returns the column index of start[i].
func (sm *squadModel) startCol(i int) int { return sm.n + i }

// row allocates a zeroed dense coefficient row spanning both families.
func (sm *squadModel) row() []float64 { return make([]float64, 2*sm.n) }
