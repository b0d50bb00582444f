package eval

import (
	. "github.com/cosmoschess/cosmos/pkg/common"
)

const totalPhase = 24

var phaseIncrement = [King + 1]int{Empty: 0, Pawn: 0, Knight: 1, Bishop: 1, Rook: 2, Queen: 4, King: 0}

var (
	mgValue = [King + 1]int{Empty: 0, Pawn: 82, Knight: 337, Bishop: 365, Rook: 477, Queen: 1025, King: 0}
	egValue = [King + 1]int{Empty: 0, Pawn: 94, Knight: 281, Bishop: 297, Rook: 512, Queen: 936, King: 0}
)

// PeSTO tapered evaluation. Tables are indexed from white's point of view
// with a8 first; material is folded into the tables at init.
type EvaluationService struct {
	mg [2][King + 1][64]int
	eg [2][King + 1][64]int
}

const (
	sideWhite = 0
	sideBlack = 1
)

func NewEvaluationService() *EvaluationService {
	var e = &EvaluationService{}
	for piece := Pawn; piece <= King; piece++ {
		for sq := 0; sq < 64; sq++ {
			e.mg[sideWhite][piece][sq] = mgValue[piece] + mgTables[piece][FlipSquare(sq)]
			e.eg[sideWhite][piece][sq] = egValue[piece] + egTables[piece][FlipSquare(sq)]
			e.mg[sideBlack][piece][sq] = mgValue[piece] + mgTables[piece][sq]
			e.eg[sideBlack][piece][sq] = egValue[piece] + egTables[piece][sq]
		}
	}
	return e
}

func (e *EvaluationService) Evaluate(p BoardView) int {
	var mg, eg, phase int
	for piece := Pawn; piece <= King; piece++ {
		for x := p.PieceMask(piece, true); x != 0; x &= x - 1 {
			var sq = FirstOne(x)
			mg += e.mg[sideWhite][piece][sq]
			eg += e.eg[sideWhite][piece][sq]
			phase += phaseIncrement[piece]
		}
		for x := p.PieceMask(piece, false); x != 0; x &= x - 1 {
			var sq = FirstOne(x)
			mg -= e.mg[sideBlack][piece][sq]
			eg -= e.eg[sideBlack][piece][sq]
			phase += phaseIncrement[piece]
		}
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	var result = (mg*phase + eg*(totalPhase-phase)) / totalPhase
	if !p.WhiteToMove() {
		result = -result
	}
	return result
}
