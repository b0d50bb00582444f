package eval

import (
	"github.com/cosmoschess/cosmos/pkg/common"
)

var pieceValues = [...]int{common.Pawn: 100, common.Knight: 300, common.Bishop: 300, common.Rook: 500, common.Queen: 900}

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p common.BoardView) int {
	var eval = 0
	for piece := common.Pawn; piece <= common.Queen; piece++ {
		eval += pieceValues[piece] * (common.PopCount(p.PieceMask(piece, true)) -
			common.PopCount(p.PieceMask(piece, false)))
	}
	if !p.WhiteToMove() {
		eval = -eval
	}
	return eval
}
