package engine

import . "github.com/cosmoschess/cosmos/pkg/common"

const (
	sortKeyTransMove = 2_000_000
	sortKeyNoisy     = 1_000_000
	sortKeyKiller    = 900_000
)

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

func mvvlva(move Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

// orderMoves keys the moves and sorts them, best first. The sort is stable
// so equal keys keep generation order.
func orderMoves(dst []OrderedMove, moves []Move, transMove, killer Move,
	history *historyService, white bool) []OrderedMove {

	var ml = dst[:len(moves)]
	for i, m := range moves {
		var score int
		if m == transMove {
			score = sortKeyTransMove
		} else if isCaptureOrPromotion(m) {
			score = sortKeyNoisy + mvvlva(m)
		} else if m == killer {
			score = sortKeyKiller
		} else {
			score = Min(history.ReadTotal(white, m), sortKeyKiller-1)
		}
		ml[i] = OrderedMove{Move: m, Key: int32(score)}
	}
	sortMoves(ml)
	return ml
}

func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}
