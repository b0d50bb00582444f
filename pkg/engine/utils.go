package engine

import (
	. "github.com/cosmoschess/cosmos/pkg/common"
)

const (
	stackSize     = 128
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func isMateScore(v int) bool {
	return v >= valueWin || v <= valueLoss
}

// valueToTT makes a mate score relative to the node being stored.
func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

func newUciScore(v int) UciScore {
	if v >= valueWin {
		return UciScore{Mate: (valueMate - v + 1) / 2}
	} else if v <= valueLoss {
		return UciScore{Mate: (-valueMate - v) / 2}
	} else {
		return UciScore{Centipawns: v}
	}
}

// isLateEndgame reports a side with no piece besides pawns and at most one
// minor, where a null move risks zugzwang.
func isLateEndgame(p Board, white bool) bool {
	return p.PieceMask(Rook, white)|p.PieceMask(Queen, white) == 0 &&
		!MoreThanOne(p.PieceMask(Knight, white)|p.PieceMask(Bishop, white))
}

func isCaptureOrPromotion(move Move) bool {
	return move.IsCaptureOrPromotion()
}
