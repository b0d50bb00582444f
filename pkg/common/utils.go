package common

import "strings"

const pieceNames = "pnbrqk"

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

// parsePiece decodes a FEN piece letter, uppercase is white.
func parsePiece(ch byte) (piece int, white, ok bool) {
	var lower = strings.ToLower(string(ch))
	var i = strings.Index(pieceNames, lower)
	if i < 0 {
		return Empty, false, false
	}
	return Pawn + i, lower != string(ch), true
}

func pieceToChar(piece int, white bool) string {
	var result = string(pieceNames[piece-Pawn])
	if white {
		result = strings.ToUpper(result)
	}
	return result
}
