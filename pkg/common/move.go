package common

import "strings"

// Move packs from, to, moving piece, captured piece and promotion:
// 6+6+3+3+3 bits.
type Move int32

const MoveEmpty = Move(0)

type OrderedMove struct {
	Move Move
	Key  int32
}

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from | to<<6 | movingPiece<<12 | capturedPiece<<15)
}

func makePromotion(from, to, capturedPiece, promotion int) Move {
	return makeMove(from, to, Pawn, capturedPiece) | Move(promotion<<18)
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) IsCaptureOrPromotion() bool {
	return m.CapturedPiece() != Empty || m.Promotion() != Empty
}

// String returns the move in long algebraic notation, as used by UCI.
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var result = SquareName(m.From()) + SquareName(m.To())
	if m.Promotion() != Empty {
		result += string(pieceNames[m.Promotion()-Pawn])
	}
	return result
}

// ParseMoveLAN finds the legal move with the given long algebraic name.
func ParseMoveLAN(p *Position, lan string) Move {
	for _, m := range GenerateLegalMoves(p) {
		if strings.EqualFold(m.String(), lan) {
			return m
		}
	}
	return MoveEmpty
}

func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	var move = ParseMoveLAN(p, lan)
	if move == MoveEmpty {
		return Position{}, false
	}
	var child Position
	p.MakeMove(move, &child)
	return child, true
}
