package common

import "time"

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const MaxMoves = 256

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a copy-make board. A child position is produced by MakeMove
// into a caller owned value, the parent is never modified.
type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings, White, Black, Checkers uint64
	WhiteMove                                                             bool
	CastleRights, Rule50, EpSquare                                        int
	Key                                                                   uint64
	LastMove                                                              Move
}

// BoardView is the read-only part of a position that evaluation needs.
type BoardView interface {
	PieceMask(piece int, white bool) uint64
	WhiteToMove() bool
}

type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	Depth          int
	Nodes          int
}

type SearchInfo struct {
	Score    UciScore
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
}

type UciScore struct {
	Centipawns int
	Mate       int
}

func (si *SearchInfo) BestMove() Move {
	if len(si.MainLine) == 0 {
		return MoveEmpty
	}
	return si.MainLine[0]
}
