package common

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var castleMask [64]int

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [2][King + 1][64]uint64
)

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("parse fen failed %v", fen)
	}

	var p = Position{
		WhiteMove: tokens[1] == "w",
		EpSquare:  SquareNone,
		LastMove:  MoveEmpty,
	}

	var file, rank = FileA, Rank8
	for i := 0; i < len(tokens[0]); i++ {
		var ch = tokens[0][i]
		switch {
		case ch == '/':
			file, rank = FileA, rank-1
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			var piece, white, ok = parsePiece(ch)
			if !ok || !onBoard(file, rank) {
				return Position{}, fmt.Errorf("parse fen failed %v", fen)
			}
			xorPiece(&p, piece, white, MakeSquare(file, rank))
			file++
		}
	}

	for _, ch := range tokens[2] {
		switch ch {
		case 'K':
			p.CastleRights |= WhiteKingSide
		case 'Q':
			p.CastleRights |= WhiteQueenSide
		case 'k':
			p.CastleRights |= BlackKingSide
		case 'q':
			p.CastleRights |= BlackQueenSide
		}
	}

	var ep, err = ParseSquare(tokens[3])
	if err != nil {
		return Position{}, fmt.Errorf("parse fen failed %v: %w", fen, err)
	}
	p.EpSquare = ep

	if len(tokens) > 4 {
		p.Rule50, _ = strconv.Atoi(tokens[4])
	}

	if PopCount(p.Kings&p.White) != 1 || PopCount(p.Kings&p.Black) != 1 {
		return Position{}, fmt.Errorf("parse fen failed %v: bad kings", fen)
	}
	p.Key = p.computeKey()
	p.Checkers = p.computeCheckers()
	if !p.isLegal() {
		return Position{}, fmt.Errorf("parse fen failed %v: side not to move in check", fen)
	}
	return p, nil
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var piece, white = p.GetPieceTypeAndSide(MakeSquare(file, rank))
			if piece == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteString(pieceToChar(piece, white))
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteString("/")
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		for i, ch := range "KQkq" {
			if p.CastleRights&(1<<uint(i)) != 0 {
				sb.WriteRune(ch)
			}
		}
	}

	if p.EpSquare == SquareNone {
		sb.WriteString(" -")
	} else {
		sb.WriteString(" " + SquareName(p.EpSquare))
	}

	fmt.Fprintf(&sb, " %v %v", p.Rule50, p.Rule50/2+1)
	return sb.String()
}

func (p *Position) PiecesByColor(white bool) uint64 {
	if white {
		return p.White
	}
	return p.Black
}

func (p *Position) pieces(piece int) uint64 {
	switch piece {
	case Pawn:
		return p.Pawns
	case Knight:
		return p.Knights
	case Bishop:
		return p.Bishops
	case Rook:
		return p.Rooks
	case Queen:
		return p.Queens
	case King:
		return p.Kings
	}
	return 0
}

func (p *Position) PieceMask(piece int, white bool) uint64 {
	return p.pieces(piece) & p.PiecesByColor(white)
}

func (p *Position) WhiteToMove() bool {
	return p.WhiteMove
}

func (p *Position) WhatPiece(sq int) int {
	var bb = SquareMask[sq]
	if (p.White|p.Black)&bb == 0 {
		return Empty
	}
	for piece := Pawn; piece <= King; piece++ {
		if p.pieces(piece)&bb != 0 {
			return piece
		}
	}
	panic(fmt.Errorf("wrong piece on %s", SquareName(sq)))
}

func (p *Position) GetPieceTypeAndSide(sq int) (piece int, white bool) {
	piece = p.WhatPiece(sq)
	white = p.White&SquareMask[sq] != 0
	return
}

func xorPiece(p *Position, piece int, white bool, sq int) {
	var b = SquareMask[sq]
	if white {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
	p.Key ^= PieceSquareKey(piece, white, sq)
}

func movePiece(p *Position, piece int, white bool, from, to int) {
	xorPiece(p, piece, white, from)
	xorPiece(p, piece, white, to)
}

// MakeMove fills child with the position after move and reports whether
// the move leaves the own king out of check.
func (p *Position) MakeMove(move Move, child *Position) bool {
	var from, to = move.From(), move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var white = p.WhiteMove

	*child = *p
	child.WhiteMove = !white
	child.Key ^= sideKey
	child.LastMove = move

	child.CastleRights = p.CastleRights & castleMask[from] & castleMask[to]
	child.Key ^= castlingKey[child.CastleRights^p.CastleRights]

	child.EpSquare = SquareNone
	if p.EpSquare != SquareNone {
		child.Key ^= enpassantKey[File(p.EpSquare)]
	}

	if movingPiece == Pawn || capturedPiece != Empty {
		child.Rule50 = 0
	} else {
		child.Rule50 = p.Rule50 + 1
	}

	if capturedPiece != Empty {
		var capSq = to
		if movingPiece == Pawn && to == p.EpSquare {
			if white {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		xorPiece(child, capturedPiece, !white, capSq)
	}

	if promotion := move.Promotion(); promotion != Empty {
		xorPiece(child, Pawn, white, from)
		xorPiece(child, promotion, white, to)
	} else {
		movePiece(child, movingPiece, white, from, to)
	}

	switch {
	case movingPiece == Pawn && AbsDelta(from, to) == 16:
		child.EpSquare = (from + to) / 2
		child.Key ^= enpassantKey[File(child.EpSquare)]
	case movingPiece == King && AbsDelta(from, to) == 2:
		if to > from {
			movePiece(child, Rook, white, to+1, to-1)
		} else {
			movePiece(child, Rook, white, to-2, to+1)
		}
	}

	if !child.isLegal() {
		return false
	}
	child.Checkers = child.computeCheckers()
	return true
}

func (p *Position) MakeNullMove(child *Position) {
	*child = *p
	child.WhiteMove = !p.WhiteMove
	child.Key ^= sideKey
	child.Rule50 = p.Rule50 + 1
	child.EpSquare = SquareNone
	if p.EpSquare != SquareNone {
		child.Key ^= enpassantKey[File(p.EpSquare)]
	}
	child.Checkers = 0
	child.LastMove = MoveEmpty
}

func (p *Position) isAttackedBySide(sq int, white bool) bool {
	var enemy = p.PiecesByColor(white)
	var occ = p.White | p.Black
	return PawnAttacks(sq, !white)&p.Pawns&enemy != 0 ||
		KnightAttacks[sq]&p.Knights&enemy != 0 ||
		KingAttacks[sq]&p.Kings&enemy != 0 ||
		BishopAttacks(sq, occ)&(p.Bishops|p.Queens)&enemy != 0 ||
		RookAttacks(sq, occ)&(p.Rooks|p.Queens)&enemy != 0
}

func (p *Position) attackersTo(sq int) uint64 {
	var occ = p.White | p.Black
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) computeCheckers() uint64 {
	var kingSq = FirstOne(p.Kings & p.PiecesByColor(p.WhiteMove))
	return p.attackersTo(kingSq) & p.PiecesByColor(!p.WhiteMove)
}

// isLegal reports whether the side that just moved left its king safe.
func (p *Position) isLegal() bool {
	var kingSq = FirstOne(p.Kings & p.PiecesByColor(!p.WhiteMove))
	return !p.isAttackedBySide(kingSq, p.WhiteMove)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

func PieceSquareKey(piece int, white bool, sq int) uint64 {
	if white {
		return pieceSquareKey[0][piece][sq]
	}
	return pieceSquareKey[1][piece][sq]
}

func (p *Position) computeKey() uint64 {
	var result uint64
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece, white = p.GetPieceTypeAndSide(sq)
		result ^= PieceSquareKey(piece, white, sq)
	}
	return result
}

// MirrorPosition swaps colors and reflects the board vertically.
func MirrorPosition(p *Position) Position {
	var result = Position{
		WhiteMove:    !p.WhiteMove,
		CastleRights: (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2),
		EpSquare:     SquareNone,
		Rule50:       p.Rule50,
		LastMove:     MoveEmpty,
	}
	if p.EpSquare != SquareNone {
		result.EpSquare = FlipSquare(p.EpSquare)
	}
	for x := p.White | p.Black; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var piece, white = p.GetPieceTypeAndSide(sq)
		xorPiece(&result, piece, !white, FlipSquare(sq))
	}
	result.Key = result.computeKey()
	result.Checkers = result.computeCheckers()
	return result
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for side := range pieceSquareKey {
		for piece := Pawn; piece <= King; piece++ {
			for sq := range pieceSquareKey[side][piece] {
				pieceSquareKey[side][piece][sq] = r.Uint64()
			}
		}
	}
	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}
	for i := range castlingKey {
		for j := range castle {
			if i&(1<<uint(j)) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func init() {
	initKeys()
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}
