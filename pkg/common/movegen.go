package common

const (
	f1g1Mask = (uint64(1) << 5) | (uint64(1) << 6)
	b1d1Mask = (uint64(1) << 1) | (uint64(1) << 2) | (uint64(1) << 3)
	f8g8Mask = f1g1Mask << 56
	b8d8Mask = b1d1Mask << 56
)

var promotionPieces = [...]int{Queen, Rook, Bishop, Knight}

type moveList struct {
	items []Move
	count int
}

func (ml *moveList) add(m Move) {
	ml.items[ml.count] = m
	ml.count++
}

func (ml *moveList) addTargets(p *Position, from, piece int, targets uint64) {
	for ; targets != 0; targets &= targets - 1 {
		var to = FirstOne(targets)
		ml.add(makeMove(from, to, piece, p.WhatPiece(to)))
	}
}

func (ml *moveList) addPawnMoves(p *Position, targets uint64, delta int, allPromotions bool) {
	for ; targets != 0; targets &= targets - 1 {
		var to = FirstOne(targets)
		var from = to - delta
		var captured = p.WhatPiece(to)
		if Rank(to) == Rank8 || Rank(to) == Rank1 {
			if !allPromotions {
				ml.add(makePromotion(from, to, captured, Queen))
				continue
			}
			for _, promotion := range promotionPieces {
				ml.add(makePromotion(from, to, captured, promotion))
			}
		} else {
			ml.add(makeMove(from, to, Pawn, captured))
		}
	}
}

func sliderAttacks(piece, sq int, occ uint64) uint64 {
	switch piece {
	case Knight:
		return KnightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	}
	return 0
}

// GenerateMoves writes pseudo-legal moves into the buffer. When the side to
// move is in check non-king moves are restricted to capturing the checker or
// blocking it.
func GenerateMoves(buffer []Move, p *Position) []Move {
	var own = p.PiecesByColor(p.WhiteMove)
	var target = ^own
	if p.Checkers != 0 {
		var kingSq = FirstOne(p.Kings & own)
		target = p.Checkers | betweenMask[kingSq][FirstOne(p.Checkers)]
	}
	return generate(buffer, p, target, true)
}

// GenerateCaptures writes pseudo-legal captures and queen promotions.
func GenerateCaptures(buffer []Move, p *Position) []Move {
	var opp = p.PiecesByColor(!p.WhiteMove)
	return generate(buffer, p, opp, false)
}

func generate(buffer []Move, p *Position, target uint64, quiets bool) []Move {
	var ml = moveList{items: buffer}
	var white = p.WhiteMove
	var own = p.PiecesByColor(white)
	var opp = p.PiecesByColor(!white)
	var occ = p.White | p.Black
	var pawns = p.Pawns & own

	if p.EpSquare != SquareNone {
		for fromBB := PawnAttacks(p.EpSquare, !white) & pawns; fromBB != 0; fromBB &= fromBB - 1 {
			ml.add(makeMove(FirstOne(fromBB), p.EpSquare, Pawn, Pawn))
		}
	}

	var promoRank = Rank8Mask
	if !white {
		promoRank = Rank1Mask
	}
	var pushTarget = target &^ occ
	if !quiets {
		pushTarget = promoRank &^ occ
	}
	if white {
		var single = (pawns << 8) &^ occ
		ml.addPawnMoves(p, single&pushTarget, 8, quiets)
		if quiets {
			ml.addPawnMoves(p, ((single&Rank3Mask)<<8)&pushTarget, 16, quiets)
		}
		ml.addPawnMoves(p, ((pawns&^FileAMask)<<7)&opp&target, 7, quiets)
		ml.addPawnMoves(p, ((pawns&^FileHMask)<<9)&opp&target, 9, quiets)
	} else {
		var single = (pawns >> 8) &^ occ
		ml.addPawnMoves(p, single&pushTarget, -8, quiets)
		if quiets {
			ml.addPawnMoves(p, ((single&Rank6Mask)>>8)&pushTarget, -16, quiets)
		}
		ml.addPawnMoves(p, ((pawns&^FileAMask)>>9)&opp&target, -9, quiets)
		ml.addPawnMoves(p, ((pawns&^FileHMask)>>7)&opp&target, -7, quiets)
	}

	for piece := Knight; piece <= Queen; piece++ {
		for fromBB := p.pieces(piece) & own; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			ml.addTargets(p, from, piece, sliderAttacks(piece, from, occ)&target)
		}
	}

	var kingSq = FirstOne(p.Kings & own)
	var kingTarget = ^own
	if !quiets {
		kingTarget = opp
	}
	ml.addTargets(p, kingSq, King, KingAttacks[kingSq]&kingTarget)

	if quiets && p.Checkers == 0 {
		ml.addCastles(p, occ)
	}

	return ml.items[:ml.count]
}

// addCastles checks the king's start and transit squares. The destination
// square is checked by the legality test in MakeMove.
func (ml *moveList) addCastles(p *Position, occ uint64) {
	if p.WhiteMove {
		if p.CastleRights&WhiteKingSide != 0 && occ&f1g1Mask == 0 &&
			!p.isAttackedBySide(SquareF1, false) {
			ml.add(makeMove(SquareE1, SquareG1, King, Empty))
		}
		if p.CastleRights&WhiteQueenSide != 0 && occ&b1d1Mask == 0 &&
			!p.isAttackedBySide(SquareD1, false) {
			ml.add(makeMove(SquareE1, SquareC1, King, Empty))
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 && occ&f8g8Mask == 0 &&
			!p.isAttackedBySide(SquareF8, true) {
			ml.add(makeMove(SquareE8, SquareG8, King, Empty))
		}
		if p.CastleRights&BlackQueenSide != 0 && occ&b8d8Mask == 0 &&
			!p.isAttackedBySide(SquareD8, true) {
			ml.add(makeMove(SquareE8, SquareC8, King, Empty))
		}
	}
}

func GenerateLegalMoves(p *Position) []Move {
	var buffer [MaxMoves]Move
	var child Position
	var result []Move
	for _, m := range GenerateMoves(buffer[:], p) {
		if p.MakeMove(m, &child) {
			result = append(result, m)
		}
	}
	return result
}
