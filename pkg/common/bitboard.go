package common

import "math/bits"

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

// ray directions; the first four grow the square index
const (
	dirNorth = iota
	dirEast
	dirNorthEast
	dirNorthWest
	dirSouth
	dirWest
	dirSouthEast
	dirSouthWest
)

var (
	SquareMask       [64]uint64
	KnightAttacks    [64]uint64
	KingAttacks      [64]uint64
	whitePawnAttacks [64]uint64
	blackPawnAttacks [64]uint64
	rays             [8][64]uint64
	betweenMask      [64][64]uint64
)

var dirSteps = [8][2]int{
	dirNorth:     {0, 1},
	dirEast:      {1, 0},
	dirNorthEast: {1, 1},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
	dirSouthWest: {-1, -1},
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func lastOne(b uint64) int {
	return 63 - bits.LeadingZeros64(b)
}

func MoreThanOne(b uint64) bool {
	return b&(b-1) != 0
}

func PawnAttacks(sq int, white bool) uint64 {
	if white {
		return whitePawnAttacks[sq]
	}
	return blackPawnAttacks[sq]
}

func AllWhitePawnAttacks(b uint64) uint64 {
	return ((b & ^FileAMask) << 7) | ((b & ^FileHMask) << 9)
}

func AllBlackPawnAttacks(b uint64) uint64 {
	return ((b & ^FileAMask) >> 9) | ((b & ^FileHMask) >> 7)
}

func rayAttacks(dir, sq int, occ uint64) uint64 {
	var attacks = rays[dir][sq]
	var blockers = attacks & occ
	if blockers == 0 {
		return attacks
	}
	if dir < dirSouth {
		return attacks ^ rays[dir][FirstOne(blockers)]
	}
	return attacks ^ rays[dir][lastOne(blockers)]
}

func BishopAttacks(sq int, occ uint64) uint64 {
	return rayAttacks(dirNorthEast, sq, occ) |
		rayAttacks(dirNorthWest, sq, occ) |
		rayAttacks(dirSouthEast, sq, occ) |
		rayAttacks(dirSouthWest, sq, occ)
}

func RookAttacks(sq int, occ uint64) uint64 {
	return rayAttacks(dirNorth, sq, occ) |
		rayAttacks(dirEast, sq, occ) |
		rayAttacks(dirSouth, sq, occ) |
		rayAttacks(dirWest, sq, occ)
}

func QueenAttacks(sq int, occ uint64) uint64 {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

func onBoard(file, rank int) bool {
	return file >= FileA && file <= FileH && rank >= Rank1 && rank <= Rank8
}

func stepMask(sq int, steps [][2]int) uint64 {
	var result uint64
	for _, st := range steps {
		var f, r = File(sq) + st[0], Rank(sq) + st[1]
		if onBoard(f, r) {
			result |= SquareMask[MakeSquare(f, r)]
		}
	}
	return result
}

func init() {
	for sq := 0; sq < 64; sq++ {
		SquareMask[sq] = uint64(1) << uint(sq)
	}
	for sq := 0; sq < 64; sq++ {
		KnightAttacks[sq] = stepMask(sq, [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}})
		KingAttacks[sq] = stepMask(sq, dirSteps[:])
		whitePawnAttacks[sq] = stepMask(sq, [][2]int{{-1, 1}, {1, 1}})
		blackPawnAttacks[sq] = stepMask(sq, [][2]int{{-1, -1}, {1, -1}})
	}
	for dir, st := range dirSteps {
		for sq := 0; sq < 64; sq++ {
			var between uint64
			for f, r := File(sq)+st[0], Rank(sq)+st[1]; onBoard(f, r); f, r = f+st[0], r+st[1] {
				var to = MakeSquare(f, r)
				rays[dir][sq] |= SquareMask[to]
				betweenMask[sq][to] = between
				between |= SquareMask[to]
			}
		}
	}
}
