package common

import (
	"fmt"
	"strings"
)

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const SquareNone = -1

const (
	SquareA1 = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
)

const (
	SquareA8 = 56 + iota
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

// FlipSquare reflects a square across the horizontal middle line.
func FlipSquare(sq int) int {
	return sq ^ 56
}

func File(sq int) int {
	return sq & 7
}

func Rank(sq int) int {
	return sq >> 3
}

func MakeSquare(file, rank int) int {
	return (rank << 3) | file
}

func SquareName(sq int) string {
	return string(fileNames[File(sq)]) + string(rankNames[Rank(sq)])
}

func ParseSquare(s string) (int, error) {
	if s == "-" {
		return SquareNone, nil
	}
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("bad square %q", s)
	}
	var file = strings.IndexByte(fileNames, s[0])
	var rank = strings.IndexByte(rankNames, s[1])
	if file < 0 || rank < 0 {
		return SquareNone, fmt.Errorf("bad square %q", s)
	}
	return MakeSquare(file, rank), nil
}
