package engine

import (
	"testing"

	"github.com/matryer/is"

	. "github.com/cosmoschess/cosmos/pkg/common"
)

func findMove(t *testing.T, ml []Move, lan string) Move {
	t.Helper()
	for _, m := range ml {
		if m.String() == lan {
			return m
		}
	}
	t.Fatalf("move %v not found", lan)
	return MoveEmpty
}

func TestOrderMoves(t *testing.T) {
	is := is.New(t)
	var g = newTestGame(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	var buffer [MaxMoves]Move
	var ml = g.LegalMoves(buffer[:], false)

	var h historyService
	var killer = findMove(t, ml, "b1c3")
	h.killers[0] = killer
	h.Update(true, findMove(t, ml, "d2d4"), 3, 7)

	var ordered [MaxMoves]OrderedMove
	var moves = orderMoves(ordered[:], ml, findMove(t, ml, "g1f3"), h.Killer(0), &h, true)
	is.Equal(len(moves), len(ml))
	is.Equal(moves[0].Move.String(), "g1f3") // hash move
	is.Equal(moves[1].Move.String(), "e4d5") // capture
	is.Equal(moves[2].Move.String(), "b1c3") // killer
	is.Equal(moves[3].Move.String(), "d2d4") // history
	for i := 1; i < len(moves); i++ {
		is.True(moves[i-1].Key >= moves[i].Key)
	}
}

func TestOrderCaptures(t *testing.T) {
	is := is.New(t)
	var g = newTestGame(t, "4k3/8/8/3q4/4P3/8/8/3QK3 w - - 0 1")
	var buffer [MaxMoves]Move
	var ml = g.LegalMoves(buffer[:], true)
	var h historyService
	var ordered [MaxMoves]OrderedMove
	var moves = orderMoves(ordered[:], ml, MoveEmpty, MoveEmpty, &h, true)
	is.Equal(len(moves), 2)
	is.Equal(moves[0].Move.String(), "e4d5") // pawn takes queen first
	is.Equal(moves[1].Move.String(), "d1d5")
}

func TestSortMovesStable(t *testing.T) {
	is := is.New(t)
	var ml = []OrderedMove{{Move: 1, Key: 0}, {Move: 2, Key: 5}, {Move: 3, Key: 0}, {Move: 4, Key: 5}}
	sortMoves(ml)
	is.Equal(ml, []OrderedMove{{Move: 2, Key: 5}, {Move: 4, Key: 5}, {Move: 1, Key: 0}, {Move: 3, Key: 0}})
}

func TestHistoryUpdate(t *testing.T) {
	is := is.New(t)
	var g = newTestGame(t, InitialPositionFen)
	var buffer [MaxMoves]Move
	var m = findMove(t, g.LegalMoves(buffer[:], false), "g1f3")
	var h historyService
	h.Update(true, m, 4, 2)
	h.Update(true, m, 2, 2)
	is.Equal(h.ReadTotal(true, m), 20)
	is.Equal(h.ReadTotal(false, m), 0)
	is.Equal(h.Killer(2), m)
	h.Clear()
	is.Equal(h.ReadTotal(true, m), 0)
	is.Equal(h.Killer(2), MoveEmpty)
}
