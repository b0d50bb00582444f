package common

import (
	"testing"

	"github.com/matryer/is"
)

func TestGameMakeUnmake(t *testing.T) {
	is := is.New(t)
	var g, err = NewGame(InitialPositionFen)
	is.NoErr(err)
	var before = g.Position().String()
	for _, lan := range []string{"e2e4", "d7d5", "e4d5", "g8f6"} {
		is.NoErr(g.MakeMoveLAN(lan))
	}
	is.Equal(len(g.Positions()), 5)
	g.MakeNullMove()
	is.True(g.WhiteToMove() == false)
	g.UnmakeNullMove()
	for i := 0; i < 4; i++ {
		g.UnmakeMove()
	}
	is.Equal(g.Position().String(), before)
	is.True(g.MakeMoveLAN("e2e5") != nil)
}

func TestGameLegalMovesCapturesOnly(t *testing.T) {
	is := is.New(t)
	var g, err = NewGame("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	is.NoErr(err)
	var buffer [MaxMoves]Move
	var captures = g.LegalMoves(buffer[:], true)
	is.Equal(len(captures), 1)
	is.Equal(captures[0].String(), "e4d5")
	is.Equal(len(g.LegalMoves(buffer[:], false)), 31)
}

func TestGameRepetition(t *testing.T) {
	is := is.New(t)
	var g, err = NewGame(InitialPositionFen)
	is.NoErr(err)
	var moves = []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i, lan := range moves {
		is.NoErr(g.MakeMoveLAN(lan))
		is.Equal(g.IsRepetition(), i == len(moves)-1)
	}
	is.Equal(g.RepetitionCount(), 1)
	for _, lan := range moves {
		is.NoErr(g.MakeMoveLAN(lan))
	}
	var over, score, comment = g.Result()
	is.True(over)
	is.Equal(score, 0.5)
	is.Equal(comment, "3 fold repetition")
}

func TestGameRepetitionStopsAtNullMove(t *testing.T) {
	is := is.New(t)
	var g, err = NewGame(InitialPositionFen)
	is.NoErr(err)
	is.NoErr(g.MakeMoveLAN("g1f3"))
	g.MakeNullMove()
	is.NoErr(g.MakeMoveLAN("f3g1"))
	g.MakeNullMove()
	is.True(!g.IsRepetition())
}

func TestGameResult(t *testing.T) {
	is := is.New(t)
	var tests = []struct {
		fen     string
		over    bool
		score   float64
		comment string
	}{
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, 0, "checkmate"},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", true, 0.5, "stalemate"},
		{"8/8/4k3/8/8/3NK3/8/8 w - - 0 1", true, 0.5, "low material"},
		{"8/8/4k3/8/8/3RK3/8/8 w - - 100 80", true, 0.5, "50 moves"},
		{InitialPositionFen, false, 0, ""},
	}
	for _, test := range tests {
		var g, err = NewGame(test.fen)
		is.NoErr(err)
		var over, score, comment = g.Result()
		is.Equal(over, test.over)
		is.Equal(score, test.score)
		is.Equal(comment, test.comment)
	}
}
