package arena

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/notnil/chess"

	"github.com/cosmoschess/cosmos/internal/evalbuilder"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

func newTestEngine(evalName string) func() Engine {
	return func() Engine {
		var options = engine.NewMainOptions(evalbuilder.Get(evalName))
		options.Hash = 1
		return engine.NewEngine(options)
	}
}

func TestRunSelfplay(t *testing.T) {
	is := is.New(t)
	var pgn = &bytes.Buffer{}
	var summary, err = Run(context.Background(), Config{
		Concurrency: 2,
		TimeControl: TimeControl{FixedDepth: 2},
		MaxPlies:    12,
		Openings:    []string{"e4 e5 Nf3 Nc6 Bb5 a6"},
		NameA:       "pesto",
		NameB:       "material",
		NewEngineA:  newTestEngine("pesto"),
		NewEngineB:  newTestEngine("material"),
		PgnOutput:   pgn,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 2)
	is.Equal(summary.Wins+summary.Losses+summary.Draws, 2)
	var text = pgn.String()
	is.True(strings.Contains(text, `[Event "cosmos selfplay `+summary.RunId+`"]`))
	is.True(strings.Contains(text, `[Round "1"]`))
	is.True(strings.Contains(text, `[Round "2"]`))
	is.True(strings.Contains(text, `[White "material"]`))
}

func TestRunOpeningEndsGame(t *testing.T) {
	is := is.New(t)
	var pgn = &bytes.Buffer{}
	var summary, err = Run(context.Background(), Config{
		TimeControl: TimeControl{FixedDepth: 1},
		Openings:    []string{"f3 e5 g4 Qh4#"},
		NameA:       "a",
		NameB:       "b",
		NewEngineA:  newTestEngine("pesto"),
		NewEngineB:  newTestEngine("pesto"),
		PgnOutput:   pgn,
	})
	is.NoErr(err)
	is.Equal(summary.Games, 2)
	is.Equal(summary.Wins, 1) // engine A has black in the second game
	is.Equal(summary.Losses, 1)
	is.True(strings.Contains(pgn.String(), `[Termination "checkmate"]`))
	is.True(strings.Contains(pgn.String(), "0-1"))
}

func TestRunBadConfig(t *testing.T) {
	is := is.New(t)
	var _, err = Run(context.Background(), Config{
		Openings:   DefaultOpenings(),
		NewEngineA: newTestEngine("pesto"),
		NewEngineB: newTestEngine("pesto"),
	})
	is.True(err != nil) // no time control

	_, err = Run(context.Background(), Config{
		TimeControl: TimeControl{FixedDepth: 1},
		Openings:    []string{"e4 e4"},
		NewEngineA:  newTestEngine("pesto"),
		NewEngineB:  newTestEngine("pesto"),
	})
	is.True(err != nil) // illegal opening move
}

func TestAdjudicateDraw(t *testing.T) {
	is := is.New(t)
	var record = chess.NewGame()
	is.Equal(adjudicate(record, 0.5, "max plies"), gameResultDraw)
	is.Equal(record.Outcome(), chess.Draw)
}

func TestDefaultOpenings(t *testing.T) {
	is := is.New(t)
	var openings = DefaultOpenings()
	is.True(len(openings) > 10)
	for _, opening := range openings {
		is.True(!strings.HasPrefix(opening, "//"))
		var record = chess.NewGame()
		for _, san := range strings.Fields(opening) {
			is.NoErr(record.MoveStr(san))
		}
	}
}

func TestComputeStat(t *testing.T) {
	is := is.New(t)
	var stat = computeStat(1, 1, 2)
	is.Equal(stat.winningFraction, 0.5)
	is.True(math.Abs(stat.eloDifference) < 1e-9)
	is.Equal(stat.los, 0.5)
	stat = computeStat(3, 1, 0)
	is.True(stat.eloDifference > 0)
	is.True(stat.los > 0.5)
	is.Equal(gameResultString(gameResultBlackWins), "0-1")
}
