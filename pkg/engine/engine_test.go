package engine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	. "github.com/cosmoschess/cosmos/pkg/common"
	pesto "github.com/cosmoschess/cosmos/pkg/eval/pesto"
)

func pestoBuilder() interface{} {
	return pesto.NewEvaluationService()
}

func newTestEngine() *Engine {
	var options = NewMainOptions(pestoBuilder)
	options.Hash = 4
	return NewEngine(options)
}

func newTestGame(t *testing.T, fen string) *Game {
	t.Helper()
	var g, err = NewGame(fen)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func referenceNegamax(g *Game, ev Evaluator, depth, height int) int {
	if height > 0 && g.IsRepetition() {
		return valueDraw
	}
	if height >= maxHeight {
		return ev.Evaluate(g)
	}
	var isCheck = g.IsCheck()
	if isCheck {
		depth++
	}
	if depth <= 0 {
		return referenceQuiescence(g, ev, height)
	}
	var buffer [MaxMoves]Move
	var ml = g.LegalMoves(buffer[:], false)
	if len(ml) == 0 {
		if isCheck {
			return lossIn(height)
		}
		return valueDraw
	}
	var best = -valueInfinity
	for _, m := range ml {
		g.MakeMove(m)
		best = Max(best, -referenceNegamax(g, ev, depth-1, height+1))
		g.UnmakeMove()
	}
	return best
}

func referenceQuiescence(g *Game, ev Evaluator, height int) int {
	if height >= maxHeight {
		return ev.Evaluate(g)
	}
	if height > 0 && g.IsRepetition() {
		return valueDraw
	}
	var isCheck = g.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		best = ev.Evaluate(g)
	}
	var buffer [MaxMoves]Move
	var ml = g.LegalMoves(buffer[:], !isCheck)
	if isCheck && len(ml) == 0 {
		return lossIn(height)
	}
	for _, m := range ml {
		g.MakeMove(m)
		best = Max(best, -referenceQuiescence(g, ev, height+1))
		g.UnmakeMove()
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	is := is.New(t)
	const depth = 3
	// few captures, so the unpruned reference tree stays small
	var fens = []string{
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/4k3/8/8/4P3/4K3 w - - 0 1",
		"8/8/8/4k3/8/8/8/R3K3 w - - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
		"4k3/8/8/3q4/4P3/8/8/3QK3 w - - 0 1",
	}
	var ev = pesto.NewEvaluationService()
	for _, fen := range fens {
		var g = newTestGame(t, fen)

		var options = NewMainOptions(pestoBuilder)
		options.Hash = 1
		options.UseTransTable = false
		options.ReverseFutility = false
		options.Futility = false
		options.NullMovePruning = false
		options.Lmr = false
		options.AspirationWindows = false
		var e = NewEngine(options)
		var si = e.Search(context.Background(), SearchParams{
			Board:  g,
			Limits: LimitsType{Depth: depth},
		})
		is.Equal(si.Depth, depth)

		var want = referenceNegamax(g, ev, depth, 0)
		is.Equal(e.mainLine.score, want) // pruned search agrees with plain negamax

		// the chosen move reaches the same value
		g.MakeMove(si.BestMove())
		var got = -referenceNegamax(g, ev, depth-1, 1)
		g.UnmakeMove()
		is.Equal(got, want)
	}
}

func TestSearchDeterministic(t *testing.T) {
	is := is.New(t)
	var fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	var e = newTestEngine()
	var search = func() SearchInfo {
		e.Clear()
		return e.Search(context.Background(), SearchParams{
			Board:  newTestGame(t, fen),
			Limits: LimitsType{Depth: 5},
		})
	}
	var first = search()
	var second = search()
	is.Equal(first.BestMove(), second.BestMove())
	is.Equal(first.Score, second.Score)
	is.Equal(first.Nodes, second.Nodes)
}

func TestMateInOne(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1"),
		Limits: LimitsType{Depth: 4},
	})
	is.Equal(si.BestMove().String(), "d1d8")
	is.Equal(e.mainLine.score, winIn(1))
	is.Equal(si.Score, UciScore{Mate: 1})
}

func TestMateInTwo(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, "7k/8/8/8/8/8/1R6/R5K1 w - - 0 1"),
		Limits: LimitsType{Depth: 6},
	})
	is.Equal(e.mainLine.score, winIn(3))
	is.Equal(si.Score, UciScore{Mate: 2})
	is.True(winIn(1) > winIn(3)) // shorter mates score higher
}

func TestThinkTinyClock(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var g = newTestGame(t, InitialPositionFen)
	var start = time.Now()
	var move = e.Think(context.Background(), g, NewClock(time.Millisecond))
	is.True(time.Since(start) < 500*time.Millisecond)
	is.True(move != MoveEmpty)
	is.True(ParseMoveLAN(g.Position(), move.String()) == move) // legal
}

func TestThinkCancelled(t *testing.T) {
	is := is.New(t)
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var e = newTestEngine()
	var si = e.Search(ctx, SearchParams{
		Board: newTestGame(t, InitialPositionFen),
	})
	is.Equal(si.Depth, 1) // the first depth always completes
	is.True(si.BestMove() != MoveEmpty)
}

func TestNodeLimit(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, InitialPositionFen),
		Limits: LimitsType{Nodes: 5000},
	})
	is.True(si.BestMove() != MoveEmpty)
	is.True(si.Depth >= 1)
}

func TestNoLegalMoves(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	// white is checkmated
	var g = newTestGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	is.Equal(e.Think(context.Background(), g, NewClock(time.Second)), MoveEmpty)
}

func TestQuiescenceStandPat(t *testing.T) {
	is := is.New(t)
	var g = newTestGame(t, "4k3/pppp4/8/8/8/8/4PPPP/4K3 w - - 0 1")
	var e = newTestEngine()
	e.start(context.Background(), SearchParams{Board: g})
	var want = e.evaluator.Evaluate(g)
	is.Equal(e.quiescence(-valueInfinity, valueInfinity, 0), want)
}

func TestStartPosition(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var si = e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, InitialPositionFen),
		Limits: LimitsType{Depth: 4},
	})
	var reasonable = map[string]bool{
		"e2e4": true, "d2d4": true, "c2c4": true, "g1f3": true, "b1c3": true,
		"e2e3": true, "d2d3": true, "g2g3": true, "b2b3": true, "c2c3": true,
	}
	is.True(reasonable[si.BestMove().String()])
	is.Equal(si.Score.Mate, 0)
	is.True(si.Score.Centipawns >= -50 && si.Score.Centipawns <= 50)
}

func TestSearchRestoresBoard(t *testing.T) {
	is := is.New(t)
	var fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	var g = newTestGame(t, fen)
	var before = *g.Position()
	var e = newTestEngine()
	e.Search(context.Background(), SearchParams{
		Board:  g,
		Limits: LimitsType{Depth: 4},
	})
	is.Equal(len(g.Positions()), 1)
	is.Equal(*g.Position(), before)
}

func TestProgress(t *testing.T) {
	is := is.New(t)
	var e = newTestEngine()
	var depths []int
	var si = e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, InitialPositionFen),
		Limits: LimitsType{Depth: 3},
		Progress: func(si SearchInfo) {
			depths = append(depths, si.Depth)
			if len(si.MainLine) == 0 {
				t.Error("empty main line")
			}
		},
	})
	is.Equal(depths, []int{1, 2, 3})
	is.True(si.Nodes > 0)
	is.True(len(si.MainLine) >= 1)
}

func TestNewUciScore(t *testing.T) {
	is := is.New(t)
	is.Equal(newUciScore(35), UciScore{Centipawns: 35})
	is.Equal(newUciScore(winIn(1)), UciScore{Mate: 1})
	is.Equal(newUciScore(winIn(3)), UciScore{Mate: 2})
	is.Equal(newUciScore(lossIn(2)), UciScore{Mate: -1})
	is.Equal(newUciScore(lossIn(4)), UciScore{Mate: -2})
}

func TestTimeLimits(t *testing.T) {
	is := is.New(t)
	is.Equal(calcHardLimit(30*time.Second, 0, 30), time.Second)
	is.Equal(calcHardLimit(30*time.Second, 2*time.Second, 30), 2*time.Second)
	is.Equal(calcHardLimit(10*time.Millisecond, 0, 30), time.Millisecond)
	is.Equal(calcHardLimit(time.Second, 10*time.Second, 30), time.Second)

	var ctx = context.Background()
	var tm = newTimeManager(ctx, NewClock(0), LimitsType{MoveTime: 250}, true, 30)
	is.Equal(tm.hardLimit, 250*time.Millisecond)
	tm = newTimeManager(ctx, NewClock(0), LimitsType{}, true, 30)
	is.Equal(tm.hardLimit, time.Duration(0))
	is.True(!tm.IsDone(1 << 30))
	is.True(!tm.OnIterationComplete(10, 0))
	is.True(tm.OnIterationComplete(10, winIn(3)))
}

func TestSearchQuietAtDefaultLevel(t *testing.T) {
	is := is.New(t)
	var buf = &bytes.Buffer{}
	var saved = log.Logger
	log.Logger = zerolog.New(buf)
	defer func() { log.Logger = saved }()

	var e = newTestEngine()
	e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, InitialPositionFen),
		Limits: LimitsType{Depth: 3},
	})
	is.Equal(buf.Len(), 0) // search logs only at trace level

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)
	e.Search(context.Background(), SearchParams{
		Board:  newTestGame(t, InitialPositionFen),
		Limits: LimitsType{Depth: 1},
	})
	is.True(bytes.Contains(buf.Bytes(), []byte("search-complete")))
}
