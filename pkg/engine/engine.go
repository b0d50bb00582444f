package engine

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	. "github.com/cosmoschess/cosmos/pkg/common"
)

// Board is the position the engine searches. The engine borrows it for one
// search and leaves it as it was given.
type Board interface {
	BoardView
	LegalMoves(buffer []Move, capturesOnly bool) []Move
	IsCheck() bool
	IsRepetition() bool
	Key() uint64
	MakeMove(m Move)
	UnmakeMove()
	MakeNullMove()
	UnmakeNullMove()
}

type Evaluator interface {
	Evaluate(p BoardView) int
}

type SearchParams struct {
	Board    Board
	Clock    Clock
	Limits   LimitsType
	Progress func(SearchInfo)
}

type Engine struct {
	Options    Options
	evaluator  Evaluator
	transTable *transTable
	history    historyService
	stack      [stackSize]struct {
		moves   [MaxMoves]Move
		ordered [MaxMoves]OrderedMove
		pv      pv
	}
	board    Board
	clock    Clock
	tm       *timeManager
	nodes    int64
	stopped  bool
	canStop  bool
	progress func(SearchInfo)
	mainLine mainLine
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

func NewEngine(options Options) *Engine {
	return &Engine{
		Options: options,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil ||
		e.transTable.Size() != e.Options.Hash ||
		e.transTable.policy != e.Options.ReplacePolicy {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Options.Hash, e.Options.ReplacePolicy)
	}
	if e.evaluator == nil {
		e.evaluator = e.buildEvaluator()
	}
}

func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	e.history.Clear()
}

func (e *Engine) TransTableStats() TransTableStats {
	if e.transTable == nil {
		return TransTableStats{}
	}
	return e.transTable.Stats()
}

// Think returns the best move found within the clock. It returns MoveEmpty
// only when the position has no legal move.
func (e *Engine) Think(ctx context.Context, board Board, clock Clock) Move {
	var si = e.Search(ctx, SearchParams{
		Board: board,
		Clock: clock,
	})
	return si.BestMove()
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start(ctx, searchParams)
	e.iterativeDeepening()
	var result = e.currentSearchResult()
	log.Trace().
		Int("depth", result.Depth).
		Int64("nodes", result.Nodes).
		Dur("time", result.Time).
		Str("bestmove", result.BestMove().String()).
		Msg("search-complete")
	return result
}

func (e *Engine) start(ctx context.Context, searchParams SearchParams) {
	e.Prepare()
	e.clock = searchParams.Clock
	if e.clock == nil {
		e.clock = NewClock(0)
	}
	e.board = searchParams.Board
	e.tm = newTimeManager(ctx, e.clock, searchParams.Limits,
		e.board.WhiteToMove(), e.Options.TimeDivisor)
	e.transTable.IncDate()
	e.history.Clear()
	e.nodes = 0
	e.stopped = false
	e.canStop = false
	e.progress = searchParams.Progress
	e.mainLine = mainLine{}
}

func (e *Engine) iterativeDeepening() {
	var ml = e.board.LegalMoves(e.stack[0].moves[:], false)
	if len(ml) == 0 {
		return
	}
	e.mainLine = mainLine{moves: []Move{ml[0]}}
	var prevScore = 0
	for depth := 1; depth < maxHeight; depth++ {
		var score = e.aspirationWindow(depth, prevScore)
		if e.stopped {
			break
		}
		prevScore = score
		e.onIterationComplete(depth, score)
		e.canStop = true
		if e.tm.OnIterationComplete(depth, score) {
			break
		}
	}
}

// aspirationWindow searches one depth until the score lands inside the
// window. Only the side that failed is widened.
func (e *Engine) aspirationWindow(depth, prevScore int) int {
	var alpha, beta = -valueInfinity, valueInfinity
	var delta = e.Options.AspirationDelta
	if e.Options.AspirationWindows && delta > 0 &&
		depth >= 2 && !isMateScore(prevScore) {
		alpha = Max(-valueInfinity, prevScore-delta)
		beta = Min(valueInfinity, prevScore+delta)
	}
	var step = 2 * delta
	for {
		var score = e.alphaBeta(alpha, beta, depth, 0, true)
		if e.stopped {
			return score
		}
		if score <= alpha && alpha > -valueInfinity {
			alpha = Max(-valueInfinity, alpha-step)
		} else if score >= beta && beta < valueInfinity {
			beta = Min(valueInfinity, beta+step)
		} else {
			return score
		}
		log.Trace().
			Int("depth", depth).
			Int("score", score).
			Int("alpha", alpha).
			Int("beta", beta).
			Msg("aspiration-research")
		step *= 2
	}
}

func (e *Engine) onIterationComplete(depth, score int) {
	var line = mainLine{
		depth: depth,
		score: score,
		moves: e.stack[0].pv.toSlice(),
	}
	if len(line.moves) == 0 {
		line.moves = e.mainLine.moves
	}
	e.mainLine = line
	log.Trace().
		Int("depth", depth).
		Int("score", score).
		Int64("nodes", e.nodes).
		Str("pv", movesToString(line.moves)).
		Msg("iteration-complete")
	if e.progress != nil && e.nodes >= int64(e.Options.ProgressMinNodes) {
		e.progress(e.currentSearchResult())
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Nodes:    e.nodes,
		Time:     e.clock.Elapsed(),
	}
}

func (e *Engine) evaluate() int {
	return e.evaluator.Evaluate(e.board)
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func movesToString(ml []Move) string {
	var sb strings.Builder
	for i, m := range ml {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

func (e *Engine) buildEvaluator() Evaluator {
	if e.Options.EvalBuilder == nil {
		panic(errors.New("eval builder is not set"))
	}
	if ev, ok := e.Options.EvalBuilder().(Evaluator); ok {
		return ev
	}
	panic(errors.New("bad eval builder"))
}
