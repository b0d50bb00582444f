package engine

import (
	. "github.com/cosmoschess/cosmos/pkg/common"
)

// main search method
func (e *Engine) alphaBeta(alpha, beta, depth, height int, nullMoveAllowed bool) int {
	e.stack[height].pv.clear()

	var rootNode = height == 0
	var board = e.board

	if !rootNode {
		if board.IsRepetition() {
			return valueDraw
		}
		if height >= maxHeight {
			return e.evaluate()
		}
	}

	// transposition table
	var key = board.Key()
	var ttMove Move
	if e.Options.UseTransTable {
		var ttDepth, ttValue, ttBound, move, ttHit = e.transTable.Read(key)
		ttMove = move
		if ttHit && !rootNode && ttDepth >= depth {
			ttValue = valueFromTT(ttValue, height)
			if ttBound == boundExact ||
				ttBound == boundLower && ttValue >= beta ||
				ttBound == boundUpper && ttValue <= alpha {
				return ttValue
			}
		}
	}

	var isCheck = board.IsCheck()
	if isCheck {
		depth++
	}
	if depth <= 0 {
		return e.quiescence(alpha, beta, height)
	}

	var options = &e.Options
	var nullWindow = beta == alpha+1
	var futile = false

	if !rootNode && !isCheck && nullWindow {
		var staticEval = e.evaluate()

		// reverse futility pruning
		if options.ReverseFutility && depth <= reverseFutilityDepth &&
			staticEval-reverseFutilityMargin*depth >= beta {
			return staticEval
		}

		if options.Futility && depth <= futilityDepth &&
			staticEval+futilityMargin*depth <= alpha {
			futile = true
		}

		// null-move pruning
		if options.NullMovePruning && nullMoveAllowed && depth >= 2 &&
			!isLateEndgame(board, board.WhiteToMove()) {
			board.MakeNullMove()
			e.nodes++
			var score = -e.alphaBeta(-beta, -beta+1, depth-nullMoveReduction(depth), height+1, false)
			board.UnmakeNullMove()
			if e.stopped {
				return 0
			}
			if score >= beta {
				if score >= valueWin {
					score = beta
				}
				return score
			}
		}
	}

	var ml = board.LegalMoves(e.stack[height].moves[:], false)
	if len(ml) == 0 {
		if isCheck {
			return lossIn(height)
		}
		return valueDraw
	}

	var white = board.WhiteToMove()
	var moves = orderMoves(e.stack[height].ordered[:], ml, ttMove,
		e.history.Killer(height), &e.history, white)

	var best = -valueInfinity
	var bestMove Move
	var oldAlpha = alpha
	var movesSearched = 0

	for i := range moves {
		var move = moves[i].Move
		var isNoisy = isCaptureOrPromotion(move)

		// futility pruning
		if futile && !isNoisy && movesSearched > 0 {
			continue
		}

		board.MakeMove(move)
		e.nodes++

		var score int
		if movesSearched == 0 {
			score = -e.alphaBeta(-beta, -alpha, depth-1, height+1, true)
		} else {
			var reduction = 0
			if options.Lmr && nullWindow && !isCheck && !isNoisy &&
				depth >= lmrMinDepth && movesSearched >= lmrMinMovesSearched &&
				!board.IsCheck() {
				reduction = lmrReduction
			}
			score = -e.alphaBeta(-(alpha + 1), -alpha, depth-1-reduction, height+1, true)
			// LMR re-search
			if score > alpha && reduction > 0 {
				score = -e.alphaBeta(-(alpha + 1), -alpha, depth-1, height+1, true)
			}
			// PVS re-search
			if score > alpha && score < beta {
				score = -e.alphaBeta(-beta, -alpha, depth-1, height+1, true)
			}
		}

		board.UnmakeMove()
		movesSearched++

		if e.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if alpha >= beta {
				if !isNoisy {
					e.history.Update(white, move, depth, height)
				}
				break
			}
		}

		if e.canStop && e.tm.IsDone(e.nodes) {
			e.stopped = true
			return 0
		}
	}

	if options.UseTransTable {
		var ttBound = 0
		if best > oldAlpha {
			ttBound |= boundLower
		}
		if best < beta {
			ttBound |= boundUpper
		}
		e.transTable.Update(key, depth, valueToTT(best, height), ttBound, bestMove)
	}

	return best
}

func (e *Engine) quiescence(alpha, beta, height int) int {
	e.stack[height].pv.clear()
	var board = e.board
	if height >= maxHeight {
		return e.evaluate()
	}
	if height > 0 && board.IsRepetition() {
		return valueDraw
	}

	var ttMove Move
	if e.Options.UseTransTable {
		var _, ttValue, ttBound, move, ttHit = e.transTable.Read(board.Key())
		ttMove = move
		if ttHit {
			ttValue = valueFromTT(ttValue, height)
			if ttBound == boundExact ||
				ttBound == boundLower && ttValue >= beta ||
				ttBound == boundUpper && ttValue <= alpha {
				return ttValue
			}
		}
	}

	var isCheck = board.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		var eval = e.evaluate()
		if eval >= beta {
			return beta
		}
		best = eval
		if eval > alpha {
			alpha = eval
		}
	}

	var ml = board.LegalMoves(e.stack[height].moves[:], !isCheck)
	if isCheck && len(ml) == 0 {
		return lossIn(height)
	}
	var moves = orderMoves(e.stack[height].ordered[:], ml, ttMove,
		MoveEmpty, &e.history, board.WhiteToMove())

	for i := range moves {
		var move = moves[i].Move
		board.MakeMove(move)
		e.nodes++
		var score = -e.quiescence(-beta, -alpha, height+1)
		board.UnmakeMove()

		if e.stopped {
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}

		if e.canStop && e.tm.IsDone(e.nodes) {
			e.stopped = true
			return 0
		}
	}
	return best
}

func (e *Engine) assignPV(height int, move Move) {
	e.stack[height].pv.assign(move, &e.stack[height+1].pv)
}
