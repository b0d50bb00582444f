package common

import "fmt"

// Game is a mutable position with make/undo on top of a stack of
// copy-make positions. The stack also serves repetition detection.
type Game struct {
	positions []Position
}

func NewGame(fen string) (*Game, error) {
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGameFromPositions([]Position{p}), nil
}

// NewGameFromPositions starts a game from a history of positions, the last
// one is the current position.
func NewGameFromPositions(positions []Position) *Game {
	var g = &Game{
		positions: make([]Position, len(positions), len(positions)+128),
	}
	copy(g.positions, positions)
	return g
}

func (g *Game) Position() *Position {
	return &g.positions[len(g.positions)-1]
}

func (g *Game) Positions() []Position {
	return g.positions
}

func (g *Game) Clone() *Game {
	return NewGameFromPositions(g.positions)
}

func (g *Game) LegalMoves(buffer []Move, capturesOnly bool) []Move {
	var p = g.Position()
	var pseudo [MaxMoves]Move
	var ml []Move
	if capturesOnly {
		ml = GenerateCaptures(pseudo[:], p)
	} else {
		ml = GenerateMoves(pseudo[:], p)
	}
	var child Position
	var count = 0
	for _, m := range ml {
		if p.MakeMove(m, &child) {
			buffer[count] = m
			count++
		}
	}
	return buffer[:count]
}

func (g *Game) IsCheck() bool {
	return g.Position().IsCheck()
}

// IsRepetition reports whether the current position already occurred since
// the last irreversible move or null move.
func (g *Game) IsRepetition() bool {
	var last = len(g.positions) - 1
	var p = &g.positions[last]
	if p.Rule50 == 0 || p.LastMove == MoveEmpty {
		return false
	}
	for i := last - 1; i >= 0; i-- {
		var prev = &g.positions[i]
		if prev.Key == p.Key {
			return true
		}
		if prev.Rule50 == 0 || prev.LastMove == MoveEmpty {
			return false
		}
	}
	return false
}

// RepetitionCount counts earlier occurrences of the current position.
func (g *Game) RepetitionCount() int {
	var last = len(g.positions) - 1
	var p = &g.positions[last]
	var count = 0
	for i := last - 1; i >= 0 && last-i <= p.Rule50; i-- {
		if g.positions[i].Key == p.Key {
			count++
		}
	}
	return count
}

func (g *Game) Key() uint64 {
	return g.Position().Key
}

func (g *Game) PieceMask(piece int, white bool) uint64 {
	return g.Position().PieceMask(piece, white)
}

func (g *Game) WhiteToMove() bool {
	return g.Position().WhiteMove
}

// MakeMove panics on a move that leaves the own king in check.
func (g *Game) MakeMove(m Move) {
	g.positions = append(g.positions, Position{})
	var n = len(g.positions)
	if !g.positions[n-2].MakeMove(m, &g.positions[n-1]) {
		g.positions = g.positions[:n-1]
		panic(fmt.Errorf("illegal move %v in %v", m, g.Position()))
	}
}

func (g *Game) UnmakeMove() {
	g.positions = g.positions[:len(g.positions)-1]
}

func (g *Game) MakeNullMove() {
	g.positions = append(g.positions, Position{})
	var n = len(g.positions)
	g.positions[n-2].MakeNullMove(&g.positions[n-1])
}

func (g *Game) UnmakeNullMove() {
	g.UnmakeMove()
}

// MakeMoveLAN plays a move given in long algebraic notation.
func (g *Game) MakeMoveLAN(lan string) error {
	var m = ParseMoveLAN(g.Position(), lan)
	if m == MoveEmpty {
		return fmt.Errorf("parse move failed %v", lan)
	}
	g.MakeMove(m)
	return nil
}

func isLowMaterial(p *Position) bool {
	return (p.Pawns|p.Rooks|p.Queens) == 0 &&
		!MoreThanOne(p.Knights|p.Bishops)
}

// Result adjudicates the current position: checkmate, stalemate, fifty
// moves, low material and threefold repetition end the game.
func (g *Game) Result() (over bool, whiteScore float64, comment string) {
	var p = g.Position()
	var buffer [MaxMoves]Move
	if len(g.LegalMoves(buffer[:], false)) == 0 {
		if !p.IsCheck() {
			return true, 0.5, "stalemate"
		}
		if p.WhiteMove {
			return true, 0, "checkmate"
		}
		return true, 1, "checkmate"
	}
	if p.Rule50 >= 100 {
		return true, 0.5, "50 moves"
	}
	if isLowMaterial(p) {
		return true, 0.5, "low material"
	}
	if g.RepetitionCount() >= 2 {
		return true, 0.5, "3 fold repetition"
	}
	return false, 0, ""
}
