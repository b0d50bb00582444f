package engine

import . "github.com/cosmoschess/cosmos/pkg/common"

// historyService keeps the quiet move heuristics of one engine: a killer
// per ply and cutoff counters by side, moving piece and destination.
type historyService struct {
	killers [stackSize]Move
	history [2][King + 1][64]int
}

func sideIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}

func (h *historyService) Clear() {
	for i := range h.killers {
		h.killers[i] = MoveEmpty
	}
	for side := range h.history {
		for piece := range h.history[side] {
			for sq := range h.history[side][piece] {
				h.history[side][piece][sq] = 0
			}
		}
	}
}

func (h *historyService) Killer(height int) Move {
	return h.killers[height]
}

func (h *historyService) ReadTotal(white bool, m Move) int {
	return h.history[sideIndex(white)][m.MovingPiece()][m.To()]
}

// Update records a quiet move that caused a beta cutoff.
func (h *historyService) Update(white bool, m Move, depth, height int) {
	h.killers[height] = m
	h.history[sideIndex(white)][m.MovingPiece()][m.To()] += depth * depth
}
