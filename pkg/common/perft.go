package common

// Perft counts leaf nodes of the legal move tree.
func Perft(p *Position, depth int) int {
	var result = 0
	var buffer [MaxMoves]Move
	var child Position
	for _, move := range GenerateMoves(buffer[:], p) {
		if p.MakeMove(move, &child) {
			if depth > 1 {
				result += Perft(&child, depth-1)
			} else {
				result++
			}
		}
	}
	return result
}
