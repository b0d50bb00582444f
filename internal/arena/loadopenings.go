package arena

import (
	"context"
	"strings"
)

// every opening is played twice with colors swapped
func loadOpenings(
	ctx context.Context,
	openings []string,
	gameInfos chan<- gameInfo,
) error {

	for i, opening := range openings {
		var moves = strings.Fields(opening)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: moves, engineAIsWhite: true, gameNumber: 1 + 2*i}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: moves, engineAIsWhite: false, gameNumber: 1 + 2*i + 1}:
		}
	}

	return nil
}

func DefaultOpenings() []string {
	var result []string
	for _, line := range strings.Split(openingsTxt, "\n") {
		line = strings.TrimSpace(line)
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result
}

const openingsTxt = `
// open games
e4 e5 Nf3 Nc6 Bb5 a6
e4 e5 Nf3 Nc6 Bc4 Bc5
e4 e5 Nf3 Nf6 Nxe5 d6
// french
e4 e6 d4 d5 Nc3 Nf6
e4 e6 d4 d5 e5 c5
// sicilian
e4 c5 Nf3 d6 d4 cxd4 Nxd4 Nf6
e4 c5 Nf3 Nc6 d4 cxd4 Nxd4 g6
// caro-kann
e4 c6 d4 d5 Nc3 dxe4 Nxe4 Bf5
// closed games
d4 d5 c4 e6 Nc3 Nf6
d4 d5 c4 c6 Nf3 Nf6
d4 Nf6 c4 g6 Nc3 Bg7 e4 d6
d4 Nf6 c4 e6 Nc3 Bb4
// flank
c4 e5 Nc3 Nf6 g3 d5
Nf3 d5 g3 Nf6 Bg2 c6
`
