package arena

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

const (
	gameResultDraw = iota
	gameResultWhiteWins
	gameResultBlackWins
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) common.SearchInfo
}

type TimeControl struct {
	FixedNodes int
	FixedTime  time.Duration
	FixedDepth int
}

func (tc TimeControl) limits() (common.LimitsType, error) {
	var limits common.LimitsType
	if tc.FixedNodes != 0 {
		limits.Nodes = tc.FixedNodes
	} else if tc.FixedTime != 0 {
		limits.MoveTime = int(tc.FixedTime / time.Millisecond)
	} else if tc.FixedDepth != 0 {
		limits.Depth = tc.FixedDepth
	} else {
		return limits, errors.New("bad time control")
	}
	return limits, nil
}

type Config struct {
	Concurrency int
	TimeControl TimeControl
	// MaxPlies adjudicates a draw after that many plies, zero means no limit.
	MaxPlies   int
	Openings   []string
	NameA      string
	NameB      string
	NewEngineA func() Engine
	NewEngineB func() Engine
	PgnOutput  io.Writer
}

type gameInfo struct {
	opening        []string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	pgn      string
	comment  string
	result   int
}

type Summary struct {
	RunId           string
	Games           int
	Wins            int
	Losses          int
	Draws           int
	WinningFraction float64
	EloDifference   float64
	Los             float64
}
