package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
	pesto "github.com/cosmoschess/cosmos/pkg/eval/pesto"
)

func newTestProtocol(input string) (*Protocol, *engine.Engine, *bytes.Buffer) {
	var options = engine.NewMainOptions(func() interface{} {
		return pesto.NewEvaluationService()
	})
	options.Hash = 1
	var eng = engine.NewEngine(options)
	var replace = eng.Options.ReplacePolicy
	var protocol = New("Cosmos", "Cosmos authors", "test", eng, []Option{
		&IntOption{Name: "Hash", Min: 1, Max: 1024, Value: &eng.Options.Hash},
		&BoolOption{Name: "Lmr", Value: &eng.Options.Lmr},
		&ComboOption{Name: "TTReplace", Choices: []string{"always", "depth-preferred"}, Value: &replace},
	})
	var output = &bytes.Buffer{}
	protocol.input = strings.NewReader(input)
	protocol.output = output
	return protocol, eng, output
}

func TestUciHandshake(t *testing.T) {
	is := is.New(t)
	var protocol, _, output = newTestProtocol("uci\nisready\n")
	protocol.Run(zerolog.Nop())
	var text = output.String()
	is.True(strings.HasPrefix(text, "id name Cosmos test\n"))
	is.True(strings.Contains(text, "option name Hash type spin default 1 min 1 max 1024\n"))
	is.True(strings.Contains(text, "option name Lmr type check default true\n"))
	is.True(strings.Contains(text, "option name TTReplace type combo default always var always var depth-preferred\n"))
	is.True(strings.Contains(text, "uciok\n"))
	is.True(strings.HasSuffix(text, "readyok\n"))
}

func TestSetOption(t *testing.T) {
	is := is.New(t)
	var protocol, eng, _ = newTestProtocol("")
	is.NoErr(protocol.handle("setoption name Hash value 16"))
	is.Equal(eng.Options.Hash, 16)
	is.NoErr(protocol.handle("setoption name lmr value false"))
	is.Equal(eng.Options.Lmr, false)
	is.True(protocol.handle("setoption name Hash value 5000") != nil)
	is.True(protocol.handle("setoption name Unknown value 1") != nil)
	is.True(protocol.handle("setoption name TTReplace value sometimes") != nil)
}

func TestPositionCommand(t *testing.T) {
	is := is.New(t)
	var protocol, _, _ = newTestProtocol("")
	is.NoErr(protocol.handle("position startpos moves e2e4 e7e5 g1f3"))
	is.Equal(len(protocol.game.Positions()), 4)
	is.Equal(protocol.game.Position().String(),
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 1")

	is.NoErr(protocol.handle("position fen 6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1"))
	is.Equal(len(protocol.game.Positions()), 1)

	is.True(protocol.handle("position startpos moves e2e5") != nil)
	is.True(protocol.handle("position fen 8/8/8 w - - 0 1") != nil)
	is.True(protocol.handle("position") != nil)
	is.True(protocol.handle("unknown") != nil)
}

func TestGoDepth(t *testing.T) {
	is := is.New(t)
	var protocol, _, output = newTestProtocol(
		"position fen 6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1\ngo depth 3\n")
	protocol.Run(zerolog.Nop())
	var text = output.String()
	is.True(strings.Contains(text, "score mate 1"))
	is.True(strings.HasSuffix(text, "bestmove d1d8\n"))
}

func TestIsReadyDuringSearch(t *testing.T) {
	is := is.New(t)
	var protocol, _, output = newTestProtocol("")
	is.NoErr(protocol.handle("go infinite"))
	is.True(protocol.thinking)
	is.NoErr(protocol.handle("isready"))
	is.Equal(output.String(), "readyok\n")
	is.True(protocol.handle("position startpos") != nil) // busy
	is.NoErr(protocol.handle("stop"))
	protocol.stopAndWait()
	is.True(!protocol.thinking)
	is.True(strings.HasPrefix(output.String(), "readyok\n"))
	is.True(strings.Contains(output.String(), "bestmove "))
}

func TestParseLimits(t *testing.T) {
	is := is.New(t)
	is.Equal(parseLimits(strings.Fields("wtime 1000 btime 2000 winc 10 binc 20 movestogo 5")),
		common.LimitsType{WhiteTime: 1000, BlackTime: 2000, WhiteIncrement: 10, BlackIncrement: 20})
	is.Equal(parseLimits(strings.Fields("depth 7 nodes 100")), common.LimitsType{Depth: 7, Nodes: 100})
	is.Equal(parseLimits(strings.Fields("movetime 300")), common.LimitsType{MoveTime: 300})
	is.Equal(parseLimits(strings.Fields("infinite")), common.LimitsType{Infinite: true})
	is.Equal(parseLimits(strings.Fields("depth")), common.LimitsType{})
}

func TestSearchInfoToUci(t *testing.T) {
	is := is.New(t)
	var si = common.SearchInfo{
		Depth: 5,
		Score: common.UciScore{Centipawns: 31},
		Nodes: 1000,
	}
	is.Equal(searchInfoToUci(si), "info depth 5 score cp 31 nodes 1000 time 0 nps 1000000")
	si.Score = common.UciScore{Mate: -2}
	is.True(strings.Contains(searchInfoToUci(si), "score mate -2"))
}
