package main

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/internal/arena"
)

func selfplayHandler() error {
	var (
		evalA      = cliArgs.GetString("evala", "pesto")
		evalB      = cliArgs.GetString("evalb", "material")
		nodes      = cliArgs.GetInt("nodes", 0)
		moveTime   = cliArgs.GetMillis("movetime", 0)
		depth      = cliArgs.GetInt("depth", 0)
		pgnPath    = cliArgs.GetString("pgn", "")
		maxPlies   = cliArgs.GetInt("maxplies", 400)
		gameConcur = cliArgs.GetInt("concurrency", runtime.NumCPU())
	)
	if nodes == 0 && moveTime == 0 && depth == 0 {
		nodes = 200_000
	}

	var config = arena.Config{
		Concurrency: gameConcur,
		TimeControl: arena.TimeControl{
			FixedNodes: nodes,
			FixedTime:  moveTime,
			FixedDepth: depth,
		},
		MaxPlies: maxPlies,
		Openings: arena.DefaultOpenings(),
		NameA:    evalA,
		NameB:    evalB,
	}
	for _, name := range []string{evalA, evalB} {
		if _, err := newEngine(name, 1); err != nil {
			return err
		}
	}
	config.NewEngineA = func() arena.Engine {
		var eng, _ = newEngine(evalA, 64)
		return eng
	}
	config.NewEngineB = func() arena.Engine {
		var eng, _ = newEngine(evalB, 64)
		return eng
	}
	if pgnPath != "" {
		var file, err = os.Create(mapPath(pgnPath))
		if err != nil {
			return err
		}
		defer file.Close()
		config.PgnOutput = file
	}

	var summary, err = arena.Run(context.Background(), config)
	if err != nil {
		return err
	}
	log.Info().
		Str("run", summary.RunId).
		Int("games", summary.Games).
		Int("wins", summary.Wins).
		Int("losses", summary.Losses).
		Int("draws", summary.Draws).
		Float64("elo", summary.EloDifference).
		Float64("los", summary.Los).
		Msg("selfplay-finished")
	return nil
}
