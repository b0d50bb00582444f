package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/internal/tactic"
)

func tacticHandler() error {
	var (
		filepath    = testsPath()
		evalName    = cliArgs.GetString("eval", "")
		moveTime    = cliArgs.GetMillis("movetime", 3000)
		concurrency = cliArgs.GetInt("concurrency", runtime.NumCPU())
	)

	log.Info().
		Str("filepath", filepath).
		Str("eval", evalName).
		Dur("movetime", moveTime).
		Int("concurrency", concurrency).
		Msg("tactic-started")

	var tests, err = tactic.LoadEpd(filepath)
	if err != nil {
		return err
	}
	if _, err := newEngine(evalName, 1); err != nil {
		return err
	}
	summary, err := tactic.SolveTactic(context.Background(), tests, func() tactic.Engine {
		var eng, _ = newEngine(evalName, 128)
		return eng
	}, moveTime, concurrency)
	if err != nil {
		return err
	}
	fmt.Printf("Solved %v of %v in %v\n", summary.Solved, summary.Total, summary.Time)
	for _, id := range summary.Failed {
		fmt.Println("Failed", id)
	}
	return nil
}
