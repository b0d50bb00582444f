package main

import (
	"context"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

//go tool pprof cpu.pprof
func profileHandler() error {
	var (
		dir      = mapPath(cliArgs.GetString("dir", "."))
		evalName = cliArgs.GetString("eval", "")
		moveTime = cliArgs.GetInt("movetime", 5_000)
	)
	log.Info().Str("dir", dir).Str("eval", evalName).Msg("profile-started")

	var eng, err = newEngine(evalName, 128)
	if err != nil {
		return err
	}
	game, err := common.NewGame("r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4")
	if err != nil {
		return err
	}

	defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()

	eng.Search(context.Background(), engine.SearchParams{
		Board:  game,
		Limits: common.LimitsType{MoveTime: moveTime},
	})
	return nil
}
