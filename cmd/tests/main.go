package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

var cliArgs = NewCommandArgs(os.Args)

func main() {
	var handler = NewCommandHandler()
	handler.Add("tactic", "-testpath file -eval name -movetime ms -concurrency n", tacticHandler)
	handler.Add("bench", "-testpath file -eval name -depth n", benchmarkHandler)
	handler.Add("perft", "-fen fen -depth n", perftHandler)
	handler.Add("selfplay", "-evala name -evalb name -nodes n|-depth n|-movetime ms -maxplies n -concurrency n -pgn file", selfplayHandler)
	handler.Add("profile", "-dir dir -eval name -movetime ms", profileHandler)

	var err = handler.Execute(cliArgs, os.Stderr)
	if err != nil {
		log.Error().Err(err).Str("command", cliArgs.CommandName()).Msg("command-failed")
		os.Exit(1)
	}
}
