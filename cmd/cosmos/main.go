package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/internal/evalbuilder"
	"github.com/cosmoschess/cosmos/pkg/engine"
	"github.com/cosmoschess/cosmos/pkg/uci"
)

/*
Cosmos chess engine.
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "Cosmos"
	author = "Cosmos authors"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
	flgEval     string
	flgLogLevel string
)

func main() {
	flag.StringVar(&flgEval, "eval", "", "specifies evaluation function (pesto, material)")
	flag.StringVar(&flgLogLevel, "loglevel", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	var level, err = zerolog.ParseLevel(flgLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !evalbuilder.Valid(flgEval) {
		fmt.Fprintf(os.Stderr, "bad eval %v\n", flgEval)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	log.Logger = logger

	logger.Info().
		Str("version", versionName).
		Str("build-date", buildDate).
		Str("git-revision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numcpu", runtime.NumCPU()).
		Msg(name)

	var options = engine.NewMainOptions(evalbuilder.Get(flgEval))
	var eng = engine.NewEngine(options)

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 1, Max: 1 << 14, Value: &eng.Options.Hash},
			&uci.BoolOption{Name: "NullMovePruning", Value: &eng.Options.NullMovePruning},
			&uci.BoolOption{Name: "Lmr", Value: &eng.Options.Lmr},
			&uci.BoolOption{Name: "Futility", Value: &eng.Options.Futility},
			&uci.BoolOption{Name: "ReverseFutility", Value: &eng.Options.ReverseFutility},
			&uci.BoolOption{Name: "AspirationWindows", Value: &eng.Options.AspirationWindows},
			&uci.ComboOption{Name: "TTReplace", Choices: []string{"always", "depth-preferred"}, Value: &eng.Options.ReplacePolicy},
		},
	)
	protocol.Run(logger)
}
