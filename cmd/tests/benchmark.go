package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/internal/tactic"
	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

func benchmarkHandler() error {
	var (
		filepath = testsPath()
		evalName = cliArgs.GetString("eval", "")
		depth    = cliArgs.GetInt("depth", 10)
	)

	log.Info().
		Str("filepath", filepath).
		Str("eval", evalName).
		Int("depth", depth).
		Msg("benchmark-started")

	var tests, err = tactic.LoadEpd(filepath)
	if err != nil {
		return err
	}
	eng, err := newEngine(evalName, 128)
	if err != nil {
		return err
	}
	benchmark(tests, eng, depth)
	return nil
}

func benchmark(tests []tactic.EpdItem, eng *engine.Engine, depth int) {
	var ctx = context.Background()
	var start = time.Now()
	var nodes int64
	var stats engine.TransTableStats
	for i := range tests {
		var test = &tests[i]
		eng.Clear()
		var searchInfo = eng.Search(ctx, engine.SearchParams{
			Board:  common.NewGameFromPositions([]common.Position{test.Position}),
			Limits: common.LimitsType{Depth: depth},
		})
		nodes += searchInfo.Nodes
		var s = eng.TransTableStats()
		stats.Probes += s.Probes
		stats.Hits += s.Hits
		stats.Collisions += s.Collisions
		stats.Stores += s.Stores
	}
	var elapsed = time.Since(start)
	fmt.Println("Time", elapsed)
	fmt.Println("Nodes", humanize.Comma(nodes))
	fmt.Println("kNPS", humanize.Comma(nodes/(elapsed.Milliseconds()+1)))
	fmt.Printf("TT probes %v hits %v collisions %v stores %v\n",
		humanize.Comma(stats.Probes), humanize.Comma(stats.Hits),
		humanize.Comma(stats.Collisions), humanize.Comma(stats.Stores))
}
