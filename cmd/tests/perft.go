package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cosmoschess/cosmos/pkg/common"
)

func perftHandler() error {
	var (
		fen   = cliArgs.GetString("fen", common.InitialPositionFen)
		depth = cliArgs.GetInt("depth", 5)
	)
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	for d := 1; d <= depth; d++ {
		var start = time.Now()
		var nodes = common.Perft(&p, d)
		var elapsed = time.Since(start)
		fmt.Printf("depth %v nodes %v time %v knps %v\n",
			d, humanize.Comma(int64(nodes)), elapsed,
			humanize.Comma(int64(nodes)/(elapsed.Milliseconds()+1)))
	}
	return nil
}
