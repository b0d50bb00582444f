package tactic

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) common.SearchInfo
}

type TestResult struct {
	Item     EpdItem
	BestMove common.Move
	Solved   bool
	Info     common.SearchInfo
}

type Summary struct {
	Total  int
	Solved int
	Nodes  int64
	Time   time.Duration
	Failed []string
}

// SolveTactic searches every position for moveTime on concurrency engines
// built by newEngine. One engine never serves two searches at once.
func SolveTactic(ctx context.Context, tests []EpdItem, newEngine func() Engine,
	moveTime time.Duration, concurrency int) (Summary, error) {

	if concurrency < 1 {
		concurrency = 1
	}
	var start = time.Now()

	g, ctx := errgroup.WithContext(ctx)

	var items = make(chan int)
	var results = make(chan TestResult)

	g.Go(func() error {
		defer close(items)
		for i := range tests {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case items <- i:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			var eng = newEngine()
			for index := range items {
				var res = solve(ctx, eng, &tests[index], moveTime)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case results <- res:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var summary Summary
	for res := range results {
		summary.Total++
		summary.Nodes += res.Info.Nodes
		if res.Solved {
			summary.Solved++
		} else {
			summary.Failed = append(summary.Failed, res.Item.Id)
		}
		log.Info().
			Str("id", res.Item.Id).
			Bool("solved", res.Solved).
			Str("move", res.BestMove.String()).
			Int("depth", res.Info.Depth).
			Int("score", summary.Solved).
			Int("total", summary.Total).
			Msg("tactic-result")
	}
	summary.Time = time.Since(start)
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

func solve(ctx context.Context, eng Engine, item *EpdItem, moveTime time.Duration) TestResult {
	eng.Clear()
	var game = common.NewGameFromPositions([]common.Position{item.Position})
	var si = eng.Search(ctx, engine.SearchParams{
		Board:  game,
		Limits: common.LimitsType{MoveTime: int(moveTime / time.Millisecond)},
	})
	var bestMove = si.BestMove()
	return TestResult{
		Item:     *item,
		BestMove: bestMove,
		Solved:   containsMove(item.BestMoves, bestMove),
		Info:     si,
	}
}

func containsMove(ml []common.Move, move common.Move) bool {
	for _, m := range ml {
		if m == move {
			return true
		}
	}
	return false
}
