package arena

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Run plays every opening twice between engine A and engine B and writes the
// games as PGN to config.PgnOutput.
func Run(ctx context.Context, config Config) (Summary, error) {
	if config.NewEngineA == nil || config.NewEngineB == nil {
		return Summary{}, errors.New("engine factory is not set")
	}
	if _, err := config.TimeControl.limits(); err != nil {
		return Summary{}, err
	}
	var gameConcurrency = config.Concurrency
	if gameConcurrency < 1 {
		gameConcurrency = 1
	}
	var runId = uuid.NewString()

	log.Info().
		Str("run", runId).
		Int("numcpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("concurrency", gameConcurrency).
		Int("openings", len(config.Openings)).
		Msg("arena-started")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, config.Openings, gameInfos)
	})

	var summary = Summary{RunId: runId}
	g.Go(func() error {
		return showResults(ctx, &config, gameResults, &summary)
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < gameConcurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, &config, runId, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	log.Info().Str("run", runId).Int("games", summary.Games).Msg("arena-finished")
	return summary, err
}

func playGames(
	ctx context.Context,
	config *Config,
	runId string,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var engineA = config.NewEngineA()
	var engineB = config.NewEngineB()
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, engineA, engineB, config, runId, gameInfo)
		if err != nil {
			return fmt.Errorf("game %v: %w", gameInfo.gameNumber, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
