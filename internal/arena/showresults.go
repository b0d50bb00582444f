package arena

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

func showResults(
	ctx context.Context,
	config *Config,
	gameResults <-chan gameResult,
	summary *Summary,
) error {
	for gameResult := range gameResults {
		summary.Games++
		if gameResult.result == gameResultDraw {
			summary.Draws++
		} else if gameResult.result == gameResultWhiteWins && gameResult.gameInfo.engineAIsWhite ||
			gameResult.result == gameResultBlackWins && !gameResult.gameInfo.engineAIsWhite {
			summary.Wins++
		} else {
			summary.Losses++
		}
		var stat = computeStat(summary.Wins, summary.Losses, summary.Draws)
		summary.WinningFraction = stat.winningFraction
		summary.EloDifference = stat.eloDifference
		summary.Los = stat.los

		log.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Str("score", fmt.Sprintf("%v - %v - %v", summary.Wins, summary.Losses, summary.Draws)).
			Float64("fraction", stat.winningFraction).
			Float64("elo", stat.eloDifference).
			Float64("los", stat.los).
			Msg("game-finished")

		if config.PgnOutput != nil {
			if _, err := fmt.Fprintf(config.PgnOutput, "%v\n\n", gameResult.pgn); err != nil {
				return err
			}
		}
	}
	return nil
}

type gameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

//https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) gameStatistics {
	var games = wins + losses + draws
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return gameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}

func gameResultString(v int) string {
	if v == gameResultWhiteWins {
		return "1-0"
	}
	if v == gameResultBlackWins {
		return "0-1"
	}
	if v == gameResultDraw {
		return "1/2-1/2"
	}
	return ""
}
