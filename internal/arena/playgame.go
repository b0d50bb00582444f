package arena

import (
	"context"
	"fmt"
	"strconv"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

// playGame keeps two boards in step: the engine board that is searched and
// a notnil game that records the PGN.
func playGame(
	ctx context.Context,
	engineA, engineB Engine,
	config *Config,
	runId string,
	info gameInfo,
) (gameResult, error) {

	log.Debug().Int("game", info.gameNumber).Msg("game-started")

	engineA.Clear()
	engineB.Clear()

	var limits, err = config.TimeControl.limits()
	if err != nil {
		return gameResult{}, err
	}

	game, err := common.NewGame(common.InitialPositionFen)
	if err != nil {
		return gameResult{}, err
	}
	var record = chess.NewGame()
	var white, black = config.NameA, config.NameB
	if !info.engineAIsWhite {
		white, black = black, white
	}
	record.AddTagPair("Event", "cosmos selfplay "+runId)
	record.AddTagPair("Round", strconv.Itoa(info.gameNumber))
	record.AddTagPair("White", white)
	record.AddTagPair("Black", black)

	for _, san := range info.opening {
		var m, err = chess.AlgebraicNotation{}.Decode(record.Position(), san)
		if err != nil {
			return gameResult{}, fmt.Errorf("opening %v: %w", info.opening, err)
		}
		if err := playMove(game, record, chess.UCINotation{}.Encode(record.Position(), m)); err != nil {
			return gameResult{}, err
		}
	}

	var buffer [common.MaxMoves]common.Move
	for plies := 0; ; plies++ {
		if over, whiteScore, comment := game.Result(); over {
			var res = adjudicate(record, whiteScore, comment)
			return finishGame(record, info, comment, res), nil
		}
		if config.MaxPlies != 0 && plies >= config.MaxPlies {
			var res = adjudicate(record, 0.5, "max plies")
			return finishGame(record, info, "max plies", res), nil
		}
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		var eng = engineB
		if game.WhiteToMove() == info.engineAIsWhite {
			eng = engineA
		}
		var searchResult = eng.Search(ctx, engine.SearchParams{
			Board:  game.Clone(),
			Limits: limits,
		})
		var bestMove = searchResult.BestMove()
		if !containsMove(game.LegalMoves(buffer[:], false), bestMove) {
			return gameResult{}, fmt.Errorf("bad move %v in %v", bestMove, game.Position())
		}
		if err := playMove(game, record, bestMove.String()); err != nil {
			return gameResult{}, err
		}
	}
}

func playMove(game *common.Game, record *chess.Game, lan string) error {
	var m, err = chess.UCINotation{}.Decode(record.Position(), lan)
	if err != nil {
		return err
	}
	if err := record.Move(m); err != nil {
		return err
	}
	return game.MakeMoveLAN(lan)
}

// adjudicate brings the PGN outcome in line with the engine board.
func adjudicate(record *chess.Game, whiteScore float64, comment string) int {
	var res = gameResultDraw
	if whiteScore == 1 {
		res = gameResultWhiteWins
	} else if whiteScore == 0 {
		res = gameResultBlackWins
	}
	if record.Outcome() != chess.NoOutcome {
		return res
	}
	if res == gameResultDraw {
		var method = chess.DrawOffer
		for _, eligible := range record.EligibleDraws() {
			if comment == "3 fold repetition" && eligible == chess.ThreefoldRepetition ||
				comment == "50 moves" && eligible == chess.FiftyMoveRule {
				method = eligible
			}
		}
		if err := record.Draw(method); err != nil {
			log.Warn().Err(err).Str("comment", comment).Msg("pgn-draw-failed")
		}
	} else if res == gameResultWhiteWins {
		record.Resign(chess.Black)
	} else {
		record.Resign(chess.White)
	}
	return res
}

func finishGame(record *chess.Game, info gameInfo, comment string, res int) gameResult {
	record.AddTagPair("Result", string(record.Outcome()))
	record.AddTagPair("Termination", comment)
	return gameResult{
		gameInfo: info,
		pgn:      record.String(),
		comment:  comment,
		result:   res,
	}
}

func containsMove(ml []common.Move, move common.Move) bool {
	for i := range ml {
		if ml[i] == move {
			return true
		}
	}
	return false
}
