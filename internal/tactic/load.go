package tactic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/pkg/common"
)

type EpdItem struct {
	Id        string
	Content   string
	Position  common.Position
	BestMoves []common.Move
}

func LoadEpd(filePath string) ([]EpdItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadEpd(file)
}

// ReadEpd skips lines that do not parse and logs them.
func ReadEpd(r io.Reader) ([]EpdItem, error) {
	var result []EpdItem
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var test, err = ParseEpd(line)
		if err != nil {
			log.Warn().Err(err).Msg("epd-skipped")
			continue
		}
		result = append(result, test)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read epd: %w", err)
	}
	return result, nil
}

// ParseEpd parses a line of the form
// `<board> <side> <castling> <ep> bm <san>...; id "<name>";`.
func ParseEpd(s string) (EpdItem, error) {
	var fields = strings.Fields(s)
	if len(fields) < 5 {
		return EpdItem{}, fmt.Errorf("bad epd %v", s)
	}
	var fen = strings.Join(fields[:4], " ") + " 0 1"
	var operations = strings.Join(fields[4:], " ")

	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return EpdItem{}, err
	}
	fenOption, err := chess.FEN(fen)
	if err != nil {
		return EpdItem{}, err
	}
	var oracle = chess.NewGame(fenOption).Position()

	var result = EpdItem{
		Content:  s,
		Position: p,
	}
	for _, op := range strings.Split(operations, ";") {
		var opFields = strings.Fields(op)
		if len(opFields) == 0 {
			continue
		}
		switch opFields[0] {
		case "bm":
			for _, san := range opFields[1:] {
				var move, err = decodeSAN(&p, oracle, san)
				if err != nil {
					return EpdItem{}, fmt.Errorf("parse move failed %v: %w", s, err)
				}
				result.BestMoves = append(result.BestMoves, move)
			}
		case "id":
			result.Id = strings.Trim(strings.Join(opFields[1:], " "), "\"")
		}
	}
	if len(result.BestMoves) == 0 {
		return EpdItem{}, fmt.Errorf("empty best moves %v", s)
	}
	return result, nil
}

func decodeSAN(p *common.Position, oracle *chess.Position, san string) (common.Move, error) {
	var m, err = chess.AlgebraicNotation{}.Decode(oracle, san)
	if err != nil {
		return common.MoveEmpty, err
	}
	var lan = chess.UCINotation{}.Encode(oracle, m)
	var move = common.ParseMoveLAN(p, lan)
	if move == common.MoveEmpty {
		return common.MoveEmpty, fmt.Errorf("illegal move %v", lan)
	}
	return move, nil
}
