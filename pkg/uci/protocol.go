package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) common.SearchInfo
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	game         *common.Game
	input        io.Reader
	output       io.Writer
	thinking     bool
	engineOutput chan common.SearchInfo
	cancel       context.CancelFunc
}

func New(name, author, version string, eng Engine, options []Option) *Protocol {
	var game, err = common.NewGame(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  eng,
		options: options,
		game:    game,
		input:   os.Stdin,
		output:  os.Stdout,
	}
}

func (uci *Protocol) Run(logger zerolog.Logger) {
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(uci.input, commands)
	}()

	var searchResult common.SearchInfo
	for {
		select {
		case si, ok := <-uci.engineOutput:
			if ok {
				fmt.Fprintln(uci.output, searchInfoToUci(si))
				searchResult = si
			} else {
				uci.bestMove(searchResult)
				searchResult = common.SearchInfo{}
			}
		case commandLine, ok := <-commands:
			if !ok {
				//uci quit
				uci.stopAndWait()
				return
			}
			var err = uci.handle(commandLine)
			if err != nil {
				logger.Error().Err(err).Str("command", commandLine).Msg("uci-command-failed")
			}
		}
	}
}

func (uci *Protocol) bestMove(si common.SearchInfo) {
	if len(si.MainLine) != 0 {
		fmt.Fprintf(uci.output, "bestmove %v\n", si.MainLine[0])
	} else {
		fmt.Fprintln(uci.output, "bestmove 0000")
	}
	uci.thinking = false
	uci.cancel = nil
	uci.engineOutput = nil
}

func (uci *Protocol) stopAndWait() {
	if !uci.thinking {
		return
	}
	uci.cancel()
	var searchResult common.SearchInfo
	for si := range uci.engineOutput {
		fmt.Fprintln(uci.output, searchInfoToUci(si))
		searchResult = si
	}
	uci.bestMove(searchResult)
}

func readCommands(r io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking {
		switch commandName {
		case "stop":
			uci.cancel()
			return nil
		case "isready":
			return uci.isReadyCommand(fields)
		}
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "stop":
		return nil
	}

	if h == nil {
		return fmt.Errorf("command not found %v", commandName)
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.output, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.output, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.output, option.UciString())
	}
	fmt.Fprintln(uci.output, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			if err := option.Set(value); err != nil {
				return fmt.Errorf("setoption %v: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("unhandled option %v", name)
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	// the running search owns the engine
	if !uci.thinking {
		uci.engine.Prepare()
	}
	fmt.Fprintln(uci.output, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("empty position command")
	}
	var args = fields
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var game, err = common.NewGame(fen)
	if err != nil {
		return err
	}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			if err := game.MakeMoveLAN(smove); err != nil {
				return err
			}
		}
	}
	uci.game = game
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var remaining = limits.BlackTime
	if uci.game.WhiteToMove() {
		remaining = limits.WhiteTime
	}
	var clock = engine.NewClock(time.Duration(remaining) * time.Millisecond)
	var board = uci.game.Clone()
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	uci.thinking = true
	var engineOutput = make(chan common.SearchInfo, 3)
	uci.engineOutput = engineOutput
	go func() {
		defer cancel()
		var searchResult = uci.engine.Search(ctx, engine.SearchParams{
			Board:  board,
			Clock:  clock,
			Limits: limits,
			Progress: func(si common.SearchInfo) {
				select {
				case engineOutput <- si:
				default:
				}
			},
		})
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType) {
	var next = func(i int) int {
		if i+1 >= len(args) {
			return 0
		}
		var v, _ = strconv.Atoi(args[i+1])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			result.WhiteTime = next(i)
			i++
		case "btime":
			result.BlackTime = next(i)
			i++
		case "winc":
			result.WhiteIncrement = next(i)
			i++
		case "binc":
			result.BlackIncrement = next(i)
			i++
		case "movestogo":
			i++
		case "depth":
			result.Depth = next(i)
			i++
		case "nodes":
			result.Nodes = next(i)
			i++
		case "movetime":
			result.MoveTime = next(i)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
