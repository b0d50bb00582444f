package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cosmoschess/cosmos/pkg/engine"
)

// CommandArgs holds the subcommand name and its flags.
// Flags are written "-key value" or "-key=value".
type CommandArgs struct {
	commandName string
	params      map[string]string
}

func NewCommandArgs(args []string) *CommandArgs {
	var result = &CommandArgs{
		params: make(map[string]string),
	}
	for i := 1; i < len(args); i++ {
		var arg = args[i]
		if !strings.HasPrefix(arg, "-") {
			if result.commandName == "" {
				result.commandName = arg
			}
			continue
		}
		var key = strings.TrimLeft(arg, "-")
		if k, v, found := strings.Cut(key, "="); found {
			result.params[k] = v
		} else if i+1 < len(args) {
			result.params[key] = args[i+1]
			i++
		}
	}
	return result
}

func (ca *CommandArgs) CommandName() string {
	return ca.commandName
}

func (ca *CommandArgs) GetString(name string, defaultVal string) string {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	return val
}

func (ca *CommandArgs) GetInt(name string, defaultVal int) int {
	var v, err = strconv.Atoi(ca.GetString(name, ""))
	if err != nil {
		return defaultVal
	}
	return v
}

// GetMillis reads an integer flag given in milliseconds.
func (ca *CommandArgs) GetMillis(name string, defaultMillis int) time.Duration {
	return time.Duration(ca.GetInt(name, defaultMillis)) * time.Millisecond
}

func (ca *CommandArgs) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(ca.GetString("loglevel", "info"))
}

func (ca *CommandArgs) ReplacePolicy() (int, error) {
	switch name := ca.GetString("tt", "always"); name {
	case "always":
		return engine.ReplaceAlways, nil
	case "depth-preferred":
		return engine.ReplaceDepthPreferred, nil
	default:
		return 0, fmt.Errorf("bad tt replace policy %v", name)
	}
}

type command struct {
	usage string
	run   func() error
}

type CommandHandler struct {
	items map[string]command
}

func NewCommandHandler() *CommandHandler {
	return &CommandHandler{
		items: make(map[string]command),
	}
}

func (ch *CommandHandler) Add(name, usage string, handler func() error) {
	ch.items[name] = command{usage: usage, run: handler}
}

// Execute checks the flags shared by all subcommands, points the global
// logger at logOutput and runs the subcommand.
func (ch *CommandHandler) Execute(args *CommandArgs, logOutput io.Writer) error {
	var level, err = args.LogLevel()
	if err != nil {
		return err
	}
	if _, err := args.ReplacePolicy(); err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: logOutput, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	var cmd, found = ch.items[args.CommandName()]
	if !found {
		ch.printUsage(logOutput)
		return fmt.Errorf("command not found %q", args.CommandName())
	}
	return cmd.run()
}

func (ch *CommandHandler) printUsage(w io.Writer) {
	var names = make([]string, 0, len(ch.items))
	for name := range ch.items {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: tests <command> [-loglevel level] [-tt always|depth-preferred] [flags]")
	for _, name := range names {
		fmt.Fprintf(w, "  %-10v %v\n", name, ch.items[name].usage)
	}
}
