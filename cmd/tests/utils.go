package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cosmoschess/cosmos/internal/evalbuilder"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

const defaultTestsPath = "~/chess/tests/tests.epd"

// mapPath expands "~/" to the home directory and "./" to the directory of
// the executable.
func mapPath(path string) string {
	var base string
	var err error
	switch {
	case strings.HasPrefix(path, "~/"):
		base, err = os.UserHomeDir()
	case strings.HasPrefix(path, "./"):
		var exe string
		exe, err = os.Executable()
		base = filepath.Dir(exe)
	default:
		return path
	}
	if err != nil {
		return path
	}
	return filepath.Join(base, path[2:])
}

// testsPath is the EPD suite read by tactic and bench.
func testsPath() string {
	return mapPath(cliArgs.GetString("testpath", defaultTestsPath))
}

func newEngine(evalName string, hash int) (*engine.Engine, error) {
	if !evalbuilder.Valid(evalName) {
		return nil, fmt.Errorf("bad eval %v", evalName)
	}
	var policy, err = cliArgs.ReplacePolicy()
	if err != nil {
		return nil, err
	}
	var options = engine.NewMainOptions(evalbuilder.Get(evalName))
	options.Hash = hash
	options.ReplacePolicy = policy
	var eng = engine.NewEngine(options)
	eng.Prepare()
	return eng, nil
}
