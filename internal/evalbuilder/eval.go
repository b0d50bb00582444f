package evalbuilder

import (
	"fmt"

	material "github.com/cosmoschess/cosmos/pkg/eval/material"
	pesto "github.com/cosmoschess/cosmos/pkg/eval/pesto"
)

// Get returns a factory for the named evaluator. Every engine gets its own
// instance.
func Get(key string) func() interface{} {
	return func() interface{} {
		switch key {
		case "", "pesto":
			return pesto.NewEvaluationService()
		case "material":
			return material.NewEvaluationService()
		}
		panic(fmt.Errorf("bad eval %v", key))
	}
}

// Valid reports whether Get knows the evaluator.
func Valid(key string) bool {
	switch key {
	case "", "pesto", "material":
		return true
	}
	return false
}
