package evalbuilder

import (
	"testing"

	"github.com/matryer/is"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/cosmoschess/cosmos/pkg/engine"
)

func TestGet(t *testing.T) {
	is := is.New(t)
	for _, name := range []string{"", "pesto", "material"} {
		is.True(Valid(name))
		var ev, ok = Get(name)().(engine.Evaluator)
		is.True(ok) // evaluator implements engine.Evaluator
		var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
		is.NoErr(err)
		is.Equal(ev.Evaluate(&p), 0)
	}
}

func TestGetUnknown(t *testing.T) {
	is := is.New(t)
	is.True(!Valid("nnue"))
	defer func() {
		is.True(recover() != nil) // unknown evaluator panics
	}()
	Get("nnue")()
}
