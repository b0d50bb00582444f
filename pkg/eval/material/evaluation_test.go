package eval

import (
	"testing"

	"github.com/cosmoschess/cosmos/pkg/common"
	"github.com/matryer/is"
)

func TestMaterial(t *testing.T) {
	is := is.New(t)
	var e = NewEvaluationService()
	var tests = []struct {
		fen  string
		want int
	}{
		{common.InitialPositionFen, 0},
		{"4k3/8/8/8/8/8/8/3QK3 w - - 0 1", 900},
		{"4k3/8/8/8/8/8/8/3QK3 b - - 0 1", -900},
		{"4k3/pppp4/8/8/8/8/8/2R1K3 w - - 0 1", 100},
	}
	for _, test := range tests {
		var p, err = common.NewPositionFromFEN(test.fen)
		is.NoErr(err)
		is.Equal(e.Evaluate(&p), test.want)
	}
}
