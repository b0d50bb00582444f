package engine

const (
	ReplaceAlways = iota
	ReplaceDepthPreferred
)

type Options struct {
	Hash              int
	ReplacePolicy     int
	UseTransTable     bool
	ReverseFutility   bool
	Futility          bool
	NullMovePruning   bool
	Lmr               bool
	AspirationWindows bool
	AspirationDelta   int
	TimeDivisor       int
	ProgressMinNodes  int
	EvalBuilder       func() interface{}
}

func NewMainOptions(evalBuilder func() interface{}) Options {
	return Options{
		Hash:              64,
		ReplacePolicy:     ReplaceAlways,
		UseTransTable:     true,
		ReverseFutility:   true,
		Futility:          true,
		NullMovePruning:   true,
		Lmr:               true,
		AspirationWindows: true,
		AspirationDelta:   41,
		TimeDivisor:       30,
		EvalBuilder:       evalBuilder,
	}
}

// pruning margins and thresholds
const (
	reverseFutilityDepth  = 6
	reverseFutilityMargin = 100
	futilityDepth         = 2
	futilityMargin        = 150
	lmrMinDepth           = 2
	lmrMinMovesSearched   = 6
	lmrReduction          = 3
)

func nullMoveReduction(depth int) int {
	return 2 + depth/2
}
