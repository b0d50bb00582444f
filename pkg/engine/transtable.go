package engine

import (
	. "github.com/cosmoschess/cosmos/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

//16 bytes
type transEntry struct {
	key   uint64
	move  Move
	score int16
	depth int8
	bound uint8
}

type TransTableStats struct {
	Probes     int64
	Hits       int64
	Collisions int64
	Stores     int64
}

// transTable is a single slot per index cache. A slot is trusted only when
// its full 64-bit key matches, its move is returned regardless.
type transTable struct {
	megabytes int
	policy    int
	entries   []transEntry
	mask      uint64
	date      uint8
	dates     []uint8
	stats     TransTableStats
}

func newTransTable(megabytes, policy int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	var tt = &transTable{
		megabytes: megabytes,
		policy:    policy,
		entries:   make([]transEntry, size),
		mask:      uint64(size - 1),
	}
	if policy == ReplaceDepthPreferred {
		tt.dates = make([]uint8, size)
	}
	return tt
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) Len() int {
	return len(tt.entries)
}

// IncDate starts a new search generation, entries of older generations are
// replaced unconditionally under the depth-preferred policy.
func (tt *transTable) IncDate() {
	tt.date++
}

func (tt *transTable) Clear() {
	tt.date = 0
	tt.stats = TransTableStats{}
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
	for i := range tt.dates {
		tt.dates[i] = 0
	}
}

func (tt *transTable) Stats() TransTableStats {
	return tt.stats
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	tt.stats.Probes++
	var entry = &tt.entries[key&tt.mask]
	move = entry.move
	if entry.bound == 0 {
		return
	}
	if entry.key != key {
		tt.stats.Collisions++
		return
	}
	tt.stats.Hits++
	if tt.dates != nil {
		tt.dates[key&tt.mask] = tt.date
	}
	return int(entry.depth), int(entry.score), int(entry.bound), move, true
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var index = key & tt.mask
	var entry = &tt.entries[index]
	if tt.policy == ReplaceDepthPreferred &&
		entry.bound != 0 &&
		entry.key != key &&
		tt.dates[index] == tt.date &&
		depth < int(entry.depth) {
		return
	}
	tt.stats.Stores++
	if move == MoveEmpty && entry.key == key {
		move = entry.move
	}
	*entry = transEntry{
		key:   key,
		move:  move,
		score: int16(score),
		depth: int8(Min(depth, maxHeight)),
		bound: uint8(bound),
	}
	if tt.dates != nil {
		tt.dates[index] = tt.date
	}
}
