package search

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 16

const depthMask = (1 << 6) - 1

// TableEntry is 16 bytes. The flag lives in the top 2 bits of flagAndDepth
// and the remaining depth in the bottom 6.
type TableEntry struct {
	fullHash     uint64
	score        int32
	flagAndDepth uint8
}

func newTableEntry(score int, flag uint8, depth int) TableEntry {
	return TableEntry{
		score:        int32(score),
		flagAndDepth: flag<<6 | uint8(depth)&depthMask,
	}
}

func (t TableEntry) score64() int {
	return int(t.score)
}

func (t TableEntry) flag() uint8 {
	return t.flagAndDepth >> 6
}

func (t TableEntry) depth() int {
	return int(t.flagAndDepth & depthMask)
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag() != 0
}

// TranspositionTable is a fixed-size power-of-two array of search entries,
// indexed by the low bits of the position hash. Collisions simply
// overwrite: entries are cheap to regenerate. It is accessed from a single
// search goroutine; only the counters are atomic, so that a logging
// goroutine can read them live.
type TranspositionTable struct {
	table        []TableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	t2collisions atomic.Uint64
	occupied     atomic.Uint64
}

const minSizePowerOf2 = 10

// Reset sizes the table to roughly the given fraction of total system
// memory and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// biggest power of 2 lower than desired.
	exp := int(math.Log2(desiredNElems))
	t.ResetTo(exp)

	log.Info().Int("num-elems", len(t.table)).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", len(t.table)*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
}

// ResetTo sizes the table to 2^exp entries and clears it.
func (t *TranspositionTable) ResetTo(exp int) {
	if exp < minSizePowerOf2 {
		exp = minSizePowerOf2
	}
	t.sizePowerOf2 = exp
	numElems := 1 << exp
	t.sizeMask = uint64(numElems - 1)
	if t.table != nil && len(t.table) == numElems {
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
	t.occupied.Store(0)
}

// Clear zeroes the entries but keeps the current size.
func (t *TranspositionTable) Clear() {
	if t.table == nil {
		return
	}
	clear(t.table)
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
	t.occupied.Store(0)
}

func (t *TranspositionTable) lookup(zval uint64) TableEntry {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if entry.fullHash != zval {
		if entry.valid() {
			// an unrelated position occupies this slot.
			t.t2collisions.Add(1)
		}
		return TableEntry{}
	}
	t.hits.Add(1)
	return entry
}

func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	idx := zval & t.sizeMask
	tentry.fullHash = zval
	if !t.table[idx].valid() {
		t.occupied.Add(1)
	}
	// just overwrite whatever is there.
	t.table[idx] = tentry
	t.created.Add(1)
}

// Size returns the entry capacity.
func (t *TranspositionTable) Size() int {
	return len(t.table)
}

// Occupancy returns the number of filled slots, for diagnostics.
func (t *TranspositionTable) Occupancy() int {
	return int(t.occupied.Load())
}

// Stats is a snapshot of the table counters.
type Stats struct {
	Created    uint64
	Lookups    uint64
	Hits       uint64
	Collisions uint64
}

func (t *TranspositionTable) Stats() Stats {
	return Stats{
		Created:    t.created.Load(),
		Lookups:    t.lookups.Load(),
		Hits:       t.hits.Load(),
		Collisions: t.t2collisions.Load(),
	}
}
