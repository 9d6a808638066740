package search

import (
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/seekerror/logw"
	"math/bits"
	"sync"
)

// TODO(herohde) 4/17/2021: consider shared linked list for principal variation.

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable represents a transposition table to speed up search performance.
// Caveat: evaluation heuristics that depend on the game history (notably, hasCastled or
// last move) may be unsuitable for position-keyed caching. If the recent history is short,
// then the table may only be used for depth greater than some limit. Must be thread-safe.
type TranspositionTable interface {
	// Read returns the bound, depth, score, best move and mate-threat flag for the given
	// position hash, if present.
	Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool, bool)
	// Write stores the entry into the table, depending on table semantics and replacement policy.
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move, mateThreat bool) bool

	// NewGeneration ages the table by one generation. Called once per root iteration: entries
	// from older generations become preferred eviction candidates over same-depth current ones.
	NewGeneration()

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// bucketWays is the associativity of the table: each zobrist key maps to a fixed
// set of slots and Write picks the weakest of them to evict.
const bucketWays = 4

// ageGenerations bounds the age wheel: replacement priority only distinguishes
// entries up to this many generations old, after which they are all equally
// stale.
const ageGenerations = 8

// node represents one search result slot in a bucket.
type node struct {
	hash       board.ZobristHash
	score      eval.Score
	from, to   board.Square
	promotion  board.Piece
	bound      Bound
	depth      int16
	age        uint8
	mateThreat bool
	valid      bool
}

func (n *node) move() board.Move {
	return board.Move{From: n.from, To: n.to, Promotion: n.promotion}
}

// replacementScore ranks a slot for eviction: older generations and shallower
// searches are preferred targets. The priority is ((current-age) mod 8) * 128
// minus depth, so that within a generation the shallowest entry goes first.
func replacementScore(n *node, currentAge uint8) int {
	if !n.valid {
		return 1 << 30 // empty slot: always the best eviction candidate
	}
	ageScore := int((currentAge-n.age)%ageGenerations) * 128
	return ageScore - int(n.depth)
}

// table is a 4-way bucketed transposition table using open addressing within
// each bucket, held as an explicitly owned, lock-protected structure rather
// than a process-wide global.
type table struct {
	buckets [][bucketWays]node
	mask    uint64
	age     uint8
	used    uint64

	mu sync.Mutex
}

func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 5 - bits.LeadingZeros64(size)))
	if n < bucketWays {
		n = bucketWays
	}
	buckets := n / bucketWays

	logw.Infof(ctx, "Allocating %vMB TT with %v buckets of %v ways", size>>20, buckets, bucketWays)

	return &table{
		buckets: make([][bucketWays]node, buckets),
		mask:    buckets - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.buckets)) * bucketWays * 32
}

func (t *table) Used() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return float64(t.used) / float64(len(t.buckets)*bucketWays)
}

func (t *table) NewGeneration() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.age++
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := &t.buckets[uint64(hash)&t.mask]
	for i := range bucket {
		n := &bucket[i]
		if n.valid && n.hash == hash {
			n.age = t.age // refresh: recently-probed entries age out last
			return n.bound, int(n.depth), n.score, n.move(), n.mateThreat, true
		}
	}
	return 0, 0, eval.InvalidScore, board.Move{}, false, false
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move, mateThreat bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := &t.buckets[uint64(hash)&t.mask]

	var worst *node
	worstScore := -(1 << 30)
	for i := range bucket {
		n := &bucket[i]
		if n.valid && n.hash == hash {
			worst = n
			break // always update an existing entry for this position in place
		}
		if s := replacementScore(n, t.age); s > worstScore {
			worstScore = s
			worst = n
		}
	}

	if !worst.valid {
		t.used++
	}
	*worst = node{
		hash:       hash,
		score:      score,
		from:       move.From,
		to:         move.To,
		promotion:  move.Promotion,
		bound:      bound,
		depth:      int16(depth),
		age:        t.age,
		mateThreat: mateThreat,
		valid:      true,
	}
	return true
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// WriteFilter is a predicate on the Write operation.
type WriteFilter func(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool

// WriteLimited is a TranspositionTable wrapper that ignores certain writes, such as
// less than a given minimum depth. Useful if evaluation uses recent move history.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool, bool) {
	return w.TT.Read(hash)
}

func (w WriteLimited) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move, mateThreat bool) bool {
	if w.Filter(hash, bound, ply, depth, score, move) {
		return false
	}
	return w.TT.Write(hash, bound, ply, depth, score, move, mateThreat)
}

func (w WriteLimited) NewGeneration() {
	w.TT.NewGeneration()
}

func (w WriteLimited) Size() uint64 {
	return w.TT.Size()
}

func (w WriteLimited) Used() float64 {
	return w.TT.Used()
}

// NewMinDepthTranspositionTable creates depth-limited TranspositionTables.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move) bool {
				return depth < min
			},
			TT: NewTranspositionTable(ctx, size),
		}
	}
}

// NoTranspositionTable is a Nop implementation.
type NoTranspositionTable struct{}

func (n NoTranspositionTable) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool, bool) {
	return 0, 0, eval.InvalidScore, board.Move{}, false, false
}

func (n NoTranspositionTable) Write(hash board.ZobristHash, bound Bound, ply, depth int, score eval.Score, move board.Move, mateThreat bool) bool {
	return false
}

func (n NoTranspositionTable) NewGeneration() {}

func (n NoTranspositionTable) Size() uint64 {
	return 0
}

func (n NoTranspositionTable) Used() float64 {
	return 0
}
