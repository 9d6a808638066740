package search

import (
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/tablebase"
)

// Context carries the per-call search window and shared infrastructure down the
// recursion: the transposition table, a noise generator for de-duplicating
// otherwise-equal lines, and a ponder line that forces the first line searched
// (each node entered while it is non-empty searches only its next move). Killers
// and History persist across the whole iterative-deepening search (and are
// lazily created if left nil), so move ordering improves from one depth to
// the next rather than resetting per call.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Ponder      []board.Move
	Killers     *KillerTable
	History     *HistoryTable

	// RootMoves, if non-empty, restricts the root of the search to the given
	// moves, backing the UCI "go searchmoves" restriction.
	RootMoves []board.Move
	// NodeLimit, if non-zero, aborts the search once this many nodes have been
	// visited. The partial result is discarded, as for a time abort.
	NodeLimit uint64
	// Stats, if set, accumulates per-search pruning and cutoff counters.
	Stats *Stats
	// Tablebase, if set, is consulted at interior nodes with few enough
	// pieces. Probes never block: a miss schedules a background fetch and the
	// search carries on normally.
	Tablebase *tablebase.Pool
}

// Stats counts how often the search's pruning and ordering heuristics fire,
// for debug output and tests.
type Stats struct {
	TTCutoffs          uint64
	NullTries          uint64
	NullCutoffs        uint64
	RazorTries         uint64
	RazorPrunes        uint64
	Futility           uint64
	IIDRuns            uint64
	FailHighs          uint64
	FirstMoveFailHighs uint64
}

func (s *Stats) String() string {
	return fmt.Sprintf("stats{tt=%v, null=%v/%v, razor=%v/%v, futility=%v, iid=%v, failhigh=%v/%v first}",
		s.TTCutoffs, s.NullCutoffs, s.NullTries, s.RazorPrunes, s.RazorTries, s.Futility, s.IIDRuns,
		s.FailHighs, s.FirstMoveFailHighs)
}

// Search evaluates a position to a fixed ply depth, returning the node count,
// score (from the mover's perspective, positive favors the mover) and principal
// variation found.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch extends a leaf evaluation with a tactical search -- typically
// captures and promotions -- until the position is quiet, to avoid the horizon
// effect of evaluating mid-exchange.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Evaluator is a context-aware static position evaluator, used by QuietSearch
// implementations that need access to the shared search Context (e.g., to read
// cached pawn/material hash tables keyed off it).
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns
}

// StaticEval adapts a plain eval.Evaluator into an Evaluator, ignoring the
// search Context.
type StaticEval struct {
	Eval eval.Evaluator
}

func (s StaticEval) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns {
	return s.Eval.Evaluate(ctx, b) + sctx.Noise.Evaluate(ctx, b)
}

// ZeroPly adapts a plain eval.Evaluator into a QuietSearch that performs no
// tactical search of its own: the static evaluation at the leaf is final. Useful
// for testing the alpha-beta framework in isolation from quiescence.
type ZeroPly struct {
	Eval eval.Evaluator
}

func (z ZeroPly) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	return 1, eval.HeuristicScore(z.Eval.Evaluate(ctx, b) + sctx.Noise.Evaluate(ctx, b))
}

// IsClosed returns true iff the channel is closed (or has a value ready).
func IsClosed(quit <-chan struct{}) bool {
	select {
	case <-quit:
		return true
	default:
		return false
	}
}
