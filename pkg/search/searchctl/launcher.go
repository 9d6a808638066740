// Package searchctl contains search control functionality: the iterative
// deepening driver, time control and the launch/halt handle lifecycle.
package searchctl

import (
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/herohde/daydreamer/pkg/tablebase"
	"github.com/seekerror/stdlib/pkg/lang"
	"strings"
	"time"
)

// Options hold dynamic search options. The user may change these on a particular search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// NodeLimit, if set, aborts the search after roughly this many nodes.
	NodeLimit lang.Optional[uint64]
	// MateLimit, if set, halts as soon as a forced mate in at most the given
	// number of moves (not plies) has been found.
	MateLimit lang.Optional[uint]
	// MoveTime, if set, halts the search after exactly this long.
	MoveTime lang.Optional[time.Duration]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
	// SearchMoves, if non-empty, restricts the root to the given moves.
	SearchMoves []board.Move
	// Infinite searches until halted, ignoring soft stop conditions.
	Infinite bool
	// Ponder marks the search as speculative (thinking on the opponent's
	// time); neither the time control nor MoveTime is armed for it.
	Ponder bool
	// Tablebase, if set, is consulted by the search at low-piece-count nodes.
	Tablebase *tablebase.Pool
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodeLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("nodes=%v", v))
	}
	if v, ok := o.MateLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("mate=%v", v))
	}
	if v, ok := o.MoveTime.V(); ok {
		ret = append(ret, fmt.Sprintf("movetime=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	if len(o.SearchMoves) > 0 {
		ret = append(ret, fmt.Sprintf("searchmoves=%v", board.PrintMoves(o.SearchMoves)))
	}
	if o.Infinite {
		ret = append(ret, "infinite")
	}
	if o.Ponder {
		ret = append(ret, "ponder")
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher is an interface for managing searches.
type Launcher interface {
	// Launch a new search from the given position. It expects an exclusive (forked) board and
	// returns a PV channel for iteratively deeper searches. If the search is exhausted, the
	// channel is closed. The search can be stopped at any time.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV)
}

// Handle is an interface for the engine to manage searches. The engine is expected to spin off
// searches with forked boards and close/abandon them when no longer needed. This design keeps
// stopping conditions and re-synchronization trivial.
type Handle interface {
	// Halt halts the search, if running. Idempotent.
	Halt() search.PV
}
