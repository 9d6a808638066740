package searchctl

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"sync"
	"time"
)

// mateAgreementStop is how many consecutive iterations must agree on the same
// mate score before the driver stops early: once the mate distance is stable,
// deeper iterations only re-derive it.
const mateAgreementStop = 3

// Iterative is a search harness for iterative deepening search.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{
		Alpha:     eval.NegInfScore,
		Beta:      eval.InfScore,
		TT:        tt,
		Noise:     noise,
		Killers:   search.NewKillerTable(),
		History:   search.NewHistoryTable(),
		RootMoves: opt.SearchMoves,
		Stats:     &search.Stats{},
		Tablebase: opt.Tablebase,
	}

	soft, useSoft := time.Duration(0), false
	if !opt.Ponder {
		soft, useSoft = EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())
		if mt, ok := opt.MoveTime.V(); ok {
			time.AfterFunc(mt, func() {
				h.Halt()
			})
		}
	}

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	// A single legal reply needs no deliberation: report it at minimum depth.
	obvious := b.Position().HasSingleReply()

	var totalNodes uint64
	var mateRun int
	var lastMate eval.Score

	start := time.Now()
	depth := 1
	for !h.quit.IsClosed() {
		iterStart := time.Now()

		if limit, ok := opt.NodeLimit.V(); ok {
			if totalNodes >= limit {
				return // halt: node budget exhausted
			}
			sctx.NodeLimit = limit - totalNodes
		}

		tt.NewGeneration()

		nodes, score, moves, err := root.Search(wctx, sctx, b, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called, or the node budget ran out mid-iteration.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}
		totalNodes += nodes

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(iterStart),
			Hash:  tt.Used(),
		}

		logw.Debugf(ctx, "Searched %v: %v, %v", b.Position(), pv, sctx.Stats)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && limit > 0 && uint(depth) == limit {
			return // halt: reached max depth
		}
		if obvious && depth >= 1 && !opt.Infinite {
			return // halt: only one legal reply
		}

		if md, isMate := score.MateDistance(); isMate && !opt.Infinite {
			if int(md) <= depth {
				return // halt: forced mate found within full width search. Exact result.
			}
			if limit, ok := opt.MateLimit.V(); ok && score.CP() > 0 && uint((md+1)/2) <= limit {
				return // halt: found the mate the host asked for
			}
			if score == lastMate {
				mateRun++
				if mateRun >= mateAgreementStop {
					return // halt: the mate score is stable across iterations
				}
			} else {
				mateRun = 1
				lastMate = score
			}
		} else {
			mateRun = 0
			lastMate = eval.InvalidScore
		}

		if useSoft && !opt.Infinite && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
