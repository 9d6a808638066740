package search

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaMarginCP is the slack, in centipawns, a capture gets before being
// delta-pruned: if even winning the piece outright plus this margin cannot
// lift the stand-pat score to alpha, the capture is skipped unsearched.
const deltaMarginCP = 200

// Quiescence implements a tactical-only alpha-beta QuietSearch: the static
// evaluation stands pat, and only captures and promotions are searched until
// the position is quiet. In check the stand pat is disabled and every evasion
// is searched, so a mate behind a check sequence is still seen.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: q.Explore, eval: q.Eval, b: b}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, sctx, low, high)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	b       *board.Board
	nodes   uint64
}

// search returns the positive score for the color to move.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.ZeroScore
	}

	r.nodes++

	if r.b.Position().IsChecked(r.b.Turn()) {
		return r.searchEvasions(ctx, sctx, alpha, beta)
	}

	standPat := eval.HeuristicScore(r.eval.Evaluate(ctx, sctx, r.b))
	if !standPat.Less(beta) {
		return beta
	}
	alpha = eval.Max(alpha, standPat)

	priority, explore := r.explore(ctx, r.b)

	moves := board.NewMoveList(r.b.Position().TacticalMoves(), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(m) {
			continue
		}
		if m.Type == board.Capture || m.Type == board.EnPassant {
			// Delta pruning: the best this capture can possibly do is win the
			// piece; if that plus a margin still leaves us below alpha, skip it.
			gain := int32(eval.NominalValueGain(m) * 100)
			if standPat.CP()+gain+deltaMarginCP < alpha.CP() {
				continue
			}
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}

		score := r.search(ctx, sctx, beta.Negate(), alpha.Negate())
		score = eval.IncrementMateDistance(score).Negate()
		r.b.PopMove()

		alpha = eval.Max(alpha, score)
		if !alpha.Less(beta) {
			return beta // cutoff
		}
	}
	return alpha
}

// searchEvasions searches every legal reply to a check: the stand pat does not
// apply while in check, and finding no legal reply is checkmate.
func (r *runQuiescence) searchEvasions(ctx context.Context, sctx *Context, alpha, beta eval.Score) eval.Score {
	priority, _ := r.explore(ctx, r.b)

	hasLegalMove := false
	moves := board.NewMoveList(r.b.Position().Evasions(), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}
		hasLegalMove = true

		score := r.search(ctx, sctx, beta.Negate(), alpha.Negate())
		score = eval.IncrementMateDistance(score).Negate()
		r.b.PopMove()

		alpha = eval.Max(alpha, score)
		if !alpha.Less(beta) {
			return beta // cutoff
		}
	}

	if !hasLegalMove {
		r.b.AdjudicateNoLegalMoves()
		return eval.MatedInXScore(0)
	}
	return alpha
}
