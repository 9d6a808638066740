package search

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
)

// PVS implements principal variation search: a cheap null-window "scout" search
// establishes whether a move improves alpha, and only promising moves pay for a
// full re-search. Useful for comparison and validation against AlphaBeta.
// Pseudo-code:
//
// function pvs(node, depth, α, β, color) is
//
//	if depth = 0 or node is a terminal node then
//	    return color × the heuristic value of node
//	for each child of node do
//	    if child is first child then
//	        score := −pvs(child, depth − 1, −β, −α, −color)
//	    else
//	        score := −pvs(child, depth − 1, −α − 1, −α, −color) (* search with a null window *)
//	        if α < score < β then
//	            score := −pvs(child, depth − 1, −β, −score, −color) (* if it failed high, do a full re-search *)
//	    α := max(α, score)
//	    if α ≥ β then
//	        break (* beta cut-off *)
//	return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Eval eval.Evaluator
}

func (p PVS) Search(ctx context.Context, b *board.Board, depth int, quit <-chan struct{}) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{eval: p.Eval, b: b, quit: quit}
	score, moves := run.search(ctx, depth, eval.NegInfScore, eval.InfScore)
	if IsClosed(quit) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runPVS struct {
	eval  eval.Evaluator
	b     *board.Board
	nodes uint64

	quit <-chan struct{}
}

// search returns the positive score for the color to move.
func (m *runPVS) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	m.nodes++

	if IsClosed(m.quit) {
		return eval.ZeroScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}
	if depth == 0 {
		return eval.HeuristicScore(m.eval.Evaluate(ctx, m.b)), nil
	}

	hasLegalMove := false
	var pv []board.Move

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(), MVVLVA)
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}

		var score eval.Score
		var rem []board.Move

		if !hasLegalMove {
			score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
		} else {
			// Search with a null window first.
			score, rem = m.search(ctx, depth-1, alpha.Negate().Dec(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			if alpha.Less(score) && score.Less(beta) {
				// Failed high on the null window: re-search with the full window.
				score, rem = m.search(ctx, depth-1, beta.Negate(), score.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}
		}

		m.b.PopMove()
		hasLegalMove = true

		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
		}
		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MatedInXScore(0), nil
		}
		return eval.ZeroScore, nil
	}

	return alpha, pv
}
