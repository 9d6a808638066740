package search

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
)

// Exploration defines move selection and priority in a given position. Limited exploration is required
// by quiescence search and can be used for forward pruning in full search. Default: explore all
// moves in MVVLVA order.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsAnyMove
}

// Selection returns a move order and priority for exploring the given moves.
func Selection(list []board.Move) (board.MovePriorityFn, board.MovePredicateFn) {
	rank := map[board.Move]board.MovePriority{}
	for i, m := range list {
		rank[m] = board.MovePriority(len(list) - i)
	}

	priority := func(move board.Move) board.MovePriority {
		return rank[move]
	}
	pick := func(move board.Move) bool {
		_, ok := rank[move]
		return ok
	}
	return priority, pick
}

// MVVLVA implements the MVV-LVA move priority.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// IsAnyMove selects all moves.
func IsAnyMove(m board.Move) bool {
	return true
}

// NoMove selects no moves. Used to disable quiescence entirely.
func NoMove(m board.Move) bool {
	return false
}

// QuiescenceExploration limits quiescence search to tactically significant
// moves: promotions and captures that either win material outright or land on
// a square no longer defended by the opponent. Non-capturing, non-promoting
// moves are never explored, bounding the size of the quiescence tree.
func QuiescenceExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, isQuickGain(b)
}

// isNotUnderPromotion selects any move except an under-promotion: promoting to
// anything but a queen is never worth exploring in a reduced search.
func isNotUnderPromotion(m board.Move) bool {
	return !m.Type.IsPromotion() || m.Promotion == board.Queen
}

// isQuickGain selects promotions and captures that are an immediate material
// gain: the captured piece outvalues the capturing piece, or the destination
// square is no longer defended once the move has been made.
func isQuickGain(b *board.Board) board.MovePredicateFn {
	return func(m board.Move) bool {
		if m.Type.IsPromotion() {
			return isNotUnderPromotion(m)
		}
		if !m.Type.IsCapture() {
			return false
		}
		if eval.NominalValue(m.Piece) < eval.NominalValue(m.Capture) {
			return true
		}
		return !b.Position().IsAttacked(b.Turn().Opponent(), m.To)
	}
}
