// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
)

// Pawns is a position evaluation expressed in units of a pawn, positive favors
// the side to move. It is a float to let bonuses (mobility, pawn structure, king
// safety) accumulate fractional weight before being converted to a search Score.
type Pawns float32

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in Pawns, from the perspective of the
	// side to move: positive favors the mover.
	Evaluate(ctx context.Context, b *board.Board) Pawns
}

// Material returns the nominal material advantage balance for the side to move.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()

	var pawns Pawns
	for p := board.Pawn; p < board.NumPieces; p++ {
		diff := pos.PieceCount(turn, p) - pos.PieceCount(turn.Opponent(), p)
		pawns += Pawns(diff) * NominalValue(p)
	}
	return pawns
}

// NominalValue is the absolute nominal value in pawns of a piece. The King has an
// arbitrary value of 100 pawns, larger than any conceivable material imbalance.
func NominalValue(p board.Piece) Pawns {
	switch p {
	case board.Pawn:
		return 1
	case board.Bishop, board.Knight:
		return 3
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	case board.King:
		return 100
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain for a move, used for move ordering.
func NominalValueGain(m board.Move) Pawns {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
