package eval

import (
	"context"

	"github.com/herohde/daydreamer/pkg/board"
)

// maxPhase is the Position.Phase() value at and above which a position is
// scored as pure midgame. Full starting material gives 32 (2 knights + 2
// bishops + 2 rooks*3 + 1 queen*6 = 2+2+6+6 per side), so the phase is
// clamped to maxPhase until enough material has come off.
const maxPhase = 24

// FullEvaluator composes material, piece-square, material-signature,
// pawn-structure, mobility/pattern and king-safety terms into a single
// midgame/endgame-blended score. It holds the pawn and material hash tables
// as internal, mutable, non-authoritative caches: safe for reuse across
// positions sharing zobrist hashes, but not for concurrent use by two
// goroutines without external synchronization.
type FullEvaluator struct {
	material *MaterialTable
	pawns    *PawnTable
}

// NewFullEvaluator creates an evaluator with material/pawn caches sized to
// the given byte budgets.
func NewFullEvaluator(materialBytes, pawnBytes int) *FullEvaluator {
	return &FullEvaluator{
		material: NewMaterialTable(materialBytes),
		pawns:    NewPawnTable(pawnBytes),
	}
}

// Clear wipes both caches, e.g. on ucinewgame.
func (e *FullEvaluator) Clear() {
	e.material.Clear()
	e.pawns.Clear()
}

// Evaluate returns the blended score from the perspective of the side to
// move.
func (e *FullEvaluator) Evaluate(ctx context.Context, b *board.Board) Pawns {
	pos := b.Position()
	turn := b.Turn()

	md := e.material.Get(pos)
	if score, ok := ScoreEndgame(pos, md); ok {
		return score // already side-to-move relative
	}

	pd := e.pawns.Get(pos)
	mob := ComputeMobility(pos)

	var mg, eg [board.NumColors]Pawns
	for c := board.ZeroColor; c < board.NumColors; c++ {
		mg[c] = Pawns(pos.MaterialScore(c))/100 + Pawns(pos.PieceSquareScore(c))/100
		eg[c] = Pawns(pos.MaterialScore(c))/100 + Pawns(pos.PieceSquareEndgameScore(c))/100

		passer := PasserAdvancementBonus(pos, pd, c)
		mg[c] += pd.Midgame[c] + passer
		eg[c] += pd.Endgame[c] + passer

		mg[c] += mob.Midgame[c]
		eg[c] += mob.Endgame[c]

		mg[c] += KingSafetyScore(pos, c)
		eg[c] += kingShieldScore(pos, c) // king attack term matters far less in pure endgames

		// A piece pinned against its king is close to useless until released.
		pinned := Pawns(len(FindPins(pos, c, board.King))) * 0.08
		mg[c] -= pinned
		eg[c] -= pinned
	}

	mg[board.White] += md.Midgame
	eg[board.White] += md.Endgame

	phase := pos.Phase()
	if phase > maxPhase {
		phase = maxPhase
	}

	white := (mg[board.White]-mg[board.Black])*Pawns(phase)/maxPhase +
		(eg[board.White]-eg[board.Black])*Pawns(maxPhase-phase)/maxPhase

	strong := board.White
	if white < 0 {
		strong = board.Black
	}
	if scale := ScaleEndgame(pos, md)[strong]; scale < 16 {
		white = white * Pawns(scale) / 16
	}

	if turn == board.White {
		return white
	}
	return -white
}
