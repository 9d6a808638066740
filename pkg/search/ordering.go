package search

import (
	"github.com/herohde/daydreamer/pkg/board"
)

// maxKillerPly bounds the killer-move stack depth. Plies beyond this never
// record or consult killers; a search this deep is already far outside
// anything the engine's depth/time limits would reach.
const maxKillerPly = 128

// killerSlots is the number of killer moves tracked per ply.
const killerSlots = 2

// KillerTable records, per search ply, up to two quiet moves that caused a
// beta cutoff there in a sibling line: a quiet move good enough to refute one
// line is often good enough to try first in a sibling line at the same ply.
// Move ordering additionally proposes the killers from two plies up (the same
// side's previous turn in this line), since those often remain playable.
type KillerTable struct {
	moves [maxKillerPly][killerSlots]board.Move
	mate  [maxKillerPly]board.Move
}

// NewKillerTable creates an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Clear wipes all recorded killers, e.g. on ucinewgame or a fresh root search.
func (k *KillerTable) Clear() {
	*k = KillerTable{}
}

// Add records a fail-high quiet move as a killer at the given ply, evicting
// the older of the two slots. A move already present is not duplicated.
func (k *KillerTable) Add(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly {
		return
	}
	slots := &k.moves[ply]
	if slots[0].Equals(m) {
		return
	}
	slots[1] = slots[0]
	slots[0] = m
}

// AddMate records a quiet move that delivered a mate-bound cutoff at the given
// ply. Mate killers are tried ahead of the regular killers: a move that mates
// in one sibling line very often mates in the next.
func (k *KillerTable) AddMate(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly {
		return
	}
	k.mate[ply] = m
}

// At returns the killer candidates worth trying at the given ply: the mate
// killer first, then this ply's two killers, then the two from two plies up.
func (k *KillerTable) At(ply int) []board.Move {
	var ret []board.Move
	if ply >= 0 && ply < maxKillerPly {
		if m := k.mate[ply]; !m.IsZero() {
			ret = append(ret, m)
		}
		for _, m := range k.moves[ply] {
			if !m.IsZero() {
				ret = append(ret, m)
			}
		}
	}
	if grand := ply - 2; grand >= 0 && grand < maxKillerPly {
		for _, m := range k.moves[grand] {
			if !m.IsZero() {
				ret = append(ret, m)
			}
		}
	}
	return ret
}

// maxKillerRank bounds rank(): at most 2*killerSlots+1 candidates are ever
// returned by At, so earlier ones offset by up to this many rank points.
const maxKillerRank = 2*killerSlots + 1

// rank returns m's priority offset within the killer band: earlier slots (this
// ply before the ply-2 ones, primary before secondary) rank higher, or false if
// m is not a recorded killer at ply.
func (k *KillerTable) rank(ply int, m board.Move) (int, bool) {
	for i, cand := range k.At(ply) {
		if cand.Equals(m) {
			return maxKillerRank - 1 - i, true
		}
	}
	return 0, false
}

// historyMax caps the history heuristic's magnitude; on overflow the whole
// table is halved instead of clamped.
const historyMax int32 = 1 << 20

// HistoryTable scores quiet (moving piece, destination) pairs by how often
// they have caused a beta cutoff versus how often they were tried and failed
// to, biasing quiet-move ordering towards moves that have paid off elsewhere
// in the tree. Shared across a whole iterative-deepening search rather than
// reset per node; the iterative driver starts each search with a fresh table.
type HistoryTable struct {
	score   [board.NumColors][board.NumPieces][128]int32
	success [board.NumColors][board.NumPieces][128]uint32
	failure [board.NumColors][board.NumPieces][128]uint32
}

// NewHistoryTable creates an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Clear wipes all recorded history, e.g. on ucinewgame.
func (h *HistoryTable) Clear() {
	*h = HistoryTable{}
}

// Good records a fail-high (beta cutoff) by the given quiet move at the given
// depth: the bonus grows with depth, since a cutoff deeper in the tree is
// stronger evidence the move is broadly good. Halves the whole table on
// overflow rather than clamping, preserving relative order between entries.
func (h *HistoryTable) Good(c board.Color, m board.Move, depth int) {
	h.success[c][m.Piece][m.To]++
	h.bump(c, m, depth*depth)
}

// Bad records a quiet move that was tried and did not cause a cutoff ahead of
// one that did, at the same depth: a small penalty so moves that are
// repeatedly tried and fail sink below ones that succeed even once.
func (h *HistoryTable) Bad(c board.Color, m board.Move, depth int) {
	h.failure[c][m.Piece][m.To]++
	h.bump(c, m, -depth)
}

func (h *HistoryTable) bump(c board.Color, m board.Move, delta int) {
	v := &h.score[c][m.Piece][m.To]
	*v += int32(delta)
	if *v > historyMax || *v < -historyMax {
		h.halve()
	}
}

func (h *HistoryTable) halve() {
	for c := range h.score {
		for p := range h.score[c] {
			for sq := range h.score[c][p] {
				h.score[c][p][sq] /= 2
			}
		}
	}
}

// Score returns the current history value for the given quiet move.
func (h *HistoryTable) Score(c board.Color, m board.Move) int32 {
	return h.score[c][m.Piece][m.To]
}

// Prunable reports whether the move's track record is poor enough to skip it
// in a shallow frontier node: it has been tried repeatedly and failed far more
// often than it has cut off.
func (h *HistoryTable) Prunable(c board.Color, m board.Move) bool {
	s := h.success[c][m.Piece][m.To]
	f := h.failure[c][m.Piece][m.To]
	return f >= 4 && f > 8*s
}
