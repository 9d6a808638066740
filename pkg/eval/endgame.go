package eval

import "github.com/herohde/daydreamer/pkg/board"

// wonEndgameBonus nudges a drive-to-corner score above ordinary material so
// the search always prefers progress towards it over sitting still.
const wonEndgameBonus = Pawns(5.0)

// cornerEdgeScore rewards a defending king that has been pushed towards a
// board edge/corner, indexed by rank or file (0..7).
var cornerEdgeScore = [8]int{10, 8, 4, 1, 1, 4, 8, 10}

// ScoreEndgame returns a recognizer-driven override of the blended score for
// positions whose MaterialInfo carries a won or drawn endgame tag, along with
// whether it applies: EndgameDraw always returns a
// flat draw score; EndgameKBNK drives the defending king to the bishop's
// corner. Every other tag returns false and leaves the blended score in
// place; there is no generic drive-to-edge score for other
// strong-side-vs-bare-king endgames.
func ScoreEndgame(pos *board.Position, md MaterialInfo) (Pawns, bool) {
	switch md.EndgameTag {
	case EndgameDraw:
		return 0, true
	case EndgameKBNK:
		return scoreKBNK(pos, md.StrongSide), true
	}
	return 0, false
}

// scoreKBNK drives the lone king towards the corner matching the bishop's
// square color, the only corner this mate can actually be delivered in.
func scoreKBNK(pos *board.Position, strong board.Color) Pawns {
	weak := strong.Opponent()
	wk := pos.KingSquare(strong)
	bk := pos.KingSquare(weak)

	var bishopSq board.Square
	for _, sq := range pos.PieceSquares(strong, board.Bishop) {
		bishopSq = sq
		break
	}
	bishopIsLight := isLightSquare(bishopSq)

	t1, t2 := board.A1, board.H8
	if bishopIsLight {
		t1, t2 = board.A8, board.H1
	}
	cornerDist := minInt(squareDistance(bk, t1), squareDistance(bk, t2))
	edgeDist := minInt(int(bk.Rank()), int(bk.File()))

	score := wonEndgameBonus - Pawns(10*(cornerDist+edgeDist))/100 - Pawns(squareDistance(wk, bk))/100
	if strong != pos.Turn() {
		return -score
	}
	return score
}

func isLightSquare(sq board.Square) bool {
	return (int(sq.Rank())+int(sq.File()))%2 == 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ScaleEndgame refines MaterialInfo's generic per-side scale factors for the
// recognized endgame tags that need position (not just material) to judge:
// known-draw KPK setups scale to zero, rook endings with a well-placed
// defending king scale down sharply.
func ScaleEndgame(pos *board.Position, md MaterialInfo) [board.NumColors]int {
	scale := md.Scale
	switch md.EndgameTag {
	case EndgameKPK:
		if ScaleKPK(pos, md.StrongSide) {
			scale[md.StrongSide] = 0
		}
	case EndgameKRKP:
		scale[md.StrongSide] = scaleKRKP(pos, md.StrongSide)
	case EndgameKRPKR:
		scale[md.StrongSide] = scaleKRPKR(pos, md.StrongSide)
	}
	return scale
}

// scaleKRKP scores the rook side's winning chances against a bare pawn: won in
// general, but a far-advanced pawn escorted by its king while the strong king
// is cut off is often only a draw.
func scaleKRKP(pos *board.Position, strong board.Color) int {
	weak := strong.Opponent()
	pawns := pos.PieceSquares(weak, board.Pawn)
	if len(pawns) == 0 {
		return 16
	}
	pawnSq := pawns[0]

	promSq := board.NewSquare(pawnSq.File(), board.Rank8)
	if weak == board.Black {
		promSq = board.NewSquare(pawnSq.File(), board.Rank1)
	}

	advanced := pawnSq.RelativeRank(weak) >= board.Rank6
	escorted := squareDistance(pos.KingSquare(weak), pawnSq) <= 1
	cutOff := squareDistance(pos.KingSquare(strong), promSq) > 3
	if advanced && escorted && cutOff {
		return 4
	}
	return 16
}

// scaleKRPKR scores a rook-and-pawn versus rook ending: with the defending
// king on the pawn's promotion square (or adjacent to it), the Philidor-style
// defenses hold and the ending is close to drawn.
func scaleKRPKR(pos *board.Position, strong board.Color) int {
	pawns := pos.PieceSquares(strong, board.Pawn)
	if len(pawns) == 0 {
		return 16
	}
	pawnSq := pawns[0]

	promSq := board.NewSquare(pawnSq.File(), board.Rank8)
	if strong == board.Black {
		promSq = board.NewSquare(pawnSq.File(), board.Rank1)
	}

	weakKing := pos.KingSquare(strong.Opponent())
	switch {
	case squareDistance(weakKing, promSq) <= 1:
		return 2
	case rayAhead(pawnSq, promSq, weakKing):
		return 4
	default:
		return 16
	}
}

// rayAhead reports whether sq lies on the file segment strictly between a pawn
// and its promotion square.
func rayAhead(pawnSq, promSq, sq board.Square) bool {
	if sq.File() != pawnSq.File() {
		return false
	}
	lo, hi := pawnSq.Rank(), promSq.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	return sq.Rank() > lo && sq.Rank() < hi
}

// ScaleKPK refines MaterialInfo's generic KPK scale by recognizing the
// textbook king-and-pawn draws: the defending king blocks the pawn's path
// one square ahead (pawn on its sixth rank or lower) or two squares ahead
// (pawn on its fifth rank or lower), or, against a rook pawn, stands on or
// next to the queening square. A defending king elsewhere that could still
// catch the pawn (the rule of the square) is not recognized. Deliberately coarse: it does not chase every side-to-move tempo
// distinction, only the positions a search would otherwise misplay outright.
func ScaleKPK(pos *board.Position, strong board.Color) bool {
	weak := strong.Opponent()
	var pawnSq board.Square
	found := false
	for _, sq := range pos.PieceSquares(strong, board.Pawn) {
		pawnSq = sq
		found = true
		break
	}
	if !found {
		return false
	}

	wk := pos.KingSquare(weak)
	sk := pos.KingSquare(strong)
	push := 16
	if strong == board.Black {
		push = -16
	}
	ahead1 := board.Square(int(pawnSq) + push)
	ahead2 := board.Square(int(pawnSq) + 2*push)

	if ahead1.IsValid() && wk == ahead1 && pawnSq.RelativeRank(strong) <= board.Rank6 {
		return true
	}
	if ahead2.IsValid() && wk == ahead2 && pawnSq.RelativeRank(strong) <= board.Rank5 {
		return true
	}

	if pawnSq.File() == board.FileA || pawnSq.File() == board.FileH {
		promSq := board.NewSquare(pawnSq.File(), board.Rank8)
		if strong == board.Black {
			promSq = board.NewSquare(pawnSq.File(), board.Rank1)
		}
		if squareDistance(wk, promSq) <= 1 {
			return true
		}
	}
	_ = sk
	return false
}
