package eval

import "github.com/herohde/daydreamer/pkg/board"

// shieldValue scores a piece standing in a king-shield square by piece type:
// own pawns are worth the most, anything else (including enemy pieces)
// contributes little or nothing.
func shieldValue(pos *board.Position, side board.Color, sq board.Square) int {
	if !sq.IsValid() {
		return 0
	}
	c, p, ok := pos.Square(sq)
	if !ok || c != side {
		return 0
	}
	switch p {
	case board.Pawn:
		return 8
	case board.Knight, board.Bishop:
		return 2
	case board.Rook, board.Queen:
		return 1
	default:
		return 0
	}
}

// kingAttackScore weights an attacking piece type by how dangerous it is next
// to the enemy king.
func kingAttackScore(p board.Piece) int {
	switch p {
	case board.Pawn:
		return 5
	case board.Knight, board.Bishop:
		return 20
	case board.Rook:
		return 40
	case board.Queen:
		return 80
	default:
		return 0
	}
}

// multipleAttackScale tames the attack score super-linearly with the number
// of distinct attackers, in 1024ths: one attacker alone rarely means
// anything, three or more usually do.
var multipleAttackScale = [16]int{
	0, 0, 512, 640, 896, 960, 1024, 1024,
	1024, 1024, 1024, 1024, 1024, 1024, 1024, 1024,
}

// shieldScore scores the pawn (and piece) shield in front of a king standing
// on sq, weighting squares closer to the king more heavily.
func shieldScore(pos *board.Position, side board.Color, king board.Square) int {
	push := 16
	if side == board.Black {
		push = -16
	}
	s := 0
	s += shieldValue(pos, side, board.Square(int(king)-1)) * 2
	s += shieldValue(pos, side, board.Square(int(king)+1)) * 2
	s += shieldValue(pos, side, board.Square(int(king)+push-1)) * 4
	s += shieldValue(pos, side, board.Square(int(king)+push)) * 6
	s += shieldValue(pos, side, board.Square(int(king)+push+1)) * 4
	s += shieldValue(pos, side, board.Square(int(king)+2*push-1))
	s += shieldValue(pos, side, board.Square(int(king)+2*push)) * 2
	s += shieldValue(pos, side, board.Square(int(king)+2*push+1))
	return s
}

// kingShieldScore takes the best of the shield as it stands now and the
// shield the king would have after castling either way it still can: a king
// that hasn't castled yet still gets credit for the shelter it is about to
// walk into.
func kingShieldScore(pos *board.Position, side board.Color) Pawns {
	king := pos.KingSquare(side)
	score := shieldScore(pos, side, king)
	best := score

	rank := board.Rank1
	if side == board.Black {
		rank = board.Rank8
	}
	if pos.Castling().IsAllowed(kingSideRight(side)) {
		if s := shieldScore(pos, side, board.NewSquare(board.FileG, rank)); s > best {
			best = s
		}
	}
	if pos.Castling().IsAllowed(queenSideRight(side)) {
		if s := shieldScore(pos, side, board.NewSquare(board.FileC, rank)); s > best {
			best = s
		}
	}
	return Pawns(best) / 100
}

func kingSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteKingSideCastle
	}
	return board.BlackKingSideCastle
}

func queenSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteQueenSideCastle
	}
	return board.BlackQueenSideCastle
}

// KingSafetyScore combines the pawn-shield score with an attack score
// proportional to the number and type of the side's pieces that attack a
// square adjacent to the opposing king, scaled super-linearly by attacker
// count. Only computed while the side still has its queen: a queenless attack
// rarely mates, and skipping it saves the attacker scan.
func KingSafetyScore(pos *board.Position, side board.Color) Pawns {
	shield := kingShieldScore(pos, side)
	if pos.PieceCount(side, board.Queen) == 0 {
		return shield
	}

	oppKing := pos.KingSquare(side.Opponent())
	attackers := 0
	score := 0
	for p := board.Knight; p <= board.Queen; p++ {
		for _, sq := range pos.PieceSquares(side, p) {
			if attacksNear(sq, oppKing) {
				score += kingAttackScore(p)
				attackers++
			}
		}
	}
	if attackers > 15 {
		attackers = 15
	}
	scaled := score * multipleAttackScale[attackers] / 1024
	return shield + Pawns(scaled)/100
}

// attacksNear reports whether a piece on sq could plausibly threaten a square
// adjacent to king: within king-move distance of it (an overapproximation
// used only for counting attackers on the king zone, not for legality).
func attacksNear(sq, king board.Square) bool {
	df := int(sq.File()) - int(king.File())
	dr := int(sq.Rank()) - int(king.Rank())
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df <= 2 && dr <= 2
}
