package board

// materialValue holds the nominal centipawn value of each piece type, used to
// maintain Position's incremental material score. The king has no material value:
// it is never captured and is tracked separately.
var materialValue = [NumPieces]Score{
	NoPiece: 0,
	Pawn:    100,
	Knight:  320,
	Bishop:  330,
	Rook:    500,
	Queen:   900,
	King:    0,
}

// MaterialValue returns the nominal centipawn value of a piece type.
func MaterialValue(p Piece) Score {
	return materialValue[p]
}

// pieceSquareTable holds White-relative piece-square bonuses in centipawns, indexed
// by square-file/rank (A1 at index 0). Black's bonus for the same piece is read via
// Square.FlipRank, so only one table per piece is needed. Values favor central
// control and development and are deliberately modest relative to material.
var pieceSquareTable = [NumPieces][64]Score{
	Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// PieceSquareValue returns the incremental piece-square bonus for a piece of the
// given color on the given square.
func PieceSquareValue(c Color, p Piece, sq Square) Score {
	rel := sq
	if c == Black {
		rel = sq.FlipRank()
	}
	return pieceSquareTable[p][8*int(rel.Rank())+int(rel.File())]
}

// endgamePieceSquareTable holds the endgame-phase piece-square bonuses. Every
// piece but the king shares its midgame table; the king's differs sharply: it wants to centralize once there is
// no attack to shelter from, rather than huddle in a castled corner.
var endgamePieceSquareTable = [64]Score{
	-50, -30, -30, -20, -20, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// endgamePieceSquareValue returns the incremental endgame-phase piece-square
// bonus for a piece of the given color on the given square.
func endgamePieceSquareValue(c Color, p Piece, sq Square) Score {
	if p != King {
		return PieceSquareValue(c, p, sq)
	}
	rel := sq
	if c == Black {
		rel = sq.FlipRank()
	}
	return endgamePieceSquareTable[8*int(rel.Rank())+int(rel.File())]
}
