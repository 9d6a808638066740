package eval

import "github.com/herohde/daydreamer/pkg/board"

// mobilityScore is indexed [midgame=0/endgame=1][piece][squareCount]: a piece
// with few squares to move to is penalized, one with many is rewarded, with rooks and queens
// valuing mobility a bit more in the endgame than the midgame.
var mobilityScore = [2][board.NumPieces][]int{
	0: {
		board.Knight: {-8, -4, 0, 4, 8, 12, 16, 18, 20},
		board.Bishop: {-15, -10, -5, 0, 5, 10, 15, 20, 25, 30, 35, 40, 40, 40, 40, 40},
		board.Rook:   {-10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20},
		board.Queen: {
			-20, -19, -18, -17, -16, -15, -14, -13, -12, -11, -10, -9, -8, -7,
			-6, -5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
		},
	},
	1: {
		board.Knight: {-8, -4, 0, 4, 8, 12, 16, 18, 20},
		board.Bishop: {-15, -10, -5, 0, 5, 10, 15, 20, 25, 30, 35, 40, 40, 40, 40, 40},
		board.Rook:   {-10, -6, -2, 2, 6, 10, 14, 18, 22, 26, 30, 34, 38, 42, 46, 50},
		board.Queen: {
			-20, -18, -16, -14, -12, -10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10, 12,
			14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36, 38, 40, 42,
		},
	},
}

// imbalanceTable rewards/penalizes a side for having more majors or minors
// than the opponent, clamped symmetrically. Indexed
// [majorsDiff+4][minorsDiff+4], each clamped to [0,8].
var imbalanceTable = [9][9]int{
	{-126, -126, -126, -126, -126, -126, -126, -126, -42},
	{-126, -126, -126, -126, -126, -126, -126, -42, 42},
	{-126, -126, -126, -126, -126, -126, -42, 42, 84},
	{-126, -126, -126, -126, -104, -42, 42, 84, 126},
	{-126, -126, -126, -88, 0, 88, 126, 126, 126},
	{-126, -84, -42, 42, 104, 126, 126, 126, 126},
	{-84, -42, 42, 126, 126, 126, 126, 126, 126},
	{-42, 42, 126, 126, 126, 126, 126, 126, 126},
	{42, 126, 126, 126, 126, 126, 126, 126, 126},
}

const trappedBishopPenalty = 150

var rookOn7th = [2]int{20, 40} // midgame, endgame

// bishopDirs/rookDirs mirror board's own unexported bishopSteps/rookSteps
// (0x88 ray deltas); duplicated here since that package does not export them.
var (
	bishopDirs = [4]int{-17, -15, 15, 17}
	rookDirs   = [4]int{-16, -1, 1, 16}
)

// MobilityInfo holds the mobility+pattern term of the evaluation, split into
// midgame/endgame so it can participate in the phase blend. Never cached: it
// depends on the full board, not just pawns or material counts.
type MobilityInfo struct {
	Midgame, Endgame [board.NumColors]Pawns
}

// ComputeMobility counts, for every knight/bishop/rook/queen, how many
// squares it could move to (a square held by a friendly knight, bishop, rook
// or queen counts too, see mobileWeight), adds trapped-bishop and
// rook-on-7th pattern bonuses, and an imbalance term based on the
// major/minor piece count difference.
func ComputeMobility(pos *board.Position) MobilityInfo {
	var info MobilityInfo
	var majors, minors [board.NumColors]int
	var pattern [board.NumColors]int

	for _, side := range [2]board.Color{board.White, board.Black} {
		for p := board.Knight; p <= board.Queen; p++ {
			for _, from := range pos.PieceSquares(side, p) {
				ps := mobilitySquares(pos, side, p, from)
				info.Midgame[side] += Pawns(mobilityScore[0][p][ps]) / 100
				info.Endgame[side] += Pawns(mobilityScore[1][p][ps]) / 100

				switch p {
				case board.Knight, board.Bishop:
					minors[side]++
				case board.Rook, board.Queen:
					majors[side]++
					if p == board.Queen {
						majors[side]++ // queen counts double, as in the reference table
					}
				}
				if p == board.Bishop && ps < 4 {
					if trapped := isTrappedBishop(pos, side, from); trapped {
						pattern[side] -= trappedBishopPenalty
					}
				}
				if (p == board.Rook || p == board.Queen) && from.RelativeRank(side) == board.Rank7 {
					if p == board.Queen {
						info.Midgame[side] += Pawns(rookOn7th[0]/2) / 100
						info.Endgame[side] += Pawns(rookOn7th[1]/2) / 100
					} else {
						info.Midgame[side] += Pawns(rookOn7th[0]) / 100
						info.Endgame[side] += Pawns(rookOn7th[1]) / 100
					}
				}
			}
		}
	}

	imb := imbalanceTable[clamp(majors[board.White]-majors[board.Black]+4, 0, 8)][clamp(minors[board.White]-minors[board.Black]+4, 0, 8)]
	for c := board.ZeroColor; c < board.NumColors; c++ {
		info.Midgame[c] += Pawns(pattern[c]) / 100
		info.Endgame[c] += Pawns(pattern[c]) / 100
	}
	info.Midgame[board.White] += Pawns(imb) / 100
	info.Endgame[board.White] += Pawns(imb) / 100
	return info
}

// mobilitySquares counts destination squares reachable by the piece: every
// empty square along a ray or jump counts, and the square that ends it counts
// as mobileWeight decides (enemy-occupied counts, a friendly pawn or king does
// not, any other friendly piece does, off-board never counts).
func mobilitySquares(pos *board.Position, side board.Color, p board.Piece, from board.Square) int {
	ps := 0
	switch p {
	case board.Knight:
		for _, d := range [8]int{-33, -31, -18, -14, 14, 18, 31, 33} {
			ps += mobileWeight(pos, side, board.Square(int(from)+d))
		}
	case board.Bishop:
		for _, d := range bishopDirs {
			ps += slideMobility(pos, side, from, d)
		}
	case board.Rook:
		for _, d := range rookDirs {
			ps += slideMobility(pos, side, from, d)
		}
	case board.Queen:
		for _, d := range bishopDirs {
			ps += slideMobility(pos, side, from, d)
		}
		for _, d := range rookDirs {
			ps += slideMobility(pos, side, from, d)
		}
	}
	if ps >= 32 {
		ps = 31
	}
	return ps
}

func slideMobility(pos *board.Position, side board.Color, from board.Square, step int) int {
	ps := 0
	to := board.Square(int(from) + step)
	for to.IsValid() && pos.IsEmpty(to) {
		ps++
		to = board.Square(int(to) + step)
	}
	ps += mobileWeight(pos, side, to)
	return ps
}

// mobileWeight reports whether the square at the end of a ray/jump counts
// towards mobility: off-board never does; empty or enemy-occupied always
// does; a square held by a friendly pawn or king does not, while one held by
// any other friendly piece counts in full.
func mobileWeight(pos *board.Position, side board.Color, sq board.Square) int {
	if !sq.IsValid() {
		return 0
	}
	c, p, ok := pos.Square(sq)
	if !ok {
		return 1
	}
	if c != side {
		return 1
	}
	switch p {
	case board.Pawn, board.King:
		return 0
	default:
		return 1
	}
}

func isTrappedBishop(pos *board.Position, side board.Color, from board.Square) bool {
	opp := side.Opponent()
	check := func(blockerSq board.Square) bool {
		c, p, ok := pos.Square(blockerSq)
		return ok && p == board.Pawn && c == opp
	}
	if side == board.White {
		switch from {
		case board.A7:
			return check(board.B6)
		case board.B8:
			return check(board.C7)
		case board.H7:
			return check(board.G6)
		case board.G8:
			return check(board.F7)
		}
	} else {
		switch from {
		case board.A2:
			return check(board.B3)
		case board.B1:
			return check(board.C2)
		case board.H2:
			return check(board.G3)
		case board.G1:
			return check(board.F2)
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
