package eval

import "github.com/herohde/daydreamer/pkg/board"

// isolationPenalty, doubledPenalty, passedBonus, candidateBonus and
// backwardPenalty are indexed [midgame=0/endgame=1][file or relative rank],
// in centipawns, converted to Pawns at use.
var (
	isolationPenalty = [2][8]int{
		{10, 10, 10, 15, 15, 10, 10, 10},
		{20, 20, 20, 20, 20, 20, 20, 20},
	}
	doubledPenalty = [2][8]int{
		{5, 10, 15, 20, 20, 15, 10, 5},
		{20, 20, 20, 20, 20, 20, 20, 20},
	}
	passedBonus = [2][8]int{
		{0, 5, 10, 20, 60, 120, 200, 0},
		{0, 10, 20, 25, 50, 90, 125, 0},
	}
	candidateBonus = [2][8]int{
		{0, 5, 5, 10, 20, 30, 0, 0},
		{0, 5, 10, 20, 45, 70, 0, 0},
	}
	backwardPenalty = [2][8]int{
		{5, 10, 10, 15, 15, 10, 10, 5},
		{20, 20, 20, 20, 20, 20, 20, 20},
	}
	connectedBonus = [2]int{10, 20}

	unstoppablePasserBonus = [8]int{0, 500, 525, 550, 575, 600, 650, 0}
	advanceablePasserBonus = [8]int{0, 20, 25, 30, 35, 40, 80, 0}
)

// PawnInfo is the cached result of analyzing one side's pawn structure:
// isolated/doubled/backward/connected/passed bonuses and penalties (in a
// midgame,endgame pair), plus the list of passed-pawn squares so the
// advancement bonus -- which depends on non-pawn pieces, so cannot be cached
// -- can be layered on top outside the cache.
type PawnInfo struct {
	Midgame, Endgame [board.NumColors]Pawns
	Passed           [board.NumColors][]board.Square
}

// AnalyzePawns computes pawn structure bonuses/penalties for both sides. Pure
// function of pawn placement: never consults non-pawn pieces.
func AnalyzePawns(pos *board.Position) PawnInfo {
	var pd PawnInfo

	for _, side := range [2]board.Color{board.White, board.Black} {
		push := 1
		if side == board.Black {
			push = -1
		}
		opp := side.Opponent()

		defects := 0
		for _, sq := range pos.PieceSquares(side, board.Pawn) {
			file := int(sq.File())
			rank := int(sq.RelativeRank(side))

			passed, blockers := scanAhead(pos, sq, push, opp)
			switch {
			case passed:
				pd.Passed[side] = append(pd.Passed[side], sq)
				pd.Midgame[side] += Pawns(passedBonus[0][rank]) / 100
				pd.Endgame[side] += Pawns(passedBonus[1][rank]) / 100
			case blockers < 2:
				pd.Midgame[side] += Pawns(candidateBonus[0][rank]) / 100
				pd.Endgame[side] += Pawns(candidateBonus[1][rank]) / 100
			}

			isolated := isIsolated(pos, side, file)
			if isolated {
				pd.Midgame[side] -= Pawns(isolationPenalty[0][file]) / 100
				pd.Endgame[side] -= Pawns(isolationPenalty[1][file]) / 100
				defects++
			}
			if isDoubled(pos, side, sq, push) {
				pd.Midgame[side] -= Pawns(doubledPenalty[0][file]) / 100
				pd.Endgame[side] -= Pawns(doubledPenalty[1][file]) / 100
				defects++
			}
			if isConnected(pos, side, sq, push) {
				pd.Midgame[side] += Pawns(connectedBonus[0]) / 100
				pd.Endgame[side] += Pawns(connectedBonus[1]) / 100
			}
			if !passed && !isolated && isBackward(pos, side, sq, push, opp) {
				pd.Midgame[side] -= Pawns(backwardPenalty[0][file]) / 100
				pd.Endgame[side] -= Pawns(backwardPenalty[1][file]) / 100
				defects++
			}
		}
		// Defects are counted per side but the cumulative weight is zero:
		// the individual penalties already cover the common cases.
		_ = defects
	}
	return pd
}

// scanAhead walks from sq towards promotion along push, returning whether the
// pawn is passed (no enemy pawn can ever stop it on its file or the two
// adjacent ones) and, if not, how many enemy pawns stand in a position to
// eventually block or capture it (a candidate passer has fewer than 2).
func scanAhead(pos *board.Position, sq board.Square, push int, opp board.Color) (passed bool, blockers int) {
	passed = true
	for to := board.Square(int(sq) + push*16); to.IsValid(); to = board.Square(int(to) + push*16) {
		if hasPawn(pos, opp, board.Square(int(to)-1)) || hasPawn(pos, opp, to) || hasPawn(pos, opp, board.Square(int(to)+1)) {
			passed = false
			break
		}
	}
	if passed {
		return true, 0
	}
	for to := board.Square(int(sq) + push*16); to.IsValid(); to = board.Square(int(to) + push*16) {
		if hasPawn(pos, opp, board.Square(int(to)-1)) {
			blockers++
		}
		if hasPawn(pos, opp, to) {
			blockers = 2
		}
		if hasPawn(pos, opp, board.Square(int(to)+1)) {
			blockers++
		}
	}
	return false, blockers
}

func isIsolated(pos *board.Position, side board.Color, file int) bool {
	for _, sq := range pos.PieceSquares(side, board.Pawn) {
		f := int(sq.File())
		if f == file-1 || f == file+1 {
			return false
		}
	}
	return true
}

func isDoubled(pos *board.Position, side board.Color, sq board.Square, push int) bool {
	for to := board.Square(int(sq) + push*16); to.IsValid(); to = board.Square(int(to) + push*16) {
		if hasPawn(pos, side, to) {
			return true
		}
	}
	return false
}

func isConnected(pos *board.Position, side board.Color, sq board.Square, push int) bool {
	left, right := board.Square(int(sq)-1), board.Square(int(sq)+1)
	if left.IsValid() && right.IsValid() && hasPawn(pos, side, left) && hasPawn(pos, side, right) {
		return true
	}
	fwdLeft := board.Square(int(sq) + push*16 - 1)
	fwdRight := board.Square(int(sq) + push*16 + 1)
	return (fwdLeft.IsValid() && hasPawn(pos, side, fwdLeft)) || (fwdRight.IsValid() && hasPawn(pos, side, fwdRight))
}

// isBackward reports whether the pawn can never be defended by a neighboring
// pawn and cannot safely advance: no friendly pawn sits even or behind on an
// adjacent file, and advancing one square would walk into an enemy pawn's
// capture range before a friendly pawn could catch up.
func isBackward(pos *board.Position, side board.Color, sq board.Square, push int, opp board.Color) bool {
	if hasPawn(pos, opp, board.Square(int(sq)+push*16-1)) || hasPawn(pos, opp, board.Square(int(sq)+push*16+1)) {
		return false
	}
	for to := sq; to.IsValid(); to = board.Square(int(to) - push*16) {
		if hasPawn(pos, side, board.Square(int(to)-1)) || hasPawn(pos, side, board.Square(int(to)+1)) {
			return false
		}
	}
	for to := board.Square(int(sq) + 2*push*16); to.IsValid(); to = board.Square(int(to) + push*16) {
		if hasPawn(pos, opp, board.Square(int(to)-1)) || hasPawn(pos, opp, board.Square(int(to)+1)) {
			break
		}
		if hasPawn(pos, side, board.Square(int(to)-1)) || hasPawn(pos, side, board.Square(int(to)+1)) {
			return false
		}
	}
	return true
}

func hasPawn(pos *board.Position, c board.Color, sq board.Square) bool {
	if !sq.IsValid() {
		return false
	}
	color, piece, ok := pos.Square(sq)
	return ok && piece == board.Pawn && color == c
}

// PasserAdvancementBonus adds the passed-pawn bonus that depends on non-pawn
// state (the opposing king's distance to the queening square when it alone
// remains, or a SEE check that the pawn can safely push) on top of the cached
// PawnInfo.
func PasserAdvancementBonus(pos *board.Position, pd PawnInfo, side board.Color) Pawns {
	var bonus Pawns
	for _, sq := range pd.Passed[side] {
		rank := int(sq.RelativeRank(side))
		opp := side.Opponent()
		if totalPieces(pos, opp) == 0 {
			promDist := 8 - rank
			if rank == 1 {
				promDist--
			}
			if pos.Turn() == side {
				promDist--
			}
			promSq := board.NewSquare(sq.File(), board.Rank8)
			if side == board.Black {
				promSq = board.NewSquare(sq.File(), board.Rank1)
			}
			if squareDistance(pos.KingSquare(opp), promSq) > promDist {
				bonus += Pawns(unstoppablePasserBonus[rank]) / 100
			}
			continue
		}

		push := 1
		if side == board.Black {
			push = -1
		}
		target := board.Square(int(sq) + push*16)
		if !target.IsValid() || !pos.IsEmpty(target) {
			continue
		}
		m := board.Move{From: sq, To: target, Piece: board.Pawn}
		if rank == 6 {
			m.Type = board.Promotion
			m.Promotion = board.Queen
		}
		if pos.StaticExchangeEval(m) < 0 {
			continue
		}
		bonus += Pawns(advanceablePasserBonus[rank]) / 100
	}
	return bonus
}

func totalPieces(pos *board.Position, c board.Color) int {
	total := 0
	for p := board.Pawn; p < board.King; p++ {
		total += pos.PieceCount(c, p)
	}
	return total
}

func squareDistance(a, b board.Square) int {
	df := int(a.File()) - int(b.File())
	dr := int(a.Rank()) - int(b.Rank())
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// PawnTable is a direct-mapped, non-authoritative cache of PawnInfo keyed by
// Position.PawnHash. Collisions overwrite; a miss just recomputes.
type PawnTable struct {
	buckets []pawnEntry
	mask    uint64
}

type pawnEntry struct {
	key   board.ZobristHash
	valid bool
	info  PawnInfo
}

const approxPawnEntryBytes = 96

func NewPawnTable(maxBytes int) *PawnTable {
	n := 1
	for (n * 2) * approxPawnEntryBytes <= maxBytes {
		n *= 2
	}
	return &PawnTable{buckets: make([]pawnEntry, n), mask: uint64(n - 1)}
}

func (t *PawnTable) Get(pos *board.Position) PawnInfo {
	key := pos.PawnHash()
	idx := uint64(key) & t.mask
	e := &t.buckets[idx]
	if e.valid && e.key == key {
		return e.info
	}
	info := AnalyzePawns(pos)
	*e = pawnEntry{key: key, valid: true, info: info}
	return info
}

func (t *PawnTable) Clear() {
	for i := range t.buckets {
		t.buckets[i] = pawnEntry{}
	}
}
