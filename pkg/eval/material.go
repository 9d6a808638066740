package eval

import "github.com/herohde/daydreamer/pkg/board"

// EndgameType tags a material signature that a dedicated endgame recognizer or
// scaler knows how to handle specially; classification happens once per
// material signature and is cached. ScaleEndgame and ScoreEndgame dispatch on
// this tag.
type EndgameType uint8

const (
	EndgameNone EndgameType = iota
	EndgameDraw             // no mating material for either side
	EndgameKPK              // king and one pawn vs king
	EndgameKBNK             // king, bishop and knight vs king
	EndgameKRKP             // king and rook vs king and pawn
	EndgameKRPKR            // king, rook and pawn vs king and rook
)

// MaterialInfo is the cached result of classifying a position's material
// signature: pair/imbalance bonuses, the recognized endgame tag (if any) and
// per-side scale factors in [0,16] applied to the final blended score. Two
// Pawns fields (midgame, endgame) let the pair/imbalance bonus participate in
// the phase blend.
type MaterialInfo struct {
	Midgame, Endgame Pawns
	EndgameTag       EndgameType
	StrongSide       board.Color
	Scale            [board.NumColors]int // applied as scale/16 to the blended score of that side
}

// ComputeMaterialInfo classifies the position's material signature: bishop/
// rook/queen pair bonuses, a pawn-count based piece-value adjustment (knights
// like pawns, rooks prefer open positions), and recognized endgame
// combinations with their scale factor.
func ComputeMaterialInfo(pos *board.Position) MaterialInfo {
	var md MaterialInfo
	md.Scale = [board.NumColors]int{16, 16}

	wp := pos.PieceCount(board.White, board.Pawn)
	bp := pos.PieceCount(board.Black, board.Pawn)
	wn := pos.PieceCount(board.White, board.Knight)
	bn := pos.PieceCount(board.Black, board.Knight)
	wb := pos.PieceCount(board.White, board.Bishop)
	bb := pos.PieceCount(board.Black, board.Bishop)
	wr := pos.PieceCount(board.White, board.Rook)
	br := pos.PieceCount(board.Black, board.Rook)
	wq := pos.PieceCount(board.White, board.Queen)
	bq := pos.PieceCount(board.Black, board.Queen)

	wMajor, bMajor := 2*wq+wr, 2*bq+br
	wMinor, bMinor := wn+wb, bn+bb
	wPiece, bPiece := 2*wMajor+wMinor, 2*bMajor+bMinor
	wAll, bAll := wq+wr+wb+wn+wp, bq+br+bb+bn+bp

	// Pair bonuses: two bishops complement each other's color weakness; a
	// second rook or queen is worth less than the first of its kind.
	if wb > 1 {
		md.Midgame += 0.30
		md.Endgame += 0.45
	}
	if bb > 1 {
		md.Midgame -= 0.30
		md.Endgame -= 0.45
	}
	if wr > 1 {
		md.Midgame -= 0.12
		md.Endgame -= 0.17
	}
	if br > 1 {
		md.Midgame += 0.12
		md.Endgame += 0.17
	}
	if wq > 1 {
		md.Midgame -= 0.08
		md.Endgame -= 0.12
	}
	if bq > 1 {
		md.Midgame += 0.08
		md.Endgame += 0.12
	}

	// Pawn-count adjustment: knights improve with more pawns on the board
	// (fewer open lines to exploit), rooks the opposite.
	adjust := Pawns(0)
	adjust += Pawns(wn) * 0.03 * Pawns(wp-4)
	adjust -= Pawns(bn) * 0.03 * Pawns(bp-4)
	adjust += Pawns(wb) * 0.02 * Pawns(wp-4)
	adjust -= Pawns(bb) * 0.02 * Pawns(bp-4)
	adjust -= Pawns(wr) * 0.03 * Pawns(wp-4)
	adjust += Pawns(br) * 0.03 * Pawns(bp-4)
	md.Midgame += adjust
	md.Endgame += adjust

	switch {
	case wAll+bAll == 0:
		md.EndgameTag = EndgameDraw
	case wAll+bAll == 1:
		switch {
		case wp > 0:
			md.EndgameTag, md.StrongSide = EndgameKPK, board.White
		case bp > 0:
			md.EndgameTag, md.StrongSide = EndgameKPK, board.Black
		case wq == 0 && wr == 0 && bq == 0 && br == 0:
			md.EndgameTag = EndgameDraw
		}
	case wAll == 1 && bAll == 1:
		switch {
		case wr == 1 && bp == 1:
			md.EndgameTag, md.StrongSide = EndgameKRKP, board.White
		case br == 1 && wp == 1:
			md.EndgameTag, md.StrongSide = EndgameKRKP, board.Black
		}
	case wAll+bAll == 3:
		switch {
		case wr == 1 && br == 1 && wp == 1:
			md.EndgameTag, md.StrongSide = EndgameKRPKR, board.White
		case wr == 1 && br == 1 && bp == 1:
			md.EndgameTag, md.StrongSide = EndgameKRPKR, board.Black
		}
	}
	// KBNK needs exactly king+bishop+knight vs bare king: wAll==2 (n+b), bAll==0.
	if wn == 1 && wb == 1 && wAll == 2 && bAll == 0 {
		md.EndgameTag, md.StrongSide = EndgameKBNK, board.White
	} else if bn == 1 && bb == 1 && bAll == 2 && wAll == 0 {
		md.EndgameTag, md.StrongSide = EndgameKBNK, board.Black
	}

	if md.EndgameTag == EndgameDraw {
		md.Scale[board.White], md.Scale[board.Black] = 0, 0
		return md
	}

	md.Scale[board.White] = scaleFor(wp, wMajor, wPiece, wn, bp, bMajor, bPiece, bn, bb, br, bMinor)
	md.Scale[board.Black] = scaleFor(bp, bMajor, bPiece, bn, wp, wMajor, wPiece, wn, wb, wr, wMinor)
	return md
}

// scaleFor computes the drawishness scale in [0,16] for one side: no pawns
// and too little force to mate scales to 0 (or 1 for two bare knights); a
// single remaining pawn against a stronger opposing force scales down too,
// since lone-pawn endings are often holdable.
func scaleFor(ownPawns, ownMajor, ownPiece, ownKnights, oppPawns, oppMajor, oppPiece, oppKnights, oppBishops, oppRooks, oppMinor int) int {
	scale := 16
	switch {
	case ownPawns == 0:
		switch {
		case ownPiece == 1:
			scale = 0
		case ownPiece == 2 && ownKnights == 2:
			if oppPiece != 0 || oppPawns == 0 {
				scale = 0
			} else {
				scale = 1
			}
		case ownPiece-oppPiece <= 1 && ownMajor <= 2:
			scale = 2
		}
	case ownPawns == 1:
		switch {
		case oppMinor != 0:
			switch {
			case ownPiece == 1, ownPiece == 2 && ownKnights == 2:
				scale = 4
			case ownPiece-oppPiece <= 2 && ownMajor <= 2:
				scale = 8
			}
		case oppRooks > 0:
			switch {
			case ownPiece == 1, ownPiece == 2 && ownKnights == 2:
				scale = 4
			case ownPiece-oppPiece <= -1 && ownMajor <= 2:
				scale = 8
			}
		}
	}
	return scale
}

// MaterialTable is a direct-mapped, non-authoritative cache of MaterialInfo
// keyed by Position.MaterialHash: a miss just recomputes, a collision just
// overwrites, so it never affects correctness -- only speed.
type MaterialTable struct {
	buckets []materialEntry
	mask    uint64
}

type materialEntry struct {
	key   board.ZobristHash
	valid bool
	info  MaterialInfo
}

// approxMaterialEntryBytes is an estimate of materialEntry's footprint, used
// only to size the table to a requested byte budget.
const approxMaterialEntryBytes = 48

// NewMaterialTable creates a table sized to the next lower power of two of
// maxBytes, with a floor of one bucket.
func NewMaterialTable(maxBytes int) *MaterialTable {
	n := 1
	for (n * 2) * approxMaterialEntryBytes <= maxBytes {
		n *= 2
	}
	return &MaterialTable{buckets: make([]materialEntry, n), mask: uint64(n - 1)}
}

// Get returns the cached (or freshly computed and cached) MaterialInfo for pos.
func (t *MaterialTable) Get(pos *board.Position) MaterialInfo {
	key := pos.MaterialHash()
	idx := uint64(key) & t.mask
	e := &t.buckets[idx]
	if e.valid && e.key == key {
		return e.info
	}
	info := ComputeMaterialInfo(pos)
	*e = materialEntry{key: key, valid: true, info: info}
	return info
}

// Clear wipes the table, e.g. on ucinewgame.
func (t *MaterialTable) Clear() {
	for i := range t.buckets {
		t.buckets[i] = materialEntry{}
	}
}
