package eval

import "github.com/herohde/daydreamer/pkg/board"

// Pin represents a pinned piece. A pinned piece cannot attack anything but
// the attacker itself, if the relative value of attacker/target is high enough.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// FindPins returns all pins targeting the given piece: a friendly piece standing
// between the target and an enemy slider, along a shared rank/file/diagonal, with
// no other piece in between.
func FindPins(pos *board.Position, side board.Color, piece board.Piece) []Pin {
	var ret []Pin

	for _, target := range pos.PieceSquares(side, piece) {
		ret = append(ret, findPinsAlong(pos, side, target, rookDirs, board.Rook)...)
		ret = append(ret, findPinsAlong(pos, side, target, bishopDirs, board.Bishop)...)
	}
	return ret
}

func findPinsAlong(pos *board.Position, side board.Color, target board.Square, dirs [4]int, slider board.Piece) []Pin {
	var ret []Pin

	for _, d := range dirs {
		pinned, ok := firstOccupied(pos, target, d)
		if !ok {
			continue
		}
		pinnedColor, _, _ := pos.Square(pinned)
		if pinnedColor != side {
			continue
		}

		attacker, ok := firstOccupied(pos, pinned, d)
		if !ok {
			continue
		}
		attackerColor, attackerPiece, _ := pos.Square(attacker)
		if attackerColor != side.Opponent() || (attackerPiece != slider && attackerPiece != board.Queen) {
			continue
		}

		ret = append(ret, Pin{Attacker: attacker, Pinned: pinned, Target: target})
	}
	return ret
}

// firstOccupied walks from sq along step and returns the first occupied square, if any.
func firstOccupied(pos *board.Position, sq board.Square, step int) (board.Square, bool) {
	cur := board.Square(int(sq) + step)
	for cur.IsValid() {
		if !pos.IsEmpty(cur) {
			return cur, true
		}
		cur = board.Square(int(cur) + step)
	}
	return 0, false
}
