package board

// attackData captures, for a given (from-to) square delta, which piece types could
// possibly attack along that line and the ray step to slide along it (0 if the
// relationship is a single jump, as with knights, not a slide).
type attackData struct {
	attackers Flag
	step      int8
}

// attackTable is indexed by to-from+128, covering the full range of deltas between
// any two squares of a 0x88 board (including off-board deltas, which are simply
// never looked up). Built once at package init by walking every real square pair.
var attackTable [256]attackData

// knightDeltas, kingDeltas and bishop/rook step directions, expressed in 0x88 deltas.
var (
	knightDeltas = [8]int{-33, -31, -18, -14, 14, 18, 31, 33}
	kingDeltas   = [8]int{-17, -16, -15, -1, 1, 15, 16, 17}
	bishopSteps  = [4]int{-17, -15, 15, 17}
	rookSteps    = [4]int{-16, -1, 1, 16}
)

func init() {
	for from := Square(0); from < 128; from++ {
		if !from.IsValid() {
			continue
		}
		for to := Square(0); to < 128; to++ {
			if !to.IsValid() || from == to {
				continue
			}

			df := int(to.File()) - int(from.File())
			dr := int(to.Rank()) - int(from.Rank())
			delta := int(to) - int(from)

			var flags Flag
			var step int8

			switch {
			case df == 0 && dr != 0:
				flags |= RookFlag | QueenFlag
				step = sign(dr) * 16
			case dr == 0 && df != 0:
				flags |= RookFlag | QueenFlag
				step = sign(df)
			case absInt(df) == absInt(dr):
				flags |= BishopFlag | QueenFlag
				step = int8(sign(dr)*16 + sign(df))
			}

			if absInt(df) <= 1 && absInt(dr) <= 1 {
				flags |= KingFlag
				if dr == 1 {
					flags |= WPawnFlag
				}
				if dr == -1 {
					flags |= BPawnFlag
				}
				if df == 0 {
					flags &^= WPawnFlag | BPawnFlag // pawns never attack straight ahead
				}
			}
			if isKnightDelta(df, dr) {
				flags |= KnightFlag
			}

			attackTable[delta+128] = attackData{attackers: flags, step: step}
		}
	}
}

func isKnightDelta(df, dr int) bool {
	a, b := absInt(df), absInt(dr)
	return (a == 1 && b == 2) || (a == 2 && b == 1)
}

func sign(v int) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PossibleAttackers returns the set of piece-type flags that could attack the "to"
// square from the "from" square, ignoring blockers.
func PossibleAttackers(from, to Square) Flag {
	return attackTable[int(to)-int(from)+128].attackers
}

// RayStep returns the step to walk from "from" towards "to" along a shared
// rank/file/diagonal, or 0 if the squares share none (e.g. a knight jump).
func RayStep(from, to Square) int8 {
	return attackTable[int(to)-int(from)+128].step
}
