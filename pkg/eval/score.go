package eval

import (
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
)

// mateValue is the score magnitude assigned to an immediate checkmate. Scores
// within mateDistanceWindow of it encode
// how many ply away the mate is, so they can be adjusted by one as they propagate
// up the search tree and compared against shallower mates.
const mateValue int32 = 32000

// mateDistanceWindow bounds how far below mateValue a score still counts as a
// mate score, well beyond any realistic search depth.
const mateDistanceWindow int32 = 1000

// Score is a signed search score in centipawns, positive favors the side to
// move. It carries two extra bits of information beyond a plain number: whether
// it represents a forced mate (and at what distance) and an explicit invalid
// sentinel distinct from any real value, returned when a search is cancelled
// mid-flight. The zero Score is the invalid sentinel, so an unset score is
// never mistaken for an exact 0.00 evaluation.
type Score struct {
	cp      int32
	defined bool
}

var (
	ZeroScore    = Score{defined: true}
	InfScore     = Score{cp: mateValue + 1, defined: true}
	NegInfScore  = Score{cp: -(mateValue + 1), defined: true}
	InvalidScore = Score{}
)

// HeuristicScore converts a static evaluation, in pawns, into a search Score.
func HeuristicScore(p Pawns) Score {
	return Score{cp: int32(p * 100), defined: true}
}

// MateInXScore is the score for delivering checkmate in x ply.
func MateInXScore(x int) Score {
	return Score{cp: mateValue - int32(x), defined: true}
}

// MatedInXScore is the score for being checkmated in x ply.
func MatedInXScore(x int) Score {
	return Score{cp: -mateValue + int32(x), defined: true}
}

func (s Score) IsInvalid() bool {
	return !s.defined
}

// CP returns the raw score in centipawns, from the mover's perspective. For a
// mate score, this is still a large magnitude value near mateValue; callers
// that want ply-to-mate should use MateDistance instead.
func (s Score) CP() int32 {
	return s.cp
}

// MateDistance returns the number of ply to mate, and true, iff the score
// represents a forced mate for the side it favors.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s.cp > mateValue-mateDistanceWindow:
		return int(mateValue - s.cp), true
	case s.cp < -(mateValue - mateDistanceWindow):
		return int(mateValue + s.cp), true
	default:
		return 0, false
	}
}

// Negate flips the score to the opponent's perspective.
func (s Score) Negate() Score {
	if !s.defined {
		return s
	}
	return Score{cp: -s.cp, defined: true}
}

// Less reports whether s is strictly worse than o, for the same side.
func (s Score) Less(o Score) bool {
	return s.cp < o.cp
}

// Dec returns the score one centipawn worse, used to build a null window
// [s-1;s] for a scout search.
func (s Score) Dec() Score {
	if !s.defined {
		return s
	}
	return Score{cp: s.cp - 1, defined: true}
}

// Max returns the larger (better) of two scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smaller (worse) of two scores.
func Min(a, b Score) Score {
	if b.Less(a) {
		return b
	}
	return a
}

// IncrementMateDistance adjusts a mate score by one ply as it propagates up the
// search tree towards the root: a mate one ply further away is one ply "worse"
// in magnitude. Non-mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case !s.defined:
		return s
	case s.cp > mateValue-mateDistanceWindow:
		return Score{cp: s.cp - 1, defined: true}
	case s.cp < -(mateValue - mateDistanceWindow):
		return Score{cp: s.cp + 1, defined: true}
	default:
		return s
	}
}

func (s Score) String() string {
	switch {
	case !s.defined:
		return "invalid"
	case s.cp > mateValue-mateDistanceWindow:
		return fmt.Sprintf("mate%d", mateValue-s.cp)
	case s.cp < -(mateValue - mateDistanceWindow):
		return fmt.Sprintf("-mate%d", mateValue+s.cp)
	default:
		return fmt.Sprintf("%.2f", float64(s.cp)/100)
	}
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Pawns {
	if c == board.White {
		return 1
	}
	return -1
}
