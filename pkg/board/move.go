package board

import (
	"fmt"
	"strings"
)

// MoveType indicates the type of move. The no-progress (50-move) counter resets
// on pawn moves and captures only.
type MoveType uint8

const (
	Normal    MoveType = iota
	Push               // Pawn single-square move
	Jump               // Pawn 2-square move
	EnPassant          // Implicitly a pawn capture
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Push:
		return "push"
	case Jump:
		return "jump"
	case EnPassant:
		return "enpassant"
	case QueenSideCastle:
		return "O-O-O"
	case KingSideCastle:
		return "O-O"
	case Capture:
		return "capture"
	case Promotion:
		return "promotion"
	case CapturePromotion:
		return "capture-promotion"
	default:
		return "unknown"
	}
}

func (t MoveType) IsCastle() bool {
	return t == QueenSideCastle || t == KingSideCastle
}

func (t MoveType) IsCapture() bool {
	return t == Capture || t == CapturePromotion || t == EnPassant
}

func (t MoveType) IsPromotion() bool {
	return t == Promotion || t == CapturePromotion
}

// Move represents a not-necessarily-legal move along with the metadata needed to
// undo it without re-deriving it from the position: type, captured piece and,
// for pawn double pushes, nothing extra is needed since the en passant target is
// recomputed from To. 48 bits.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // moving piece
	Promotion Piece // desired piece for promotion, if any
	Capture   Piece // captured piece, if any
}

// NoMove is the zero Move and never a legal move (From==To==A1).
var NoMove = Move{}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move does not contain contextual information like castling or en passant;
// callers must reconcile it against a position's generated moves (see Move.Equals).
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}

	return Move{From: from, To: to}, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) IsZero() bool {
	return m.From == m.To
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// FormatMoves formats a move sequence, space-separated, using the given formatter.
func FormatMoves(moves []Move, fn func(Move) string) string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = fn(m)
	}
	return strings.Join(strs, " ")
}

// PrintMoves formats a move sequence in pure algebraic coordinate notation, space-separated.
func PrintMoves(moves []Move) string {
	return FormatMoves(moves, Move.String)
}

// ByMVVLVA sorts moves most-valuable-victim/least-valuable-attacker first, a cheap
// capture-ordering heuristic: a move's priority is its nominal material gain, pennies
// deducted for the value of the piece giving up the capture.
type ByMVVLVA []Move

func (l ByMVVLVA) Len() int      { return len(l) }
func (l ByMVVLVA) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ByMVVLVA) Less(i, j int) bool {
	return mvvlvaRank(l[i]) > mvvlvaRank(l[j])
}

func mvvlvaRank(m Move) int {
	if !m.Type.IsCapture() {
		return 0
	}
	return 10*int(MaterialValue(m.Capture)) - int(MaterialValue(m.Piece))
}
