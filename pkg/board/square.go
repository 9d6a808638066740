package board

import "fmt"

// Square represents a square on the board in 0x88 encoding: the low nibble holds
// the file (0=A..7=H), the high nibble holds the rank (0=1..7=8). The top bit of
// each nibble doubles as an off-board marker, so testing whether a square or a
// ray step has left the board is a single mask, not four range comparisons. 8 bits.
type Square uint8

const offBoardMask = 0x88

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 = A1 + 0x10
	B2 = B1 + 0x10
	C2 = C1 + 0x10
	D2 = D1 + 0x10
	E2 = E1 + 0x10
	F2 = F1 + 0x10
	G2 = G1 + 0x10
	H2 = H1 + 0x10

	A3 = A2 + 0x10
	B3 = B2 + 0x10
	C3 = C2 + 0x10
	D3 = D2 + 0x10
	E3 = E2 + 0x10
	F3 = F2 + 0x10
	G3 = G2 + 0x10
	H3 = H2 + 0x10

	A4 = A3 + 0x10
	B4 = B3 + 0x10
	C4 = C3 + 0x10
	D4 = D3 + 0x10
	E4 = E3 + 0x10
	F4 = F3 + 0x10
	G4 = G3 + 0x10
	H4 = H3 + 0x10

	A5 = A4 + 0x10
	B5 = B4 + 0x10
	C5 = C4 + 0x10
	D5 = D4 + 0x10
	E5 = E4 + 0x10
	F5 = F4 + 0x10
	G5 = G4 + 0x10
	H5 = H4 + 0x10

	A6 = A5 + 0x10
	B6 = B5 + 0x10
	C6 = C5 + 0x10
	D6 = D5 + 0x10
	E6 = E5 + 0x10
	F6 = F5 + 0x10
	G6 = G5 + 0x10
	H6 = H5 + 0x10

	A7 = A6 + 0x10
	B7 = B6 + 0x10
	C7 = C6 + 0x10
	D7 = D6 + 0x10
	E7 = E6 + 0x10
	F7 = F6 + 0x10
	G7 = G6 + 0x10
	H7 = H6 + 0x10

	A8 = A7 + 0x10
	B8 = B7 + 0x10
	C8 = C7 + 0x10
	D8 = D7 + 0x10
	E8 = E7 + 0x10
	F8 = F7 + 0x10
	G8 = G7 + 0x10
	H8 = H7 + 0x10
)

// NoSquare is the sentinel for "no square" (e.g. no en passant target). It is
// deliberately an off-board value and must never be indexed into board state.
const NoSquare Square = offBoardMask

func NewSquare(f File, r Rank) Square {
	return Square(uint8(r)<<4 | uint8(f))
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

// IsValid returns true iff the square lies on the board.
func (s Square) IsValid() bool {
	return uint8(s)&offBoardMask == 0
}

func (s Square) Rank() Rank {
	return Rank(uint8(s) >> 4)
}

func (s Square) File() File {
	return File(uint8(s) & 0x7)
}

// FlipRank mirrors the square across the board's horizontal midline (A1 <-> A8),
// used by piece-square tables to share one White-side table between colors.
func (s Square) FlipRank() Square {
	return Square(uint8(s) ^ 0x70)
}

// RelativeRank returns the rank as seen from the given color, so a pawn's start
// rank is always RelativeRank==Rank2 regardless of which side is moving.
func (s Square) RelativeRank(c Color) Rank {
	if c == White {
		return s.Rank()
	}
	return Rank(7 - uint8(s.Rank()))
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a chess board rank from Rank1=0, ..Rank8=7. 3bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	switch r {
	case '1':
		return Rank1, true
	case '2':
		return Rank2, true
	case '3':
		return Rank3, true
	case '4':
		return Rank4, true
	case '5':
		return Rank5, true
	case '6':
		return Rank6, true
	case '7':
		return Rank7, true
	case '8':
		return Rank8, true
	default:
		return 0, false
	}
}

func (r Rank) IsValid() bool {
	return r <= Rank8
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	switch r {
	case Rank1:
		return "1"
	case Rank2:
		return "2"
	case Rank3:
		return "3"
	case Rank4:
		return "4"
	case Rank5:
		return "5"
	case Rank6:
		return "6"
	case Rank7:
		return "7"
	case Rank8:
		return "8"
	default:
		return "?"
	}
}

// File represents a chess board file from FileA=0, ..FileH=7. 3bits.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	switch r {
	case 'a', 'A':
		return FileA, true
	case 'b', 'B':
		return FileB, true
	case 'c', 'C':
		return FileC, true
	case 'd', 'D':
		return FileD, true
	case 'e', 'E':
		return FileE, true
	case 'f', 'F':
		return FileF, true
	case 'g', 'G':
		return FileG, true
	case 'h', 'H':
		return FileH, true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f <= FileH
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	switch f {
	case FileA:
		return "a"
	case FileB:
		return "b"
	case FileC:
		return "c"
	case FileD:
		return "d"
	case FileE:
		return "e"
	case FileF:
		return "f"
	case FileG:
		return "g"
	case FileH:
		return "h"
	default:
		return "?"
	}
}
