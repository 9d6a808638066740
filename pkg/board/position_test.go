package board_test

import (
	"sort"
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newZobrist() *board.ZobristTable {
	return board.NewZobristTable(42)
}

func TestPseudoLegalMovesPawns(t *testing.T) {
	tests := []struct {
		name      string
		turn      board.Color
		pieces    []board.Placement
		enpassant board.Square
		expected  []board.Move
	}{
		{
			"single and double push",
			board.White,
			[]board.Placement{
				{Square: board.E1, Color: board.White, Piece: board.King},
				{Square: board.E8, Color: board.Black, Piece: board.King},
				{Square: board.E2, Color: board.White, Piece: board.Pawn},
				{Square: board.G5, Color: board.White, Piece: board.Pawn},
			},
			board.NoSquare,
			[]board.Move{
				{Type: board.Push, Piece: board.Pawn, From: board.E2, To: board.E3},
				{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4},
				{Type: board.Push, Piece: board.Pawn, From: board.G5, To: board.G6},
			},
		},
		{
			"capture and obstruction",
			board.White,
			[]board.Placement{
				{Square: board.E1, Color: board.White, Piece: board.King},
				{Square: board.E8, Color: board.Black, Piece: board.King},
				{Square: board.E2, Color: board.White, Piece: board.Pawn},
				{Square: board.E4, Color: board.Black, Piece: board.Bishop},
				{Square: board.D3, Color: board.Black, Piece: board.Knight},
			},
			board.NoSquare,
			[]board.Move{
				{Type: board.Capture, Piece: board.Pawn, From: board.E2, To: board.D3, Capture: board.Knight},
				{Type: board.Push, Piece: board.Pawn, From: board.E2, To: board.E3},
			},
		},
		{
			"promotion",
			board.White,
			[]board.Placement{
				{Square: board.E1, Color: board.White, Piece: board.King},
				{Square: board.H8, Color: board.Black, Piece: board.King},
				{Square: board.D7, Color: board.White, Piece: board.Pawn},
			},
			board.NoSquare,
			[]board.Move{
				{Type: board.Promotion, Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Queen},
				{Type: board.Promotion, Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Rook},
				{Type: board.Promotion, Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Bishop},
				{Type: board.Promotion, Piece: board.Pawn, From: board.D7, To: board.D8, Promotion: board.Knight},
			},
		},
		{
			"en passant",
			board.Black,
			[]board.Placement{
				{Square: board.A1, Color: board.White, Piece: board.King},
				{Square: board.A8, Color: board.Black, Piece: board.King},
				{Square: board.E4, Color: board.Black, Piece: board.Pawn},
				{Square: board.D4, Color: board.White, Piece: board.Pawn},
			},
			board.D3,
			[]board.Move{
				{Type: board.Push, Piece: board.Pawn, From: board.E4, To: board.E3},
				{Type: board.EnPassant, Piece: board.Pawn, From: board.E4, To: board.D3, Capture: board.Pawn},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := board.NewPosition(newZobrist(), tt.pieces, tt.turn, 0, tt.enpassant)
			require.NoError(t, err)

			actual := filterByPiece(pos.PseudoLegalMoves(), board.Pawn)
			assert.ElementsMatch(t, printMoves(tt.expected), printMoves(actual))
		})
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name     string
		turn     board.Color
		pieces   []board.Placement
		castling board.Castling
		expected []board.Move
	}{
		{
			"no rights",
			board.White,
			[]board.Placement{
				{Square: board.E1, Color: board.White, Piece: board.King},
				{Square: board.H1, Color: board.White, Piece: board.Rook},
				{Square: board.A1, Color: board.White, Piece: board.Rook},
				{Square: board.E8, Color: board.Black, Piece: board.King},
			},
			0,
			nil,
		},
		{
			"full rights",
			board.White,
			[]board.Placement{
				{Square: board.E1, Color: board.White, Piece: board.King},
				{Square: board.H1, Color: board.White, Piece: board.Rook},
				{Square: board.A1, Color: board.White, Piece: board.Rook},
				{Square: board.E8, Color: board.Black, Piece: board.King},
			},
			board.FullCastingRights,
			[]board.Move{
				{Type: board.KingSideCastle, Piece: board.King, From: board.E1, To: board.G1},
				{Type: board.QueenSideCastle, Piece: board.King, From: board.E1, To: board.C1},
			},
		},
		{
			"obstructed kingside",
			board.Black,
			[]board.Placement{
				{Square: board.E8, Color: board.Black, Piece: board.King},
				{Square: board.H8, Color: board.Black, Piece: board.Rook},
				{Square: board.G8, Color: board.White, Piece: board.Bishop},
				{Square: board.A8, Color: board.Black, Piece: board.Rook},
				{Square: board.A1, Color: board.White, Piece: board.King},
			},
			board.FullCastingRights,
			[]board.Move{
				{Type: board.QueenSideCastle, Piece: board.King, From: board.E8, To: board.C8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := board.NewPosition(newZobrist(), tt.pieces, tt.turn, tt.castling, board.NoSquare)
			require.NoError(t, err)

			actual := filterMoves(pos.PseudoLegalMoves(), func(m board.Move) bool {
				return m.Type.IsCastle()
			})
			assert.ElementsMatch(t, printMoves(tt.expected), printMoves(actual))
		})
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	zt := newZobrist()
	pos, _, _, _, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	before := *pos
	beforeHash := pos.Hash()

	moves := pos.LegalMoves()
	require.NotEmpty(t, moves)

	for _, m := range moves {
		u := pos.Make(m)
		pos.Unmake(m, u)
		assert.Equal(t, beforeHash, pos.Hash(), "hash did not round-trip for %v", m)
		assert.Equal(t, before, *pos, "position did not round-trip for %v", m)
	}
}

// TestPerft checks move generation against the published node counts for the
// standard perft suite. See: https://www.chessprogramming.org/Perft_Results.
func TestPerft(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		counts []int // counts[d-1] = perft(d)
	}{
		{
			"initial",
			fen.Initial,
			[]int{20, 400, 8902, 197281},
		},
		{
			"kiwipete",
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			[]int{48, 2039, 97862},
		},
		{
			"position 3",
			"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			[]int{14, 191, 2812, 43238},
		},
		{
			"position 4",
			"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			[]int{6, 264, 9467},
		},
		{
			"position 5",
			"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			[]int{44, 1486, 62379},
		},
		{
			"position 6",
			"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			[]int{46, 2079, 89890},
		},
		{
			"both sides may castle",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			[]int{26},
		},
	}

	zt := newZobrist()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _, _, _, err := fen.Decode(zt, tt.fen)
			require.NoError(t, err)

			for d, expected := range tt.counts {
				if testing.Short() && expected > 10000 {
					continue
				}
				assert.Equalf(t, expected, perft(pos, d+1), "perft(%v)", d+1)
			}
		})
	}
}

// TestPerftLegalMatchesFiltered checks that the legal generator equals the
// pseudo-legal generator filtered by IsLegal, as sets.
func TestPerftLegalMatchesFiltered(t *testing.T) {
	zt := newZobrist()
	pos, _, _, _, err := fen.Decode(zt, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var filtered []board.Move
	for _, m := range pos.PseudoLegalMoves() {
		if pos.IsLegal(m) {
			filtered = append(filtered, m)
		}
	}
	assert.ElementsMatch(t, printMoves(pos.LegalMoves()), printMoves(filtered))
}

func perft(pos *board.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	count := 0
	for _, m := range pos.LegalMoves() {
		u := pos.Make(m)
		count += perft(pos, depth-1)
		pos.Unmake(m, u)
	}
	return count
}

func filterMoves(ms []board.Move, fn func(move board.Move) bool) []board.Move {
	var list []board.Move
	for _, m := range ms {
		if fn(m) {
			list = append(list, m)
		}
	}
	return list
}

func filterByPiece(ms []board.Move, p board.Piece) []board.Move {
	return filterMoves(ms, func(m board.Move) bool { return m.Piece == p })
}

func printMoves(ms []board.Move) []string {
	var list []string
	for _, m := range ms {
		list = append(list, m.String()+"/"+m.Type.String())
	}
	sort.Strings(list)
	return list
}
