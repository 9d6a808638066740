package board_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCaptureTo(t *testing.T, b *board.Board, from, to board.Square) board.Move {
	t.Helper()
	for _, m := range b.Position().PseudoLegalMoves() {
		if m.From == from && m.To == to && m.Type.IsCapture() {
			return m
		}
	}
	t.Fatalf("no capture from %v to %v", from, to)
	return board.Move{}
}

func TestStaticExchangeEval(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to board.Square
		expected int
	}{
		{
			// No defender: the gain is exactly the captured piece's value.
			"undefended pawn",
			"4k3/8/8/3p4/5N2/8/8/4K3 w - - 0 1",
			board.F4, board.D5,
			100,
		},
		{
			// Even trade: pawn takes pawn, defender recaptures.
			"pawn takes defended pawn",
			"4k3/8/2p5/3p4/4P3/8/8/4K3 w - - 0 1",
			board.E4, board.D5,
			0,
		},
		{
			// Losing trade: queen takes a pawn defended by a pawn.
			"queen takes defended pawn",
			"4k3/8/2p5/3p4/8/8/3Q4/4K3 w - - 0 1",
			board.D2, board.D5,
			-800,
		},
		{
			// X-ray: the second rook recaptures through the first.
			"doubled rooks win the exchange",
			"4k3/8/4p3/3r4/8/8/3R4/3RK3 w - - 0 1",
			board.D2, board.D5,
			100,
		},
		{
			// A king cannot profitably capture onto a defended square.
			"king takes defended pawn",
			"3rk3/8/8/8/8/8/3p4/4K3 w - - 0 1",
			board.E1, board.D2,
			-801,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.NewBoard(tt.fen)
			require.NoError(t, err)

			m := findCaptureTo(t, b, tt.from, tt.to)
			assert.Equal(t, tt.expected, b.Position().StaticExchangeEval(m))
		})
	}
}

func TestStaticExchangeEvalNonCapture(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	m := board.Move{Type: board.Push, From: board.E2, To: board.E3, Piece: board.Pawn}
	assert.Equal(t, 0, b.Position().StaticExchangeEval(m))
}
