package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPinsAgainstKing(t *testing.T) {
	// The white knight on e3 is pinned against the e1 king by the e8 rook.
	b, err := fen.NewBoard("4r1k1/8/8/8/8/4N3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	pins := eval.FindPins(b.Position(), board.White, board.King)
	require.Len(t, pins, 1)
	assert.Equal(t, board.E8, pins[0].Attacker)
	assert.Equal(t, board.E3, pins[0].Pinned)
	assert.Equal(t, board.E1, pins[0].Target)
}

func TestFindPinsNoneWhenBlocked(t *testing.T) {
	// Two white pieces on the line: neither is pinned.
	b, err := fen.NewBoard("4r1k1/8/8/4N3/8/4N3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	pins := eval.FindPins(b.Position(), board.White, board.King)
	assert.Empty(t, pins)
}
