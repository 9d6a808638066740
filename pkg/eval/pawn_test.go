package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePawnsPassed(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	pd := eval.AnalyzePawns(b.Position())
	require.Len(t, pd.Passed[board.White], 1)
	assert.Equal(t, board.E4, pd.Passed[board.White][0])
	assert.Empty(t, pd.Passed[board.Black])
}

func TestAnalyzePawnsIsolatedAndDoubled(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/4P3/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	pd := eval.AnalyzePawns(b.Position())
	assert.Less(t, pd.Midgame[board.White], eval.Pawns(0))
}

func TestAnalyzePawnsConnected(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/3PP3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	pd := eval.AnalyzePawns(b.Position())
	require.Len(t, pd.Passed[board.White], 2)
}

func TestPasserAdvancementBonusUnstoppable(t *testing.T) {
	b, err := fen.NewBoard("8/8/8/8/8/8/4P3/k3K3 w - - 0 1")
	require.NoError(t, err)

	pd := eval.AnalyzePawns(b.Position())
	bonus := eval.PasserAdvancementBonus(b.Position(), pd, board.White)
	assert.Greater(t, bonus, eval.Pawns(0))
}

func TestPawnTableCachesByPawnHash(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	table := eval.NewPawnTable(1 << 16)
	first := table.Get(b.Position())
	second := table.Get(b.Position())
	assert.Equal(t, first, second)
}
