package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMaterialInfoBishopPair(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/B1B1K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	assert.Greater(t, md.Midgame, eval.Pawns(0))
	assert.Greater(t, md.Endgame, eval.Pawns(0))
}

func TestComputeMaterialInfoDrawTag(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	assert.Equal(t, eval.EndgameDraw, md.EndgameTag)
	assert.Equal(t, 0, md.Scale[board.White])
	assert.Equal(t, 0, md.Scale[board.Black])
}

func TestComputeMaterialInfoKBNK(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/1NB1K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	assert.Equal(t, eval.EndgameKBNK, md.EndgameTag)
	assert.Equal(t, board.White, md.StrongSide)
}

func TestComputeMaterialInfoKRKP(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/p7/R3K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	assert.Equal(t, eval.EndgameKRKP, md.EndgameTag)
	assert.Equal(t, board.White, md.StrongSide)
}

func TestMaterialTableCachesByMaterialHash(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	table := eval.NewMaterialTable(1 << 16)
	first := table.Get(b.Position())
	second := table.Get(b.Position())
	assert.Equal(t, first, second)
}
