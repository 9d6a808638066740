package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEndgameDraw(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	score, ok := eval.ScoreEndgame(b.Position(), md)
	require.True(t, ok)
	assert.Equal(t, eval.Pawns(0), score)
}

func TestScoreEndgameKBNKDrivesKingToCorner(t *testing.T) {
	far, err := fen.NewBoard("8/8/6K1/8/4k3/8/8/1NB5 w - - 0 1")
	require.NoError(t, err)
	near, err := fen.NewBoard("8/8/8/8/8/2K5/8/kNB5 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(far.Position())
	require.Equal(t, eval.EndgameKBNK, md.EndgameTag)
	farScore, ok := eval.ScoreEndgame(far.Position(), md)
	require.True(t, ok)

	md2 := eval.ComputeMaterialInfo(near.Position())
	require.Equal(t, eval.EndgameKBNK, md2.EndgameTag)
	nearScore, ok := eval.ScoreEndgame(near.Position(), md2)
	require.True(t, ok)

	// The bishop on c1 is dark-squared, so a1 (also dark) is one of its two
	// mating corners; a black king already driven there scores better for
	// the strong side than one still near the center.
	assert.Greater(t, nearScore, farScore)
}

func TestScaleKPKCornerDraw(t *testing.T) {
	b, err := fen.NewBoard("k7/8/8/8/8/8/P7/K7 w - - 0 1")
	require.NoError(t, err)

	assert.True(t, eval.ScaleKPK(b.Position(), board.White))
}

func TestScaleEndgameKPKDrawScalesToZero(t *testing.T) {
	b, err := fen.NewBoard("k7/8/8/8/8/8/P7/K7 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	require.Equal(t, eval.EndgameKPK, md.EndgameTag)
	scale := eval.ScaleEndgame(b.Position(), md)
	assert.Equal(t, 0, scale[board.White])
}

func TestScaleEndgameKRPKRDefendedPromotion(t *testing.T) {
	// Black king sits on the white pawn's promotion square: drawish.
	b, err := fen.NewBoard("3k4/8/8/8/3P4/8/1r6/R3K3 w - - 0 1")
	require.NoError(t, err)

	md := eval.ComputeMaterialInfo(b.Position())
	require.Equal(t, eval.EndgameKRPKR, md.EndgameTag)
	require.Equal(t, board.White, md.StrongSide)
	scale := eval.ScaleEndgame(b.Position(), md)
	assert.Less(t, scale[board.White], 16)
}

func TestScaleKPKNoDrawWhenKingFar(t *testing.T) {
	b, err := fen.NewBoard("8/8/8/8/8/3k4/P7/K7 w - - 0 1")
	require.NoError(t, err)

	assert.False(t, eval.ScaleKPK(b.Position(), board.White))
}
