package search_test

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newQuiescence() search.Quiescence {
	return search.Quiescence{
		Explore: search.QuiescenceExploration,
		Eval:    search.StaticEval{Eval: eval.Material{}},
	}
}

func TestQuiescenceStandsPatWhenQuiet(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// White is a rook up with nothing hanging: the stand pat is the result.
	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	_, score := q.QuietSearch(ctx, &search.Context{}, b)
	assert.Equal(t, eval.HeuristicScore(5), score)
}

func TestQuiescenceFindsHangingPiece(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// The black queen on d5 hangs to the knight on f4.
	b, err := fen.NewBoard("4k3/p7/8/3q4/5N2/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	_, score := q.QuietSearch(ctx, &search.Context{}, b)
	assert.Equal(t, eval.HeuristicScore(2), score) // -7 material, +9 queen
}

func TestQuiescenceDetectsMateWhileInCheck(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// Back-rank mate: black has no evasions.
	b, err := fen.NewBoard("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)

	_, score := q.QuietSearch(ctx, &search.Context{}, b)
	assert.Equal(t, eval.MatedInXScore(0), score)
}

func TestQuiescenceEscapesCheck(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// In check but the king can step away; no stand pat applies, yet the
	// search must not report a mate.
	b, err := fen.NewBoard("R4k2/8/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)

	_, score := q.QuietSearch(ctx, &search.Context{}, b)
	_, isMate := score.MateDistance()
	assert.False(t, isMate)
}
