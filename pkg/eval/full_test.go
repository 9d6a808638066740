package eval_test

import (
	"context"
	"testing"

	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullEvaluatorFavorsMaterialAdvantage(t *testing.T) {
	e := eval.NewFullEvaluator(1<<16, 1<<16)
	up, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	even, err := fen.NewBoard("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	upScore := e.Evaluate(context.Background(), up)
	evenScore := e.Evaluate(context.Background(), even)
	assert.Greater(t, upScore, evenScore)
}

func TestFullEvaluatorStartingPositionIsRoughlyLevel(t *testing.T) {
	e := eval.NewFullEvaluator(1<<16, 1<<16)
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	score := e.Evaluate(context.Background(), b)
	assert.InDelta(t, 0, float32(score), 0.5)
}

func TestFullEvaluatorIsSymmetricUnderColorFlip(t *testing.T) {
	e := eval.NewFullEvaluator(1<<16, 1<<16)
	white, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	black, err := fen.NewBoard("r3k3/8/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	whiteScore := e.Evaluate(context.Background(), white)
	blackScore := e.Evaluate(context.Background(), black)
	assert.InDelta(t, float32(whiteScore), float32(blackScore), 0.05)
}

func TestFullEvaluatorClear(t *testing.T) {
	e := eval.NewFullEvaluator(1<<16, 1<<16)
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	_ = e.Evaluate(context.Background(), b)
	assert.NotPanics(t, func() { e.Clear() })
}
