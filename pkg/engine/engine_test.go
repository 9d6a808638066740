package engine_test

import (
	"context"
	"testing"

	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/engine"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/herohde/daydreamer/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ctx context.Context) *engine.Engine {
	s := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}
	return engine.New(ctx, "daydreamer", "test", s)
}

func TestEngineResetAndMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())

	require.NoError(t, e.Move(ctx, "e2e4"))
	require.NoError(t, e.Move(ctx, "c7c5"))
	assert.Equal(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2", e.Position())

	assert.Error(t, e.Move(ctx, "e4e6"), "not a legal move")
	assert.Error(t, e.Move(ctx, "zz99"), "not a move at all")

	require.NoError(t, e.TakeBack(ctx))
	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineAnalyzeAndHalt(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	out, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	require.NoError(t, err)

	// A second concurrent search is refused.
	_, err = e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	assert.Error(t, err)

	// Drain until the search exhausts its depth limit, then halt.
	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.NotEmpty(t, last.Moves)

	pv, err := e.Halt(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.Moves, pv.Moves)
}
