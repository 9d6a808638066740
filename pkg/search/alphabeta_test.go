package search_test

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAlphaBeta(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen      string
		depth    int
		expected eval.Score
	}{
		{fen.Initial, 4, eval.ZeroScore},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, eval.ZeroScore},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, eval.ZeroScore},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, eval.HeuristicScore(-6)},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, eval.HeuristicScore(2)},
		{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 4, eval.HeuristicScore(-1)},

		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 1, eval.HeuristicScore(10)},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 2, eval.MateInXScore(1)},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3, eval.MateInXScore(1)},
		{"k7/7R/7R/8/8/8/8/7K w - - 0 1", 4, eval.MateInXScore(3)},
	}

	minimax := search.Minimax{Eval: eval.Material{}}
	ab := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}

	t.Run("correctness", func(t *testing.T) {
		for _, tt := range tests {
			b, err := fen.NewBoard(tt.fen)
			require.NoError(t, err)

			sctx := &search.Context{TT: search.NoTranspositionTable{}}
			n, actual, _, err := ab.Search(ctx, sctx, b, tt.depth)
			require.NoError(t, err)
			assert.Lessf(t, n, uint64(16000), "too many nodes: %v", tt.fen)
			assert.Equalf(t, actual, tt.expected, "failed: %v", tt.fen)
		}
	})

	t.Run("minimax", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping minimax comparison test")
		}

		for _, tt := range tests {
			b, err := fen.NewBoard(tt.fen)
			require.NoError(t, err)

			sctx := &search.Context{TT: search.NoTranspositionTable{}}
			n, actual, _, err := ab.Search(ctx, sctx, b, tt.depth)
			require.NoError(t, err)
			m, expected, _, _ := minimax.Search(ctx, b, tt.depth, make(chan struct{}))
			t.Logf("POS: %v; NODES: %v (minimax %v)", tt.fen, n, m)

			assert.LessOrEqualf(t, n, m, "more than minimax nodes: %v", tt.fen)
			assert.Equalf(t, actual, expected, "failed: %v", tt.fen)
		}
	})
}

// TestAlphaBetaMateScoreBounds checks that a root score is always within the
// mated-in-0/mate-in-0 window and that a reported mate distance matches the
// returned principal variation length.
func TestAlphaBetaMateScoreBounds(t *testing.T) {
	ctx := context.Background()
	ab := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}

	b, err := fen.NewBoard("k7/7R/6R1/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score, moves, err := ab.Search(ctx, sctx, b, 4)
	require.NoError(t, err)

	assert.False(t, score.Less(eval.MatedInXScore(0)))
	assert.False(t, eval.MateInXScore(0).Less(score))

	md, ok := score.MateDistance()
	require.True(t, ok)
	assert.Equal(t, md, len(moves))
}

// TestAlphaBetaUsesTranspositionTable searches the same position twice with a
// shared table and expects the second pass to revisit fewer nodes.
func TestAlphaBetaUsesTranspositionTable(t *testing.T) {
	ctx := context.Background()
	ab := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}
	tt := search.NewTranspositionTable(ctx, 1<<20)

	b, err := fen.NewBoard("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	n1, s1, _, err := ab.Search(ctx, &search.Context{TT: tt}, b, 4)
	require.NoError(t, err)
	n2, s2, _, err := ab.Search(ctx, &search.Context{TT: tt}, b, 4)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Less(t, n2, n1)
}

// TestAlphaBetaCheckExtension: in full-strength mode the checking move on the
// last ply is extended, so a mate in 3 plies is already seen at depth 3 (the
// mated position itself needs one extra ply to adjudicate).
func TestAlphaBetaCheckExtension(t *testing.T) {
	ctx := context.Background()
	ab := search.AlphaBeta{
		Eval:   search.ZeroPly{Eval: eval.Material{}},
		Static: eval.Material{},
	}

	b, err := fen.NewBoard("k7/7R/7R/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	stats := &search.Stats{}
	sctx := &search.Context{TT: search.NoTranspositionTable{}, Stats: stats}
	_, score, _, err := ab.Search(ctx, sctx, b, 3)
	require.NoError(t, err)
	assert.Equal(t, eval.MateInXScore(3), score)
}

// TestAlphaBetaNodeLimit aborts the search once the node budget is exhausted.
func TestAlphaBetaNodeLimit(t *testing.T) {
	ctx := context.Background()
	ab := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	sctx := &search.Context{TT: search.NoTranspositionTable{}, NodeLimit: 50}
	_, _, _, err = ab.Search(ctx, sctx, b, 6)
	assert.ErrorIs(t, err, search.ErrHalted)
}

// TestAlphaBetaRootMoves restricts the root to a single move.
func TestAlphaBetaRootMoves(t *testing.T) {
	ctx := context.Background()
	ab := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}

	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	only := findMove(t, b, "a2a3")
	sctx := &search.Context{TT: search.NoTranspositionTable{}, RootMoves: []board.Move{only}}
	_, _, moves, err := ab.Search(ctx, sctx, b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.Equal(t, "a2a3", moves[0].String())
}

func findMove(t *testing.T, b *board.Board, str string) board.Move {
	t.Helper()
	for _, m := range b.Position().PseudoLegalMoves() {
		if m.String() == str {
			return m
		}
	}
	t.Fatalf("move not found: %v", str)
	return board.Move{}
}

func TestHasSingleReply(t *testing.T) {
	single, err := fen.NewBoard("R6k/7p/8/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)
	assert.True(t, single.Position().HasSingleReply())

	initial, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)
	assert.False(t, initial.Position().HasSingleReply())
}
