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

// TestPVSAgreesWithMinimax validates the scout-window search against plain
// minimax on a small fixture.
func TestPVSAgreesWithMinimax(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen   string
		depth int
	}{
		{fen.Initial, 3},
		{"k7/7R/6R1/8/8/8/8/7K w - - 0 1", 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	}

	pvs := search.PVS{Eval: eval.Material{}}
	minimax := search.Minimax{Eval: eval.Material{}}

	for _, tt := range tests {
		b, err := fen.NewBoard(tt.fen)
		require.NoError(t, err)

		n, actual, _, err := pvs.Search(ctx, b, tt.depth, make(chan struct{}))
		require.NoError(t, err)
		m, expected, _, err := minimax.Search(ctx, b, tt.depth, make(chan struct{}))
		require.NoError(t, err)

		assert.Equalf(t, expected, actual, "failed: %v", tt.fen)
		assert.LessOrEqual(t, n, m)
	}
}
