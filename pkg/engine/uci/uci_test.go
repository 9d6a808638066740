package uci_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/herohde/daydreamer/pkg/engine"
	"github.com/herohde/daydreamer/pkg/engine/uci"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ctx context.Context) *engine.Engine {
	s := search.AlphaBeta{Eval: search.ZeroPly{Eval: eval.Material{}}}
	return engine.New(ctx, "daydreamer", "test", s)
}

// expect reads driver output until a line with the given prefix arrives.
func expect(t *testing.T, out <-chan string, prefix string) string {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case line, ok := <-out:
			require.True(t, ok, "output closed waiting for %q", prefix)
			if strings.HasPrefix(line, prefix) {
				return line
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", prefix)
		}
	}
}

func TestDriverHandshake(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 16)

	d, out := uci.NewDriver(ctx, newTestEngine(ctx), in)
	defer d.Close()

	expect(t, out, "id name daydreamer")
	expect(t, out, "id author test")
	expect(t, out, "option name Hash")
	expect(t, out, "uciok")

	in <- "isready"
	expect(t, out, "readyok")
}

func TestDriverGoDepthEmitsBestmove(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 16)

	d, out := uci.NewDriver(ctx, newTestEngine(ctx), in)
	defer d.Close()
	expect(t, out, "uciok")

	in <- "position startpos moves e2e4"
	in <- "go depth 2"

	info := expect(t, out, "info depth")
	assert.Contains(t, info, "score")
	best := expect(t, out, "bestmove")
	assert.NotEqual(t, "bestmove 0000", best)
}

func TestDriverSearchmovesRestrictsRoot(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 16)

	d, out := uci.NewDriver(ctx, newTestEngine(ctx), in)
	defer d.Close()
	expect(t, out, "uciok")

	in <- "position startpos"
	in <- "go depth 2 searchmoves a2a3"

	best := expect(t, out, "bestmove")
	assert.Equal(t, "bestmove a2a3", best)
}

func TestDriverStopOnInfinite(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 16)

	d, out := uci.NewDriver(ctx, newTestEngine(ctx), in)
	defer d.Close()
	expect(t, out, "uciok")

	in <- "position startpos"
	in <- "go infinite"
	expect(t, out, "info depth")

	in <- "stop"
	expect(t, out, "bestmove")
}

func TestDriverMateScoreReporting(t *testing.T) {
	ctx := context.Background()
	in := make(chan string, 16)

	d, out := uci.NewDriver(ctx, newTestEngine(ctx), in)
	defer d.Close()
	expect(t, out, "uciok")

	in <- "position fen k7/7R/6R1/8/8/8/8/7K w - - 0 1"
	in <- "go depth 3"

	info := expect(t, out, "info depth 2")
	assert.Contains(t, info, "score mate 1")
	best := expect(t, out, "bestmove")
	assert.Equal(t, "bestmove g6g8", best)
}
