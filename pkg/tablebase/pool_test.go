package tablebase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/tablebase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber answers every covered position with a fixed verdict, optionally
// blocking until released to simulate disk latency.
type fakeProber struct {
	verdict tablebase.Result
	gate    chan struct{} // if set, Probe blocks until closed

	mu     sync.Mutex
	probes int
}

func (f *fakeProber) MaxPieces() int {
	return 5
}

func (f *fakeProber) Probe(ctx context.Context, pos *board.Position) (tablebase.Result, bool) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.probes++
	f.mu.Unlock()
	return f.verdict, true
}

func (f *fakeProber) probeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probes
}

func TestPoolFirmProbeFillsCache(t *testing.T) {
	ctx := context.Background()
	prober := &fakeProber{verdict: tablebase.Win}
	pool := tablebase.NewPool(prober, 2)

	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	pos := b.Position()

	// First firm probe misses but schedules the fetch.
	_, ok := pool.FirmProbe(ctx, pos)
	assert.False(t, ok)

	// The background worker eventually lands the verdict in the cache.
	assert.Eventually(t, func() bool {
		r, ok := pool.SoftProbe(pos)
		return ok && r == tablebase.Win
	}, time.Second, time.Millisecond)

	r, ok := pool.FirmProbe(ctx, pos)
	assert.True(t, ok)
	assert.Equal(t, tablebase.Win, r)
	assert.Equal(t, 1, prober.probeCount())
}

func TestPoolDegradesToSoftWhenBusy(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	prober := &fakeProber{verdict: tablebase.Draw, gate: gate}
	pool := tablebase.NewPool(prober, 1)

	b1, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	b2, err := fen.NewBoard("4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	require.NoError(t, err)

	// First probe occupies the only worker.
	_, ok := pool.FirmProbe(ctx, b1.Position())
	require.False(t, ok)

	// Second firm probe must not block; with the worker busy it degrades to a
	// soft probe and schedules nothing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = pool.FirmProbe(ctx, b2.Position())
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("firm probe blocked on a busy pool")
	}

	close(gate)
	assert.Eventually(t, func() bool {
		_, ok := pool.SoftProbe(b1.Position())
		return ok
	}, time.Second, time.Millisecond)
}

func TestPoolWithoutProberAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	pool := tablebase.NewPool(nil, 4)

	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	_, ok := pool.FirmProbe(ctx, b.Position())
	assert.False(t, ok)
	assert.Equal(t, 0, pool.MaxPieces())
}

func TestPoolClear(t *testing.T) {
	ctx := context.Background()
	prober := &fakeProber{verdict: tablebase.Loss}
	pool := tablebase.NewPool(prober, 1)

	b, err := fen.NewBoard("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	_, _ = pool.FirmProbe(ctx, b.Position())
	assert.Eventually(t, func() bool {
		_, ok := pool.SoftProbe(b.Position())
		return ok
	}, time.Second, time.Millisecond)

	pool.Clear()
	_, ok := pool.SoftProbe(b.Position())
	assert.False(t, ok)
}
