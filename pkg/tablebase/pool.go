// Package tablebase hides the latency of endgame tablebase probes behind a
// bounded pool of background workers. Probing is strictly advisory: the
// search asks, and either gets an instant answer out of the cache or a miss
// while a worker fetches the answer for the next visit to the same position.
// Workers block on I/O; they never touch search state.
package tablebase

import (
	"context"
	"sync"

	"github.com/herohde/daydreamer/pkg/board"
)

// Result is a win/draw/loss verdict from the side to move's perspective.
type Result int8

const (
	Loss Result = -1
	Draw Result = 0
	Win  Result = 1
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// Prober answers position probes, possibly with blocking disk I/O. A Prober
// must be safe for concurrent use: multiple workers may probe at once.
type Prober interface {
	// MaxPieces returns the largest total piece count (kings included) the
	// backing tablebase covers.
	MaxPieces() int
	// Probe resolves the verdict for the position, blocking as needed.
	// Returns false if the position is not covered.
	Probe(ctx context.Context, pos *board.Position) (Result, bool)
}

// maxWorkers bounds the pool: disk-bound probes beyond this would just queue
// at the device anyway.
const maxWorkers = 16

// Pool is a bounded background prefetch pool in front of a Prober. A firm
// probe that misses the cache hands the position to an idle worker and
// returns a miss; the search picks the answer up on its next visit. With all
// workers busy, a firm probe degrades to a soft (cache-only) probe.
type Pool struct {
	prober Prober
	slots  chan struct{}

	mu      sync.Mutex
	cache   map[board.ZobristHash]Result
	pending map[board.ZobristHash]bool
}

// NewPool creates a pool with the given number of workers, clamped to
// [1;16]. A nil prober yields a pool that always misses.
func NewPool(prober Prober, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Pool{
		prober:  prober,
		slots:   make(chan struct{}, workers),
		cache:   make(map[board.ZobristHash]Result),
		pending: make(map[board.ZobristHash]bool),
	}
}

// MaxPieces returns the piece-count coverage of the backing prober, or 0 when
// there is none.
func (p *Pool) MaxPieces() int {
	if p == nil || p.prober == nil {
		return 0
	}
	return p.prober.MaxPieces()
}

// SoftProbe returns the cached verdict for the position, never blocking and
// never scheduling work.
func (p *Pool) SoftProbe(pos *board.Position) (Result, bool) {
	if p == nil || p.prober == nil {
		return Draw, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.cache[pos.Hash()]
	return r, ok
}

// FirmProbe returns the cached verdict if present. On a miss it hands a
// snapshot of the position to an idle worker and returns a miss immediately;
// if every worker is busy, the firm probe degrades to a soft probe and no
// work is scheduled.
func (p *Pool) FirmProbe(ctx context.Context, pos *board.Position) (Result, bool) {
	if p == nil || p.prober == nil {
		return Draw, false
	}

	hash := pos.Hash()

	p.mu.Lock()
	if r, ok := p.cache[hash]; ok {
		p.mu.Unlock()
		return r, true
	}
	if p.pending[hash] {
		p.mu.Unlock()
		return Draw, false // already being fetched
	}

	select {
	case p.slots <- struct{}{}:
		p.pending[hash] = true
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		return Draw, false // all workers busy: soft semantics
	}

	snapshot := *pos // workers never share the search's mutable position
	go func() {
		defer func() { <-p.slots }()

		r, ok := p.prober.Probe(ctx, &snapshot)

		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.pending, hash)
		if ok {
			p.cache[hash] = r
		}
	}()
	return Draw, false
}

// Clear drops all cached verdicts, e.g. on ucinewgame.
func (p *Pool) Clear() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache = make(map[board.ZobristHash]Result)
}
