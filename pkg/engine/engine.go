package engine

import (
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/herohde/daydreamer/pkg/search/searchctl"
	"github.com/herohde/daydreamer/pkg/tablebase"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"sync"
	"time"
)

var version = build.NewVersion(0, 89, 3)

// Options are engine creation and UCI setoption-driven options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will not use
	// a transposition table.
	Hash uint
	// Noise adds some millipawn randomness to the leaf evaluations.
	Noise uint
	// MultiPV records the requested number of principal variations. Only the
	// single best line is reported, whatever its value.
	MultiPV uint
	// UseBook enables consulting the opening book, if one is loaded.
	UseBook bool
	// UseEndgameBitbases enables consulting the tablebase worker pool.
	UseEndgameBitbases bool
	// Ponder, if set, makes the UCI driver name the expected reply as the
	// ponder move in bestmove. A "go ponder" search runs whether or not it is set.
	Ponder bool
	// OutputDelay throttles how often intermediate PV info is emitted.
	OutputDelay time.Duration
	// Chess960 records the UCI_Chess960 setting. Castling and move notation stay
	// standard whatever its value.
	Chess960 bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, multipv=%v, book=%v, bitbases=%v, ponder=%v, chess960=%v}",
		o.Depth, o.Hash, o.Noise, o.MultiPV, o.UseBook, o.UseEndgameBitbases, o.Ponder, o.Chess960)
}

// Engine encapsulates game-playing logic, search and evaluation.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	factory  search.TranspositionTableFactory
	zt       *board.ZobristTable
	tb       *tablebase.Pool
	seed     int64
	opts     Options

	b      *board.Board
	tt     search.TranspositionTable
	noise  eval.Random
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of the
// default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithTablebase configures the engine with an endgame tablebase prober, probed
// through a background worker pool of the given size. Probing is still gated
// by the UseEndgameBitbases runtime option.
func WithTablebase(prober tablebase.Prober, workers int) Option {
	return func(e *Engine) {
		e.tb = tablebase.NewPool(prober, workers)
	}
}

func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: &searchctl.Iterative{Root: root},
		factory:  search.NewTranspositionTable,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(millipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = millipawns
}

func (e *Engine) SetMultiPV(n uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.MultiPV = n
}

func (e *Engine) SetUseBook(use bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.UseBook = use
}

func (e *Engine) SetUseEndgameBitbases(use bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.UseEndgameBitbases = use
}

func (e *Engine) SetPonder(ponder bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Ponder = ponder
}

func (e *Engine) SetChess960(chess960 bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Chess960 = chess960
}

func (e *Engine) SetOutputDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.OutputDelay = d
}

// Board returns a forked board.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise/10)

	_, _ = e.haltSearchIfActive(ctx)

	pos, _, _, fullmoves, err := fen.Decode(e.zt, position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, fullmoves)

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}
	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}
	e.tb.Clear()

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	moves := e.b.Position().PseudoLegalMoves()
	for _, m := range moves {
		if !candidate.Equals(m) {
			continue
		}

		// Candidate is at least pseudo-legal.

		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze analyzes the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if e.opts.UseEndgameBitbases && e.tb != nil {
		opt.Tablebase = e.tb
	}
	opt.SearchMoves = e.resolveMoves(opt.SearchMoves)

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.b.Fork(), e.tt, e.noise, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

// resolveMoves matches bare from/to/promotion moves (as parsed off the wire)
// against the current position's generated moves, dropping any that do not
// correspond to a pseudo-legal move here.
func (e *Engine) resolveMoves(moves []board.Move) []board.Move {
	if len(moves) == 0 {
		return nil
	}
	var ret []board.Move
	for _, candidate := range e.b.Position().PseudoLegalMoves() {
		for _, m := range moves {
			if candidate.Equals(m) {
				ret = append(ret, candidate)
				break
			}
		}
	}
	return ret
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
