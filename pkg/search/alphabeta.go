package search

import (
	"context"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/herohde/daydreamer/pkg/tablebase"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// tbWinPawns is the flat evaluation assigned to a tablebase-won position:
// decisive, but well outside the mate-score window so it never distorts
// mate-distance bookkeeping.
const tbWinPawns = eval.Pawns(200)

// Search margins and thresholds. Values are tuned by feel rather than
// self-play.
const (
	nullMoveMinDepth      = 3
	nullMoveReduction     = 3
	nullMoveDeepReduction = 4 // used from nullMoveDeepDepth on
	nullMoveDeepDepth     = 6
	nullMoveMargin        = 100 // centipawns
	nullMoveVerifyReduce  = 5

	razorMaxDepth    = 3
	razorMarginBase  = 240 // centipawns
	razorMarginDepth = 60  // centipawns per ply of depth

	iidMinDepth = 5
	iidReduce   = 2

	futilityMaxDepth       = 3
	futilityMoveCountBase  = 3 // first N legal moves are never futility-pruned
	lmrMinDepth            = 3
	lmrMoveCountThreshold  = 4
	lmrDeepMoveCountFactor = 2

	extensionBudget = 10 // total extension plies grantable across one search tree
)

// futilityMargin[d] is the centipawn slack allowed at depth d before a quiet
// move is skipped outright; index 0 is unused.
var futilityMargin = [futilityMaxDepth + 1]int32{0, 150, 300, 500}

// AlphaBeta implements alpha-beta pruning with the principal variation search
// pattern, null-move pruning, razoring, internal iterative deepening, futility
// pruning, late move reductions and simple search extensions layered on top.
// Pseudo-code for the unadorned recursion:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.
type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch

	// Static, if set, is consulted for the lazy evaluation used by null-move
	// pruning, razoring and futility pruning, and enables the search
	// extensions. Without it, those are all disabled and the search is plain
	// PVS with staged move ordering, which is exactly comparable to Minimax.
	Static eval.Evaluator
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	if sctx.Killers == nil {
		sctx.Killers = NewKillerTable()
	}
	if sctx.History == nil {
		sctx.History = NewHistoryTable()
	}
	stats := sctx.Stats
	if stats == nil {
		stats = &Stats{}
	}

	run := &runAlphaBeta{
		explore:   fullIfNotSet(p.Explore),
		eval:      p.Eval,
		static:    p.Static,
		tt:        sctx.TT,
		noise:     sctx.Noise,
		killers:   sctx.Killers,
		history:   sctx.History,
		stats:     stats,
		ponder:    sctx.Ponder,
		rootMoves: sctx.RootMoves,
		rootPly:   b.Ply(),
		nodeLimit: sctx.NodeLimit,
		tb:        sctx.Tablebase,
		extBudget: extensionBudget,
		b:         b,
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high)
	if contextx.IsCancelled(ctx) || score.IsInvalid() {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	explore Exploration
	eval    QuietSearch
	static  eval.Evaluator
	tt      TranspositionTable
	noise   eval.Random
	killers *KillerTable
	history *HistoryTable
	stats   *Stats
	b       *board.Board
	nodes   uint64

	rootPly   int
	rootMoves []board.Move
	nodeLimit uint64
	extBudget int
	ponder    []board.Move
	tb        *tablebase.Pool
}

// aborted is polled at node entry and once more after the move loop, before
// the node stores its result in the table. Move generation, evaluation and
// the move loop itself never poll.
func (m *runAlphaBeta) aborted(ctx context.Context) bool {
	if m.nodeLimit > 0 && m.nodes >= m.nodeLimit {
		return true
	}
	return contextx.IsCancelled(ctx)
}

// search returns the positive score for the color to move.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if m.aborted(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}
	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++

	// Tablebase probe, away from the root (the root must produce a move). A
	// cache hit adjudicates the subtree; a miss schedules a background fetch
	// and the search continues as if there were no tablebase.
	if m.tb != nil && m.b.Ply() > m.rootPly && pieceTotal(m.b.Position()) <= m.tb.MaxPieces() {
		if r, ok := m.tb.FirmProbe(ctx, m.b.Position()); ok {
			switch r {
			case tablebase.Win:
				return eval.HeuristicScore(tbWinPawns), nil
			case tablebase.Loss:
				return eval.HeuristicScore(-tbWinPawns), nil
			default:
				return eval.ZeroScore, nil
			}
		}
	}

	// No score can be better than mating on the very next move, or worse than
	// being mated on the spot: clip the window by the mate bounds before any
	// work is spent.
	alpha = eval.Max(alpha, eval.MatedInXScore(0))
	beta = eval.Min(beta, eval.MateInXScore(1))
	if !alpha.Less(beta) {
		return alpha, nil
	}

	turn := m.b.Turn()
	inCheck := m.b.Position().IsChecked(turn)
	nonPV := beta.CP()-alpha.CP() <= 1
	origAlpha := alpha

	hash := m.b.Hash()

	var best board.Move
	mateThreat := false
	if bound, d, score, mv, mt, ok := m.tt.Read(hash); ok {
		best = mv
		mateThreat = mt
		if d >= depth {
			switch bound {
			case ExactBound:
				m.stats.TTCutoffs++
				return score, nil
			case LowerBound:
				if alpha.Less(score) {
					alpha = score
				}
			case UpperBound:
				if score.Less(beta) {
					beta = score
				}
			}
			if !alpha.Less(beta) {
				m.stats.TTCutoffs++
				return alpha, nil
			}
		}
	}

	var staticScore eval.Score
	haveStatic := false
	lazyEval := func() eval.Score {
		if !haveStatic {
			staticScore = eval.HeuristicScore(m.static.Evaluate(ctx, m.b) + m.noise.Evaluate(ctx, m.b))
			haveStatic = true
		}
		return staticScore
	}

	_, mateBoundAlpha := alpha.MateDistance()
	_, mateBoundBeta := beta.MateDistance()
	mateBoundWindow := mateBoundAlpha || mateBoundBeta

	// Null-move pruning: if even giving the opponent a free move can't save
	// them, this position is winning enough to prune outright.
	if m.static != nil && nonPV && !inCheck && !mateThreat &&
		depth >= nullMoveMinDepth && hasNonPawnMaterial(m.b.Position(), turn) &&
		lazyEval().CP() >= beta.CP()-nullMoveMargin {

		r := nullMoveReduction
		if depth >= nullMoveDeepDepth {
			r = nullMoveDeepReduction
		}
		if rd := depth - 1 - r; rd >= 0 {
			m.stats.NullTries++
			m.b.PushNull()
			nullScore, _ := m.search(ctx, rd, beta.Negate(), beta.Dec().Negate())
			nullScore = eval.IncrementMateDistance(nullScore).Negate()
			m.b.PopNull()

			switch {
			case nullScore.IsInvalid():
				return eval.InvalidScore, nil
			case !nullScore.Less(beta):
				verifyDepth := depth - nullMoveVerifyReduce
				if verifyDepth < 1 {
					m.stats.NullCutoffs++
					return beta, nil // too shallow to verify; trust the null score
				}
				vScore, _ := m.search(ctx, verifyDepth, beta.Dec(), beta)
				if vScore.IsInvalid() {
					return eval.InvalidScore, nil
				}
				if !vScore.Less(beta) {
					m.stats.NullCutoffs++
					return beta, nil
				}
			default:
				if _, isMate := nullScore.MateDistance(); isMate && nullScore.CP() < 0 {
					// Standing still walks into a mate: something is hanging.
					mateThreat = true
				}
			}
		}
	}

	// Razoring: deep enough below beta with no hash move that a quiescence
	// search is very unlikely to recover, so just run it and trust the result.
	if m.static != nil && nonPV && best.IsZero() && depth <= razorMaxDepth &&
		!mateThreat && !inCheck && !mateBoundWindow {
		margin := int32(razorMarginBase + razorMarginDepth*depth)
		if lazyEval().CP()+margin < beta.CP() {
			m.stats.RazorTries++
			qsctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
			nodes, qScore := m.eval.QuietSearch(ctx, qsctx, m.b)
			m.nodes += nodes
			if depth == 1 || qScore.Less(beta) {
				m.stats.RazorPrunes++
				return qScore, nil
			}
		}
	}

	// Internal iterative deepening: populate a hash move to order the move
	// loop when none is known and the remaining depth justifies the cost.
	if m.static != nil && best.IsZero() && depth >= iidMinDepth {
		m.stats.IIDRuns++
		m.search(ctx, depth-iidReduce, alpha, beta)
		if _, d, _, mv, _, ok := m.tt.Read(hash); ok && d >= depth-iidReduce {
			best = mv
		}
	}

	// A forced reply deserves a deeper look; checked once per node since the
	// answer is the same for every candidate move.
	singleReply := m.static != nil && inCheck && m.b.Position().HasSingleReply()

	hasLegalMove := false
	failHigh := false
	var pv []board.Move
	var triedQuiets []board.Move
	moveCount := 0

	_, explore := m.explore(ctx, m.b)
	scorer := m.stagedPriority(m.b.Ply())

	if m.b.Ply() == m.rootPly && len(m.rootMoves) > 0 {
		// Restricted root ("go searchmoves"): only the given moves, in order.
		scorer, explore = Selection(m.rootMoves)
		scorer = board.First(best, scorer)
	} else {
		scorer = board.First(best, scorer)
	}

	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals // overwrite: use ponder move even if not intended to be explored
		m.ponder = m.ponder[1:]
	}

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(), scorer)
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}
		hasLegalMove = true
		moveCount++

		if !explore(move) {
			m.b.PopMove()
			continue
		}

		quiet := !move.Type.IsCapture() && !move.Type.IsPromotion()
		givesCheck := m.b.Position().IsChecked(m.b.Turn())

		ext := m.computeExtension(move, givesCheck, singleReply, turn)
		if ext > 0 && m.extBudget <= 0 {
			ext = 0
		}
		if ext > 0 {
			m.extBudget -= ext
		}

		if quiet && nonPV && !inCheck && !givesCheck && ext == 0 && !mateThreat &&
			depth <= futilityMaxDepth && moveCount > futilityMoveCountBase && m.static != nil {

			if m.history.Prunable(turn, move) || lazyEval().CP()+futilityMargin[depth] < beta.CP() {
				if ext > 0 {
					m.extBudget += ext
				}
				m.stats.Futility++
				m.b.PopMove()
				continue // futility: this quiet move is very unlikely to matter here
			}
		}

		newDepth := depth - 1 + ext
		reduction := 0
		if m.static != nil && quiet && ext == 0 && !mateThreat && !givesCheck && !inCheck && !move.Type.IsCastle() &&
			depth > lmrMinDepth && moveCount > lmrMoveCountThreshold {
			reduction = 1
			if moveCount > lmrMoveCountThreshold*lmrDeepMoveCountFactor {
				reduction = 2
			}
			if newDepth-reduction < 1 {
				reduction = newDepth - 1
			}
			if reduction < 0 {
				reduction = 0
			}
		}

		var score eval.Score
		var rem []board.Move
		switch {
		case moveCount == 1:
			score, rem = m.search(ctx, newDepth, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
		default:
			score, rem = m.search(ctx, newDepth-reduction, alpha.Negate().Dec(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			if reduction > 0 && !score.IsInvalid() && alpha.Less(score) {
				// Failed high on the reduced search: re-search at full depth, still zero window.
				score, rem = m.search(ctx, newDepth, alpha.Negate().Dec(), alpha.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}
			if !score.IsInvalid() && alpha.Less(score) && score.Less(beta) {
				// Failed high on the null window: re-search with the full window (PVS).
				score, rem = m.search(ctx, newDepth, beta.Negate(), alpha.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}
		}

		if ext > 0 {
			m.extBudget += ext
		}
		m.b.PopMove()

		if score.IsInvalid() {
			// Aborted below: unwind without polluting alpha or the table.
			return eval.InvalidScore, nil
		}

		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
		}
		if !alpha.Less(beta) {
			failHigh = true
			m.stats.FailHighs++
			if moveCount == 1 {
				m.stats.FirstMoveFailHighs++
			}
			if quiet {
				if _, isMate := alpha.MateDistance(); isMate && alpha.CP() > 0 {
					m.killers.AddMate(m.b.Ply(), move)
				} else {
					m.killers.Add(m.b.Ply(), move)
				}
				m.history.Good(turn, move, depth)
			}
			for _, tried := range triedQuiets {
				m.history.Bad(turn, tried, depth)
			}
			break // cutoff
		}
		if quiet {
			triedQuiets = append(triedQuiets, move)
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MatedInXScore(0), nil
		}
		return eval.ZeroScore, nil
	}

	if m.aborted(ctx) {
		return eval.InvalidScore, nil
	}

	bound := ExactBound
	switch {
	case failHigh:
		bound = LowerBound
	case !origAlpha.Less(alpha):
		bound = UpperBound
	}
	m.tt.Write(hash, bound, m.b.Ply(), depth, alpha, firstOrNone(pv), mateThreat)
	return alpha, pv
}

// stagedPriority composes a single MovePriorityFn implementing the staged
// selection order: good tactical moves (SEE >= 0, MVV-LVA
// ordered) first, then killers for this ply and the ply two up, then quiet
// moves by history value, then bad tactical moves (SEE < 0) last. The hash
// move itself is layered on top by the caller via board.First.
func (m *runAlphaBeta) stagedPriority(ply int) board.MovePriorityFn {
	const (
		goodTacticalBand = 20000
		killerBand       = 15000
		quietBand        = 0
		badTacticalBand  = -20000
	)
	return func(mv board.Move) board.MovePriority {
		switch {
		case mv.Type.IsCapture() || mv.Type.IsPromotion():
			mvvlva := int(MVVLVA(mv))
			if m.b.Position().StaticExchangeEval(mv) >= 0 {
				return board.MovePriority(goodTacticalBand + mvvlva)
			}
			return board.MovePriority(badTacticalBand + mvvlva)
		default:
			if rank, ok := m.killers.rank(ply, mv); ok {
				return board.MovePriority(killerBand + rank)
			}
			h := m.history.Score(m.b.Turn(), mv)
			if h > 10000 {
				h = 10000
			} else if h < -10000 {
				h = -10000
			}
			return board.MovePriority(quietBand + int(h))
		}
	}
}

// computeExtension applies the search's extension heuristics: giving check,
// pushing a pawn to the 7th rank (one step from promoting), and responding to
// a check with the only legal reply. At most one extension ply is granted per
// move regardless of how many reasons apply. Extensions only run in
// full-strength mode (Static set), like the prunings.
func (m *runAlphaBeta) computeExtension(move board.Move, givesCheck, singleReply bool, turn board.Color) int {
	if m.static == nil {
		return 0
	}
	switch {
	case givesCheck:
		return 1
	case move.Piece == board.Pawn && move.To.RelativeRank(turn) == board.Rank7:
		return 1
	case singleReply:
		return 1
	default:
		return 0
	}
}

// pieceTotal counts every piece on the board, kings included, to gate
// tablebase probes by coverage.
func pieceTotal(pos *board.Position) int {
	total := 0
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.Pawn; p < board.NumPieces; p++ {
			total += pos.PieceCount(c, p)
		}
	}
	return total
}

// hasNonPawnMaterial returns true iff the given side has any piece other than
// pawns and its king, the standard gate against null-move pruning in the
// zugzwang-prone king-and-pawn endgame.
func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return pos.PieceCount(c, board.Knight) > 0 ||
		pos.PieceCount(c, board.Bishop) > 0 ||
		pos.PieceCount(c, board.Rook) > 0 ||
		pos.PieceCount(c, board.Queen) > 0
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
