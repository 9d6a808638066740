// Package board contains chess board representation and utilities: the 0x88
// position, move generation, static exchange evaluation and the Board wrapper
// that layers game history (repetition, fifty-move, game-ending adjudication)
// on top of a single mutable Position.
package board

import "fmt"

const (
	repetition3Limit  = 3
	repetition5Limit  = 5
	noProgressPlyLimit = 100
)

type histEntry struct {
	move       Move
	undo       Undo
	hashBefore ZobristHash
}

// Board represents a chess board, metadata and history of positions to
// correctly handle game results, notably the various draw conditions. It wraps
// a single mutable Position and an undo stack, rather than a persistent chain
// of positions: PushMove mutates the Position in place and records what is
// needed to reverse it; PopMove reverses it. Not thread-safe.
type Board struct {
	zt  *ZobristTable
	pos *Position

	fullmoves   int
	result      Result
	repetitions map[ZobristHash]int
	history     []histEntry
}

func NewBoard(zt *ZobristTable, pos *Position, fullmoves int) *Board {
	return &Board{
		zt:          zt,
		pos:         pos,
		fullmoves:   fullmoves,
		repetitions: map[ZobristHash]int{pos.Hash(): 1},
	}
}

// Fork branches off an independent copy of the board, safe to mutate (via
// PushMove/PopMove) without affecting the original.
func (b *Board) Fork() *Board {
	posCopy := *b.pos
	fork := &Board{
		zt:          b.zt,
		pos:         &posCopy,
		fullmoves:   b.fullmoves,
		result:      b.result,
		repetitions: make(map[ZobristHash]int, len(b.repetitions)),
		history:     append([]histEntry{}, b.history...),
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}
	return fork
}

func (b *Board) Position() *Position {
	return b.pos
}

func (b *Board) Turn() Color {
	return b.pos.Turn()
}

// NoProgress returns the number of consecutive ply without a capture or pawn
// move, towards the fifty-move rule.
func (b *Board) NoProgress() int {
	return b.pos.FiftyMoveCount()
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

func (b *Board) Ply() int {
	return len(b.history)
}

func (b *Board) Hash() ZobristHash {
	return b.pos.Hash()
}

func (b *Board) Result() Result {
	return b.result
}

// PushMove attempts to make a pseudo-legal move. Returns true iff legal.
func (b *Board) PushMove(m Move) bool {
	if b.result.Reason == Checkmate || b.result.Reason == Stalemate {
		return false // no legal moves exist
	}

	turn := b.pos.Turn()
	hashBefore := b.pos.Hash()
	undo := b.pos.Make(m)

	if b.pos.IsChecked(turn) {
		b.pos.Unmake(m, undo)
		return false
	}

	b.history = append(b.history, histEntry{move: m, undo: undo, hashBefore: hashBefore})
	if turn == Black {
		b.fullmoves++
	}

	hash := b.pos.Hash()
	b.repetitions[hash]++

	b.result = Result{}
	switch {
	case b.repetitions[hash] >= repetition5Limit:
		b.result = Result{Outcome: Draw, Reason: Repetition5}
	case b.repetitions[hash] >= repetition3Limit:
		b.result = Result{Outcome: Draw, Reason: Repetition3}
	case b.pos.FiftyMoveCount() >= noProgressPlyLimit:
		b.result = Result{Outcome: Draw, Reason: NoProgress}
	case b.pos.HasInsufficientMaterial():
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return true
}

// PushNull passes the move for null-move pruning: the side to move changes
// without moving a piece. It does not affect repetition/fifty-move history,
// since no move was actually played, but does extend Ply().
func (b *Board) PushNull() {
	undo := b.pos.MakeNull()
	b.history = append(b.history, histEntry{move: Move{}, undo: undo, hashBefore: b.pos.Hash()})
}

// PopNull reverses PushNull.
func (b *Board) PopNull() {
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.pos.UnmakeNull(last.undo)
}

// PopMove reverses the last move made. Returns false if there is none.
func (b *Board) PopMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}

	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	hash := b.pos.Hash()
	b.repetitions[hash]--

	turn := b.pos.Turn().Opponent() // side that made the move being undone
	b.pos.Unmake(last.move, last.undo)
	if turn == Black {
		b.fullmoves--
	}
	b.result = Result{}

	return last.move, true
}

// AdjudicateNoLegalMoves adjudicates the position assuming no legal moves
// exist. The result is then either checkmate or stalemate.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.pos.IsChecked(b.Turn()) {
		result = Result{Outcome: Loss(b.Turn()), Reason: Checkmate}
	}
	b.Adjudicate(result)
	return result
}

// Adjudicate sets the result as given, e.g. by an external tablebase or book.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

// LastMove returns the last move made, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1].move, true
}

// HasCastled returns true iff the color has castled earlier in the game.
func (b *Board) HasCastled(c Color) bool {
	turn := b.pos.Turn()
	for i := len(b.history) - 1; i >= 0; i-- {
		turn = turn.Opponent()
		if turn == c && b.history[i].move.Type.IsCastle() {
			return true
		}
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x (seen %v) noprogress=%v, fullmoves=%v, result=%v}",
		b.pos, b.Turn(), b.Hash(), b.repetitions[b.Hash()], b.NoProgress(), b.fullmoves, b.result)
}
