package search_test

import (
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/search"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestKillerTable(t *testing.T) {
	k := search.NewKillerTable()

	m1 := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}
	m2 := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}
	m3 := board.Move{From: board.B1, To: board.C3, Piece: board.Knight}
	mate := board.Move{From: board.D1, To: board.H5, Piece: board.Queen}

	k.Add(4, m1)
	k.Add(4, m2)
	assert.Equal(t, []board.Move{m2, m1}, k.At(4))

	// Re-adding the primary killer does not duplicate it.
	k.Add(4, m2)
	assert.Equal(t, []board.Move{m2, m1}, k.At(4))

	// A third killer evicts the oldest.
	k.Add(4, m3)
	assert.Equal(t, []board.Move{m3, m2}, k.At(4))

	// The mate killer leads, and killers from two plies up follow.
	k.AddMate(4, mate)
	k.Add(2, m1)
	assert.Equal(t, []board.Move{mate, m3, m2, m1}, k.At(4))

	k.Clear()
	assert.Empty(t, k.At(4))
}

func TestHistoryTable(t *testing.T) {
	h := search.NewHistoryTable()

	good := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}
	bad := board.Move{From: board.A2, To: board.A3, Piece: board.Pawn}

	h.Good(board.White, good, 5)
	h.Bad(board.White, bad, 5)

	assert.Greater(t, h.Score(board.White, good), int32(0))
	assert.Less(t, h.Score(board.White, bad), int32(0))

	// Colors are tracked independently.
	assert.Equal(t, int32(0), h.Score(board.Black, good))

	h.Clear()
	assert.Equal(t, int32(0), h.Score(board.White, good))
}
