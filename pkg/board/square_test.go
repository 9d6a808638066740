package board_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	assert.True(t, board.Rank1.IsValid())
	assert.True(t, board.Rank3.IsValid())
	assert.True(t, board.Rank8.IsValid())
	assert.False(t, board.Rank(8).IsValid())

	assert.Equal(t, "1", board.Rank1.String())
	assert.Equal(t, "7", board.Rank7.String())
	assert.Equal(t, "5", board.Rank(4).String())
}

func TestFile(t *testing.T) {
	assert.True(t, board.FileA.IsValid())
	assert.True(t, board.FileB.IsValid())
	assert.True(t, board.FileH.IsValid())

	assert.Equal(t, "a", board.FileA.String())
	assert.Equal(t, "g", board.FileG.String())
	assert.Equal(t, "e", board.File(4).String())
}

func TestSquare(t *testing.T) {
	assert.Equal(t, board.C2, board.NewSquare(board.FileC, board.Rank2))
	assert.Equal(t, board.G5, board.NewSquare(board.FileG, board.Rank5))

	assert.True(t, board.H1.IsValid())
	assert.True(t, board.D4.IsValid())
	assert.True(t, board.A8.IsValid())
	assert.False(t, board.Square(0x08).IsValid()) // off-board: file nibble's top bit set
	assert.False(t, board.Square(0x80).IsValid())

	assert.Equal(t, "h1", board.H1.String())
	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "e1", board.E1.String())
	assert.Equal(t, "-", board.NoSquare.String())
}

func TestSquareRankFile(t *testing.T) {
	sq := board.NewSquare(board.FileD, board.Rank4)
	assert.Equal(t, board.FileD, sq.File())
	assert.Equal(t, board.Rank4, sq.Rank())
}

func TestSquareFlipRank(t *testing.T) {
	assert.Equal(t, board.A8, board.A1.FlipRank())
	assert.Equal(t, board.H1, board.H8.FlipRank())
	assert.Equal(t, board.D4, board.D5.FlipRank())
}

func TestSquareParse(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.E4, sq)

	_, err = board.ParseSquareStr("z9")
	assert.Error(t, err)
}
