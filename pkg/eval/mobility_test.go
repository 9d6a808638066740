package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMobilityOpenBeatsBlocked(t *testing.T) {
	open, err := fen.NewBoard("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	blocked, err := fen.NewBoard("4k3/8/8/8/8/3PPP2/3PQP2/3PKP2 w - - 0 1")
	require.NoError(t, err)

	openInfo := eval.ComputeMobility(open.Position())
	blockedInfo := eval.ComputeMobility(blocked.Position())
	assert.Greater(t, openInfo.Midgame[board.White], blockedInfo.Midgame[board.White])
}

func TestComputeMobilityTrappedBishop(t *testing.T) {
	b, err := fen.NewBoard("4k3/B7/1p6/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	info := eval.ComputeMobility(b.Position())
	assert.Less(t, info.Midgame[board.White], eval.Pawns(0))
}

func TestComputeMobilityRookOnSeventh(t *testing.T) {
	with7th, err := fen.NewBoard("4k3/3R4/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	without7th, err := fen.NewBoard("4k3/8/8/8/8/8/3R4/4K3 w - - 0 1")
	require.NoError(t, err)

	info7 := eval.ComputeMobility(with7th.Position())
	infoNo7 := eval.ComputeMobility(without7th.Position())
	assert.Greater(t, info7.Midgame[board.White], infoNo7.Midgame[board.White])
}
