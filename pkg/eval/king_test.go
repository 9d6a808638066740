package eval_test

import (
	"testing"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"github.com/herohde/daydreamer/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKingSafetyScoreShieldedBeatsExposed(t *testing.T) {
	shielded, err := fen.NewBoard("r3k2r/pppqbppp/8/8/8/8/PPPQBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	exposed, err := fen.NewBoard("r3k2r/4b3/8/8/8/8/4B3/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	shieldedScore := eval.KingSafetyScore(shielded.Position(), board.White)
	exposedScore := eval.KingSafetyScore(exposed.Position(), board.White)
	assert.Greater(t, shieldedScore, exposedScore)
}

func TestKingSafetyScoreSkipsAttackScanWithoutQueen(t *testing.T) {
	b, err := fen.NewBoard("4k3/8/8/8/8/8/4P3/4K2R w K - 0 1")
	require.NoError(t, err)

	// Should not panic and should just reduce to the shield score.
	score := eval.KingSafetyScore(b.Position(), board.White)
	assert.NotPanics(t, func() { eval.KingSafetyScore(b.Position(), board.White) })
	_ = score
}
