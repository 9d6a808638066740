package searchctl_test

import (
	"testing"
	"time"

	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
)

func TestTimeControlLimits(t *testing.T) {
	tests := []struct {
		name         string
		tc           searchctl.TimeControl
		turn         board.Color
		expectedSoft time.Duration
		expectedHard time.Duration
	}{
		{
			"sudden death",
			searchctl.TimeControl{White: 80 * time.Second, Black: 40 * time.Second},
			board.White,
			time.Second,     // (80s / 40 moves) / 2
			16 * time.Second, // 8 * 2s
		},
		{
			"reads the mover's clock",
			searchctl.TimeControl{White: 80 * time.Second, Black: 40 * time.Second},
			board.Black,
			500 * time.Millisecond,
			8 * time.Second,
		},
		{
			"increment feeds the target",
			searchctl.TimeControl{White: 40 * time.Second, WhiteInc: time.Second, Black: 40 * time.Second},
			board.White,
			time.Second,      // (40s + 40*1s) / 40 / 2
			16 * time.Second, // 8 * 2s
		},
		{
			"moves to go",
			searchctl.TimeControl{White: 60 * time.Second, Black: 60 * time.Second, Moves: 10},
			board.White,
			3 * time.Second,  // (60s / 10) / 2
			48 * time.Second, // 8 * 6s, under the remaining clock
		},
		{
			"hard limit capped by remaining clock",
			searchctl.TimeControl{White: 4 * time.Second, Black: 4 * time.Second, Moves: 2},
			board.White,
			time.Second,
			4 * time.Second, // 8 * 2s would exceed the clock
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			soft, hard := tt.tc.Limits(tt.turn)
			assert.Equal(t, tt.expectedSoft, soft)
			assert.Equal(t, tt.expectedHard, hard)
		})
	}
}
