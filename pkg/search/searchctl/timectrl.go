package searchctl

import (
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"time"
)

// assumedMovesToGo is the horizon used for budgeting when the host does not
// say how many moves remain before the next time control.
const assumedMovesToGo = 40

// hardLimitFactor bounds how far a single move may overrun its target when
// the search is in the middle of something promising.
const hardLimitFactor = 8

// TimeControl represents the clock state the host reported with "go": the
// remaining time and increment per side and, optionally, the number of moves
// to the next time control.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // 0 == rest of game
}

// Limits returns the soft target and hard limit for making a move with the
// given color. The target is the per-move budget (remaining + movestogo *
// increment) / movestogo; the hard limit caps any overrun at 8x the target,
// but never beyond the remaining clock itself. After the soft target, no new
// iteration is started; at the hard limit, the search is cut off outright.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remaining, inc := t.White, t.WhiteInc
	if c == board.Black {
		remaining, inc = t.Black, t.BlackInc
	}

	moves := time.Duration(assumedMovesToGo)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves)
	}

	target := (remaining + moves*inc) / moves
	limit := hardLimitFactor * target
	if remaining < limit {
		limit = remaining
	}

	// Half the target is the point after which a new, deeper iteration is
	// unlikely to complete; don't start one.
	return target / 2, limit
}

func (t TimeControl) String() string {
	base := fmt.Sprintf("%.1f+%.1f<>%.1f+%.1f", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds())
	if t.Moves == 0 {
		return base
	}
	return fmt.Sprintf("%v[moves=%v]", base, t.Moves)
}

// EnforceTimeControl schedules a hard halt of the search handle per the time
// control, if any. Returns the soft limit after which no new iteration should
// be started.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
