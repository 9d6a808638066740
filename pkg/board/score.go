package board

import "fmt"

// Score is a signed material or piece-square score in centipawns, positive
// favors the owner. It only carries the incrementally-maintained board terms;
// search scores (with mate encoding) live in the eval package. If all pawns
// become queens and the opponent keeps only the king, the material advantage
// peaks well under +/- 300.00, so 16 bits suffice.
type Score int16

const (
	MinScore Score = -30000
	MaxScore Score = 30000
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}
