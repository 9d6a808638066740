package eval

import (
	"github.com/herohde/daydreamer/pkg/board"
	"sort"
)

// FindCapture returns the pieces of the given color that directly attack the square.
func FindCapture(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement
	for _, from := range pos.Attackers(side, sq) {
		_, piece, _ := pos.Square(from)
		ret = append(ret, board.Placement{Piece: piece, Color: side, Square: from})
	}
	return ret
}

// SortByNominalValue orders the placement list by nominal material value, low to high.
func SortByNominalValue(pieces []board.Placement) []board.Placement {
	sort.SliceStable(pieces, func(i, j int) bool {
		return NominalValue(pieces[i].Piece) < NominalValue(pieces[j].Piece)
	})
	return pieces
}
