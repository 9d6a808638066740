package engine

import (
	"bufio"
	"context"
	"fmt"
	"github.com/herohde/daydreamer/pkg/board"
	"github.com/herohde/daydreamer/pkg/board/fen"
	"os"
	"sort"
	"strings"
)

// Book represents an opening book.
type Book interface {
	// Find returns a list -- potentially empty -- of moves given a position. Once an empty
	// list is returned, the book should not be consulted again for the game.
	Find(ctx context.Context, fen string) ([]board.Move, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &book{moves: map[string][]board.Move{}}

// bookZobrist is a private table used only to decode/replay book lines; opening
// book entries are keyed by cropped FEN string, not by hash, so it need not
// agree with any engine's own ZobristTable.
var bookZobrist = board.NewZobristTable(0)

// ReadBookFile reads an opening book from a plain-text file: one line of
// coordinate-notation moves per opening line, '#' starting a comment. The
// binary CTG format some GUIs ship is deliberately not parsed.
func ReadBookFile(path string) (Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := scanner.Text()
		if i := strings.IndexRune(text, '#'); i >= 0 {
			text = text[:i]
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			lines = append(lines, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewBook(lines)
}

// NewBook creates an opening book from a set of opening lines.
func NewBook(lines []Line) (Book, error) {
	m := map[string]map[board.Move]bool{}
	for _, line := range lines {
		pos, _, _, fullmoves, err := fen.Decode(bookZobrist, fen.Initial)
		if err != nil {
			return nil, fmt.Errorf("invalid initial position: %v", err)
		}
		b := board.NewBoard(bookZobrist, pos, fullmoves)

		for _, str := range line {
			next, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			key := fen.Encode(b.Position(), b.Turn(), b.NoProgress(), b.FullMoves())

			found := false
			for _, candidate := range b.Position().PseudoLegalMoves() {
				if !candidate.Equals(next) {
					continue
				}
				if !b.PushMove(candidate) {
					return nil, fmt.Errorf("invalid line '%v': move %v not legal", line, next)
				}
				found = true

				if m[fenKey(key)] == nil {
					m[fenKey(key)] = map[board.Move]bool{}
				}
				m[fenKey(key)][candidate] = true
				break
			}

			if !found {
				return nil, fmt.Errorf("invalid line '%v': move %v not found", line, next)
			}
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range m {
		var list []board.Move
		for move := range v {
			list = append(list, move)
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].String() < list[j].String()
		})
		sort.SliceStable(list, func(i, j int) bool {
			return board.ByMVVLVA(list).Less(i, j)
		})
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

type book struct {
	moves map[string][]board.Move // cropped fen -> []move
}

func (b *book) Find(ctx context.Context, fen string) ([]board.Move, error) {
	return b.moves[fenKey(fen)], nil
}

func fenKey(pos string) string {
	parts := strings.Split(pos, " ")
	return strings.Join(parts[:4], " ")
}
