package board

// PseudoLegalMoves generates all pseudo-legal moves for the side to move: legal
// except for possibly leaving the mover's own king in check. Board.PushMove uses
// Position.IsChecked after a speculative Make to filter those out: validating
// lazily is cheaper than up-front legality checks when search prunes most moves.
func (p *Position) PseudoLegalMoves() []Move {
	var moves []Move
	moves = p.appendPawnMoves(moves, true, true)
	moves = p.appendPieceMoves(moves, true, true)
	moves = p.appendCastles(moves)
	return moves
}

// TacticalMoves generates captures and promotions only, for quiescence search.
func (p *Position) TacticalMoves() []Move {
	var moves []Move
	moves = p.appendPawnMoves(moves, true, false)
	moves = p.appendPieceMoves(moves, true, false)
	return moves
}

// QuietMoves generates non-capturing, non-promoting moves only.
func (p *Position) QuietMoves() []Move {
	var moves []Move
	moves = p.appendPawnMoves(moves, false, true)
	moves = p.appendPieceMoves(moves, false, true)
	moves = p.appendCastles(moves)
	return moves
}

// Evasions generates pseudo-legal moves while in check. It is just the general
// move generator, with no restriction to moves that might escape check; legality
// is verified by the caller via make+IsChecked, as for any other pseudo-legal move.
func (p *Position) Evasions() []Move {
	return p.PseudoLegalMoves()
}

// IsLegal returns true iff the pseudo-legal move does not leave the mover's own
// king in check.
func (p *Position) IsLegal(m Move) bool {
	turn := p.turn
	u := p.Make(m)
	legal := !p.IsChecked(turn)
	p.Unmake(m, u)
	return legal
}

// LegalMoves returns only the moves that do not leave the mover's king in check.
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if p.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasSingleReply returns true iff the side to move has exactly one legal move,
// used both for the single-reply search extension and the "obvious move"
// early-stop heuristic in iterative deepening.
func (p *Position) HasSingleReply() bool {
	pseudo := p.PseudoLegalMoves()
	count := 0
	for _, m := range pseudo {
		if p.IsLegal(m) {
			count++
			if count > 1 {
				return false
			}
		}
	}
	return count == 1
}

func (p *Position) appendPawnMoves(moves []Move, tactical, quiet bool) []Move {
	turn := p.turn
	opp := turn.Opponent()

	step := 16
	startRank := Rank2
	promoRank := Rank8
	if turn == Black {
		step = -16
		startRank = Rank7
		promoRank = Rank1
	}

	for _, from := range p.PieceSquares(turn, Pawn) {
		one := Square(int(from) + step)
		if !one.IsValid() {
			continue
		}

		if p.IsEmpty(one) {
			if one.Rank() == promoRank {
				if tactical {
					moves = appendPromotions(moves, from, one, NoPiece, false)
				}
			} else if quiet {
				moves = append(moves, Move{Type: Push, From: from, To: one, Piece: Pawn})
				if from.Rank() == startRank {
					two := Square(int(from) + 2*step)
					if two.IsValid() && p.IsEmpty(two) {
						moves = append(moves, Move{Type: Jump, From: from, To: two, Piece: Pawn})
					}
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			if !validFileRank(int(from.File())+df, int(one.Rank())) {
				continue
			}
			to := Square(int(one) + df)
			if !to.IsValid() {
				continue
			}
			if c, target, ok := p.Square(to); ok && c == opp {
				if !tactical {
					continue
				}
				if to.Rank() == promoRank {
					moves = appendPromotions(moves, from, to, target, true)
				} else {
					moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: target})
				}
			} else if ep, ok := p.EnPassant(); ok && to == ep && tactical {
				moves = append(moves, Move{Type: EnPassant, From: from, To: to, Piece: Pawn, Capture: Pawn})
			}
		}
	}
	return moves
}

// appendCastles adds pseudo-legal castling moves: rights held, squares between
// king and rook empty, and king not currently in check nor passing through or
// landing on an attacked square.
func (p *Position) appendCastles(moves []Move) []Move {
	turn := p.turn
	opp := turn.Opponent()
	rank := Rank1
	kingSideRight, queenSideRight := WhiteKingSideCastle, WhiteQueenSideCastle
	if turn == Black {
		rank = Rank8
		kingSideRight, queenSideRight = BlackKingSideCastle, BlackQueenSideCastle
	}

	king := NewSquare(FileE, rank)
	if p.KingSquare(turn) != king || p.IsAttacked(opp, king) {
		return moves
	}

	if p.castling.IsAllowed(kingSideRight) {
		f, g, h := NewSquare(FileF, rank), NewSquare(FileG, rank), NewSquare(FileH, rank)
		if p.IsEmpty(f) && p.IsEmpty(g) && p.board[h] == Rook &&
			!p.IsAttacked(opp, f) && !p.IsAttacked(opp, g) {
			moves = append(moves, Move{Type: KingSideCastle, From: king, To: g, Piece: King})
		}
	}
	if p.castling.IsAllowed(queenSideRight) {
		b, c, d, a := NewSquare(FileB, rank), NewSquare(FileC, rank), NewSquare(FileD, rank), NewSquare(FileA, rank)
		if p.IsEmpty(b) && p.IsEmpty(c) && p.IsEmpty(d) && p.board[a] == Rook &&
			!p.IsAttacked(opp, d) && !p.IsAttacked(opp, c) {
			moves = append(moves, Move{Type: QueenSideCastle, From: king, To: c, Piece: King})
		}
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square, capture Piece, isCapture bool) []Move {
	t := Promotion
	if isCapture {
		t = CapturePromotion
	}
	for _, promo := range [4]Piece{Queen, Rook, Bishop, Knight} {
		moves = append(moves, Move{Type: t, From: from, To: to, Piece: Pawn, Promotion: promo, Capture: capture})
	}
	return moves
}

var queenSteps = append(append([]int{}, bishopSteps[:]...), rookSteps[:]...)

func (p *Position) appendPieceMoves(moves []Move, tactical, quiet bool) []Move {
	turn := p.turn
	opp := turn.Opponent()

	for _, piece := range [4]Piece{Knight, Bishop, Rook, Queen} {
		for _, from := range p.PieceSquares(turn, piece) {
			if piece == Knight {
				for _, d := range knightDeltas {
					to := Square(int(from) + d)
					if !to.IsValid() {
						continue
					}
					moves = p.appendStep(moves, turn, opp, piece, from, to, tactical, quiet)
				}
				continue
			}

			var steps []int
			switch piece {
			case Bishop:
				steps = bishopSteps[:]
			case Rook:
				steps = rookSteps[:]
			case Queen:
				steps = queenSteps
			}
			for _, d := range steps {
				to := Square(int(from) + d)
				for to.IsValid() {
					var stop bool
					moves, stop = p.appendSlideStep(moves, turn, opp, piece, from, to, tactical, quiet)
					if stop {
						break
					}
					to = Square(int(to) + d)
				}
			}
		}
	}

	// King, including all non-castling king moves.
	from := p.KingSquare(turn)
	for _, d := range kingDeltas {
		to := Square(int(from) + d)
		if !to.IsValid() {
			continue
		}
		moves = p.appendStep(moves, turn, opp, King, from, to, tactical, quiet)
	}

	return moves
}

// appendStep adds a single (non-sliding) step move if the target is empty or
// holds an enemy piece.
func (p *Position) appendStep(moves []Move, turn, opp Color, piece Piece, from, to Square, tactical, quiet bool) []Move {
	if c, target, ok := p.Square(to); ok {
		if c == opp && tactical {
			moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: target})
		}
		return moves
	}
	if quiet {
		moves = append(moves, Move{Type: Normal, From: from, To: to, Piece: piece})
	}
	return moves
}

// appendSlideStep adds a sliding move one ray-step further from "from" towards
// "to" and reports whether the ray is now blocked (by a piece of either color).
func (p *Position) appendSlideStep(moves []Move, turn, opp Color, piece Piece, from, to Square, tactical, quiet bool) ([]Move, bool) {
	if c, target, ok := p.Square(to); ok {
		if c == opp && tactical {
			moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: target})
		}
		return moves, true
	}
	if quiet {
		moves = append(moves, Move{Type: Normal, From: from, To: to, Piece: piece})
	}
	return moves, false
}
