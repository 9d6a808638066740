package board

// seeValue is the material value used by the exchange evaluator; the king is
// given a large finite value so it can still "participate" in gain bookkeeping
// without ever being profitably capturable.
func seeValue(p Piece) int {
	if p == King {
		return int(MaterialValue(Queen)) + 1
	}
	return int(MaterialValue(p))
}

// StaticExchangeEval returns the net material gain, in centipawns, of playing
// out the full capture sequence on the move's target square to its end under
// optimal play by both sides. A non-capturing move always evaluates to 0. Does
// not account for pins: a pinned attacker is still counted as available, a
// standard simplification that keeps the evaluator cheap.
func (p *Position) StaticExchangeEval(m Move) int {
	if !m.Type.IsCapture() {
		return 0
	}

	targetSq := m.To
	attackerSq := m.From
	attacker := m.Piece
	captured := m.Capture
	if m.Type == EnPassant {
		captured = Pawn
	}

	var attackers [NumColors][]Square
	for side := ZeroColor; side < NumColors; side++ {
		for pt := Pawn; pt <= King; pt++ {
			for _, sq := range p.PieceSquares(side, pt) {
				if sq == attackerSq {
					continue
				}
				ad := PossibleAttackers(sq, targetSq)
				if ad&FlagOf(side, pt) == 0 {
					continue
				}
				if !pt.IsSlider() {
					attackers[side] = append(attackers[side], sq)
					continue
				}
				if p.firstBlockerAlong(sq, targetSq) == targetSq {
					attackers[side] = append(attackers[side], sq)
				}
			}
		}
	}

	// gain[d] is the running material swing if the capture sequence stops after
	// the d'th capture; gain entries are only recorded for captures an attacker
	// actually exists for, so the minimax fold below can reach gain[0].
	side := p.color[attackerSq]
	var gain [32]int
	gain[0] = seeValue(captured)
	d := 0

	curSq := attackerSq
	curVal := seeValue(attacker)

	for d < len(gain)-1 {
		// The current attacker has moved onto targetSq: reveal any x-ray slider
		// standing behind its origin square along the same line.
		if step := RayStep(curSq, targetSq); step != 0 {
			sq := Square(int(curSq) - int(step))
			for sq.IsValid() && p.board[sq] == NoPiece {
				sq = Square(int(sq) - int(step))
			}
			if sq.IsValid() {
				if xrayPiece := p.board[sq]; xrayPiece.IsSlider() {
					xrayColor := p.color[sq]
					if PossibleAttackers(sq, targetSq)&FlagOf(xrayColor, xrayPiece) != 0 {
						attackers[xrayColor] = append(attackers[xrayColor], sq)
					}
				}
			}
		}

		side = side.Opponent()

		leastValue := seeValue(King) + 1
		leastIdx := -1
		for i, sq := range attackers[side] {
			v := seeValue(p.board[sq])
			if v < leastValue {
				leastValue = v
				leastIdx = i
			}
		}
		if leastIdx == -1 {
			break
		}

		nextSq := attackers[side][leastIdx]
		if p.board[nextSq] == King && len(attackers[side.Opponent()]) > 0 {
			break // the king cannot capture onto a defended square
		}
		attackers[side][leastIdx] = attackers[side][len(attackers[side])-1]
		attackers[side] = attackers[side][:len(attackers[side])-1]

		d++
		gain[d] = curVal - gain[d-1]
		curSq = nextSq
		curVal = leastValue
	}

	// Fold backwards: at every step the capturing side may decline, so the
	// stand-pat value bounds the continuation.
	for ; d > 0; d-- {
		if -gain[d] < gain[d-1] {
			gain[d-1] = -gain[d]
		}
	}
	return gain[0]
}

// firstBlockerAlong returns the first occupied square walking from "from"
// towards "to" along their shared ray (exclusive of "from"), or "to" itself if
// nothing blocks the way. Assumes from and to share a rank, file or diagonal.
func (p *Position) firstBlockerAlong(from, to Square) Square {
	step := RayStep(from, to)
	if step == 0 {
		return to
	}
	sq := Square(int(from) + int(step))
	for sq.IsValid() && sq != to {
		if p.board[sq] != NoPiece {
			return sq
		}
		sq = Square(int(sq) + int(step))
	}
	return to
}
