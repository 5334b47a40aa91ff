package board

// AttackersByColor returns the pieces of color c attacking sq under the
// given occupancy.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	queens := p.Kinds[Queen]
	return p.Colors[c] & ((PawnAttacks(sq, c.Other()) & p.Kinds[Pawn]) |
		(KnightMoves(sq) & p.Kinds[Knight]) |
		(KingMoves(sq) & p.Kinds[King]) |
		(BishopMoves(sq, occupied) & (p.Kinds[Bishop] | queens)) |
		(RookMoves(sq, occupied) & (p.Kinds[Rook] | queens)))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.Occupied()) != 0
}

// InCheck reports whether the king of color c is attacked. A side without
// a king is never in check.
func (p *Position) InCheck(c Color) bool {
	ksq := p.Pieces(c, King).LSB()
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, c.Other())
}

// IsLegal reports whether from -> to is a pseudo-legal move that does not
// leave the mover's king in check. Castling additionally may not start in
// or pass through check.
func (p *Position) IsLegal(from, to Square) bool {
	if !p.MovesOf(from).IsSet(to) {
		return false
	}
	return p.safeAfter(from, to)
}

// safeAfter applies a pseudo-legal move to a copy and checks king safety.
func (p *Position) safeAfter(from, to Square) bool {
	us := p.SideToMove

	if p.PieceTypeAt(from) == King && abs(to.File()-from.File()) == 2 {
		crossed := NewSquare((from.File()+to.File())/2, from.Rank())
		if p.InCheck(us) || p.IsSquareAttacked(crossed, us.Other()) {
			return false
		}
	}

	child := *p
	if err := child.MakeMove(from, to); err != nil {
		return false
	}
	return !child.InCheck(us)
}

// LegalMovesOf is MovesOf with moves that expose the mover's king removed.
func (p *Position) LegalMovesOf(sq Square) Bitboard {
	moves := p.MovesOf(sq)
	for targets := moves; targets != 0; {
		to := targets.PopLSB()
		if !p.safeAfter(sq, to) {
			moves = moves.Clear(to)
		}
	}
	return moves
}

// LegalMoves returns every legal move of the side to move.
func (p *Position) LegalMoves() []Move {
	moves := make([]Move, 0, 48)
	for pieces := p.Colors[p.SideToMove]; pieces != 0; {
		from := pieces.PopLSB()
		for targets := p.LegalMovesOf(from); targets != 0; {
			moves = append(moves, NewMove(from, targets.PopLSB()))
		}
	}
	return moves
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	for pieces := p.Colors[p.SideToMove]; pieces != 0; {
		if p.LegalMovesOf(pieces.PopLSB()) != 0 {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}
