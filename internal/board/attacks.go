package board

// Pre-computed move tables for non-sliding pieces
var (
	knightMoves [64]Bitboard
	kingMoves   [64]Bitboard
	pawnAttacks [2][64]Bitboard // [Color][Square]
)

// Offsets are (file, rank) deltas.
var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1},
	{-1, -2}, {-1, 2},
	{1, -2}, {1, 2},
	{2, -1}, {2, 1},
}

func init() {
	for sq := A1; sq <= H8; sq++ {
		knightMoves[sq] = offsetTargets(sq, knightOffsets[:])
		kingMoves[sq] = offsetTargets(sq, kingOffsets[:])
		pawnAttacks[White][sq] = offsetTargets(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetTargets(sq, [][2]int{{-1, -1}, {1, -1}})
	}
	initMagics() // From magic.go
}

// offsetTargets unions every in-bounds square reachable from sq by one of
// the given offsets.
func offsetTargets(sq Square, offsets [][2]int) Bitboard {
	var bb Bitboard
	for _, d := range offsets {
		if to, ok := sq.Offset(d[0], d[1]); ok {
			bb |= SquareBB(to)
		}
	}
	return bb
}

// KnightMoves returns the knight destination bitboard for a square,
// treating every occupied square as capturable.
func KnightMoves(sq Square) Bitboard {
	return knightMoves[sq]
}

// KingMoves returns the king destination bitboard for a square, excluding
// castling.
func KingMoves(sq Square) Bitboard {
	return kingMoves[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// PawnMoves returns the destinations of a pawn of color c on sq.
//
// occupied is every piece on the board; diagonal captures are taken against
// it, so the caller masks out its own pieces. ep is the en-passant target
// square, or NoSquare.
func PawnMoves(sq Square, occupied Bitboard, c Color, ep Square) Bitboard {
	bb := SquareBB(sq)
	empty := ^occupied

	var moves, diag Bitboard
	if c == White {
		single := bb.North() & empty
		moves |= single
		moves |= single.North() & empty & Rank4
		// Masking to the next rank drops shifts that wrapped across a/h.
		diag = (bb<<7 | bb<<9) & rankOrEmpty(sq.Rank()+1)
		if ep != NoSquare && ep.Rank() == sq.Rank()+1 {
			moves |= diag & SquareBB(ep)
		}
	} else {
		single := bb.South() & empty
		moves |= single
		moves |= single.South() & empty & Rank5
		diag = (bb>>7 | bb>>9) & rankOrEmpty(sq.Rank()-1)
		if ep != NoSquare && ep.Rank() == sq.Rank()-1 {
			moves |= diag & SquareBB(ep)
		}
	}
	moves |= diag & occupied

	return moves
}
