package board

// Family selects one of the two sliding-piece direction sets.
type Family uint8

const (
	RookFamily Family = iota
	BishopFamily
)

// String returns the family name.
func (f Family) String() string {
	if f == RookFamily {
		return "rook"
	}
	return "bishop"
}

// FamilyOf returns the direction set a rook or bishop slides along.
// Queens use both and are not mapped here.
func FamilyOf(pt PieceType) Family {
	if pt == Rook {
		return RookFamily
	}
	return BishopFamily
}

// Directions are (file, rank) steps.
var familyDirections = [2][4][2]int{
	RookFamily:   {{0, 1}, {0, -1}, {-1, 0}, {1, 0}},
	BishopFamily: {{-1, 1}, {1, 1}, {-1, -1}, {1, -1}},
}

// MovementMask returns the relevant occupancy mask for a slider of the
// given family on sq: every square along each ray except the last one
// before the edge, since a blocker there cannot change the attack set.
func MovementMask(sq Square, f Family) Bitboard {
	var mask Bitboard
	for _, d := range familyDirections[f] {
		for step := 1; step < 7; step++ {
			if _, ok := sq.Offset(d[0]*(step+1), d[1]*(step+1)); !ok {
				break
			}
			cur, _ := sq.Offset(d[0]*step, d[1]*step)
			mask |= SquareBB(cur)
		}
	}
	return mask
}

// AttackMask traces every ray of the family from sq, including edge
// squares, and stops at (including) the first square set in blockers.
// This is the slow reference the magic tables are built from.
func AttackMask(sq Square, blockers Bitboard, f Family) Bitboard {
	var attacks Bitboard
	for _, d := range familyDirections[f] {
		for step := 1; step < 8; step++ {
			cur, ok := sq.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			attacks |= SquareBB(cur)
			if blockers.IsSet(cur) {
				break
			}
		}
	}
	return attacks
}

// RookMoves returns rook destinations for sq given all occupied squares.
// Occupied squares on the rays are included; the caller masks its own.
func RookMoves(sq Square, occupied Bitboard) Bitboard {
	return rookMagics[sq].Attacks(occupied)
}

// BishopMoves returns bishop destinations for sq given all occupied squares.
func BishopMoves(sq Square, occupied Bitboard) Bitboard {
	return bishopMagics[sq].Attacks(occupied)
}

// QueenMoves is the union of the rook and bishop lookups on sq.
func QueenMoves(sq Square, occupied Bitboard) Bitboard {
	return RookMoves(sq, occupied) | BishopMoves(sq, occupied)
}

// SliderMoves dispatches to the family's lookup.
func SliderMoves(sq Square, occupied Bitboard, f Family) Bitboard {
	if f == RookFamily {
		return RookMoves(sq, occupied)
	}
	return BishopMoves(sq, occupied)
}
