package board

import "fmt"

// Move encodes an origin/destination pair in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// Promotions are implied by a pawn reaching the last rank.
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses a coordinate move string such as "g1f3".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	return NewMove(from, to), nil
}
