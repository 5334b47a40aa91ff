package board

import "strings"

// Color is the side a piece belongs to. White moves first and scores
// positive.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

var colorNames = [...]string{White: "White", Black: "Black", NoColor: "NoColor"}

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c > NoColor {
		return colorNames[NoColor]
	}
	return colorNames[c]
}

// PieceType is one of the six kinds of piece. The set is closed: MovesOf
// and the evaluators switch over it or index arrays by it, so adding a
// kind means touching every such site.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return pieceTypeNames[NoPieceType]
	}
	return pieceTypeNames[pt]
}

// Slides reports whether pieces of this kind move along rays, and so
// take their moves from the magic tables.
func (pt PieceType) Slides() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// Piece is a PieceType and a Color packed as type + 6*color, so that
// White pieces come first and NoPiece sorts last.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceChars is indexed by Piece.
const pieceChars = "PNBRQKpnbrqk"

// NewPiece packs pt and c. Out-of-range input gives NoPiece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the kind of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the side of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, upper case for White. NoPiece is a blank.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar parses a FEN letter.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceChars, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
