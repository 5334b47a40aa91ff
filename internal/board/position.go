package board

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by MakeMove. The position is left untouched when any of
// them is returned.
var (
	ErrNoPiece      = errors.New("no piece on origin square")
	ErrWrongTurn    = errors.New("piece does not belong to side to move")
	ErrOffBoard     = errors.New("square off board")
	ErrBadPromotion = errors.New("invalid promotion")
	ErrIllegalMove  = errors.New("illegal move")
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// cornerRights maps a rook corner to the right lost when it is vacated or
// captured.
var cornerRights = map[Square]CastlingRights{
	A1: WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A8: BlackQueenSideCastle,
	H8: BlackKingSideCastle,
}

// Position is a complete chess position. It is a small value type: copy it
// to branch a search, compare it with ==, use it as a map key.
//
// Colors are mutually exclusive, Kinds are mutually exclusive, and the union
// of Kinds equals the union of Colors. Only MakeMove and the Put/Remove
// helpers maintain this.
type Position struct {
	Colors [2]Bitboard // [Color]
	Kinds  [6]Bitboard // [PieceType]

	SideToMove     Color
	EnPassant      Square // Target square for en passant, NoSquare if none
	CastlingRights CastlingRights
}

// NewPosition creates the starting position.
func NewPosition() Position {
	backranks := Rank1 | Rank8
	return Position{
		Colors: [2]Bitboard{Rank1 | Rank2, Rank7 | Rank8},
		Kinds: [6]Bitboard{
			Pawn:   Rank2 | Rank7,
			Knight: backranks & (FileB | FileG),
			Bishop: backranks & (FileC | FileF),
			Rook:   backranks & (FileA | FileH),
			Queen:  backranks & FileD,
			King:   backranks & FileE,
		},
		SideToMove:     White,
		EnPassant:      NoSquare,
		CastlingRights: AllCastling,
	}
}

// EmptyPosition returns a board with no pieces, white to move and no rights.
func EmptyPosition() Position {
	return Position{EnPassant: NoSquare}
}

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard {
	return p.Colors[White] | p.Colors[Black]
}

// Pieces returns the squares holding pieces of kind pt and color c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.Colors[c] & p.Kinds[pt]
}

// PieceTypeAt returns the kind of the piece on sq, or NoPieceType.
func (p *Position) PieceTypeAt(sq Square) PieceType {
	if !sq.IsValid() {
		return NoPieceType
	}
	bb := SquareBB(sq)
	for pt := Pawn; pt <= King; pt++ {
		if p.Kinds[pt]&bb != 0 {
			return pt
		}
	}
	return NoPieceType
}

// ColorAt returns the color of the piece on sq, or NoColor.
func (p *Position) ColorAt(sq Square) Color {
	if !sq.IsValid() {
		return NoColor
	}
	bb := SquareBB(sq)
	switch {
	case p.Colors[White]&bb != 0:
		return White
	case p.Colors[Black]&bb != 0:
		return Black
	}
	return NoColor
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return NewPiece(p.PieceTypeAt(sq), p.ColorAt(sq))
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.Occupied().IsSet(sq)
}

// Put places piece on sq, clearing whatever stood there first.
func (p *Position) Put(piece Piece, sq Square) {
	p.Remove(sq)
	if piece == NoPiece {
		return
	}
	bb := SquareBB(sq)
	p.Colors[piece.Color()] |= bb
	p.Kinds[piece.Type()] |= bb
}

// Remove clears sq from every board.
func (p *Position) Remove(sq Square) {
	bb := SquareBB(sq)
	p.Colors[White] &^= bb
	p.Colors[Black] &^= bb
	for pt := range p.Kinds {
		p.Kinds[pt] &^= bb
	}
}

// PieceCount returns the number of pieces on the board.
func (p *Position) PieceCount() int {
	return p.Occupied().PopCount()
}

// NeedsPromotion reports whether moving from -> to is a pawn reaching the
// last rank.
func (p *Position) NeedsPromotion(from, to Square) bool {
	return p.PieceTypeAt(from) == Pawn && to.IsValid() && to.RelativeRank(p.ColorAt(from)) == 7
}

// MakeMove applies a pseudo-legal move and passes the turn. A pawn reaching
// the last rank becomes a queen; use MakePromotion to choose otherwise.
//
// Only turn ownership is checked. Whether to is a valid destination is the
// caller's responsibility (see MovesOf and LegalMovesOf).
func (p *Position) MakeMove(from, to Square) error {
	return p.MakePromotion(from, to, Queen)
}

// MakePromotion is MakeMove with an explicit promotion kind, used only if
// the move is a promotion.
func (p *Position) MakePromotion(from, to Square, promo PieceType) error {
	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("move %s%s: %w", from, to, ErrOffBoard)
	}
	if promo < Knight || promo > Queen {
		return fmt.Errorf("move %s%s to %s: %w", from, to, promo, ErrBadPromotion)
	}
	if from == to {
		return fmt.Errorf("move %s%s: %w", from, to, ErrIllegalMove)
	}

	us := p.ColorAt(from)
	pt := p.PieceTypeAt(from)
	if us == NoColor || pt == NoPieceType {
		return fmt.Errorf("move %s%s: %w", from, to, ErrNoPiece)
	}
	if us != p.SideToMove {
		return fmt.Errorf("move %s%s by %s: %w", from, to, us, ErrWrongTurn)
	}
	them := us.Other()

	// En passant: the captured pawn stands beside the origin, not on to.
	if pt == Pawn && to == p.EnPassant && from.File() != to.File() {
		p.Remove(NewSquare(to.File(), from.Rank()))
	}

	p.Remove(to)
	p.place(us, pt, from, to)

	p.EnPassant = NoSquare
	switch pt {
	case Pawn:
		if abs(to.Rank()-from.Rank()) == 2 {
			p.EnPassant = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		}
		if to.Rank() == 0 || to.Rank() == 7 {
			p.Kinds[Pawn] &^= SquareBB(to)
			p.Kinds[promo] |= SquareBB(to)
		}
	case King:
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
		if abs(to.File()-from.File()) == 2 {
			rank := from.Rank()
			rookFrom, rookTo := NewSquare(0, rank), NewSquare(3, rank)
			if to.File() == 6 {
				rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
			}
			if p.Pieces(us, Rook).IsSet(rookFrom) && p.IsEmpty(rookTo) {
				p.place(us, Rook, rookFrom, rookTo)
			}
		}
	}

	// Rook moves or captures on a corner affect castling
	p.CastlingRights &^= cornerRights[from] | cornerRights[to]

	p.SideToMove = them
	return nil
}

// place moves a piece of kind pt and color c from -> to; to must be empty.
func (p *Position) place(c Color, pt PieceType, from, to Square) {
	moveBB := SquareBB(from) | SquareBB(to)
	p.Kinds[pt] ^= moveBB
	p.Colors[c] ^= moveBB
}

// MovesOf returns the pseudo-legal destinations of the piece on sq.
// Empty squares and pieces of the side not to move yield Empty. Moves that
// leave the mover's king in check are not filtered; see LegalMovesOf.
func (p *Position) MovesOf(sq Square) Bitboard {
	us := p.ColorAt(sq)
	if us == NoColor || us != p.SideToMove {
		return Empty
	}
	occupied := p.Occupied()

	var moves Bitboard
	switch pt := p.PieceTypeAt(sq); {
	case pt == Pawn:
		moves = PawnMoves(sq, occupied, us, p.EnPassant)
	case pt == Knight:
		moves = KnightMoves(sq)
	case pt == King:
		moves = KingMoves(sq) | p.castlingTargets(sq, us)
	case pt == Queen:
		moves = QueenMoves(sq, occupied)
	case pt.Slides():
		moves = SliderMoves(sq, occupied, FamilyOf(pt))
	}

	return moves &^ p.Colors[us]
}

// castlingTargets returns the king destinations of castling moves whose
// rights are held and whose path between king and rook is empty. Attack
// conditions are checked by LegalMovesOf.
func (p *Position) castlingTargets(sq Square, us Color) Bitboard {
	home := E1
	if us == Black {
		home = E8
	}
	if sq != home {
		return Empty
	}

	var targets Bitboard
	occupied := p.Occupied()
	rooks := p.Pieces(us, Rook)
	rank := home.Rank()

	kingSidePath := SquareBB(NewSquare(5, rank)) | SquareBB(NewSquare(6, rank))
	if p.CastlingRights.CanCastle(us, true) && rooks.IsSet(NewSquare(7, rank)) && occupied&kingSidePath == 0 {
		targets |= SquareBB(NewSquare(6, rank))
	}

	queenSidePath := SquareBB(NewSquare(1, rank)) | SquareBB(NewSquare(2, rank)) | SquareBB(NewSquare(3, rank))
	if p.CastlingRights.CanCastle(us, false) && rooks.IsSet(NewSquare(0, rank)) && occupied&queenSidePath == 0 {
		targets |= SquareBB(NewSquare(2, rank))
	}

	return targets
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	return sb.String()
}

// Validate checks the board invariants and king counts.
func (p *Position) Validate() error {
	if p.Colors[White]&p.Colors[Black] != 0 {
		return fmt.Errorf("color boards overlap")
	}
	var union Bitboard
	for pt := Pawn; pt <= King; pt++ {
		if union&p.Kinds[pt] != 0 {
			return fmt.Errorf("%s board overlaps another kind", pt)
		}
		union |= p.Kinds[pt]
	}
	if union != p.Occupied() {
		return fmt.Errorf("kind boards do not match color boards")
	}
	if p.Pieces(White, King).PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.Pieces(Black, King).PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if p.Kinds[Pawn]&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
