package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ka1, Ra8; Black Kh8 boxed in by g7/h7.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log(pos.String())

	if !pos.InCheck(Black) {
		t.Fatal("Expected black to be in check")
	}
	if moves := pos.LegalMoves(); len(moves) != 0 {
		t.Errorf("Expected no legal moves, got %v", moves)
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can take the unprotected rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if got := pos.LegalMovesOf(H8); got != SquareBB(G8)|SquareBB(H7) {
		t.Errorf("LegalMovesOf(h8) = %v, want g8 and h7", got.Squares())
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsStalemate() {
		t.Error("Expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("Stalemate reported as checkmate")
	}
}

func TestPinnedPieceCannotLeaveLine(t *testing.T) {
	// White knight on e2 is pinned by the rook on e8.
	pos, err := ParseFEN("4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.MovesOf(E2) == 0 {
		t.Fatal("Expected pseudo-legal knight moves")
	}
	if got := pos.LegalMovesOf(E2); got != 0 {
		t.Errorf("Pinned knight has legal moves %v", got.Squares())
	}
}

func TestCastlingLegality(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		to   Square
		want bool
	}{
		{"kingside free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", E1, G1, true},
		{"queenside free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", E1, C1, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", E1, G1, false},
		{"path blocked", "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1", E1, G1, false},
		{"king in check", "4k3/8/8/8/4r3/8/8/R3K2R w KQ - 0 1", E1, G1, false},
		{"crossing attacked", "4k3/8/8/8/5r2/8/8/R3K2R w KQ - 0 1", E1, G1, false},
		{"landing attacked", "4k3/8/8/8/6r1/8/8/R3K2R w KQ - 0 1", E1, G1, false},
		{"b1 attacked is fine", "4k3/8/8/8/1r6/8/8/R3K2R w KQ - 0 1", E1, C1, true},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", E8, G8, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := pos.IsLegal(tc.from, tc.to); got != tc.want {
				t.Errorf("IsLegal(%s%s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	// Black pawn on e4 can capture en passant on d3, but that would expose
	// the black king on a4 to the white rook on h4.
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if !pos.MovesOf(E4).IsSet(D3) {
		t.Fatal("Expected en passant among pseudo-legal moves")
	}
	if pos.LegalMovesOf(E4).IsSet(D3) {
		t.Error("En passant exd3 should be illegal (horizontal pin)")
	}
}
