package engine

import (
	"math"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func mustFEN(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMaterialEvaluator(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want float64
	}{
		{"start", board.StartFEN, 0},
		{"black queen missing", "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 9},
		{"white down rook and pawn", "rnbqkbnr/pppppppp/8/8/8/8/1PPPPPPP/1NBQKBNR w Kkq - 0 1", -6},
		{"kings only", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", 0},
		{"minor pieces", "4k3/8/8/8/8/8/8/1NB1K3 w - - 0 1", 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			if got := (MaterialEvaluator{}).Evaluate(&pos); got != tc.want {
				t.Errorf("Evaluate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPieceSquareEvaluator(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want float64
	}{
		// Symmetric positions score zero.
		{"start", board.StartFEN, 0},
		{"kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", 0},
		// Endgame king: d4 = 40 for White, a8 mirrors to a1 = -50 for Black.
		{"central king", "k7/8/8/8/3K4/8/8/8 w - - 0 1", 9},
		// Black pawn on its seventh rank counts like a white pawn on e7.
		{"black pawn endgame", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", -8},
		// Developed knight in the middlegame: c3 = 10 versus b1 = -40.
		{"knight development", "rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR b KQkq - 0 1", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			if got := (PieceSquareEvaluator{}).Evaluate(&pos); !approx(got, tc.want) {
				t.Errorf("Evaluate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEndgameTablesSwitch(t *testing.T) {
	if got := pieceSquareValue(board.Pawn, board.E7, false); got != 50 {
		t.Errorf("middlegame pawn e7 = %d, want 50", got)
	}
	if got := pieceSquareValue(board.Pawn, board.E7, true); got != 80 {
		t.Errorf("endgame pawn e7 = %d, want 80", got)
	}
	if got := pieceSquareValue(board.King, board.G1, false); got != 30 {
		t.Errorf("middlegame king g1 = %d, want 30", got)
	}
	if got := pieceSquareValue(board.King, board.G1, true); got != -30 {
		t.Errorf("endgame king g1 = %d, want -30", got)
	}
	// Other pieces ignore the phase.
	if a, b := pieceSquareValue(board.Knight, board.D4, false), pieceSquareValue(board.Knight, board.D4, true); a != b {
		t.Errorf("knight d4 differs by phase: %d vs %d", a, b)
	}
}

func TestCompoundEvaluator(t *testing.T) {
	pos := mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR b KQkq - 0 1")
	material := MaterialEvaluator{}.Evaluate(&pos)
	pst := PieceSquareEvaluator{}.Evaluate(&pos)
	if got := (CompoundEvaluator{}).Evaluate(&pos); !approx(got, 2*material+pst) {
		t.Errorf("Evaluate = %v, want %v", got, 2*material+pst)
	}
}

func TestEvaluatorByName(t *testing.T) {
	for _, name := range []string{"material", "pst", "compound"} {
		if _, err := EvaluatorByName(name); err != nil {
			t.Errorf("EvaluatorByName(%q): %v", name, err)
		}
	}
	if _, err := EvaluatorByName("nnue"); err == nil {
		t.Error("EvaluatorByName(nnue) succeeded")
	}
}
