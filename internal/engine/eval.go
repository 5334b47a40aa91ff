// Package engine implements static evaluation and game-tree search.
package engine

import (
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

// Evaluator scores a position. Positive scores favor White.
type Evaluator interface {
	Evaluate(pos *board.Position) float64
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(pos *board.Position) float64

// Evaluate calls f(pos).
func (f EvaluatorFunc) Evaluate(pos *board.Position) float64 {
	return f(pos)
}

// Material values in pawns. The king is not scored.
var pieceValues = [6]float64{1, 3, 3, 5, 9, 0} // Pawn, Knight, Bishop, Rook, Queen, King

// endgamePieces is the piece count at or below which the endgame king
// and pawn tables apply.
const endgamePieces = 7

// pstScale converts table entries (centipawn-like) to evaluator units.
const pstScale = 0.1

// MaterialEvaluator counts weighted material for each side.
type MaterialEvaluator struct{}

// Evaluate returns White's material minus Black's.
func (MaterialEvaluator) Evaluate(pos *board.Position) float64 {
	var score float64
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		white := pos.Pieces(board.White, pt).PopCount()
		black := pos.Pieces(board.Black, pt).PopCount()
		score += pieceValues[pt] * float64(white-black)
	}
	return score
}

// PieceSquareEvaluator sums per-square bonuses from the piece-square
// tables. Once few pieces remain the king and pawn switch to their
// endgame tables.
type PieceSquareEvaluator struct{}

// Evaluate returns White's positional score minus Black's.
func (PieceSquareEvaluator) Evaluate(pos *board.Position) float64 {
	endgame := pos.PieceCount() <= endgamePieces

	var score int
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces(c, pt)
			for bb != 0 {
				sq := bb.PopLSB()
				if c == board.Black {
					sq = sq.Mirror() // Mirror for black
				}
				score += sign * pieceSquareValue(pt, sq, endgame)
			}
		}
	}
	return float64(score) * pstScale
}

func pieceSquareValue(pt board.PieceType, sq board.Square, endgame bool) int {
	if endgame {
		switch pt {
		case board.Pawn:
			return pawnEndgamePST[sq]
		case board.King:
			return kingEndgamePST[sq]
		}
	}
	return psts[pt][sq]
}

// CompoundEvaluator weighs material twice as much as piece placement.
type CompoundEvaluator struct{}

// Evaluate returns 2*material + piece-square.
func (CompoundEvaluator) Evaluate(pos *board.Position) float64 {
	return 2*MaterialEvaluator{}.Evaluate(pos) + PieceSquareEvaluator{}.Evaluate(pos)
}

// EvaluatorByName returns the evaluator registered under name:
// "material", "pst" or "compound".
func EvaluatorByName(name string) (Evaluator, error) {
	switch name {
	case "material":
		return MaterialEvaluator{}, nil
	case "pst":
		return PieceSquareEvaluator{}, nil
	case "compound":
		return CompoundEvaluator{}, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}
