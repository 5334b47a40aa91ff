package engine

import (
	"cmp"
	"slices"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/exp/maps"
)

// Move ordering priorities
const (
	promotionScore = 100 // Pawn reaching the last rank
	captureBase    = 10  // Any capture sorts ahead of quiet moves
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
// Score = victimValue * 10 - attackerValue
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11}, // Pawn victim
	/* N */ {25, 24, 24, 23, 22, 21}, // Knight victim
	/* B */ {35, 34, 34, 33, 32, 31}, // Bishop victim
	/* R */ {45, 44, 44, 43, 42, 41}, // Rook victim
	/* Q */ {55, 54, 54, 53, 52, 51}, // Queen victim
	/* K */ {0, 0, 0, 0, 0, 0},       // King can't be captured
}

// scoreMove ranks m in pos; higher is searched first.
func scoreMove(pos *board.Position, m board.Move) int {
	from, to := m.From(), m.To()
	attacker := pos.PieceTypeAt(from)

	score := 0
	if victim := pos.PieceTypeAt(to); victim != board.NoPieceType {
		score += captureBase + mvvLva[victim][attacker]
	} else if attacker == board.Pawn && to == pos.EnPassant {
		score += captureBase + mvvLva[board.Pawn][board.Pawn]
	}
	if pos.NeedsPromotion(from, to) {
		score += promotionScore
	}
	return score
}

// ordered returns the children best-first: promotions, then captures by
// MVV-LVA, then quiet moves. Ties fall back to the move encoding so every
// search visits children in the same order.
func (n *Node) ordered() []*Node {
	children := maps.Values(n.Children)
	scores := make(map[board.Move]int, len(children))
	for _, child := range children {
		scores[child.Move] = scoreMove(&n.Position, child.Move)
	}

	slices.SortFunc(children, func(a, b *Node) int {
		if c := cmp.Compare(scores[b.Move], scores[a.Move]); c != 0 {
			return c
		}
		return cmp.Compare(a.Move, b.Move)
	})
	return children
}
