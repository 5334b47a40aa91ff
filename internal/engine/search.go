package engine

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/sync/errgroup"
)

// MateScore is the magnitude of a checkmate score. Mates found with more
// depth left, that is sooner, score further from zero.
const MateScore = 1000.0

// SearchResult is the outcome of a root search.
type SearchResult struct {
	Move  board.Move
	Score float64
	Depth int
	Nodes uint64
}

// searcher carries per-search state shared by every goroutine of one
// search.
type searcher struct {
	eval  Evaluator
	nodes atomic.Uint64
	stop  *atomic.Bool
}

func (s *searcher) stopped() bool {
	return s.stop != nil && s.stop.Load()
}

// terminal scores a node whose side to move has no legal moves.
func terminal(n *Node, depth int) float64 {
	if !n.Position.InCheck(n.Position.SideToMove) {
		return 0 // Stalemate
	}
	score := MateScore + float64(depth)
	if n.Position.SideToMove == board.White {
		return -score
	}
	return score
}

func (s *searcher) minimax(n *Node, depth int, alpha, beta float64, maximizing bool) float64 {
	s.nodes.Add(1)

	if depth == 0 {
		n.Eval = s.eval.Evaluate(&n.Position)
		return n.Eval
	}

	n.expand()
	if len(n.Children) == 0 {
		n.Eval = terminal(n, depth)
		return n.Eval
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}

	for _, child := range n.ordered() {
		if s.stopped() {
			break
		}
		score := s.minimax(child, depth-1, alpha, beta, !maximizing)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	n.Eval = best
	n.Depth = max(n.Depth, depth)
	return best
}

// better reports whether a improves on b for the side to move.
func better(a, b float64, maximizing bool) bool {
	if maximizing {
		return a > b
	}
	return a < b
}

// searchRoot runs a full-window search from the root and picks the best
// child. Root children are searched sequentially, sharing the window.
func (t *GameTree) searchRoot(s *searcher, depth int) SearchResult {
	root := t.root
	maximizing := root.Position.SideToMove == board.White
	res := SearchResult{Depth: depth}

	if depth == 0 {
		res.Score = s.minimax(root, 0, math.Inf(-1), math.Inf(1), maximizing)
		t.eval.Store(res.Score)
		return res
	}

	root.expand()
	s.nodes.Add(1)
	if len(root.Children) == 0 {
		root.Eval = terminal(root, depth)
		res.Score = root.Eval
		t.eval.Store(res.Score)
		return res
	}

	alpha, beta := math.Inf(-1), math.Inf(1)
	res.Score = math.Inf(1)
	if maximizing {
		res.Score = math.Inf(-1)
	}
	for _, child := range root.ordered() {
		if s.stopped() {
			break
		}
		score := s.minimax(child, depth-1, alpha, beta, !maximizing)
		if s.stopped() {
			break
		}
		if res.Move == board.NoMove || better(score, res.Score, maximizing) {
			res.Move, res.Score = child.Move, score
			t.eval.Store(score)
		}
		if maximizing {
			alpha = max(alpha, res.Score)
		} else {
			beta = min(beta, res.Score)
		}
	}

	// Stopped before any child finished: keep the previous score.
	if res.Move == board.NoMove {
		res.Score = root.Eval
		return res
	}
	root.Eval = res.Score
	root.Depth = max(root.Depth, depth)
	return res
}

// searchRootParallel searches every root child in its own goroutine with
// the full window, so each child gets its exact value, then reduces in
// move order. The eval cell follows the best finished child.
func (t *GameTree) searchRootParallel(s *searcher, depth int) SearchResult {
	root := t.root
	if depth == 0 {
		return t.searchRoot(s, depth)
	}

	root.expand()
	children := root.ordered()
	if len(children) == 0 {
		return t.searchRoot(s, depth)
	}

	maximizing := root.Position.SideToMove == board.White
	s.nodes.Add(1)

	var running atomic.Uint64
	worst := math.Inf(1)
	if maximizing {
		worst = math.Inf(-1)
	}
	running.Store(math.Float64bits(worst))

	scores := make([]float64, len(children))
	done := make([]bool, len(children))
	var g errgroup.Group
	for i, child := range children {
		i, child := i, child
		g.Go(func() error {
			score := s.minimax(child, depth-1, math.Inf(-1), math.Inf(1), !maximizing)
			if s.stopped() {
				return nil
			}
			scores[i], done[i] = score, true
			for {
				cur := running.Load()
				if !better(score, math.Float64frombits(cur), maximizing) {
					break
				}
				if running.CompareAndSwap(cur, math.Float64bits(score)) {
					t.eval.Store(math.Float64frombits(running.Load()))
					break
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	res := SearchResult{Depth: depth, Score: root.Eval}
	for i, child := range children {
		if done[i] && (res.Move == board.NoMove || better(scores[i], res.Score, maximizing)) {
			res.Move, res.Score = child.Move, scores[i]
		}
	}
	if res.Move == board.NoMove {
		return res
	}

	root.Eval = res.Score
	root.Depth = max(root.Depth, depth)
	t.eval.Store(res.Score)
	return res
}

// Search scores the tree to depth plies and returns the best root move.
// With parallel set, root children are searched concurrently. A cancelled
// context stops the search early and its error is returned with whatever
// was found.
func (t *GameTree) Search(ctx context.Context, depth int, ev Evaluator, parallel bool) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	var stop atomic.Bool
	release := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer release()

	s := &searcher{eval: ev, stop: &stop}

	var res SearchResult
	if parallel {
		res = t.searchRootParallel(s, depth)
	} else {
		res = t.searchRoot(s, depth)
	}
	res.Nodes = s.nodes.Load()

	return res, ctx.Err()
}
