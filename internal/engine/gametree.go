package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/sync/errgroup"
)

// ErrMoveNotFound is returned when a committed move matches no child.
var ErrMoveNotFound = errors.New("move not found in game tree")

// Node is one position in the game tree. Children are created on demand
// and keyed by the position they lead to; a position reached by two move
// orders appears once under each parent.
type Node struct {
	Position board.Position
	Move     board.Move // move that led here from the parent
	Depth    int        // plies populated below this node
	Eval     float64    // last search score; a bound if cut off by the parent's window
	Children map[board.Position]*Node

	expanded bool
}

// NewNode returns an unexpanded node for pos.
func NewNode(pos board.Position) *Node {
	return &Node{Position: pos}
}

// Expanded reports whether the children have been generated.
func (n *Node) Expanded() bool {
	return n.expanded
}

// expand generates one child per legal move. A node with no legal moves
// is expanded with no children.
func (n *Node) expand() {
	if n.expanded {
		return
	}
	moves := n.Position.LegalMoves()
	n.Children = make(map[board.Position]*Node, len(moves))
	for _, m := range moves {
		child := n.Position
		if err := child.MakeMove(m.From(), m.To()); err != nil {
			panic(fmt.Sprintf("engine: legal move %s rejected: %v", m, err))
		}
		n.Children[child] = &Node{Position: child, Move: m}
	}
	n.expanded = true
}

// Populate expands the subtree to depth plies. The first parallelDepth
// levels populate their children concurrently.
func (n *Node) Populate(ctx context.Context, depth, parallelDepth int) error {
	if depth <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	n.expand()

	if parallelDepth > 0 && len(n.Children) > 1 {
		g, ctx := errgroup.WithContext(ctx)
		for _, child := range n.Children {
			child := child
			g.Go(func() error {
				return child.Populate(ctx, depth-1, parallelDepth-1)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, child := range n.Children {
			if err := child.Populate(ctx, depth-1, 0); err != nil {
				return err
			}
		}
	}

	n.Depth = max(n.Depth, depth)
	return nil
}

// Count returns the number of nodes in the subtree, including n.
func (n *Node) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}

// Leaves appends every node without children to dst.
func (n *Node) Leaves(dst []*Node) []*Node {
	if len(n.Children) == 0 {
		return append(dst, n)
	}
	for _, child := range n.Children {
		dst = child.Leaves(dst)
	}
	return dst
}

// Minimax scores the subtree to depth plies with alpha-beta pruning and
// returns the value, also stored in n.Eval. Children are generated as the
// search reaches them. maximizing is true when White is to move.
func (n *Node) Minimax(depth int, alpha, beta float64, maximizing bool, ev Evaluator) float64 {
	s := searcher{eval: ev}
	return s.minimax(n, depth, alpha, beta, maximizing)
}

// EvalCell is a float64 readable and writable from any goroutine without
// locking. It carries the root evaluation while a search runs.
type EvalCell struct {
	bits atomic.Uint64
}

// NewEvalCell returns a cell holding v.
func NewEvalCell(v float64) *EvalCell {
	c := &EvalCell{}
	c.Store(v)
	return c
}

// Load returns the current value.
func (c *EvalCell) Load() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Store replaces the value.
func (c *EvalCell) Store(v float64) {
	c.bits.Store(math.Float64bits(v))
}

// GameTree is a root node plus the shared evaluation cell. The tree itself
// is not safe for concurrent use; only the cell may be read while a search
// is running.
type GameTree struct {
	root *Node
	eval *EvalCell
}

// NewGameTree creates a tree rooted at pos. A nil cell allocates a new one.
func NewGameTree(pos board.Position, cell *EvalCell) *GameTree {
	if cell == nil {
		cell = NewEvalCell(0)
	}
	return &GameTree{root: NewNode(pos), eval: cell}
}

// Root returns the current root node.
func (t *GameTree) Root() *Node {
	return t.root
}

// Position returns the root position.
func (t *GameTree) Position() board.Position {
	return t.root.Position
}

// EvalCell returns the shared root evaluation.
func (t *GameTree) EvalCell() *EvalCell {
	return t.eval
}

// Populate expands the tree to depth plies below the root.
func (t *GameTree) Populate(ctx context.Context, depth, parallelDepth int) error {
	return t.root.Populate(ctx, depth, parallelDepth)
}

// Prune detaches and returns the child of the root leading to pos. The
// root keeps its other children.
func (t *GameTree) Prune(pos board.Position) (*Node, bool) {
	child, ok := t.root.Children[pos]
	if ok {
		delete(t.root.Children, pos)
	}
	return child, ok
}

// MoveInto makes the child leading to pos the new root, discarding its
// siblings and keeping whatever was already searched below it. The eval
// cell keeps its value until the next search: a child's Eval may only be
// a bound from the parent's window.
func (t *GameTree) MoveInto(pos board.Position) error {
	t.root.expand()
	child, ok := t.Prune(pos)
	if !ok {
		return ErrMoveNotFound
	}
	t.root = child
	return nil
}

// Play applies from -> to to the root position and moves into the result.
func (t *GameTree) Play(from, to board.Square) error {
	next := t.root.Position
	if err := next.MakeMove(from, to); err != nil {
		return err
	}
	if err := t.MoveInto(next); err != nil {
		return fmt.Errorf("play %s%s: %w", from, to, err)
	}
	return nil
}
