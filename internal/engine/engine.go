package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth int
	Score float64
	Nodes uint64
	Tree  int // nodes held by the tree
	Time  time.Duration
	Move  board.Move
}

// Config controls a search.
type Config struct {
	Depth         int       // Plies searched from the root
	Evaluator     Evaluator // Leaf scorer; nil means CompoundEvaluator
	ParallelDepth int       // Tree levels expanded concurrently; 0 keeps search sequential
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply, material only
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultySettings maps difficulty to search configuration.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {Depth: 2, Evaluator: MaterialEvaluator{}, ParallelDepth: 1},
	Medium: {Depth: 3, Evaluator: CompoundEvaluator{}, ParallelDepth: 1},
	Hard:   {Depth: 4, Evaluator: CompoundEvaluator{}, ParallelDepth: 2},
}

// Engine owns a game tree and searches it with iterative deepening. The
// tree follows the game through Play, so work done below the chosen move
// is kept.
type Engine struct {
	cfg  Config
	tree *GameTree

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine at the starting position.
func NewEngine(cfg Config) *Engine {
	if cfg.Evaluator == nil {
		cfg.Evaluator = CompoundEvaluator{}
	}
	return &Engine{
		cfg:  cfg,
		tree: NewGameTree(board.NewPosition(), nil),
	}
}

// SetDifficulty replaces the configuration with a preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.cfg = DifficultySettings[d]
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetPosition discards the tree and starts a new one at pos. The eval
// cell is kept so observers stay attached.
func (e *Engine) SetPosition(pos board.Position) {
	e.tree = NewGameTree(pos, e.tree.EvalCell())
}

// Position returns the current root position.
func (e *Engine) Position() board.Position {
	return e.tree.Position()
}

// Tree returns the underlying game tree.
func (e *Engine) Tree() *GameTree {
	return e.tree
}

// Eval returns the shared evaluation cell of the root.
func (e *Engine) Eval() *EvalCell {
	return e.tree.EvalCell()
}

// Play commits a move, keeping the searched subtree below it.
func (e *Engine) Play(from, to board.Square) error {
	return e.tree.Play(from, to)
}

// Search finds the best move for the root position, deepening one ply at
// a time up to the configured depth. A cancelled context returns the best
// move of the last completed depth along with the context error.
func (e *Engine) Search(ctx context.Context) (board.Move, error) {
	startTime := time.Now()
	parallel := e.cfg.ParallelDepth > 0

	var bestMove board.Move
	for depth := 1; depth <= max(e.cfg.Depth, 1); depth++ {
		if parallel {
			if err := e.tree.Populate(ctx, depth, e.cfg.ParallelDepth); err != nil {
				return bestMove, err
			}
		}

		res, err := e.tree.Search(ctx, depth, e.cfg.Evaluator, parallel)
		if err != nil {
			return bestMove, err
		}
		bestMove = res.Move

		// Report info
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: res.Score,
				Nodes: res.Nodes,
				Tree:  e.tree.Root().Count(),
				Time:  time.Since(startTime),
				Move:  res.Move,
			})
		}

		// Early termination: found mate
		if res.Score >= MateScore || res.Score <= -MateScore {
			break
		}
		if res.Move == board.NoMove {
			break
		}
	}

	return bestMove, nil
}

// Perft counts the leaf positions depth plies below pos.
func Perft(pos board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		child := pos
		if err := child.MakeMove(m.From(), m.To()); err != nil {
			panic(err)
		}
		nodes += Perft(child, depth-1)
	}

	return nodes
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score float64) string {
	if score >= MateScore {
		return "White mates"
	}
	if score <= -MateScore {
		return "Black mates"
	}
	return fmt.Sprintf("%+.2f", score)
}
