package main

import (
	"context"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

func TestPopulateUsesEngineTree(t *testing.T) {
	eng := engine.NewEngine(engine.Config{Depth: 2, Evaluator: engine.MaterialEvaluator{}, ParallelDepth: 1})
	eng.SetPosition(board.NewPosition())
	tree := eng.Tree()

	count, leaves, _, err := populate(context.Background(), eng, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if count != 421 || leaves != 400 {
		t.Errorf("populate = %d nodes, %d leaves, want 421, 400", count, leaves)
	}
	if eng.Tree() != tree || tree.Root().Count() != count {
		t.Errorf("populated tree is not the engine's tree")
	}

	if _, err := eng.Search(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := eng.Tree().Root().Count(); got != count {
		t.Errorf("search grew the populated tree to %d nodes, want %d", got, count)
	}
}
