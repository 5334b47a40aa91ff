// Command treebench populates and searches a game tree, reporting node
// counts and throughput.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/pkg/profile"
)

var (
	depth         = flag.Int("depth", 4, "search depth in plies")
	evalName      = flag.String("eval", "compound", "evaluator: material, pst or compound")
	fen           = flag.String("fen", board.StartFEN, "root position")
	line          = flag.String("line", "", "comma-separated moves applied to the root position, e.g. e2e4,e7e5")
	parallelDepth = flag.Int("parallel", 1, "tree levels populated concurrently; 0 searches sequentially")
	moves         = flag.Int("moves", 0, "self-play moves after the first search, reusing the tree")
	profileMode   = flag.String("profile", "", "write a cpu or mem profile to the working directory")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("treebench: %v", err)
	}
}

func run() error {
	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	ev, err := engine.EvaluatorByName(*evalName)
	if err != nil {
		return err
	}
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}
	if *line != "" {
		for _, s := range strings.Split(*line, ",") {
			m, err := board.ParseMove(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			if !pos.IsLegal(m.From(), m.To()) {
				return fmt.Errorf("illegal move %s in -line", m)
			}
			if err := pos.MakeMove(m.From(), m.To()); err != nil {
				return err
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng := engine.NewEngine(engine.Config{Depth: *depth, Evaluator: ev, ParallelDepth: *parallelDepth})
	eng.SetPosition(pos)

	count, leaves, elapsed, err := populate(ctx, eng, *depth, *parallelDepth)
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	log.Printf("Populated depth %d: %d nodes, %d leaves in %s (%.0f nodes/s)",
		*depth, count, leaves, elapsed.Round(time.Millisecond), float64(count)/elapsed.Seconds())

	eng.OnInfo = func(info engine.SearchInfo) {
		log.Printf("depth %d score %s move %s nodes %d tree %d time %s",
			info.Depth, engine.ScoreToString(info.Score), info.Move, info.Nodes, info.Tree, info.Time.Round(time.Millisecond))
	}

	for ply := 0; ply <= *moves; ply++ {
		move, err := eng.Search(ctx)
		if err != nil {
			return err
		}
		if move == board.NoMove {
			log.Printf("Game over: %s", engine.ScoreToString(eng.Eval().Load()))
			return nil
		}
		log.Printf("Best move: %s", move)

		if ply < *moves {
			if err := eng.Play(move.From(), move.To()); err != nil {
				return err
			}
		}
	}

	return nil
}

// populate expands the engine's own tree, so the search that follows
// starts from the populated nodes.
func populate(ctx context.Context, eng *engine.Engine, depth, parallelDepth int) (count, leaves int, elapsed time.Duration, err error) {
	tree := eng.Tree()
	start := time.Now()
	if err := tree.Populate(ctx, depth, parallelDepth); err != nil {
		return 0, 0, 0, err
	}
	elapsed = time.Since(start)
	return tree.Root().Count(), len(tree.Root().Leaves(nil)), elapsed, nil
}
