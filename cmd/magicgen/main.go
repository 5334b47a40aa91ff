// Command magicgen searches for the rook and bishop magic multipliers and
// writes them as the magic_numbers.go source of package board.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hailam/chesscore/internal/magic"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/pkg/profile"
)

var (
	seed        = flag.Uint64("seed", magic.DefaultOptions().Seed, "random seed; equal seeds reproduce a run")
	trials      = flag.Int("trials", magic.DefaultOptions().MaxTrials, "candidate budget per square")
	workers     = flag.Int("workers", magic.DefaultOptions().Workers, "goroutines shared by concurrent squares and candidate verification")
	dbDir       = flag.String("db", "", `cache directory for found magics (default: platform data dir, "none" disables)`)
	reset       = flag.Bool("reset", false, "drop cached magics before searching")
	out         = flag.String("out", "", "file for the generated Go source (default: stdout)")
	verifyOnly  = flag.Bool("verify", false, "verify the committed dataset and exit")
	profileMode = flag.String("profile", "", "write a cpu or mem profile to the working directory")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("magicgen: %v", err)
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

	if *verifyOnly {
		ds := magic.Committed()
		if err := ds.Verify(); err != nil {
			return fmt.Errorf("committed dataset v%d: %w", ds.Version, err)
		}
		log.Printf("committed dataset v%d verified", ds.Version)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := magic.DefaultOptions()
	opts.Seed = *seed
	opts.MaxTrials = *trials
	opts.Workers = *workers

	if *dbDir != "none" {
		store, err := openStore(*dbDir)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer store.Close()

		if *reset {
			if err := store.Reset(); err != nil {
				return fmt.Errorf("reset cache: %w", err)
			}
		}
		records, err := store.Records()
		if err != nil {
			return fmt.Errorf("read cache: %w", err)
		}
		if len(records) > 0 {
			log.Printf("Resuming with %d cached magics", len(records))
		}
		opts.Cache = store
	}

	opts.OnFound = func(r magic.Result) {
		if r.Cached {
			log.Printf("%-6s %s: 0x%016x (cached)", r.Family, r.Square, r.Magic)
			return
		}
		log.Printf("%-6s %s: 0x%016x (%d bits, %d trials)", r.Family, r.Square, r.Magic, r.Bits, r.Trials)
	}

	start := time.Now()
	ds, err := magic.Generate(ctx, opts)
	if err != nil {
		return err
	}
	if err := ds.Verify(); err != nil {
		return fmt.Errorf("generated dataset failed verification: %w", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := ds.WriteGo(w); err != nil {
		return err
	}

	log.Printf("Generated magic dataset v%d in %s", ds.Version, time.Since(start).Round(time.Millisecond))
	return nil
}

func openStore(dir string) (*storage.Store, error) {
	if dir == "" {
		return storage.OpenDefault()
	}
	return storage.Open(dir)
}
