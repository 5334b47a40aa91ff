// Package magic searches for collision-free magic multipliers for the
// sliding-piece attack tables in package board.
package magic

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// ErrNoMagic is returned when a square exhausts its trial budget.
var ErrNoMagic = errors.New("no collision-free magic found")

var errCollision = errors.New("collision")

// Cache persists discovered magics so an interrupted generation can resume.
type Cache interface {
	Load(f board.Family, sq board.Square) (magic uint64, ok bool, err error)
	Save(f board.Family, sq board.Square, magic uint64, bits uint8) error
}

// Options configures the search.
type Options struct {
	// Seed makes a run reproducible. Every square derives its own stream
	// from it, so results do not depend on scheduling.
	Seed uint64

	// MaxTrials bounds the candidates tried per square.
	MaxTrials int

	// Workers bounds the goroutines verifying one candidate. Generate
	// splits it between squares searched at once and their verifiers.
	Workers int

	// ParallelThreshold is the blocker pattern count from which a single
	// candidate is verified by several goroutines. Zero disables it.
	ParallelThreshold int

	Cache   Cache
	OnFound func(Result)
}

// DefaultOptions returns the options used by cmd/magicgen.
func DefaultOptions() Options {
	return Options{
		Seed:              0x5eed,
		MaxTrials:         1_000_000_000,
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 1 << 12,
	}
}

// Result describes the magic found for one square.
type Result struct {
	Family board.Family
	Square board.Square
	Magic  uint64
	Bits   uint8
	Trials int
	Cached bool
}

// patterns holds every blocker subset of a movement mask together with
// its ray-traced attack set.
type patterns struct {
	occ    []board.Bitboard
	attack []board.Bitboard
}

func enumerate(sq board.Square, f board.Family, mask board.Bitboard) patterns {
	n := mask.PopCount()
	p := patterns{
		occ:    make([]board.Bitboard, 1<<n),
		attack: make([]board.Bitboard, 1<<n),
	}
	for i := range p.occ {
		p.occ[i] = mask.Occupancy(i, n)
		p.attack[i] = board.AttackMask(sq, p.occ[i], f)
	}
	return p
}

// squareSeed spreads the run seed over family and square.
func squareSeed(seed uint64, sq board.Square, f board.Family) uint64 {
	return (seed ^ uint64(f)<<6 ^ uint64(sq)) * 0x9e3779b97f4a7c15
}

// candidate draws a sparse multiplier. ANDing three draws leaves about
// eight bits set, which yields far more valid magics than a dense draw.
func candidate(r *rand.Rand) uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// verify reports whether magic hashes no two patterns with different
// attacks to the same slot. used must hold 1<<n entries.
func verify(p *patterns, magic uint64, n uint8, used []board.Bitboard) bool {
	clear(used)
	for i, occ := range p.occ {
		idx := board.MagicIndex(occ, magic, n)
		switch used[idx] {
		case board.Empty:
			used[idx] = p.attack[i]
		case p.attack[i]:
		default:
			return false
		}
	}
	return true
}

// verifyParallel is verify with the patterns split across workers. Slots
// are claimed with compare-and-swap; attack sets are never empty, so zero
// marks a free slot.
func verifyParallel(ctx context.Context, p *patterns, magic uint64, n uint8, used []atomic.Uint64, workers int) bool {
	for i := range used {
		used[i].Store(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(p.occ) + workers - 1) / workers
	for start := 0; start < len(p.occ); start += chunk {
		start := start
		end := min(start+chunk, len(p.occ))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i&255 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				slot := &used[board.MagicIndex(p.occ[i], magic, n)]
				want := uint64(p.attack[i])
				if !slot.CompareAndSwap(0, want) && slot.Load() != want {
					return errCollision
				}
			}
			return nil
		})
	}
	return g.Wait() == nil
}

// Search finds a magic for sq that is collision-free at the full relevant
// bit count of its movement mask. A cached magic is reused once it passes
// verification.
func Search(ctx context.Context, sq board.Square, f board.Family, opts Options) (Result, error) {
	mask := board.MovementMask(sq, f)
	n := uint8(mask.PopCount())
	res := Result{Family: f, Square: sq, Bits: n}

	if opts.Cache != nil {
		m, ok, err := opts.Cache.Load(f, sq)
		if err != nil {
			return res, fmt.Errorf("load %s magic for %s: %w", f, sq, err)
		}
		if ok {
			if _, err := board.BuildMagicEntry(sq, f, m); err == nil {
				res.Magic, res.Cached = m, true
				return res, nil
			}
		}
	}

	p := enumerate(sq, f, mask)
	rng := rand.New(rand.NewSource(squareSeed(opts.Seed, sq, f)))

	workers := max(opts.Workers, 1)
	parallel := opts.ParallelThreshold > 0 && workers > 1 && len(p.occ) >= opts.ParallelThreshold
	var used []board.Bitboard
	var shared []atomic.Uint64
	if parallel {
		shared = make([]atomic.Uint64, 1<<n)
	} else {
		used = make([]board.Bitboard, 1<<n)
	}

	for trial := 1; trial <= opts.MaxTrials; trial++ {
		if trial&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		magic := candidate(rng)
		// Too few high bits in mask*magic cannot spread the index.
		if bits.OnesCount64((uint64(mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}

		var ok bool
		if parallel {
			ok = verifyParallel(ctx, &p, magic, n, shared, workers)
		} else {
			ok = verify(&p, magic, n, used)
		}
		if !ok {
			continue
		}

		res.Magic, res.Trials = magic, trial
		if opts.Cache != nil {
			if err := opts.Cache.Save(f, sq, magic, n); err != nil {
				return res, fmt.Errorf("save %s magic for %s: %w", f, sq, err)
			}
		}
		return res, nil
	}

	return res, fmt.Errorf("%s on %s after %d trials: %w", f, sq, opts.MaxTrials, ErrNoMagic)
}
