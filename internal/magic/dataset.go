package magic

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"io"
	"sync"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/sync/errgroup"
)

var families = []board.Family{board.RookFamily, board.BishopFamily}

// Dataset is one magic per family and square, indexed [Family][Square].
type Dataset struct {
	Version int
	Magics  [2][64]uint64
	Bits    [2][64]uint8
}

// Generate searches every square of both families. The first square to
// fail aborts the run; a partial dataset is never returned.
func Generate(ctx context.Context, opts Options) (*Dataset, error) {
	ds := &Dataset{Version: board.MagicVersion}

	squares, verifiers := splitWorkers(opts.Workers, len(families)*64)
	sqOpts := opts
	sqOpts.Workers = verifiers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(squares)

	var mu sync.Mutex
	for _, f := range families {
		f := f
		for sq := board.A1; sq <= board.H8; sq++ {
			sq := sq
			g.Go(func() error {
				res, err := Search(ctx, sq, f, sqOpts)
				if err != nil {
					return err
				}
				ds.Magics[f][sq] = res.Magic
				ds.Bits[f][sq] = res.Bits
				if opts.OnFound != nil {
					mu.Lock()
					opts.OnFound(res)
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// splitWorkers divides the worker budget between squares searched at once
// and goroutines verifying one candidate, so that squares*verifiers never
// exceeds workers.
func splitWorkers(workers, jobs int) (squares, verifiers int) {
	workers = max(workers, 1)
	squares = min(workers, jobs)
	return squares, workers / squares
}

// Verify rebuilds every attack table from the dataset.
func (d *Dataset) Verify() error {
	for _, f := range families {
		for sq := board.A1; sq <= board.H8; sq++ {
			if _, err := board.BuildMagicEntry(sq, f, d.Magics[f][sq]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Committed returns the dataset compiled into package board.
func Committed() *Dataset {
	ds := &Dataset{Version: board.MagicVersion}
	for _, f := range families {
		for sq := board.A1; sq <= board.H8; sq++ {
			ds.Magics[f][sq] = board.MagicNumber(sq, f)
			ds.Bits[f][sq] = uint8(board.MovementMask(sq, f).PopCount())
		}
	}
	return ds
}

// WriteGo writes the dataset as the magic_numbers.go source of package
// board, gofmt'd.
func (d *Dataset) WriteGo(w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteString("package board\n\n")
	buf.WriteString("// MagicVersion identifies the committed magic dataset. Bump it whenever\n")
	buf.WriteString("// magicNumbers is regenerated with cmd/magicgen.\n")
	fmt.Fprintf(&buf, "const MagicVersion = %d\n\n", d.Version)
	buf.WriteString("// magicNumbers holds one multiplier per family and square, indexed\n")
	buf.WriteString("// [Family][Square]. Each is collision-free for the full relevant bit count\n")
	buf.WriteString("// of its square; tables are derived from them at init.\n")
	buf.WriteString("var magicNumbers = [2][64]uint64{\n")
	for _, f := range families {
		name := "RookFamily"
		if f == board.BishopFamily {
			name = "BishopFamily"
		}
		fmt.Fprintf(&buf, "%s: {\n", name)
		for sq, m := range d.Magics[f] {
			fmt.Fprintf(&buf, "0x%016x,", m)
			if sq%4 == 3 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format dataset: %w", err)
	}
	_, err = w.Write(src)
	return err
}
