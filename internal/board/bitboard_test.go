package board

import (
	"math/bits"
	"testing"
)

func TestLSBMatchesTrailingZeros(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq) | SquareBB(H8)
		if got := bb.LSB(); got != sq {
			t.Errorf("LSB(%s|h8) = %s", sq, got)
		}
	}

	values := []uint64{1, 0x8000000000000000, 0xFFFF000000000000, 0x0000001000100000, 0xAAAAAAAAAAAAAAAA}
	for _, v := range values {
		want := Square(bits.TrailingZeros64(v))
		if got := Bitboard(v).LSB(); got != want {
			t.Errorf("LSB(%#x) = %d, want %d", v, got, want)
		}
	}

	if got := Empty.LSB(); got != NoSquare {
		t.Errorf("LSB(Empty) = %v, want NoSquare", got)
	}
}

func TestPopLSB(t *testing.T) {
	bb := SquareBB(C3) | SquareBB(E4) | SquareBB(H8)
	want := []Square{C3, E4, H8}
	for _, w := range want {
		if got := bb.PopLSB(); got != w {
			t.Fatalf("PopLSB = %s, want %s", got, w)
		}
	}
	if bb != Empty {
		t.Errorf("bitboard not empty after popping all squares: %#x", uint64(bb))
	}
}

func TestSetClearIsSet(t *testing.T) {
	var bb Bitboard
	bb = bb.Set(D4).Set(A8)
	if !bb.IsSet(D4) || !bb.IsSet(A8) || bb.IsSet(E5) {
		t.Fatalf("unexpected membership: %s", bb)
	}
	if bb.PopCount() != 2 {
		t.Errorf("PopCount = %d, want 2", bb.PopCount())
	}
	bb = bb.Clear(D4)
	if bb.IsSet(D4) || bb.PopCount() != 1 {
		t.Errorf("Clear(D4) left %s", bb)
	}
}

func TestOccupancyEnumeratesSubsets(t *testing.T) {
	mask := SquareBB(B2) | SquareBB(D4) | SquareBB(G7)
	n := mask.PopCount()

	seen := make(map[Bitboard]bool)
	for i := 0; i < 1<<n; i++ {
		occ := mask.Occupancy(i, n)
		if occ&^mask != 0 {
			t.Fatalf("Occupancy(%d) = %#x escapes mask", i, uint64(occ))
		}
		if occ.PopCount() != bits.OnesCount(uint(i)) {
			t.Errorf("Occupancy(%d) has %d bits", i, occ.PopCount())
		}
		seen[occ] = true
	}
	if len(seen) != 1<<n {
		t.Errorf("got %d distinct subsets, want %d", len(seen), 1<<n)
	}

	if got := mask.Occupancy(0, n); got != Empty {
		t.Errorf("Occupancy(0) = %#x, want empty", uint64(got))
	}
	if got := mask.Occupancy(1<<n-1, n); got != mask {
		t.Errorf("Occupancy(all) = %#x, want mask", uint64(got))
	}
	// Lowest index bit selects the lowest square.
	if got := mask.Occupancy(1, n); got != SquareBB(B2) {
		t.Errorf("Occupancy(1) = %#x, want b2", uint64(got))
	}
}

func TestSquareOffset(t *testing.T) {
	tests := []struct {
		sq     Square
		df, dr int
		want   Square
		ok     bool
	}{
		{E4, 1, 1, F5, true},
		{A1, -1, 0, NoSquare, false},
		{H1, 1, 0, NoSquare, false},
		{H8, 0, 1, NoSquare, false},
		{B1, -1, 2, A3, true},
		{G8, 2, 0, NoSquare, false},
	}

	for _, tc := range tests {
		got, ok := tc.sq.Offset(tc.df, tc.dr)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%s.Offset(%d,%d) = %s,%v want %s,%v", tc.sq, tc.df, tc.dr, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSquare(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got, err := ParseSquare(sq.String())
		if err != nil || got != sq {
			t.Errorf("ParseSquare(%q) = %s, %v", sq.String(), got, err)
		}
	}
	for _, bad := range []string{"", "i1", "a9", "a", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded", bad)
		}
	}
}
