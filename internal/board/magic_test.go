package board

import (
	"errors"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestMovementMask(t *testing.T) {
	tests := []struct {
		sq   Square
		f    Family
		want Bitboard
		bits int
	}{
		{A1, RookFamily, bbOf(A2, A3, A4, A5, A6, A7, B1, C1, D1, E1, F1, G1), 12},
		{E4, RookFamily, bbOf(E2, E3, E5, E6, E7, B4, C4, D4, F4, G4), 10},
		{A1, BishopFamily, bbOf(B2, C3, D4, E5, F6, G7), 6},
		{D4, BishopFamily, bbOf(C3, B2, E5, F6, G7, C5, B6, E3, F2), 9},
		{H8, BishopFamily, bbOf(G7, F6, E5, D4, C3, B2), 6},
	}

	for _, tc := range tests {
		t.Run(tc.f.String()+"/"+tc.sq.String(), func(t *testing.T) {
			got := MovementMask(tc.sq, tc.f)
			if got != tc.want {
				t.Errorf("MovementMask =\n%swant\n%s", got, tc.want)
			}
			if got.PopCount() != tc.bits {
				t.Errorf("PopCount = %d, want %d", got.PopCount(), tc.bits)
			}
		})
	}
}

func TestMovementMaskBitCounts(t *testing.T) {
	maxBits := map[Family]int{RookFamily: 12, BishopFamily: 9}
	for _, f := range []Family{RookFamily, BishopFamily} {
		for sq := A1; sq <= H8; sq++ {
			mask := MovementMask(sq, f)
			if mask.IsSet(sq) {
				t.Errorf("%s mask on %s contains its own square", f, sq)
			}
			if n := mask.PopCount(); n < 5 || n > maxBits[f] {
				t.Errorf("%s mask on %s has %d bits", f, sq, n)
			}
		}
	}
}

func TestAttackMaskStopsAtBlocker(t *testing.T) {
	blockers := bbOf(D6, F4, D2)
	got := AttackMask(D4, blockers, RookFamily)
	want := bbOf(D5, D6, D3, D2, C4, B4, A4, E4, F4)
	if got != want {
		t.Errorf("AttackMask rook d4 =\n%swant\n%s", got, want)
	}

	got = AttackMask(C1, bbOf(E3), BishopFamily)
	want = bbOf(B2, A3, D2, E3)
	if got != want {
		t.Errorf("AttackMask bishop c1 =\n%swant\n%s", got, want)
	}
}

// Every blocker subset of every mask must look up the ray-traced attack set.
func TestMagicLookupMatchesRayTrace(t *testing.T) {
	for _, f := range []Family{RookFamily, BishopFamily} {
		for sq := A1; sq <= H8; sq++ {
			mask := MovementMask(sq, f)
			n := mask.PopCount()
			for i := 0; i < 1<<n; i++ {
				occ := mask.Occupancy(i, n)
				want := AttackMask(sq, occ, f)
				if got := SliderMoves(sq, occ, f); got != want {
					t.Fatalf("%s on %s, blockers %#x: got %#x want %#x", f, sq, uint64(occ), uint64(got), uint64(want))
				}
			}
		}
	}
}

func TestMagicLookupIgnoresIrrelevantSquares(t *testing.T) {
	// Edge squares and squares off the rays do not change the result.
	noise := Rank1 | Rank8 | FileA | FileH | SquareBB(C6)
	if got, want := RookMoves(D4, noise), AttackMask(D4, noise, RookFamily); got != want {
		t.Errorf("RookMoves with noise =\n%swant\n%s", got, want)
	}
	if got, want := BishopMoves(D4, noise), AttackMask(D4, noise, BishopFamily); got != want {
		t.Errorf("BishopMoves with noise =\n%swant\n%s", got, want)
	}
}

func TestSlidersAgainstReferenceGenerator(t *testing.T) {
	occupancies := []uint64{
		0,
		0xFFFF00000000FFFF,
		0x0000001818000000,
		0x00AA005500AA0055,
		0x8100000000000081,
		0x0123456789ABCDEF,
		0xFEDCBA9876543210,
	}

	for _, occ := range occupancies {
		for sq := A1; sq <= H8; sq++ {
			wantRook := Bitboard(dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ))
			if got := RookMoves(sq, Bitboard(occ)); got != wantRook {
				t.Errorf("RookMoves(%s, %#x) = %#x, want %#x", sq, occ, uint64(got), uint64(wantRook))
			}
			wantBishop := Bitboard(dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ))
			if got := BishopMoves(sq, Bitboard(occ)); got != wantBishop {
				t.Errorf("BishopMoves(%s, %#x) = %#x, want %#x", sq, occ, uint64(got), uint64(wantBishop))
			}
		}
	}
}

func TestQueenMovesIsUnion(t *testing.T) {
	occ := bbOf(D7, B2, G4, F6)
	if got, want := QueenMoves(D4, occ), RookMoves(D4, occ)|BishopMoves(D4, occ); got != want {
		t.Errorf("QueenMoves =\n%swant\n%s", got, want)
	}
}

func TestBuildMagicEntryRejectsBadMagic(t *testing.T) {
	_, err := BuildMagicEntry(A1, RookFamily, 1)
	if !errors.Is(err, ErrMagicCollision) {
		t.Errorf("BuildMagicEntry with magic 1 = %v, want ErrMagicCollision", err)
	}

	entry, err := BuildMagicEntry(E4, BishopFamily, MagicNumber(E4, BishopFamily))
	if err != nil {
		t.Fatalf("BuildMagicEntry with committed magic: %v", err)
	}
	if len(entry.Table) != 1<<entry.Bits {
		t.Errorf("table size %d, want %d", len(entry.Table), 1<<entry.Bits)
	}
	if int(entry.Shift) != 64-int(entry.Bits) {
		t.Errorf("shift %d for %d bits", entry.Shift, entry.Bits)
	}
}
