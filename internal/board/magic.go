package board

import (
	"errors"
	"fmt"
)

// Magic bitboard implementation for sliding piece attacks.
// Each square owns a dense table indexed by a multiplicative hash of the
// blockers on its movement mask.

// ErrMagicCollision reports that two blocker patterns with different attack
// sets hash to the same table slot.
var ErrMagicCollision = errors.New("destructive magic collision")

// MagicEntry holds the magic bitboard data for a single square.
type MagicEntry struct {
	Mask  Bitboard   // Relevant occupancy mask (excludes ray ends)
	Magic uint64     // Magic multiplier
	Bits  uint8      // Relevant bit count, popcount of Mask
	Shift uint8      // 64 - Bits
	Table []Bitboard // 1 << Bits attack sets
}

var (
	rookMagics   [64]MagicEntry
	bishopMagics [64]MagicEntry
)

// MagicIndex hashes a blocker pattern into a table index of width bits.
func MagicIndex(blockers Bitboard, magic uint64, bits uint8) uint64 {
	return (uint64(blockers) * magic) >> (64 - bits)
}

// Attacks looks up the attack set for the given board occupancy.
// An index outside Table means the entry is corrupt and panics.
func (m *MagicEntry) Attacks(occupied Bitboard) Bitboard {
	return m.Table[(uint64(occupied&m.Mask)*m.Magic)>>m.Shift]
}

// BuildMagicEntry fills the attack table for sq using magic, verifying that
// every blocker pattern lands on a slot agreeing with the ray-traced attack.
func BuildMagicEntry(sq Square, f Family, magic uint64) (MagicEntry, error) {
	mask := MovementMask(sq, f)
	bits := mask.PopCount()

	entry := MagicEntry{
		Mask:  mask,
		Magic: magic,
		Bits:  uint8(bits),
		Shift: uint8(64 - bits),
		Table: make([]Bitboard, 1<<bits),
	}

	// Attack sets are never empty, so a zero slot is unused.
	for i := 0; i < 1<<bits; i++ {
		occ := mask.Occupancy(i, bits)
		attack := AttackMask(sq, occ, f)
		idx := MagicIndex(occ, magic, entry.Bits)
		if entry.Table[idx] != Empty && entry.Table[idx] != attack {
			return MagicEntry{}, fmt.Errorf("%s magic %#x on %s: %w", f, magic, sq, ErrMagicCollision)
		}
		entry.Table[idx] = attack
	}

	return entry, nil
}

// Magic returns the runtime magic entry for sq and family.
func Magic(sq Square, f Family) *MagicEntry {
	if f == RookFamily {
		return &rookMagics[sq]
	}
	return &bishopMagics[sq]
}

// MagicNumber returns the committed multiplier for sq and family.
func MagicNumber(sq Square, f Family) uint64 {
	return magicNumbers[f][sq]
}

func initMagics() {
	for sq := A1; sq <= H8; sq++ {
		for _, f := range []Family{RookFamily, BishopFamily} {
			entry, err := BuildMagicEntry(sq, f, magicNumbers[f][sq])
			if err != nil {
				panic(fmt.Sprintf("board: magic dataset v%d is corrupt: %v", MagicVersion, err))
			}
			*Magic(sq, f) = entry
		}
	}
}
