package sieve

import "sort"

// Derivation of the cross-product tables from the wheel-30 residue system.
//
// A sieving prime p = 30m + c (c one of the eight residues, with 1 written as
// 31 of the previous revolution) has exactly eight multiples per wheel
// revolution that are themselves coprime to 30: p*(p+d) for the eight
// deltas d = (w - c) mod 30, w ranging over the residues. Expanding,
//
//	p*(p+d)/30 - p*p/30 = m*d + (c*(c+d)/30 - c*c/30)
//
// so each strike's byte offset splits into a constant term and a coefficient
// on m, and its bit position is the residue index of c*(c+d) mod 30.

// wheelTables bundles one derived set of tables for comparison against the
// literals in wheel.go.
type wheelTables struct {
	Index30  [30]int8
	Mod8     [8][8]uint8
	IdxConst [8][8]uint64
	IdxCoeff [8][8]uint64
}

// generateWheelTables rebuilds the cross-product tables from first
// principles. Used by tests to validate the literal tables; the sieve itself
// reads only the literals.
func generateWheelTables() wheelTables {
	var t wheelTables

	for i := range t.Index30 {
		t.Index30[i] = -1
	}
	for r, c := range constOffsets {
		t.Index30[c%30] = int8(r)
	}

	// bitOf maps a residue mod 30 to its base-view bit position.
	var bitOf [30]int
	for j, w := range wheelOffsets {
		bitOf[w] = j
	}

	for r, c := range constOffsets {
		// The eight deltas to the next coprime multiples, ascending.
		deltas := make([]uint64, 0, 8)
		for _, w := range wheelOffsets {
			deltas = append(deltas, (30+w-c%30)%30)
		}
		sort.Slice(deltas, func(i, j int) bool { return deltas[i] < deltas[j] })

		for s, d := range deltas {
			t.IdxCoeff[r][s] = d
			t.IdxConst[r][s] = c*(c+d)/30 - c*c/30
			t.Mod8[r][s] = uint8(bitOf[c*(c+d)%30])
		}
	}
	return t
}
