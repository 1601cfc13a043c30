package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The literal tables in wheel.go are hand-derived; regenerate them from the
// residue system and compare.
func TestWheelTablesMatchDerivation(t *testing.T) {
	gen := generateWheelTables()

	assert.Equal(t, wheelIndex30, gen.Index30, "inverse residue index")
	assert.Equal(t, offsetMod8, gen.Mod8, "bit position table")
	assert.Equal(t, offsetIdxConst, gen.IdxConst, "byte offset constant table")
	assert.Equal(t, offsetIdxCoeff, gen.IdxCoeff, "byte offset coefficient table")
}

func TestWheelIndex30(t *testing.T) {
	// Every residue coprime to 30 has a row; everything else is -1.
	coprime := map[uint64]bool{1: true, 7: true, 11: true, 13: true, 17: true, 19: true, 23: true, 29: true}
	for n := uint64(0); n < 30; n++ {
		if coprime[n] {
			assert.GreaterOrEqual(t, wheelIndex30[n], int8(0), "residue %d", n)
		} else {
			assert.Equal(t, int8(-1), wheelIndex30[n], "residue %d", n)
		}
	}

	// Residue 1 is indexed against the 31 row.
	assert.Equal(t, int8(7), wheelIndex30[1])
}

func TestWheelViewsAgree(t *testing.T) {
	// constOffsets is wheelOffsets rotated by one with 1 carried to 31:
	// both views must address the same bits.
	for j := 0; j < 7; j++ {
		require.Equal(t, wheelOffsets[j+1], constOffsets[j])
	}
	require.Equal(t, wheelOffsets[0]+30, constOffsets[7])
}

func TestOffsetTablesRowShape(t *testing.T) {
	for r := 0; r < 8; r++ {
		// First strike of each revolution is the prime's own square.
		assert.Zero(t, offsetIdxConst[r][0], "row %d", r)
		assert.Zero(t, offsetIdxCoeff[r][0], "row %d", r)

		// Each row strikes all eight bit positions exactly once.
		var seen [8]bool
		for s := 0; s < 8; s++ {
			seen[offsetMod8[r][s]] = true
		}
		for b, ok := range seen {
			assert.True(t, ok, "row %d never strikes bit %d", r, b)
		}
	}
}
