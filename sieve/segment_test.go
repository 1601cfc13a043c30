package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentSieveMatchesOracle(t *testing.T) {
	base := BaseSieve(2000)

	tests := []struct {
		name   string
		lo, hi uint64
	}{
		{"from zero", 0, 100},
		{"aligned window", 600, 900},
		{"single residue span", 990, 1020},
		{"around a square", 960, 990},
		{"wide", 0, 50_000},
		{"tail of a byte", 30, 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentSieve(tt.lo, tt.hi, base)
			assert.Equal(t, trialPrimes(tt.lo, tt.hi), got)
		})
	}
}

// A window entered mid-revolution: 77 = 7*11 lies in [60, 90], but the
// revolution of 7 containing it is based at 49, below the window. Only the
// head fixup can strike it.
func TestSegmentSieveHeadFixup(t *testing.T) {
	base := BaseSieve(60)
	got := SegmentSieve(60, 90, base)
	assert.Equal(t, []uint64{61, 67, 71, 73, 79, 83, 89}, got)
}

// 31 is the smallest prime of residue 1; its strikes exercise the m-1
// adjustment of the 31 row. 961 = 31*31 and 1147 = 31*37 must fall.
func TestSegmentSieveResidueOneRow(t *testing.T) {
	base := BaseSieve(60)

	got := SegmentSieve(960, 990, base)
	assert.Equal(t, []uint64{967, 971, 977, 983}, got)

	got = SegmentSieve(1140, 1170, base)
	assert.NotContains(t, got, uint64(1147))
	assert.Equal(t, trialPrimes(1140, 1170), got)
}

func TestSegmentSieveSmallPrimes(t *testing.T) {
	base := BaseSieve(30)

	// 2, 3, 5 are emitted exactly when the window covers them.
	assert.Equal(t, []uint64{2, 3, 5, 7}, SegmentSieve(0, 10, base))
	assert.NotContains(t, SegmentSieve(30, 60, base), uint64(2))
}

func TestSegmentSieveWindowBounds(t *testing.T) {
	base := BaseSieve(2000)

	// hi exactly on a candidate.
	got := SegmentSieve(90, 97, base)
	require.NotEmpty(t, got)
	assert.Equal(t, uint64(97), got[len(got)-1])

	// Window at the top of the first million.
	assert.Equal(t, trialPrimes(999960, 999999), SegmentSieve(999960, 999999, base))

	// Degenerate window with no candidates.
	assert.Empty(t, SegmentSieve(120, 120, base))
}
