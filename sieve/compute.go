package sieve

import (
	"fmt"
	"math"
)

// Mode selects how Compute interprets its bounds.
type Mode int

const (
	// ModeAll computes the primes in [2, hi].
	ModeAll Mode = iota
	// ModeRange computes the primes in [lo, hi].
	ModeRange
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeRange:
		return "range"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	// DefaultSegmentBytes is the packed-array size per segment. One byte
	// spans 30 integers, so the default window covers 256Ki*30 integers
	// while the array itself stays L2-resident.
	DefaultSegmentBytes = 256 * 1024

	// baseOnlyCutoff is 31*31: below it every composite has a prime factor
	// representable in the first base-sieve byte, so the base sieve alone
	// suffices and segmentation would be pure overhead.
	baseOnlyCutoff = 961
)

// Options adjusts a Compute run. The zero value is ready to use.
type Options struct {
	// SegmentBytes overrides DefaultSegmentBytes when non-zero.
	SegmentBytes uint64

	// Progress, when non-nil, is called after each completed segment.
	Progress ProgressFunc

	// Stats, when non-nil, is filled with counters describing the run.
	Stats *Statistics
}

// Compute returns the primes selected by mode over [lo, hi]. In ModeAll lo
// is ignored. See ComputeWithOptions.
func Compute(lo, hi uint64, mode Mode) ([]uint64, error) {
	return ComputeWithOptions(lo, hi, mode, Options{})
}

// ComputeWithOptions runs the base sieve up to a bound covering sqrt(hi),
// then walks 30-aligned segments across the requested range, concatenating
// the primes each window yields. Output is strictly ascending. A lo below 3
// degenerates to ModeAll: the clipped range [2, hi] is exactly what ModeAll
// produces.
func ComputeWithOptions(lo, hi uint64, mode Mode, opts Options) ([]uint64, error) {
	if mode != ModeAll && mode != ModeRange {
		return nil, fmt.Errorf("invalid mode %d", int(mode))
	}

	segBytes := opts.SegmentBytes
	if segBytes == 0 {
		segBytes = DefaultSegmentBytes
	}
	span := segBytes * 30

	// Base bound: the first multiple of 30 strictly above sqrt(hi).
	limit := isqrt(hi)/30*30 + 30

	if opts.Stats != nil {
		opts.Stats.Lo = lo
		opts.Stats.Hi = hi
		opts.Stats.Mode = mode.String()
		opts.Stats.SegmentBytes = segBytes
	}

	if mode == ModeAll || lo < 3 {
		if hi <= baseOnlyCutoff {
			primes := BaseSieve(hi)
			if opts.Stats != nil {
				opts.Stats.BasePrimeCount = len(primes)
				opts.Stats.PrimesFound = len(primes)
			}
			return primes, nil
		}

		primes := make([]uint64, 0, primeCountUpper(hi))
		base := BaseSieve(limit)
		primes = append(primes, base...)
		primes = sieveSegments(primes, limit, hi, span, base, 0, hi, opts)
		if opts.Stats != nil {
			opts.Stats.BasePrimeCount = len(base)
			opts.Stats.PrimesFound = len(primes)
		}
		return primes, nil
	}

	// Range mode, lo >= 3.
	if hi < lo {
		return nil, nil
	}
	primes := make([]uint64, 0, rangeCountUpper(lo, hi))
	base := BaseSieve(limit)
	primes = sieveSegments(primes, lo/30*30, hi, span, base, lo, hi, opts)
	if opts.Stats != nil {
		opts.Stats.BasePrimeCount = len(base)
		opts.Stats.PrimesFound = len(primes)
	}
	return primes, nil
}

// sieveSegments walks 30-aligned windows of the given span from start to hi,
// appending each window's primes clipped to [filterLo, filterHi]. The window
// arithmetic avoids wrapping near the top of the uint64 range.
func sieveSegments(primes []uint64, start, hi, span uint64, base []uint64, filterLo, filterHi uint64, opts Options) []uint64 {
	total := int((hi-start)/span) + 1
	segment := 0
	for w := start; w <= hi; {
		whi := hi
		if hi-w >= span {
			whi = w + span - 1
		}
		for _, p := range SegmentSieve(w, whi, base) {
			if p >= filterLo && p <= filterHi {
				primes = append(primes, p)
			}
		}
		segment++
		if opts.Stats != nil {
			opts.Stats.SegmentCount = segment
		}
		if opts.Progress != nil {
			opts.Progress(Progress{
				Segment:       segment,
				TotalSegments: total,
				WindowLo:      w,
				WindowHi:      whi,
				PrimesSoFar:   len(primes),
			})
		}
		if whi == hi {
			break
		}
		w = whi + 1
	}
	return primes
}

// primeCountUpper bounds pi(x) from above by 1.25506*x/ln(x), for
// pre-sizing output slices.
func primeCountUpper(x uint64) int {
	if x < 17 {
		return 8
	}
	return int(1.25506*float64(x)/math.Log(float64(x))) + 1
}

// rangeCountUpper bounds the number of primes in [lo, hi].
func rangeCountUpper(lo, hi uint64) int {
	if hi < 17 || lo < 17 {
		return primeCountUpper(hi)
	}
	n := 1.25506 * (float64(hi)/math.Log(float64(hi)) - float64(lo)/math.Log(float64(lo)))
	if n < 16 {
		return 16
	}
	return int(n) + 1
}

// isqrt returns the integer square root of n.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(n)))
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for r > 0 && r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
