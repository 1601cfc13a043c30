package sieve

// SegmentSieve returns the primes in [lo, hi] in ascending order. lo must be
// a multiple of 30 with lo <= hi, and basePrimes must be an ascending list
// beginning 2, 3, 5 that contains every prime <= sqrt(hi); Compute arranges
// both. The window's packed array is small enough to stay cache-resident,
// which is the point of sieving in segments at all.
func SegmentSieve(lo, hi uint64, basePrimes []uint64) []uint64 {
	byteCount := (hi-lo+29)/30 + 1
	bits := make([]byte, byteCount)
	for i := range bits {
		bits[i] = 0xFF
	}
	if lo == 0 {
		// Byte 0 bit 0 would decode as the integer 1.
		bits[0] &^= 1
	}
	loByte := lo / 30
	limit := int64(byteCount)

	for i := 3; i < len(basePrimes); i++ {
		p := basePrimes[i]
		if p*p > hi {
			break
		}
		r := wheelIndex30[p%30]

		// Base of the first wheel revolution at or past lo: the smallest
		// p*(p + 30k) >= lo. Striking begins at p*p; earlier multiples have a
		// smaller prime factor and were struck by it.
		startNum := p * p
		if startNum < lo {
			step := 30 * p
			startNum += (lo - startNum + step - 1) / step * step
		}
		baseIdx := int64(startNum/30) - int64(loByte)

		// Residue 1 primes are expressed as 30*(m-1) + 31, so the m fed to
		// the cross-product rows is one less than p/30.
		m := p / 30
		if r == 7 {
			m--
		}

		var off [8]int64
		var mask [8]byte
		for s := 0; s < 8; s++ {
			off[s] = int64(offsetIdxConst[r][s] + offsetIdxCoeff[r][s]*m)
			mask[s] = ^(byte(1) << offsetMod8[r][s])
		}

		// Head fixup: when the segment starts beyond p*p we enter
		// mid-revolution, and trailing strikes of the revolution based just
		// below the segment can still land inside it. Signed indices here:
		// baseIdx - p is always negative, since that revolution's base lies
		// below lo, and only strikes whose index is >= 0 are applied.
		if p*p < lo {
			prevBase := baseIdx - int64(p)
			for s := 0; s < 8; s++ {
				if t := prevBase + off[s]; t >= 0 && t < limit {
					bits[t] &= mask[s]
				}
			}
		}

		idx := baseIdx
		for safe := limit - off[7]; idx < safe; idx += int64(p) {
			bits[idx+off[0]] &= mask[0]
			bits[idx+off[1]] &= mask[1]
			bits[idx+off[2]] &= mask[2]
			bits[idx+off[3]] &= mask[3]
			bits[idx+off[4]] &= mask[4]
			bits[idx+off[5]] &= mask[5]
			bits[idx+off[6]] &= mask[6]
			bits[idx+off[7]] &= mask[7]
		}
		for ; idx < limit; idx += int64(p) {
			for s := 0; s < 8; s++ {
				if t := idx + off[s]; t < limit {
					bits[t] &= mask[s]
				}
			}
		}
	}

	primes := make([]uint64, 0, rangeCountUpper(lo, hi))
	for _, small := range []uint64{2, 3, 5} {
		if lo <= small && small <= hi {
			primes = append(primes, small)
		}
	}
	for i := uint64(0); i < byteCount; i++ {
		b := bits[i]
		if b == 0 {
			continue
		}
		for j := 0; j < 8; j++ {
			if b&(1<<j) == 0 {
				continue
			}
			p := lo + 30*i + wheelOffsets[j]
			if p > hi {
				return primes
			}
			primes = append(primes, p)
		}
	}
	return primes
}
