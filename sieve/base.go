package sieve

// BaseSieve returns all primes <= hi in ascending order. It sieves a single
// packed array covering [0, hi] and is intended for producing the sieving
// primes handed to SegmentSieve; Compute uses it directly when hi is small
// enough that no segmentation is needed.
func BaseSieve(hi uint64) []uint64 {
	if hi < 2 {
		return nil
	}

	primes := make([]uint64, 0, primeCountUpper(hi))
	primes = append(primes, 2)
	if hi >= 3 {
		primes = append(primes, 3)
	}
	if hi >= 5 {
		primes = append(primes, 5)
	}

	byteCount := hi/30 + 1
	bits := make([]byte, byteCount)
	for i := range bits {
		bits[i] = 0xFF
	}
	// Byte 0 bit 0 represents the integer 1.
	bits[0] &^= 1

	sqrtHi := isqrt(hi)
	bitCount := 8 * byteCount
	for m := uint64(0); 30*m+1 <= sqrtHi; m++ {
		// Bit m*8+1+j is candidate 30*m + constOffsets[j]: the scan walks
		// the const view, one full revolution per byte starting at bit 1.
		firstBit := 8*m + 1
		for j := 0; j < 8; j++ {
			bit := firstBit + uint64(j)
			if bit >= bitCount {
				break
			}
			if bits[bit>>3]&(1<<(bit&7)) == 0 {
				continue
			}
			p := 30*m + constOffsets[j]
			idx := p * p / 30

			var off [8]uint64
			var mask [8]byte
			for s := 0; s < 8; s++ {
				off[s] = offsetIdxConst[j][s] + offsetIdxCoeff[j][s]*m
				mask[s] = ^(byte(1) << offsetMod8[j][s])
			}

			// Main loop: one revolution per iteration, no bounds checks.
			var safe uint64
			if off[7] < byteCount {
				safe = byteCount - off[7]
			}
			for ; idx < safe; idx += p {
				bits[idx+off[0]] &= mask[0]
				bits[idx+off[1]] &= mask[1]
				bits[idx+off[2]] &= mask[2]
				bits[idx+off[3]] &= mask[3]
				bits[idx+off[4]] &= mask[4]
				bits[idx+off[5]] &= mask[5]
				bits[idx+off[6]] &= mask[6]
				bits[idx+off[7]] &= mask[7]
			}
			// Tail: the last revolutions straddle the end of the array.
			for ; idx < byteCount; idx += p {
				for s := 0; s < 8; s++ {
					if t := idx + off[s]; t < byteCount {
						bits[t] &= mask[s]
					}
				}
			}
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
			p := 30*i + wheelOffsets[j]
			if p > hi {
				return primes
			}
			primes = append(primes, p)
		}
	}
	return primes
}
