package sieve

// The sieve represents only integers coprime to 30. Each byte of the packed
// array covers a span of 30 integers, one bit per wheel residue, so multiples
// of 2, 3 and 5 never occupy storage at all.

// wheelOffsets maps a bit position to its residue under the base view:
// byte i, bit j represents the integer 30*i + wheelOffsets[j].
var wheelOffsets = [8]uint64{1, 7, 11, 13, 17, 19, 23, 29}

// constOffsets is the shifted view used when scanning candidates a full
// revolution at a time: candidate j of revolution m is 30*m + constOffsets[j].
// The two views describe the same bits; constOffsets simply crosses the byte
// boundary so that residue 1 of revolution m+1 appears as 31 of revolution m.
var constOffsets = [8]uint64{7, 11, 13, 17, 19, 23, 29, 31}

// wheelIndex30 maps n mod 30 to the residue-class row of the cross-product
// tables, or -1 when n shares a factor with 30. Residue 1 maps to the 31 row:
// a prime p with p mod 30 == 1 is indexed as 30*(p/30-1) + 31.
var wheelIndex30 = [30]int8{
	-1, 7, -1, -1, -1, -1, -1, 0,
	-1, -1, -1, 1, -1, 2, -1, -1,
	-1, 3, -1, 4, -1, -1, -1, 5,
	-1, -1, -1, -1, -1, 6,
}

// Cross-product tables. For a sieving prime p = 30m + constOffsets[r], the
// s-th strike of one wheel revolution lands at byte offset
// offsetIdxConst[r][s] + offsetIdxCoeff[r][s]*m relative to the revolution's
// base byte p*p/30, in bit offsetMod8[r][s]. After eight strikes the base
// advances by p bytes. See wheelgen.go for the derivation;
// TestWheelTablesMatchDerivation regenerates these literals from it.

// offsetMod8[r][s] is the bit position of the s-th strike.
var offsetMod8 = [8][8]uint8{
	{5, 4, 0, 7, 3, 2, 6, 1}, // residue 7
	{0, 6, 1, 7, 3, 5, 2, 4}, // residue 11
	{5, 2, 1, 7, 4, 3, 0, 6}, // residue 13
	{5, 6, 0, 3, 4, 7, 1, 2}, // residue 17
	{0, 4, 2, 5, 3, 7, 1, 6}, // residue 19
	{5, 1, 6, 2, 3, 7, 0, 4}, // residue 23
	{0, 7, 6, 5, 4, 3, 2, 1}, // residue 29
	{0, 1, 2, 3, 4, 5, 6, 7}, // residue 31
}

// offsetIdxConst[r][s] is the constant term of the strike's byte offset.
var offsetIdxConst = [8][8]uint64{
	{0, 1, 2, 2, 3, 4, 5, 6},
	{0, 0, 2, 2, 4, 6, 7, 9},
	{0, 2, 3, 4, 7, 8, 11, 12},
	{0, 1, 4, 7, 8, 11, 14, 15},
	{0, 2, 6, 7, 11, 13, 15, 17},
	{0, 5, 6, 11, 14, 15, 19, 20},
	{0, 1, 7, 11, 13, 17, 19, 23},
	{0, 6, 10, 12, 16, 18, 22, 28},
}

// offsetIdxCoeff[r][s] is the coefficient on m of the strike's byte offset.
var offsetIdxCoeff = [8][8]uint64{
	{0, 4, 6, 10, 12, 16, 22, 24},
	{0, 2, 6, 8, 12, 18, 20, 26},
	{0, 4, 6, 10, 16, 18, 24, 28},
	{0, 2, 6, 12, 14, 20, 24, 26},
	{0, 4, 10, 12, 18, 22, 24, 28},
	{0, 6, 8, 14, 18, 20, 24, 26},
	{0, 2, 8, 12, 14, 18, 20, 24},
	{0, 6, 10, 12, 16, 18, 22, 28},
}
