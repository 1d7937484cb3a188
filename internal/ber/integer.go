package ber

import "math/big"

var bigOne = big.NewInt(1)

// Non-negative integers are written as their minimal unsigned big-endian
// magnitude, with no sign padding: 128 is 80 and 255 is FF. Decoding reads
// INTEGER content the same way, so every non-negative value round-trips.
//
// Negative values are written in minimal two's complement so encoding stays
// total. They do not survive a decode: the content reads back as an unsigned
// magnitude.

// encodeInteger encodes an int64 as described above.
func encodeInteger(v int64) []byte {
	if v >= 0 {
		return encodeUnsigned(uint64(v))
	}

	n := 1
	for ; n < 8; n++ {
		// v fits in n bytes when shifting out the low n*8-1 bits leaves
		// only sign bits behind.
		if v>>(uint(n)*8-1) == -1 {
			break
		}
	}

	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

func encodeUnsigned(v uint64) []byte {
	n := 1
	for x := v >> 8; x > 0; x >>= 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// encodeBigInteger encodes v as described above.
func encodeBigInteger(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{0x00}
	case 1:
		return v.Bytes()
	}

	// -v-1 is non-negative; its bitwise complement is the two's complement of v.
	n := new(big.Int).Neg(v)
	n.Sub(n, bigOne)
	b := n.Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		b = append([]byte{0xFF}, b...)
	}
	return b
}

// decodeInteger parses content of any width as an unsigned magnitude.
// Callers must reject empty content.
func decodeInteger(content []byte) *big.Int {
	return new(big.Int).SetBytes(content)
}

// decodeInt64 parses unsigned content, reporting false when the value does
// not fit in an int64.
func decodeInt64(content []byte) (int64, bool) {
	// leading zero bytes do not count towards the width
	for len(content) > 1 && content[0] == 0 {
		content = content[1:]
	}
	if len(content) > 8 || (len(content) == 8 && content[0]&0x80 != 0) {
		return 0, false
	}
	var result int64
	for _, b := range content {
		result = result<<8 | int64(b)
	}
	return result, true
}
