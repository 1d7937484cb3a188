package ber

import "math"

// EncodeLength returns the definite-form encoding of n.
// Short form for 0-127, long form with minimal big-endian octets otherwise.
func EncodeLength(n uint64) []byte {
	return AppendLength(make([]byte, 0, 9), n)
}

// AppendLength appends the definite-form encoding of n to dst.
func AppendLength(dst []byte, n uint64) []byte {
	if n <= MaxShortFormLength {
		return append(dst, byte(n))
	}

	numBytes := 0
	for tmp := n; tmp > 0; tmp >>= 8 {
		numBytes++
	}

	dst = append(dst, byte(LengthLongFormBit|numBytes))
	for i := numBytes - 1; i >= 0; i-- {
		dst = append(dst, byte(n>>(uint(i)*8)))
	}
	return dst
}

// DecodeLength reads a length field at data[offset:].
// It returns the length value and the number of bytes the field occupied.
func DecodeLength(data []byte, offset int) (n int, consumed int, err error) {
	if offset >= len(data) {
		return 0, 0, NewDecodeError(offset, "cannot read length", ErrTruncated)
	}

	first := data[offset]

	// Short form: bit 8 is 0, bits 1-7 contain the length
	if first&LengthLongFormBit == 0 {
		return int(first), 1, nil
	}

	numBytes := int(first & 0x7F)
	if numBytes == 0 {
		return 0, 0, NewDecodeError(offset, "indefinite length encoding", ErrIndefiniteLength)
	}
	if numBytes > maxLengthOctets {
		return 0, 0, NewDecodeError(offset, "length field too wide", ErrUnsupportedLength)
	}
	if offset+1+numBytes > len(data) {
		return 0, 0, NewDecodeError(offset, "truncated length encoding", ErrTruncated)
	}

	var length uint64
	for _, b := range data[offset+1 : offset+1+numBytes] {
		length = length<<8 | uint64(b)
	}
	if length > math.MaxInt {
		return 0, 0, NewDecodeError(offset, "length value overflow", ErrUnsupportedLength)
	}

	return int(length), 1 + numBytes, nil
}
