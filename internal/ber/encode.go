package ber

import "math/big"

// Encode returns the complete TLV encoding of v.
func Encode(v Value) []byte {
	return v.AppendBER(nil)
}

// Marshal converts x with ValueOf and encodes the result.
func Marshal(x any) ([]byte, error) {
	v, err := ValueOf(x)
	if err != nil {
		return nil, err
	}
	return Encode(v), nil
}

// EncodeBoolean encodes v as a universal BOOLEAN.
func EncodeBoolean(v bool) []byte {
	return NewBoolean(v).AppendBER(make([]byte, 0, 3))
}

// EncodeInteger encodes v as a universal INTEGER.
func EncodeInteger(v int64) []byte {
	content := encodeInteger(v)
	out := make([]byte, 0, 2+len(content))
	out = AppendTag(out, IntegerTag)
	out = AppendLength(out, uint64(len(content)))
	return append(out, content...)
}

// EncodeBigInteger encodes v as a universal INTEGER without precision loss.
func EncodeBigInteger(v *big.Int) []byte {
	return NewBigInteger(v).AppendBER(nil)
}

// EncodeEnumerated encodes v as a universal ENUMERATED.
func EncodeEnumerated(v int64) []byte {
	return NewEnumerated(v).AppendBER(nil)
}

// EncodeString encodes s as a universal OCTET STRING. The bytes of s are
// written unchanged.
func EncodeString(s string) []byte {
	return NewString(s).AppendBER(nil)
}

// EncodeBinary encodes b as a universal OCTET STRING, treating it as binary
// regardless of whether it happens to be valid text.
func EncodeBinary(b []byte) []byte {
	return NewBinary(b).AppendBER(nil)
}

// EncodeNull encodes a universal NULL.
func EncodeNull() []byte {
	return []byte{TagNull, 0x00}
}

// EncodeContext encodes content as a primitive context-specific element.
func EncodeContext(number uint32, content []byte) []byte {
	return NewIdentifiedString(content, ContextTag(number, false)).AppendBER(nil)
}

// EncodeSequence wraps already-encoded elements in a universal SEQUENCE.
func EncodeSequence(elements ...[]byte) []byte {
	return EncodeConstructed(SequenceTag, elements...)
}

// EncodeSet wraps already-encoded elements in a universal SET.
func EncodeSet(elements ...[]byte) []byte {
	return EncodeConstructed(SetTag, elements...)
}

// EncodeConstructed wraps already-encoded elements in the constructed form
// of tag.
func EncodeConstructed(tag Tag, elements ...[]byte) []byte {
	tag.Constructed = true
	size := 0
	for _, el := range elements {
		size += len(el)
	}

	out := make([]byte, 0, size+12)
	out = AppendTag(out, tag)
	out = AppendLength(out, uint64(size))
	for _, el := range elements {
		out = append(out, el...)
	}
	return out
}
