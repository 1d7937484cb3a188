// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
	"math/big"
)

// ErrUnbalancedConstructed is returned when EndConstructed is called with a
// position that BeginConstructed did not return.
var ErrUnbalancedConstructed = errors.New("ber: unbalanced constructed element")

// BEREncoder encodes ASN.1 values using BER (Basic Encoding Rules).
//
// Constructed elements may be written without knowing their size up front:
// BeginConstructed writes the tag and returns a position that
// EndConstructed later fills in with the content length.
type BEREncoder struct {
	buf  []byte
	open []int
}

// NewBEREncoder creates a new BER encoder with an optional initial capacity.
func NewBEREncoder(capacity int) *BEREncoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &BEREncoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *BEREncoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *BEREncoder) Reset() {
	e.buf = e.buf[:0]
	e.open = e.open[:0]
}

// Len returns the current length of encoded data.
func (e *BEREncoder) Len() int {
	return len(e.buf)
}

// WriteTag writes the identifier octets of tag.
func (e *BEREncoder) WriteTag(tag Tag) {
	e.buf = AppendTag(e.buf, tag)
}

// WriteLength writes a definite-form length.
func (e *BEREncoder) WriteLength(length uint64) {
	e.buf = AppendLength(e.buf, length)
}

// WriteBoolean writes a BER-encoded boolean value. TRUE is written as 0x01.
func (e *BEREncoder) WriteBoolean(v bool) {
	e.buf = NewBoolean(v).AppendBER(e.buf)
}

// WriteInteger writes a BER-encoded integer value.
// Non-negative values use the minimal unsigned magnitude.
func (e *BEREncoder) WriteInteger(v int64) {
	e.writePrimitive(IntegerTag, encodeInteger(v))
}

// WriteBigInteger writes an integer of any magnitude.
func (e *BEREncoder) WriteBigInteger(v *big.Int) {
	e.buf = NewBigInteger(v).AppendBER(e.buf)
}

// WriteEnumerated writes a BER-encoded enumerated value.
// Enumerated values are encoded identically to integers.
func (e *BEREncoder) WriteEnumerated(v int64) {
	e.writePrimitive(EnumeratedTag, encodeInteger(v))
}

// WriteOctetString writes a BER-encoded octet string.
func (e *BEREncoder) WriteOctetString(v []byte) {
	e.writePrimitive(OctetStringTag, v)
}

// WriteString writes s as an octet string without transcoding.
func (e *BEREncoder) WriteString(s string) {
	e.buf = AppendTag(e.buf, OctetStringTag)
	e.buf = AppendLength(e.buf, uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteNull writes a BER-encoded null value.
func (e *BEREncoder) WriteNull() {
	e.writePrimitive(NullTag, nil)
}

// WriteTaggedValue writes value as primitive content under an implicit tag.
func (e *BEREncoder) WriteTaggedValue(tag Tag, value []byte) {
	tag.Constructed = false
	e.writePrimitive(tag, value)
}

// WriteValue writes the complete encoding of v.
func (e *BEREncoder) WriteValue(v Value) {
	e.buf = v.AppendBER(e.buf)
}

// WriteRaw writes raw bytes directly to the buffer.
// Useful for pre-encoded data or custom encoding.
func (e *BEREncoder) WriteRaw(data []byte) {
	e.buf = append(e.buf, data...)
}

func (e *BEREncoder) writePrimitive(tag Tag, content []byte) {
	e.buf = AppendTag(e.buf, tag)
	e.buf = AppendLength(e.buf, uint64(len(content)))
	e.buf = append(e.buf, content...)
}

// BeginConstructed writes the constructed form of tag and returns the
// position its length will be inserted at.
func (e *BEREncoder) BeginConstructed(tag Tag) int {
	tag.Constructed = true
	e.buf = AppendTag(e.buf, tag)
	pos := len(e.buf)
	e.open = append(e.open, pos)
	return pos
}

// EndConstructed closes the innermost element opened by BeginConstructed.
// Elements must be closed in reverse order of opening.
func (e *BEREncoder) EndConstructed(pos int) error {
	if len(e.open) == 0 || e.open[len(e.open)-1] != pos {
		return ErrUnbalancedConstructed
	}
	e.open = e.open[:len(e.open)-1]

	contentLen := len(e.buf) - pos
	lenBytes := EncodeLength(uint64(contentLen))

	// Shift the content right to make room for the length field.
	e.buf = append(e.buf, lenBytes...)
	copy(e.buf[pos+len(lenBytes):], e.buf[pos:pos+contentLen])
	copy(e.buf[pos:], lenBytes)
	return nil
}

// BeginSequence starts a universal SEQUENCE.
func (e *BEREncoder) BeginSequence() int {
	return e.BeginConstructed(SequenceTag)
}

// EndSequence closes a SEQUENCE started with BeginSequence.
func (e *BEREncoder) EndSequence(pos int) error {
	return e.EndConstructed(pos)
}

// BeginSet starts a universal SET.
func (e *BEREncoder) BeginSet() int {
	return e.BeginConstructed(SetTag)
}

// EndSet closes a SET started with BeginSet.
func (e *BEREncoder) EndSet(pos int) error {
	return e.EndConstructed(pos)
}
