// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import "math/big"

// MaxNestingDepth limits how deeply constructed values may nest.
const MaxNestingDepth = 128

// Header describes the tag and length of one TLV element.
type Header struct {
	Tag       Tag
	Length    int // content length in bytes
	Offset    int // offset of the first tag byte
	HeaderLen int // bytes taken by tag and length fields
}

// End returns the offset just past the element's content.
func (h Header) End() int {
	return h.Offset + h.HeaderLen + h.Length
}

// BERDecoder decodes ASN.1 values using BER (Basic Encoding Rules).
type BERDecoder struct {
	data   []byte
	offset int
}

// NewBERDecoder creates a new BER decoder for the given data.
func NewBERDecoder(data []byte) *BERDecoder {
	return &BERDecoder{
		data:   data,
		offset: 0,
	}
}

// Offset returns the current read position in the data.
func (d *BERDecoder) Offset() int {
	return d.offset
}

// Remaining returns the number of bytes remaining to be read.
func (d *BERDecoder) Remaining() int {
	return len(d.data) - d.offset
}

// Reset resets the decoder to the beginning of the data.
func (d *BERDecoder) Reset() {
	d.offset = 0
}

// ReadTag reads a BER tag from the current position.
func (d *BERDecoder) ReadTag() (Tag, error) {
	tag, n, err := ParseTag(d.data, d.offset)
	if err != nil {
		return Tag{}, err
	}
	d.offset += n
	return tag, nil
}

// PeekTag reads a tag without advancing the offset.
func (d *BERDecoder) PeekTag() (Tag, error) {
	tag, _, err := ParseTag(d.data, d.offset)
	return tag, err
}

// ReadLength reads a BER length value from the current position.
func (d *BERDecoder) ReadLength() (int, error) {
	n, consumed, err := DecodeLength(d.data, d.offset)
	if err != nil {
		return 0, err
	}
	d.offset += consumed
	return n, nil
}

// ReadHeader reads a tag and a length and verifies that the content is
// fully present. The offset is left at the start of the content.
func (d *BERDecoder) ReadHeader() (Header, error) {
	start := d.offset

	tag, err := d.ReadTag()
	if err != nil {
		d.offset = start
		return Header{}, err
	}
	length, err := d.ReadLength()
	if err != nil {
		d.offset = start
		return Header{}, err
	}

	h := Header{Tag: tag, Length: length, Offset: start, HeaderLen: d.offset - start}
	if length > len(d.data)-d.offset {
		d.offset = start
		return Header{}, NewDecodeError(start, "truncated value", ErrTruncated)
	}
	return h, nil
}

// readPrimitive reads a primitive element carrying the expected tag and
// returns its content.
func (d *BERDecoder) readPrimitive(expected Tag) ([]byte, int, error) {
	start := d.offset
	h, err := d.ReadHeader()
	if err != nil {
		return nil, start, err
	}
	if h.Tag != expected {
		d.offset = start
		return nil, start, &TagMismatchError{Offset: start, Expected: expected, Actual: h.Tag}
	}
	content := d.data[d.offset : d.offset+h.Length]
	d.offset += h.Length
	return content, start, nil
}

// ReadBoolean reads a BER-encoded boolean value.
func (d *BERDecoder) ReadBoolean() (bool, error) {
	content, start, err := d.readPrimitive(BooleanTag)
	if err != nil {
		return false, err
	}
	if len(content) != 1 {
		return false, NewDecodeError(start, "boolean must have length 1", ErrInvalidBoolean)
	}
	// Per X.690, FALSE is 0x00, TRUE is any non-zero value
	return content[0] != 0x00, nil
}

// ReadInteger reads a BER-encoded integer that fits in an int64.
func (d *BERDecoder) ReadInteger() (int64, error) {
	return d.readInt64(IntegerTag)
}

// ReadEnumerated reads a BER-encoded enumerated value.
func (d *BERDecoder) ReadEnumerated() (int64, error) {
	return d.readInt64(EnumeratedTag)
}

// ReadIntegerWithTag reads an int64 integer carried under an implicit tag.
func (d *BERDecoder) ReadIntegerWithTag(tag Tag) (int64, error) {
	return d.readInt64(tag)
}

func (d *BERDecoder) readInt64(tag Tag) (int64, error) {
	content, start, err := d.readPrimitive(tag)
	if err != nil {
		return 0, err
	}
	if len(content) == 0 {
		return 0, NewDecodeError(start, "integer must have at least 1 byte", ErrInvalidInteger)
	}
	v, ok := decodeInt64(content)
	if !ok {
		return 0, NewDecodeError(start, "integer too large for int64", ErrInvalidInteger)
	}
	return v, nil
}

// ReadBigInteger reads a BER-encoded integer of any magnitude.
func (d *BERDecoder) ReadBigInteger() (*big.Int, error) {
	content, start, err := d.readPrimitive(IntegerTag)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, NewDecodeError(start, "integer must have at least 1 byte", ErrInvalidInteger)
	}
	return decodeInteger(content), nil
}

// ReadOctetString reads a primitive BER-encoded octet string.
func (d *BERDecoder) ReadOctetString() ([]byte, error) {
	return d.ReadOctetStringWithTag(OctetStringTag)
}

// ReadOctetStringWithTag reads octet string content under an implicit tag.
func (d *BERDecoder) ReadOctetStringWithTag(tag Tag) ([]byte, error) {
	content, _, err := d.readPrimitive(tag)
	if err != nil {
		return nil, err
	}
	value := make([]byte, len(content))
	copy(value, content)
	return value, nil
}

// ReadNull reads a BER-encoded null value.
func (d *BERDecoder) ReadNull() error {
	content, start, err := d.readPrimitive(NullTag)
	if err != nil {
		return err
	}
	if len(content) != 0 {
		return NewDecodeError(start, "null must have length 0", ErrInvalidNull)
	}
	return nil
}

// Skip skips the current TLV (Tag-Length-Value) element.
func (d *BERDecoder) Skip() error {
	h, err := d.ReadHeader()
	if err != nil {
		return err
	}
	d.offset += h.Length
	return nil
}

// ReadRawValue reads the raw bytes of the current TLV element (including tag and length).
func (d *BERDecoder) ReadRawValue() ([]byte, error) {
	h, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	result := make([]byte, h.End()-h.Offset)
	copy(result, d.data[h.Offset:h.End()])
	d.offset = h.End()
	return result, nil
}

// ExpectConstructed reads a constructed element carrying tag and returns a
// decoder positioned over its content. The receiver moves past the element.
func (d *BERDecoder) ExpectConstructed(tag Tag) (*BERDecoder, error) {
	tag.Constructed = true
	start := d.offset
	h, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	if h.Tag != tag {
		d.offset = start
		return nil, &TagMismatchError{Offset: start, Expected: tag, Actual: h.Tag}
	}
	sub := &BERDecoder{data: d.data[:h.End()], offset: d.offset}
	d.offset = h.End()
	return sub, nil
}

// ReadSequenceContents reads a SEQUENCE and returns a decoder over its content.
func (d *BERDecoder) ReadSequenceContents() (*BERDecoder, error) {
	return d.ExpectConstructed(SequenceTag)
}

// IsContextTag checks if the next tag is a context-specific tag with the given number
// without consuming it.
func (d *BERDecoder) IsContextTag(num uint32) bool {
	tag, err := d.PeekTag()
	return err == nil && tag.Class == ClassContextSpecific && tag.Number == num
}

// IsApplicationTag checks if the next tag is an application-specific tag with the given number
// without consuming it.
func (d *BERDecoder) IsApplicationTag(num uint32) bool {
	tag, err := d.PeekTag()
	return err == nil && tag.Class == ClassApplication && tag.Number == num
}

// ReadValue decodes the next complete element, interpreting non-universal
// tags with syntax. A nil syntax applies the universal defaults only.
func (d *BERDecoder) ReadValue(syntax *Syntax) (Value, error) {
	return d.readValue(syntax, 0)
}

func (d *BERDecoder) readValue(syntax *Syntax, depth int) (Value, error) {
	h, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}

	contentStart := d.offset
	content := d.data[contentStart:h.End()]

	var v Value
	switch rule := syntax.resolve(h.Tag); rule {
	case RuleSequence:
		if depth >= MaxNestingDepth {
			return nil, NewDecodeError(h.Offset, "constructed value nested too deeply", ErrNestingTooDeep)
		}
		sub := &BERDecoder{data: d.data[:h.End()], offset: contentStart}
		v, err = sub.readChildren(h.Tag, syntax, depth+1)
	default:
		v, err = decodePrimitive(h, content, rule)
	}
	if err != nil {
		d.offset = h.Offset
		return nil, err
	}

	d.offset = h.End()
	return v, nil
}

// readChildren decodes elements until the decoder's data is exhausted.
func (d *BERDecoder) readChildren(tag Tag, syntax *Syntax, depth int) (Value, error) {
	var items []Value
	for d.Remaining() > 0 {
		item, err := d.readValue(syntax, depth)
		if err != nil {
			if IsTruncated(err) {
				// The parent's content was complete, so the child lengths
				// are inconsistent with it.
				return nil, NewDecodeError(d.offset, "element overruns constructed content", ErrTrailingData)
			}
			return nil, err
		}
		items = append(items, item)
	}
	return Sequence{items: items, tag: tag, tagSet: true}, nil
}

func decodePrimitive(h Header, content []byte, rule Rule) (Value, error) {
	switch rule {
	case RuleBoolean:
		if len(content) != 1 {
			return nil, NewDecodeError(h.Offset, "boolean must have length 1", ErrInvalidBoolean)
		}
		return Boolean{v: content[0] != 0x00, tag: h.Tag, tagSet: true}, nil

	case RuleInteger:
		if len(content) == 0 {
			return nil, NewDecodeError(h.Offset, "integer must have at least 1 byte", ErrInvalidInteger)
		}
		return Integer{v: decodeInteger(content), tag: h.Tag, tagSet: true}, nil

	case RuleNull:
		if len(content) != 0 {
			return nil, NewDecodeError(h.Offset, "null must have length 0", ErrInvalidNull)
		}
		return Null{tag: h.Tag, tagSet: true}, nil

	case RuleOID:
		arcs, err := decodeOID(content)
		if err != nil {
			return nil, NewDecodeError(h.Offset, "malformed object identifier", err)
		}
		return ObjectIdentifier{arcs: arcs, tag: h.Tag, tagSet: true}, nil

	default:
		return NewIdentifiedString(content, h.Tag), nil
	}
}

// decodeOID parses base-128 subidentifiers, splitting the first into two arcs.
func decodeOID(content []byte) ([]uint64, error) {
	if len(content) == 0 {
		return nil, ErrInvalidOID
	}

	var arcs []uint64
	var cur uint64
	start := true
	for i, b := range content {
		if start && b == 0x80 {
			return nil, ErrInvalidOID
		}
		if cur > (1<<64-1)>>7 {
			return nil, ErrInvalidOID
		}
		cur = cur<<7 | uint64(b&0x7F)
		start = false
		if b&0x80 != 0 {
			if i == len(content)-1 {
				return nil, ErrInvalidOID
			}
			continue
		}

		if arcs == nil {
			switch {
			case cur < 40:
				arcs = append(arcs, 0, cur)
			case cur < 80:
				arcs = append(arcs, 1, cur-40)
			default:
				arcs = append(arcs, 2, cur-80)
			}
		} else {
			arcs = append(arcs, cur)
		}
		cur = 0
		start = true
	}
	return arcs, nil
}
