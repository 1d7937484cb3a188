// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import "fmt"

// Class is the tag class held in bits 7-8 of the identifier byte.
type Class uint8

// Tag class constants
const (
	ClassUniversal       Class = 0x00 // 00xxxxxx
	ClassApplication     Class = 0x40 // 01xxxxxx
	ClassContextSpecific Class = 0x80 // 10xxxxxx
	ClassPrivate         Class = 0xC0 // 11xxxxxx
)

// String returns the ASN.1 keyword for the class.
func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return fmt.Sprintf("Class(0x%02x)", uint8(c))
	}
}

// Constructed flag (bit 6 of the tag byte)
const (
	TypePrimitive   = 0x00 // xx0xxxxx
	TypeConstructed = 0x20 // xx1xxxxx
)

// Universal tag numbers
const (
	TagEndOfContent    = 0x00
	TagBoolean         = 0x01
	TagInteger         = 0x02
	TagBitString       = 0x03
	TagOctetString     = 0x04
	TagNull            = 0x05
	TagOID             = 0x06
	TagEnumerated      = 0x0A
	TagUTF8String      = 0x0C
	TagRelativeOID     = 0x0D
	TagSequence        = 0x10
	TagSet             = 0x11
	TagPrintableString = 0x13
	TagIA5String       = 0x16
)

// Identifier byte layout
const (
	classMask       = 0xC0
	constructedMask = 0x20
	numberMask      = 0x1F
	// highTagNumber marks a tag number continued in base-128 bytes.
	highTagNumber = 0x1F
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set)
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// maxLengthOctets bounds the long form to what fits in an int.
	maxLengthOctets = 8
)

// Tag identifies how the content bytes of a TLV are interpreted.
type Tag struct {
	Class       Class
	Number      uint32
	Constructed bool
}

// Frequently used universal tags.
var (
	BooleanTag     = Tag{Class: ClassUniversal, Number: TagBoolean}
	IntegerTag     = Tag{Class: ClassUniversal, Number: TagInteger}
	OctetStringTag = Tag{Class: ClassUniversal, Number: TagOctetString}
	NullTag        = Tag{Class: ClassUniversal, Number: TagNull}
	OIDTag         = Tag{Class: ClassUniversal, Number: TagOID}
	EnumeratedTag  = Tag{Class: ClassUniversal, Number: TagEnumerated}
	SequenceTag    = Tag{Class: ClassUniversal, Number: TagSequence, Constructed: true}
	SetTag         = Tag{Class: ClassUniversal, Number: TagSet, Constructed: true}
)

// ApplicationTag returns an APPLICATION class tag.
func ApplicationTag(number uint32, constructed bool) Tag {
	return Tag{Class: ClassApplication, Number: number, Constructed: constructed}
}

// ContextTag returns a context-specific tag.
func ContextTag(number uint32, constructed bool) Tag {
	return Tag{Class: ClassContextSpecific, Number: number, Constructed: constructed}
}

// String formats the tag in ASN.1 notation, e.g. "[APPLICATION 0] constructed".
func (t Tag) String() string {
	form := "primitive"
	if t.Constructed {
		form = "constructed"
	}
	if t.Class == ClassContextSpecific {
		return fmt.Sprintf("[%d] %s", t.Number, form)
	}
	return fmt.Sprintf("[%s %d] %s", t.Class, t.Number, form)
}

// IsZero reports whether t is the zero Tag (UNIVERSAL 0 primitive).
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// AppendTag appends the identifier octets for t to dst.
// Tag numbers above 30 use the high-tag-number form.
func AppendTag(dst []byte, t Tag) []byte {
	first := byte(t.Class)
	if t.Constructed {
		first |= TypeConstructed
	}

	// Short form: tag number fits in 5 bits (0-30)
	if t.Number < highTagNumber {
		return append(dst, first|byte(t.Number))
	}

	dst = append(dst, first|highTagNumber)
	return appendBase128(dst, uint64(t.Number))
}

// appendBase128 encodes v in base-128, high bit marking continuation.
func appendBase128(dst []byte, v uint64) []byte {
	n := 1
	for tmp := v >> 7; tmp > 0; tmp >>= 7 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := byte(v>>(uint(i)*7)) & 0x7F
		if i > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// ParseTag reads the identifier octets at data[offset:].
// It returns the tag and the number of bytes consumed.
func ParseTag(data []byte, offset int) (Tag, int, error) {
	if offset >= len(data) {
		return Tag{}, 0, NewDecodeError(offset, "cannot read tag", ErrTruncated)
	}

	first := data[offset]
	tag := Tag{
		Class:       Class(first & classMask),
		Constructed: first&constructedMask != 0,
		Number:      uint32(first & numberMask),
	}
	if tag.Number != highTagNumber {
		return tag, 1, nil
	}

	// Long form: base-128 number in the following bytes
	var number uint64
	pos := offset + 1
	for {
		if pos >= len(data) {
			return Tag{}, 0, NewDecodeError(offset, "truncated long form tag", ErrTruncated)
		}
		b := data[pos]
		pos++

		if pos == offset+2 && b == 0x80 {
			return Tag{}, 0, NewDecodeError(offset, "non-minimal long form tag", ErrMalformedTag)
		}
		number = number<<7 | uint64(b&0x7F)
		if number > 1<<31-1 {
			return Tag{}, 0, NewDecodeError(offset, "tag number overflow", ErrMalformedTag)
		}
		if b&0x80 == 0 {
			break
		}
	}
	if number < highTagNumber {
		return Tag{}, 0, NewDecodeError(offset, "long form used for low tag number", ErrMalformedTag)
	}

	tag.Number = uint32(number)
	return tag, pos - offset, nil
}
