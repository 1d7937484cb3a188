package ber

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// TextEncoding classifies the bytes of an IdentifiedString.
type TextEncoding int

const (
	// EncodingBinary marks content that is not (or must not be treated as) text.
	EncodingBinary TextEncoding = iota
	// EncodingUTF8 marks content that is valid UTF-8.
	EncodingUTF8
	// EncodingASCII marks 7-bit US-ASCII content.
	EncodingASCII
	// EncodingLatin1 marks ISO-8859-1 content.
	EncodingLatin1
)

// String returns the conventional charset name.
func (e TextEncoding) String() string {
	switch e {
	case EncodingBinary:
		return "binary"
	case EncodingUTF8:
		return "UTF-8"
	case EncodingASCII:
		return "US-ASCII"
	case EncodingLatin1:
		return "ISO-8859-1"
	default:
		return fmt.Sprintf("TextEncoding(%d)", int(e))
	}
}

// IdentifiedString is string content that remembers the tag it was decoded
// from (or will be encoded with) and a best-effort text classification.
//
// Identity is the content alone: Equal and Key ignore the tag and the
// classification, so an IdentifiedString compares equal to a plain string
// holding the same bytes.
type IdentifiedString struct {
	content  string
	tag      Tag
	tagSet   bool
	encoding TextEncoding
}

// NewString wraps text for encoding as a universal OCTET STRING.
// Content that is not valid UTF-8 is classified as binary.
func NewString(s string) IdentifiedString {
	return IdentifiedString{content: s, tag: OctetStringTag, encoding: classify(s), tagSet: true}
}

// NewBinary wraps b as a universal OCTET STRING classified as binary,
// even when the bytes happen to be valid text.
func NewBinary(b []byte) IdentifiedString {
	return IdentifiedString{content: string(b), tag: OctetStringTag, encoding: EncodingBinary, tagSet: true}
}

// NewIdentifiedString wraps b with an explicit tag. The bytes are copied.
func NewIdentifiedString(b []byte, tag Tag) IdentifiedString {
	s := string(b)
	return IdentifiedString{content: s, tag: tag, encoding: classify(s), tagSet: true}
}

func classify(s string) TextEncoding {
	if validUTF8(s) {
		return EncodingUTF8
	}
	return EncodingBinary
}

func validUTF8(s string) bool {
	_, _, err := transform.String(encoding.UTF8Validator, s)
	return err == nil
}

// Bytes returns a copy of the content.
func (s IdentifiedString) Bytes() []byte {
	return []byte(s.content)
}

// String returns the content bytes as a Go string, without transcoding.
func (s IdentifiedString) String() string {
	return s.content
}

// Len returns the content length in bytes.
func (s IdentifiedString) Len() int {
	return len(s.content)
}

// Tag returns the tag the string was decoded from or will be encoded with.
func (s IdentifiedString) Tag() Tag {
	if !s.tagSet {
		return OctetStringTag
	}
	return s.tag
}

// WithTag returns a copy of s that encodes with tag. The tag is forced to
// the primitive form.
func (s IdentifiedString) WithTag(tag Tag) IdentifiedString {
	tag.Constructed = false
	s.tag = tag
	s.tagSet = true
	return s
}

// Encoding returns the classification recorded at construction.
func (s IdentifiedString) Encoding() TextEncoding {
	return s.encoding
}

// IsBinary reports whether the content is classified as binary.
func (s IdentifiedString) IsBinary() bool {
	return s.encoding == EncodingBinary
}

// ValidIn reports whether the content is well-formed in enc.
// Binary and Latin-1 accept every byte sequence.
func (s IdentifiedString) ValidIn(enc TextEncoding) bool {
	switch enc {
	case EncodingBinary, EncodingLatin1:
		return true
	case EncodingUTF8:
		return validUTF8(s.content)
	case EncodingASCII:
		for i := 0; i < len(s.content); i++ {
			if s.content[i] >= 0x80 {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Text returns the content as UTF-8 text. Latin-1 content is transcoded;
// other classifications are returned verbatim.
func (s IdentifiedString) Text() (string, error) {
	if s.encoding != EncodingLatin1 {
		return s.content, nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s.content)
	if err != nil {
		return "", fmt.Errorf("ber: decode latin-1 content: %w", err)
	}
	return out, nil
}

// AsLatin1 returns a copy of s classified as ISO-8859-1 text.
func (s IdentifiedString) AsLatin1() IdentifiedString {
	s.encoding = EncodingLatin1
	return s
}

// Equal reports whether s and other hold the same bytes.
func (s IdentifiedString) Equal(other IdentifiedString) bool {
	return s.content == other.content
}

// EqualString reports whether s holds exactly the bytes of str.
func (s IdentifiedString) EqualString(str string) bool {
	return s.content == str
}

// Key returns a value suitable as a map key; it is the content itself.
func (s IdentifiedString) Key() string {
	return s.content
}

// AppendBER appends the TLV encoding of s to dst.
func (s IdentifiedString) AppendBER(dst []byte) []byte {
	dst = AppendTag(dst, s.Tag())
	dst = AppendLength(dst, uint64(len(s.content)))
	return append(dst, s.content...)
}

func (IdentifiedString) isValue() {}
