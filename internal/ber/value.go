package ber

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is a decoded or encodable BER element. The concrete types are
// Boolean, Integer, IdentifiedString, Sequence, Null and ObjectIdentifier.
type Value interface {
	// Tag reports the identifier the value is encoded with.
	Tag() Tag
	// AppendBER appends the complete TLV encoding of the value to dst.
	AppendBER(dst []byte) []byte

	isValue()
}

// Boolean is a BOOLEAN value.
type Boolean struct {
	v      bool
	tag    Tag
	tagSet bool
}

// NewBoolean returns a universal BOOLEAN.
func NewBoolean(v bool) Boolean {
	return Boolean{v: v, tag: BooleanTag, tagSet: true}
}

// Bool returns the boolean.
func (b Boolean) Bool() bool { return b.v }

// Tag returns the boolean's tag.
func (b Boolean) Tag() Tag {
	if !b.tagSet {
		return BooleanTag
	}
	return b.tag
}

// WithTag returns a copy of b encoded with tag in primitive form.
func (b Boolean) WithTag(tag Tag) Boolean {
	tag.Constructed = false
	b.tag = tag
	b.tagSet = true
	return b
}

// AppendBER appends the TLV encoding of b to dst. TRUE is encoded as 0x01.
func (b Boolean) AppendBER(dst []byte) []byte {
	dst = AppendTag(dst, b.Tag())
	if b.v {
		return append(dst, 0x01, 0x01)
	}
	return append(dst, 0x01, 0x00)
}

func (Boolean) isValue() {}

// Integer is an INTEGER (or ENUMERATED) value of arbitrary magnitude.
type Integer struct {
	v      *big.Int
	tag    Tag
	tagSet bool
}

// NewInteger returns a universal INTEGER.
func NewInteger(v int64) Integer {
	return Integer{v: big.NewInt(v), tag: IntegerTag, tagSet: true}
}

// NewBigInteger returns a universal INTEGER holding a copy of v.
// A nil v is treated as zero.
func NewBigInteger(v *big.Int) Integer {
	n := new(big.Int)
	if v != nil {
		n.Set(v)
	}
	return Integer{v: n, tag: IntegerTag, tagSet: true}
}

// NewEnumerated returns a universal ENUMERATED.
func NewEnumerated(v int64) Integer {
	return Integer{v: big.NewInt(v), tag: EnumeratedTag, tagSet: true}
}

func (i Integer) value() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Big returns a copy of the integer.
func (i Integer) Big() *big.Int {
	return new(big.Int).Set(i.value())
}

// Int64 returns the integer and whether it fits in an int64.
func (i Integer) Int64() (int64, bool) {
	v := i.value()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// Cmp compares the integer with v as big.Int.Cmp does.
func (i Integer) Cmp(v *big.Int) int {
	return i.value().Cmp(v)
}

// String returns the decimal representation.
func (i Integer) String() string {
	return i.value().String()
}

// Tag returns the integer's tag.
func (i Integer) Tag() Tag {
	if !i.tagSet {
		return IntegerTag
	}
	return i.tag
}

// WithTag returns a copy of i encoded with tag in primitive form.
func (i Integer) WithTag(tag Tag) Integer {
	tag.Constructed = false
	i.tag = tag
	i.tagSet = true
	return i
}

// AppendBER appends the TLV encoding of i to dst.
func (i Integer) AppendBER(dst []byte) []byte {
	v := i.value()
	var content []byte
	if v.IsInt64() {
		content = encodeInteger(v.Int64())
	} else {
		content = encodeBigInteger(v)
	}
	dst = AppendTag(dst, i.Tag())
	dst = AppendLength(dst, uint64(len(content)))
	return append(dst, content...)
}

func (Integer) isValue() {}

// Sequence is an ordered collection of values: a SEQUENCE, a SET, or any
// constructed application or context-specific element.
type Sequence struct {
	items  []Value
	tag    Tag
	tagSet bool
}

// NewSequence returns a universal SEQUENCE of items. A nil item is stored
// as NULL.
func NewSequence(items ...Value) Sequence {
	return Sequence{items: copyItems(items), tag: SequenceTag, tagSet: true}
}

// NewSet returns a universal SET of items, kept in the given order. A nil
// item is stored as NULL.
func NewSet(items ...Value) Sequence {
	return Sequence{items: copyItems(items), tag: SetTag, tagSet: true}
}

func copyItems(items []Value) []Value {
	if len(items) == 0 {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		if item == nil {
			item = NewNull()
		}
		out[i] = item
	}
	return out
}

// Len returns the number of elements.
func (s Sequence) Len() int { return len(s.items) }

// At returns the i'th element.
func (s Sequence) At(i int) Value { return s.items[i] }

// Items returns a copy of the elements.
func (s Sequence) Items() []Value {
	return append([]Value(nil), s.items...)
}

// Tag returns the sequence's tag, always in constructed form.
func (s Sequence) Tag() Tag {
	if !s.tagSet {
		return SequenceTag
	}
	return s.tag
}

// WithTag returns a copy of s encoded with tag in constructed form.
func (s Sequence) WithTag(tag Tag) Sequence {
	tag.Constructed = true
	s.tag = tag
	s.tagSet = true
	return s
}

// AppendBER appends the TLV encoding of s to dst.
func (s Sequence) AppendBER(dst []byte) []byte {
	var content []byte
	for _, item := range s.items {
		content = item.AppendBER(content)
	}
	dst = AppendTag(dst, s.Tag())
	dst = AppendLength(dst, uint64(len(content)))
	return append(dst, content...)
}

func (Sequence) isValue() {}

// Null is a NULL value.
type Null struct {
	tag    Tag
	tagSet bool
}

// NewNull returns a universal NULL.
func NewNull() Null {
	return Null{tag: NullTag, tagSet: true}
}

// Tag returns the null's tag.
func (n Null) Tag() Tag {
	if !n.tagSet {
		return NullTag
	}
	return n.tag
}

// WithTag returns a copy of n encoded with tag in primitive form.
func (n Null) WithTag(tag Tag) Null {
	tag.Constructed = false
	n.tag = tag
	n.tagSet = true
	return n
}

// AppendBER appends the TLV encoding of n to dst.
func (n Null) AppendBER(dst []byte) []byte {
	dst = AppendTag(dst, n.Tag())
	return append(dst, 0x00)
}

func (Null) isValue() {}

// ObjectIdentifier is an OBJECT IDENTIFIER value.
type ObjectIdentifier struct {
	arcs   []uint64
	tag    Tag
	tagSet bool
}

// NewOID returns a universal OBJECT IDENTIFIER. The first arc must be 0, 1
// or 2 and, unless it is 2, the second arc must be below 40.
func NewOID(arcs ...uint64) (ObjectIdentifier, error) {
	if len(arcs) < 2 {
		return ObjectIdentifier{}, fmt.Errorf("%w: need at least two arcs", ErrInvalidOID)
	}
	if arcs[0] > 2 || (arcs[0] < 2 && arcs[1] >= 40) {
		return ObjectIdentifier{}, fmt.Errorf("%w: invalid leading arcs %d.%d", ErrInvalidOID, arcs[0], arcs[1])
	}
	if arcs[0] == 2 && arcs[1] > math.MaxUint64-80 {
		return ObjectIdentifier{}, fmt.Errorf("%w: second arc overflow", ErrInvalidOID)
	}
	return ObjectIdentifier{arcs: append([]uint64(nil), arcs...), tag: OIDTag, tagSet: true}, nil
}

// ParseOID parses dotted notation such as "1.3.6.1.4.1.1466.20037".
func ParseOID(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	arcs := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return ObjectIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		arcs[i] = n
	}
	return NewOID(arcs...)
}

// Arcs returns a copy of the arcs.
func (o ObjectIdentifier) Arcs() []uint64 {
	return append([]uint64(nil), o.arcs...)
}

// String returns dotted notation.
func (o ObjectIdentifier) String() string {
	parts := make([]string, len(o.arcs))
	for i, a := range o.arcs {
		parts[i] = strconv.FormatUint(a, 10)
	}
	return strings.Join(parts, ".")
}

// Tag returns the identifier's tag.
func (o ObjectIdentifier) Tag() Tag {
	if !o.tagSet {
		return OIDTag
	}
	return o.tag
}

// WithTag returns a copy of o encoded with tag in primitive form.
func (o ObjectIdentifier) WithTag(tag Tag) ObjectIdentifier {
	tag.Constructed = false
	o.tag = tag
	o.tagSet = true
	return o
}

// AppendBER appends the TLV encoding of o to dst.
func (o ObjectIdentifier) AppendBER(dst []byte) []byte {
	var content []byte
	if len(o.arcs) >= 2 {
		content = appendBase128(content, o.arcs[0]*40+o.arcs[1])
		for _, a := range o.arcs[2:] {
			content = appendBase128(content, a)
		}
	}
	dst = AppendTag(dst, o.Tag())
	dst = AppendLength(dst, uint64(len(content)))
	return append(dst, content...)
}

func (ObjectIdentifier) isValue() {}

// ValueOf converts a native Go value into a Value:
//
//	bool                    -> Boolean
//	int, int8..int64, uint.. -> Integer
//	*big.Int                -> Integer
//	string                  -> IdentifiedString (classified)
//	[]byte                  -> IdentifiedString (binary)
//	nil                     -> Null
//	[]any, []Value          -> Sequence, elements converted recursively
//	                           and nil elements becoming Null
//	Value                   -> itself
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return v, nil
	case bool:
		return NewBoolean(v), nil
	case int:
		return NewInteger(int64(v)), nil
	case int8:
		return NewInteger(int64(v)), nil
	case int16:
		return NewInteger(int64(v)), nil
	case int32:
		return NewInteger(int64(v)), nil
	case int64:
		return NewInteger(v), nil
	case uint:
		return NewBigInteger(new(big.Int).SetUint64(uint64(v))), nil
	case uint8:
		return NewInteger(int64(v)), nil
	case uint16:
		return NewInteger(int64(v)), nil
	case uint32:
		return NewInteger(int64(v)), nil
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(v)), nil
	case *big.Int:
		return NewBigInteger(v), nil
	case string:
		return NewString(v), nil
	case []byte:
		return NewBinary(v), nil
	case []Value:
		return NewSequence(v...), nil
	case []any:
		items := make([]Value, len(v))
		for i, e := range v {
			item, err := ValueOf(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = item
		}
		return NewSequence(items...), nil
	default:
		return nil, fmt.Errorf("ber: unsupported native type %T", x)
	}
}

// MustValueOf is like ValueOf but panics on unsupported types.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Native converts v back into plain Go values: bool, *big.Int, string,
// []any, nil, or the dotted string of an object identifier.
func Native(v Value) any {
	switch v := v.(type) {
	case Boolean:
		return v.Bool()
	case Integer:
		return v.Big()
	case IdentifiedString:
		return v.String()
	case Null:
		return nil
	case ObjectIdentifier:
		return v.String()
	case Sequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = Native(item)
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same data. Tags are ignored, so a
// decoded [APPLICATION 0] sequence equals a plain SEQUENCE with the same
// elements, and string comparison is content-only.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Boolean:
		b, ok := b.(Boolean)
		return ok && a.v == b.v
	case Integer:
		b, ok := b.(Integer)
		return ok && a.value().Cmp(b.value()) == 0
	case IdentifiedString:
		b, ok := b.(IdentifiedString)
		return ok && a.Equal(b)
	case Null:
		_, ok := b.(Null)
		return ok
	case ObjectIdentifier:
		b, ok := b.(ObjectIdentifier)
		if !ok || len(a.arcs) != len(b.arcs) {
			return false
		}
		for i := range a.arcs {
			if a.arcs[i] != b.arcs[i] {
				return false
			}
		}
		return true
	case Sequence:
		b, ok := b.(Sequence)
		if !ok || len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
