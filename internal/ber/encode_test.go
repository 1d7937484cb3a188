package ber

import (
	"encoding/hex"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBoolean(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x01, 0x01}, EncodeBoolean(true))
	assert.Equal(t, []byte{0x01, 0x01, 0x00}, EncodeBoolean(false))
}

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		value    int64
		expected []byte
	}{
		{0, []byte{0x02, 0x01, 0x00}},
		{1, []byte{0x02, 0x01, 0x01}},
		{5, []byte{0x02, 0x01, 0x05}},
		{127, []byte{0x02, 0x01, 0x7F}},
		{256, []byte{0x02, 0x02, 0x01, 0x00}},
		{500, []byte{0x02, 0x02, 0x01, 0xF4}},
		{65536, []byte{0x02, 0x03, 0x01, 0x00, 0x00}},
		{0x01000000, []byte{0x02, 0x04, 0x01, 0x00, 0x00, 0x00}},
		{0x3FFFFFFF, []byte{0x02, 0x04, 0x3F, 0xFF, 0xFF, 0xFF}},
		{0x4FFFFFFF, []byte{0x02, 0x04, 0x4F, 0xFF, 0xFF, 0xFF}},
		{5_000_000_000, []byte{0x02, 0x05, 0x01, 0x2A, 0x05, 0xF2, 0x00}},

		// Non-negative values carry no sign padding.
		{128, []byte{0x02, 0x01, 0x80}},
		{255, []byte{0x02, 0x01, 0xFF}},
		{50_000, []byte{0x02, 0x02, 0xC3, 0x50}},
		{65535, []byte{0x02, 0x02, 0xFF, 0xFF}},
		{16_777_215, []byte{0x02, 0x03, 0xFF, 0xFF, 0xFF}},

		// Negative values use two's complement.
		{-1, []byte{0x02, 0x01, 0xFF}},
		{-128, []byte{0x02, 0x01, 0x80}},
		{-129, []byte{0x02, 0x02, 0xFF, 0x7F}},
		{-256, []byte{0x02, 0x02, 0xFF, 0x00}},
		{-65536, []byte{0x02, 0x03, 0xFF, 0x00, 0x00}},
		{math.MaxInt64, []byte{0x02, 0x08, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{math.MinInt64, []byte{0x02, 0x08, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(big.NewInt(tt.value).String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeInteger(tt.value))
			assert.Equal(t, tt.expected, EncodeBigInteger(big.NewInt(tt.value)),
				"big.Int path must agree with int64 path")
		})
	}
}

func TestEncodeBigInteger(t *testing.T) {
	twoTo64 := new(big.Int).Lsh(big.NewInt(1), 64)
	twoTo63 := new(big.Int).Lsh(big.NewInt(1), 63)

	tests := []struct {
		name     string
		value    *big.Int
		expected []byte
	}{
		{"2^64", twoTo64, []byte{0x02, 0x09, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"2^63", twoTo63, []byte{0x02, 0x08, 0x80, 0, 0, 0, 0, 0, 0, 0}},
		{"-2^64", new(big.Int).Neg(twoTo64), []byte{0x02, 0x09, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"nil", nil, []byte{0x02, 0x01, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeBigInteger(tt.value))
		})
	}
}

func TestEncodeBigInteger_DoesNotMutateInput(t *testing.T) {
	v, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.True(t, ok)
	before := v.String()

	EncodeBigInteger(v)
	assert.Equal(t, before, v.String())
}

func TestEncodeString(t *testing.T) {
	t.Run("UTF-8 two byte character", func(t *testing.T) {
		assert.Equal(t, []byte{0x04, 0x02, 0xC3, 0xA5}, EncodeString("å"))
	})

	t.Run("ASCII text", func(t *testing.T) {
		expected := append([]byte{0x04, 0x0A}, "teststring"...)
		assert.Equal(t, expected, EncodeString("teststring"))
	})

	t.Run("invalid UTF-8 does not fail", func(t *testing.T) {
		var out []byte
		require.NotPanics(t, func() { out = EncodeString("\x81") })
		assert.Equal(t, []byte{0x04, 0x01, 0x81}, out)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []byte{0x04, 0x00}, EncodeString(""))
	})

	t.Run("long form length", func(t *testing.T) {
		s := make([]byte, 300)
		out := EncodeString(string(s))
		assert.Equal(t, []byte{0x04, 0x82, 0x01, 0x2C}, out[:4])
		assert.Len(t, out, 304)
	})
}

func TestEncodeBinary(t *testing.T) {
	// Active Directory objectGUID searched as raw bytes.
	guid, err := hex.DecodeString("6a31b4a12aa27a41aca9603f27dd5116")
	require.NoError(t, err)

	expected := append([]byte{0x04, 0x10}, guid...)
	assert.Equal(t, expected, EncodeBinary(guid))

	// Same wire bytes as a text string of equal content.
	assert.Equal(t, EncodeString(string(guid)), EncodeBinary(guid))
}

func TestEncodeSequence(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []byte{0x30, 0x00}, EncodeSequence())
		assert.Equal(t, []byte{0x30, 0x00}, Encode(NewSequence()))
	})

	t.Run("pre-encoded elements", func(t *testing.T) {
		got := EncodeSequence(EncodeInteger(1), EncodeInteger(2), EncodeInteger(3))
		expected := []byte{0x30, 0x09, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02, 0x02, 0x01, 0x03}
		assert.Equal(t, expected, got)
	})

	t.Run("set", func(t *testing.T) {
		assert.Equal(t, []byte{0x31, 0x03, 0x01, 0x01, 0x00}, EncodeSet(EncodeBoolean(false)))
	})

	t.Run("application constructed", func(t *testing.T) {
		got := EncodeConstructed(ApplicationTag(0, false), EncodeInteger(3))
		assert.Equal(t, []byte{0x60, 0x03, 0x02, 0x01, 0x03}, got)
	})
}

func TestEncodeNullAndEnumerated(t *testing.T) {
	assert.Equal(t, []byte{0x05, 0x00}, EncodeNull())
	assert.Equal(t, []byte{0x05, 0x00}, Encode(NewNull()))
	assert.Equal(t, []byte{0x0A, 0x01, 0x31}, EncodeEnumerated(49))
}

func TestEncodeContext(t *testing.T) {
	got := EncodeContext(0, []byte("secret"))
	assert.Equal(t, append([]byte{0x80, 0x06}, "secret"...), got)
}

func TestMarshal(t *testing.T) {
	t.Run("nested natives", func(t *testing.T) {
		got, err := Marshal([]any{1, []any{3, "Administrator", true}, nil})
		require.NoError(t, err)

		expected := EncodeSequence(
			EncodeInteger(1),
			EncodeSequence(EncodeInteger(3), EncodeString("Administrator"), EncodeBoolean(true)),
			EncodeNull(),
		)
		assert.Equal(t, expected, got)
	})

	t.Run("unsigned beyond int64", func(t *testing.T) {
		got, err := Marshal(uint64(math.MaxUint64))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x02, 0x08, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, got)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Marshal(3.14)
		assert.Error(t, err)

		_, err = Marshal([]any{1, struct{}{}})
		assert.ErrorContains(t, err, "element 1")
	})
}

func TestValueWithTag(t *testing.T) {
	t.Run("integer under context tag", func(t *testing.T) {
		v := NewInteger(5).WithTag(ContextTag(10, true))
		assert.Equal(t, []byte{0x8A, 0x01, 0x05}, Encode(v))
	})

	t.Run("sequence forced constructed", func(t *testing.T) {
		v := NewSequence(NewInteger(3)).WithTag(ApplicationTag(0, false))
		assert.Equal(t, []byte{0x60, 0x03, 0x02, 0x01, 0x03}, Encode(v))
	})

	t.Run("zero values use universal tags", func(t *testing.T) {
		assert.Equal(t, []byte{0x01, 0x01, 0x00}, Encode(Boolean{}))
		assert.Equal(t, []byte{0x02, 0x01, 0x00}, Encode(Integer{}))
		assert.Equal(t, []byte{0x04, 0x00}, Encode(IdentifiedString{}))
		assert.Equal(t, []byte{0x30, 0x00}, Encode(Sequence{}))
		assert.Equal(t, []byte{0x05, 0x00}, Encode(Null{}))
	})
}

func TestValueWithTag_UniversalZero(t *testing.T) {
	t.Run("decoded end-of-contents octets re-encode verbatim", func(t *testing.T) {
		v, n, err := Decode([]byte{0x00, 0x00}, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, Tag{}, v.Tag())
		assert.Equal(t, []byte{0x00, 0x00}, Encode(v))
	})

	t.Run("unknown universal tag 0 with content", func(t *testing.T) {
		data := []byte{0x00, 0x02, 0xAB, 0xCD}
		v, _, err := Decode(data, nil)
		require.NoError(t, err)
		assert.Equal(t, data, Encode(v))
	})

	t.Run("explicit zero tag is kept", func(t *testing.T) {
		assert.Equal(t, []byte{0x00, 0x01, 0x01}, Encode(NewInteger(1).WithTag(Tag{})))
		assert.Equal(t, []byte{0x00, 0x00}, Encode(NewNull().WithTag(Tag{})))
		assert.Equal(t, []byte{0x00, 0x01, 0x61}, Encode(NewString("a").WithTag(Tag{})))
	})
}

func TestSequence_NilItems(t *testing.T) {
	t.Run("constructor stores NULL", func(t *testing.T) {
		seq := NewSequence(NewInteger(1), nil)
		assert.IsType(t, Null{}, seq.At(1))

		var out []byte
		require.NotPanics(t, func() { out = Encode(seq) })
		assert.Equal(t, []byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x05, 0x00}, out)
	})

	t.Run("set", func(t *testing.T) {
		assert.Equal(t, []byte{0x31, 0x02, 0x05, 0x00}, Encode(NewSet(nil)))
	})

	t.Run("ValueOf slice of values", func(t *testing.T) {
		v, err := ValueOf([]Value{nil})
		require.NoError(t, err)

		var out []byte
		require.NotPanics(t, func() { out = Encode(v) })
		assert.Equal(t, []byte{0x30, 0x02, 0x05, 0x00}, out)
	})

	t.Run("Marshal", func(t *testing.T) {
		out, err := Marshal([]Value{NewBoolean(true), nil})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x30, 0x05, 0x01, 0x01, 0x01, 0x05, 0x00}, out)
	})
}

func TestObjectIdentifier(t *testing.T) {
	oid, err := ParseOID("1.3.6.1.4.1.1466.20037")
	require.NoError(t, err)

	expected := []byte{0x06, 0x0A, 0x2B, 0x06, 0x01, 0x04, 0x01, 0x8B, 0x3A, 0x81, 0x9C, 0x45}
	assert.Equal(t, expected, Encode(oid))
	assert.Equal(t, "1.3.6.1.4.1.1466.20037", oid.String())

	_, err = ParseOID("1.3.x")
	assert.ErrorIs(t, err, ErrInvalidOID)
	_, err = NewOID(1)
	assert.ErrorIs(t, err, ErrInvalidOID)
	_, err = NewOID(1, 40)
	assert.ErrorIs(t, err, ErrInvalidOID)
	_, err = NewOID(3, 1)
	assert.ErrorIs(t, err, ErrInvalidOID)
}
