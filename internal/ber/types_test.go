package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTag(t *testing.T) {
	tests := []struct {
		name     string
		tag      Tag
		expected []byte
	}{
		// Universal class tags
		{"universal primitive boolean", BooleanTag, []byte{0x01}},
		{"universal primitive integer", IntegerTag, []byte{0x02}},
		{"universal primitive octet string", OctetStringTag, []byte{0x04}},
		{"universal primitive null", NullTag, []byte{0x05}},
		{"universal primitive enumerated", EnumeratedTag, []byte{0x0A}},
		{"universal constructed sequence", SequenceTag, []byte{0x30}},
		{"universal constructed set", SetTag, []byte{0x31}},

		// Application class tags
		{"application primitive tag 0", ApplicationTag(0, false), []byte{0x40}},
		{"application constructed tag 1", ApplicationTag(1, true), []byte{0x61}},

		// Context-specific class tags
		{"context-specific primitive tag 0", ContextTag(0, false), []byte{0x80}},
		{"context-specific constructed tag 3", ContextTag(3, true), []byte{0xA3}},

		// Private class tags
		{"private primitive tag 5", Tag{Class: ClassPrivate, Number: 5}, []byte{0xC5}},

		// Long form tags (number > 30)
		{"tag number 30 (max short form)", Tag{Number: 30}, []byte{0x1E}},
		{"universal primitive tag 31 (long form)", Tag{Number: 31}, []byte{0x1F, 0x1F}},
		{"universal primitive tag 127 (long form)", Tag{Number: 127}, []byte{0x1F, 0x7F}},
		{"universal primitive tag 128 (long form, 2 bytes)", Tag{Number: 128}, []byte{0x1F, 0x81, 0x00}},
		{"context-specific tag 256 (long form)", ContextTag(256, false), []byte{0x9F, 0x82, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendTag(nil, tt.tag)
			assert.Equal(t, tt.expected, got)

			parsed, n, err := ParseTag(got, 0)
			require.NoError(t, err)
			assert.Equal(t, len(got), n)
			assert.Equal(t, tt.tag, parsed)
		})
	}
}

func TestParseTag_Offset(t *testing.T) {
	data := []byte{0xFF, 0x60, 0x1F}
	tag, n, err := ParseTag(data, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ApplicationTag(0, true), tag)

	_, _, err = ParseTag(data, 2)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = ParseTag(data, 3)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "[APPLICATION 0] constructed", ApplicationTag(0, true).String())
	assert.Equal(t, "[0] primitive", ContextTag(0, false).String())
	assert.Equal(t, "[UNIVERSAL 16] constructed", SequenceTag.String())
	assert.Equal(t, "[PRIVATE 7] primitive", Tag{Class: ClassPrivate, Number: 7}.String())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "UNIVERSAL", ClassUniversal.String())
	assert.Equal(t, "CONTEXT", ClassContextSpecific.String())
	assert.Equal(t, "Class(0x30)", Class(0x30).String())
}

func TestTag_IsZero(t *testing.T) {
	assert.True(t, Tag{}.IsZero())
	assert.False(t, BooleanTag.IsZero())
}
