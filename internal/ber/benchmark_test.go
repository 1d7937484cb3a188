package ber

import (
	"math/big"
	"testing"
)

// BenchmarkEncodeInteger benchmarks integer encoding.
func BenchmarkEncodeInteger(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeInteger(int64(i))
	}
}

// BenchmarkEncodeBigInteger benchmarks encoding an integer wider than 64 bits.
func BenchmarkEncodeBigInteger(b *testing.B) {
	v := new(big.Int).Lsh(big.NewInt(-3), 200)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = EncodeBigInteger(v)
	}
}

// BenchmarkDecodeInteger benchmarks integer decoding.
func BenchmarkDecodeInteger(b *testing.B) {
	// 0x7FFFFFFF (max int32)
	data := []byte{0x02, 0x04, 0x7f, 0xff, 0xff, 0xff}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _, _ = Decode(data, nil)
	}
}

// BenchmarkEncodeString benchmarks octet string encoding.
func BenchmarkEncodeString(b *testing.B) {
	s := "uid=alice,ou=users,dc=example,dc=com"
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = EncodeString(s)
	}
}

// BenchmarkDecodeLargeString benchmarks decoding a 4KB octet string.
func BenchmarkDecodeLargeString(b *testing.B) {
	testData := make([]byte, 4096)
	for i := range testData {
		testData[i] = byte(i % 256)
	}
	data := EncodeBinary(testData)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _, _ = Decode(data, nil)
	}
}

// BenchmarkBEREncoderNestedSequence benchmarks streaming nested sequences.
func BenchmarkBEREncoderNestedSequence(b *testing.B) {
	enc := NewBEREncoder(512)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		enc.Reset()
		pos1 := enc.BeginSequence()
		enc.WriteInteger(1)
		pos2 := enc.BeginSequence()
		enc.WriteOctetString([]byte("nested"))
		enc.WriteBoolean(true)
		_ = enc.EndSequence(pos2)
		enc.WriteInteger(2)
		_ = enc.EndSequence(pos1)
	}
}

// BenchmarkEncodeBindRequest benchmarks building a bind request value tree.
func BenchmarkEncodeBindRequest(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		msg := NewSequence(
			NewInteger(int64(i)),
			NewSequence(
				NewInteger(3),
				NewString("Administrator"),
				NewString("ad_is_bogus").WithTag(ContextTag(0, false)),
			).WithTag(ApplicationTag(0, true)),
		)
		_ = Encode(msg)
	}
}

// BenchmarkDecodeBindRequest benchmarks syntax-driven decoding of a bind request.
func BenchmarkDecodeBindRequest(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _, _ = Decode(bindRequest, ldapLikeSyntax)
	}
}

// BenchmarkBERDecoderReads benchmarks the typed reads over a search-like message.
func BenchmarkBERDecoderReads(b *testing.B) {
	enc := NewBEREncoder(512)
	msgPos := enc.BeginSequence()
	enc.WriteInteger(1)
	reqPos := enc.BeginConstructed(ApplicationTag(3, true))
	enc.WriteOctetString([]byte("dc=example,dc=com"))
	enc.WriteEnumerated(2)
	enc.WriteBoolean(false)
	_ = enc.EndConstructed(reqPos)
	_ = enc.EndSequence(msgPos)
	data := enc.Bytes()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		dec := NewBERDecoder(data)
		msg, _ := dec.ReadSequenceContents()
		_, _ = msg.ReadInteger()
		req, _ := msg.ExpectConstructed(ApplicationTag(3, true))
		_, _ = req.ReadOctetString()
		_, _ = req.ReadEnumerated()
		_, _ = req.ReadBoolean()
	}
}
