// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding and decoding
// as specified in ITU-T X.690.
//
// BER is the wire format used by LDAP for all protocol messages. This package
// converts Go values to and from tag-length-value bytes. It knows nothing about
// LDAP itself: the meaning of APPLICATION and CONTEXT tags is supplied by the
// caller as a Syntax table on every decode call.
//
// # Tag Classes
//
// BER uses four tag classes to identify data types:
//
//   - Universal (0x00): Standard ASN.1 types like INTEGER, BOOLEAN, SEQUENCE
//   - Application (0x40): Protocol-specific types (LDAP operations)
//   - Context-specific (0x80): Context-dependent types within a structure
//   - Private (0xC0): Organization-specific types
//
// # Values
//
// Decoded and encodable elements implement Value:
//
//   - Boolean: BOOLEAN, TRUE encoded as 0x01
//   - Integer: INTEGER and ENUMERATED of any magnitude (math/big). Content
//     is an unsigned magnitude, so 128 encodes as 02 01 80. Negative values
//     encode in two's complement and read back as their unsigned magnitude.
//   - IdentifiedString: OCTET STRING content plus the tag it came from and
//     a text classification (binary or UTF-8)
//   - Sequence: SEQUENCE, SET and any constructed tagged element
//   - Null, ObjectIdentifier
//
// # Encoding
//
// Free functions cover the common cases:
//
//	data := ber.EncodeSequence(
//	    ber.EncodeInteger(1),
//	    ber.EncodeString("cn=admin"),
//	)
//
// Encode accepts any Value, and Marshal accepts native Go values:
//
//	data, err := ber.Marshal([]any{1, []any{3, "Administrator"}})
//
// BEREncoder builds nested structures incrementally:
//
//	enc := ber.NewBEREncoder(256)
//	pos := enc.BeginSequence()
//	enc.WriteInteger(1)
//	enc.WriteString("hello")
//	if err := enc.EndSequence(pos); err != nil {
//	    // handle error
//	}
//
// # Decoding
//
// Decode reads one element and reports how many bytes it used:
//
//	v, n, err := ber.Decode(data, syntax)
//	if ber.IsTruncated(err) {
//	    // wait for more bytes
//	}
//
// Universal tags always use built-in rules. Other tags are looked up in the
// Syntax; when no entry matches, constructed elements decode as sequences and
// primitive elements as opaque IdentifiedStrings carrying their tag, so no
// bytes are lost.
//
//	syntax := ber.MustSyntax(
//	    ber.SyntaxEntry{Class: ber.ClassContextSpecific, Number: 10, Rule: ber.RuleInteger},
//	)
//
// BERDecoder offers cursor-style typed reads (ReadInteger, ReadOctetString,
// ExpectConstructed) for protocol parsers that know the expected layout.
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - RFC 4511: LDAP Protocol (uses BER encoding)
package ber
