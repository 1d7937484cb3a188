// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
//
// The package is a thin layer over the ber codec. It contributes Syntax,
// the table that tells the decoder how to read the APPLICATION and
// context-specific tags LDAP uses, and a handful of typed views over the
// decoded value trees.
//
// # Message Structure
//
// All LDAP messages follow the LDAPMessage envelope structure:
//
//	LDAPMessage ::= SEQUENCE {
//	    messageID       MessageID,
//	    protocolOp      CHOICE { ... },
//	    controls        [0] Controls OPTIONAL
//	}
//
// Use ReadMessage to decode incoming messages:
//
//	msg, n, err := ldap.ReadMessage(buf)
//	if ber.IsTruncated(err) {
//	    // read more bytes and retry
//	}
//	switch msg.OperationType() {
//	case ldap.ApplicationBindRequest:
//	    req, err := ldap.ParseBindRequest(msg.ProtocolOp)
//	    // handle bind request
//	}
//	buf = buf[n:]
//
// Operations without a typed view are still available as ber values on
// Message.ProtocolOp.
//
// # References
//
//   - RFC 4511: LDAP Protocol
//   - RFC 4513: LDAP Authentication Methods
package ldap
