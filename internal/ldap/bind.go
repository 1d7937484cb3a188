package ldap

import (
	"github.com/oba-ldap/bercodec/internal/ber"
)

// Authentication method tags (context-specific)
const (
	// AuthSimple is the tag for simple authentication [0]
	AuthSimple = 0
	// AuthSASL is the tag for SASL authentication [3]
	AuthSASL = 3
)

// AuthMethod represents the authentication method used in a BindRequest
type AuthMethod int

const (
	// AuthMethodSimple indicates simple (password) authentication
	AuthMethodSimple AuthMethod = iota
	// AuthMethodSASL indicates SASL authentication
	AuthMethodSASL
)

// String returns the string representation of the authentication method
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodSimple:
		return "Simple"
	case AuthMethodSASL:
		return "SASL"
	default:
		return "Unknown"
	}
}

// SASLCredentials represents SASL authentication credentials
// SaslCredentials ::= SEQUENCE {
//
//	mechanism               LDAPString,
//	credentials             OCTET STRING OPTIONAL
//
// }
type SASLCredentials struct {
	Mechanism   string
	Credentials []byte
}

// BindRequest represents an LDAP Bind Request
// BindRequest ::= [APPLICATION 0] SEQUENCE {
//
//	version                 INTEGER (1 .. 127),
//	name                    LDAPDN,
//	authentication          AuthenticationChoice
//
// }
type BindRequest struct {
	Version         int
	Name            string
	AuthMethod      AuthMethod
	SimplePassword  []byte
	SASLCredentials *SASLCredentials
}

// NewSimpleBind returns a version 3 simple bind request.
func NewSimpleBind(name, password string) *BindRequest {
	return &BindRequest{
		Version:        3,
		Name:           name,
		AuthMethod:     AuthMethodSimple,
		SimplePassword: []byte(password),
	}
}

// Value returns the [APPLICATION 0] protocolOp for r.
func (r *BindRequest) Value() (ber.Value, error) {
	if r.Version < 1 || r.Version > 127 {
		return nil, ErrInvalidBindVersion
	}

	var auth ber.Value
	switch r.AuthMethod {
	case AuthMethodSimple:
		// Password bytes go out untouched
		auth = ber.NewBinary(r.SimplePassword).WithTag(ber.ContextTag(AuthSimple, false))

	case AuthMethodSASL:
		if r.SASLCredentials == nil {
			return nil, ErrInvalidSASLCredentials
		}
		fields := []ber.Value{ber.NewString(r.SASLCredentials.Mechanism)}
		if r.SASLCredentials.Credentials != nil {
			fields = append(fields, ber.NewBinary(r.SASLCredentials.Credentials))
		}
		auth = ber.NewSequence(fields...).WithTag(ber.ContextTag(AuthSASL, true))

	default:
		return nil, ErrUnknownAuthMethod
	}

	return ber.NewSequence(
		ber.NewInteger(int64(r.Version)),
		ber.NewString(r.Name),
		auth,
	).WithTag(ber.ApplicationTag(ApplicationBindRequest, true)), nil
}

// Encode encodes r as a complete LDAPMessage with the given message ID.
func (r *BindRequest) Encode(messageID int64) ([]byte, error) {
	op, err := r.Value()
	if err != nil {
		return nil, err
	}
	return NewMessage(messageID, op).Encode()
}

// IsAnonymous returns true if this is an anonymous bind request.
// An anonymous bind has an empty name and empty simple password.
func (r *BindRequest) IsAnonymous() bool {
	return r.Name == "" && r.AuthMethod == AuthMethodSimple && len(r.SimplePassword) == 0
}

// ParseBindRequest interprets a protocolOp decoded with Syntax as a
// BindRequest.
func ParseBindRequest(op ber.Value) (*BindRequest, error) {
	seq, err := operationSequence(op, ApplicationBindRequest)
	if err != nil {
		return nil, err
	}
	if seq.Len() != 3 {
		return nil, NewParseError("BindRequest", "expected 3 elements", ber.ErrTrailingData)
	}

	version, err := intField(seq.At(0), ber.IntegerTag)
	if err != nil {
		return nil, NewParseError("BindRequest", "failed to read bind version", err)
	}
	if version < 1 || version > 127 {
		return nil, ErrInvalidBindVersion
	}

	name, err := stringField(seq.At(1), ber.OctetStringTag)
	if err != nil {
		return nil, NewParseError("BindRequest", "failed to read bind name", err)
	}

	req := &BindRequest{Version: int(version), Name: name}

	switch auth := seq.At(2).(type) {
	case ber.IdentifiedString:
		if auth.Tag() != ber.ContextTag(AuthSimple, false) {
			return nil, NewParseError("BindRequest", auth.Tag().String(), ErrUnknownAuthMethod)
		}
		req.AuthMethod = AuthMethodSimple
		req.SimplePassword = auth.Bytes()

	case ber.Sequence:
		if auth.Tag() != ber.ContextTag(AuthSASL, true) {
			return nil, NewParseError("BindRequest", auth.Tag().String(), ErrUnknownAuthMethod)
		}
		creds, err := parseSASLCredentials(auth)
		if err != nil {
			return nil, NewParseError("BindRequest", "failed to read SASL credentials", err)
		}
		req.AuthMethod = AuthMethodSASL
		req.SASLCredentials = creds

	default:
		return nil, NewParseError("BindRequest", "unknown authentication choice", ErrUnknownAuthMethod)
	}

	return req, nil
}

func parseSASLCredentials(seq ber.Sequence) (*SASLCredentials, error) {
	if seq.Len() < 1 || seq.Len() > 2 {
		return nil, ErrInvalidSASLCredentials
	}
	mech, err := stringField(seq.At(0), ber.OctetStringTag)
	if err != nil {
		return nil, ErrInvalidSASLCredentials
	}
	creds := &SASLCredentials{Mechanism: mech}
	if seq.Len() == 2 {
		s, ok := seq.At(1).(ber.IdentifiedString)
		if !ok || s.Tag() != ber.OctetStringTag {
			return nil, ErrInvalidSASLCredentials
		}
		creds.Credentials = s.Bytes()
	}
	return creds, nil
}

// BindResponse represents an LDAP Bind Response
// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL
//
// }
type BindResponse struct {
	Result
	ServerSASLCreds []byte
}

// Value returns the [APPLICATION 1] protocolOp for r.
func (r *BindResponse) Value() ber.Value {
	items := r.Result.values()
	if r.ServerSASLCreds != nil {
		items = append(items, ber.NewBinary(r.ServerSASLCreds).
			WithTag(ber.ContextTag(ContextTagServerSASLCreds, false)))
	}
	return ber.NewSequence(items...).WithTag(ber.ApplicationTag(ApplicationBindResponse, true))
}

// Encode encodes r as a complete LDAPMessage with the given message ID.
func (r *BindResponse) Encode(messageID int64) ([]byte, error) {
	return NewMessage(messageID, r.Value()).Encode()
}

// ParseBindResponse interprets a protocolOp decoded with Syntax as a
// BindResponse.
func ParseBindResponse(op ber.Value) (*BindResponse, error) {
	seq, err := operationSequence(op, ApplicationBindResponse)
	if err != nil {
		return nil, err
	}

	result, rest, err := parseResult(seq.Items())
	if err != nil {
		return nil, NewParseError("BindResponse", "failed to read result", err)
	}

	resp := &BindResponse{Result: result}
	if len(rest) > 0 {
		creds, ok := rest[0].(ber.IdentifiedString)
		if !ok || creds.Tag() != ber.ContextTag(ContextTagServerSASLCreds, false) || len(rest) > 1 {
			return nil, NewParseError("BindResponse", "unexpected trailing element", ErrInvalidResult)
		}
		resp.ServerSASLCreds = creds.Bytes()
	}
	return resp, nil
}

// ParseResult interprets any protocolOp that consists of a bare LDAPResult,
// such as SearchResultDone, ModifyResponse or DelResponse.
func ParseResult(op ber.Value) (*Result, error) {
	seq, ok := op.(ber.Sequence)
	if !ok || seq.Tag().Class != ber.ClassApplication {
		return nil, NewParseError("LDAPResult", "expected APPLICATION SEQUENCE", ErrUnexpectedOperation)
	}
	result, rest, err := parseResult(seq.Items())
	if err != nil {
		return nil, NewParseError("LDAPResult", OperationType(seq.Tag().Number).String(), err)
	}
	if len(rest) > 0 {
		return nil, NewParseError("LDAPResult", "unexpected trailing element", ErrInvalidResult)
	}
	return &result, nil
}

// parseResult reads the LDAPResult components from the head of items and
// returns whatever follows them.
// LDAPResult ::= SEQUENCE {
//
//	resultCode         ENUMERATED { ... },
//	matchedDN          LDAPDN,
//	diagnosticMessage  LDAPString,
//	referral           [3] Referral OPTIONAL
//
// }
func parseResult(items []ber.Value) (Result, []ber.Value, error) {
	var result Result
	if len(items) < 3 {
		return result, nil, ErrInvalidResult
	}

	code, err := intField(items[0], ber.EnumeratedTag)
	if err != nil {
		return result, nil, err
	}
	result.Code = ResultCode(code)

	if result.MatchedDN, err = stringField(items[1], ber.OctetStringTag); err != nil {
		return result, nil, err
	}
	if result.DiagnosticMessage, err = stringField(items[2], ber.OctetStringTag); err != nil {
		return result, nil, err
	}

	rest := items[3:]
	if len(rest) > 0 {
		if ref, ok := rest[0].(ber.Sequence); ok && ref.Tag() == ber.ContextTag(ContextTagReferral, true) {
			for _, uri := range ref.Items() {
				s, err := stringField(uri, ber.OctetStringTag)
				if err != nil {
					return result, nil, err
				}
				result.Referral = append(result.Referral, s)
			}
			rest = rest[1:]
		}
	}
	return result, rest, nil
}

// values returns the LDAPResult components of r in wire order.
func (r Result) values() []ber.Value {
	items := []ber.Value{
		ber.NewEnumerated(int64(r.Code)),
		ber.NewString(r.MatchedDN),
		ber.NewString(r.DiagnosticMessage),
	}
	if len(r.Referral) > 0 {
		uris := make([]ber.Value, len(r.Referral))
		for i, uri := range r.Referral {
			uris[i] = ber.NewString(uri)
		}
		items = append(items, ber.NewSequence(uris...).WithTag(ber.ContextTag(ContextTagReferral, true)))
	}
	return items
}

// operationSequence checks that op is the constructed protocolOp numbered
// want.
func operationSequence(op ber.Value, want OperationType) (ber.Sequence, error) {
	seq, ok := op.(ber.Sequence)
	if !ok || seq.Tag() != ber.ApplicationTag(uint32(want), true) {
		got := "nil"
		if op != nil {
			got = op.Tag().String()
		}
		return ber.Sequence{}, NewParseError(want.String(), "got "+got, ErrUnexpectedOperation)
	}
	return seq, nil
}
