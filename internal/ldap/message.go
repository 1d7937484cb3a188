package ldap

import (
	"strconv"

	"github.com/oba-ldap/bercodec/internal/ber"
)

// Message is a decoded LDAPMessage envelope.
// Per RFC 4511 Section 4.1.1:
// LDAPMessage ::= SEQUENCE {
//
//	messageID       MessageID,
//	protocolOp      CHOICE { ... },
//	controls        [0] Controls OPTIONAL
//
// }
//
// The protocolOp is kept as the value tree produced by Syntax, so callers
// can hand it to ParseBindRequest and friends or inspect it directly.
type Message struct {
	ID         int64
	ProtocolOp ber.Value
	Controls   []Control
}

// NewMessage creates a message carrying op.
func NewMessage(id int64, op ber.Value, controls ...Control) *Message {
	return &Message{ID: id, ProtocolOp: op, Controls: controls}
}

// OperationType returns the type of operation in this message
func (m *Message) OperationType() OperationType {
	if m.ProtocolOp == nil {
		return OperationType(^uint32(0))
	}
	return OperationType(m.ProtocolOp.Tag().Number)
}

// ReadMessage decodes the first LDAPMessage in buf and reports how many
// bytes it occupied. When buf holds only part of a message the returned
// error satisfies ber.IsTruncated and the caller should retry with more
// data.
func ReadMessage(buf []byte) (*Message, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrEmptyMessage
	}

	v, n, err := ber.Decode(buf, Syntax)
	if err != nil {
		return nil, 0, err
	}

	msg, err := messageFromValue(v)
	if err != nil {
		return nil, 0, err
	}
	return msg, n, nil
}

func messageFromValue(v ber.Value) (*Message, error) {
	seq, ok := v.(ber.Sequence)
	if !ok || seq.Tag() != ber.SequenceTag {
		return nil, NewParseError("LDAPMessage", "expected SEQUENCE", ErrMalformedMessage)
	}
	if seq.Len() < 2 {
		return nil, NewParseError("LDAPMessage", "too few elements", ErrMissingOperation)
	}
	if seq.Len() > 3 {
		return nil, NewParseError("LDAPMessage", "too many elements", ErrMalformedMessage)
	}

	id, err := intField(seq.At(0), ber.IntegerTag)
	if err != nil {
		return nil, NewParseError("messageID", "expected INTEGER", err)
	}
	if id < MinMessageID || id > MaxMessageID {
		return nil, ErrInvalidMessageID
	}

	op := seq.At(1)
	if op.Tag().Class != ber.ClassApplication {
		return nil, NewParseError("protocolOp", op.Tag().String(), ErrInvalidOperation)
	}

	msg := &Message{ID: id, ProtocolOp: op}

	if seq.Len() == 3 {
		controls, err := parseControls(seq.At(2))
		if err != nil {
			return nil, err
		}
		msg.Controls = controls
	}

	return msg, nil
}

// parseControls reads Controls ::= SEQUENCE OF control Control
func parseControls(v ber.Value) ([]Control, error) {
	wrapper, ok := v.(ber.Sequence)
	if !ok || wrapper.Tag() != ber.ContextTag(ContextTagControls, true) {
		return nil, NewParseError("controls", "expected [0] SEQUENCE OF Control", ErrInvalidControlSequence)
	}

	controls := make([]Control, 0, wrapper.Len())
	for i, item := range wrapper.Items() {
		ctrl, err := parseControl(item)
		if err != nil {
			return nil, NewParseError("controls", "control "+strconv.Itoa(i), err)
		}
		controls = append(controls, ctrl)
	}
	return controls, nil
}

// parseControl reads a single Control.
func parseControl(v ber.Value) (Control, error) {
	ctrl := Control{}

	seq, ok := v.(ber.Sequence)
	if !ok || seq.Tag() != ber.SequenceTag || seq.Len() == 0 || seq.Len() > 3 {
		return ctrl, ErrInvalidControlSequence
	}

	oid, ok := seq.At(0).(ber.IdentifiedString)
	if !ok || oid.Tag() != ber.OctetStringTag {
		return ctrl, ErrInvalidControlSequence
	}
	ctrl.OID = oid.String()

	rest := seq.Items()[1:]

	// criticality BOOLEAN DEFAULT FALSE
	if len(rest) > 0 {
		if b, ok := rest[0].(ber.Boolean); ok {
			ctrl.Criticality = b.Bool()
			rest = rest[1:]
		}
	}

	// controlValue OCTET STRING OPTIONAL
	if len(rest) > 0 {
		s, ok := rest[0].(ber.IdentifiedString)
		if !ok || len(rest) > 1 {
			return ctrl, ErrInvalidControlSequence
		}
		ctrl.Value = s.Bytes()
	}

	return ctrl, nil
}

// Encode encodes the message to BER format.
func (m *Message) Encode() ([]byte, error) {
	if m.ID < MinMessageID || m.ID > MaxMessageID {
		return nil, ErrInvalidMessageID
	}
	if m.ProtocolOp == nil {
		return nil, ErrMissingOperation
	}
	if m.ProtocolOp.Tag().Class != ber.ClassApplication {
		return nil, ErrInvalidOperation
	}

	items := []ber.Value{ber.NewInteger(m.ID), m.ProtocolOp}
	if len(m.Controls) > 0 {
		items = append(items, controlsValue(m.Controls))
	}
	return ber.Encode(ber.NewSequence(items...)), nil
}

func controlsValue(controls []Control) ber.Value {
	items := make([]ber.Value, 0, len(controls))
	for _, ctrl := range controls {
		fields := []ber.Value{ber.NewString(ctrl.OID)}
		// Criticality is omitted when false since it's the default
		if ctrl.Criticality {
			fields = append(fields, ber.NewBoolean(true))
		}
		if ctrl.Value != nil {
			fields = append(fields, ber.NewBinary(ctrl.Value))
		}
		items = append(items, ber.NewSequence(fields...))
	}
	return ber.NewSequence(items...).WithTag(ber.ContextTag(ContextTagControls, true))
}

// intField extracts an int64 from an INTEGER or ENUMERATED element
// carrying tag.
func intField(v ber.Value, tag ber.Tag) (int64, error) {
	i, ok := v.(ber.Integer)
	if !ok || i.Tag() != tag {
		return 0, ber.ErrTagMismatch
	}
	n, ok := i.Int64()
	if !ok {
		return 0, ber.ErrInvalidInteger
	}
	return n, nil
}

// stringField extracts the content of a string element carrying tag.
func stringField(v ber.Value, tag ber.Tag) (string, error) {
	s, ok := v.(ber.IdentifiedString)
	if !ok || s.Tag() != tag {
		return "", ber.ErrTagMismatch
	}
	return s.String(), nil
}

// UnbindRequest returns the [APPLICATION 2] NULL protocolOp.
func UnbindRequest() ber.Value {
	return ber.NewNull().WithTag(ber.ApplicationTag(ApplicationUnbindRequest, false))
}

// AbandonRequest returns the [APPLICATION 16] protocolOp abandoning the
// message numbered id.
func AbandonRequest(id int64) ber.Value {
	return ber.NewInteger(id).WithTag(ber.ApplicationTag(ApplicationAbandonRequest, false))
}
