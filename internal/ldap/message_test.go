package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oba-ldap/bercodec/internal/ber"
)

// adBind is a simple bind as sent by an Active Directory client.
var adBind = []byte("0$\x02\x01\x01`\x1f\x02\x01\x03\x04\rAdministrator\x80\vad_is_bogus")

func TestReadMessage_BindRequest(t *testing.T) {
	msg, n, err := ReadMessage(adBind)
	require.NoError(t, err)
	assert.Equal(t, len(adBind), n)
	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, OperationType(ApplicationBindRequest), msg.OperationType())
	assert.Empty(t, msg.Controls)

	req, err := ParseBindRequest(msg.ProtocolOp)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Version)
	assert.Equal(t, "Administrator", req.Name)
	assert.Equal(t, AuthMethodSimple, req.AuthMethod)
	assert.Equal(t, []byte("ad_is_bogus"), req.SimplePassword)
	assert.False(t, req.IsAnonymous())

	encoded, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, adBind, encoded)
}

func TestReadMessage_Stream(t *testing.T) {
	unbind, err := NewMessage(2, UnbindRequest()).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x05, 0x02, 0x01, 0x02, 0x42, 0x00}, unbind)

	stream := append(append([]byte{}, adBind...), unbind...)

	first, n, err := ReadMessage(stream)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, m, err := ReadMessage(stream[n:])
	require.NoError(t, err)
	assert.Equal(t, len(unbind), m)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, OperationType(ApplicationUnbindRequest), second.OperationType())
	assert.IsType(t, ber.Null{}, second.ProtocolOp)
}

func TestReadMessage_Truncated(t *testing.T) {
	for i := 1; i < len(adBind); i++ {
		_, _, err := ReadMessage(adBind[:i])
		assert.True(t, ber.IsTruncated(err), "prefix of %d bytes: %v", i, err)
	}

	_, _, err := ReadMessage(nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestReadMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "not a sequence",
			data:    []byte{0x04, 0x01, 0x61},
			wantErr: ErrMalformedMessage,
		},
		{
			name:    "missing operation",
			data:    []byte{0x30, 0x03, 0x02, 0x01, 0x01},
			wantErr: ErrMissingOperation,
		},
		{
			name:    "message ID of 2^31",
			data:    []byte{0x30, 0x08, 0x02, 0x04, 0x80, 0x00, 0x00, 0x00, 0x42, 0x00},
			wantErr: ErrInvalidMessageID,
		},
		{
			name:    "message ID above maxInt",
			data:    []byte{0x30, 0x09, 0x02, 0x05, 0x00, 0x80, 0x00, 0x00, 0x00, 0x42, 0x00},
			wantErr: ErrInvalidMessageID,
		},
		{
			name:    "message ID not an integer",
			data:    []byte{0x30, 0x05, 0x04, 0x01, 0x01, 0x42, 0x00},
			wantErr: ber.ErrTagMismatch,
		},
		{
			name:    "universal protocolOp",
			data:    []byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x05, 0x00},
			wantErr: ErrInvalidOperation,
		},
		{
			name:    "controls not tagged [0]",
			data:    []byte{0x30, 0x07, 0x02, 0x01, 0x01, 0x42, 0x00, 0x30, 0x00},
			wantErr: ErrInvalidControlSequence,
		},
		{
			name:    "child overruns envelope",
			data:    []byte{0x30, 0x05, 0x02, 0x01, 0x01, 0x42, 0x01, 0x00},
			wantErr: ber.ErrTrailingData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadMessage(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMessage_Controls(t *testing.T) {
	msg := NewMessage(7, UnbindRequest(),
		Control{OID: "1.2.840.113556.1.4.319", Criticality: true, Value: []byte{0x30, 0x00}},
		Control{OID: "2.16.840.1.113730.3.4.2"},
	)

	data, err := msg.Encode()
	require.NoError(t, err)

	got, n, err := ReadMessage(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	require.Len(t, got.Controls, 2)

	assert.Equal(t, "1.2.840.113556.1.4.319", got.Controls[0].OID)
	assert.True(t, got.Controls[0].Criticality)
	assert.Equal(t, []byte{0x30, 0x00}, got.Controls[0].Value)

	assert.Equal(t, "2.16.840.1.113730.3.4.2", got.Controls[1].OID)
	assert.False(t, got.Controls[1].Criticality)
	assert.Nil(t, got.Controls[1].Value)

	again, err := got.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestMessage_EncodeErrors(t *testing.T) {
	_, err := NewMessage(-1, UnbindRequest()).Encode()
	assert.ErrorIs(t, err, ErrInvalidMessageID)

	_, err = NewMessage(MaxMessageID+1, UnbindRequest()).Encode()
	assert.ErrorIs(t, err, ErrInvalidMessageID)

	_, err = NewMessage(1, nil).Encode()
	assert.ErrorIs(t, err, ErrMissingOperation)

	_, err = NewMessage(1, ber.NewNull()).Encode()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestAbandonRequest(t *testing.T) {
	data, err := NewMessage(3, AbandonRequest(2)).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x06, 0x02, 0x01, 0x03, 0x50, 0x01, 0x02}, data)

	msg, _, err := ReadMessage(data)
	require.NoError(t, err)
	assert.Equal(t, OperationType(ApplicationAbandonRequest), msg.OperationType())

	id, ok := msg.ProtocolOp.(ber.Integer)
	require.True(t, ok)
	n, _ := id.Int64()
	assert.Equal(t, int64(2), n)
}

func TestSyntax_DelRequest(t *testing.T) {
	// DelRequest ::= [APPLICATION 10] LDAPDN
	data := []byte{0x30, 0x0A, 0x02, 0x01, 0x04, 0x4A, 0x05, 'c', 'n', '=', 'a', 'b'}
	msg, _, err := ReadMessage(data)
	require.NoError(t, err)
	assert.Equal(t, "DelRequest", msg.OperationType().String())

	dn, ok := msg.ProtocolOp.(ber.IdentifiedString)
	require.True(t, ok)
	assert.True(t, dn.EqualString("cn=ab"))
}

func TestOperationType_String(t *testing.T) {
	assert.Equal(t, "BindRequest", OperationType(ApplicationBindRequest).String())
	assert.Equal(t, "IntermediateResponse", OperationType(ApplicationIntermediateResponse).String())
	assert.Equal(t, "Unknown(17)", OperationType(17).String())
}

func TestResultCode_String(t *testing.T) {
	assert.Equal(t, "Success", ResultSuccess.String())
	assert.Equal(t, "InvalidCredentials", ResultInvalidCredentials.String())
	assert.Equal(t, "Other", ResultOther.String())
	assert.Equal(t, "Unknown(9)", ResultCode(9).String())
}

func TestParseError(t *testing.T) {
	err := NewParseError("messageID", "expected INTEGER", ber.ErrTagMismatch)
	assert.Equal(t, "ldap: parse error in messageID: expected INTEGER: ber: tag mismatch", err.Error())
	assert.ErrorIs(t, err, ber.ErrTagMismatch)

	bare := NewParseError("controls", "empty", nil)
	assert.Equal(t, "ldap: parse error in controls: empty", bare.Error())
}
