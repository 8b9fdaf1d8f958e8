package idl

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAccountData(t *testing.T, payload []byte, trailing int) ([]byte, *Envelope) {
	authority, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	envelope := &Envelope{
		Discriminator: []byte{0x18, 0x46, 0x62, 0xbf, 0x3a, 0x90, 0x7b, 0x9e},
		Authority:     authority,
		Data:          payload,
	}

	data := envelope.Marshal()
	data = append(data, make([]byte, trailing)...)
	return data, envelope
}

func TestParseEnvelope_RoundTrip(t *testing.T) {
	payload := []byte("compressed idl bytes")
	data, expected := buildAccountData(t, payload, 0)

	parsed, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, expected.Discriminator, parsed.Discriminator)
	assert.Equal(t, expected.Authority, parsed.Authority)
	assert.Equal(t, payload, parsed.Data)

	assert.True(t, bytes.Equal(data, parsed.Marshal()))
}

func TestParseEnvelope_EmptyPayload(t *testing.T) {
	data, _ := buildAccountData(t, nil, 0)

	parsed, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Empty(t, parsed.Data)
	assert.True(t, bytes.Equal(data, parsed.Marshal()))
}

func TestParseEnvelope_TrailingBytesIgnored(t *testing.T) {
	payload := []byte("payload")
	data, _ := buildAccountData(t, payload, 128)

	parsed, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed.Data)
}

func TestParseEnvelope_Truncated(t *testing.T) {
	for _, length := range []int{0, 1, DiscriminatorSize, EnvelopeHeaderSize - 1} {
		_, err := ParseEnvelope(make([]byte, length))
		assert.ErrorIs(t, err, ErrTruncatedAccount, "length %d", length)
	}
}

func TestParseEnvelope_PayloadLengthMismatch(t *testing.T) {
	data, _ := buildAccountData(t, []byte("payload"), 0)

	// Declare one more byte than is available.
	binary.LittleEndian.PutUint32(data[EnvelopeHeaderSize-4:], uint32(len(data)-EnvelopeHeaderSize)+1)
	_, err := ParseEnvelope(data)
	assert.ErrorIs(t, err, ErrPayloadLengthMismatch)

	// A huge declared length must not wrap around.
	binary.LittleEndian.PutUint32(data[EnvelopeHeaderSize-4:], ^uint32(0))
	_, err = ParseEnvelope(data)
	assert.ErrorIs(t, err, ErrPayloadLengthMismatch)
}
