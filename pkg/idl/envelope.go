package idl

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	DiscriminatorSize = 8
	dataLenSize       = 4

	// EnvelopeHeaderSize is the fixed prefix of an idl account: an 8 byte
	// discriminator, the 32 byte authority key, and a little-endian uint32
	// payload length.
	EnvelopeHeaderSize = (DiscriminatorSize +
		ed25519.PublicKeySize +
		dataLenSize)
)

// Envelope is the decoded layout of an on-chain idl account. Data holds the
// compressed document exactly as stored; trailing bytes beyond the declared
// length are resize headroom and are dropped on parse.
type Envelope struct {
	Discriminator []byte
	Authority     ed25519.PublicKey
	Data          []byte
}

// ParseEnvelope decodes raw account data into an Envelope. The declared
// payload length must fit within the provided bytes; it is never silently
// truncated or padded.
func ParseEnvelope(data []byte) (*Envelope, error) {
	if len(data) < EnvelopeHeaderSize {
		return nil, errors.Wrapf(ErrTruncatedAccount, "have %d bytes, header needs %d", len(data), EnvelopeHeaderSize)
	}

	var obj Envelope
	var offset int

	getDiscriminator(data, &obj.Discriminator, &offset)
	getKey(data, &obj.Authority, &offset)

	var dataLen uint32
	getUint32(data, &dataLen, &offset)

	if uint64(dataLen) > uint64(len(data)-EnvelopeHeaderSize) {
		return nil, errors.Wrapf(ErrPayloadLengthMismatch, "declared %d bytes, %d available", dataLen, len(data)-EnvelopeHeaderSize)
	}

	obj.Data = make([]byte, dataLen)
	getData(data, obj.Data, int(dataLen), &offset)

	return &obj, nil
}

// Marshal re-encodes the envelope into the on-chain account layout.
func (obj *Envelope) Marshal() []byte {
	data := make([]byte, EnvelopeHeaderSize+len(obj.Data))

	var offset int
	putDiscriminator(data, obj.Discriminator, &offset)
	putKey(data, obj.Authority, &offset)
	putUint32(data, uint32(len(obj.Data)), &offset)
	putData(data, obj.Data, &offset)

	return data
}

func (obj *Envelope) String() string {
	return fmt.Sprintf(
		"Envelope{discriminator=%x,authority=%s,data_len=%d}",
		obj.Discriminator,
		base58.Encode(obj.Authority),
		len(obj.Data),
	)
}

func putDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += DiscriminatorSize
}
func getDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, DiscriminatorSize)
	copy(*dst, src[*offset:])
	*offset += DiscriminatorSize
}

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], v)
	*offset += ed25519.PublicKeySize
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}
func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putData(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:], src)
	*offset += len(src)
}
func getData(src []byte, dst []byte, length int, offset *int) {
	copy(dst[:length], src[*offset:*offset+length])
	*offset += length
}
