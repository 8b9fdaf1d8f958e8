package idl

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// MaxDecompressedSize caps how far an idl payload may inflate. The largest
// idls on mainnet are around a megabyte; anything past this limit is treated
// as hostile rather than read into memory.
const MaxDecompressedSize = 64 << 20

// Decompress inflates an idl payload with the default size limit.
//
// Anchor has compressed idl data with both zlib and headerless deflate
// streams over the years, so both are attempted, zlib first. A payload that
// neither codec accepts fails with ErrCorruptPayload; a payload that inflates
// past the limit fails with ErrDecompressedTooLarge and is never a signal to
// treat the input as uncompressed.
func Decompress(payload []byte) ([]byte, error) {
	return DecompressWithLimit(payload, MaxDecompressedSize)
}

// DecompressWithLimit inflates an idl payload, failing once the output
// exceeds limit bytes.
func DecompressWithLimit(payload []byte, limit int) ([]byte, error) {
	zlibReader, err := zlib.NewReader(bytes.NewReader(payload))
	if err == nil {
		out, err := readCapped(zlibReader, limit)
		zlibReader.Close()
		if err == nil {
			return out, nil
		}
		if errors.Is(err, ErrDecompressedTooLarge) {
			return nil, err
		}
	}

	flateReader := flate.NewReader(bytes.NewReader(payload))
	defer flateReader.Close()

	out, err := readCapped(flateReader, limit)
	if err != nil {
		if errors.Is(err, ErrDecompressedTooLarge) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrCorruptPayload, "not a zlib or deflate stream: %v", err)
	}

	return out, nil
}

func readCapped(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, errors.Wrapf(ErrDecompressedTooLarge, "limit is %d bytes", limit)
	}
	return out, nil
}
