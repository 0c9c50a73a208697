package cobs

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

// checksumLen is the size of the xxhash64 trailer on a checksummed message.
const checksumLen = 8

// ErrChecksum is returned when a checksummed frame decodes cleanly but its
// digest does not match its content, or the frame is too short to carry a
// digest at all.
var ErrChecksum = errors.New("frame checksum mismatch")

// EncodeChecksummed appends an encoded frame for raw to buf, with an
// xxhash64 digest of raw carried at the end of the message.  COBS itself
// provides no integrity protection: a corrupted frame often still decodes,
// just to the wrong bytes.  Pairing the frame with a digest lets a receiver
// on a lossy channel reject such frames and resynchronize at the next
// terminator.
func EncodeChecksummed(raw []byte, buf *bytes.Buffer) {
	framed := make([]byte, len(raw)+checksumLen)
	copy(framed, raw)
	binary.LittleEndian.PutUint64(framed[len(raw):], xxhash.Sum64(raw))
	Encode(framed, buf)
}

// DecodeChecksummed appends the message recovered from a checksummed frame
// to buf, after verifying and stripping its digest.  Decode errors are
// returned as from Decode; a digest mismatch returns ErrChecksum.  On error,
// buf is restored to its original length.
func DecodeChecksummed(encoded []byte, buf *bytes.Buffer) error {
	start := buf.Len()
	if err := Decode(encoded, buf); err != nil {
		buf.Truncate(start)
		return err
	}
	framed := buf.Bytes()[start:]
	if len(framed) < checksumLen {
		buf.Truncate(start)
		return ErrChecksum
	}
	raw := framed[:len(framed)-checksumLen]
	sum := binary.LittleEndian.Uint64(framed[len(raw):])
	if sum != xxhash.Sum64(raw) {
		buf.Truncate(start)
		return ErrChecksum
	}
	buf.Truncate(start + len(raw))
	return nil
}
