package cobs

import "bytes"

// Encode appends the encoded frame for raw, terminator included, to buf.
// This is a convenience for callers who can afford allocation; the core
// buffer-to-buffer routines never allocate.
func Encode(raw []byte, buf *bytes.Buffer) {
	buf.Grow(MaxEncodedLen(len(raw)))
	for {
		n, zero := nextRun(raw)
		switch {
		case zero:
			buf.WriteByte(byte(n + 1))
			buf.Write(raw[:n])
			raw = raw[n+1:]
		case n == maxRun:
			buf.WriteByte(continuation)
			buf.Write(raw[:maxRun])
			raw = raw[maxRun:]
		default:
			buf.WriteByte(byte(n + 1))
			buf.Write(raw[:n])
			buf.WriteByte(Terminator)
			return
		}
	}
}

// Decode appends the message recovered from a single complete frame to buf.
// The error conditions match DecodeBuf, minus ErrBufferTooSmall: a decoded
// message is always shorter than its frame, so scratch sized to the frame
// always suffices.  On error, nothing is appended.
func Decode(encoded []byte, buf *bytes.Buffer) error {
	output := make([]byte, len(encoded))
	n, err := DecodeBuf(encoded, output)
	if err != nil {
		return err
	}
	buf.Write(output[:n])
	return nil
}
