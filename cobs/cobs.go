package cobs

import (
	"bytes"
	"errors"
)

// Terminator is the byte that ends every encoded frame.  It never appears at
// any other position in a well-formed frame.
const Terminator byte = 0x00

// maxRun is the longest run of data bytes that a single block can carry.  A
// block whose length byte is 0xFF (a "continuation" block) carries exactly
// maxRun data bytes and implies no zero; a block whose length byte is in
// 1..=254 (a "bounded" block) carries length-1 data bytes and corresponds to
// a real zero byte in the message, or to the end of the message.
const maxRun = 254

// continuation is the length byte that introduces a continuation block.
const continuation byte = 0xFF

var (
	// ErrBufferTooSmall is returned when a destination buffer cannot hold
	// the encoded or decoded result.  The caller can resize and retry;
	// MaxEncodedLen gives a destination size that always suffices for
	// encoding.
	ErrBufferTooSmall = errors.New("destination buffer too small")

	// ErrTruncatedFrame is returned when an encoded frame ends before a
	// complete block, or before the terminator is reached.  This can also
	// occur if you pick up in the middle of a stream without finding the
	// end of the previous frame first.
	ErrTruncatedFrame = errors.New("encoded frame truncated")

	// ErrInvalidLengthByte is returned when a zero byte appears where a
	// block's length byte is expected.  The only zero in a well-formed
	// frame is the terminator, which directly follows a bounded block's
	// data.
	ErrInvalidLengthByte = errors.New("invalid length byte in encoded frame")
)

// MaxEncodedLen returns the smallest destination size that is guaranteed to
// hold the encoding of any message of rawLen bytes.  The encoded frame keeps
// every message byte, adds one length byte per block, and ends with the
// terminator.  The worst case is a message containing no zero bytes, which
// encodes as one continuation block per 254 message bytes followed by a
// final bounded block:
//
//	MaxEncodedLen(n) = n + n/254 + 2
//
// The bound is exact for messages that contain no zero bytes; messages with
// zeroes encode to fewer bytes.
func MaxEncodedLen(rawLen int) int {
	return rawLen + rawLen/maxRun + 2
}

// nextRun reports the length of the run of non-zero bytes at the start of
// raw, looking at most maxRun bytes ahead, and whether the run stopped at a
// zero byte.  A run of maxRun bytes with no zero found becomes a
// continuation block, even if it happens to end exactly at the end of the
// message.
func nextRun(raw []byte) (n int, zero bool) {
	if len(raw) > maxRun {
		raw = raw[:maxRun]
	}
	i := bytes.IndexByte(raw, Terminator)
	if i < 0 {
		return len(raw), false
	}
	return i, true
}

// EncodeBuf writes the encoded frame for raw into output and returns the
// number of bytes written, including the trailing terminator.  Encoding
// itself cannot fail: every message has exactly one encoding.  EncodeBuf
// returns ErrBufferTooSmall if output cannot hold the frame for this
// particular input; sizing output with MaxEncodedLen(len(raw)) always
// suffices.
func EncodeBuf(raw []byte, output []byte) (int, error) {
	out := 0
	for {
		n, zero := nextRun(raw)
		switch {
		case zero:
			// Bounded block ended by a real zero byte.  Consume the
			// zero and keep going, even if nothing follows it: the
			// extra empty block is what distinguishes a message
			// ending in a zero from one that does not.
			if len(output)-out < n+1 {
				return 0, ErrBufferTooSmall
			}
			output[out] = byte(n + 1)
			copy(output[out+1:], raw[:n])
			out += n + 1
			raw = raw[n+1:]
		case n == maxRun:
			// Continuation block: 254 bytes with no implied zero.
			// Another block always follows, so a frame never ends
			// directly after one of these.
			if len(output)-out < maxRun+1 {
				return 0, ErrBufferTooSmall
			}
			output[out] = continuation
			copy(output[out+1:], raw[:maxRun])
			out += maxRun + 1
			raw = raw[maxRun:]
		default:
			// Final bounded block, then the terminator.
			if len(output)-out < n+2 {
				return 0, ErrBufferTooSmall
			}
			output[out] = byte(n + 1)
			copy(output[out+1:], raw[:n])
			out += n + 1
			output[out] = Terminator
			out++
			return out, nil
		}
	}
}

// DecodeBuf decodes a single complete frame from encoded into output and
// returns the length of the recovered message.  It returns
// ErrTruncatedFrame if encoded ends before a complete block or before the
// terminator, ErrInvalidLengthByte if a zero byte appears at a length-byte
// position, and ErrBufferTooSmall if output cannot hold the recovered
// message.
//
// The terminator is only recognized by lookahead after a bounded block's
// data.  A zero directly after a continuation block is malformed here, so
// frames from implementations that let a full continuation block end the
// frame are rejected with ErrInvalidLengthByte.
func DecodeBuf(encoded []byte, output []byte) (int, error) {
	out := 0
	for {
		if len(encoded) == 0 {
			return 0, ErrTruncatedFrame
		}
		head := encoded[0]
		encoded = encoded[1:]
		if head == Terminator {
			return 0, ErrInvalidLengthByte
		}
		if head == continuation {
			if len(encoded) < maxRun {
				return 0, ErrTruncatedFrame
			}
			if len(output)-out < maxRun {
				return 0, ErrBufferTooSmall
			}
			copy(output[out:], encoded[:maxRun])
			out += maxRun
			encoded = encoded[maxRun:]
			continue
		}
		n := int(head) - 1
		// The block needs n data bytes plus one byte of lookahead:
		// either the terminator or the next block's length byte.
		if len(encoded) < n+1 {
			return 0, ErrTruncatedFrame
		}
		if len(output)-out < n {
			return 0, ErrBufferTooSmall
		}
		copy(output[out:], encoded[:n])
		out += n
		encoded = encoded[n:]
		if encoded[0] == Terminator {
			return out, nil
		}
		// The block was ended by a zero in the original message.
		if len(output) == out {
			return 0, ErrBufferTooSmall
		}
		output[out] = 0
		out++
	}
}

// DecodeInPlace decodes a single complete frame within p, depositing the
// recovered message at the front of p, and returns its length.  The error
// conditions match DecodeBuf, except that the destination can never be too
// small: a decoded message is always shorter than its frame.
//
// Loop invariant: after the first length byte is read, the write cursor
// stays strictly behind the read cursor.  Every block consumes at least as
// many frame bytes as it produces message bytes, so no unread input is
// overwritten before it is read.
func DecodeInPlace(p []byte) (int, error) {
	in, out := 0, 0
	for {
		if in == len(p) {
			return 0, ErrTruncatedFrame
		}
		head := p[in]
		in++
		if head == Terminator {
			return 0, ErrInvalidLengthByte
		}
		if head == continuation {
			if len(p)-in < maxRun {
				return 0, ErrTruncatedFrame
			}
			copy(p[out:out+maxRun], p[in:in+maxRun])
			out += maxRun
			in += maxRun
			continue
		}
		n := int(head) - 1
		if len(p)-in < n+1 {
			return 0, ErrTruncatedFrame
		}
		copy(p[out:out+n], p[in:in+n])
		out += n
		in += n
		if p[in] == Terminator {
			return out, nil
		}
		p[out] = 0
		out++
	}
}
