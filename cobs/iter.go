package cobs

import "io"

type encodeState uint8

const (
	stateLength     encodeState = iota // next output byte is a block length byte
	stateData                          // inside a block's data bytes
	stateTerminator                    // all blocks emitted, terminator pending
	stateDone
)

// blockEnd records what happens once the current block's data is drained.
type blockEnd uint8

const (
	endContinue blockEnd = iota // continuation block, the next block follows directly
	endZero                     // the block was ended by a zero byte, which we skip
	endFrame                    // final block, only the terminator remains
)

// Encoder produces the encoded frame for a message one byte at a time.  It
// holds only the borrowed message and a small scan cursor, so it can encode
// with no storage beyond the message itself.  This is useful when feeding a
// byte-oriented sink such as a serial peripheral, where EncodeBuf's second
// buffer would be wasted; for bulk encoding EncodeBuf is much faster.
//
// The zero value is an Encoder for the empty message.  Encoder is not safe
// for concurrent use; each call site should own its own.
type Encoder struct {
	raw   []byte
	rem   int // data bytes left to emit in the current block
	end   blockEnd
	state encodeState
}

// NewEncoder returns an Encoder that yields the encoded frame for raw,
// terminator included.  The Encoder borrows raw; the caller must not modify
// it until the frame has been fully drained.
func NewEncoder(raw []byte) *Encoder {
	return &Encoder{raw: raw}
}

// Reset restarts the Encoder with a new message, discarding any unread
// portion of the previous frame.
func (e *Encoder) Reset(raw []byte) {
	*e = Encoder{raw: raw}
}

// Next returns the next byte of the encoded frame, or false once the
// terminator has been yielded.  A full pass over a message of n bytes takes
// time proportional to n: the run scan happens once per block, not once per
// output byte.
func (e *Encoder) Next() (byte, bool) {
	switch e.state {
	case stateLength:
		n, zero := nextRun(e.raw)
		var b byte
		switch {
		case zero:
			b = byte(n + 1)
			e.end = endZero
		case n == maxRun:
			b = continuation
			e.end = endContinue
		default:
			b = byte(n + 1)
			e.end = endFrame
		}
		e.rem = n
		if e.rem == 0 {
			e.finishBlock()
		} else {
			e.state = stateData
		}
		return b, true
	case stateData:
		b := e.raw[0]
		e.raw = e.raw[1:]
		e.rem--
		if e.rem == 0 {
			e.finishBlock()
		}
		return b, true
	case stateTerminator:
		e.state = stateDone
		return Terminator, true
	default:
		return 0, false
	}
}

// ReadByte implements io.ByteReader over the encoded frame, returning
// io.EOF once the terminator has been yielded.
func (e *Encoder) ReadByte() (byte, error) {
	b, ok := e.Next()
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

func (e *Encoder) finishBlock() {
	switch e.end {
	case endZero:
		e.raw = e.raw[1:]
		e.state = stateLength
	case endContinue:
		e.state = stateLength
	case endFrame:
		e.state = stateTerminator
	}
}
