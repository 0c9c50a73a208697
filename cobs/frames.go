package cobs

import "bytes"

// FindTerminator returns the index of the first frame terminator in p, or
// -1 if p contains no complete frame.  Scanning for the terminator is how a
// receiver resynchronizes after tuning into a stream mid-way or after
// discarding a corrupt frame.
func FindTerminator(p []byte) int {
	return bytes.IndexByte(p, Terminator)
}

// Scanner splits a byte slice into its zero-terminated frames.  A typical
// loop decodes each frame in turn:
//
//	var s cobs.Scanner
//	s.Reset(buf)
//	for s.Next() {
//		msg.Reset()
//		if err := s.Decode(&msg); err != nil {
//			continue // skip the corrupt frame, Next resyncs
//		}
//		handle(msg.Bytes())
//	}
//
// Trailing bytes after the last terminator are an incomplete frame and are
// never yielded.
type Scanner struct {
	rest  []byte
	frame []byte
}

// Reset points the Scanner at a new byte slice.
func (s *Scanner) Reset(encoded []byte) {
	s.rest = encoded
	s.frame = nil
}

// Next advances to the next frame, reporting whether one was found.
func (s *Scanner) Next() bool {
	i := FindTerminator(s.rest)
	if i < 0 {
		s.frame = nil
		return false
	}
	s.frame = s.rest[:i+1]
	s.rest = s.rest[i+1:]
	return true
}

// Encoded returns the current frame, terminator included.  It is only valid
// after a call to Next that returned true.
func (s *Scanner) Encoded() []byte {
	return s.frame
}

// Decode appends the current frame's decoded message to dest.
func (s *Scanner) Decode(dest *bytes.Buffer) error {
	return Decode(s.frame, dest)
}

// FrameBuilder makes it easier to build up the content of individual
// messages which are then encoded back to back as terminated frames.  To
// build up a message, use the FrameBuilder as a bytes.Buffer.  Once a
// message is done, call FinishMessage.  Once you are done with all
// messages, call Encode to write the frame sequence.
type FrameBuilder struct {
	bytes.Buffer
	start int
	spans []span
}

type span struct {
	start, end int
}

// FinishMessage marks the end of the message built up since the previous
// FinishMessage call.  Messages are not encoded until Encode is called.
func (fb *FrameBuilder) FinishMessage() {
	end := fb.Len()
	fb.spans = append(fb.spans, span{fb.start, end})
	fb.start = end
}

// Encode writes every finished message to dest as a terminated frame, in
// the order the messages were finished.
func (fb *FrameBuilder) Encode(dest *bytes.Buffer) {
	msgs := fb.Bytes()
	for _, sp := range fb.spans {
		Encode(msgs[sp.start:sp.end], dest)
	}
}
