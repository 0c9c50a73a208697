// Package cobs implements Consistent Overhead Byte Stuffing (COBS) with a
// zero terminator.  COBS takes an arbitrary sequence of bytes and re-encodes
// it into a slightly longer sequence in which the value 0x00 appears exactly
// once, as the final byte.  Because zero then only ever appears between
// frames, a receiver that tunes into a stream mid-way can resynchronize by
// scanning for the next zero byte, and the worst-case expansion is bounded
// (one overhead byte per 254 message bytes, plus the terminator).
package cobs
