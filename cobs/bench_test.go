package cobs_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/cbiffle/corncobs/cobs"
)

// The three 1 KiB patterns cover the interesting regimes: random data has a
// zero every couple hundred bytes, all-zero data is the smallest output and
// the most blocks, and all-0xFF data is the worst case for expansion.
var benchPatterns = []struct {
	name string
	data []byte
}{
	{"random-1k", randomBytes(1024)},
	{"zero-1k", make([]byte, 1024)},
	{"ff-1k", bytes.Repeat([]byte{0xFF}, 1024)},
}

func randomBytes(n int) []byte {
	rng := rand.New(rand.NewSource(0x5eed))
	p := make([]byte, n)
	rng.Read(p)
	return p
}

func BenchmarkEncodeBuf(b *testing.B) {
	for _, pat := range benchPatterns {
		pat := pat
		b.Run(pat.name, func(b *testing.B) {
			output := make([]byte, cobs.MaxEncodedLen(len(pat.data)))
			b.SetBytes(int64(len(pat.data)))
			for i := 0; i < b.N; i++ {
				if _, err := cobs.EncodeBuf(pat.data, output); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncoder(b *testing.B) {
	for _, pat := range benchPatterns {
		pat := pat
		b.Run(pat.name, func(b *testing.B) {
			var enc cobs.Encoder
			b.SetBytes(int64(len(pat.data)))
			for i := 0; i < b.N; i++ {
				enc.Reset(pat.data)
				for {
					if _, ok := enc.Next(); !ok {
						break
					}
				}
			}
		})
	}
}

func BenchmarkDecodeBuf(b *testing.B) {
	for _, pat := range benchPatterns {
		pat := pat
		encoded := make([]byte, cobs.MaxEncodedLen(len(pat.data)))
		n, err := cobs.EncodeBuf(pat.data, encoded)
		if err != nil {
			b.Fatal(err)
		}
		encoded = encoded[:n]
		b.Run(pat.name, func(b *testing.B) {
			output := make([]byte, len(pat.data))
			b.SetBytes(int64(len(pat.data)))
			for i := 0; i < b.N; i++ {
				if _, err := cobs.DecodeBuf(encoded, output); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeInPlace(b *testing.B) {
	for _, pat := range benchPatterns {
		pat := pat
		encoded := make([]byte, cobs.MaxEncodedLen(len(pat.data)))
		n, err := cobs.EncodeBuf(pat.data, encoded)
		if err != nil {
			b.Fatal(err)
		}
		encoded = encoded[:n]
		b.Run(pat.name, func(b *testing.B) {
			scratch := make([]byte, len(encoded))
			b.SetBytes(int64(len(pat.data)))
			for i := 0; i < b.N; i++ {
				copy(scratch, encoded)
				if _, err := cobs.DecodeInPlace(scratch); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
