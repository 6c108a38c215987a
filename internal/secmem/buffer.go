// Package secmem provides a zeroizing byte buffer for holding secret
// material such as PPRF seeds and derived wrapping keys.
package secmem

import (
	"crypto/subtle"
	"runtime"
)

// Buffer is an owned byte sequence whose storage is overwritten with zeros
// when it is explicitly wiped. Buffer has no replace or assign operation,
// and its storage is not zeroed when a Buffer is overwritten by assignment
// or becomes unreachable. Unlike a destructor-based
// design, Go has no deterministic finalization, so callers are responsible
// for calling Wipe at every point a Buffer's lifetime ends — the same
// discipline the surrounding packages use for their own key material
// (compare thyrse.Protocol's Clear method).
type Buffer struct {
	b []byte
}

// New takes ownership of b, copying it into a freshly allocated buffer and
// wiping the caller's slice so only the returned Buffer holds the secret.
func New(b []byte) *Buffer {
	owned := make([]byte, len(b))
	copy(owned, b)
	clear(b)
	return &Buffer{b: owned}
}

// Zero returns a new n-byte buffer filled with zeros.
func Zero(n int) *Buffer {
	return &Buffer{b: make([]byte, n)}
}

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's storage and must not be retained past a call to Wipe.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

// Len returns the number of bytes held.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Clone returns a copy of buf backed by independent storage.
func (buf *Buffer) Clone() *Buffer {
	c := make([]byte, len(buf.b))
	copy(c, buf.b)
	return &Buffer{b: c}
}

// Equal reports whether buf and other hold identical bytes, in constant
// time with respect to their contents.
func (buf *Buffer) Equal(other *Buffer) bool {
	if len(buf.b) != len(other.b) {
		return false
	}
	return subtle.ConstantTimeCompare(buf.b, other.b) == 1
}

// Wipe overwrites the buffer's storage with zeros. The write uses the
// compiler's clear builtin, which (unlike a hand-rolled loop) is guaranteed
// not to be optimized away, and runtime.KeepAlive pins the backing array
// until after the wipe so the compiler cannot reorder it past a final use.
// The buffer must not be used after Wipe.
func (buf *Buffer) Wipe() {
	clear(buf.b)
	runtime.KeepAlive(buf.b)
}
