// Package pkw implements Puncturable Key Wrapping: an AEAD-like primitive
// whose keys are indexed by tags drawn from a fixed-width tag space, with a
// puncture operation that permanently and selectively disables a tag while
// leaving every other tag usable.
//
// Wrapping composes a GGM-tree puncturable pseudorandom function
// (hazmat/ggmpprf) with AES-GCM: wrap and unwrap derive a fresh key per tag
// from the PPRF and use it to encrypt or decrypt a small payload bound to a
// caller-supplied header. Puncturing a tag removes the PPRF's ability to
// derive that tag's key, so neither wrap nor unwrap can succeed for it
// again, while derivations for every other tag are unaffected.
//
// A Wrapper's key can be exported in the clear with SerializeKey, or under
// a password-derived key with SerializeAndEncryptKey; Factory functions
// reconstruct a Wrapper from either form.
//
// See Backendal, Günther & Paterson, "Puncturable Key Wrapping and Its
// Applications" (Cryptology ePrint Archive, 2022) for the construction this
// package realizes.
package pkw

import "github.com/codahale/pkw/hazmat/ggmpprf"

// MaxTagLen is the width, in bits, of the Tag type.
const MaxTagLen = ggmpprf.MaxTagLen

// Tag is a fixed-width bit-string tag; see [ggmpprf.Tag].
type Tag = ggmpprf.Tag

// NewTag returns the Tag whose value is x, a convenience constructor for
// the common case of small integer tags.
func NewTag(x uint64) Tag {
	return ggmpprf.NewTag(x)
}

// NewTagFromBytes returns the Tag whose big-endian byte representation is
// b, zero-padded on the left. It reports false if b is longer than
// MaxTagLen/8 bytes.
func NewTagFromBytes(b []byte) (Tag, bool) {
	return ggmpprf.NewTagFromBytes(b)
}

// Ciphertext is a wrapped key or a password-encrypted export blob.
type Ciphertext = []byte

// PKW is the capability a puncturable key wrapping implementation
// provides: wrapping and unwrapping payloads under tags, puncturing tags,
// and exporting the underlying key material. [*Wrapper] realizes it; the
// internal naive reference implementation realizes the narrower
// wrap/unwrap/punc subset it exists to cross-check, without the export
// surface a real implementation needs.
type PKW interface {
	// Wrap encrypts key under tag, binding header as associated data.
	Wrap(tag Tag, header, key []byte) (Ciphertext, error)
	// Unwrap recovers the key previously wrapped under tag and header.
	Unwrap(tag Tag, header []byte, ciphertext Ciphertext) ([]byte, error)
	// Punc permanently disables tag.
	Punc(tag Tag) error
	// GetNumPuncs returns the number of tags punctured so far.
	GetNumPuncs() int
	// SecureTeardown wipes all secret material held by the instance.
	SecureTeardown()
	// SerializeKey returns the plaintext serialized key.
	SerializeKey() []byte
	// SerializeAndEncryptKey returns the key serialized and encrypted
	// under a key derived from password.
	SerializeAndEncryptKey(password string) ([]byte, error)
}
