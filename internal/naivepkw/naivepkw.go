// Package naivepkw is a trivial reference realization of puncturable key
// wrapping: every tag's wrapping key is pre-generated at construction and
// held in a map; puncturing a tag wipes and removes its entry. It exists
// only as a conformance oracle for testing the GGM-PPRF-backed
// implementation's observable behavior against — not as a component meant
// for production use, since it requires 2^tagLen keys up front.
package naivepkw

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/codahale/pkw/hazmat/ggmpprf"
)

const keyLen = 16

// ErrIllegalTag is returned when a tag is out of range for the configured
// tag length or has already been punctured.
var ErrIllegalTag = errors.New("naivepkw: tag out of range or punctured")

// ErrUnwrapping is returned when AEAD authentication fails.
var ErrUnwrapping = errors.New("naivepkw: unwrapping failed")

// Wrapper holds one independently random key per tag in [0, 2^tagLen).
// tagLen is expected to be small (this is a test oracle, not a scalable
// implementation): Wrapper pre-generates every key at construction time.
type Wrapper struct {
	tagLen int
	keys   map[uint64][]byte
	puncs  int
}

// New constructs a Wrapper over a tagLen-bit tag space, pre-generating a
// random keyLen-byte key for every tag.
func New(tagLen int) *Wrapper {
	n := uint64(1) << uint(tagLen)
	w := &Wrapper{tagLen: tagLen, keys: make(map[uint64][]byte, n)}
	for i := uint64(0); i < n; i++ {
		k := make([]byte, keyLen)
		if _, err := rand.Read(k); err != nil {
			panic("naivepkw: random generation failed: " + err.Error())
		}
		w.keys[i] = k
	}
	return w
}

// Wrap AES-GCM-encrypts key under tag's pre-generated key, binding header
// as associated data.
func (w *Wrapper) Wrap(tag ggmpprf.Tag, header, key []byte) ([]byte, error) {
	kek, err := w.lookup(tag)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte
	return gcm.Seal(nil, nonce[:], key, header), nil
}

// Unwrap reverses Wrap.
func (w *Wrapper) Unwrap(tag ggmpprf.Tag, header, ciphertext []byte) ([]byte, error) {
	kek, err := w.lookup(tag)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte
	plaintext, err := gcm.Open(nil, nonce[:], ciphertext, header)
	if err != nil {
		return nil, ErrUnwrapping
	}
	return plaintext, nil
}

// Punc wipes and removes tag's key. Puncturing an already-punctured tag is
// a no-op.
func (w *Wrapper) Punc(tag ggmpprf.Tag) error {
	idx, err := w.tagIndex(tag)
	if err != nil {
		return err
	}
	k, ok := w.keys[idx]
	if !ok {
		return nil
	}
	clear(k)
	delete(w.keys, idx)
	w.puncs++
	return nil
}

// GetNumPuncs returns the number of tags punctured so far.
func (w *Wrapper) GetNumPuncs() int {
	return w.puncs
}

func (w *Wrapper) lookup(tag ggmpprf.Tag) ([]byte, error) {
	idx, err := w.tagIndex(tag)
	if err != nil {
		return nil, err
	}
	k, ok := w.keys[idx]
	if !ok {
		return nil, ErrIllegalTag
	}
	return k, nil
}

func (w *Wrapper) tagIndex(tag ggmpprf.Tag) (uint64, error) {
	if !tag.ShiftRight(w.tagLen).IsZero() {
		return 0, ErrIllegalTag
	}
	b := [8]byte{}
	copy(b[:], tag[len(tag)-8:])
	return binary.BigEndian.Uint64(b[:]), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
