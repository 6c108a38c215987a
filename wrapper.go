package pkw

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/codahale/pkw/hazmat/ggmpprf"
	"github.com/codahale/pkw/internal/secmem"
)

// wrapIV is the fixed all-zero nonce AES-GCM wrapping uses. Reusing a zero
// IV is safe here only because the AEAD-PKW wrapping key is freshly
// derived per tag by the PPRF and the caller contract is a single wrap per
// tag — see the documentation on [Wrapper].
var wrapIV [16]byte

// wrapNonceSize is the AES-GCM nonce length wrap/unwrap uses. AES-GCM's
// standard tag size (16 bytes) is used unchanged, appended to the
// ciphertext (MAC-at-end) by [cipher.AEAD.Seal] itself.
const wrapNonceSize = 16

// Wrapper is a [PKW] realized by composing a GGM-tree PPRF
// (hazmat/ggmpprf) with AES-GCM.
//
// The wrapping key for a tag is derived fresh by the PPRF on every call, so
// a fixed all-zero IV is safe under the assumption that the same tag is
// never wrapped twice with a different payload; puncturing a tag
// immediately after wrapping it enforces that discipline. Callers needing
// repeat-wrap safety without that discipline should prepend a random or
// counter IV to the ciphertext — doing so changes the wire format in
// §6.2-incompatible ways and is left to a future revision.
type Wrapper struct {
	pprf *ggmpprf.Engine
}

var _ PKW = (*Wrapper)(nil)

// New constructs a fresh Wrapper with a keyLen-bit key space over a
// tagLen-bit tag space. It fails with ErrInitialization if either bound is
// not positive.
func New(keyLen, tagLen int) (*Wrapper, error) {
	key, err := ggmpprf.Fresh(keyLen, tagLen)
	if err != nil {
		return nil, err
	}
	return &Wrapper{pprf: ggmpprf.NewEngine(key)}, nil
}

// Wrap derives the wrapping key for tag and AES-GCM-encrypts key under it,
// binding header as associated data. It fails with ErrIllegalTag if tag is
// out of range or punctured, and with ErrWrapping on any other
// cryptographic failure.
func (w *Wrapper) Wrap(tag Tag, header, key []byte) (Ciphertext, error) {
	k, err := w.pprf.Eval(tag)
	if err != nil {
		return nil, err
	}
	wrappingKey := secmem.New(k)
	defer wrappingKey.Wipe()

	gcm, err := newGCM(wrappingKey.Bytes(), wrapNonceSize)
	if err != nil {
		return nil, ErrWrapping
	}
	return gcm.Seal(nil, wrapIV[:], key, header), nil
}

// Unwrap derives the wrapping key for tag and AES-GCM-decrypts ciphertext,
// verifying header as associated data. It fails with ErrIllegalTag if tag
// is out of range or punctured, and with ErrUnwrapping if authentication
// fails for any reason (wrong tag, wrong header, corrupted ciphertext).
func (w *Wrapper) Unwrap(tag Tag, header []byte, ciphertext Ciphertext) ([]byte, error) {
	k, err := w.pprf.Eval(tag)
	if err != nil {
		return nil, err
	}
	wrappingKey := secmem.New(k)
	defer wrappingKey.Wipe()

	gcm, err := newGCM(wrappingKey.Bytes(), wrapNonceSize)
	if err != nil {
		return nil, ErrUnwrapping
	}
	plaintext, err := gcm.Open(nil, wrapIV[:], ciphertext, header)
	if err != nil {
		return nil, ErrUnwrapping
	}
	return plaintext, nil
}

// Punc permanently disables tag. See [ggmpprf.Engine.Punc].
func (w *Wrapper) Punc(tag Tag) error {
	return w.pprf.Punc(tag)
}

// GetNumPuncs returns the number of tags punctured so far.
func (w *Wrapper) GetNumPuncs() int {
	return w.pprf.GetNumPuncs()
}

// SecureTeardown wipes the held PPRF key's secret material. The Wrapper
// must not be used afterward.
func (w *Wrapper) SecureTeardown() {
	w.pprf.Key().Wipe()
}

// SerializeKey returns the plaintext wire-format encoding of the held PPRF
// key. The caller is responsible for the confidentiality of the result.
func (w *Wrapper) SerializeKey() []byte {
	return w.pprf.SerializeKey()
}

// SerializeAndEncryptKey serializes the held PPRF key and encrypts it
// under a key derived from password; see [EncryptExport].
func (w *Wrapper) SerializeAndEncryptKey(password string) ([]byte, error) {
	return EncryptExport(w.SerializeKey(), password)
}

func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, nonceSize)
}
