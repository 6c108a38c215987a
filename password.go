package pkw

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/codahale/pkw/internal/secmem"
)

// Password export envelope parameters. These, together with the PBKDF
// choice below, constitute the export wire format: body || mac || nonce ||
// salt, where mac is AES-GCM's standard 16-byte tag appended by Seal
// itself.
const (
	saltLen        = 16
	passwordKeyLen = 16
	passwordIters  = 100
)

// EncryptExport encrypts plaintext under a key derived from password,
// returning ciphertext||nonce||salt. A fresh salt and nonce are generated
// per call. It fails with ErrExport if randomness generation fails.
func EncryptExport(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, ErrExport
	}

	gcm, err := passwordGCM(password, salt)
	if err != nil {
		return nil, ErrExport
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, ErrExport
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	out := make([]byte, 0, len(ciphertext)+len(nonce)+len(salt))
	out = append(out, ciphertext...)
	out = append(out, nonce...)
	out = append(out, salt...)
	return out, nil
}

// DecryptExport reverses EncryptExport, failing with ErrImport if blob is
// too short to contain a nonce and salt, or if decryption under the
// password-derived key fails (most commonly because the password is
// wrong).
func DecryptExport(blob []byte, password string) ([]byte, error) {
	gcmForNonceSize, err := passwordGCM(password, make([]byte, saltLen))
	if err != nil {
		return nil, ErrImport
	}
	nonceLen := gcmForNonceSize.NonceSize()

	if len(blob) < saltLen+nonceLen {
		return nil, ErrImport
	}
	salt := blob[len(blob)-saltLen:]
	nonce := blob[len(blob)-saltLen-nonceLen : len(blob)-saltLen]
	ciphertext := blob[:len(blob)-saltLen-nonceLen]

	gcm, err := passwordGCM(password, salt)
	if err != nil {
		return nil, ErrImport
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrImport
	}
	return plaintext, nil
}

// passwordGCM derives a key from password and salt and returns an AES-GCM
// instance keyed with it, using the package's standard nonce and tag
// sizes.
func passwordGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := secmem.New(pbkdf2.Key([]byte(password), salt, passwordIters, passwordKeyLen, sha256.New))
	defer key.Wipe()

	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
