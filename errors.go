package pkw

import (
	"errors"

	"github.com/codahale/pkw/hazmat/ggmpprf"
)

// ErrIllegalTag is returned by Wrap, Unwrap, and Punc when a tag has bits
// set above the wrapper's configured tag length, or when its covering
// subtree has already been punctured. It is an alias for
// [ggmpprf.ErrIllegalTag]: callers can match it with errors.Is regardless
// of whether the error originated in the PPRF engine or in this package.
var ErrIllegalTag = ggmpprf.ErrIllegalTag

// ErrInitialization is returned by New when keyLen or tagLen is not
// positive.
var ErrInitialization = ggmpprf.ErrInitialization

// ErrPPRFDeserialization is returned by FromSerialized when the serialized
// PPRF key is malformed.
var ErrPPRFDeserialization = ggmpprf.ErrDeserialization

// ErrWrapping is returned by Wrap when the underlying AEAD encryption
// fails.
var ErrWrapping = errors.New("pkw: wrapping failed")

// ErrUnwrapping is returned by Unwrap when AEAD authentication or
// decryption fails: a wrong tag, a wrong header, or a corrupted
// ciphertext.
var ErrUnwrapping = errors.New("pkw: unwrapping failed")

// ErrImport is returned by FromSerializedAndEncrypted when the password
// envelope fails to decrypt, most commonly because the password is wrong.
var ErrImport = errors.New("pkw: import failed")

// ErrExport is returned by SerializeAndEncryptKey when key derivation from
// the password fails.
var ErrExport = errors.New("pkw: export failed")
