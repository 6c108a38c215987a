package ggmpprf

import "errors"

// ErrIllegalTag is returned by Eval and Punc when a tag has bits set above
// the configured tag length, or when its covering subtree has already been
// punctured.
var ErrIllegalTag = errors.New("ggmpprf: tag out of range or punctured")

// ErrInitialization is returned by Fresh when keyLen or tagLen is not
// positive.
var ErrInitialization = errors.New("ggmpprf: keyLen and tagLen must be positive")

// ErrDeserialization is returned by Deserialize when the encoded key is
// truncated, declares a keyLen that is not a positive multiple of 8, or
// leaves unconsumed bytes after its declared node count.
var ErrDeserialization = errors.New("ggmpprf: malformed serialized key")
