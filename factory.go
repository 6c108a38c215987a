package pkw

import "github.com/codahale/pkw/hazmat/ggmpprf"

// FromSerialized reconstructs a Wrapper from a plaintext serialized key
// previously produced by [Wrapper.SerializeKey]. It fails with
// ErrPPRFDeserialization if serialized is malformed.
func FromSerialized(serialized []byte) (*Wrapper, error) {
	key, err := ggmpprf.Deserialize(serialized)
	if err != nil {
		return nil, err
	}
	return &Wrapper{pprf: ggmpprf.NewEngine(key)}, nil
}

// FromSerializedAndEncrypted reconstructs a Wrapper from a blob previously
// produced by [Wrapper.SerializeAndEncryptKey], layering [DecryptExport]
// and then [FromSerialized]. It fails with ErrImport if decryption fails
// (most commonly because password is wrong), or with
// ErrPPRFDeserialization if the decrypted key is malformed.
func FromSerializedAndEncrypted(serializedAndEncrypted []byte, password string) (*Wrapper, error) {
	decrypted, err := DecryptExport(serializedAndEncrypted, password)
	if err != nil {
		return nil, err
	}
	return FromSerialized(decrypted)
}
