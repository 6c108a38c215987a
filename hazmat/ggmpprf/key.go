package ggmpprf

import (
	"crypto/rand"
	"sort"
)

// Key holds the state of a PPRF: the key- and tag-length parameters, the
// puncture counter, and the ordered, disjoint cover of subtree roots for
// every unpunctured tag.
//
// Invariant: Nodes is kept in strictly ascending lexicographic order by
// prefix, and no two prefixes are comparable (neither is a prefix of the
// other) — together these let Engine locate a tag's covering node by binary
// search.
type Key struct {
	KeyLen int // key length in bits
	TagLen int // tag length in bits, in [1, MaxTagLen]
	Puncs  int // number of tags punctured so far
	Nodes  []SecretRoot
}

// Fresh constructs a Key with a single root covering the whole tag space,
// seeded with keyLen/8 bytes of cryptographically random data. It fails
// with ErrInitialization if keyLen or tagLen is not positive.
func Fresh(keyLen, tagLen int) (*Key, error) {
	if keyLen <= 0 || tagLen <= 0 {
		return nil, ErrInitialization
	}
	seed := make([]byte, keyLen/8)
	if _, err := rand.Read(seed); err != nil {
		return nil, ErrInitialization
	}
	return &Key{
		KeyLen: keyLen,
		TagLen: tagLen,
		Nodes:  []SecretRoot{NewSecretRoot("", seed)},
	}, nil
}

// New constructs a Key from explicit parameters, sorting nodes
// lexicographically by prefix on entry. The caller is responsible for the
// disjoint-cover invariant over the given nodes.
func New(keyLen, tagLen, puncs int, nodes []SecretRoot) *Key {
	sorted := make([]SecretRoot, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Prefix() < sorted[j].Prefix() })
	return &Key{KeyLen: keyLen, TagLen: tagLen, Puncs: puncs, Nodes: sorted}
}

// Serialize returns the wire-format encoding of k (see Deserialize).
func (k *Key) Serialize() []byte {
	return serializeKey(k)
}

// Deserialize decodes a Key previously produced by Key.Serialize, failing
// with ErrDeserialization on any malformed input.
func Deserialize(data []byte) (*Key, error) {
	return deserializeKey(data)
}

// Wipe zeros every node's secret storage. The key must not be used after.
func (k *Key) Wipe() {
	for _, n := range k.Nodes {
		n.Wipe()
	}
}
