// Package ggmpprf implements a GGM-tree puncturable pseudorandom function:
// a keyed function over fixed-width tags whose key can be punctured at any
// tag, after which evaluation at that tag is impossible while every other
// tag remains evaluable to the same value as before the puncture.
package ggmpprf

import "github.com/codahale/pkw/internal/secmem"

// SecretRoot is a node of the GGM derivation tree: a prefix over {'0','1'}
// naming the root-to-node path, and a secret value seeding the subtree of
// every tag whose leading bits equal prefix. A root with an empty prefix
// seeds the entire tag space.
type SecretRoot struct {
	prefix string
	value  *secmem.Buffer
}

// NewSecretRoot constructs a root from a prefix and a value, taking
// ownership of value's bytes.
func NewSecretRoot(prefix string, value []byte) SecretRoot {
	return SecretRoot{prefix: prefix, value: secmem.New(value)}
}

// Prefix returns the root's bit-string path from the tree's root.
func (r SecretRoot) Prefix() string {
	return r.prefix
}

// Value returns the root's secret seed.
func (r SecretRoot) Value() []byte {
	return r.value.Bytes()
}

// Wipe zeros the root's secret storage. The root must not be used after.
func (r SecretRoot) Wipe() {
	r.value.Wipe()
}
