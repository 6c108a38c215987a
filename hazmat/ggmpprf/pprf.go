package ggmpprf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	labelLeft  = []byte("l")
	labelRight = []byte("r")
)

// Engine evaluates and punctures a PPRF over a held Key.
//
// An Engine is not safe for concurrent Punc calls, nor for a Punc
// concurrent with any Eval: both mutate or read the node list, and the
// disjoint-cover invariant does not survive an interleaving. Concurrent
// Eval calls are safe, since evaluation never mutates the node list.
type Engine struct {
	key *Key
}

// NewEngine wraps key in an Engine.
func NewEngine(key *Key) *Engine {
	return &Engine{key: key}
}

// Key returns the engine's held key.
func (e *Engine) Key() *Key {
	return e.key
}

// TagLen returns the configured tag length in bits.
func (e *Engine) TagLen() int {
	return e.key.TagLen
}

// GetNumPuncs returns the number of distinct tags punctured so far.
func (e *Engine) GetNumPuncs() int {
	return e.key.Puncs
}

// SerializeKey returns the wire-format encoding of the held key.
func (e *Engine) SerializeKey() []byte {
	return e.key.Serialize()
}

// Eval derives the keyLen/8-byte wrapping key for tag, failing with
// ErrIllegalTag if tag exceeds the configured tag length or falls within an
// already-punctured subtree.
func (e *Engine) Eval(tag Tag) ([]byte, error) {
	if tag.exceeds(e.key.TagLen) {
		return nil, ErrIllegalTag
	}
	idx := e.findCoveringNode(tag)
	if idx < 0 {
		return nil, ErrIllegalTag
	}
	node := e.key.Nodes[idx]
	bits := tag.bitString(e.key.TagLen)
	cur := node.Value()
	if len(node.Prefix()) == e.key.TagLen {
		// The covering node is already tag's leaf: node.Value() aliases the
		// tree's own storage, so it must be copied before returning rather
		// than handed out live.
		owned := make([]byte, len(cur))
		copy(owned, cur)
		return owned, nil
	}
	for i := len(node.Prefix()); i < e.key.TagLen; i++ {
		cur = derive(cur, directionLabel(bits[i]), len(cur))
	}
	return cur, nil
}

// Punc permanently disables tag: its covering subtree root is replaced by
// the co-path of sibling roots along the root-to-leaf path, so the
// remaining nodes cover every tag except the punctured one. Puncturing a
// tag that is already punctured is a no-op and does not change the
// puncture counter.
func (e *Engine) Punc(tag Tag) error {
	if tag.exceeds(e.key.TagLen) {
		return ErrIllegalTag
	}
	idx := e.findCoveringNode(tag)
	if idx < 0 {
		return nil
	}
	node := e.key.Nodes[idx]
	coPath := e.coPath(tag, node)
	e.key.Puncs++

	nodes := make([]SecretRoot, 0, len(e.key.Nodes)-1+len(coPath))
	nodes = append(nodes, e.key.Nodes[:idx]...)
	nodes = append(nodes, coPath...)
	nodes = append(nodes, e.key.Nodes[idx+1:]...)
	e.key.Nodes = nodes
	return nil
}

// coPath walks from node down to tag's leaf, deriving both children at each
// step. The child on tag's path continues the walk; the sibling becomes a
// new subtree root. Siblings where the walk took the right branch are
// collected left-to-right (they sort before the tag's own path); siblings
// where the walk took the left branch are collected right-to-left (they
// sort after it) — together the two lists, concatenated, are the
// lexicographically ordered co-path.
func (e *Engine) coPath(tag Tag, node SecretRoot) []SecretRoot {
	bits := tag.bitString(e.key.TagLen)
	prefix := node.Prefix()
	cur := node.Value()

	var left, right []SecretRoot
	for i := len(prefix); i < e.key.TagLen; i++ {
		derivedLeft := derive(cur, labelLeft, len(cur))
		derivedRight := derive(cur, labelRight, len(cur))
		if bits[i] == '1' {
			left = append(left, NewSecretRoot(prefix+"0", derivedLeft))
			cur = derivedRight
			prefix += "1"
		} else {
			right = append([]SecretRoot{NewSecretRoot(prefix + "1", derivedRight)}, right...)
			cur = derivedLeft
			prefix += "0"
		}
	}

	coPath := make([]SecretRoot, 0, len(left)+len(right))
	coPath = append(coPath, left...)
	coPath = append(coPath, right...)
	return coPath
}

// findCoveringNode returns the index of the node whose prefix covers tag,
// or -1 if no such node exists (tag is punctured). Because nodes are
// sorted and their prefixes are pairwise non-comparable, binary search
// against tag's rendered bit-string finds the unique match or a definite
// absence.
func (e *Engine) findCoveringNode(tag Tag) int {
	bits := tag.bitString(e.key.TagLen)
	nodes := e.key.Nodes
	lo, hi := 0, len(nodes)
	for lo < hi {
		mid := (lo + hi) / 2
		p := nodes[mid].Prefix()
		switch {
		case len(p) <= len(bits) && p == bits[:len(p)]:
			return mid
		case p < bits:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

func directionLabel(bit byte) []byte {
	if bit == '1' {
		return labelRight
	}
	return labelLeft
}

func derive(secret, label []byte, outLen int) []byte {
	r := hkdf.New(sha256.New, secret, nil, label)
	out := make([]byte, outLen)
	if _, err := io.ReadFull(r, out); err != nil {
		panic("ggmpprf: hkdf derivation failed: " + err.Error())
	}
	return out
}
