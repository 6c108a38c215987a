package ggmpprf

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// TestKnownAnswer reproduces the pinned known-answer scenario: a key with
// two explicit nodes whose combined subtrees cover tag 356, evaluated
// against a fixed expected output.
func TestKnownAnswer(t *testing.T) {
	key := New(128, 10, 0, []SecretRoot{
		NewSecretRoot("0101", make([]byte, 16)),
		NewSecretRoot("001", make([]byte, 16)),
	})
	e := NewEngine(key)

	got, err := e.Eval(NewTag(356))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	want, err := hex.DecodeString("d436ae44ce57f972a5b10b702e802389")
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Eval(356) = %x, want %x", got, want)
	}
}

// TestPuncAllTags punctures every tag in a 10-bit space and checks that the
// puncture counter tracks exactly the tags punctured, and that a tag beyond
// the configured range is illegal.
func TestPuncAllTags(t *testing.T) {
	key, err := Fresh(128, 10)
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)

	for i := uint64(0); i < 1024; i++ {
		if err := e.Punc(NewTag(i)); err != nil {
			t.Fatalf("Punc(%d): %v", i, err)
		}
	}
	if e.GetNumPuncs() != 1024 {
		t.Fatalf("GetNumPuncs() = %d, want 1024", e.GetNumPuncs())
	}
	if err := e.Punc(NewTag(1024)); !errors.Is(err, ErrIllegalTag) {
		t.Fatalf("Punc(1024) = %v, want ErrIllegalTag", err)
	}
}

// TestPuncSparseWideTree punctures a handful of tags out of a 256-bit tag
// space, then evaluates a large sample of the remaining tags, checking that
// every evaluation succeeds, every value is distinct, and the punctured
// tags are rejected.
func TestPuncSparseWideTree(t *testing.T) {
	key, err := Fresh(128, 256)
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)

	punctured := []uint64{0, 1, 2, 3, 4, 5, 1000}
	for _, i := range punctured {
		if err := e.Punc(NewTag(i)); err != nil {
			t.Fatalf("Punc(%d): %v", i, err)
		}
	}
	if e.GetNumPuncs() != len(punctured) {
		t.Fatalf("GetNumPuncs() = %d, want %d", e.GetNumPuncs(), len(punctured))
	}

	for _, i := range punctured {
		if _, err := e.Eval(NewTag(i)); !errors.Is(err, ErrIllegalTag) {
			t.Fatalf("Eval(%d) = %v, want ErrIllegalTag", i, err)
		}
	}

	const n = 1 << 15
	seen := make(map[string]struct{}, n)
	for i := uint64(1001); i < 1001+n; i++ {
		v, err := e.Eval(NewTag(i))
		if err != nil {
			t.Fatalf("Eval(%d): %v", i, err)
		}
		if _, dup := seen[string(v)]; dup {
			t.Fatalf("Eval(%d) collided with a previous value", i)
		}
		seen[string(v)] = struct{}{}
	}
}

// TestEvalIllegalTag checks that a tag out of range for the configured
// width is rejected before any derivation is attempted.
func TestEvalIllegalTag(t *testing.T) {
	key, err := Fresh(128, 8)
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)

	if _, err := e.Eval(NewTag(256)); !errors.Is(err, ErrIllegalTag) {
		t.Fatalf("Eval(256) = %v, want ErrIllegalTag", err)
	}
}

// TestEvalStableAcrossPunc checks that puncturing one tag does not change
// the evaluated value of any other tag.
func TestEvalStableAcrossPunc(t *testing.T) {
	key, err := Fresh(128, 6)
	if err != nil {
		t.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)

	before := make(map[uint64][]byte, 64)
	for i := uint64(0); i < 64; i++ {
		v, err := e.Eval(NewTag(i))
		if err != nil {
			t.Fatalf("Eval(%d): %v", i, err)
		}
		before[i] = append([]byte(nil), v...)
	}

	if err := e.Punc(NewTag(30)); err != nil {
		t.Fatalf("Punc(30): %v", err)
	}

	for i := uint64(0); i < 64; i++ {
		if i == 30 {
			continue
		}
		v, err := e.Eval(NewTag(i))
		if err != nil {
			t.Fatalf("Eval(%d) after punc(30): %v", i, err)
		}
		if !bytes.Equal(v, before[i]) {
			t.Fatalf("Eval(%d) changed after punc(30): %x != %x", i, v, before[i])
		}
	}
}

func BenchmarkEval(b *testing.B) {
	key, err := Fresh(128, 32)
	if err != nil {
		b.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)
	b.ReportAllocs()
	var i uint64
	for b.Loop() {
		if _, err := e.Eval(NewTag(i)); err != nil {
			b.Fatalf("Eval: %v", err)
		}
		i++
	}
}

func BenchmarkPunc(b *testing.B) {
	key, err := Fresh(128, 32)
	if err != nil {
		b.Fatalf("Fresh: %v", err)
	}
	e := NewEngine(key)
	b.ReportAllocs()
	var i uint64
	for b.Loop() {
		if err := e.Punc(NewTag(i)); err != nil {
			b.Fatalf("Punc: %v", err)
		}
		i++
	}
}
