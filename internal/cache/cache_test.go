package cache

import (
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory[int]()

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache returned a value")
	}

	c.Set("a", 42)
	v, ok := c.Get("a")
	if !ok || v != 42 {
		t.Fatalf("Get(a) = %d, %v, want 42, true", v, ok)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestMemoryStats(t *testing.T) {
	c := NewMemory[string]()
	c.Set("k", "v")

	c.Get("k")
	c.Get("k")
	c.Get("nope")

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 2, 1", hits, misses)
	}
}

func TestKeyDeterministic(t *testing.T) {
	if Key("a", "b") != Key("a", "b") {
		t.Error("identical parts produced different keys")
	}
}

func TestKeyLengthPrefixed(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("shifted parts collided")
	}
	if Key("a", "b") == Key("ab") {
		t.Error("merged parts collided")
	}
}

func TestHashString(t *testing.T) {
	h := HashString("hello")
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h))
	}
	if h != HashString("hello") {
		t.Error("hash is not deterministic")
	}
	if h == HashString("hello!") {
		t.Error("different content produced identical hashes")
	}
}

func TestOptionsKey(t *testing.T) {
	if OptionsKey("lang", "go", "deep", "true") != "lang|go|deep|true" {
		t.Error("unexpected options key format")
	}
}
