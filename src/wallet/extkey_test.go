package wallet

import (
	"bytes"
	"testing"
)

func TestKeyFromPassphraseDeterministic(t *testing.T) {
	k1, err := KeyFromPassphrase("my voice is my passport")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	k2, err := KeyFromPassphrase("my voice is my passport")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if k1.String() != k2.String() {
		t.Fatalf("the same passphrase must always yield the same key")
	}

	c1, err := k1.Child(0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	c2, err := k2.Child(0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !bytes.Equal(c1.Serialize(), c2.Serialize()) {
		t.Fatalf("child keys must derive deterministically")
	}
}

func TestKeyFromPassphraseDistinct(t *testing.T) {
	k1, err := KeyFromPassphrase("passphrase one")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	k2, err := KeyFromPassphrase("passphrase two")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if k1.String() == k2.String() {
		t.Fatalf("distinct passphrases must yield distinct keys")
	}
}

func TestKeyFromPassphraseMissing(t *testing.T) {
	if _, err := KeyFromPassphrase(""); err != ErrMissingPassphrase {
		t.Fatalf("an empty passphrase should be ErrMissingPassphrase, got %v", err)
	}
}

func TestNewExtendedKeyBadSeed(t *testing.T) {
	if _, err := NewExtendedKey(make([]byte, 4)); err == nil {
		t.Fatalf("an undersized seed should not derive a key")
	}
}
