package wallet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"golang.org/x/crypto/sha3"
)

// ErrMissingPassphrase is returned when a wallet command is invoked without
// a passphrase. The wallet cannot proceed without one.
var ErrMissingPassphrase = errors.New("wallet passphrase required")

// ExtendedKey is the wallet's root key pair. It wraps a BIP32 master key and
// supports hierarchical derivation of child keys. It lives for the duration
// of one process invocation and is never persisted here.
type ExtendedKey struct {
	master *hdkeychain.ExtendedKey
}

// NewExtendedKey derives an extended key pair from a seed. An unusable seed
// is an error; callers must abort rather than continue with a default key.
func NewExtendedKey(seed []byte) (*ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("deriving extended key from seed: %v", err)
	}
	return &ExtendedKey{master: master}, nil
}

// KeyFromPassphrase deterministically derives the wallet's extended key from
// a passphrase. The passphrase bytes are hashed with SHA3-256 to obtain the
// seed. There is no salt and no iteration count, so the same passphrase
// always yields the same key on every invocation.
func KeyFromPassphrase(pass string) (*ExtendedKey, error) {
	if pass == "" {
		return nil, ErrMissingPassphrase
	}

	seed := sha3.Sum256([]byte(pass))

	return NewExtendedKey(seed[:])
}

// Child derives the private key at child index i.
func (k *ExtendedKey) Child(i uint32) (*btcec.PrivateKey, error) {
	child, err := k.master.Child(i)
	if err != nil {
		return nil, fmt.Errorf("deriving child key %d: %v", i, err)
	}
	return child.ECPrivKey()
}

// String returns the serialized form of the master key.
func (k *ExtendedKey) String() string {
	return k.master.String()
}
