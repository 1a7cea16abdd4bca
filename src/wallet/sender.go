package wallet

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec"
)

// kernelKeyIndex is the child index of the key a sending wallet signs its
// transactions with.
const kernelKeyIndex uint32 = 0

// Transaction is the wire form of a payment produced by a sending wallet.
// Excess is the hex compressed public key of the kernel key; Sig is a hex
// DER signature over the transaction fingerprint.
type Transaction struct {
	Amount uint64 `json:"amount"`
	Excess string `json:"excess"`
	Sig    string `json:"sig"`
}

// fingerprint is the digest the kernel signature commits to.
func (tx *Transaction) fingerprint(excess []byte) [sha256.Size]byte {
	buf := make([]byte, 8, 8+len(excess))
	binary.BigEndian.PutUint64(buf, tx.Amount)
	return sha256.Sum256(append(buf, excess...))
}

// Verify checks the transaction signature against its excess key.
func (tx *Transaction) Verify() error {
	excess, err := hex.DecodeString(tx.Excess)
	if err != nil {
		return fmt.Errorf("invalid excess: %v", err)
	}

	pub, err := btcec.ParsePubKey(excess, btcec.S256())
	if err != nil {
		return fmt.Errorf("invalid excess: %v", err)
	}

	sigBytes, err := hex.DecodeString(tx.Sig)
	if err != nil {
		return fmt.Errorf("invalid signature: %v", err)
	}

	sig, err := btcec.ParseSignature(sigBytes, btcec.S256())
	if err != nil {
		return fmt.Errorf("invalid signature: %v", err)
	}

	hash := tx.fingerprint(excess)
	if !sig.Verify(hash[:], pub) {
		return errors.New("signature does not match excess key")
	}

	return nil
}

// BuildSendTx constructs and signs a transaction spending amount.
func BuildSendTx(key *ExtendedKey, amount uint64) (*Transaction, error) {
	if amount == 0 {
		return nil, errors.New("amount must be positive")
	}

	priv, err := key.Child(kernelKeyIndex)
	if err != nil {
		return nil, err
	}

	excess := priv.PubKey().SerializeCompressed()

	tx := &Transaction{
		Amount: amount,
		Excess: hex.EncodeToString(excess),
	}

	hash := tx.fingerprint(excess)
	sig, err := priv.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %v", err)
	}
	tx.Sig = hex.EncodeToString(sig.Serialize())

	return tx, nil
}

// IssueSendTx builds a signed transaction for amount and delivers it to
// dest. The default destination "stdout" prints the JSON form; anything else
// is treated as the base address of a receiving wallet and the transaction
// is posted to it. The destination is decided once, by the caller.
func IssueSendTx(key *ExtendedKey, amount uint64, dest string) error {
	tx, err := BuildSendTx(key, amount)
	if err != nil {
		return err
	}

	if dest == "stdout" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tx)
	}

	payload, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	base := dest
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	url := strings.TrimSuffix(base, "/") + "/v1/receive_transaction"

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sending transaction to %s: %v", dest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipient at %s rejected transaction: %s", dest, resp.Status)
	}

	return nil
}
