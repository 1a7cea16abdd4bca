package core

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// OutputFeatures qualifies an output.
type OutputFeatures uint8

const (
	// DefaultOutput is a plain transaction output.
	DefaultOutput OutputFeatures = 0

	// CoinbaseOutput marks an output created by a coinbase transaction.
	CoinbaseOutput OutputFeatures = 1
)

// Output is a read-only projection of a transaction output that has been
// included in the chain. It is supplied by the chain store; this layer only
// serializes it.
type Output struct {
	Features OutputFeatures `json:"features"`
	Commit   Commitment     `json:"commit"`
}

// Marshal - json encoding of Output
func (o *Output) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(o); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal - json decoding of Output
func (o *Output) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(o)
}
