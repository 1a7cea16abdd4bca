package chain

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Tip is the head of the chain as seen by this node.
type Tip struct {
	Height          uint64 `json:"height"`
	LastBlockHash   string `json:"last_block_h"`
	PrevBlockHash   string `json:"prev_block_h"`
	TotalDifficulty uint64 `json:"total_difficulty"`
}

// Marshal - json encoding of Tip
func (t *Tip) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(t); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal - json decoding of Tip
func (t *Tip) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(t)
}
