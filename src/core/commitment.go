package core

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CommitmentSize is the size, in bytes, of a serialized commitment.
const CommitmentSize = 33

// Commitment is an opaque commitment to an output value. This layer never
// looks inside it; it only needs hex encoding and decoding so that outputs
// can be addressed over the API.
type Commitment [CommitmentSize]byte

// CommitmentFromHex parses the hex representation of a commitment.
func CommitmentFromHex(s string) (Commitment, error) {
	var c Commitment

	b, err := hex.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("not a valid commitment: %s", s)
	}

	if len(b) != CommitmentSize {
		return c, fmt.Errorf("invalid commitment length, need %d bytes", CommitmentSize)
	}

	copy(c[:], b)

	return c, nil
}

// CommitmentFromBytes builds a commitment from raw bytes, truncating or
// zero-padding to CommitmentSize.
func CommitmentFromBytes(b []byte) Commitment {
	var c Commitment
	copy(c[:], b)
	return c
}

// Hex returns the hex representation of the commitment.
func (c Commitment) Hex() string {
	return hex.EncodeToString(c[:])
}

func (c Commitment) String() string {
	return c.Hex()
}

// MarshalJSON encodes the commitment as a hex string.
func (c Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a commitment from its hex string form.
func (c *Commitment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := CommitmentFromHex(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
