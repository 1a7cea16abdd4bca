package chain

import (
	"github.com/mimblenetworks/mimble/src/core"
)

// ChainStore is the read surface the control plane requires from the
// underlying chain state machine, plus the minimal writes needed to seed a
// fresh database. Block and transaction validation live behind it.
type ChainStore interface {
	// Head returns the current chain tip.
	Head() (*Tip, error)

	// GetOutputByCommit looks up an output by its commitment.
	GetOutputByCommit(commit core.Commitment) (*core.Output, error)

	// SaveHead records tip as the new chain head.
	SaveHead(tip *Tip) error

	// SaveOutput records an output that has been included in the chain.
	SaveOutput(output *core.Output) error

	Close() error
}
