package wallet

import (
	"encoding/hex"
	"sync"

	"github.com/mimblenetworks/mimble/src/api"
	"github.com/mimblenetworks/mimble/src/core"
	"github.com/sirupsen/logrus"
)

// CoinbaseRequest asks the wallet to produce a coinbase output for a block
// being assembled.
type CoinbaseRequest struct {
	Fees   uint64 `json:"fees"`
	Height uint64 `json:"height"`
}

// CoinbaseResponse carries the output the wallet built and the public key it
// is bound to.
type CoinbaseResponse struct {
	Output core.Output `json:"output"`
	PubKey string      `json:"pubkey"`
}

// WalletReceiver is the write endpoint a receiving wallet exposes on
// /receive_coinbase. Each request consumes the next child key of the
// wallet's extended key.
type WalletReceiver struct {
	api.Unimplemented[string, struct{}, CoinbaseRequest, CoinbaseResponse]

	Key *ExtendedKey

	mtx  sync.Mutex
	next uint32
}

// Operations ...
func (r *WalletReceiver) Operations() []api.Operation {
	return []api.Operation{api.Create}
}

// Create derives the next child key and builds a coinbase output committed
// to it.
func (r *WalletReceiver) Create(in CoinbaseRequest) (CoinbaseResponse, error) {
	r.mtx.Lock()
	index := r.next
	r.next++
	r.mtx.Unlock()

	child, err := r.Key.Child(index)
	if err != nil {
		return CoinbaseResponse{}, api.Internal("%v", err)
	}

	pub := child.PubKey().SerializeCompressed()

	output := core.Output{
		Features: core.CoinbaseOutput,
		Commit:   core.CommitmentFromBytes(pub),
	}

	return CoinbaseResponse{
		Output: output,
		PubKey: hex.EncodeToString(pub),
	}, nil
}

// TxAck acknowledges a transaction pushed to a receiving wallet.
type TxAck struct {
	Ok bool `json:"ok"`
}

// TxReceiver is the write endpoint a receiving wallet exposes on
// /receive_transaction. It accepts finalized transactions pushed by a
// sending wallet.
type TxReceiver struct {
	api.Unimplemented[string, struct{}, Transaction, TxAck]

	key    *ExtendedKey
	logger *logrus.Entry
}

// NewTxReceiver ...
func NewTxReceiver(key *ExtendedKey, logger *logrus.Entry) *TxReceiver {
	return &TxReceiver{
		key:    key,
		logger: logger,
	}
}

// Operations ...
func (r *TxReceiver) Operations() []api.Operation {
	return []api.Operation{api.Create}
}

// Create validates an incoming transaction. Balance bookkeeping is not this
// layer's concern; a well-formed, correctly signed transaction is simply
// acknowledged.
func (r *TxReceiver) Create(tx Transaction) (TxAck, error) {
	if tx.Amount == 0 {
		return TxAck{}, api.Argument("transaction amount must be positive")
	}

	if err := tx.Verify(); err != nil {
		return TxAck{}, api.Argument("invalid transaction: %v", err)
	}

	r.logger.WithFields(logrus.Fields{
		"amount": tx.Amount,
		"excess": tx.Excess,
	}).Info("Received transaction")

	return TxAck{Ok: true}, nil
}
