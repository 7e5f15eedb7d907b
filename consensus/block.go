package consensus

import (
	"github.com/forkscan/forkscand/util/chainhash"
)

// TxIn models a transaction input. Only the value being spent is relevant to
// fee accounting; outpoints and signature scripts live with the node.
type TxIn struct {
	Value int64
}

// TxOut models a transaction output.
type TxOut struct {
	Value int64
}

// Transaction models a transaction as far as coinbase validation is
// concerned: ordered input and output values, in satoshis.
type Transaction struct {
	Inputs  []*TxIn
	Outputs []*TxOut
}

// Block is a candidate block fetched from the node. It is immutable once
// fetched.
//
// Transactions[0] is the coinbase transaction.
type Block struct {
	Hash         chainhash.Hash
	ParentHash   chainhash.Hash
	Height       uint64
	Transactions []*Transaction
}

// Coinbase returns the block's coinbase transaction, or nil if the block has
// no transactions at all.
func (b *Block) Coinbase() *Transaction {
	if len(b.Transactions) == 0 {
		return nil
	}
	return b.Transactions[0]
}
