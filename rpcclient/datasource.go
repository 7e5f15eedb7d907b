package rpcclient

import (
	"github.com/forkscan/forkscand/consensus"
	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// The client doubles as the scanner's view of the node.
var _ consensus.NodeDataSource = (*Client)(nil)

// GetChainHeight returns the node's current best known height. This
// satisfies the consensus.NodeDataSource interface.
func (c *Client) GetChainHeight() (uint64, error) {
	count, err := c.GetBlockCount()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, errors.Errorf("node reported a negative block count %d", count)
	}
	return uint64(count), nil
}

// GetBlockHashesAtHeight returns the hashes of every candidate block at the
// given height. This satisfies the consensus.NodeDataSource interface.
func (c *Client) GetBlockHashesAtHeight(height uint64) ([]chainhash.Hash, error) {
	hashStrings, err := c.GetBlockHashesByHeight(height)
	if err != nil {
		return nil, err
	}

	hashes := make([]chainhash.Hash, len(hashStrings))
	for i, hashString := range hashStrings {
		err := chainhash.Decode(&hashes[i], hashString)
		if err != nil {
			return nil, errors.Wrapf(err, "node returned a bad block hash %q at height %d",
				hashString, height)
		}
	}
	return hashes, nil
}

// GetBlock fetches the block with the given hash and converts it into the
// scanner's block model. This satisfies the consensus.NodeDataSource
// interface.
func (c *Client) GetBlock(hash *chainhash.Hash) (*consensus.Block, error) {
	result, err := c.GetBlockVerbose(hash.String())
	if err != nil {
		return nil, err
	}

	block := &consensus.Block{
		Height:       result.Height,
		Transactions: make([]*consensus.Transaction, len(result.Transactions)),
	}
	err = chainhash.Decode(&block.Hash, result.Hash)
	if err != nil {
		return nil, errors.Wrapf(err, "node returned a bad hash %q for block %s",
			result.Hash, hash)
	}
	err = chainhash.Decode(&block.ParentHash, result.ParentHash)
	if err != nil {
		return nil, errors.Wrapf(err, "node returned a bad parent hash %q for block %s",
			result.ParentHash, hash)
	}
	if !block.Hash.IsEqual(hash) {
		return nil, errors.Errorf("node returned block %s when asked for %s",
			block.Hash, hash)
	}

	for i, txResult := range result.Transactions {
		tx := &consensus.Transaction{
			Inputs:  make([]*consensus.TxIn, len(txResult.Inputs)),
			Outputs: make([]*consensus.TxOut, len(txResult.Outputs)),
		}
		for j, input := range txResult.Inputs {
			tx.Inputs[j] = &consensus.TxIn{Value: input.Value}
		}
		for j, output := range txResult.Outputs {
			tx.Outputs[j] = &consensus.TxOut{Value: output.Value}
		}
		block.Transactions[i] = tx
	}

	return block, nil
}
