package consensus

import (
	"testing"

	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// testBlock builds a block at the given height whose coinbase claims
// claimedValue, carrying the given non-coinbase transactions.
func testBlock(hash, parent chainhash.Hash, height uint64, claimedValue int64,
	txs ...*Transaction) *Block {

	transactions := []*Transaction{{
		Inputs:  []*TxIn{{Value: 0}},
		Outputs: []*TxOut{{Value: claimedValue}},
	}}
	transactions = append(transactions, txs...)
	return &Block{
		Hash:         hash,
		ParentHash:   parent,
		Height:       height,
		Transactions: transactions,
	}
}

// feeTx builds a non-coinbase transaction contributing the given fee.
func feeTx(fee int64) *Transaction {
	return &Transaction{
		Inputs:  []*TxIn{{Value: 100000}},
		Outputs: []*TxOut{{Value: 100000 - fee}},
	}
}

// TestCheckCoinbaseValue exercises the strict-equality coinbase rule.
func TestCheckCoinbaseValue(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		want  bool
	}{
		{
			name:  "genesis-height block, exact subsidy plus fee",
			block: testBlock(chainhash.Hash{1}, chainhash.Hash{}, 0, 5000000500, feeTx(500)),
			want:  true,
		},
		{
			name:  "overpayment by one satoshi is rejected",
			block: testBlock(chainhash.Hash{2}, chainhash.Hash{}, 0, 5000000501, feeTx(500)),
			want:  false,
		},
		{
			name:  "underpayment by one satoshi is rejected",
			block: testBlock(chainhash.Hash{3}, chainhash.Hash{}, 0, 5000000499, feeTx(500)),
			want:  false,
		},
		{
			name:  "no fee transactions, exact subsidy",
			block: testBlock(chainhash.Hash{4}, chainhash.Hash{}, 210000, 2500000000),
			want:  true,
		},
		{
			name: "negative fee tightens the expected value",
			// A malformed fee transaction paying out more than it
			// spends lowers the expected coinbase value.
			block: testBlock(chainhash.Hash{5}, chainhash.Hash{}, 0, 4999999000,
				feeTx(-1000)),
			want: true,
		},
		{
			name:  "multiple fee transactions accumulate",
			block: testBlock(chainhash.Hash{6}, chainhash.Hash{}, 420000, 1250000550, feeTx(200), feeTx(350)),
			want:  true,
		},
		{
			name:  "post-subsidy era, fees only",
			block: testBlock(chainhash.Hash{7}, chainhash.Hash{}, 210000*64, 750, feeTx(750)),
			want:  true,
		},
	}

	for _, test := range tests {
		got, err := CheckCoinbaseValue(test.block)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestCheckCoinbaseValueMalformed ensures structural precondition violations
// surface as MalformedBlockError rather than validation outcomes.
func TestCheckCoinbaseValueMalformed(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
	}{
		{
			name: "no transactions",
			block: &Block{
				Hash:   chainhash.Hash{8},
				Height: 1,
			},
		},
		{
			name: "coinbase without outputs",
			block: &Block{
				Hash:         chainhash.Hash{9},
				Height:       1,
				Transactions: []*Transaction{{Inputs: []*TxIn{{Value: 0}}}},
			},
		},
	}

	for _, test := range tests {
		_, err := CheckCoinbaseValue(test.block)
		if err == nil {
			t.Errorf("%s: expected a MalformedBlockError, got nil", test.name)
			continue
		}
		var malformedErr MalformedBlockError
		if !errors.As(err, &malformedErr) {
			t.Errorf("%s: expected a MalformedBlockError, got %T", test.name, err)
			continue
		}
		if !malformedErr.Hash.IsEqual(&test.block.Hash) {
			t.Errorf("%s: error names block %s, want %s",
				test.name, malformedErr.Hash, test.block.Hash)
		}
	}
}
