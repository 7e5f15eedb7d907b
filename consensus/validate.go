package consensus

// CheckCoinbaseValue decides whether the block's claimed coinbase output is
// exactly correct: the block subsidy for its height plus the total fees of
// every non-coinbase transaction in the block.
//
// Both overpayment and underpayment fail the check. Real consensus rules
// only forbid claiming more than subsidy plus fees; the strict equality here
// also rejects blocks that leave money on the table. That asymmetry is a
// deliberate policy of this scanner and callers rely on it.
//
// The check is context free: it never consults the validity of the block's
// parent. Propagating invalidity down a branch is the ForkTracker's job.
//
// A structurally broken block (no transactions, or a coinbase without
// outputs) returns a MalformedBlockError, which is fatal to the scan.
func CheckCoinbaseValue(block *Block) (bool, error) {
	coinbase := block.Coinbase()
	if coinbase == nil {
		return false, malformedBlockError(block.Hash, "block has no transactions")
	}
	if len(coinbase.Outputs) == 0 {
		return false, malformedBlockError(block.Hash, "coinbase transaction has no outputs")
	}

	// The coinbase transaction itself is excluded from fee accounting
	// since its inputs are not real spends.
	var totalFees int64
	for _, tx := range block.Transactions[1:] {
		totalFees += CalcTransactionFee(tx)
	}

	expectedValue := int64(CalcBlockSubsidy(block.Height)) + totalFees
	return coinbase.Outputs[0].Value == expectedValue, nil
}
