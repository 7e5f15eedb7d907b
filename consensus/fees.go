package consensus

// CalcTransactionFee returns the implicit fee of the given transaction: the
// sum of its input values minus the sum of its output values.
//
// A malformed transaction whose outputs exceed its inputs yields a negative
// fee. Callers deliberately do not guard against that; a negative fee simply
// lowers the expected coinbase value and the block fails the equality check
// downstream.
func CalcTransactionFee(tx *Transaction) int64 {
	var totalIn int64
	for _, txIn := range tx.Inputs {
		totalIn += txIn.Value
	}

	var totalOut int64
	for _, txOut := range tx.Outputs {
		totalOut += txOut.Value
	}

	return totalIn - totalOut
}
