// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcmodel

// TxInputResult models an input of a transaction returned by getBlock. The
// node resolves the value being spent, so no outpoint lookup is needed on
// this side. Values are in satoshis.
type TxInputResult struct {
	Value int64 `json:"value"`
}

// TxOutputResult models an output of a transaction returned by getBlock.
// Values are in satoshis.
type TxOutputResult struct {
	Value int64 `json:"value"`
}

// TxResult models a transaction returned by getBlock. The coinbase
// transaction appears first with its input values reported as zero.
type TxResult struct {
	Inputs  []TxInputResult  `json:"inputs"`
	Outputs []TxOutputResult `json:"outputs"`
}

// GetBlockResult models the data from the getBlock command.
type GetBlockResult struct {
	Hash         string     `json:"hash"`
	ParentHash   string     `json:"parentHash"`
	Height       uint64     `json:"height"`
	Transactions []TxResult `json:"transactions"`
}
