// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the subset of node RPC commands the scanner issues.

package rpcmodel

// Cmd is implemented by every statically typed JSON-RPC command in this
// package. Method returns the wire method name and Params the positional
// parameters, ready for NewRequest.
type Cmd interface {
	Method() string
	Params() []interface{}
}

// GetBlockCountCmd defines the getBlockCount JSON-RPC command.
type GetBlockCountCmd struct{}

// Method returns the wire method name of the command.
func (cmd *GetBlockCountCmd) Method() string { return "getBlockCount" }

// Params returns the positional parameters of the command.
func (cmd *GetBlockCountCmd) Params() []interface{} { return nil }

// NewGetBlockCountCmd returns a new instance which can be used to issue a
// getBlockCount JSON-RPC command.
func NewGetBlockCountCmd() *GetBlockCountCmd {
	return &GetBlockCountCmd{}
}

// GetBlockHashesByHeightCmd defines the getBlockHashesByHeight JSON-RPC
// command. The node answers with every candidate block hash it knows at the
// given height; more than one hash signifies a fork.
type GetBlockHashesByHeightCmd struct {
	Height uint64
}

// NewGetBlockHashesByHeightCmd returns a new instance which can be used to
// issue a getBlockHashesByHeight JSON-RPC command.
func NewGetBlockHashesByHeightCmd(height uint64) *GetBlockHashesByHeightCmd {
	return &GetBlockHashesByHeightCmd{
		Height: height,
	}
}

// Method returns the wire method name of the command.
func (cmd *GetBlockHashesByHeightCmd) Method() string { return "getBlockHashesByHeight" }

// Params returns the positional parameters of the command.
func (cmd *GetBlockHashesByHeightCmd) Params() []interface{} { return []interface{}{cmd.Height} }

// GetBlockCmd defines the getBlock JSON-RPC command.
type GetBlockCmd struct {
	Hash string
}

// NewGetBlockCmd returns a new instance which can be used to issue a
// getBlock JSON-RPC command.
func NewGetBlockCmd(hash string) *GetBlockCmd {
	return &GetBlockCmd{
		Hash: hash,
	}
}

// Method returns the wire method name of the command.
func (cmd *GetBlockCmd) Method() string { return "getBlock" }

// Params returns the positional parameters of the command.
func (cmd *GetBlockCmd) Params() []interface{} { return []interface{}{cmd.Hash} }
