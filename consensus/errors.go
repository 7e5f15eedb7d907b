package consensus

import (
	"fmt"

	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// ErrEmptyFrontier is returned when chain selection is attempted but no
// valid tips survived the scanned range. It is distinct from data-source
// failures: the node answered every query, the range simply contained no
// valid chain.
var ErrEmptyFrontier = errors.New("no valid chain tips in the scanned range")

// MalformedBlockError identifies a block that violates the structural
// preconditions the scanner assumes from a trusted node: every block has at
// least one transaction and the coinbase transaction has at least one
// output. It is a fatal error, not a validation outcome.
type MalformedBlockError struct {
	Hash        chainhash.Hash
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e MalformedBlockError) Error() string {
	return fmt.Sprintf("malformed block %s: %s", e.Hash, e.Description)
}

// malformedBlockError creates a MalformedBlockError given a block hash and a
// description.
func malformedBlockError(hash chainhash.Hash, desc string) MalformedBlockError {
	return MalformedBlockError{Hash: hash, Description: desc}
}
