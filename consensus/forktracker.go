package consensus

import (
	"github.com/forkscan/forkscand/util/chainhash"
)

// ForkTracker maintains the frontier of live, valid branches while candidate
// blocks are folded in height by height.
//
// Its state is owned by a single scan: it is created by NewForkTracker,
// threaded through one height traversal, and discarded. It is not safe for
// concurrent use.
type ForkTracker struct {
	// tips holds the blocks at the frontier of a live valid branch, i.e.
	// valid blocks with no known valid child yet processed. Siblings of a
	// fork coexist here until one of them gains a valid child.
	tips map[chainhash.Hash]*Block

	// parents maps every block ever accepted as valid to its parent hash.
	// It is append-only and intentionally outlives the frontier: the
	// backward walk during chain reconstruction stops precisely where
	// this index has no entry.
	parents map[chainhash.Hash]chainhash.Hash

	// invalid is the append-only set of every rejected block, whether the
	// block failed its own coinbase check or inherited invalidity from
	// its parent. A hash never appears in both tips and invalid.
	invalid map[chainhash.Hash]struct{}
}

// NewForkTracker returns an empty ForkTracker ready to process candidates.
func NewForkTracker() *ForkTracker {
	return &ForkTracker{
		tips:    make(map[chainhash.Hash]*Block),
		parents: make(map[chainhash.Hash]chainhash.Hash),
		invalid: make(map[chainhash.Hash]struct{}),
	}
}

// ProcessCandidate folds a single candidate block into the tracker state.
//
// Candidates must be fed in non-decreasing height order: a child's fate
// depends on its parent's status having been settled at the previous height.
// Within one height the order of siblings does not matter.
//
// A block whose parent is already known invalid is rejected without its own
// coinbase rule being evaluated. A rejected block never enters the parent
// index, so no descendant can ever reconstruct through it.
//
// The only error condition is a malformed block, which is fatal; a block
// that merely fails validation is recorded and nil is returned.
func (ft *ForkTracker) ProcessCandidate(block *Block) error {
	if _, parentInvalid := ft.invalid[block.ParentHash]; parentInvalid {
		log.Debugf("Block %s rejected: parent %s is invalid", block.Hash, block.ParentHash)
		ft.invalid[block.Hash] = struct{}{}
		return nil
	}

	valid, err := CheckCoinbaseValue(block)
	if err != nil {
		return err
	}
	if !valid {
		log.Debugf("Block %s rejected: incorrect coinbase value", block.Hash)
		ft.invalid[block.Hash] = struct{}{}
		return nil
	}

	// The parent is no longer a frontier block once it has a valid child.
	// When siblings share a parent the first one performs the removal and
	// the rest find nothing to remove; all of them insert themselves, so
	// a fork leaves every valid sibling coexisting in the tip set.
	delete(ft.tips, block.ParentHash)
	ft.tips[block.Hash] = block

	// Record the parent link unconditionally, even when the parent was
	// never seen in this scan. The missing entry for the parent itself is
	// what terminates the backward walk, marking the lower bound of the
	// reconstructed range.
	ft.parents[block.Hash] = block.ParentHash

	return nil
}

// TipCount returns the number of live tips.
func (ft *ForkTracker) TipCount() int {
	return len(ft.tips)
}

// InvalidCount returns the number of blocks rejected so far.
func (ft *ForkTracker) InvalidCount() int {
	return len(ft.invalid)
}

// invalidHashes returns the contents of the invalid set sorted by hash
// string, so that repeated scans over the same data yield identical reports.
func (ft *ForkTracker) invalidHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, 0, len(ft.invalid))
	for hash := range ft.invalid {
		hashes = append(hashes, hash)
	}
	sortHashes(hashes)
	return hashes
}
