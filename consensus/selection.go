package consensus

import (
	"sort"

	"github.com/forkscan/forkscand/util/chainhash"
)

// SelectBestTip returns the tip of the branch that wins chain selection.
//
// The winner is the tip with the greatest height, a proxy for greatest
// accumulated work that holds only while difficulty is constant across
// branches. Among tips of equal height the one with the lexicographically
// smallest hash string wins; the rule is arbitrary but deterministic, so
// repeated scans of the same data select the same chain regardless of map
// iteration order.
//
// Selection over an empty frontier returns ErrEmptyFrontier: the scanned
// range contained no valid chain at all, and there is nothing to select.
func (ft *ForkTracker) SelectBestTip() (*Block, error) {
	if len(ft.tips) == 0 {
		return nil, ErrEmptyFrontier
	}

	var best *Block
	for _, tip := range ft.tips {
		if best == nil || tip.Height > best.Height ||
			(tip.Height == best.Height && tip.Hash.String() < best.Hash.String()) {
			best = tip
		}
	}
	return best, nil
}

// ReconstructChain walks the parent index backward from the given tip and
// returns the surviving chain in chronological order, ending with the tip
// itself. The walk stops at the first hash with no parent-index entry, which
// is the earliest ancestor accepted within the scanned range.
func (ft *ForkTracker) ReconstructChain(tip *Block) []chainhash.Hash {
	// Every accepted block has a parent-index entry, so membership in the
	// index is what distinguishes in-range ancestors from the unseen
	// block just below the scanned range.
	var chain []chainhash.Hash
	current := tip.Hash
	for {
		parent, ok := ft.parents[current]
		if !ok {
			break
		}
		chain = append(chain, current)
		current = parent
	}

	// The walk collected tip-to-origin; flip it to chronological order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// sortHashes sorts a slice of hashes by their string form in ascending
// order.
func sortHashes(hashes []chainhash.Hash) {
	sort.Slice(hashes, func(i, j int) bool {
		return hashes[i].String() < hashes[j].String()
	})
}
