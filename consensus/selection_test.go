package consensus

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// buildChain feeds the tracker a linear run of valid blocks starting at
// startHeight, returning the blocks in order.
func buildChain(t *testing.T, ft *ForkTracker, firstParent chainhash.Hash,
	startHeight uint64, hashes ...chainhash.Hash) []*Block {

	t.Helper()
	blocks := make([]*Block, len(hashes))
	parent := firstParent
	for i, hash := range hashes {
		blocks[i] = validBlock(hash, parent, startHeight+uint64(i))
		parent = hash
	}
	processAll(t, ft, blocks...)
	return blocks
}

// TestSelectBestTipByHeight ensures the higher tip wins regardless of the
// order branches were built.
func TestSelectBestTipByHeight(t *testing.T) {
	ft := NewForkTracker()

	// Shared history up to height 2, then a fork: one branch reaching
	// height 5, the other height 7.
	buildChain(t, ft, chainhash.Hash{0x99}, 0,
		chainhash.Hash{0x10}, chainhash.Hash{0x11}, chainhash.Hash{0x12})
	buildChain(t, ft, chainhash.Hash{0x12}, 3,
		chainhash.Hash{0x20}, chainhash.Hash{0x21}, chainhash.Hash{0x22})
	long := buildChain(t, ft, chainhash.Hash{0x12}, 3,
		chainhash.Hash{0x30}, chainhash.Hash{0x31}, chainhash.Hash{0x32},
		chainhash.Hash{0x33}, chainhash.Hash{0x34})

	best, err := ft.SelectBestTip()
	if err != nil {
		t.Fatalf("SelectBestTip: unexpected error: %v", err)
	}
	wantTip := long[len(long)-1]
	if best.Hash != wantTip.Hash {
		t.Fatalf("SelectBestTip: got %s at height %d, want %s at height %d",
			best.Hash, best.Height, wantTip.Hash, wantTip.Height)
	}
	if best.Height != 7 {
		t.Fatalf("SelectBestTip: tip height: got %d, want 7", best.Height)
	}
}

// TestSelectBestTipTieBreak ensures equal-height tips are resolved by the
// lexicographically smallest hash string, independent of insertion order.
func TestSelectBestTipTieBreak(t *testing.T) {
	// Hash{1} stringifies with the 0x01 byte last, so it is the
	// lexicographically smallest of the three candidates.
	small := chainhash.Hash{1}
	mid := chainhash.Hash{2}
	large := chainhash.Hash{3}

	orders := [][]chainhash.Hash{
		{small, mid, large},
		{large, mid, small},
		{mid, small, large},
	}
	for i, order := range orders {
		ft := NewForkTracker()
		parent := validBlock(chainhash.Hash{0xaa}, chainhash.Hash{0x99}, 4)
		processAll(t, ft, parent)
		for _, hash := range order {
			processAll(t, ft, validBlock(hash, parent.Hash, 5))
		}

		best, err := ft.SelectBestTip()
		if err != nil {
			t.Fatalf("order %d: SelectBestTip: unexpected error: %v", i, err)
		}
		if best.Hash != small {
			t.Errorf("order %d: tie-break winner: got %s, want %s",
				i, best.Hash, small)
		}
	}
}

// TestSelectBestTipEmptyFrontier ensures selection over an empty frontier
// fails with the dedicated sentinel.
func TestSelectBestTipEmptyFrontier(t *testing.T) {
	ft := NewForkTracker()
	_, err := ft.SelectBestTip()
	if !errors.Is(err, ErrEmptyFrontier) {
		t.Fatalf("SelectBestTip on empty frontier: got %v, want ErrEmptyFrontier", err)
	}
}

// TestReconstructChain ensures the backward walk produces the contiguous,
// chronological lineage of the selected tip and nothing else.
func TestReconstructChain(t *testing.T) {
	ft := NewForkTracker()
	const startHeight = 3

	hashes := []chainhash.Hash{
		{0x10}, {0x11}, {0x12}, {0x13}, {0x14},
	}
	blocks := buildChain(t, ft, chainhash.Hash{0x99}, startHeight, hashes...)
	// A losing sibling branch must not appear in the reconstruction.
	buildChain(t, ft, chainhash.Hash{0x10}, startHeight+1, chainhash.Hash{0x40})

	tip := blocks[len(blocks)-1]
	chain := ft.ReconstructChain(tip)

	if want := int(tip.Height - startHeight + 1); len(chain) != want {
		t.Fatalf("chain length: got %d, want %d\nchain: %s",
			len(chain), want, spew.Sdump(chain))
	}
	if !chainhash.AreEqual(chain, hashes) {
		t.Fatalf("chain mismatch: got %s, want %s",
			spew.Sdump(chain), spew.Sdump(hashes))
	}
	if chain[len(chain)-1] != tip.Hash {
		t.Errorf("last element: got %s, want tip %s", chain[len(chain)-1], tip.Hash)
	}

	// Contiguity under parent links.
	for i := 1; i < len(chain); i++ {
		if ft.parents[chain[i]] != chain[i-1] {
			t.Errorf("chain not contiguous at index %d: parent of %s is %s, want %s",
				i, chain[i], ft.parents[chain[i]], chain[i-1])
		}
	}
}

// TestReconstructChainStopsAtUnseenParent ensures the walk is bounded by the
// first block accepted in the scanned range.
func TestReconstructChainStopsAtUnseenParent(t *testing.T) {
	ft := NewForkTracker()
	first := validBlock(chainhash.Hash{0x10}, chainhash.Hash{0x42}, 1000)
	second := validBlock(chainhash.Hash{0x11}, chainhash.Hash{0x10}, 1001)
	processAll(t, ft, first, second)

	chain := ft.ReconstructChain(second)
	want := []chainhash.Hash{first.Hash, second.Hash}
	if !chainhash.AreEqual(chain, want) {
		t.Fatalf("chain: got %s, want %s", spew.Sdump(chain), spew.Sdump(want))
	}
}
