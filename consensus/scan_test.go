package consensus

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// fakeDataSource is an in-memory NodeDataSource for driving the scanner in
// tests.
type fakeDataSource struct {
	chainHeight    uint64
	blocksByHeight map[uint64][]*Block
	blocksByHash   map[chainhash.Hash]*Block

	heightErr error
	hashesErr error
	blockErr  error
}

func newFakeDataSource(chainHeight uint64, blocks ...*Block) *fakeDataSource {
	ds := &fakeDataSource{
		chainHeight:    chainHeight,
		blocksByHeight: make(map[uint64][]*Block),
		blocksByHash:   make(map[chainhash.Hash]*Block),
	}
	for _, block := range blocks {
		ds.blocksByHeight[block.Height] = append(ds.blocksByHeight[block.Height], block)
		ds.blocksByHash[block.Hash] = block
	}
	return ds
}

func (ds *fakeDataSource) GetChainHeight() (uint64, error) {
	if ds.heightErr != nil {
		return 0, ds.heightErr
	}
	return ds.chainHeight, nil
}

func (ds *fakeDataSource) GetBlockHashesAtHeight(height uint64) ([]chainhash.Hash, error) {
	if ds.hashesErr != nil {
		return nil, ds.hashesErr
	}
	blocks := ds.blocksByHeight[height]
	hashes := make([]chainhash.Hash, len(blocks))
	for i, block := range blocks {
		hashes[i] = block.Hash
	}
	return hashes, nil
}

func (ds *fakeDataSource) GetBlock(hash *chainhash.Hash) (*Block, error) {
	if ds.blockErr != nil {
		return nil, ds.blockErr
	}
	block, ok := ds.blocksByHash[*hash]
	if !ok {
		return nil, errors.Errorf("unknown block %s", hash)
	}
	return block, nil
}

// forkedFixture builds a small chain with one fork and one invalid branch:
//
//	height: 0    1     2     3     4
//	        a0 - a1 - a2 --- a3 -- a4    (winning branch)
//	                   \- b3             (valid sibling, loses on height)
//	              \- x2 - x3             (x2 invalid, x3 rejected by descent)
func forkedFixture() (*fakeDataSource, []*Block) {
	a0 := validBlock(chainhash.Hash{0xa0}, chainhash.Hash{0xff}, 0)
	a1 := validBlock(chainhash.Hash{0xa1}, a0.Hash, 1)
	a2 := validBlock(chainhash.Hash{0xa2}, a1.Hash, 2)
	a3 := validBlock(chainhash.Hash{0xa3}, a2.Hash, 3)
	a4 := validBlock(chainhash.Hash{0xa4}, a3.Hash, 4)
	b3 := validBlock(chainhash.Hash{0xb3}, a2.Hash, 3)
	x2 := invalidBlock(chainhash.Hash{0x02}, a1.Hash, 2)
	x3 := validBlock(chainhash.Hash{0x03}, x2.Hash, 3)

	winning := []*Block{a0, a1, a2, a3, a4}
	ds := newFakeDataSource(4, a0, a1, a2, a3, a4, b3, x2, x3)
	return ds, winning
}

// TestScannerRun exercises a full scan over a forked fixture.
func TestScannerRun(t *testing.T) {
	ds, winning := forkedFixture()
	report, err := NewScanner(ds).Run(0)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	wantChain := make([]chainhash.Hash, len(winning))
	for i, block := range winning {
		wantChain[i] = block.Hash
	}
	if !chainhash.AreEqual(report.ValidChain, wantChain) {
		t.Errorf("valid chain: got %s, want %s",
			spew.Sdump(report.ValidChain), spew.Sdump(wantChain))
	}
	if report.TipHash != wantChain[len(wantChain)-1] {
		t.Errorf("tip hash: got %s, want %s",
			report.TipHash, wantChain[len(wantChain)-1])
	}
	if report.TipHeight != 4 {
		t.Errorf("tip height: got %d, want 4", report.TipHeight)
	}

	wantInvalid := []chainhash.Hash{{0x02}, {0x03}}
	sortHashes(wantInvalid)
	if !chainhash.AreEqual(report.Invalid, wantInvalid) {
		t.Errorf("invalid set: got %s, want %s",
			spew.Sdump(report.Invalid), spew.Sdump(wantInvalid))
	}
}

// TestScannerRunIdempotence ensures two scans over unchanged data yield
// identical reports.
func TestScannerRunIdempotence(t *testing.T) {
	ds, _ := forkedFixture()
	scanner := NewScanner(ds)

	first, err := scanner.Run(0)
	if err != nil {
		t.Fatalf("first Run: unexpected error: %v", err)
	}
	second, err := scanner.Run(0)
	if err != nil {
		t.Fatalf("second Run: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ between runs:\nfirst: %s\nsecond: %s",
			spew.Sdump(first), spew.Sdump(second))
	}
}

// TestScannerRunPartialRange ensures a scan starting mid-chain reconstructs
// only from the first block accepted within the range.
func TestScannerRunPartialRange(t *testing.T) {
	ds, winning := forkedFixture()
	report, err := NewScanner(ds).Run(2)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	wantChain := []chainhash.Hash{winning[2].Hash, winning[3].Hash, winning[4].Hash}
	if !chainhash.AreEqual(report.ValidChain, wantChain) {
		t.Errorf("valid chain: got %s, want %s",
			spew.Sdump(report.ValidChain), spew.Sdump(wantChain))
	}
}

// TestScannerRunDataSourceFailures ensures any data-source error aborts the
// scan with no report.
func TestScannerRunDataSourceFailures(t *testing.T) {
	cause := errors.New("node went away")

	tests := []struct {
		name   string
		mutate func(*fakeDataSource)
	}{
		{"chain height fails", func(ds *fakeDataSource) { ds.heightErr = cause }},
		{"hashes fail", func(ds *fakeDataSource) { ds.hashesErr = cause }},
		{"block fetch fails", func(ds *fakeDataSource) { ds.blockErr = cause }},
	}

	for _, test := range tests {
		ds, _ := forkedFixture()
		test.mutate(ds)

		report, err := NewScanner(ds).Run(0)
		if !errors.Is(err, cause) {
			t.Errorf("%s: got %v, want wrapped cause", test.name, err)
		}
		if report != nil {
			t.Errorf("%s: got a partial report, want nil", test.name)
		}
	}
}

// TestScannerRunEmptyFrontier ensures a range with no valid blocks fails
// with ErrEmptyFrontier.
func TestScannerRunEmptyFrontier(t *testing.T) {
	bad := invalidBlock(chainhash.Hash{0x70}, chainhash.Hash{0xff}, 0)
	worse := validBlock(chainhash.Hash{0x71}, bad.Hash, 1)
	ds := newFakeDataSource(1, bad, worse)

	report, err := NewScanner(ds).Run(0)
	if !errors.Is(err, ErrEmptyFrontier) {
		t.Fatalf("Run: got %v, want ErrEmptyFrontier", err)
	}
	if report != nil {
		t.Fatal("Run: got a report despite an empty frontier")
	}
}

// TestScannerRunMalformedBlockIsFatal ensures a structurally broken block
// aborts the scan.
func TestScannerRunMalformedBlockIsFatal(t *testing.T) {
	broken := &Block{Hash: chainhash.Hash{0x80}, ParentHash: chainhash.Hash{0xff}, Height: 0}
	ds := newFakeDataSource(0, broken)

	_, err := NewScanner(ds).Run(0)
	var malformedErr MalformedBlockError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("Run: got %v, want MalformedBlockError", err)
	}
}
