package consensus

import (
	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

// NodeDataSource supplies chain data on demand. It is implemented by the
// rpcclient package against a live node and by fakes in tests.
//
// All methods block until the node answers. Any error is fatal to the scan:
// the scanner needs a contiguous, fully resolved height range, so there is
// no retry or partial-result path. Retrying belongs to the caller, outside
// the scan.
type NodeDataSource interface {
	// GetChainHeight returns the node's current best known height.
	GetChainHeight() (uint64, error)

	// GetBlockHashesAtHeight returns the hashes of every candidate block
	// the node knows at the given height. Zero candidates is a gap, one
	// is the common case, and more than one signifies a fork.
	GetBlockHashesAtHeight(height uint64) ([]chainhash.Hash, error)

	// GetBlock fetches the full block for the given hash. An unknown
	// hash is an error.
	GetBlock(hash *chainhash.Hash) (*Block, error)
}

// ScanReport is the outcome of a completed scan: the canonical chain picked
// from the surviving branches, and every block rejected along the way.
type ScanReport struct {
	// StartHeight is the first height that was examined.
	StartHeight uint64 `json:"startHeight"`

	// TipHash is the hash of the selected best tip.
	TipHash chainhash.Hash `json:"tipHash"`

	// TipHeight is the height of the selected best tip.
	TipHeight uint64 `json:"tipHeight"`

	// ValidChain lists the hashes of the selected chain in chronological
	// order, from the earliest surviving ancestor within the scanned
	// range up to and including TipHash.
	ValidChain []chainhash.Hash `json:"validChain"`

	// Invalid lists every rejected block, sorted by hash string.
	Invalid []chainhash.Hash `json:"invalid"`
}

// Scanner drives a fork-aware validation scan over a NodeDataSource.
type Scanner struct {
	dataSource NodeDataSource
}

// NewScanner returns a Scanner reading from the given data source.
func NewScanner(dataSource NodeDataSource) *Scanner {
	return &Scanner{dataSource: dataSource}
}

// Run scans every height from startHeight up to the node's current chain
// height, validates each candidate block, tracks the surviving branches, and
// returns the selected canonical chain together with the rejected set.
//
// The scan is synchronous and single-threaded. Heights are resolved in
// strictly increasing order because a candidate's fate depends on its
// parent's status having been settled at the previous height. Tracker state
// is created here and never escapes, so concurrent Run calls on the same
// Scanner are independent.
//
// Run either returns a complete report or an error; there are no partial
// results. Data-source failures and malformed blocks abort the scan, and an
// empty frontier after a completed scan surfaces as ErrEmptyFrontier.
func (s *Scanner) Run(startHeight uint64) (*ScanReport, error) {
	chainHeight, err := s.dataSource.GetChainHeight()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't fetch the chain height")
	}
	log.Infof("Scanning heights %d to %d", startHeight, chainHeight)

	tracker := NewForkTracker()
	for height := startHeight; height <= chainHeight; height++ {
		hashes, err := s.dataSource.GetBlockHashesAtHeight(height)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't fetch block hashes at height %d", height)
		}
		if len(hashes) > 1 {
			log.Infof("Fork detected at height %d: %d candidate blocks", height, len(hashes))
		}

		for i := range hashes {
			block, err := s.dataSource.GetBlock(&hashes[i])
			if err != nil {
				return nil, errors.Wrapf(err, "couldn't fetch block %s", hashes[i])
			}
			err = tracker.ProcessCandidate(block)
			if err != nil {
				return nil, err
			}
		}
	}

	bestTip, err := tracker.SelectBestTip()
	if err != nil {
		return nil, err
	}
	log.Infof("Selected tip %s at height %d (%d live tips, %d invalid blocks)",
		bestTip.Hash, bestTip.Height, tracker.TipCount(), tracker.InvalidCount())

	return &ScanReport{
		StartHeight: startHeight,
		TipHash:     bestTip.Hash,
		TipHeight:   bestTip.Height,
		ValidChain:  tracker.ReconstructChain(bestTip),
		Invalid:     tracker.invalidHashes(),
	}, nil
}
