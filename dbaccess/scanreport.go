package dbaccess

import (
	"encoding/json"

	"github.com/forkscan/forkscand/consensus"
	"github.com/forkscan/forkscand/util/chainhash"
	"github.com/pkg/errors"
)

var scanReportPrefix = []byte("scan-report:")

func scanReportKey(tipHash *chainhash.Hash) []byte {
	key := make([]byte, 0, len(scanReportPrefix)+chainhash.HashSize)
	key = append(key, scanReportPrefix...)
	return append(key, tipHash[:]...)
}

// StoreScanReport stores a finished scan report keyed by its selected tip.
//
// A report is immutable once written: scanning the same data again produces
// the same report, and a different report for the same tip means one of the
// runs saw corrupt data. Storing over an existing report is therefore
// rejected.
func StoreScanReport(ctx *DatabaseContext, report *consensus.ScanReport) error {
	exists, err := HasScanReport(ctx, &report.TipHash)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("a scan report for tip %s already exists", report.TipHash)
	}

	serialized, err := json.Marshal(report)
	if err != nil {
		return errors.Wrapf(err, "couldn't serialize the scan report for tip %s",
			report.TipHash)
	}

	return ctx.db.Put(scanReportKey(&report.TipHash), serialized)
}

// HasScanReport returns whether a scan report for the given tip has been
// previously stored.
func HasScanReport(ctx *DatabaseContext, tipHash *chainhash.Hash) (bool, error) {
	return ctx.db.Has(scanReportKey(tipHash))
}

// FetchScanReport retrieves the scan report previously stored for the given
// tip. It returns an error if no such report exists.
func FetchScanReport(ctx *DatabaseContext, tipHash *chainhash.Hash) (*consensus.ScanReport, error) {
	serialized, err := ctx.db.Get(scanReportKey(tipHash))
	if err != nil {
		return nil, err
	}
	if serialized == nil {
		return nil, errors.Errorf("no scan report for tip %s", tipHash)
	}

	report := &consensus.ScanReport{}
	err = json.Unmarshal(serialized, report)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't deserialize the scan report for tip %s",
			tipHash)
	}
	return report, nil
}
