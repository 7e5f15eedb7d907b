package consensus

const (
	// satoshiPerBitcoin is the number of satoshi in one bitcoin (1 BTC).
	satoshiPerBitcoin = 100000000

	// baseSubsidy is the starting subsidy amount for mined blocks. This
	// value is halved every SubsidyReductionInterval blocks.
	baseSubsidy = 50 * satoshiPerBitcoin

	// SubsidyReductionInterval is the interval of blocks before the
	// subsidy is reduced by half.
	SubsidyReductionInterval = 210000

	// subsidyEras is the number of halvings after which the subsidy is
	// zero regardless of the shifted value. Truncation already reaches
	// zero several eras earlier; the cutoff makes the bound explicit.
	subsidyEras = 64
)

// CalcBlockSubsidy returns the subsidy amount a block at the provided height
// should have. This is mainly used for validating that the coinbase for
// scanned blocks claims the expected value.
//
// The subsidy is halved every SubsidyReductionInterval blocks. Mathematically
// this is: baseSubsidy / 2^(height/SubsidyReductionInterval)
func CalcBlockSubsidy(height uint64) uint64 {
	era := height / SubsidyReductionInterval
	if era >= subsidyEras {
		return 0
	}

	// Equivalent to: baseSubsidy / 2^era
	return baseSubsidy >> era
}
