package screen

import "sectorscreen/internal/fundata"

// percentOf converts a fraction to 0-100 percentage scale. Nil stays nil.
func percentOf(frac *float64) *float64 {
	if frac == nil {
		return nil
	}
	v := *frac * 100
	return &v
}

// ebitMargin derives the EBIT margin in percent, falling back to the
// operating margin when the primary field is absent.
func ebitMargin(raw fundata.RawFundamentals) *float64 {
	m := raw.EBITMargins
	if m == nil {
		m = raw.OperatingMargins
	}
	return percentOf(m)
}

// priceToFCF computes market cap over free cash flow. Both operands
// must already be in the same currency and scale. A nil operand or a
// zero free cash flow yields nil, never a division.
func priceToFCF(marketCap, freeCashflow *float64) *float64 {
	if marketCap == nil || freeCashflow == nil || *freeCashflow == 0 {
		return nil
	}
	v := *marketCap / *freeCashflow
	return &v
}
