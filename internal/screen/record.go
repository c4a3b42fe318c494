package screen

import (
	"github.com/shopspring/decimal"
)

// Record is one canonical output row. Nullable numeric fields use
// pointers; nil means the provider had no value, never zero. Records
// are built once per enrichment pass and not mutated afterwards;
// filter, sort and merge produce new tables.
type Record struct {
	Name         *string  `json:"name"`
	Ticker       string   `json:"ticker"`
	Revenue      *float64 `json:"revenue_m"`    // millions, reference currency
	MarketCap    *float64 `json:"market_cap_m"` // millions, reference currency
	GrossMargin  *float64 `json:"gross_margin_pct"`
	EBITMargin   *float64 `json:"ebit_margin_pct"`
	EBITDAMargin *float64 `json:"ebitda_margin_pct"`
	TrailingPE   *float64 `json:"pe"`
	EVToEBITDA   *float64 `json:"ev_to_ebitda"`
	EVToSales    *float64 `json:"ev_to_sales"`
	PriceToFCF   *float64 `json:"p_fcf"`
	MarketWeight *float64 `json:"market_weight_pct"`
	Industry     string   `json:"industry"`
	Rating       string   `json:"rating"`
}

// Table is an ordered list of records.
type Table []Record

// Column display names, in the fixed output order. Columns are always
// emitted in full, even when a field is null across the whole table.
const (
	ColName         = "Name"
	ColTicker       = "Ticker"
	ColRevenue      = "Revenue (M USD)"
	ColMarketCap    = "Market Cap (M USD)"
	ColGrossMargin  = "Gross Margin (%)"
	ColEBITMargin   = "EBIT Margin (%)"
	ColEBITDAMargin = "EBITDA Margin (%)"
	ColPE           = "P/E"
	ColEVToEBITDA   = "EV/EBITDA"
	ColEVToSales    = "EV/Sales"
	ColPFCF         = "P/FCF"
	ColMarketWeight = "Market Weight (%)"
	ColIndustry     = "Industry"
	ColRating       = "Rating"
)

// Columns returns the fixed column order.
func Columns() []string {
	return []string{
		ColName, ColTicker, ColRevenue, ColMarketCap, ColGrossMargin,
		ColEBITMargin, ColEBITDAMargin, ColPE, ColEVToEBITDA, ColEVToSales,
		ColPFCF, ColMarketWeight, ColIndustry, ColRating,
	}
}

// GradientColumns are styled with a direct color scale (higher is better).
func GradientColumns() []string {
	return []string{ColGrossMargin, ColEBITMargin, ColEBITDAMargin}
}

// InverseGradientColumns are styled with an inverse scale (lower is better).
func InverseGradientColumns() []string {
	return []string{ColPE, ColEVToEBITDA, ColEVToSales, ColPFCF}
}

// Values returns the record's cells in column order. Nil entries stand
// for missing values.
func (r Record) Values() []any {
	return []any{
		strCell(r.Name),
		r.Ticker,
		numCell(r.Revenue),
		numCell(r.MarketCap),
		numCell(r.GrossMargin),
		numCell(r.EBITMargin),
		numCell(r.EBITDAMargin),
		numCell(r.TrailingPE),
		numCell(r.EVToEBITDA),
		numCell(r.EVToSales),
		numCell(r.PriceToFCF),
		numCell(r.MarketWeight),
		r.Industry,
		r.Rating,
	}
}

// NumericColumn returns the given numeric column's values across the
// table, nil per missing cell. Non-numeric column names return false.
func (t Table) NumericColumn(name string) ([]*float64, bool) {
	pick := func(f func(Record) *float64) []*float64 {
		out := make([]*float64, len(t))
		for i, r := range t {
			out[i] = f(r)
		}
		return out
	}
	switch name {
	case ColRevenue:
		return pick(func(r Record) *float64 { return r.Revenue }), true
	case ColMarketCap:
		return pick(func(r Record) *float64 { return r.MarketCap }), true
	case ColGrossMargin:
		return pick(func(r Record) *float64 { return r.GrossMargin }), true
	case ColEBITMargin:
		return pick(func(r Record) *float64 { return r.EBITMargin }), true
	case ColEBITDAMargin:
		return pick(func(r Record) *float64 { return r.EBITDAMargin }), true
	case ColPE:
		return pick(func(r Record) *float64 { return r.TrailingPE }), true
	case ColEVToEBITDA:
		return pick(func(r Record) *float64 { return r.EVToEBITDA }), true
	case ColEVToSales:
		return pick(func(r Record) *float64 { return r.EVToSales }), true
	case ColPFCF:
		return pick(func(r Record) *float64 { return r.PriceToFCF }), true
	case ColMarketWeight:
		return pick(func(r Record) *float64 { return r.MarketWeight }), true
	}
	return nil, false
}

func strCell(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func numCell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// round2 rounds to 2 decimals for display. decimal avoids the float
// representation artifacts a naive math.Round/100 dance produces.
func round2(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v, _ := decimal.NewFromFloat(*p).Round(2).Float64()
	return &v
}
