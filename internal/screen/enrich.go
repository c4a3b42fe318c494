package screen

import (
	"context"

	"github.com/sirupsen/logrus"

	"sectorscreen/internal/fundata"
)

// Enricher turns symbol requests into canonical records by fetching
// fundamentals from its source.
type Enricher struct {
	Source fundata.Source
	Log    logrus.FieldLogger
}

// Enrich fetches fundamentals for all distinct symbols in one batched
// provider call and builds one record per request, in request order.
// A fetch failure degrades to null-field records; a symbol the
// provider knows nothing about never drops its row.
func (e *Enricher) Enrich(ctx context.Context, reqs []fundata.SymbolRequest) Table {
	if len(reqs) == 0 {
		return Table{}
	}

	// distinct symbols, request order preserved
	seen := make(map[string]struct{}, len(reqs))
	symbols := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if _, ok := seen[req.Symbol]; ok {
			continue
		}
		seen[req.Symbol] = struct{}{}
		symbols = append(symbols, req.Symbol)
	}

	funds, err := e.Source.FetchFundamentals(ctx, symbols)
	if err != nil {
		if e.Log != nil {
			e.Log.WithError(err).WithField("symbols", len(symbols)).
				Warn("fundamentals fetch failed; emitting null-field records")
		}
		funds = map[string]fundata.RawFundamentals{}
	}

	out := make(Table, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, buildRecord(req, funds[req.Symbol]))
	}
	return out
}

// buildRecord assembles one canonical record. The zero RawFundamentals
// (all pointers nil) covers the missing-provider-entry case for free.
func buildRecord(req fundata.SymbolRequest, raw fundata.RawFundamentals) Record {
	name := req.Name
	if name == "" && raw.ShortName != nil {
		name = *raw.ShortName
	}
	var namePtr *string
	if name != "" {
		namePtr = &name
	}

	currency := ReferenceCurrency
	if raw.Currency != nil && *raw.Currency != "" {
		currency = *raw.Currency
	}

	revenue := toMillions(raw.TotalRevenue, currency)
	marketCap := toMillions(raw.MarketCap, currency)
	freeCashflow := toMillions(raw.FreeCashflow, currency)

	return Record{
		Name:         namePtr,
		Ticker:       req.Symbol,
		Revenue:      round2(revenue),
		MarketCap:    round2(marketCap),
		GrossMargin:  round2(percentOf(raw.GrossMargins)),
		EBITMargin:   round2(ebitMargin(raw)),
		EBITDAMargin: round2(percentOf(raw.EBITDAMargins)),
		TrailingPE:   round2(raw.TrailingPE),
		EVToEBITDA:   round2(raw.EnterpriseToEBITDA),
		EVToSales:    round2(raw.EnterpriseToRevenue),
		PriceToFCF:   round2(priceToFCF(marketCap, freeCashflow)),
		// input weight is a fraction; converted to percent exactly once, here
		MarketWeight: round2(percentOf(req.MarketWeight)),
		Industry:     req.Industry,
		Rating:       req.Rating,
	}
}

// toMillions converts a raw monetary value into millions of the
// reference currency.
func toMillions(v *float64, currency string) *float64 {
	if v == nil {
		return nil
	}
	m := ToReference(*v, currency) / 1_000_000
	return &m
}
