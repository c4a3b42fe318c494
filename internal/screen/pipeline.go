package screen

import (
	"context"

	"sectorscreen/internal/fundata"
)

// Screen runs one full pipeline pass: gather industry listings,
// combine, enrich, filter, canonical sort. An empty result is a valid
// "no data for this selection" state, not an error.
func (e *Enricher) Screen(ctx context.Context, industries []Industry, mode fundata.Mode, f Filter) Table {
	groups := GatherIndustries(ctx, e.Source, industries, mode, e.Log)
	reqs := Combine(groups)
	if len(reqs) == 0 {
		return Table{}
	}
	t := e.Enrich(ctx, reqs)
	t = f.Apply(t)
	return SortByMarketCap(t)
}

// ScreenSymbols runs the ad-hoc pipeline over a bare symbol list, as
// produced by an uploaded ticker file.
func (e *Enricher) ScreenSymbols(ctx context.Context, symbols []string) Table {
	reqs := UploadRequests(symbols)
	if len(reqs) == 0 {
		return Table{}
	}
	return SortByMarketCap(e.Enrich(ctx, reqs))
}
