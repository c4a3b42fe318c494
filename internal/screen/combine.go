package screen

import (
	"context"

	"github.com/sirupsen/logrus"

	"sectorscreen/internal/fundata"
)

// Industry pairs an industry display name with its provider key.
type Industry struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// IndustryGroup is one industry's listing rows under its display label.
type IndustryGroup struct {
	Label string
	Rows  []fundata.SymbolRequest
}

// CompanyListing is the explicit outcome of one industry listing fetch,
// so "provider returned nothing" is distinguishable from "not asked".
type CompanyListing struct {
	OK   bool
	Rows []fundata.SymbolRequest
}

// ListingOf classifies a ListCompanies result. Errors and empty
// listings both collapse to a not-OK outcome; the pipeline treats them
// as zero rows rather than faults.
func ListingOf(rows []fundata.SymbolRequest, err error) CompanyListing {
	if err != nil || len(rows) == 0 {
		return CompanyListing{}
	}
	return CompanyListing{OK: true, Rows: rows}
}

// GatherIndustries fetches each industry's company listing and returns
// the non-empty groups in selection order. Failed or empty listings
// contribute zero rows.
func GatherIndustries(ctx context.Context, src fundata.Source, industries []Industry, mode fundata.Mode, log logrus.FieldLogger) []IndustryGroup {
	groups := make([]IndustryGroup, 0, len(industries))
	for _, ind := range industries {
		rows, err := src.ListCompanies(ctx, ind.Key, mode)
		listing := ListingOf(rows, err)
		if !listing.OK {
			if err != nil && log != nil {
				log.WithError(err).WithField("industry", ind.Name).
					Warn("industry listing failed; skipping")
			}
			continue
		}
		groups = append(groups, IndustryGroup{Label: ind.Name, Rows: listing.Rows})
	}
	return groups
}

// Combine concatenates the groups' rows, stamping each row with its
// group's industry label. Group order and within-group order are
// preserved; duplicate symbols across industries are kept on purpose,
// since one company can appear under several listings.
func Combine(groups []IndustryGroup) []fundata.SymbolRequest {
	n := 0
	for _, g := range groups {
		n += len(g.Rows)
	}
	out := make([]fundata.SymbolRequest, 0, n)
	for _, g := range groups {
		for _, row := range g.Rows {
			row.Industry = g.Label
			out = append(out, row)
		}
	}
	return out
}

// UploadRequests builds bare requests from uploaded ticker symbols.
// Only Symbol is populated; industry, rating and weight stay absent.
func UploadRequests(symbols []string) []fundata.SymbolRequest {
	out := make([]fundata.SymbolRequest, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, fundata.SymbolRequest{Symbol: s})
	}
	return out
}

// AppendMerge appends the uploaded rows to the existing table as-is:
// existing rows are untouched, nothing is re-enriched or de-duplicated.
// Callers reapply the canonical sort afterwards.
func AppendMerge(existing, uploaded Table) Table {
	out := make(Table, 0, len(existing)+len(uploaded))
	out = append(out, existing...)
	out = append(out, uploaded...)
	return out
}
