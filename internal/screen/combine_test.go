package screen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sectorscreen/internal/fundata"
)

func TestCombine_StampsLabelsAndPreservesOrder(t *testing.T) {
	groups := []IndustryGroup{
		{Label: "Semiconductors", Rows: []fundata.SymbolRequest{{Symbol: "NVDA"}, {Symbol: "AVGO"}}},
		{Label: "Software", Rows: []fundata.SymbolRequest{{Symbol: "MSFT"}, {Symbol: "NVDA"}}},
	}
	out := Combine(groups)
	if len(out) != 4 {
		t.Fatalf("want 4 rows, got %d", len(out))
	}
	wantSymbols := []string{"NVDA", "AVGO", "MSFT", "NVDA"}
	wantLabels := []string{"Semiconductors", "Semiconductors", "Software", "Software"}
	for i := range out {
		if out[i].Symbol != wantSymbols[i] || out[i].Industry != wantLabels[i] {
			t.Fatalf("row %d = %+v, want %s/%s", i, out[i], wantSymbols[i], wantLabels[i])
		}
	}
}

func TestCombine_EmptyGroupsContributeNothing(t *testing.T) {
	groups := []IndustryGroup{
		{Label: "Empty"},
		{Label: "Gold", Rows: []fundata.SymbolRequest{{Symbol: "NEM"}}},
	}
	out := Combine(groups)
	if len(out) != 1 || out[0].Symbol != "NEM" || out[0].Industry != "Gold" {
		t.Fatalf("unexpected: %+v", out)
	}
	if got := Combine(nil); len(got) != 0 {
		t.Fatalf("no groups must combine to zero rows, got %d", len(got))
	}
}

func TestListingOf(t *testing.T) {
	rows := []fundata.SymbolRequest{{Symbol: "X"}}
	if l := ListingOf(rows, nil); !l.OK || len(l.Rows) != 1 {
		t.Fatalf("want OK listing, got %+v", l)
	}
	if l := ListingOf(rows, errors.New("boom")); l.OK {
		t.Fatalf("errored listing must not be OK")
	}
	if l := ListingOf(nil, nil); l.OK {
		t.Fatalf("empty listing must not be OK")
	}
}

func TestGatherIndustries_SkipsFailedAndEmpty(t *testing.T) {
	src := &fakeSource{
		listings: map[string][]fundata.SymbolRequest{
			"gold": {{Symbol: "NEM"}, {Symbol: "GOLD"}},
			"dry":  {},
		},
		listErr: map[string]error{"broken": errors.New("upstream 500")},
	}
	groups := GatherIndustries(context.Background(), src, []Industry{
		{Name: "Gold", Key: "gold"},
		{Name: "Broken", Key: "broken"},
		{Name: "Dry", Key: "dry"},
	}, fundata.ModeTopCompanies, nil)

	if len(groups) != 1 || groups[0].Label != "Gold" || len(groups[0].Rows) != 2 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestUploadRequests_SymbolOnly(t *testing.T) {
	out := UploadRequests([]string{"AAPL", "MSFT"})
	if len(out) != 2 {
		t.Fatalf("want 2 requests, got %d", len(out))
	}
	for _, r := range out {
		if r.Name != "" || r.Industry != "" || r.Rating != "" || r.MarketWeight != nil {
			t.Fatalf("upload request must carry only the symbol: %+v", r)
		}
	}
}

func TestAppendMerge_ExistingRowsUntouched(t *testing.T) {
	existing := make(Table, 0, 10)
	for i := 0; i < 10; i++ {
		existing = append(existing, Record{
			Ticker:    fmt.Sprintf("T%02d", i),
			MarketCap: fptr(float64(1000 - i)),
			Industry:  "Original",
			Rating:    "Buy",
		})
	}
	snapshot := append(Table(nil), existing...)

	src := &fakeSource{funds: map[string]fundata.RawFundamentals{
		"U1": {MarketCap: fptr(5_000_000)},
		"U2": {MarketCap: fptr(7_000_000)},
	}}
	e := &Enricher{Source: src}
	uploaded := e.Enrich(context.Background(), UploadRequests([]string{"U1", "U2", "U3"}))

	merged := AppendMerge(existing, uploaded)
	if len(merged) != 13 {
		t.Fatalf("want 13 rows, got %d", len(merged))
	}
	for i := range snapshot {
		if merged[i] != snapshot[i] {
			t.Fatalf("existing row %d changed: %+v vs %+v", i, merged[i], snapshot[i])
		}
	}
	for _, r := range merged[10:] {
		if r.Industry != "" || r.Rating != "" || r.MarketWeight != nil {
			t.Fatalf("uploaded row must have empty industry/rating/weight: %+v", r)
		}
	}
	if merged[12].Ticker != "U3" || merged[12].MarketCap != nil {
		t.Fatalf("symbol without provider data must still be appended: %+v", merged[12])
	}
}
