package screen

import (
	"context"
	"errors"
	"testing"

	"sectorscreen/internal/fundata"
)

func TestScreen_EndToEnd(t *testing.T) {
	src := &fakeSource{
		listings: map[string][]fundata.SymbolRequest{
			"semiconductors": {{Symbol: "NVDA", Rating: "Buy"}, {Symbol: "INTC", Rating: "Hold"}},
			"software":       {{Symbol: "MSFT", Rating: "Buy"}},
		},
		listErr: map[string]error{"broken": errors.New("listing unavailable")},
		funds: map[string]fundata.RawFundamentals{
			"NVDA": {MarketCap: fptr(3_000_000_000_000)},
			"INTC": {MarketCap: fptr(100_000_000_000)},
			"MSFT": {MarketCap: fptr(2_800_000_000_000)},
		},
	}
	e := &Enricher{Source: src}

	out := e.Screen(context.Background(), []Industry{
		{Name: "Semiconductors", Key: "semiconductors"},
		{Name: "Broken", Key: "broken"},
		{Name: "Software", Key: "software"},
	}, fundata.ModeTopCompanies, Filter{Ratings: []string{"Buy"}})

	if got := tickers(out); !sameTickers(got, "NVDA", "MSFT") {
		t.Fatalf("screen = %v, want [NVDA MSFT]", got)
	}
	if out[0].Industry != "Semiconductors" || out[1].Industry != "Software" {
		t.Fatalf("industry labels: %q, %q", out[0].Industry, out[1].Industry)
	}
}

func TestScreen_NoListingsYieldsEmptyTable(t *testing.T) {
	src := &fakeSource{listErr: map[string]error{"x": errors.New("down")}}
	e := &Enricher{Source: src}

	out := e.Screen(context.Background(), []Industry{{Name: "X", Key: "x"}}, fundata.ModeTopCompanies, Filter{})
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil table, got %#v", out)
	}
	if src.fetchCalls != 0 {
		t.Fatalf("no rows must mean no fundamentals fetch, got %d calls", src.fetchCalls)
	}
}

func TestScreenSymbols_SortsUploadedRows(t *testing.T) {
	src := &fakeSource{funds: map[string]fundata.RawFundamentals{
		"SMALL": {MarketCap: fptr(500_000_000)},
		"BIG":   {MarketCap: fptr(5_000_000_000)},
	}}
	e := &Enricher{Source: src}

	out := e.ScreenSymbols(context.Background(), []string{"SMALL", "BIG", "NODATA"})
	if got := tickers(out); !sameTickers(got, "BIG", "SMALL", "NODATA") {
		t.Fatalf("uploaded screen = %v, want [BIG SMALL NODATA]", got)
	}
}

func TestScreenSymbols_Empty(t *testing.T) {
	e := &Enricher{Source: &fakeSource{}}
	if out := e.ScreenSymbols(context.Background(), nil); len(out) != 0 {
		t.Fatalf("want empty table, got %d rows", len(out))
	}
}
