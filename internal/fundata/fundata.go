package fundata

import (
	"context"
	"fmt"
)

// SymbolRequest is one row of an enrichment request. Industry listings
// populate all fields; uploaded ticker lists populate Symbol only.
type SymbolRequest struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	MarketWeight *float64 `json:"market_weight,omitempty"` // fraction of industry cap in [0,1]
	Rating       string   `json:"rating,omitempty"`
}

// RawFundamentals is the per-symbol field bag returned by the data
// provider. Every field may be absent; margin fields are fractions,
// monetary fields are in the listing currency.
type RawFundamentals struct {
	ShortName           *string
	Currency            *string
	TotalRevenue        *float64
	MarketCap           *float64
	FreeCashflow        *float64
	GrossMargins        *float64
	EBITMargins         *float64
	OperatingMargins    *float64
	EBITDAMargins       *float64
	TrailingPE          *float64
	EnterpriseToEBITDA  *float64
	EnterpriseToRevenue *float64
}

// Mode selects which company listing of an industry a Source returns.
// The set is closed; dispatch is by explicit switch, never by name lookup.
type Mode string

const (
	ModeTopCompanies  Mode = "top_companies"
	ModeTopGrowth     Mode = "top_growth_companies"
	ModeTopPerforming Mode = "top_performing_companies"
)

// ParseMode validates a mode string from config, flags or request bodies.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTopCompanies, ModeTopGrowth, ModeTopPerforming:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown listing mode %q", s)
}

// Source is the market-data surface the screening pipeline consumes.
// Implementations may return empty results on upstream failure; callers
// treat empty as a valid "no data" outcome, not a fault.
type Source interface {
	Name() string
	ListIndustries(ctx context.Context, sectorKey string) (map[string]string, error)
	ListCompanies(ctx context.Context, industryKey string, mode Mode) ([]SymbolRequest, error)
	FetchFundamentals(ctx context.Context, symbols []string) (map[string]RawFundamentals, error)
}
