package yahooadapter

import (
	"context"
	"fmt"

	"sectorscreen/internal/fundata"
	"sectorscreen/internal/fundata/yahooapi"
)

type Config struct {
	Name string // display name, default: YahooFinance
}

// Adapter exposes the raw API client as a fundata.Source.
type Adapter struct {
	cfg    Config
	client *yahooapi.Client
}

func New(cfg Config, client *yahooapi.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "YahooFinance"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) ListIndustries(ctx context.Context, sectorKey string) (map[string]string, error) {
	industries, err := a.client.GetSectorIndustries(ctx, sectorKey)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(industries))
	for _, ind := range industries {
		if ind.Name == "" || ind.Key == "" {
			continue
		}
		out[ind.Name] = ind.Key
	}
	return out, nil
}

func (a *Adapter) ListCompanies(ctx context.Context, industryKey string, mode fundata.Mode) ([]fundata.SymbolRequest, error) {
	// Closed enum dispatch: the valid view set stays statically checkable.
	var view string
	switch mode {
	case fundata.ModeTopCompanies:
		view = "top-companies"
	case fundata.ModeTopGrowth:
		view = "top-growth-companies"
	case fundata.ModeTopPerforming:
		view = "top-performing-companies"
	default:
		return nil, fmt.Errorf("unknown listing mode %q", mode)
	}

	companies, err := a.client.GetIndustryCompanies(ctx, industryKey, view)
	if err != nil {
		return nil, err
	}
	out := make([]fundata.SymbolRequest, 0, len(companies))
	for _, co := range companies {
		if co.Symbol == "" {
			continue
		}
		out = append(out, fundata.SymbolRequest{
			Symbol:       co.Symbol,
			Name:         co.Name,
			MarketWeight: co.MarketWeight,
			Rating:       co.Rating,
		})
	}
	return out, nil
}

func (a *Adapter) FetchFundamentals(ctx context.Context, symbols []string) (map[string]fundata.RawFundamentals, error) {
	quotes, err := a.client.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}
	out := make(map[string]fundata.RawFundamentals, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" {
			continue
		}
		out[q.Symbol] = fundata.RawFundamentals{
			ShortName:           q.ShortName,
			Currency:            q.Currency,
			TotalRevenue:        q.TotalRevenue,
			MarketCap:           q.MarketCap,
			FreeCashflow:        q.FreeCashflow,
			GrossMargins:        q.GrossMargins,
			EBITMargins:         q.EbitMargins,
			OperatingMargins:    q.OperatingMargins,
			EBITDAMargins:       q.EbitdaMargins,
			TrailingPE:          q.TrailingPE,
			EnterpriseToEBITDA:  q.EnterpriseToEbitda,
			EnterpriseToRevenue: q.EnterpriseToRevenue,
		}
	}
	return out, nil
}
