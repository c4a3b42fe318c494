package yahooapi

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Quote is one symbol's fundamentals snapshot as the API returns it.
// Pointer fields are absent when the provider has no value.
type Quote struct {
	Symbol              string   `json:"symbol"`
	ShortName           *string  `json:"shortName"`
	Currency            *string  `json:"currency"`
	TotalRevenue        *float64 `json:"totalRevenue"`
	MarketCap           *float64 `json:"marketCap"`
	FreeCashflow        *float64 `json:"freeCashflow"`
	GrossMargins        *float64 `json:"grossMargins"`
	EbitMargins         *float64 `json:"ebitMargins"`
	OperatingMargins    *float64 `json:"operatingMargins"`
	EbitdaMargins       *float64 `json:"ebitdaMargins"`
	TrailingPE          *float64 `json:"trailingPE"`
	EnterpriseToEbitda  *float64 `json:"enterpriseToEbitda"`
	EnterpriseToRevenue *float64 `json:"enterpriseToRevenue"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []Quote `json:"result"`
		Error  *string `json:"error"`
	} `json:"quoteResponse"`
}

// GetQuotes fetches fundamentals for the given symbols in one or more
// batch requests. Symbols missing from the response are simply absent
// from the result; that is not an error.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	batches := chunkStrings(symbols, c.batchSize)
	if len(batches) == 1 {
		return c.getQuoteBatch(ctx, batches[0])
	}

	maxConc := c.maxConcurrency
	if maxConc <= 0 {
		maxConc = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConc)

	var mu sync.Mutex
	out := make([]Quote, 0, len(symbols))
	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			quotes, err := c.getQuoteBatch(gctx, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, quotes...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Partial results are worth more than the error here; callers
		// treat missing symbols as null fields anyway.
		if len(out) > 0 {
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) getQuoteBatch(ctx context.Context, symbols []string) ([]Quote, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))

	var resp quoteResponse
	if err := c.getJSON(ctx, "/v7/finance/quote", params, &resp); err != nil {
		return nil, err
	}
	return resp.QuoteResponse.Result, nil
}

func chunkStrings(in []string, size int) [][]string {
	if size <= 0 || len(in) <= size {
		return [][]string{in}
	}
	out := make([][]string, 0, (len(in)+size-1)/size)
	for i := 0; i < len(in); i += size {
		j := i + size
		if j > len(in) {
			j = len(in)
		}
		out = append(out, in[i:j])
	}
	return out
}
