package yahooapi

import (
	"context"
	"fmt"
	"net/url"
)

// Industry is one industry listed under a sector.
type Industry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Company is one row of an industry company listing.
type Company struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Rating       string   `json:"rating"`
	MarketWeight *float64 `json:"marketWeight"`
}

type sectorResponse struct {
	Sector struct {
		Key        string     `json:"key"`
		Industries []Industry `json:"industries"`
	} `json:"sector"`
}

type industryResponse struct {
	Industry struct {
		Key       string    `json:"key"`
		Companies []Company `json:"companies"`
	} `json:"industry"`
}

// GetSectorIndustries lists the industries of a sector.
func (c *Client) GetSectorIndustries(ctx context.Context, sectorKey string) ([]Industry, error) {
	var resp sectorResponse
	path := fmt.Sprintf("/v1/finance/sectors/%s", url.PathEscape(sectorKey))
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sector.Industries, nil
}

// GetIndustryCompanies lists companies of an industry under a given
// view ("top-companies", "top-growth-companies", "top-performing-companies").
func (c *Client) GetIndustryCompanies(ctx context.Context, industryKey, view string) ([]Company, error) {
	var resp industryResponse
	path := fmt.Sprintf("/v1/finance/industries/%s/%s", url.PathEscape(industryKey), url.PathEscape(view))
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Industry.Companies, nil
}
