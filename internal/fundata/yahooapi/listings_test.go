package yahooapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sectorscreen/internal/fundata/yahooapi"
)

func TestGetSectorIndustries(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: request path includes the escaped sector key
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equalf(t, "/v1/finance/sectors/basic-materials", req.URL.Path, "unexpected path: %s", req.URL.Path)
			return jsonResponse(t, map[string]any{
				"sector": map[string]any{
					"key": "basic-materials",
					"industries": []map[string]any{
						{"key": "gold", "name": "Gold"},
						{"key": "specialty-chemicals", "name": "Specialty Chemicals"},
					},
				},
			}), nil
		}).
		Times(1)

	client := yahooapi.NewClient(yahooapi.WithHTTPClient(httpClient))

	// Act
	industries, err := client.GetSectorIndustries(context.Background(), "basic-materials")

	// Assert
	require.NoError(t, err)
	require.Len(t, industries, 2)
	require.Equal(t, yahooapi.Industry{Key: "gold", Name: "Gold"}, industries[0])
}

func TestGetIndustryCompanies(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: request path carries industry key and view
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equalf(t, "/v1/finance/industries/gold/top-companies", req.URL.Path, "unexpected path: %s", req.URL.Path)
			return jsonResponse(t, map[string]any{
				"industry": map[string]any{
					"key": "gold",
					"companies": []map[string]any{
						{"symbol": "NEM", "name": "Newmont", "rating": "Buy", "marketWeight": 0.31},
						{"symbol": "GOLD", "name": "Barrick"},
					},
				},
			}), nil
		}).
		Times(1)

	client := yahooapi.NewClient(yahooapi.WithHTTPClient(httpClient))

	// Act
	companies, err := client.GetIndustryCompanies(context.Background(), "gold", "top-companies")

	// Assert
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "NEM", companies[0].Symbol)
	require.Equal(t, "Buy", companies[0].Rating)
	require.NotNil(t, companies[0].MarketWeight)
	require.InDelta(t, 0.31, *companies[0].MarketWeight, 1e-9)
	require.Nil(t, companies[1].MarketWeight)
}

func TestGetSectorIndustries_Error(t *testing.T) {
	t.Parallel()

	// Arrange: upstream responds 404 for an unknown sector
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: http.StatusNotFound,
			Body:       http.NoBody,
		}, nil).
		Times(1)

	client := yahooapi.NewClient(yahooapi.WithHTTPClient(httpClient))

	// Act
	industries, err := client.GetSectorIndustries(context.Background(), "no-such-sector")

	// Assert
	require.ErrorContainsf(t, err, "not found", "unexpected error: %v", err)
	require.Nil(t, industries)
}
