package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tickermatch/internal/matcher"
)

// DefaultBaseURL is the Alpha Vantage API root.
const DefaultBaseURL = "https://www.alphavantage.co"

// ListingClient fetches the active listing table from Alpha Vantage.
type ListingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewListingClient creates a listing client. baseURL may be empty to use the
// production endpoint.
func NewListingClient(apiKey, baseURL string) *ListingClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ListingClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchListings downloads the LISTING_STATUS CSV and parses it into raw
// reference entries. No filtering happens here; the corpus preparer decides
// what is matchable.
func (c *ListingClient) FetchListings(ctx context.Context) ([]matcher.Entry, error) {
	query := url.Values{}
	query.Set("function", "LISTING_STATUS")
	query.Set("apikey", c.apiKey)
	endpoint := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing request returned status %d", resp.StatusCode)
	}

	return parseListingCSV(resp.Body)
}

// parseListingCSV reads the listing table, locating the symbol, name and
// assetType columns by header so column reordering upstream does not break
// the parse. Rows missing a required field are skipped.
func parseListingCSV(r io.Reader) ([]matcher.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read listing header: %w", err)
	}

	symbolIdx, nameIdx, typeIdx := -1, -1, -1
	for i, column := range header {
		switch column {
		case "symbol":
			symbolIdx = i
		case "name":
			nameIdx = i
		case "assetType":
			typeIdx = i
		}
	}
	if symbolIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("listing header missing symbol/name columns: %v", header)
	}

	var entries []matcher.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read listing row: %w", err)
		}
		if symbolIdx >= len(record) || nameIdx >= len(record) {
			continue
		}

		entry := matcher.Entry{
			Ticker: record[symbolIdx],
			Title:  record[nameIdx],
		}
		if typeIdx >= 0 && typeIdx < len(record) {
			entry.AssetType = record[typeIdx]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
