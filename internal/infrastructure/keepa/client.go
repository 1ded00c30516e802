package keepa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// statsWindowDays is the stats aggregation window requested on batch fetches
const statsWindowDays = 90

// Client handles communication with the Keepa API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Keepa API client
func NewClient(apiKey, baseURL string) *Client {
	// Keepa refills tokens roughly once per minute; one request per second
	// with a small burst keeps well inside the token budget
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// FindSellerASINs queries the product finder for ASINs listed by the seller,
// optionally restricted to a category. The category restriction is a provider
// hint only; callers re-verify it after enrichment. An empty result is not an
// error.
func (c *Client) FindSellerASINs(ctx context.Context, sellerID string, marketplace domain.Marketplace, maxResults int, categoryID *int64) ([]string, error) {
	selection := finderRequest{
		SellerIDs: []string{sellerID},
		PageSize:  maxResults,
	}
	if categoryID != nil {
		selection.Categories = []int64{*categoryID}
	}

	body, err := json.Marshal(selection)
	if err != nil {
		return nil, fmt.Errorf("failed to encode finder selection: %w", err)
	}

	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("domain", strconv.Itoa(marketplace.KeepaDomainID()))
	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	var finderResp finderResponse
	if err := c.doJSON(ctx, http.MethodPost, reqURL, body, &finderResp); err != nil {
		return nil, err
	}

	asins := finderResp.ASINList
	if len(asins) > maxResults {
		asins = asins[:maxResults]
	}

	log.Debug().
		Str("seller", sellerID).
		Str("marketplace", marketplace.String()).
		Int("asins", len(asins)).
		Msg("keepa: product finder query complete")

	return asins, nil
}

// FetchProducts batch-fetches raw snapshots for the ASINs and runs each
// through the extractor. Snapshots without a stable identifier are skipped
// silently; only a total provider failure is an error. Empty input yields
// empty output without a remote call.
func (c *Client) FetchProducts(ctx context.Context, asins []string, marketplace domain.Marketplace) ([]domain.ProductRecord, error) {
	if len(asins) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("domain", strconv.Itoa(marketplace.KeepaDomainID()))
	params.Add("asin", strings.Join(asins, ","))
	params.Add("stats", strconv.Itoa(statsWindowDays))
	params.Add("rating", "1")
	reqURL := fmt.Sprintf("%s/product?%s", c.baseURL, params.Encode())

	var productResp productResponse
	if err := c.doJSON(ctx, http.MethodGet, reqURL, nil, &productResp); err != nil {
		return nil, err
	}

	records := make([]domain.ProductRecord, 0, len(productResp.Products))
	for _, raw := range productResp.Products {
		record, ok := ExtractProduct(raw)
		if !ok {
			log.Debug().Msg("keepa: skipping snapshot without ASIN")
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// CategoryName looks up the display name for a category id. A category absent
// from the response returns an empty name with no error; callers decide on a
// placeholder.
func (c *Client) CategoryName(ctx context.Context, categoryID int64, marketplace domain.Marketplace) (string, error) {
	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("domain", strconv.Itoa(marketplace.KeepaDomainID()))
	params.Add("category", strconv.FormatInt(categoryID, 10))
	reqURL := fmt.Sprintf("%s/category?%s", c.baseURL, params.Encode())

	var categoryResp categoryResponse
	if err := c.doJSON(ctx, http.MethodGet, reqURL, nil, &categoryResp); err != nil {
		return "", err
	}

	entry, ok := categoryResp.Categories[strconv.FormatInt(categoryID, 10)]
	if !ok {
		return "", nil
	}
	return entry.Name, nil
}

// doJSON executes a single request attempt and decodes the JSON response into
// out. Transport failures and non-200 responses wrap ErrCatalogAPIFailure.
func (c *Client) doJSON(ctx context.Context, method, reqURL string, body []byte, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "gocompare/1.1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().Int("status", resp.StatusCode).Str("body", string(detail)).Msg("keepa: API error")
		return fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
