package optisage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	"github.com/rs/zerolog/log"
)

// eligibilityPath is the seller eligibility endpoint
const eligibilityPath = "/api/go-compare/seller-eligibility"

// Client handles communication with the OptiSage eligibility API
type Client struct {
	httpClient  *http.Client
	bearerToken string
	baseURL     string
}

// NewClient creates a new OptiSage API client
func NewClient(bearerToken, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		bearerToken: bearerToken,
		baseURL:     baseURL,
	}
}

// eligibilityRequest is the provider payload for a batched eligibility check
type eligibilityRequest struct {
	AmazonSellerID string   `json:"amazon_seller_id"`
	MarketplaceID  int      `json:"marketplace_id"`
	ASINs          []string `json:"asins"`
}

// CheckSellerEligibility submits the ASIN list for the seller and returns the
// per-ASIN verdicts. Eligibility is a best-effort annotation: missing
// credentials, transport failures and non-200 responses all come back as
// OK=false rather than a Go error, so they can never abort the pipeline.
func (c *Client) CheckSellerEligibility(ctx context.Context, sellerID string, asins []string, marketplace domain.Marketplace) domain.EligibilityResult {
	if c.bearerToken == "" {
		return domain.EligibilityResult{ErrorReason: "No eligibility token provided"}
	}

	payload := eligibilityRequest{
		AmazonSellerID: sellerID,
		MarketplaceID:  marketplace.AmazonMarketplaceID(),
		ASINs:          asins,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.EligibilityResult{ErrorReason: fmt.Sprintf("Request failed: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eligibilityPath, bytes.NewReader(body))
	if err != nil {
		return domain.EligibilityResult{ErrorReason: fmt.Sprintf("Request failed: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("seller", sellerID).Msg("optisage: request failed")
		return domain.EligibilityResult{ErrorReason: fmt.Sprintf("Request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn().Int("status", resp.StatusCode).Str("seller", sellerID).Msg("optisage: API error")
		return domain.EligibilityResult{
			ErrorReason: fmt.Sprintf("API Error %d", resp.StatusCode),
			RawDetail:   string(detail),
		}
	}

	// The provider body is a bare JSON array of per-ASIN entries, not an
	// envelope object
	var items []domain.EligibilityItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return domain.EligibilityResult{ErrorReason: fmt.Sprintf("Failed to decode response: %v", err)}
	}

	return domain.EligibilityResult{OK: true, Items: items}
}
