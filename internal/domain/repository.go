package domain

import "context"

// CatalogProvider defines the interface for the product catalog service
// (discovery, batch detail enrichment and category naming)
type CatalogProvider interface {
	// FindSellerASINs returns up to maxResults ASINs listed by the seller, in
	// provider order. A provider-side category filter is advisory only. An
	// empty result is not an error.
	FindSellerASINs(ctx context.Context, sellerID string, marketplace Marketplace, maxResults int, categoryID *int64) ([]string, error)

	// FetchProducts batch-fetches raw snapshots for the ASINs and normalizes
	// them. Malformed snapshots are skipped, not errored.
	FetchProducts(ctx context.Context, asins []string, marketplace Marketplace) ([]ProductRecord, error)

	// CategoryName looks up the display name for a category id
	CategoryName(ctx context.Context, categoryID int64, marketplace Marketplace) (string, error)
}

// EligibilityProvider defines the interface for the resale authorization
// service. Implementations must not return transport failures as errors; they
// fold every failure mode into the EligibilityResult shape.
type EligibilityProvider interface {
	CheckSellerEligibility(ctx context.Context, sellerID string, asins []string, marketplace Marketplace) EligibilityResult
}
