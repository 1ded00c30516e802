package domain

import "strings"

// Marketplace identifies an Amazon marketplace supported by the analyzer
type Marketplace string

// Supported marketplaces
const (
	MarketplaceUS Marketplace = "US"
	MarketplaceUK Marketplace = "UK"
	MarketplaceDE Marketplace = "DE"
	MarketplaceFR Marketplace = "FR"
	MarketplaceJP Marketplace = "JP"
	MarketplaceCA Marketplace = "CA"
)

// Marketplaces lists all supported marketplaces in display order
var Marketplaces = []Marketplace{
	MarketplaceUS,
	MarketplaceUK,
	MarketplaceDE,
	MarketplaceFR,
	MarketplaceJP,
	MarketplaceCA,
}

// ParseMarketplace parses a case-insensitive marketplace code.
// An empty string defaults to US. Unknown codes return ErrInvalidMarketplace.
func ParseMarketplace(s string) (Marketplace, error) {
	if s == "" {
		return MarketplaceUS, nil
	}

	switch Marketplace(strings.ToUpper(s)) {
	case MarketplaceUS:
		return MarketplaceUS, nil
	case MarketplaceUK:
		return MarketplaceUK, nil
	case MarketplaceDE:
		return MarketplaceDE, nil
	case MarketplaceFR:
		return MarketplaceFR, nil
	case MarketplaceJP:
		return MarketplaceJP, nil
	case MarketplaceCA:
		return MarketplaceCA, nil
	default:
		return "", ErrInvalidMarketplace
	}
}

// KeepaDomainID returns the Keepa domain code for the marketplace
func (m Marketplace) KeepaDomainID() int {
	switch m {
	case MarketplaceUS:
		return 1
	case MarketplaceUK:
		return 2
	case MarketplaceDE:
		return 3
	case MarketplaceFR:
		return 4
	case MarketplaceJP:
		return 5
	case MarketplaceCA:
		return 6
	default:
		return 1
	}
}

// AmazonMarketplaceID returns the numeric Amazon marketplace id used by the
// eligibility provider
func (m Marketplace) AmazonMarketplaceID() int {
	switch m {
	case MarketplaceUS:
		return 1
	case MarketplaceUK:
		return 3
	case MarketplaceDE:
		return 4
	case MarketplaceFR:
		return 5
	case MarketplaceJP:
		return 6
	case MarketplaceCA:
		return 7
	default:
		return 1
	}
}

func (m Marketplace) String() string {
	return string(m)
}
