package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMarketplace is returned when the request names an unsupported marketplace
	ErrInvalidMarketplace = errors.New("unsupported marketplace")

	// ErrCatalogAPIFailure is returned when a catalog provider request fails
	ErrCatalogAPIFailure = errors.New("catalog API request failed")
)

// Upstream stages that can abort an analysis
const (
	StageDiscovery  = "discovery"
	StageEnrichment = "enrichment"
)

// UpstreamError wraps a transport or provider failure from one of the fatal
// pipeline stages. Eligibility failures never produce one; they degrade instead.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failure: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NotFoundError marks a legitimately empty result. The reason distinguishes
// "seller has no items" from "nothing survived the strict category filter".
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}
