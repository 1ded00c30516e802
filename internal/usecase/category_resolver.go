package usecase

import (
	"context"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Placeholder names used when a category cannot be resolved. Category naming
// is cosmetic, so resolution never fails to the caller.
const (
	CategoryNameUnknown      = "Unknown"
	CategoryNameMissing      = "Unknown Category"
	CategoryNameLookupFailed = "Category Lookup Failed"
)

// defaultCategoryCacheSize bounds the per-process category name cache
const defaultCategoryCacheSize = 256

// categoryKey identifies a category within a marketplace
type categoryKey struct {
	marketplace domain.Marketplace
	id          int64
}

// CategoryResolver turns category ids into display names, caching results in
// an LRU keyed by marketplace and id. Category names are immutable upstream,
// so entries never expire; the LRU only bounds memory.
type CategoryResolver struct {
	catalog domain.CatalogProvider
	cache   *lru.Cache[categoryKey, string]
}

// NewCategoryResolver creates a resolver backed by the catalog provider
func NewCategoryResolver(catalog domain.CatalogProvider, cacheSize int) (*CategoryResolver, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCategoryCacheSize
	}

	cache, err := lru.New[categoryKey, string](cacheSize)
	if err != nil {
		return nil, err
	}

	return &CategoryResolver{catalog: catalog, cache: cache}, nil
}

// Resolve returns a best-effort display name for the category. An absent id
// (0) resolves to "Unknown", a provider failure to "Category Lookup Failed"
// and a category missing from the provider response to "Unknown Category".
// Failed lookups are not cached so a later request may still succeed.
func (r *CategoryResolver) Resolve(ctx context.Context, categoryID int64, marketplace domain.Marketplace) string {
	if categoryID == 0 {
		return CategoryNameUnknown
	}

	key := categoryKey{marketplace: marketplace, id: categoryID}
	if name, ok := r.cache.Get(key); ok {
		return name
	}

	name, err := r.catalog.CategoryName(ctx, categoryID, marketplace)
	if err != nil {
		return CategoryNameLookupFailed
	}
	if name == "" {
		name = CategoryNameMissing
	}

	r.cache.Add(key, name)
	return name
}
