package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	"github.com/Totanopti/gocomapare-2/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Velocity bucketing: strictly below the rank threshold is fast-moving,
// everything else (including "no rank signal") is slow.
const (
	velocityRankThreshold = 50000
	velocityFast          = "FAST"
	velocitySlow          = "SLOW"
)

const priceNA = "N/A"

// defaultMaxProducts caps how many identifiers one analysis handles
const defaultMaxProducts = 30

// ratingPrinter groups review counts for display ("1,234 reviews")
var ratingPrinter = message.NewPrinter(language.English)

// AnalyzerConfig holds configuration for the analyzer
type AnalyzerConfig struct {
	MaxProducts int
}

// Analyzer orchestrates the analysis pipeline: catalog discovery, batch
// enrichment, strict category reconciliation, eligibility cross-reference and
// response assembly. One pass, strictly sequential; no stage re-queries an
// earlier stage's provider.
type Analyzer struct {
	catalog     domain.CatalogProvider
	eligibility domain.EligibilityProvider
	categories  *CategoryResolver
	metrics     *metrics.Metrics
	maxProducts int
}

// NewAnalyzer creates an analyzer with its collaborators injected
func NewAnalyzer(
	catalog domain.CatalogProvider,
	eligibility domain.EligibilityProvider,
	categories *CategoryResolver,
	m *metrics.Metrics,
	config AnalyzerConfig,
) *Analyzer {
	maxProducts := config.MaxProducts
	if maxProducts <= 0 || maxProducts > defaultMaxProducts {
		maxProducts = defaultMaxProducts
	}

	return &Analyzer{
		catalog:     catalog,
		eligibility: eligibility,
		categories:  categories,
		metrics:     m,
		maxProducts: maxProducts,
	}
}

// AnalyzeSeller runs the full pipeline for one request. Discovery and
// enrichment failures abort the request; category naming and eligibility
// failures degrade to placeholder values and never abort. Provider return
// order is preserved throughout.
func (a *Analyzer) AnalyzeSeller(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	marketplace, err := domain.ParseMarketplace(req.Marketplace)
	if err != nil {
		a.metrics.IncAnalysis(metrics.OutcomeValidation)
		return nil, fmt.Errorf("%w: %q, use one of %v", domain.ErrInvalidMarketplace, req.Marketplace, domain.Marketplaces)
	}

	// Stage 1: catalog discovery
	start := time.Now()
	asins, err := a.catalog.FindSellerASINs(ctx, req.SellerID, marketplace, a.maxProducts, req.CategoryID)
	a.metrics.ObserveStage(domain.StageDiscovery, time.Since(start))
	if err != nil {
		a.metrics.IncStageError(domain.StageDiscovery)
		a.metrics.IncAnalysis(metrics.OutcomeUpstream)
		return nil, &domain.UpstreamError{Stage: domain.StageDiscovery, Err: err}
	}
	if len(asins) == 0 {
		a.metrics.IncAnalysis(metrics.OutcomeNotFound)
		reason := "no ASINs found for this seller"
		if req.CategoryID != nil {
			reason += fmt.Sprintf(" in category %d", *req.CategoryID)
		}
		return nil, &domain.NotFoundError{Reason: reason}
	}

	// Stage 2: batch detail enrichment; partial record loss is silent
	start = time.Now()
	records, err := a.catalog.FetchProducts(ctx, asins, marketplace)
	a.metrics.ObserveStage(domain.StageEnrichment, time.Since(start))
	if err != nil {
		a.metrics.IncStageError(domain.StageEnrichment)
		a.metrics.IncAnalysis(metrics.OutcomeUpstream)
		return nil, &domain.UpstreamError{Stage: domain.StageEnrichment, Err: err}
	}

	// Stage 3: per-record category naming plus strict reconciliation. The
	// provider-side category filter over-returns, so the requested filter is
	// re-applied locally against the enriched category id.
	filtered := make([]domain.ProductRecord, 0, len(records))
	for _, record := range records {
		record.CategoryName = a.categories.Resolve(ctx, record.CategoryID, marketplace)
		if req.CategoryID == nil || record.CategoryID == *req.CategoryID {
			filtered = append(filtered, record)
		}
	}
	if len(filtered) == 0 && req.CategoryID != nil {
		a.metrics.IncAnalysis(metrics.OutcomeNotFound)
		return nil, &domain.NotFoundError{
			Reason: fmt.Sprintf("no products matched the strict filter for category %d after enrichment", *req.CategoryID),
		}
	}

	// Stage 4: one batched eligibility call on the post-filter set. The
	// provider is priced per call, so per-item checks are off the table.
	filteredASINs := make([]string, len(filtered))
	for i, record := range filtered {
		filteredASINs[i] = record.ASIN
	}

	start = time.Now()
	eligibility := a.eligibility.CheckSellerEligibility(ctx, req.SellerID, filteredASINs, marketplace)
	a.metrics.ObserveStage("eligibility", time.Since(start))
	if !eligibility.OK {
		a.metrics.IncDegraded("eligibility")
		log.Warn().
			Str("seller", req.SellerID).
			Str("reason", eligibility.ErrorReason).
			Msg("eligibility check degraded, annotating products with API Error")
	}

	// Stage 5: assembly, in original filtered order
	products := make([]domain.AnalyzedProduct, 0, len(filtered))
	for i, record := range filtered {
		verdict := resolveVerdict(eligibility, record.ASIN)
		products = append(products, domain.AnalyzedProduct{
			Index:             i + 1,
			ASIN:              record.ASIN,
			Title:             record.Title,
			Brand:             record.Brand,
			Category:          record.CategoryName,
			SalesRank:         record.SalesRank,
			Velocity:          velocityTag(record.SalesRank),
			Eligibility:       verdict.Label,
			EligibilityReason: verdict.Reason,
			Rating:            formatRating(record.RatingValue, record.ReviewCount),
			Reviews:           strconv.Itoa(record.ReviewCount),
			Price:             formatPrice(record.PriceCents),
			ImageURL:          imageOrNA(record.ImageURL),
		})
	}

	a.metrics.IncAnalysis(metrics.OutcomeSuccess)
	a.metrics.AddProducts(len(products))

	log.Info().
		Str("seller", req.SellerID).
		Str("marketplace", marketplace.String()).
		Int("discovered", len(asins)).
		Int("enriched", len(records)).
		Int("returned", len(products)).
		Msg("seller analysis complete")

	return &domain.AnalysisResult{
		Seller:           req.SellerID,
		Marketplace:      marketplace.String(),
		FilterCategoryID: filterEcho(req.CategoryID),
		TotalProducts:    len(products),
		Products:         products,
	}, nil
}

// velocityTag buckets a sales rank into fast or slow. No rank signal (0)
// cannot be assumed fast.
func velocityTag(salesRank int) string {
	if salesRank > 0 && salesRank < velocityRankThreshold {
		return velocityFast
	}
	return velocitySlow
}

// formatPrice renders cents as a two-decimal currency string, or N/A when the
// price is unknown. Zero cents is "unknown", never $0.00.
func formatPrice(priceCents int) string {
	if priceCents <= 0 {
		return priceNA
	}
	return fmt.Sprintf("$%.2f", float64(priceCents)/100)
}

// formatRating renders "X.X/5 (N reviews)" with a grouped review count
func formatRating(rating float64, reviewCount int) string {
	return ratingPrinter.Sprintf("%.1f/5 (%d reviews)", rating, reviewCount)
}

func imageOrNA(imageURL string) string {
	if imageURL == "" {
		return "N/A"
	}
	return imageURL
}

// filterEcho echoes the requested category filter, or the "None" sentinel
func filterEcho(categoryID *int64) string {
	if categoryID == nil {
		return "None"
	}
	return strconv.FormatInt(*categoryID, 10)
}
