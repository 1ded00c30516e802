package keepa

import (
	"fmt"
	"strings"

	"github.com/Totanopti/gocomapare-2/internal/domain"
)

// Slot indices into the stats.current array of a raw snapshot
const (
	SlotPriceAmazon = 0  // Amazon's own offer
	SlotPriceNew    = 1  // marketplace new
	SlotSalesRank   = 3  // sales rank
	SlotPriceFBM    = 7  // merchant-fulfilled new
	SlotPriceBuyBox = 13 // buy box
)

// priceSlotPriority is the fallback order for price extraction; the first
// strictly positive slot wins
var priceSlotPriority = [4]int{SlotPriceAmazon, SlotPriceBuyBox, SlotPriceFBM, SlotPriceNew}

// imageCDNTemplate composes an image URL from the first imagesCSV path segment
const imageCDNTemplate = "https://m.media-amazon.com/images/I/%s"

// ExtractProduct normalizes one raw snapshot into a ProductRecord. It reports
// false when the snapshot lacks an ASIN and must be skipped. The function is
// deterministic and side-effect free.
func ExtractProduct(raw RawProduct) (domain.ProductRecord, bool) {
	if raw.ASIN == "" {
		return domain.ProductRecord{}, false
	}

	record := domain.ProductRecord{
		ASIN:        raw.ASIN,
		Title:       valueOrNA(raw.Title),
		Brand:       valueOrNA(raw.Brand),
		CategoryID:  raw.RootCategory,
		SalesRank:   extractSalesRank(raw.Stats.Current),
		PriceCents:  extractPriceCents(raw.Stats.Current),
		ReviewCount: raw.ReviewCount,
		ImageURL:    extractImageURL(raw),
	}

	// Upstream stores ratings scaled by 10 (e.g. 45 means 4.5 stars)
	if raw.Rating != nil {
		record.RatingValue = float64(*raw.Rating) / 10.0
	}

	return record, true
}

// extractPriceCents walks the price slots in priority order and returns the
// first strictly positive value. Zero is the upstream "no data" sentinel and
// must never be surfaced as a real price, so none-positive means unknown (0).
func extractPriceCents(current []int) int {
	for _, slot := range priceSlotPriority {
		if slot < len(current) && current[slot] > 0 {
			return current[slot]
		}
	}
	return 0
}

// extractSalesRank returns the rank slot only when present and strictly
// positive. A raw 0 would misleadingly suggest top rank, so it maps to
// "no rank signal" (0 in the record, rendered as slow velocity downstream).
func extractSalesRank(current []int) int {
	if SlotSalesRank < len(current) && current[SlotSalesRank] > 0 {
		return current[SlotSalesRank]
	}
	return 0
}

// extractImageURL prefers the direct image field, then derives a CDN URL from
// the first segment of the comma-separated image path list
func extractImageURL(raw RawProduct) string {
	if raw.Image != "" {
		return raw.Image
	}
	if raw.ImagesCSV != "" {
		segment := strings.SplitN(raw.ImagesCSV, ",", 2)[0]
		if segment != "" {
			return fmt.Sprintf(imageCDNTemplate, segment)
		}
	}
	return ""
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
