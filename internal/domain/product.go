package domain

// AnalyzeRequest is the inbound "analyze seller" request
type AnalyzeRequest struct {
	SellerID    string `json:"seller_id" binding:"required"`
	Marketplace string `json:"marketplace"`
	CategoryID  *int64 `json:"category_id"`
}

// ProductRecord is a normalized product extracted from a raw catalog snapshot.
// Zero values carry meaning on a few fields: SalesRank 0 means "no rank
// signal", PriceCents 0 means "price unknown" and an empty ImageURL means no
// image could be derived.
type ProductRecord struct {
	ASIN         string
	Title        string
	Brand        string
	CategoryID   int64 // root category id, 0 when the snapshot has none
	CategoryName string
	SalesRank    int
	RatingValue  float64 // 0-5 scale
	ReviewCount  int
	PriceCents   int
	ImageURL     string
}

// VerdictStatus is the tri-state eligibility outcome for a single ASIN
type VerdictStatus string

// Eligibility verdict states
const (
	VerdictEligible   VerdictStatus = "Eligible"
	VerdictRestricted VerdictStatus = "Restricted"
	VerdictUnknown    VerdictStatus = "Unknown"
)

// EligibilityVerdict annotates one ASIN with its resale eligibility
type EligibilityVerdict struct {
	Status VerdictStatus
	Label  string
	Reason string
}

// EligibilityItem is a single per-ASIN entry from the eligibility provider
type EligibilityItem struct {
	ASIN     string `json:"asin"`
	Eligible bool   `json:"isEligible"`
}

// EligibilityResult is the uniform outcome of an eligibility check. The client
// never returns a Go error: provider failures arrive as OK=false with the
// reason and raw detail filled in, so verdict resolution branches on one shape.
type EligibilityResult struct {
	OK          bool
	Items       []EligibilityItem
	ErrorReason string
	RawDetail   string
}

// AnalyzedProduct is one fully annotated record in the final response
type AnalyzedProduct struct {
	Index             int    `json:"index"`
	ASIN              string `json:"asin"`
	Title             string `json:"title"`
	Brand             string `json:"brand"`
	Category          string `json:"category"`
	SalesRank         int    `json:"salesRank"`
	Velocity          string `json:"velocity"`
	Eligibility       string `json:"eligibility"`
	EligibilityReason string `json:"eligibilityReason"`
	Rating            string `json:"rating"`
	Reviews           string `json:"reviews"`
	Price             string `json:"price"`
	ImageURL          string `json:"imageUrl"`
}

// AnalysisResult is the sole externally visible artifact of an analysis run.
// It is assembled once and never mutated afterwards.
type AnalysisResult struct {
	Seller           string            `json:"seller"`
	Marketplace      string            `json:"marketplace"`
	FilterCategoryID string            `json:"filterCategoryId"`
	TotalProducts    int               `json:"totalProducts"`
	Products         []AnalyzedProduct `json:"products"`
}
