package keepa

// RawProduct is the raw catalog snapshot returned by the Keepa product
// endpoint. Only the fields the extractor reads are modeled; everything else
// in the provider payload is ignored.
type RawProduct struct {
	ASIN         string   `json:"asin"`
	Title        string   `json:"title"`
	Brand        string   `json:"brand"`
	RootCategory int64    `json:"rootCategory"`
	Image        string   `json:"image"`
	ImagesCSV    string   `json:"imagesCSV"`
	Rating       *int     `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	Stats        RawStats `json:"stats"`
}

// RawStats holds the stats block of a raw snapshot. Current is a positional
// array of price/rank signals; missing slots read as absent, a zero reads as
// "no data" rather than a real value.
type RawStats struct {
	Current []int `json:"current"`
}

// finderRequest is the product-finder selection payload
type finderRequest struct {
	SellerIDs  []string `json:"sellerIds"`
	PageSize   int      `json:"pageSize"`
	Categories []int64  `json:"categories_include,omitempty"`
}

// finderResponse is the product-finder response envelope
type finderResponse struct {
	ASINList []string `json:"asinList"`
}

// productResponse is the batch product endpoint response envelope
type productResponse struct {
	Products []RawProduct `json:"products"`
}

// categoryResponse is the category lookup response envelope, keyed by the
// category id as a decimal string
type categoryResponse struct {
	Categories map[string]categoryEntry `json:"categories"`
}

type categoryEntry struct {
	Name string `json:"name"`
}
