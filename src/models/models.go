package models

// Platform identifies which e-commerce export a report came from.
type Platform string

const (
	PlatformHubla   Platform = "hubla"
	PlatformHotmart Platform = "hotmart"
)

// RawRow is one spreadsheet row as decoded by the table reader,
// keyed by header label. Values are the raw cell text; empty cells
// stay empty strings.
type RawRow map[string]string

// SaleRow is one transaction record mapped from a RawRow by the
// platform parser. It is never mutated after parsing.
type SaleRow struct {
	Status               string `json:"status"`
	ProductName          string `json:"product_name"`
	OfferName            string `json:"offer_name,omitempty"`
	PriceCode            string `json:"price_code,omitempty"`             // Hotmart only
	BumpProductNames     string `json:"bump_product_names,omitempty"`     // Hubla only, comma-joined list
	TransactionRef       string `json:"transaction_ref,omitempty"`        // Hotmart only
	ParentTransactionRef string `json:"parent_transaction_ref,omitempty"` // Hotmart only
	TrackingOrigin       string `json:"tracking_origin,omitempty"`
	TrackingMedium       string `json:"tracking_medium,omitempty"`
	TrackingTerm         string `json:"tracking_term,omitempty"`
	PaymentDate          string `json:"payment_date,omitempty"`
	RefundDate           string `json:"refund_date,omitempty"`
}

// Confidence ranks how a raw product name matched a classification rule.
type Confidence string

const (
	ConfidenceExact   Confidence = "exact"
	ConfidencePattern Confidence = "pattern"
	ConfidencePartial Confidence = "partial"
	ConfidenceNone    Confidence = "none"
)

// UnknownProductKey is the sentinel canonical key for names that match
// no classification rule.
const UnknownProductKey = "unknown"

// OriginNotApplicable is the sentinel label for sales with no usable
// tracking data.
const OriginNotApplicable = "N/A"

// ProductIdentity is the canonical identity a raw product name or
// price code resolves to.
type ProductIdentity struct {
	Key         string     `json:"key"`
	DisplayName string     `json:"display_name"`
	Confidence  Confidence `json:"confidence"`
}

// ProductSummary aggregates sales for one canonical product.
type ProductSummary struct {
	DisplayName string         `json:"displayName"`
	Total       int            `json:"total"`
	ByOrigin    map[string]int `json:"byOrigin"`
	Refunds     int            `json:"refunds"`
}

// OfferVariantStat is the count and tier-relative percentage of one
// pricing tier of the flagship product.
type OfferVariantStat struct {
	Quantity   int    `json:"quantity"`
	Percentage string `json:"percentage"`
}

// BumpStat is the count and conversion rate of one bump product
// relative to its parent product's sales.
type BumpStat struct {
	Quantity int    `json:"quantity"`
	Rate     string `json:"rate"`
}

// UnknownCode records a Hotmart price code that no mapping rule
// recognizes. The running count helps prioritize which codes to map
// next, so these are grouped by code rather than deduplicated.
type UnknownCode struct {
	Code        string `json:"code"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Period is the payment date range covered by a report.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AggregateResult is the full output of one report aggregation.
// It is built fresh per invocation and never persisted.
type AggregateResult struct {
	ReportID           string                         `json:"reportId,omitempty"`
	Platform           Platform                       `json:"platform"`
	Sales              map[string]ProductSummary      `json:"sales"`
	OfferVariants      map[string]OfferVariantStat    `json:"offerVariants,omitempty"`
	Bumps              map[string]map[string]BumpStat `json:"bumps"`
	UnmappedProducts   []string                       `json:"unmappedProducts"`
	UnmappedOrigins    []string                       `json:"unmappedOrigins"`
	UnknownCodes       []UnknownCode                  `json:"unknownCodes,omitempty"`
	UnresolvedBumpRefs int                            `json:"unresolvedBumpRefs"`
	Period             *Period                        `json:"period,omitempty"`
}

// HasUnmappedItems reports whether any classification rule missed, so
// operators know the rule tables need extending.
func (r *AggregateResult) HasUnmappedItems() bool {
	return len(r.UnmappedProducts) > 0 || len(r.UnmappedOrigins) > 0 || len(r.UnknownCodes) > 0
}
