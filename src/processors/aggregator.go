package processors

import (
	"fmt"
	"sort"
	"time"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
	"github.com/username/metricsanalyzer/src/utils"
)

// Aggregator folds classified sale rows into the final report metrics.
// It is a pure, single-pass fold over in-memory rows: no I/O, no
// shared mutable state, so concurrent invocations over distinct row
// sets are safe.
type Aggregator struct {
	rs         *rules.RuleSet
	classifier *ProductClassifier
	origins    *OriginNormalizer
	resolver   *BumpResolver
}

func NewAggregator(rs *rules.RuleSet) *Aggregator {
	classifier := NewProductClassifier(rs)
	return &Aggregator{
		rs:         rs,
		classifier: classifier,
		origins:    NewOriginNormalizer(rs),
		resolver:   NewBumpResolver(classifier),
	}
}

// Aggregate processes one report's rows for the given platform.
func (a *Aggregator) Aggregate(rows []models.SaleRow, platform models.Platform) (*models.AggregateResult, error) {
	switch platform {
	case models.PlatformHubla:
		return a.aggregateHubla(rows), nil
	case models.PlatformHotmart:
		return a.aggregateHotmart(rows), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}

func (a *Aggregator) aggregateHubla(rows []models.SaleRow) *models.AggregateResult {
	sales := FilterSales(rows, a.rs, models.PlatformHubla)
	refunds := FilterRefunds(rows, a.rs)

	summaries := make(map[string]*models.ProductSummary)
	unmappedProducts := make(map[string]struct{})
	unmappedOrigins := make(map[string]struct{})
	variantCounts := make(map[string]int)
	bumpCounts := make(map[string]map[string]int)

	for _, sale := range sales {
		id := a.classifier.Classify(sale.ProductName)
		if id.Confidence == models.ConfidenceNone {
			unmappedProducts[sale.ProductName] = struct{}{}
			continue
		}

		summary := ensureSummary(summaries, id.Key, id.DisplayName)
		summary.Total++

		label, matched := a.origins.Normalize(sale.TrackingOrigin, sale.TrackingMedium, sale.TrackingTerm)
		if !matched && label != models.OriginNotApplicable {
			unmappedOrigins[label] = struct{}{}
		}
		summary.ByOrigin[label]++

		if id.Key == a.rs.FlagshipKey {
			variantCounts[ClassifyOfferVariant(sale.OfferName, a.rs)]++
		}

		links, unknownBumps := a.resolver.ResolveExplicit(sale, id)
		for _, name := range unknownBumps {
			unmappedProducts[name] = struct{}{}
		}
		for _, link := range links {
			incrementBump(bumpCounts, link)
		}
	}

	for _, refund := range refunds {
		id := a.classifier.Classify(refund.ProductName)
		if id.Confidence == models.ConfidenceNone {
			unmappedProducts[refund.ProductName] = struct{}{}
			continue
		}
		ensureSummary(summaries, id.Key, id.DisplayName).Refunds++
	}

	return &models.AggregateResult{
		Platform:         models.PlatformHubla,
		Sales:            summaryValues(summaries),
		OfferVariants:    OfferVariantStats(variantCounts, a.rs),
		Bumps:            bumpStats(bumpCounts, summaries),
		UnmappedProducts: sortedKeys(unmappedProducts),
		UnmappedOrigins:  sortedKeys(unmappedOrigins),
		Period:           paymentPeriod(sales),
	}
}

func (a *Aggregator) aggregateHotmart(rows []models.SaleRow) *models.AggregateResult {
	sales := FilterSales(rows, a.rs, models.PlatformHotmart)
	refunds := FilterRefunds(rows, a.rs)
	outcome := a.resolver.ResolveCrossRefs(sales)

	summaries := make(map[string]*models.ProductSummary)
	unknownCodes := make(map[string]*models.UnknownCode)
	bumpCounts := make(map[string]map[string]int)

	for _, sale := range outcome.Direct {
		mapping, ok := a.classifier.LookupPriceCode(sale.PriceCode)
		if !ok {
			recordUnknownCode(unknownCodes, sale)
			continue
		}
		summary := ensureSummary(summaries, mapping.ProductKey, a.displayName(mapping.ProductKey))
		summary.Total++
		summary.ByOrigin[mapping.Origin]++
	}

	for _, link := range outcome.Links {
		incrementBump(bumpCounts, link)
	}

	for _, refund := range refunds {
		key, display := a.refundProduct(refund)
		if key == "" {
			continue
		}
		ensureSummary(summaries, key, display).Refunds++
	}

	return &models.AggregateResult{
		Platform:           models.PlatformHotmart,
		Sales:              summaryValues(summaries),
		Bumps:              bumpStats(bumpCounts, summaries),
		UnmappedProducts:   []string{},
		UnmappedOrigins:    []string{},
		UnknownCodes:       sortedUnknownCodes(unknownCodes),
		UnresolvedBumpRefs: outcome.Unresolved,
		Period:             paymentPeriod(sales),
	}
}

// refundProduct applies the price-code mapping to a refunded row and
// falls back to the raw product-name field when the code is unmapped,
// so refunds for not-yet-mapped codes stay visible under the raw
// label instead of disappearing.
func (a *Aggregator) refundProduct(refund models.SaleRow) (key, display string) {
	if mapping, ok := a.classifier.LookupPriceCode(refund.PriceCode); ok {
		return mapping.ProductKey, a.displayName(mapping.ProductKey)
	}
	return refund.ProductName, refund.ProductName
}

func (a *Aggregator) displayName(key string) string {
	if p, ok := a.rs.ProductByKey(key); ok {
		return p.DisplayName
	}
	return key
}

func ensureSummary(summaries map[string]*models.ProductSummary, key, display string) *models.ProductSummary {
	if s, ok := summaries[key]; ok {
		return s
	}
	s := &models.ProductSummary{
		DisplayName: display,
		ByOrigin:    make(map[string]int),
	}
	summaries[key] = s
	return s
}

func incrementBump(counts map[string]map[string]int, link BumpLink) {
	if counts[link.ParentKey] == nil {
		counts[link.ParentKey] = make(map[string]int)
	}
	counts[link.ParentKey][link.BumpKey]++
}

// bumpStats renders the relation table with conversion rates against
// the parent product's sales total.
func bumpStats(counts map[string]map[string]int, summaries map[string]*models.ProductSummary) map[string]map[string]models.BumpStat {
	stats := make(map[string]map[string]models.BumpStat, len(counts))
	for parentKey, bumps := range counts {
		parentTotal := 0
		if s, ok := summaries[parentKey]; ok {
			parentTotal = s.Total
		}
		stats[parentKey] = make(map[string]models.BumpStat, len(bumps))
		for bumpKey, quantity := range bumps {
			stats[parentKey][bumpKey] = models.BumpStat{
				Quantity: quantity,
				Rate:     FormatRate(quantity, parentTotal),
			}
		}
	}
	return stats
}

// paymentPeriod computes the earliest and latest payment date across
// qualifying sales. Rows with missing or unparsable dates are skipped
// here without affecting any other statistic.
func paymentPeriod(sales []models.SaleRow) *models.Period {
	var start, end time.Time
	for _, sale := range sales {
		if sale.PaymentDate == "" {
			continue
		}
		t, err := utils.ParseReportDate(sale.PaymentDate)
		if err != nil {
			continue
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
		if end.IsZero() || t.After(end) {
			end = t
		}
	}
	if start.IsZero() {
		return nil
	}
	return &models.Period{
		Start: start.Format(utils.ReportDateFormat),
		End:   end.Format(utils.ReportDateFormat),
	}
}

func summaryValues(summaries map[string]*models.ProductSummary) map[string]models.ProductSummary {
	out := make(map[string]models.ProductSummary, len(summaries))
	for key, s := range summaries {
		out[key] = *s
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedUnknownCodes orders misses by frequency so operators see the
// most impactful unmapped codes first.
func sortedUnknownCodes(codes map[string]*models.UnknownCode) []models.UnknownCode {
	out := make([]models.UnknownCode, 0, len(codes))
	for _, uc := range codes {
		out = append(out, *uc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func recordUnknownCode(codes map[string]*models.UnknownCode, sale models.SaleRow) {
	uc, ok := codes[sale.PriceCode]
	if !ok {
		uc = &models.UnknownCode{Code: sale.PriceCode, ProductName: sale.ProductName}
		codes[sale.PriceCode] = uc
	}
	uc.Quantity++
}
