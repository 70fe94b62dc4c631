package processors

import (
	"fmt"
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

// ClassifyOfferVariant maps a raw offer name to one of the flagship
// product's pricing tiers via literal marker containment, in tier
// order. Anything unmatched lands in the "other" bucket.
func ClassifyOfferVariant(offerName string, rs *rules.RuleSet) string {
	lowered := strings.ToLower(strings.TrimSpace(offerName))
	if lowered != "" {
		for _, tier := range rs.OfferTiers {
			for _, marker := range tier.Markers {
				if strings.Contains(lowered, marker) {
					return tier.Label
				}
			}
		}
	}
	return rules.OfferVariantOther
}

// OfferVariantStats computes per-variant quantities and percentages.
// The denominator is the sum of the priced tiers only: the "other"
// bucket is off-funnel noise, not a competing price point.
func OfferVariantStats(counts map[string]int, rs *rules.RuleSet) map[string]models.OfferVariantStat {
	if len(counts) == 0 {
		return nil
	}

	tierTotal := 0
	for _, tier := range rs.OfferTiers {
		tierTotal += counts[tier.Label]
	}

	stats := make(map[string]models.OfferVariantStat, len(counts))
	for _, tier := range rs.OfferTiers {
		qty, ok := counts[tier.Label]
		if !ok {
			continue
		}
		stats[tier.Label] = models.OfferVariantStat{
			Quantity:   qty,
			Percentage: FormatRate(qty, tierTotal),
		}
	}
	if qty, ok := counts[rules.OfferVariantOther]; ok {
		stats[rules.OfferVariantOther] = models.OfferVariantStat{
			Quantity:   qty,
			Percentage: "N/A",
		}
	}
	return stats
}

// FormatRate renders numerator/denominator as a percentage with two
// decimal places. A zero denominator yields "0%" rather than NaN or
// a division panic; this guard is mandatory.
func FormatRate(numerator, denominator int) string {
	if denominator == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(numerator)/float64(denominator)*100)
}
