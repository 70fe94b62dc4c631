package processors

import (
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
	"github.com/username/metricsanalyzer/src/utils"
)

// ProductClassifier maps raw product names and Hotmart price codes to
// canonical product identities. It is pure and safe for concurrent use.
type ProductClassifier struct {
	rs *rules.RuleSet
}

func NewProductClassifier(rs *rules.RuleSet) *ProductClassifier {
	return &ProductClassifier{rs: rs}
}

// Classify resolves a raw product name. Matching stages run in strict
// priority order: exact alias, pattern, substring containment either
// direction. A name that matches nothing comes back with the unknown
// sentinel key and the original string as display name; recording it
// in the unmapped set is the caller's job.
func (c *ProductClassifier) Classify(rawName string) models.ProductIdentity {
	folded := utils.Fold(rawName)
	if folded == "" {
		return models.ProductIdentity{
			Key:         models.UnknownProductKey,
			DisplayName: rawName,
			Confidence:  models.ConfidenceNone,
		}
	}

	for _, p := range c.rs.Products {
		for _, alias := range p.Aliases {
			if utils.Fold(alias) == folded {
				return identity(p, models.ConfidenceExact)
			}
		}
	}

	for _, p := range c.rs.Products {
		for _, pattern := range p.Patterns {
			if pattern.MatchString(rawName) {
				return identity(p, models.ConfidencePattern)
			}
		}
	}

	for _, p := range c.rs.Products {
		for _, alias := range p.Aliases {
			foldedAlias := utils.Fold(alias)
			if strings.Contains(foldedAlias, folded) || strings.Contains(folded, foldedAlias) {
				return identity(p, models.ConfidencePartial)
			}
		}
	}

	return models.ProductIdentity{
		Key:         models.UnknownProductKey,
		DisplayName: rawName,
		Confidence:  models.ConfidenceNone,
	}
}

// LookupPriceCode resolves a Hotmart price code to its product and
// baked-in origin. A miss is a first-class outcome: the aggregator
// records it as an UnknownCode with a running count.
func (c *ProductClassifier) LookupPriceCode(code string) (rules.PriceMapping, bool) {
	mapping, ok := c.rs.PriceCodes[strings.ToLower(strings.TrimSpace(code))]
	return mapping, ok
}

func identity(p rules.Product, confidence models.Confidence) models.ProductIdentity {
	return models.ProductIdentity{
		Key:         p.Key,
		DisplayName: p.DisplayName,
		Confidence:  confidence,
	}
}
