package processors

import (
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

// OriginNormalizer maps raw tracking parameters to a canonical
// acquisition channel label. Pure and deterministic: the same input
// tuple always yields the same label regardless of row position.
type OriginNormalizer struct {
	rs *rules.RuleSet
}

func NewOriginNormalizer(rs *rules.RuleSet) *OriginNormalizer {
	return &OriginNormalizer{rs: rs}
}

// Normalize concatenates the non-empty tracking fields (lowercased)
// and tests the ordered keyword groups against the result; the first
// group with any keyword present wins. When no group matches, the raw
// origin is returned verbatim if usable (matched=false flags it for
// the unmapped-origins list), else the not-applicable sentinel.
func (n *OriginNormalizer) Normalize(origin, medium, term string) (label string, matched bool) {
	var parts []string
	for _, s := range []string{origin, medium, term} {
		s = strings.TrimSpace(s)
		if s != "" && s != "null" {
			parts = append(parts, strings.ToLower(s))
		}
	}
	searchText := strings.Join(parts, " ")

	if searchText != "" {
		for _, group := range n.rs.OriginGroups {
			for _, keyword := range group.Keywords {
				if strings.Contains(searchText, keyword) {
					return group.Label, true
				}
			}
		}
	}

	rawOrigin := strings.TrimSpace(origin)
	if rawOrigin != "" && rawOrigin != "null" {
		return rawOrigin, false
	}
	return models.OriginNotApplicable, false
}
