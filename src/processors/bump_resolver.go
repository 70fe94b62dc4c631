package processors

import (
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

// BumpLink is one resolved parent→bump purchase relation.
type BumpLink struct {
	ParentKey string
	BumpKey   string
}

// BumpResolver links add-on purchases to their parent purchase. Hubla
// carries the bump names directly on the sale row; Hotmart only gives
// a parent transaction reference that has to be resolved against the
// rest of the report.
type BumpResolver struct {
	classifier *ProductClassifier
}

func NewBumpResolver(classifier *ProductClassifier) *BumpResolver {
	return &BumpResolver{classifier: classifier}
}

// ResolveExplicit handles the Hubla shape: the comma-joined bump field
// of one sale. Each listed name is classified independently, so a
// single sale can contribute several relations. Names the classifier
// doesn't know are returned separately for the unmapped collection
// and produce no relation.
func (r *BumpResolver) ResolveExplicit(row models.SaleRow, parent models.ProductIdentity) (links []BumpLink, unmapped []string) {
	if row.BumpProductNames == "" || parent.Key == models.UnknownProductKey {
		return nil, nil
	}

	for _, name := range strings.Split(row.BumpProductNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bump := r.classifier.Classify(name)
		if bump.Confidence == models.ConfidenceNone {
			unmapped = append(unmapped, name)
			continue
		}
		links = append(links, BumpLink{ParentKey: parent.Key, BumpKey: bump.Key})
	}
	return links, unmapped
}

// CrossRefOutcome is the result of resolving Hotmart's implicit bump
// relationships over a full qualifying row set.
type CrossRefOutcome struct {
	// Direct holds the standalone sales (no parent reference).
	Direct []models.SaleRow
	// Links holds one entry per resolved bump purchase.
	Links []BumpLink
	// Unresolved counts bump rows whose parent transaction was not
	// found anywhere in the report. They contribute to no relation and
	// to no product total; the count exists for diagnostics only.
	Unresolved int
}

// ResolveCrossRefs splits the qualifying rows into direct sales and
// bump purchases. A row carrying a usable parent transaction reference
// is matched against an index of every row's own transaction
// reference; the lookup is a pure key match, so the index replaces the
// historical linear scan without changing results.
func (r *BumpResolver) ResolveCrossRefs(rows []models.SaleRow) CrossRefOutcome {
	byTransactionRef := make(map[string]models.SaleRow, len(rows))
	for _, row := range rows {
		if row.TransactionRef != "" {
			byTransactionRef[row.TransactionRef] = row
		}
	}

	var outcome CrossRefOutcome
	for _, row := range rows {
		if !hasParentRef(row) {
			outcome.Direct = append(outcome.Direct, row)
			continue
		}

		parentRow, found := byTransactionRef[row.ParentTransactionRef]
		if !found {
			outcome.Unresolved++
			continue
		}

		parentKey := r.resolveProductKey(parentRow)
		bumpKey := r.resolveProductKey(row)
		if parentKey == models.UnknownProductKey || bumpKey == models.UnknownProductKey {
			outcome.Unresolved++
			continue
		}
		outcome.Links = append(outcome.Links, BumpLink{ParentKey: parentKey, BumpKey: bumpKey})
	}
	return outcome
}

// resolveProductKey prefers the price-code mapping and falls back to
// name classification for codes not yet in the table.
func (r *BumpResolver) resolveProductKey(row models.SaleRow) string {
	if mapping, ok := r.classifier.LookupPriceCode(row.PriceCode); ok {
		return mapping.ProductKey
	}
	return r.classifier.Classify(row.ProductName).Key
}

func hasParentRef(row models.SaleRow) bool {
	return row.ParentTransactionRef != "" && row.ParentTransactionRef != rules.NoParentSentinel
}
