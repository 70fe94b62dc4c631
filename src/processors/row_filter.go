package processors

import (
	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/rules"
)

// FilterSales returns the rows whose status is in the platform's
// qualifying set, order preserved. Missing or garbage statuses simply
// fail to qualify; they are never an error.
func FilterSales(rows []models.SaleRow, rs *rules.RuleSet, platform models.Platform) []models.SaleRow {
	qualifying := rs.SaleStatuses(platform)

	var sales []models.SaleRow
	for _, row := range rows {
		if statusIn(row.Status, qualifying) {
			sales = append(sales, row)
		}
	}
	return sales
}

// FilterRefunds returns the rows that count as refunded. The exports
// are inconsistent about where the refund signal lives, so a row
// qualifies either by refund status or by a non-empty refund date.
func FilterRefunds(rows []models.SaleRow, rs *rules.RuleSet) []models.SaleRow {
	var refunds []models.SaleRow
	for _, row := range rows {
		if statusIn(row.Status, rs.RefundStatuses) || hasRefundDate(row) {
			refunds = append(refunds, row)
		}
	}
	return refunds
}

func hasRefundDate(row models.SaleRow) bool {
	return row.RefundDate != "" && row.RefundDate != "null"
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}
