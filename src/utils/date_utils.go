package utils

import (
	"time"
)

// ReportDateFormat is the textual day/month/year format both
// platforms use in their exports.
const ReportDateFormat = "02/01/2006"

// ParseReportDate parses a report date cell. Callers skip the row's
// date-derived statistics on error without discarding the row.
func ParseReportDate(dateStr string) (time.Time, error) {
	return time.Parse(ReportDateFormat, dateStr)
}
