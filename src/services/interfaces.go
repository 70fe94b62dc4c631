package services

import (
	"errors"
	"io"

	"github.com/username/metricsanalyzer/src/models"
)

var (
	ErrParsingFailed     = errors.New("report parsing failed")
	ErrAggregationFailed = errors.New("report aggregation failed")
	ErrNoResult          = errors.New("no result available")
)

// ReportService runs the report-to-metrics pipeline for one uploaded
// file and keeps the most recent result per platform.
type ReportService interface {
	ProcessReport(fileReader io.Reader, platform models.Platform) (*models.AggregateResult, error)
	LatestResult(platform models.Platform) (*models.AggregateResult, error)
}

// EmailService notifies the operator about rule-table gaps found
// during a report run.
type EmailService interface {
	SendUnmappedDigest(toEmail string, result *models.AggregateResult) error
}
