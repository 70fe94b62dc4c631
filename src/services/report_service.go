package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/metricsanalyzer/src/config"
	"github.com/username/metricsanalyzer/src/logger"
	"github.com/username/metricsanalyzer/src/metrics"
	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/parsers"
	"github.com/username/metricsanalyzer/src/processors"
)

const (
	ckLatestResult = "res_latest_result_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type reportServiceImpl struct {
	aggregator   *processors.Aggregator
	emailService EmailService
	resultCache  *cache.Cache
}

func NewReportService(aggregator *processors.Aggregator, emailService EmailService, resultCache *cache.Cache) ReportService {
	return &reportServiceImpl{
		aggregator:   aggregator,
		emailService: emailService,
		resultCache:  resultCache,
	}
}

func (s *reportServiceImpl) ProcessReport(fileReader io.Reader, platform models.Platform) (*models.AggregateResult, error) {
	reportID := uuid.NewString()
	startTime := time.Now()
	logger.L.Info("ProcessReport START", "reportID", reportID, "platform", platform)

	parser, err := parsers.GetParser(platform)
	if err != nil {
		metrics.ReportsProcessed.WithLabelValues(string(platform), "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rows, err := parser.Parse(fileReader)
	if err != nil {
		metrics.ReportsProcessed.WithLabelValues(string(platform), "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	result, err := s.aggregator.Aggregate(rows, platform)
	if err != nil {
		metrics.ReportsProcessed.WithLabelValues(string(platform), "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}
	result.ReportID = reportID

	s.resultCache.Set(fmt.Sprintf(ckLatestResult, platform), result, DefaultCacheExpiration)

	metrics.ReportsProcessed.WithLabelValues(string(platform), "success").Inc()
	metrics.UnmappedItems.WithLabelValues(string(platform), "product").Add(float64(len(result.UnmappedProducts)))
	metrics.UnmappedItems.WithLabelValues(string(platform), "origin").Add(float64(len(result.UnmappedOrigins)))
	metrics.UnmappedItems.WithLabelValues(string(platform), "price_code").Add(float64(len(result.UnknownCodes)))

	s.notifyUnmappedItems(result)

	logger.L.Info("ProcessReport END",
		"reportID", reportID,
		"platform", platform,
		"rows", len(rows),
		"products", len(result.Sales),
		"unresolvedBumpRefs", result.UnresolvedBumpRefs,
		"duration", time.Since(startTime))
	return result, nil
}

func (s *reportServiceImpl) LatestResult(platform models.Platform) (*models.AggregateResult, error) {
	if cached, found := s.resultCache.Get(fmt.Sprintf(ckLatestResult, platform)); found {
		logger.L.Debug("Cache hit for LatestResult", "platform", platform)
		return cached.(*models.AggregateResult), nil
	}
	return nil, fmt.Errorf("%w: no report processed for platform %s", ErrNoResult, platform)
}

// notifyUnmappedItems sends the operator digest when a run uncovered
// rule-table gaps. Failures are logged and never fail the run itself.
func (s *reportServiceImpl) notifyUnmappedItems(result *models.AggregateResult) {
	if s.emailService == nil || !result.HasUnmappedItems() {
		return
	}
	recipient := ""
	if config.Cfg != nil {
		recipient = config.Cfg.DigestRecipient
	}
	if recipient == "" {
		logger.L.Debug("Unmapped items found but no digest recipient configured", "reportID", result.ReportID)
		return
	}
	if err := s.emailService.SendUnmappedDigest(recipient, result); err != nil {
		logger.L.Error("Failed to send unmapped-items digest", "reportID", result.ReportID, "error", err)
	}
}
