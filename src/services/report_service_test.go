package services

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/metricsanalyzer/src/config"
	"github.com/username/metricsanalyzer/src/logger"
	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/processors"
	"github.com/username/metricsanalyzer/src/rules"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	config.Cfg = &config.AppConfig{
		MaxUploadSizeBytes:   10 * 1024 * 1024,
		EmailServiceProvider: "mock",
		DigestRecipient:      "ops@example.com",
	}
	os.Exit(m.Run())
}

// recordingEmailService captures digest sends for assertions.
type recordingEmailService struct {
	recipients []string
	results    []*models.AggregateResult
	err        error
}

func (r *recordingEmailService) SendUnmappedDigest(toEmail string, result *models.AggregateResult) error {
	r.recipients = append(r.recipients, toEmail)
	r.results = append(r.results, result)
	return r.err
}

func newTestService(email EmailService) ReportService {
	return NewReportService(
		processors.NewAggregator(rules.Default()),
		email,
		cache.New(DefaultCacheExpiration, CacheCleanupInterval),
	)
}

const hublaCSV = `Status da fatura,Nome do produto,Nome da oferta,UTM Origem,Data de pagamento
Paga,Laboratório de Roteiros,LDR [R$297] Turma 8,meta-ads,01/03/2025
Paga,Laboratório de Roteiros,LDR [R$197] Turma 8,whatsapp,15/03/2025
`

func TestProcessReportHubla(t *testing.T) {
	svc := newTestService(&recordingEmailService{})

	result, err := svc.ProcessReport(strings.NewReader(hublaCSV), models.PlatformHubla)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ReportID)
	assert.Equal(t, models.PlatformHubla, result.Platform)
	assert.Equal(t, 2, result.Sales["ldr"].Total)
}

func TestProcessReportCachesLatestResult(t *testing.T) {
	svc := newTestService(&recordingEmailService{})

	processed, err := svc.ProcessReport(strings.NewReader(hublaCSV), models.PlatformHubla)
	require.NoError(t, err)

	latest, err := svc.LatestResult(models.PlatformHubla)
	require.NoError(t, err)
	assert.Equal(t, processed.ReportID, latest.ReportID)

	// The other platform's slot stays empty.
	_, err = svc.LatestResult(models.PlatformHotmart)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestProcessReportParseFailure(t *testing.T) {
	svc := newTestService(&recordingEmailService{})

	_, err := svc.ProcessReport(strings.NewReader(""), models.PlatformHubla)
	assert.ErrorIs(t, err, ErrParsingFailed)

	_, err = svc.LatestResult(models.PlatformHubla)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestProcessReportUnknownPlatform(t *testing.T) {
	svc := newTestService(&recordingEmailService{})
	_, err := svc.ProcessReport(strings.NewReader(hublaCSV), models.Platform("shopify"))
	assert.ErrorIs(t, err, ErrParsingFailed)
}

func TestProcessReportSendsUnmappedDigest(t *testing.T) {
	email := &recordingEmailService{}
	svc := newTestService(email)

	csvData := "Status da fatura,Nome do produto\nPaga,Produto Fantasma\n"
	result, err := svc.ProcessReport(strings.NewReader(csvData), models.PlatformHubla)
	require.NoError(t, err)
	require.True(t, result.HasUnmappedItems())

	require.Len(t, email.recipients, 1)
	assert.Equal(t, "ops@example.com", email.recipients[0])
	assert.Equal(t, result.ReportID, email.results[0].ReportID)
}

func TestProcessReportSkipsDigestWhenClean(t *testing.T) {
	email := &recordingEmailService{}
	svc := newTestService(email)

	_, err := svc.ProcessReport(strings.NewReader(hublaCSV), models.PlatformHubla)
	require.NoError(t, err)
	assert.Empty(t, email.recipients)
}

func TestProcessReportDigestFailureDoesNotFailRun(t *testing.T) {
	email := &recordingEmailService{err: errors.New("smtp down")}
	svc := newTestService(email)

	csvData := "Status da fatura,Nome do produto\nPaga,Produto Fantasma\n"
	result, err := svc.ProcessReport(strings.NewReader(csvData), models.PlatformHubla)
	require.NoError(t, err)
	assert.NotNil(t, result)
}
