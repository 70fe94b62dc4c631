package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/metricsanalyzer/src/models"
)

func TestDigestBodyListsEveryGap(t *testing.T) {
	result := &models.AggregateResult{
		ReportID:         "r-123",
		Platform:         models.PlatformHotmart,
		UnmappedProducts: []string{"Produto Fantasma"},
		UnmappedOrigins:  []string{"parceria-joana"},
		UnknownCodes: []models.UnknownCode{
			{Code: "zzzz9999", ProductName: "Produto Novo", Quantity: 3},
		},
	}

	body := digestBody(result)
	assert.Contains(t, body, "Produto Fantasma")
	assert.Contains(t, body, "parceria-joana")
	assert.Contains(t, body, "zzzz9999")
	assert.Contains(t, body, "3 venda(s)")

	subject := digestSubject(result)
	assert.Contains(t, subject, "r-123")
	assert.Contains(t, subject, "hotmart")
}

func TestNewEmailServiceDefaultsToMock(t *testing.T) {
	svc := NewEmailService()
	_, ok := svc.(*MockEmailService)
	assert.True(t, ok)
}
