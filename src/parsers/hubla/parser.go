package hubla

import (
	"io"
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/parsers/tabular"
)

// Column labels as they appear in Hubla invoice exports.
const (
	colStatus      = "Status da fatura"
	colProduct     = "Nome do produto"
	colOffer       = "Nome da oferta"
	colBump        = "Nome do produto de orderbump"
	colUTMSource   = "UTM Origem"
	colUTMMedium   = "UTM Meio"
	colUTMTerm     = "UTM Termo"
	colPaymentDate = "Data de pagamento"
	colRefundDate  = "Data de reembolso"
)

type HublaParser struct{}

func NewParser() *HublaParser {
	return &HublaParser{}
}

func (p *HublaParser) Parse(file io.Reader) ([]models.SaleRow, error) {
	raw, err := tabular.ReadTable(file)
	if err != nil {
		return nil, err
	}

	var rows []models.SaleRow
	for _, r := range raw {
		rows = append(rows, models.SaleRow{
			Status:           strings.TrimSpace(r[colStatus]),
			ProductName:      strings.TrimSpace(r[colProduct]),
			OfferName:        strings.TrimSpace(r[colOffer]),
			BumpProductNames: strings.TrimSpace(r[colBump]),
			TrackingOrigin:   strings.TrimSpace(r[colUTMSource]),
			TrackingMedium:   strings.TrimSpace(r[colUTMMedium]),
			TrackingTerm:     strings.TrimSpace(r[colUTMTerm]),
			PaymentDate:      strings.TrimSpace(r[colPaymentDate]),
			RefundDate:       strings.TrimSpace(r[colRefundDate]),
		})
	}
	return rows, nil
}
