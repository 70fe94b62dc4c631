package hotmart

import (
	"io"
	"strings"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/parsers/tabular"
)

// Column labels as they appear in Hotmart transaction exports.
const (
	colStatus      = "Status da transação"
	colProduct     = "Produto"
	colOffer       = "Oferta"
	colPriceCode   = "Código do preço"
	colTransaction = "Transação"
	colParentTx    = "Transação do Produto Principal"
	colUTMSource   = "UTM Source"
	colUTMMedium   = "UTM Medium"
	colUTMTerm     = "UTM Term"
	colPaymentDate = "Data da transação"
	colRefundDate  = "Data de reembolso"
)

type HotmartParser struct{}

func NewParser() *HotmartParser {
	return &HotmartParser{}
}

func (p *HotmartParser) Parse(file io.Reader) ([]models.SaleRow, error) {
	raw, err := tabular.ReadTable(file)
	if err != nil {
		return nil, err
	}

	var rows []models.SaleRow
	for _, r := range raw {
		rows = append(rows, models.SaleRow{
			Status:               strings.TrimSpace(r[colStatus]),
			ProductName:          strings.TrimSpace(r[colProduct]),
			OfferName:            strings.TrimSpace(r[colOffer]),
			PriceCode:            strings.TrimSpace(r[colPriceCode]),
			TransactionRef:       strings.TrimSpace(r[colTransaction]),
			ParentTransactionRef: strings.TrimSpace(r[colParentTx]),
			TrackingOrigin:       strings.TrimSpace(r[colUTMSource]),
			TrackingMedium:       strings.TrimSpace(r[colUTMMedium]),
			TrackingTerm:         strings.TrimSpace(r[colUTMTerm]),
			PaymentDate:          strings.TrimSpace(r[colPaymentDate]),
			RefundDate:           strings.TrimSpace(r[colRefundDate]),
		})
	}
	return rows, nil
}
