package parsers

import (
	"io"

	"github.com/username/metricsanalyzer/src/models"
)

// Parser decodes one platform's report export into sale rows.
type Parser interface {
	Parse(file io.Reader) ([]models.SaleRow, error)
}
