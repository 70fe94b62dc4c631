package validation

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/metricsanalyzer/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestValidateClientContentType(t *testing.T) {
	allowed := []string{
		"text/csv",
		"text/csv; charset=utf-8",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/octet-stream",
		"TEXT/CSV",
	}
	for _, ct := range allowed {
		assert.NoError(t, ValidateClientContentType(ct), "content type %q", ct)
	}

	denied := []string{"image/png", "text/html", "application/pdf", ""}
	for _, ct := range denied {
		assert.Error(t, ValidateClientContentType(ct), "content type %q", ct)
	}
}

func TestValidateFileContentByMagicBytesCSV(t *testing.T) {
	file := bytes.NewReader([]byte("Status da fatura,Nome do produto\nPaga,LDR\n"))

	detected, err := ValidateFileContentByMagicBytes(file)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", detected)

	// The read pointer must be rewound for the parser.
	pos, err := file.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, pos)
}

func TestValidateFileContentByMagicBytesZIP(t *testing.T) {
	// XLSX files start with the ZIP local-file-header signature.
	file := bytes.NewReader([]byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00})

	detected, err := ValidateFileContentByMagicBytes(file)
	require.NoError(t, err)
	assert.Equal(t, "application/zip", detected)
}

func TestValidateFileContentByMagicBytesRejectsBinaries(t *testing.T) {
	// PNG signature.
	file := bytes.NewReader([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})

	_, err := ValidateFileContentByMagicBytes(file)
	assert.Error(t, err)
}

func TestValidateFileContentByMagicBytesNilFile(t *testing.T) {
	_, err := ValidateFileContentByMagicBytes(nil)
	assert.Error(t, err)
}
