package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/metricsanalyzer/src/models"
)

// xlsxSignature is the ZIP local-file-header magic every .xlsx starts with.
var xlsxSignature = []byte{0x50, 0x4b, 0x03, 0x04}

// ReadTable decodes a CSV or XLSX report into header-keyed rows. The
// format is sniffed from the leading bytes, so callers don't need to
// trust file extensions. No validation happens beyond tokenizing;
// empty cells stay empty strings.
func ReadTable(file io.Reader) ([]models.RawRow, error) {
	br := bufio.NewReader(file)
	head, err := br.Peek(len(xlsxSignature))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to sniff report format: %w", err)
	}
	if bytes.Equal(head, xlsxSignature) {
		return readXLSX(br)
	}
	return readCSV(br)
}

func readCSV(r io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	return recordsToRows(header, records), nil
}

func readXLSX(r io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	sheetRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheetName, err)
	}
	if len(sheetRows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty, expected a header row", sheetName)
	}

	header := sheetRows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return recordsToRows(header, sheetRows[1:]), nil
}

func recordsToRows(header []string, records [][]string) []models.RawRow {
	var rows []models.RawRow
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		row := make(models.RawRow, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			if i < len(record) {
				row[label] = record[i]
			} else {
				row[label] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
