package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/salesight/salesight/internal/normalize"
)

// decodeDelimited reads comma- or tab-separated text into raw rows. The
// first record is the header row; blank header cells are dropped.
func decodeDelimited(data []byte, comma rune) ([]normalize.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]normalize.RawRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(normalize.RawRow, len(header))
		for i, h := range header {
			if h == "" || i >= len(record) {
				continue
			}
			row[h] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// decodeWorkbook reads every sheet of a spreadsheet workbook. Each sheet's
// first row is its header row; fully blank rows within a sheet are skipped.
func decodeWorkbook(data []byte) ([]normalize.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows := make([]normalize.RawRow, 0)
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(sheetRows) < 2 {
			continue
		}

		header := make([]string, len(sheetRows[0]))
		for i, h := range sheetRows[0] {
			header[i] = strings.TrimSpace(h)
		}

		for _, record := range sheetRows[1:] {
			if allBlank(record) {
				continue
			}
			row := make(normalize.RawRow, len(header))
			for i, h := range header {
				if h == "" || i >= len(record) {
					continue
				}
				row[h] = record[i]
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// decodeJSON accepts either an array of objects or a single object, which
// is wrapped into a one-element array.
func decodeJSON(data []byte) ([]normalize.RawRow, error) {
	var list []map[string]interface{}
	if err := json.Unmarshal(data, &list); err != nil {
		var single map[string]interface{}
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		list = []map[string]interface{}{single}
	}

	rows := make([]normalize.RawRow, 0, len(list))
	for _, item := range list {
		rows = append(rows, normalize.RawRow(item))
	}
	return rows, nil
}

func allBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
