package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	sheetHeaderBad = regexp.MustCompile(`[^a-z0-9_]`)
)

// Parse decodes an uploaded file into an ordered sequence of flat records.
// The extension is gated before any parse attempt; rows whose cells are all
// empty are skipped entirely.
func Parse(fileName string, data []byte) ([]Record, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "csv":
		return parseCSV(data)
	case "xlsx":
		return parseSheet(data)
	case "xls":
		return parseLegacySheet(data)
	default:
		return nil, fmt.Errorf("%w: .%s (use csv, xls or xlsx)", apperrors.ErrUnsupportedFormat, ext)
	}
}

func parseCSV(data []byte) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = normalizeHeader(h, false)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
		}
		if rec, ok := rowToRecord(headers, row); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func parseSheet(data []byte) ([]Record, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrFileRead)
	}
	// Only the first sheet is read.
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFileRead, err)
	}
	return sheetRecords(rows), nil
}

// sheetRecords turns a raw cell grid into records, treating the first row as
// the header row.
func sheetRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return []Record{}
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h, true)
	}
	records := []Record{}
	for _, row := range rows[1:] {
		if rec, ok := rowToRecord(headers, row); ok {
			records = append(records, rec)
		}
	}
	return records
}

// normalizeHeader lowercases, trims and collapses internal whitespace to
// single underscores. Spreadsheet headers are additionally stripped of any
// character outside [a-z0-9_].
func normalizeHeader(header string, sheet bool) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, `"`, "")
	h = whitespaceRun.ReplaceAllString(h, "_")
	if sheet {
		h = sheetHeaderBad.ReplaceAllString(h, "")
	}
	return h
}

// rowToRecord maps one raw row onto the header set. Columns whose headers
// spell the same field differently ("Full Name" next to "full_name") collapse
// into one entry, leftmost non-empty value first. The second return is false
// when every cell is empty and the row should be skipped.
func rowToRecord(headers []string, row []string) (Record, bool) {
	empty := true
	rec := make(Record, len(headers))
	keyFor := make(map[string]string, len(headers))
	for i, header := range headers {
		val := ""
		if i < len(row) {
			val = strings.TrimSpace(row[i])
		}
		if val != "" {
			empty = false
		}
		ck := canonKey(header)
		key, seen := keyFor[ck]
		if !seen {
			keyFor[ck] = header
			rec[header] = val
			continue
		}
		if rec[key] == "" {
			rec[key] = val
		}
	}
	if empty {
		return nil, false
	}
	return rec, true
}
