package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Recognized column names, matched case-insensitively. Unrecognized columns
// are ignored.
const (
	columnName  = "name"
	columnPhone = "phone"
	columnNotes = "notes"
)

// CandidateRecord is one uploaded row that passed field-presence validation.
// It has no identity and lives only for the duration of one upload request.
type CandidateRecord struct {
	ContactName string
	Phone       string
	Notes       string
}

type ParseResult struct {
	Records []CandidateRecord
	// TotalRows counts every data row seen, accepted or not.
	TotalRows int
}

// Parse decodes the upload as the declared format and returns the accepted
// records in origin order. Rows missing the name or phone field are dropped
// silently; only whole-file decode failure is an error.
func Parse(r io.Reader, format Format) (ParseResult, error) {
	switch format {
	case FormatCSV:
		return parseCSV(r)
	case FormatXLSX:
		return parseXLSX(r)
	default:
		return ParseResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseCSV(r io.Reader) (ParseResult, error) {
	br := stripUTF8BOM(bufio.NewReader(r))

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return ParseResult{}, nil
		}
		return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	columns := headerIndex(header)
	var result ParseResult
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
		result.TotalRows++
		if record, ok := recordFromRow(row, columns); ok {
			result.Records = append(result.Records, record)
		}
	}
	return result, nil
}

func parseXLSX(r io.Reader) (ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ParseResult{}, nil
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns map[string]int
	var result ParseResult
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
		if columns == nil {
			columns = headerIndex(row)
			continue
		}
		result.TotalRows++
		if record, ok := recordFromRow(row, columns); ok {
			result.Records = append(result.Records, record)
		}
	}
	if err := rows.Error(); err != nil {
		return ParseResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return result, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return m
}

func cellAt(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// recordFromRow rejects rows whose name or phone field is empty after trim.
func recordFromRow(row []string, columns map[string]int) (CandidateRecord, bool) {
	record := CandidateRecord{
		ContactName: cellAt(row, columns, columnName),
		Phone:       cellAt(row, columns, columnPhone),
		Notes:       cellAt(row, columns, columnNotes),
	}
	if record.ContactName == "" || record.Phone == "" {
		return CandidateRecord{}, false
	}
	return record, true
}
