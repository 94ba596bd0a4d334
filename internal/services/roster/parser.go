package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "placement-portal-backend/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Row is one parsed roster entry. RowIndex is the 1-based position in
// the sheet including the header, so it matches what the officer sees
// in their spreadsheet.
type Row struct {
	RowIndex  int    `json:"rowIndex"`
	StudentID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Course    string `json:"course"`
}

// Officers upload sheets exported from all kinds of templates, so the
// header matching is deliberately loose.
var headerAliases = map[string]string{
	"id":             "id",
	"student id":     "id",
	"roll no":        "id",
	"name":           "name",
	"full name":      "name",
	"student name":   "name",
	"candidate name": "name",
	"email":          "email",
	"e-mail":         "email",
	"email address":  "email",
	"phone":          "phone",
	"mobile":         "phone",
	"phone number":   "phone",
	"course":         "course",
	"branch":         "course",
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return s
}

// Parse converts raw roster bytes into ordered rows. CSV is detected by
// content type; everything else goes through excelize.
func Parse(data []byte, contentType string) ([]Row, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrInvalidFileFormat
	}
	if strings.Contains(contentType, "csv") || strings.Contains(contentType, "text/plain") {
		return parseCSV(data)
	}
	return parseWorkbook(data)
}

func parseWorkbook(data []byte) ([]Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFileFormat, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrInvalidFileFormat
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidFileFormat, err)
	}
	return parseRecords(records)
}

func parseCSV(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	// Sniff the delimiter from the first KB
	sample := data
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	if !bytes.Contains(sample, []byte(",")) && bytes.Contains(sample, []byte("\t")) {
		reader.Comma = '\t'
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		records = append(records, record)
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) ([]Row, error) {
	if len(records) < 2 { // header + at least one data row
		return nil, apperrors.ErrInvalidFileFormat
	}

	columnMap := make(map[string]int)
	for i, col := range records[0] {
		if key, ok := headerAliases[normalizeHeader(col)]; ok {
			if _, exists := columnMap[key]; !exists {
				columnMap[key] = i
			}
		}
	}
	if _, ok := columnMap["email"]; !ok {
		return nil, fmt.Errorf("%w: missing email column", apperrors.ErrInvalidFileFormat)
	}

	getValue := func(record []string, key string) string {
		if idx, ok := columnMap[key]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var rows []Row
	for i, record := range records[1:] {
		if strings.Join(record, "") == "" {
			continue // blank row
		}
		rows = append(rows, Row{
			RowIndex:  i + 2,
			StudentID: getValue(record, "id"),
			Name:      getValue(record, "name"),
			Email:     getValue(record, "email"),
			Phone:     getValue(record, "phone"),
			Course:    getValue(record, "course"),
		})
	}

	if len(rows) == 0 {
		return nil, apperrors.ErrInvalidFileFormat
	}
	return rows, nil
}

// Validate rejects rosters that carry the same email or student ID more
// than once. The caller surfaces the message to the officer so they can
// fix the sheet and resubmit.
func Validate(rows []Row) error {
	seenEmails := make(map[string]bool)
	seenIDs := make(map[string]bool)
	var dupEmails, dupIDs []string

	for _, row := range rows {
		email := strings.ToLower(row.Email)
		if email != "" {
			if seenEmails[email] {
				dupEmails = append(dupEmails, email)
			}
			seenEmails[email] = true
		}
		if row.StudentID != "" {
			if seenIDs[row.StudentID] {
				dupIDs = append(dupIDs, row.StudentID)
			}
			seenIDs[row.StudentID] = true
		}
	}

	if len(dupEmails) > 0 || len(dupIDs) > 0 {
		var parts []string
		if len(dupEmails) > 0 {
			parts = append(parts, "duplicate emails: "+strings.Join(dupEmails, ", "))
		}
		if len(dupIDs) > 0 {
			parts = append(parts, "duplicate IDs: "+strings.Join(dupIDs, ", "))
		}
		return apperrors.ValidationError{Field: "file", Message: strings.Join(parts, "; ")}
	}
	return nil
}
