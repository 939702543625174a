// Package importer turns uploaded attendance sheets into StudentRecord
// sessions. It owns the header-synonym mapping and the conversion of raw
// cells into canonical times and derived care minutes; malformed rows are
// skipped, never fatal.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/timeparse"
)

// Errors surfaced to the upload collaborator.
var (
	ErrEmptySheet      = errors.New("worksheet is empty")
	ErrNoRecords       = errors.New("no attendance rows found")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// Column identifiers used internally once headers are resolved.
const (
	colStudentName = "student_name"
	colClassName   = "class_name"
	colDayOfWeek   = "day_of_week"
	colStartTime   = "start_time"
	colEndTime     = "end_time"
	colOutingTime  = "outing_time"
)

// headerSynonyms maps each internal column to the header spellings operators
// actually use. Lookup is exact first, then case- and whitespace-insensitive.
var headerSynonyms = map[string][]string{
	colStudentName: {"학생명", "학생 이름", "이름", "student name", "name"},
	colClassName:   {"반", "반명", "클래스", "소속반", "class", "class name"},
	colDayOfWeek:   {"요일", "day", "day of week"},
	colStartTime:   {"등원시간", "시작시간", "등원", "start", "start time"},
	colEndTime:     {"하원시간", "종료시간", "하원", "end", "end time"},
	colOutingTime:  {"외출시간", "외출", "outing", "outing time"},
}

// Result is a completed import.
type Result struct {
	Records     []models.StudentRecord
	SkippedRows int
}

// FromUpload parses an uploaded workbook by file extension.
func FromUpload(filename string, data []byte) (Result, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return FromXLSX(data)
	case strings.HasSuffix(name, ".csv"):
		return FromCSV(data)
	default:
		return Result{}, ErrUnsupportedFile
	}
}

// FromXLSX reads the first sheet of an xlsx workbook.
func FromXLSX(data []byte) (Result, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return Result{}, ErrEmptySheet
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptySheet
	}
	return FromRows(rows)
}

// FromCSV reads a comma-separated sheet.
func FromCSV(data []byte) (Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptySheet
	}
	return FromRows(rows)
}

// FromRows converts a header row plus data rows into records. Cells keep the
// text/number distinction: excelize hands every cell back as a string, so a
// cell that reads as a decimal fraction is re-tagged numeric to restore the
// spreadsheet serial encoding.
func FromRows(rows [][]string) (Result, error) {
	if len(rows) < 2 {
		return Result{}, ErrNoRecords
	}

	cols := resolveHeaders(rows[0])
	if _, ok := cols[colStudentName]; !ok {
		return Result{}, ErrNoRecords
	}

	var res Result
	for _, row := range rows[1:] {
		cells := make(map[string]models.Cell, len(cols))
		for col, idx := range cols {
			if idx < len(row) {
				cells[col] = tagCell(row[idx])
			}
		}
		rec, ok := buildRecord(cells)
		if !ok {
			res.SkippedRows++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	if len(res.Records) == 0 {
		return Result{}, ErrNoRecords
	}
	return res, nil
}

// FromObjects converts JSON row objects (header → string-or-number value)
// into records.
func FromObjects(rows []map[string]any) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrNoRecords
	}

	var res Result
	for _, row := range rows {
		cells := make(map[string]models.Cell)
		for header, value := range row {
			col, ok := resolveHeader(header)
			if !ok {
				continue
			}
			switch v := value.(type) {
			case float64:
				cells[col] = models.NumberCell(v)
			case string:
				cells[col] = models.TextCell(v)
			}
		}
		rec, ok := buildRecord(cells)
		if !ok {
			res.SkippedRows++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	if len(res.Records) == 0 {
		return Result{}, ErrNoRecords
	}
	return res, nil
}

// buildRecord assembles one StudentRecord from resolved cells. A row without
// a student name carries no statistics and is skipped.
func buildRecord(cells map[string]models.Cell) (models.StudentRecord, bool) {
	name := strings.TrimSpace(cells[colStudentName].Text)
	if cells[colStudentName].IsNum {
		name = strconv.FormatFloat(cells[colStudentName].Number, 'f', -1, 64)
	}
	if name == "" {
		return models.StudentRecord{}, false
	}

	start := cells[colStartTime]
	end := cells[colEndTime]
	outing := cells[colOutingTime]

	return models.StudentRecord{
		ID:                uuid.NewString(),
		StudentName:       name,
		ClassName:         strings.TrimSpace(cells[colClassName].Text),
		DayOfWeek:         strings.TrimSpace(cells[colDayOfWeek].Text),
		StartTime:         timeparse.Normalize(start),
		EndTime:           timeparse.Normalize(end),
		OutingTime:        normalizeOuting(outing),
		ActualCareMinutes: timeparse.ActualCareMinutes(start, end, outing),
	}, true
}

// normalizeOuting keeps outing cells readable: ranges and duration phrases
// stay as entered, clock-shaped input is canonicalized like start/end times.
func normalizeOuting(c models.Cell) string {
	if c.IsNum {
		return timeparse.Normalize(c)
	}
	s := strings.TrimSpace(c.Text)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "~-") || strings.ContainsAny(s, "시분") {
		return s
	}
	return timeparse.Normalize(c)
}

func resolveHeaders(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		col, ok := resolveHeader(h)
		if !ok {
			continue
		}
		if _, dup := cols[col]; !dup {
			cols[col] = i
		}
	}
	return cols
}

func resolveHeader(header string) (string, bool) {
	trimmed := strings.TrimSpace(header)
	for col, names := range headerSynonyms {
		for _, n := range names {
			if trimmed == n {
				return col, true
			}
		}
	}
	folded := foldHeader(header)
	for col, names := range headerSynonyms {
		for _, n := range names {
			if folded == foldHeader(n) {
				return col, true
			}
		}
	}
	return "", false
}

func foldHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// tagCell re-tags a decimal-fraction string as a numeric cell. Integer-shaped
// strings stay text; the bare-integer parse rule treats them identically.
func tagCell(s string) models.Cell {
	if strings.Contains(s, ".") {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return models.NumberCell(n)
		}
	}
	return models.TextCell(s)
}
