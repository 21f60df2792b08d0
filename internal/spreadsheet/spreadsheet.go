// Package spreadsheet reads the first worksheet of an uploaded workbook into
// a header row plus data rows of raw cell text.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	spreadsheeterrors "github.com/ibrahim77gh/salary-portal-backend/internal/spreadsheet/errors"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxXLSRows = 100000

type Table struct {
	Headers []string
	Rows    [][]string
	index   map[string]int
}

func newTable(rows [][]string) *Table {
	t := &Table{index: map[string]int{}}
	if len(rows) == 0 {
		return t
	}

	t.Headers = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		t.Headers[i] = h
		if _, dup := t.index[h]; !dup && h != "" {
			t.index[h] = i
		}
	}
	t.Rows = rows[1:]
	return t
}

// Column returns one value per data row for header. Short rows yield "".
func (t *Table) Column(header string) ([]string, bool) {
	idx, ok := t.index[strings.TrimSpace(header)]
	if !ok {
		return nil, false
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, true
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Parse picks the reader by file extension: .xls goes through the legacy
// BIFF reader, everything else is treated as OOXML.
func Parse(fileName string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, spreadsheeterrors.ErrInvalidSpreadsheet.WithCause(err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls":
		rows, err = readXLS(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}

	return newTable(trimTrailingEmptyRows(rows)), nil
}

func readXLS(data []byte) (rows [][]string, err error) {
	// the BIFF reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, spreadsheeterrors.ErrInvalidSpreadsheet.WithCause(fmt.Errorf("%v", r))
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, spreadsheeterrors.ErrInvalidSpreadsheet.WithCause(err)
	}
	if wb.NumSheets() == 0 {
		return nil, spreadsheeterrors.ErrNoWorksheet
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, spreadsheeterrors.ErrInvalidSpreadsheet.WithCause(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, spreadsheeterrors.ErrNoWorksheet
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, spreadsheeterrors.ErrInvalidSpreadsheet.WithCause(err)
	}
	return rows, nil
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 1 && isEmptyRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
