// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/lvphi/matrix"
)

var (
	// ErrNonNumeric is returned for a cell that is neither a number nor a
	// missing-value token.
	ErrNonNumeric = errors.New("dataio: non-numeric cell")
	// ErrEmpty is returned when no data rows or columns remain.
	ErrEmpty = errors.New("dataio: no data")
	// ErrUnsupported is returned by ReadFile for unknown extensions.
	ErrUnsupported = errors.New("dataio: unsupported file type")
	// ErrSheetNotFound is returned when the requested worksheet is absent.
	ErrSheetNotFound = errors.New("dataio: sheet not found")
)

// Table is a parsed numeric table.
type Table struct {
	Headers   []string // column names, len = Data.Cols()
	RowLabels []string // observation labels when WithRowLabels is set
	Data      *matrix.Dense
}

// ReadFile dispatches on the file extension: .csv, .xlsx or .xlsm.
func ReadFile(path string, opts ...Option) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f, opts...)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts...)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// ReadCSV parses comma-separated records. All records must have the same
// number of fields.
func ReadCSV(r io.Reader, opts ...Option) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parse(records, gatherOptions(opts...))
}

// ReadXLSX opens a workbook and parses one worksheet.
func ReadXLSX(path string, opts ...Option) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f, gatherOptions(opts...))
}

// ReadXLSXFrom parses one worksheet of a workbook streamed from r.
func ReadXLSXFrom(r io.Reader, opts ...Option) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, gatherOptions(opts...))
}

func readWorkbook(f *excelize.File, o Options) (*Table, error) {
	sheet := o.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%q: %w", sheet, ErrSheetNotFound)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parse(rows, o)
}

// parse turns string records into a Table. Worksheet rows may be shorter
// than the widest row (trailing empty cells are dropped by excelize); the
// gaps are read as missing.
func parse(records [][]string, o Options) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}
	first := 0
	if o.rowLabels {
		first = 1
	}
	if width-first < 1 {
		return nil, ErrEmpty
	}

	t := &Table{}
	body := records
	if o.header {
		hdr := records[0]
		for j := first; j < width; j++ {
			name := ""
			if j < len(hdr) {
				name = strings.TrimSpace(hdr[j])
			}
			t.Headers = append(t.Headers, name)
		}
		body = records[1:]
	} else {
		for j := first; j < width; j++ {
			t.Headers = append(t.Headers, fmt.Sprintf("V%d", j-first+1))
		}
	}
	if len(body) == 0 {
		return nil, ErrEmpty
	}

	data, err := matrix.NewDense(len(body), width-first)
	if err != nil {
		return nil, err
	}
	for i, rec := range body {
		if o.rowLabels && len(rec) > 0 {
			t.RowLabels = append(t.RowLabels, strings.TrimSpace(rec[0]))
		} else if o.rowLabels {
			t.RowLabels = append(t.RowLabels, "")
		}
		for j := first; j < width; j++ {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			v, err := o.parseCell(cell)
			if err != nil {
				line := i + 1
				if o.header {
					line++
				}
				return nil, fmt.Errorf("row %d, column %d (%q): %w", line, j+1, cell, err)
			}
			_ = data.Set(i, j-first, v)
		}
	}
	t.Data = data

	return t, nil
}

func (o Options) parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), nil
	}
	if _, ok := o.missing[strings.ToLower(s)]; ok {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNonNumeric
	}
	return v, nil
}
