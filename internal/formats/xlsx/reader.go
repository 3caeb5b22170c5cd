// Package xlsx reads, writes, and restyles .xlsx workbooks.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Sheet represents a single worksheet's raw cell data.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
	// Date1904 is set when the workbook counts date serials from 1904.
	Date1904 bool `json:"date1904,omitempty"`
}

// Open opens an existing workbook, failing with a readable message when it is missing.
func Open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return f, nil
}

// SheetNames lists the worksheets of the workbook at path, in tab order.
func SheetNames(path string) ([]string, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadSheet reads one worksheet with unformatted cell values, so dates and times come back as
// serial numbers rather than display strings.
func ReadSheet(path, name string) (*Sheet, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSheet(f, name)
}

func readSheet(f *excelize.File, name string) (*Sheet, error) {
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found — available sheets: %v", name, f.GetSheetList())
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
	}

	return &Sheet{
		Name:     name,
		Rows:     rows,
		Date1904: uses1904(f),
	}, nil
}

// Header returns the first row, or nil for an empty sheet.
func (s *Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// RowCount returns the number of rows that hold at least one non-empty cell.
func (s *Sheet) RowCount() int {
	count := 0
	for _, row := range s.Rows {
		for _, cell := range row {
			if cell != "" {
				count++
				break
			}
		}
	}
	return count
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
