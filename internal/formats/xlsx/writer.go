package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// WriteRows writes rows into sheet starting at the 1-based row startRow. Nil values leave
// their cell untouched.
func WriteRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, startRow+rowIdx)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				return fmt.Errorf("could not set cell %s: %w", cellName, err)
			}
		}
	}
	return nil
}

// WriteHeader writes header into row 1 of sheet.
func WriteHeader(f *excelize.File, sheet string, header []string) error {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return WriteRows(f, sheet, 1, [][]any{row})
}

// CreateFile creates a new workbook at path holding a single sheet of rows. It refuses to
// replace an existing file.
func CreateFile(path, sheet string, rows [][]any) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("could not create %s — a file with that name already exists", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename default sheet
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}

	if err := WriteRows(f, sheet, 1, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// Save writes f back to its own path.
func Save(f *excelize.File) error {
	if err := f.Save(); err != nil {
		return fmt.Errorf("could not save %s: %w", f.Path, err)
	}
	return nil
}
