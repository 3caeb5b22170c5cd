package xlsx

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Layout names the columns Reformat treats specially. Empty column names are skipped.
type Layout struct {
	DecimalColumns  []string
	DecimalFormat   string
	DateColumn      string
	DateFormat      string
	TimeColumn      string
	TimeFormat      string
	HighlightColumn string
	HighlightColor  string
}

// ReformatReport summarizes what Reformat changed.
type ReformatReport struct {
	Cells          int      `json:"cells"`
	TimesConverted int      `json:"timesConverted"`
	Unparsed       []string `json:"unparsed,omitempty"` // time-column text that is not a clock time
}

type cellLook struct {
	numFmt string
	fill   bool
}

type styleKey struct {
	base int
	look cellLook
}

type restyler struct {
	f     *excelize.File
	color string
	cache map[styleKey]int
}

// Reformat strips borders from every used cell of sheet and applies the number formats and
// fill named by layout. Text in the time column that reads as a clock time is converted to a
// real time value. Running it again on its own output changes nothing.
func Reformat(f *excelize.File, sheet string, layout Layout) (*ReformatReport, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}

	decimal := make(map[int]bool)
	for _, name := range layout.DecimalColumns {
		n, err := columnNumber(name)
		if err != nil {
			return nil, err
		}
		decimal[n] = true
	}
	dateCol, err := columnNumber(layout.DateColumn)
	if err != nil {
		return nil, err
	}
	timeCol, err := columnNumber(layout.TimeColumn)
	if err != nil {
		return nil, err
	}
	fillCol, err := columnNumber(layout.HighlightColumn)
	if err != nil {
		return nil, err
	}

	width := max(dateCol, timeCol, fillCol)
	for n := range decimal {
		width = max(width, n)
	}
	for _, row := range rows {
		width = max(width, len(row))
	}

	rs := &restyler{f: f, color: layout.HighlightColor, cache: make(map[styleKey]int)}
	report := &ReformatReport{}

	for r := 1; r <= len(rows); r++ {
		for c := 1; c <= width; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, fmt.Errorf("invalid cell coordinates: %w", err)
			}

			var look cellLook
			switch {
			case decimal[c]:
				look.numFmt = layout.DecimalFormat
			case c == dateCol:
				look.numFmt = layout.DateFormat
			case c == timeCol && r > 1:
				isTime, err := rs.normalizeTime(sheet, cell, rawAt(rows, r, c), report)
				if err != nil {
					return nil, err
				}
				if isTime {
					look.numFmt = layout.TimeFormat
				}
			}
			look.fill = c == fillCol && rs.color != ""

			if err := rs.apply(sheet, cell, look); err != nil {
				return nil, err
			}
			report.Cells++
		}
	}

	return report, nil
}

// normalizeTime converts clock-time text in cell to a day fraction and reports whether the
// cell now holds a time value.
func (rs *restyler) normalizeTime(sheet, cell, raw string, report *ReformatReport) (bool, error) {
	if raw == "" {
		return false, nil
	}
	typ, err := rs.f.GetCellType(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("could not inspect cell %s: %w", cell, err)
	}

	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		frac, ok := DayFraction(raw)
		if !ok {
			report.Unparsed = append(report.Unparsed, cell)
			return false, nil
		}
		if err := rs.f.SetCellFloat(sheet, cell, frac, -1, 64); err != nil {
			return false, fmt.Errorf("could not set cell %s: %w", cell, err)
		}
		report.TimesConverted++
		return true, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	return err == nil && v >= 0 && v < 1, nil
}

func (rs *restyler) apply(sheet, cell string, look cellLook) error {
	base, err := rs.f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("could not read style of %s: %w", cell, err)
	}

	key := styleKey{base: base, look: look}
	id, ok := rs.cache[key]
	if !ok {
		style, err := rs.f.GetStyle(base)
		if err != nil {
			return fmt.Errorf("could not load style %d: %w", base, err)
		}
		style.Border = nil
		if look.numFmt != "" {
			numFmt := look.numFmt
			style.NumFmt = 0
			style.CustomNumFmt = &numFmt
		}
		if look.fill {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rs.color}}
		}
		if id, err = rs.f.NewStyle(style); err != nil {
			return fmt.Errorf("could not create style: %w", err)
		}
		rs.cache[key] = id
	}

	if id == base {
		return nil
	}
	return rs.f.SetCellStyle(sheet, cell, cell, id)
}

func rawAt(rows [][]string, r, c int) string {
	if r-1 >= len(rows) || c-1 >= len(rows[r-1]) {
		return ""
	}
	return rows[r-1][c-1]
}

func columnNumber(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", name, err)
	}
	return n, nil
}

// ReformatFile opens the workbook at path, reformats sheet, and saves it in place.
func ReformatFile(path, sheet string, layout Layout) (*ReformatReport, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := Reformat(f, sheet, layout)
	if err != nil {
		return nil, err
	}
	if err := Save(f); err != nil {
		return nil, err
	}
	return report, nil
}
