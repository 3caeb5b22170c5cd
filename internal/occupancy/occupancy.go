// Package occupancy loads field-survey occupancy sheets into survey records.
package occupancy

import (
	"fmt"
	"strings"

	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/survey"
)

// Load reads the named sheet of the workbook at path and parses it into records.
func Load(path, sheet string) ([]survey.Record, error) {
	s, err := xlsx.ReadSheet(path, sheet)
	if err != nil {
		return nil, err
	}
	return Parse(s)
}

// Parse maps a sheet's rows onto records by header name. Column order does not matter and
// extra columns are ignored; a missing required column is a *survey.SchemaError. Rows with
// no content are skipped.
func Parse(s *xlsx.Sheet) ([]survey.Record, error) {
	header := s.Header()
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range survey.RequiredColumns() {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &survey.SchemaError{Sheet: s.Name, Missing: missing}
	}

	var records []survey.Record
	for _, row := range s.Rows[1:] {
		if blank(row) {
			continue
		}
		at := func(name string) string {
			i := cols[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		meta := make([]any, len(survey.MetaColumns))
		for i, name := range survey.MetaColumns {
			raw := at(name)
			switch i {
			case survey.MetaDate:
				if d, ok := xlsx.ParseDate(raw, s.Date1904); ok {
					meta[i] = d
				} else {
					meta[i] = xlsx.ParseValue(raw)
				}
			case survey.MetaTime:
				meta[i] = parseTime(raw)
			default:
				meta[i] = xlsx.ParseValue(raw)
			}
		}

		records = append(records, survey.Record{
			Site:        strings.TrimSpace(at(survey.ColSite)),
			Point:       strings.TrimSpace(at(survey.ColPoint)),
			Meta:        meta,
			SpeciesCode: strings.TrimSpace(at(survey.ColSpeciesCode)),
			ProofedBy:   strings.TrimSpace(at(survey.ColProofedBy)),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q has no data rows: %w", s.Name, survey.ErrEmptyResult)
	}
	return records, nil
}

// parseTime keeps stored times as day fractions and clock-time text as text; the formatter
// converts the text later.
func parseTime(raw string) any {
	v := xlsx.ParseValue(raw)
	if n, ok := v.(int64); ok {
		return float64(n)
	}
	return v
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
