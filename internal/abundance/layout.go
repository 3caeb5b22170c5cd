package abundance

import (
	"github.com/xuri/excelize/v2"

	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/survey"
)

// DefaultHighlight is the fill colour of the "Proofed by" column.
const DefaultHighlight = "FFFF00"

// Layout returns the formatter layout of an abundance sheet tracking species: Wind and Temp
// to one decimal, the date as MM/DD/YYYY, times as h:mm and "Proofed by" filled with
// highlight. With the default ten species these are columns I:J, D, E and W.
func Layout(species []string, highlight string) xlsx.Layout {
	column := func(n int) string {
		name, _ := excelize.ColumnNumberToName(n)
		return name
	}
	return xlsx.Layout{
		DecimalColumns:  []string{column(9), column(10)},
		DecimalFormat:   "0.0",
		DateColumn:      column(survey.MetaDate + 1),
		DateFormat:      "mm/dd/yyyy",
		TimeColumn:      column(survey.MetaTime + 1),
		TimeFormat:      "h:mm",
		HighlightColumn: column(len(survey.AbundanceHeader(species))),
		HighlightColor:  highlight,
	}
}
