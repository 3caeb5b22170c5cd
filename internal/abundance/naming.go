// Package abundance reconciles built abundance rows with the cumulative abundance workbook.
package abundance

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

const (
	dateNameLayout = "01-02-2006"
	suffixLayout   = "01-02 150405"
)

var occupancyWord = regexp.MustCompile(`(?i)occupanc.`)

// DateName formats a survey date the way abundance sheets and fallback files are named.
func DateName(d time.Time) string {
	return d.Format(dateNameLayout)
}

// Suffix is the marker appended to names that would otherwise collide.
func Suffix(now time.Time) string {
	return " (new " + now.Format(suffixLayout) + ")"
}

// SheetName returns the sheet name for a batch dated d, suffixed when existing already has it.
func SheetName(d time.Time, existing []string, now time.Time) string {
	name := DateName(d)
	if slices.Contains(existing, name) {
		name += Suffix(now)
	}
	return name
}

// FileName derives an abundance workbook name from the occupancy workbook name by swapping
// its "Occupanc?" word for "Abundance". Names without that word fall back to
// "<MM-DD-YYYY> Abundance Data Entry.xlsx", as do names whose extension the swap would eat.
func FileName(occupancyFile string, d time.Time) string {
	base := filepath.Base(occupancyFile)
	if word := occupancyWord.FindString(base); word != "" {
		name := strings.ReplaceAll(base, word, "Abundance")
		if name != base && strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			return name
		}
	}
	return DateName(d) + " Abundance Data Entry.xlsx"
}

// WithSuffix inserts the collision suffix before the file extension.
func WithSuffix(name string, now time.Time) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + Suffix(now) + ext
}
