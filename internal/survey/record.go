package survey

import (
	"strings"
	"time"
)

// Record is one observation row of an occupancy sheet.
type Record struct {
	Site  string
	Point string
	// Meta holds the MetaColumns values with their native cell types:
	// float64/int64 for numbers, time.Time for the date, string for text, nil for blanks.
	Meta        []any
	SpeciesCode string
	ProofedBy   string
}

// Proofed reports whether someone has signed off on the record.
func (r Record) Proofed() bool {
	return strings.TrimSpace(r.ProofedBy) != ""
}

// Row is one abundance row: a unique Site/Point with its species tallies.
type Row struct {
	Meta      []any
	Counts    []int
	ProofedBy string
}

// Cells returns the row's values in abundance header order.
func (r Row) Cells() []any {
	cells := make([]any, 0, len(r.Meta)+len(r.Counts)+1)
	cells = append(cells, r.Meta...)
	for _, n := range r.Counts {
		cells = append(cells, n)
	}
	var proofed any
	if r.ProofedBy != "" {
		proofed = r.ProofedBy
	}
	return append(cells, proofed)
}

// Total is the sum of the species counts.
func (r Row) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Date returns the survey date when the Date cell holds one.
func (r Row) Date() (time.Time, bool) {
	if len(r.Meta) <= MetaDate {
		return time.Time{}, false
	}
	t, ok := r.Meta[MetaDate].(time.Time)
	return t, ok
}
