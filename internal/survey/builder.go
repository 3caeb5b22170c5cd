package survey

import "strings"

type groupKey struct {
	site, point string
}

// Build turns occupancy records into abundance rows, one per distinct Site/Point among the
// unproofed records. Sites keep their first-seen order and points keep their first-seen order
// within each site. Returns ErrEmptyResult when nothing is left after filtering.
func Build(records []Record, species []string) ([]Row, error) {
	index := make(map[string]int, len(species))
	for i, code := range species {
		index[normalizeCode(code)] = i
	}

	var sites []string
	points := make(map[string][]groupKey)
	groups := make(map[groupKey]*Row)

	for _, rec := range records {
		if rec.Proofed() {
			continue
		}
		key := groupKey{site: rec.Site, point: rec.Point}
		row, ok := groups[key]
		if !ok {
			if _, seen := points[rec.Site]; !seen {
				sites = append(sites, rec.Site)
			}
			points[rec.Site] = append(points[rec.Site], key)

			meta := make([]any, len(rec.Meta))
			copy(meta, rec.Meta)
			row = &Row{
				Meta:      meta,
				Counts:    make([]int, len(species)),
				ProofedBy: rec.ProofedBy,
			}
			groups[key] = row
		}
		if i, tracked := index[normalizeCode(rec.SpeciesCode)]; tracked {
			row.Counts[i]++
		}
	}

	if len(groups) == 0 {
		return nil, ErrEmptyResult
	}

	rows := make([]Row, 0, len(groups))
	for _, site := range sites {
		for _, key := range points[site] {
			rows = append(rows, *groups[key])
		}
	}
	return rows, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
