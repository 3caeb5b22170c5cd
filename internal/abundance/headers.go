package abundance

import "github.com/klytics/abukit/internal/survey"

// HeadersMatch reports whether actual carries every expected header at the same position.
// Columns past the expected ones are not inspected.
func HeadersMatch(actual, expected []string) bool {
	for i, want := range expected {
		if i >= len(actual) || actual[i] != want {
			return false
		}
	}
	return true
}

// Header is the expected abundance header row for species.
func Header(species []string) []string {
	return survey.AbundanceHeader(species)
}
