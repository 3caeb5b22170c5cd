// Package fs locates workbooks in the working directory.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klytics/abukit/internal/survey"
)

// Pattern returns the case-insensitive expression Find uses for keyword.
func Pattern(keyword string) string {
	return regexp.QuoteMeta(keyword) + `.*\.xlsx`
}

// Find lists the .xlsx files directly inside dir whose names contain keyword followed by the
// extension, ignoring case. Names are returned sorted. Office lock files (~$...) are skipped.
// No match yields an error wrapping survey.ErrNotFound.
func Find(dir, keyword string) ([]string, error) {
	re, err := regexp.Compile("(?i)" + Pattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("invalid search keyword %q: %w", keyword, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		if re.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no file in %s matches '%s': %w", dir, Pattern(keyword), survey.ErrNotFound)
	}

	sort.Strings(names)
	return names, nil
}

// Exists reports whether dir already holds a file called name.
func Exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
