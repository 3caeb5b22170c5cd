package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ConfigIssue represents a validation finding.
type ConfigIssue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning"
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks cfg for values the pipeline cannot work with.
func Validate(cfg *Config) []ConfigIssue {
	var issues []ConfigIssue

	if strings.TrimSpace(cfg.Occupancy.Keyword) == "" {
		issues = append(issues, ConfigIssue{
			Key:      "occupancy.keyword",
			Severity: "error",
			Message:  "occupancy file keyword is empty — every .xlsx file would match",
			Fix:      "set occupancy.keyword to part of the occupancy file name, e.g. occupanc",
		})
	}
	if strings.TrimSpace(cfg.Abundance.Keyword) == "" {
		issues = append(issues, ConfigIssue{
			Key:      "abundance.keyword",
			Severity: "error",
			Message:  "abundance file keyword is empty — every .xlsx file would match",
			Fix:      "set abundance.keyword to part of the abundance file name, e.g. abundanc",
		})
	}

	if len(cfg.Species) == 0 {
		issues = append(issues, ConfigIssue{
			Key:      "species",
			Severity: "error",
			Message:  "no species codes configured",
			Fix:      "remove species from the config file to use the default list",
		})
	}
	seen := make(map[string]bool)
	for _, code := range cfg.Species {
		norm := strings.ToUpper(strings.TrimSpace(code))
		switch {
		case norm == "":
			issues = append(issues, ConfigIssue{Key: "species", Severity: "error", Message: "blank species code"})
		case seen[norm]:
			issues = append(issues, ConfigIssue{Key: "species", Severity: "error", Message: fmt.Sprintf("species code %q listed twice", code)})
		}
		seen[norm] = true
	}

	if c := cfg.Format.HighlightColor; c != "" && !hexColor.MatchString(c) {
		issues = append(issues, ConfigIssue{
			Key:      "format.highlight_color",
			Severity: "warning",
			Message:  fmt.Sprintf("highlight colour %q is not a 6-digit hex value", c),
			Fix:      "use a value such as FFFF00",
		})
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []ConfigIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
