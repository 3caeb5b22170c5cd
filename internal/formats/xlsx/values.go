package xlsx

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1/2/06",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05.999999",
	"3:04 PM",
	"3:04:05 PM",
}

// ParseValue converts a raw cell string into int64, float64, or the trimmed string.
// Blank cells become nil.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// ParseDate interprets a raw cell as a date: either an Excel serial number or one of the
// common textual layouts.
func ParseDate(raw string, date1904 bool) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayFraction parses a clock time such as "07:45:00" into the fraction of a day Excel uses
// to store times.
func DayFraction(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
		frac := float64(secs) + float64(t.Nanosecond())/1e9
		return frac / 86400, true
	}
	return 0, false
}
