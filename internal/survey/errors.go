package survey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that no workbook matched a search expression.
var ErrNotFound = errors.New("not found")

// ErrEmptyResult indicates that the occupancy data held no unproofed records.
var ErrEmptyResult = errors.New("no unproofed occupancy records")

// ErrUserCancelled indicates that the operator declined to continue.
var ErrUserCancelled = errors.New("cancelled by user")

// SchemaError reports occupancy columns missing from a sheet's header row.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}
