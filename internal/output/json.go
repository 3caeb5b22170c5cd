package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klytics/abukit/cmd/version"
)

// Exit codes for consistent error reporting.
const (
	ExitOK          = 0 // success, or the operator stopped the run
	ExitUserError   = 1 // missing input file, bad configuration
	ExitSystemError = 2 // malformed workbook, IO error
)

// JSONResult is the standard JSON output envelope.
type JSONResult struct {
	OK      bool        `json:"ok"`
	Command string      `json:"command"`
	Version string      `json:"version"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    int         `json:"code,omitempty"`
}

// PrintJSON writes a standard success JSON result to w.
func PrintJSON(w io.Writer, cmd string, data interface{}) error {
	result := JSONResult{
		OK:      true,
		Command: cmd,
		Version: version.Version,
		Data:    data,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// PrintJSONError writes a standard error JSON result to w.
func PrintJSONError(w io.Writer, cmd string, err error, code int) error {
	result := JSONResult{
		OK:      false,
		Command: cmd,
		Version: version.Version,
		Error:   err.Error(),
		Code:    code,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(result); encErr != nil {
		return fmt.Errorf("could not encode JSON error: %w", encErr)
	}
	return nil
}
