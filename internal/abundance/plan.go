package abundance

// Strategy says how new rows reach the abundance workbook.
type Strategy int

const (
	// Append adds rows below an existing sheet's data.
	Append Strategy = iota
	// NewSheet adds a date-named sheet to an existing workbook.
	NewSheet
	// NewFile creates a new workbook.
	NewFile
)

func (s Strategy) String() string {
	switch s {
	case Append:
		return "append"
	case NewSheet:
		return "new-sheet"
	case NewFile:
		return "new-file"
	}
	return "unknown"
}

// MarshalText renders the strategy by name in JSON summaries.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Plan is a fully resolved destination. File is a name inside the working directory.
type Plan struct {
	Strategy Strategy `json:"strategy"`
	File     string   `json:"file"`
	Sheet    string   `json:"sheet"`
}
