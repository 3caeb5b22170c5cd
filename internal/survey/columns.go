// Package survey holds the marsh-bird survey data model and the abundance builder.
package survey

// DefaultSpecies are the tracked species codes, in header order.
var DefaultSpecies = []string{"COGA", "CLING", "CLRA", "KIRA", "PUGA", "LEBI", "SORA", "AMCO", "PBGR", "LIMP"}

// Occupancy sheet column names.
const (
	ColSite           = "Site"
	ColPoint          = "Point"
	ColBout           = "Bout"
	ColDate           = "Date"
	ColTime           = "Time"
	ColFullPointCount = "Full Point Count (Y/N)"
	ColObserver       = "Observer"
	ColSky            = "Sky"
	ColWindSpeed      = "Wind Speed (knots)"
	ColTemp           = "Temp (C)"
	ColNoise          = "Noise"
	ColWaterDepth     = "Water Depth (m)"
	ColSpeciesCode    = "Species Code"
	ColProofedBy      = "Proofed By"
)

// ProofedByHeader is the last column of an abundance sheet.
const ProofedByHeader = "Proofed by"

// MetaColumns are the occupancy columns copied into an abundance row, in order.
var MetaColumns = []string{
	ColSite, ColPoint, ColBout, ColDate, ColTime, ColFullPointCount,
	ColObserver, ColSky, ColWindSpeed, ColTemp, ColNoise, ColWaterDepth,
}

// BaseHeaders are the abundance names of MetaColumns, position for position.
var BaseHeaders = []string{
	"Site", "Point", "Bout", "Date", "Time", "Full Point Count (Y/N)",
	"Observer", "Sky", "Wind", "Temp", "Sound", "Water Depth",
}

// Indexes into Record.Meta and Row.Meta.
const (
	MetaDate = 3
	MetaTime = 4
)

// RequiredColumns lists every header an occupancy sheet must carry.
func RequiredColumns() []string {
	cols := make([]string, 0, len(MetaColumns)+2)
	cols = append(cols, MetaColumns...)
	return append(cols, ColSpeciesCode, ColProofedBy)
}

// AbundanceHeader returns the expected header row of an abundance sheet.
func AbundanceHeader(species []string) []string {
	h := make([]string, 0, len(BaseHeaders)+len(species)+1)
	h = append(h, BaseHeaders...)
	h = append(h, species...)
	return append(h, ProofedByHeader)
}
