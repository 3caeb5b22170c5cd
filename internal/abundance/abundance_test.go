package abundance

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/prompt"
	"github.com/klytics/abukit/internal/survey"
)

var (
	surveyDay = time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC)
	clock     = time.Date(2023, 6, 1, 9, 8, 7, 0, time.UTC)
)

func fixedNow() time.Time { return clock }

func buildRows(t *testing.T, points ...string) []survey.Row {
	t.Helper()
	var records []survey.Record
	for _, p := range points {
		meta := make([]any, len(survey.MetaColumns))
		meta[0], meta[1], meta[survey.MetaDate] = "Marsh", p, surveyDay
		records = append(records, survey.Record{Site: "Marsh", Point: p, Meta: meta, SpeciesCode: "SORA"})
	}
	rows, err := survey.Build(records, survey.DefaultSpecies)
	require.NoError(t, err)
	return rows
}

func headerRow() []any {
	var row []any
	for _, h := range Header(survey.DefaultSpecies) {
		row = append(row, h)
	}
	return row
}

func readRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	s, err := xlsx.ReadSheet(path, sheet)
	require.NoError(t, err)
	return s.Rows
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "05-14-2023", DateName(surveyDay))
	assert.Equal(t, " (new 06-01 090807)", Suffix(clock))

	assert.Equal(t, "05-14-2023", SheetName(surveyDay, []string{"Sheet1"}, clock))
	assert.Equal(t, "05-14-2023 (new 06-01 090807)", SheetName(surveyDay, []string{"05-14-2023"}, clock))

	assert.Equal(t, "2023 SMB Abundance Data.xlsx", FileName("2023 SMB Occupancy Data.xlsx", surveyDay))
	assert.Equal(t, "smb Abundance.xlsx", FileName("smb OCCUPANCY.xlsx", surveyDay))
	assert.Equal(t, "05-14-2023 Abundance Data Entry.xlsx", FileName("survey.xlsx", surveyDay))
	assert.Equal(t, "05-14-2023 Abundance Data Entry.xlsx", FileName("occupanc", surveyDay))
	assert.Equal(t, "05-14-2023 Abundance Data Entry.xlsx", FileName("occupanc.xlsx", surveyDay))
	assert.Equal(t, "Abundance.XLSX", FileName("Occupancy.XLSX", surveyDay))

	assert.Equal(t, "A Abundance (new 06-01 090807).xlsx", WithSuffix("A Abundance.xlsx", clock))
}

func TestHeadersMatch(t *testing.T) {
	want := Header(survey.DefaultSpecies)
	assert.True(t, HeadersMatch(want, want))
	assert.True(t, HeadersMatch(append(append([]string{}, want...), "Notes"), want))
	assert.False(t, HeadersMatch(want[:len(want)-1], want))
	assert.False(t, HeadersMatch(nil, want))

	swapped := append([]string{}, want...)
	swapped[12], swapped[13] = swapped[13], swapped[12]
	assert.False(t, HeadersMatch(swapped, want))
}

func TestLayout(t *testing.T) {
	l := Layout(survey.DefaultSpecies, DefaultHighlight)
	assert.Equal(t, []string{"I", "J"}, l.DecimalColumns)
	assert.Equal(t, "D", l.DateColumn)
	assert.Equal(t, "E", l.TimeColumn)
	assert.Equal(t, "W", l.HighlightColumn)
	assert.Equal(t, "FFFF00", l.HighlightColor)

	assert.Equal(t, "O", Layout([]string{"SORA", "KIRA"}, "").HighlightColumn)
}

func TestResolveNoAbundanceFile(t *testing.T) {
	dir := t.TempDir()
	r := &Resolver{Dir: dir, Keyword: "abundanc", Prompt: &prompt.Scripted{}, Now: fixedNow}

	plan, err := r.Resolve("2023 Occupancy.xlsx", buildRows(t, "1"))
	require.NoError(t, err)
	assert.Equal(t, Plan{Strategy: NewFile, File: "2023 Abundance.xlsx", Sheet: "05-14-2023"}, plan)
}

func TestResolveNewFileNameTaken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, xlsx.CreateFile(filepath.Join(dir, "2023 Abundance.xlsx"), "old", [][]any{headerRow()}))
	s := &prompt.Scripted{Answers: []string{"no", "F"}}
	r := &Resolver{Dir: dir, Keyword: "abundanc", Prompt: s, Now: fixedNow}

	plan, err := r.Resolve("2023 Occupancy.xlsx", buildRows(t, "1"))
	require.NoError(t, err)
	assert.Equal(t, NewFile, plan.Strategy)
	assert.Equal(t, "2023 Abundance (new 06-01 090807).xlsx", plan.File)
}

func TestResolveAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance 2023.xlsx")
	require.NoError(t, xlsx.CreateFile(path, "05-01-2023", [][]any{headerRow()}))
	f, err := xlsx.Open(path)
	require.NoError(t, err)
	_, err = f.NewSheet("05-14-2023")
	require.NoError(t, err)
	require.NoError(t, xlsx.Save(f))
	require.NoError(t, f.Close())

	s := &prompt.Scripted{Choices: []int{1}}
	r := &Resolver{Dir: dir, Keyword: "abundanc", Prompt: s, Now: fixedNow}

	plan, err := r.Resolve("Occupancy.xlsx", buildRows(t, "1"))
	require.NoError(t, err)
	assert.Equal(t, Plan{Strategy: Append, File: "Abundance 2023.xlsx", Sheet: "05-14-2023"}, plan)
}

func TestResolveNewSheet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, xlsx.CreateFile(filepath.Join(dir, "Abundance.xlsx"), "05-14-2023", [][]any{headerRow()}))

	s := &prompt.Scripted{Answers: []string{"x", "s"}}
	r := &Resolver{Dir: dir, Keyword: "abundanc", Prompt: s, Now: fixedNow}

	plan, err := r.Resolve("Occupancy.xlsx", buildRows(t, "1"))
	require.NoError(t, err)
	assert.Equal(t, NewSheet, plan.Strategy)
	assert.Equal(t, "05-14-2023 (new 06-01 090807)", plan.Sheet)
}

func TestResolveCancel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, xlsx.CreateFile(filepath.Join(dir, "Abundance.xlsx"), "S", [][]any{headerRow()}))

	s := &prompt.Scripted{Answers: []string{"x", ""}}
	r := &Resolver{Dir: dir, Keyword: "abundanc", Prompt: s, Now: fixedNow}

	_, err := r.Resolve("Occupancy.xlsx", buildRows(t, "1"))
	assert.ErrorIs(t, err, survey.ErrUserCancelled)
}

func TestWriteNewFile(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}

	res, err := w.Write(Plan{Strategy: NewFile, File: "A.xlsx", Sheet: "05-14-2023"}, buildRows(t, "1", "2"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.StartRow)

	rows := readRows(t, res.Path, "05-14-2023")
	require.Len(t, rows, 3)
	assert.True(t, HeadersMatch(rows[0], Header(survey.DefaultSpecies)))
	assert.Equal(t, "2", rows[2][1])
	assert.Equal(t, "1", rows[2][18]) // SORA
}

func TestWriteAppendKeepsExistingRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	old := []any{"Old site", "9"}
	require.NoError(t, xlsx.CreateFile(path, "S", [][]any{headerRow(), old, old}))

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	res, err := w.Write(Plan{Strategy: Append, File: "Abundance.xlsx", Sheet: "S"}, buildRows(t, "1", "2", "3"))
	require.NoError(t, err)
	assert.False(t, res.HeaderRewritten)
	assert.Equal(t, 4, res.StartRow)

	rows := readRows(t, path, "S")
	require.Len(t, rows, 1+2+3)
	assert.Equal(t, "Old site", rows[1][0])
	assert.Equal(t, "Old site", rows[2][0])
	assert.Equal(t, "Marsh", rows[3][0])
	assert.Equal(t, "3", rows[5][1])
}

func TestWriteAppendRewritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	legacy := headerRow()
	legacy[10] = "Noise"
	require.NoError(t, xlsx.CreateFile(path, "S", [][]any{legacy, {"Old", "1"}}))

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	plan := Plan{Strategy: Append, File: "Abundance.xlsx", Sheet: "S"}

	res, err := w.Write(plan, buildRows(t, "1"))
	require.NoError(t, err)
	assert.True(t, res.HeaderRewritten)

	res, err = w.Write(plan, buildRows(t, "2"))
	require.NoError(t, err)
	assert.False(t, res.HeaderRewritten)

	rows := readRows(t, path, "S")
	require.Len(t, rows, 4)
	assert.Equal(t, "Sound", rows[0][10])
	assert.Equal(t, "Old", rows[1][0])
}

func TestWriteAppendSheetWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	require.NoError(t, xlsx.CreateFile(path, "S", [][]any{{"Old site", "9"}, {"Old site", "8"}}))

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	plan := Plan{Strategy: Append, File: "Abundance.xlsx", Sheet: "S"}
	res, err := w.Write(plan, buildRows(t, "1"))
	require.NoError(t, err)
	assert.True(t, res.HeaderRewritten)
	assert.Equal(t, 4, res.StartRow)

	rows := readRows(t, path, "S")
	require.Len(t, rows, 4)
	assert.True(t, HeadersMatch(rows[0], Header(survey.DefaultSpecies)))
	assert.Equal(t, "Old site", rows[1][0])
	assert.Equal(t, "9", rows[1][1])
	assert.Equal(t, "8", rows[2][1])
	assert.Equal(t, "Marsh", rows[3][0])

	res, err = w.Write(plan, buildRows(t, "2"))
	require.NoError(t, err)
	assert.False(t, res.HeaderRewritten)
	assert.Equal(t, 5, res.StartRow)
}

func TestWriteAppendLegacySpeciesOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	legacy := headerRow()
	legacy[12], legacy[18] = "SORA", "COGA"
	require.NoError(t, xlsx.CreateFile(path, "S", [][]any{legacy, {"Old", "1"}}))

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	res, err := w.Write(Plan{Strategy: Append, File: "Abundance.xlsx", Sheet: "S"}, buildRows(t, "1"))
	require.NoError(t, err)
	assert.True(t, res.HeaderRewritten)
	assert.Equal(t, 4, res.StartRow)

	rows := readRows(t, path, "S")
	require.Len(t, rows, 4)
	assert.Equal(t, "COGA", rows[0][12])
	assert.Equal(t, "SORA", rows[0][18])
	// the old header still labels the old rows beneath it
	assert.Equal(t, "SORA", rows[1][12])
	assert.Equal(t, "COGA", rows[1][18])
	assert.Equal(t, "Old", rows[2][0])
	assert.Equal(t, "1", rows[3][18])
}

func TestWriteAppendEmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	res, err := w.Write(Plan{Strategy: Append, File: "Abundance.xlsx", Sheet: "Sheet1"}, buildRows(t, "1"))
	require.NoError(t, err)
	assert.True(t, res.HeaderRewritten)
	assert.Equal(t, 2, res.StartRow)

	rows := readRows(t, path, "Sheet1")
	require.Len(t, rows, 2)
	assert.Equal(t, "Site", rows[0][0])
}

func TestWriteNewSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Abundance.xlsx")
	require.NoError(t, xlsx.CreateFile(path, "05-14-2023", [][]any{headerRow(), {"Kept"}}))

	w := &Writer{Dir: dir, Species: survey.DefaultSpecies}
	plan := Plan{Strategy: NewSheet, File: "Abundance.xlsx", Sheet: "05-14-2023 (new 06-01 090807)"}
	_, err := w.Write(plan, buildRows(t, "1"))
	require.NoError(t, err)

	assert.Equal(t, "Kept", readRows(t, path, "05-14-2023")[1][0])
	rows := readRows(t, path, plan.Sheet)
	require.Len(t, rows, 2)

	_, err = w.Write(plan, buildRows(t, "1"))
	assert.Error(t, err)
}
