package abundance

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/survey"
)

// Writer carries out a Plan. It only ever adds cells below existing data or fixes up the
// header row; earlier rows keep their content and order.
type Writer struct {
	Dir     string
	Species []string
	Log     *zap.Logger
}

// Result describes a completed write.
type Result struct {
	Plan
	Path            string `json:"path"`
	Rows            int    `json:"rows"`
	StartRow        int    `json:"startRow"`
	HeaderRewritten bool   `json:"headerRewritten"`
}

// Write puts rows where plan says.
func (w *Writer) Write(plan Plan, rows []survey.Row) (*Result, error) {
	res := &Result{
		Plan: plan,
		Path: filepath.Join(w.Dir, plan.File),
		Rows: len(rows),
	}
	header := Header(w.Species)

	var err error
	switch plan.Strategy {
	case Append:
		err = w.appendRows(res, header, rows)
	case NewSheet:
		err = w.addSheet(res, header, rows)
	case NewFile:
		res.StartRow, res.HeaderRewritten = 2, true
		err = xlsx.CreateFile(res.Path, plan.Sheet, table(header, rows))
	default:
		err = fmt.Errorf("unknown strategy %v", plan.Strategy)
	}
	if err != nil {
		return nil, err
	}

	w.log().Debug("abundance rows written",
		zap.String("file", res.Path),
		zap.String("sheet", plan.Sheet),
		zap.Stringer("strategy", plan.Strategy),
		zap.Int("rows", res.Rows),
		zap.Int("startRow", res.StartRow))
	return res, nil
}

func (w *Writer) appendRows(res *Result, header []string, rows []survey.Row) error {
	f, err := xlsx.Open(res.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(res.Sheet)
	if err != nil {
		return fmt.Errorf("could not read sheet %q: %w", res.Sheet, err)
	}

	var current []string
	if len(existing) > 0 {
		current = existing[0]
	}
	last := lastUsedRow(existing)
	res.StartRow = max(last, 1) + 1

	if !HeadersMatch(current, header) {
		if blank(current) || sameSpeciesColumns(current, header) {
			w.log().Info("rewriting abundance header", zap.String("sheet", res.Sheet), zap.Strings("found", current))
		} else {
			// Row 1 is data or a header over other columns; keep it and put ours above.
			w.log().Info("inserting abundance header", zap.String("sheet", res.Sheet), zap.Strings("found", current))
			if err := f.InsertRows(res.Sheet, 1, 1); err != nil {
				return fmt.Errorf("could not insert header row in sheet %q: %w", res.Sheet, err)
			}
			res.StartRow = last + 2
		}
		if err := xlsx.WriteHeader(f, res.Sheet, header); err != nil {
			return err
		}
		res.HeaderRewritten = true
	}

	if err := xlsx.WriteRows(f, res.Sheet, res.StartRow, cells(rows)); err != nil {
		return err
	}
	return xlsx.Save(f)
}

func (w *Writer) addSheet(res *Result, header []string, rows []survey.Row) error {
	f, err := xlsx.Open(res.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(res.Sheet); idx >= 0 {
		return fmt.Errorf("could not add sheet %q to %s — it already exists", res.Sheet, res.File)
	}
	if _, err := f.NewSheet(res.Sheet); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", res.Sheet, err)
	}

	res.StartRow, res.HeaderRewritten = 2, true
	if err := xlsx.WriteRows(f, res.Sheet, 1, table(header, rows)); err != nil {
		return err
	}
	return xlsx.Save(f)
}

func (w *Writer) log() *zap.Logger {
	if w.Log != nil {
		return w.Log
	}
	return zap.NewNop()
}

// lastUsedRow is the 1-based index of the last row holding any text, 0 for an empty sheet.
func lastUsedRow(rows [][]string) int {
	for i := len(rows) - 1; i >= 0; i-- {
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				return i + 1
			}
		}
	}
	return 0
}

// sameSpeciesColumns reports whether row has the species columns of header at the same
// positions, so rewriting it only renames base columns.
func sameSpeciesColumns(row, header []string) bool {
	first := len(survey.MetaColumns)
	last := len(header) - 1 // Proofed by
	if len(row) < last {
		return false
	}
	for i := first; i < last; i++ {
		if !strings.EqualFold(strings.TrimSpace(row[i]), header[i]) {
			return false
		}
	}
	return true
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cells(rows []survey.Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}
	return out
}

func table(header []string, rows []survey.Row) [][]any {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	return append([][]any{head}, cells(rows)...)
}
