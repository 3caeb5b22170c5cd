package abundance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/fs"
	"github.com/klytics/abukit/internal/prompt"
	"github.com/klytics/abukit/internal/survey"
)

// Resolver works out where new abundance rows go, asking the operator when a choice is
// needed. It never writes.
type Resolver struct {
	Dir     string
	Keyword string
	Prompt  prompt.Prompter
	Log     *zap.Logger
	Now     func() time.Time
}

// Resolve returns the destination plan for rows built from occupancyFile. An existing
// abundance workbook is offered for appending first; a missing one means a new file.
func (r *Resolver) Resolve(occupancyFile string, rows []survey.Row) (Plan, error) {
	now := r.now()
	batch := batchDate(rows, now)

	names, err := fs.Find(r.Dir, r.Keyword)
	if errors.Is(err, survey.ErrNotFound) {
		r.log().Debug("no abundance workbook found", zap.String("keyword", r.Keyword))
		return r.newFile(occupancyFile, batch, now), nil
	}
	if err != nil {
		return Plan{}, err
	}

	file, err := prompt.Select(r.Prompt, "More than 1 possible Abundance file found", names)
	if err != nil {
		return Plan{}, err
	}
	sheets, err := xlsx.SheetNames(filepath.Join(r.Dir, file))
	if err != nil {
		return Plan{}, err
	}
	sheet, err := prompt.Select(r.Prompt, "More than 1 sheet found in excel file", sheets)
	if err != nil {
		return Plan{}, err
	}

	ok, err := r.Prompt.Confirm(fmt.Sprintf(
		"\nLoaded FILE: '%s' & SHEET: '%s' as Abundance data file.\n\n"+
			"Type any key and then Enter to cancel and bring up additional options, or\n"+
			"press Enter to continue with this file. ", file, sheet))
	if err != nil {
		return Plan{}, err
	}
	if ok {
		return Plan{Strategy: Append, File: file, Sheet: sheet}, nil
	}

	answer, err := r.Prompt.Ask(fmt.Sprintf(
		"\nUser declined using file. Would you like to make a new Abundance file instead?\n"+
			"Press 'f' and then Enter to make a new file,\n"+
			"press 's' to add a new sheet to file '%s',\n"+
			"or press Enter to cancel: ", file))
	if err != nil {
		return Plan{}, err
	}

	switch strings.ToLower(answer) {
	case "f":
		return r.newFile(occupancyFile, batch, now), nil
	case "s":
		return Plan{Strategy: NewSheet, File: file, Sheet: SheetName(batch, sheets, now)}, nil
	}
	return Plan{}, fmt.Errorf("abundance file declined: %w", survey.ErrUserCancelled)
}

func (r *Resolver) newFile(occupancyFile string, batch, now time.Time) Plan {
	name := FileName(occupancyFile, batch)
	if fs.Exists(r.Dir, name) {
		r.log().Debug("abundance file name taken", zap.String("file", name))
		name = WithSuffix(name, now)
	}
	return Plan{Strategy: NewFile, File: name, Sheet: DateName(batch)}
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Resolver) log() *zap.Logger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop()
}

// batchDate is the first row's survey date, or the run date when it has none.
func batchDate(rows []survey.Row, now time.Time) time.Time {
	if len(rows) > 0 {
		if d, ok := rows[0].Date(); ok {
			return d
		}
	}
	return now
}
