// Package pipeline runs the occupancy-to-abundance batch from start to finish.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/abukit/internal/abundance"
	"github.com/klytics/abukit/internal/config"
	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/fs"
	"github.com/klytics/abukit/internal/occupancy"
	"github.com/klytics/abukit/internal/output"
	"github.com/klytics/abukit/internal/prompt"
	"github.com/klytics/abukit/internal/survey"
)

// Settings are the tunable parts of a run.
type Settings struct {
	OccupancyKeyword string
	AbundanceKeyword string
	Species          []string
	Highlight        string
}

// SettingsFrom copies the run settings out of cfg.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		OccupancyKeyword: cfg.Occupancy.Keyword,
		AbundanceKeyword: cfg.Abundance.Keyword,
		Species:          cfg.Species,
		Highlight:        cfg.Format.HighlightColor,
	}
}

// Runner holds everything one run needs. Stages hand their results to the next stage
// explicitly; nothing is kept between runs.
type Runner struct {
	Dir      string
	Settings Settings
	Prompt   prompt.Prompter
	Out      *output.Console
	Log      *zap.Logger
	Now      func() time.Time
}

// Summary reports what a run did.
type Summary struct {
	Source      string               `json:"source"`
	SourceSheet string               `json:"sourceSheet"`
	Records     int                  `json:"records"`
	Destination *abundance.Result    `json:"destination"`
	Format      *xlsx.ReformatReport `json:"format,omitempty"`
}

// Run loads the occupancy sheet, builds abundance rows, writes them to the resolved
// destination and reformats it. Nothing is written until the rows are built and the
// destination is settled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	out := r.Out
	if out == nil {
		out = output.NewConsole(nil)
	}

	out.Info("Loading Occupancy data file...")
	source, sheet, err := r.pickSource()
	if err != nil {
		return nil, err
	}
	records, err := occupancy.Load(filepath.Join(r.Dir, source), sheet)
	if err != nil {
		return nil, err
	}
	log.Debug("occupancy loaded", zap.String("file", source), zap.String("sheet", sheet), zap.Int("records", len(records)))

	ok, err := r.Prompt.Confirm(fmt.Sprintf(
		"\nLoaded FILE: '%s' & SHEET: '%s' as Occupancy data file.\n\n"+
			"Type any key and then Enter to cancel. Press Enter to continue with this file. ", source, sheet))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("occupancy file declined: %w", survey.ErrUserCancelled)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.Info("Creating abundance rows...")
	rows, err := survey.Build(records, r.Settings.Species)
	if err != nil {
		return nil, err
	}
	log.Debug("abundance rows built", zap.Int("rows", len(rows)))

	out.Info("Loading abundance data file...")
	resolver := &abundance.Resolver{
		Dir:     r.Dir,
		Keyword: r.Settings.AbundanceKeyword,
		Prompt:  r.Prompt,
		Log:     log,
		Now:     r.Now,
	}
	plan, err := resolver.Resolve(source, rows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writer := &abundance.Writer{Dir: r.Dir, Species: r.Settings.Species, Log: log}
	res, err := writer.Write(plan, rows)
	if err != nil {
		return nil, err
	}
	switch plan.Strategy {
	case abundance.Append:
		if res.HeaderRewritten {
			out.Warn("Headers in sheet '%s' did not match and were rewritten.", plan.Sheet)
		}
		out.Success("Non-proofed Occupancy data added to Abundance file.")
	case abundance.NewSheet:
		out.Success("New sheet '%s' added to '%s'.", plan.Sheet, plan.File)
	case abundance.NewFile:
		out.Success("New abundance file created: '%s'", plan.File)
	}

	out.Info("Reformatting abundance file...")
	report, err := xlsx.ReformatFile(res.Path, plan.Sheet, abundance.Layout(r.Settings.Species, r.Settings.Highlight))
	if err != nil {
		return nil, err
	}
	if len(report.Unparsed) > 0 {
		log.Debug("time cells left as text", zap.Strings("cells", report.Unparsed))
	}

	return &Summary{
		Source:      source,
		SourceSheet: sheet,
		Records:     len(records),
		Destination: res,
		Format:      report,
	}, nil
}

func (r *Runner) pickSource() (string, string, error) {
	names, err := fs.Find(r.Dir, r.Settings.OccupancyKeyword)
	if err != nil {
		return "", "", fmt.Errorf("no Occupancy file could be found: %w", err)
	}
	file, err := prompt.Select(r.Prompt, "More than 1 possible Occupancy file found", names)
	if err != nil {
		return "", "", err
	}

	sheets, err := xlsx.SheetNames(filepath.Join(r.Dir, file))
	if err != nil {
		return "", "", err
	}
	sheet, err := prompt.Select(r.Prompt, "More than 1 sheet found in excel file", sheets)
	if err != nil {
		return "", "", err
	}
	return file, sheet, nil
}
