package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klytics/abukit/internal/survey"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2023 SMB Occupancy Data.xlsx")
	touch(t, dir, "occupancy-backup.XLSX")
	touch(t, dir, "~$2023 SMB Occupancy Data.xlsx")
	touch(t, dir, "Occupancy notes.docx")
	touch(t, dir, "Abundance.xlsx")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "occupancy.xlsx"), 0755))

	names, err := Find(dir, "occupanc")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023 SMB Occupancy Data.xlsx", "occupancy-backup.XLSX"}, names)
}

func TestFindNone(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Occupancy.xlsx")

	_, err := Find(dir, "abundanc")
	assert.ErrorIs(t, err, survey.ErrNotFound)
	assert.ErrorContains(t, err, `abundanc.*\.xlsx`)
}

func TestFindKeywordIsLiteral(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "axb.xlsx")

	_, err := Find(dir, "a.b")
	assert.ErrorIs(t, err, survey.ErrNotFound)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "here.xlsx")
	assert.True(t, Exists(dir, "here.xlsx"))
	assert.False(t, Exists(dir, "gone.xlsx"))
}
