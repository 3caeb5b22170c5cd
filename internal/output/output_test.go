package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Info("Loading %s...", "Occupancy")
	c.Success("done")
	c.Warn("careful")
	c.Error("broken: %d", 2)

	assert.Equal(t, "Loading Occupancy...\ndone\ncareful\nbroken: 2\n", buf.String())
	assert.Same(t, &buf, c.Writer())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, "run", map[string]int{"rows": 3}))

	var got JSONResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Equal(t, "run", got.Command)

	buf.Reset()
	require.NoError(t, PrintJSONError(&buf, "run", errors.New("boom"), ExitSystemError))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.OK)
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, ExitSystemError, got.Code)
}
