package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", FormatJSON)

	log.Info().Msg("hidden")
	log.Warn().Str("system", "hull").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown", rec["message"])
	assert.Equal(t, "hull", rec["system"])
	assert.Equal(t, "warn", rec["level"])
	assert.Contains(t, rec, "time")
}

func TestNew_ConsoleIsPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", FormatConsole)

	log.Debug().Int("revived", 3).Msg("group revived")

	out := buf.String()
	assert.Contains(t, out, "group revived")
	assert.Contains(t, out, "revived=3")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.log")

	log, f, err := NewFile(path, "info")
	require.NoError(t, err)
	log.Info().Msg("tick")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"tick"`)
}

func TestNewFile_BadPath(t *testing.T) {
	_, f, err := NewFile(filepath.Join(t.TempDir(), "missing", "combat.log"), "info")
	assert.Error(t, err)
	assert.Nil(t, f)
}
