// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{" warn ", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"shouty", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "medrec.log")

	logger, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("command", "clearmu").Msg("executed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "executed", entry["message"])
	assert.Equal(t, "clearmu", entry["command"])
	assert.Equal(t, "medrec", entry["app"])
}

func TestNew_VerboseConsole(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Verbose: true, Stderr: &stderr})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("loaded config")
	assert.Contains(t, stderr.String(), "loaded config")
}

func TestNew_NoOutputs(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNew_BadLevel(t *testing.T) {
	_, closer, err := New(Options{Level: "nope"})
	assert.Error(t, err)
	assert.NotNil(t, closer)
}
