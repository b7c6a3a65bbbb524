// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closeLog, err := New(types.LoggingConfig{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug().Str("doi", "10.1000/xyz").Msg("fetching references")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetching references")
	assert.Contains(t, string(data), "10.1000/xyz")
}

func TestNewBadFilePath(t *testing.T) {
	_, _, err := New(types.LoggingConfig{File: filepath.Join(t.TempDir(), "missing-dir", "x.log")})
	assert.Error(t, err)
}
