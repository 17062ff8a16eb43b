package logging

import (
	"bytes"
	"context"
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
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablemerge.log")
	logger, closer, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info().Str("file", "a.csv").Msg("loaded primary")
	logger.Debug().Msg("suppressed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"loaded primary"`)
	assert.Contains(t, string(data), `"file":"a.csv"`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestNew_WriterOverridesOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "unused.log")
	logger, closer, err := New(&Config{Level: "debug", Format: "json", Output: path, Writer: buf})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())

	logger.Debug().Int("rows", 3).Msg("dataset loaded")

	assert.Contains(t, buf.String(), `"rows":3`)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigure_UnopenableOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := *Default()
	t.Cleanup(func() { SetDefault(prev) })
	SetDefault(zerolog.New(buf))

	path := filepath.Join(t.TempDir(), "no-such-dir", "tablemerge.log")
	_, closer, err := Configure(&Config{Level: "info", Output: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-dir")
	assert.NoError(t, closer.Close())
	Default().Info().Msg("still here")
	assert.Contains(t, buf.String(), "still here", "default logger unchanged")
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)

	ctx := WithLogger(context.Background(), &logger)
	FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.Same(t, Default(), FromContext(context.Background()))
	assert.Same(t, Default(), FromContext(nil))
}

func TestSetDefault(t *testing.T) {
	prev := *Default()
	t.Cleanup(func() { SetDefault(prev) })

	buf := &bytes.Buffer{}
	SetDefault(zerolog.New(buf))
	Default().Warn().Msg("swapped")
	assert.Contains(t, buf.String(), "swapped")
}
