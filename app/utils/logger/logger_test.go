package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "INFO"} {
			l, err := New(level)
			require.NoError(t, err, "level %q", level)
			assert.NotNil(t, l)
		}
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		_, err := New("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestNewWithWriter(t *testing.T) {
	t.Run("writes to the given writer with service context", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewWithWriter("info", &buf)
		require.NoError(t, err)

		l.Info("user created", "user_id", 1)

		out := buf.String()
		assert.Contains(t, out, "user created")
		assert.Contains(t, out, "tandain-auth")
		assert.Contains(t, out, "user_id")
	})

	t.Run("suppresses entries below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewWithWriter("error", &buf)
		require.NoError(t, err)

		l.Info("should not appear")
		l.Error("should appear")

		out := buf.String()
		assert.NotContains(t, out, "should not appear")
		assert.Contains(t, out, "should appear")
	})
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("info", &buf)
	require.NoError(t, err)

	WithComponent(l, "auth_usecase").Info("login completed")

	assert.True(t, strings.Contains(buf.String(), "auth_usecase"))
}
