package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(cfg *LogConfig, buf *bytes.Buffer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(&bytes.Buffer{})
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(NewFilterHook(cfg))
	hook := NewAsyncHookWithWriters([]io.Writer{buf}, 10)
	l.AddHook(hook)
	return l, hook
}

func TestFilterHook_ByModule(t *testing.T) {
	var buf bytes.Buffer
	l, hook := newTestLogger(&LogConfig{FilterModules: "tagging"}, &buf)

	l.WithField("module", "tagging").Info("kept")
	l.WithField("module", "database").Info("dropped")
	l.Info("no module")
	require.NoError(t, hook.Close())

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "no module")
	assert.NotContains(t, out, "dropped")
}

func TestFilterHook_ByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, hook := newTestLogger(&LogConfig{FilterLogTypes: "error, warning"}, &buf)

	l.Warn("warned")
	l.Info("informed")
	l.Error("failed")
	require.NoError(t, hook.Close())

	out := buf.String()
	assert.True(t, strings.Contains(out, "warned") && strings.Contains(out, "failed"))
	assert.NotContains(t, out, "informed")
}

func TestAsyncHook_KeepsMessageAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l, hook := newTestLogger(&LogConfig{}, &buf)

	l.WithField("module", "tagging").Warn("aggregation failed")
	require.NoError(t, hook.Close())

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "aggregation failed")
	assert.Contains(t, out, "module=tagging")
	assert.NotContains(t, out, "_filtered")
}

func TestAsyncHook_WritesAfterClose(t *testing.T) {
	var buf bytes.Buffer
	l, hook := newTestLogger(&LogConfig{}, &buf)
	require.NoError(t, hook.Close())

	l.Error("late")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "late")
}

func TestParseFilter(t *testing.T) {
	assert.Equal(t, map[string]bool{"*": true}, parseFilter(""))
	assert.Equal(t, map[string]bool{"*": true}, parseFilter("*"))
	assert.Equal(t, map[string]bool{"tagging": true, "events": true}, parseFilter(" Tagging ,events,"))
}

func TestDefaultConfig_TestEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
}
