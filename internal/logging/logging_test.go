package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "trackit.log")

	l, err := NewFile(path, "debug", "json")
	require.NoError(t, err)
	l.Info("habits loaded")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "habits loaded")
}

func TestNewFileEmptyPathIsNop(t *testing.T) {
	l, err := NewFile("  ", "info", "json")
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("dropped")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	l, err := New("loud", "console")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(0))
	require.False(t, l.Core().Enabled(-1))
}
