package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestFormatterLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	log := Get("fmt-test")
	log.WithFields(logrus.Fields{"b": 2, "a": 1}).Warn("tick dropped")

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"))
	require.Contains(t, line, "fmt-test[")
	require.Contains(t, line, "<WARNING>: tick dropped a=1 b=2")
}

func TestGetReturnsSameLogger(t *testing.T) {
	require.Same(t, Get("same"), Get("same"))
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		require.NoError(t, SetLevel("info"))
	})

	log := Get("level-test")
	require.NoError(t, SetLevel("error"))
	log.Info("hidden")
	require.Empty(t, buf.String())

	require.Error(t, SetLevel("loud"))
}

func TestSetOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stillpoint.log")
	closer, err := SetOutFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Get("file-test").Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "<INFO>: hello")
}
