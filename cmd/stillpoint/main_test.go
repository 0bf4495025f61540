package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/jask/stillpoint/internal/auth"
	"github.com/jask/stillpoint/internal/config"
	"github.com/jask/stillpoint/internal/database/repository"
	"github.com/jask/stillpoint/internal/logging"
	"github.com/jask/stillpoint/internal/service"
)

// writeConfig points every path at a temp dir and returns the config path.
func writeConfig(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("STILLPOINT_CONFIG", "")
	cfgPath = filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`
[database]
path = %q

[auth]
session_path = %q

[ui]
timezone = "UTC"
`, filepath.Join(dir, "data", "sp.db"), filepath.Join(dir, "session.json"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath, dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"stillpoint"}, args...))
	return out.String(), err
}

func TestHistoryEmpty(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := run(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	require.Equal(t, "no sittings yet\n", out)
}

func TestHistoryAndClear(t *testing.T) {
	cfgPath, dir := writeConfig(t)

	// create schema through the CLI, then seed directly
	_, err := run(t, "--config", cfgPath, "history")
	require.NoError(t, err)

	db, err := openJournal(mustLoad(t, cfgPath))
	require.NoError(t, err)
	journal := &service.JournalService{Sittings: repository.NewSittingRepo(db)}
	start := time.Date(2026, 2, 3, 6, 30, 0, 0, time.UTC)
	_, err = journal.Record(context.Background(), start, start.Add(10*time.Minute), 600)
	require.NoError(t, err)
	_, err = journal.Record(context.Background(), start.Add(24*time.Hour), start.Add(24*time.Hour+time.Minute), 61)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.FileExists(t, filepath.Join(dir, "data", "sp.db"))

	out, err := run(t, "--config", cfgPath, "history", "-n", "5")
	require.NoError(t, err)
	require.Equal(t, "2026-02-04 06:30  01:01\n2026-02-03 06:30  10:00\n2 sittings, 11:01 total\n", out)

	out, err = run(t, "--config", cfgPath, "clear-history")
	require.NoError(t, err)
	require.Equal(t, "removed 2 sittings\n", out)

	out, err = run(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	require.Equal(t, "no sittings yet\n", out)
}

func TestSignOutCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t)
	session := auth.NewSession(filepath.Join(dir, "session.json"))
	require.NoError(t, session.Save("tok"))

	out, err := run(t, "--config", cfgPath, "signout")
	require.NoError(t, err)
	require.Equal(t, "signed out\n", out)
	require.False(t, session.SignedIn())
}

func TestSignInThenSignOut(t *testing.T) {
	cfgPath, dir := writeConfig(t)
	session := auth.NewSession(filepath.Join(dir, "session.json"))

	out, err := run(t, "--config", cfgPath, "signin", "--token", "tok")
	require.NoError(t, err)
	require.Equal(t, "signed in\n", out)
	require.True(t, session.SignedIn())
	tok, err := session.Token()
	require.NoError(t, err)
	require.Equal(t, "tok", tok)

	out, err = run(t, "--config", cfgPath, "signout")
	require.NoError(t, err)
	require.Equal(t, "signed out\n", out)
	require.False(t, session.SignedIn())
}

func TestRememberSavesOverrides(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := run(t, "--config", cfgPath, "--home", "history")
	require.NoError(t, err)
	require.False(t, mustLoad(t, cfgPath).UI.ShowHome)

	_, err = run(t, "--config", cfgPath, "--remember", "--home", "--no-journal", "history")
	require.NoError(t, err)
	cfg := mustLoad(t, cfgPath)
	require.True(t, cfg.UI.ShowHome)
	require.False(t, cfg.Journal.Enabled)
	require.Equal(t, "UTC", cfg.UI.Timezone)
}

func TestTUIErrorLogsToStderr(t *testing.T) {
	cfgPath, dir := writeConfig(t)
	orig := isTerminal
	isTerminal = func(uintptr) bool { return true }
	t.Cleanup(func() { isTerminal = orig })
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	// the database directory cannot be created under a regular file
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	body, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	body = bytes.Replace(body, []byte(filepath.Join(dir, "data", "sp.db")), []byte(filepath.Join(blocker, "data", "sp.db")), 1)
	require.NoError(t, os.WriteFile(cfgPath, body, 0o600))

	_, err = run(t, "--config", cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mkdir db dir")

	// main reports the returned error through logger; it must not go to the closed log file
	require.Equal(t, os.Stderr, logger.Out)
	require.FileExists(t, filepath.Join(dir, ".local", "share", "stillpoint", "stillpoint.log"))
}

func TestTUINeedsTerminal(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	orig := isTerminal
	isTerminal = func(uintptr) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := run(t, "--config", cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "interactive terminal")
}

func mustLoad(t *testing.T, cfgPath string) config.Config {
	t.Helper()
	t.Setenv("STILLPOINT_CONFIG", cfgPath)
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}
