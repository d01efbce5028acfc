package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const renderTestSnapshot = `{
	"title": "Inf Money Stock Bot",
	"equity_series": [
		{"date": "2025-03-04", "equity": 1000},
		{"date": "2025-03-05", "equity": 1100}
	]
}`

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestRenderCommand(t *testing.T) {
	t.Run("default --out writes report.html", func(t *testing.T) {
		dir := chdirTemp(t)
		snap := filepath.Join(dir, "stockinfo.json")
		require.NoError(t, os.WriteFile(snap, []byte(renderTestSnapshot), 0o644))

		root := newRootCmd()
		root.SetArgs([]string{"render", "--data", snap})
		require.NoError(t, root.Execute())

		raw, err := os.ReadFile(filepath.Join(dir, "report.html"))
		require.NoError(t, err)
		require.Contains(t, string(raw), "Inf Money Stock Bot")
		require.Contains(t, string(raw), "<svg")
	})

	t.Run("explicit --out is honored", func(t *testing.T) {
		dir := chdirTemp(t)
		snap := filepath.Join(dir, "stockinfo.json")
		require.NoError(t, os.WriteFile(snap, []byte(renderTestSnapshot), 0o644))

		out := filepath.Join(dir, "custom.html")
		root := newRootCmd()
		root.SetArgs([]string{"render", "--data", snap, "--out", out})
		require.NoError(t, root.Execute())

		_, err := os.Stat(out)
		require.NoError(t, err)
	})
}

func TestCommandFlagDefaultsAreIndependent(t *testing.T) {
	// render and history both define --out; registering one must not clobber
	// the other's default
	root := newRootCmd()

	renderCmd, _, err := root.Find([]string{"render"})
	require.NoError(t, err)
	historyCmd, _, err := root.Find([]string{"history"})
	require.NoError(t, err)

	require.Equal(t, "report.html", renderCmd.Flags().Lookup("out").Value.String())
	require.Equal(t, "", historyCmd.Flags().Lookup("out").Value.String())
}

func TestSnapshotCommand(t *testing.T) {
	dir := chdirTemp(t)
	snap := filepath.Join(dir, "data", "stockinfo.json")

	root := newRootCmd()
	root.SetArgs([]string{"snapshot", "nvda", "--data", snap})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(snap)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"NVDA"`)
}
