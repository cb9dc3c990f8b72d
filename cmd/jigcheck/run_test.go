package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sigreer/jigcheck/internal/fb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFramebufferMissingDeviceIsFatal(t *testing.T) {
	dev, err := openFramebuffer(filepath.Join(t.TempDir(), "fb9"))
	assert.ErrorIs(t, err, fb.ErrOpen)
	assert.Nil(t, dev)
}

func TestOpenFramebufferNotAFramebuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb0")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := openFramebuffer(path)
	assert.ErrorIs(t, err, fb.ErrOpen)
}

func TestOpenFramebufferNotConfigured(t *testing.T) {
	dev, err := openFramebuffer("")
	assert.NoError(t, err)
	assert.Nil(t, dev)
}

func TestRunFailsWhenFramebufferMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "app.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("ODROID-APP-CONFIG\nMODEL,H3\nFB,"+filepath.Join(dir, "fb9")+"\n"), 0644))
	ui := filepath.Join(dir, "ui.yaml")
	require.NoError(t, os.WriteFile(ui, []byte("title: jig\n"), 0644))

	rootCmd.SetArgs([]string{
		"run",
		"-f", cfg,
		"-u", ui,
		"--db", "",
		"--log-output", filepath.Join(dir, "jigcheck.log"),
		"--sysfs-root", filepath.Join(dir, "sys"),
		"--dev-root", dir,
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, fb.ErrOpen)
}

func TestRunFailsWhenUIConfigMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "app.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("ODROID-APP-CONFIG\nMODEL,H3\n"), 0644))

	rootCmd.SetArgs([]string{
		"run",
		"-f", cfg,
		"-u", filepath.Join(dir, "missing.yaml"),
		"--db", "",
		"--log-output", filepath.Join(dir, "jigcheck.log"),
		"--sysfs-root", filepath.Join(dir, "sys"),
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
