package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/subl-launch/config"
	"github.com/bitrise-io/subl-launch/ide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), config.ConfigFileName)
	argv := append([]string{cliName, "--" + configFlag, configPath}, args...)
	return configPath, newRootCommand(a).Run(context.Background(), argv)
}

func TestIDECommandUsesIdentifierAndAliases(t *testing.T) {
	a := newApp("linux", noEnv)

	cmd := newIDECommand(a)

	assert.Equal(t, "sublime", cmd.Name)
	assert.Equal(t, []string{"subl", "sublime-text"}, cmd.Aliases)

	var names []string
	for _, sub := range cmd.Commands {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"list", "match", "open", "use", "sync"}, names)
}

func TestMatchThroughAlias(t *testing.T) {
	_, err := runCLI(t, newApp("linux", noEnv), "subl", "match", "/Applications/Sublime Text.app")
	assert.NoError(t, err)

	_, err = runCLI(t, newApp("linux", noEnv), "sublime-text", "match", "/usr/bin/notepad")
	assert.Error(t, err)
}

func TestUseSavesSnapInstallation(t *testing.T) {
	path := "/snap/sublime_tex/current/opt/_sublime_text"

	configPath, err := runCLI(t, newApp("linux", noEnv), "sublime", "use", path)
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.DefaultApp())
}

func TestChooseInstallationSingle(t *testing.T) {
	a := newApp("linux", noEnv)
	a.discovery.Candidates = []string{"/snap/sublime_tex/current/opt/_sublime_text"}
	a.discovery.Exists = func(string) bool { return true }

	installation, err := a.chooseInstallation()

	require.NoError(t, err)
	assert.Equal(t, ide.Installation{Name: "Sublime Text", Path: "/snap/sublime_tex/current/opt/_sublime_text"}, installation)
}

func TestChooseInstallationNone(t *testing.T) {
	a := newApp("linux", noEnv)
	a.discovery.Candidates = nil

	_, err := a.chooseInstallation()

	assert.Error(t, err)
}

func TestOpenUnhandledFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := runCLI(t, newApp("linux", noEnv), "sublime", "open", file)

	assert.ErrorIs(t, err, errNotHandled)
}
