package sublime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/subl-launch/ide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestCandidatePaths(t *testing.T) {
	assert.Equal(t, []string{"/Applications/Sublime Text.app"}, CandidatePaths("darwin", noEnv))
	assert.Len(t, CandidatePaths("linux", noEnv), 8)
	assert.Equal(t, CandidatePaths("linux", noEnv), CandidatePaths("freebsd", noEnv))
}

func TestCandidatePathsWindows(t *testing.T) {
	getenv := func(key string) string {
		if key == "ProgramFiles" {
			return `C:\Program Files`
		}
		return ""
	}

	assert.Equal(t, []string{"C:/Program Files/Sublime Text/sublime_text.exe"}, CandidatePaths("windows", getenv))
	assert.Empty(t, CandidatePaths("windows", noEnv))
}

func TestNewDiscoveryExistenceCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sublime_text")
	require.NoError(t, os.WriteFile(file, nil, 0755))

	linux := NewDiscovery("linux", noEnv)
	assert.True(t, linux.Exists(file))
	assert.False(t, linux.Exists(dir))
	assert.False(t, linux.Exists(filepath.Join(dir, "missing")))

	mac := NewDiscovery("darwin", noEnv)
	assert.True(t, mac.Exists(dir))
	assert.False(t, mac.Exists(file))
}

func TestNewDiscoveryNamesInstallations(t *testing.T) {
	d := NewDiscovery("linux", noEnv)
	d.Candidates = []string{"/usr/bin/subl", "/usr/bin/sublime_text"}
	d.Exists = func(string) bool { return true }

	assert.Equal(t, []ide.Installation{{Name: "Sublime Text", Path: "/usr/bin/subl"}}, d.Installations())
}

func TestIsInstallation(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"/Applications/Sublime Text.app", true},
		{"/Applications/SUBLIME TEXT.APP/", true},
		{`C:\Program Files\Sublime Text\sublime_text.exe`, true},
		{"C:/Program Files/Sublime Text/Sublime_Text.exe", true},
		{"/usr/bin/subl", true},
		{"/opt/sublime_text/sublime_text", true},
		{"/usr/bin/notepad", false},
		{"/Applications/Visual Studio Code.app", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInstallation(tt.path))
		})
	}
}

func TestMatchSynthesizesWithoutInstallations(t *testing.T) {
	installation, found := Match(nil, "/Applications/Sublime Text.app")

	assert.True(t, found)
	assert.Equal(t, ide.Installation{Name: "Sublime Text", Path: "/Applications/Sublime Text.app"}, installation)
}

func TestMatchUnknownFileName(t *testing.T) {
	installations := []ide.Installation{{Name: "Sublime Text", Path: "/usr/bin/notepad"}}

	_, found := Match(installations, "/usr/bin/notepad")
	assert.False(t, found)

	_, found = Match(nil, "/usr/bin/notepad")
	assert.False(t, found)
}

func TestMatchReturnsDiscoveredInstallation(t *testing.T) {
	installations := []ide.Installation{
		{Name: "Sublime Text (1/sublime_text)", Path: "/opt/1/sublime_text"},
		{Name: "Sublime Text (2/sublime_text)", Path: "/opt/2/sublime_text"},
	}

	installation, found := Match(installations, "/opt/2/sublime_text")

	assert.True(t, found)
	assert.Equal(t, installations[1], installation)
}

func TestMatchIsCaseSensitiveOnPath(t *testing.T) {
	installations := []ide.Installation{{Name: "Sublime Text (1/sublime_text)", Path: "/opt/1/sublime_text"}}

	installation, found := Match(installations, "/OPT/1/sublime_text")

	assert.True(t, found)
	assert.Equal(t, ide.Installation{Name: "Sublime Text", Path: "/OPT/1/sublime_text"}, installation)
}

func TestNewIDE(t *testing.T) {
	d := NewDiscovery("linux", noEnv)
	d.Candidates = []string{"/opt/sublime_text/sublime_text"}
	d.Exists = func(string) bool { return true }

	sublime := NewIDE(d)

	assert.Equal(t, "sublime", sublime.Identifier)
	assert.Equal(t, []ide.Installation{{Name: "Sublime Text", Path: "/opt/sublime_text/sublime_text"}}, sublime.OnDiscover())
	installation, found := sublime.OnMatch("/opt/sublime_text/sublime_text")
	assert.True(t, found)
	assert.Equal(t, "Sublime Text", installation.Name)
}

func TestEveryCandidateIsAnInstallationName(t *testing.T) {
	getenv := func(string) string { return `C:\Program Files` }

	for _, goos := range []string{"darwin", "windows", "linux"} {
		for _, candidate := range CandidatePaths(goos, getenv) {
			assert.True(t, IsInstallation(candidate), candidate)

			installation, found := Match([]ide.Installation{{Name: "Sublime Text (x)", Path: candidate}}, candidate)
			assert.True(t, found, candidate)
			assert.Equal(t, candidate, installation.Path)
		}
	}
}
