package sublime

import (
	"os"
	"path"
	"strings"

	"github.com/bitrise-io/subl-launch/ide"
)

const (
	ideIdentifier = "sublime"
	ideName       = "Sublime Text"
	projectExt    = ".sublime-project"
	bundleBinary  = "Contents/SharedSupport/bin/subl"
)

const (
	goosDarwin  = "darwin"
	goosWindows = "windows"
	goosLinux   = "linux"
)

// candidatePaths holds the well-known install locations per GOOS. Platforms
// missing from the table use the linux list.
var candidatePaths = map[string]func(getenv func(string) string) []string{
	goosDarwin: func(func(string) string) []string {
		return []string{
			"/Applications/Sublime Text.app",
		}
	},
	goosWindows: func(getenv func(string) string) []string {
		programFiles := strings.ReplaceAll(getenv("ProgramFiles"), `\`, "/")
		if programFiles == "" {
			return nil
		}
		return []string{
			programFiles + "/Sublime Text/sublime_text.exe",
		}
	},
	goosLinux: func(func(string) string) []string {
		return []string{
			"/usr/bin/sublime_text",
			"/bin/sublime_text",
			"/usr/local/bin/sublime_text",
			"/snap/current/bin/sublime_text",
			"/snap/bin/sublime_text",
			"/snap/sublime_tex/current/opt/_sublime_text",
			"/usr/bin/subl",
			"/opt/sublime_text/sublime_text",
		}
	},
}

// supportedFileNames are compared after lower-casing and removing spaces.
var supportedFileNames = []string{
	"sublime_text.exe",
	"sublimetext.app",
	"sublime_text",
	"_sublime_text",
	"subl",
	"subl.exe",
}

func CandidatePaths(goos string, getenv func(string) string) []string {
	paths, ok := candidatePaths[goos]
	if !ok {
		paths = candidatePaths[goosLinux]
	}
	return paths(getenv)
}

// NewDiscovery returns a Discovery over the candidate table of goos. The app
// bundle is a directory on darwin, everywhere else the binary must be a regular file.
func NewDiscovery(goos string, getenv func(string) string) *ide.Discovery {
	exists := fileExists
	if goos == goosDarwin {
		exists = dirExists
	}

	return &ide.Discovery{
		EditorName: ideName,
		Candidates: CandidatePaths(goos, getenv),
		Exists:     exists,
	}
}

func NewIDE(discovery *ide.Discovery) ide.IDE {
	return ide.IDE{
		Identifier: ideIdentifier,
		Name:       ideName,
		Aliases:    []string{"subl", "sublime-text"},
		OnDiscover: discovery.Installations,
		OnMatch: func(p string) (ide.Installation, bool) {
			return Match(discovery.Installations(), p)
		},
	}
}

// IsInstallation reports whether the file name of p is one Sublime Text ships under.
func IsInstallation(p string) bool {
	if p == "" {
		return false
	}

	filename := strings.ReplaceAll(strings.ToLower(path.Base(strings.ReplaceAll(p, `\`, "/"))), " ", "")
	for _, name := range supportedFileNames {
		if filename == name {
			return true
		}
	}
	return false
}

// Match resolves p against the discovered installations. A recognised file name
// is enough for p to count as an installation even when discovery missed it.
func Match(installations []ide.Installation, p string) (ide.Installation, bool) {
	if !IsInstallation(p) {
		return ide.Installation{}, false
	}

	if installation, ok := ide.FindByPath(installations, p); ok {
		return installation, true
	}

	return ide.Installation{Name: ideName, Path: p}, true
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
