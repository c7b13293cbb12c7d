package sublime

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitrise-io/subl-launch/ide"
	"github.com/bitrise-io/subl-launch/logger"
)

const DefaultArgumentTemplate = "$(File):$(Line):$(Column)"

var unixQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

var ErrNoInstallation = errors.New("no Sublime Text installation configured or discovered")

type Preferences interface {
	ArgumentTemplate() string
	HandledExtensions() map[string]struct{}
	DefaultApp() string
}

type ProjectGenerator interface {
	SolutionExists() bool
	Sync() error
	ProjectDirectory() string
}

// Spawner starts image with a single argument string and lets it run on its own.
type Spawner interface {
	Spawn(image, arguments string, hidden bool) error
}

type Dispatcher struct {
	GOOS        string
	Preferences Preferences
	Project     ProjectGenerator
	Discovery   *ide.Discovery
	Spawner     Spawner
}

// Open launches Sublime Text on targetPath at line and column, or on the project
// file when targetPath is empty. It returns false without launching anything if
// the target is not a handled, existing file. Spawn errors are returned as is.
func (d *Dispatcher) Open(targetPath string, line, column int) (bool, error) {
	if targetPath != "" && (!d.SupportsExtension(targetPath) || !fileExists(targetPath)) {
		logger.Debug("target not handled", "path", targetPath)
		return false, nil
	}

	if line == -1 {
		line = 1
	}
	if column == -1 {
		column = 0
	}

	var arguments string
	if targetPath == "" {
		if err := d.CreateIfDoesntExist(); err != nil {
			return false, err
		}
		projectFileName := filepath.Base(d.Project.ProjectDirectory()) + projectExt
		arguments = fmt.Sprintf(`--project "%s"`, d.escape(projectFileName))
	} else {
		arguments = ExpandArguments(d.Preferences.ArgumentTemplate(), d.escape(targetPath), line, column)
	}

	app, err := d.defaultApp()
	if err != nil {
		return false, err
	}

	image := app
	hidden := false
	if d.GOOS == goosDarwin {
		image = strings.TrimSuffix(app, "/") + "/" + bundleBinary
	} else {
		hidden = strings.HasSuffix(strings.ToLower(app), ".cmd")
	}

	logger.Debug("spawning editor", "image", image, "arguments", arguments, "hidden", hidden)
	if err := d.Spawner.Spawn(image, arguments, hidden); err != nil {
		return false, fmt.Errorf("start %s: %w", ideName, err)
	}

	return true, nil
}

// CreateIfDoesntExist generates the project file unless it is already there.
func (d *Dispatcher) CreateIfDoesntExist() error {
	if d.Project.SolutionExists() {
		return nil
	}

	if err := d.Project.Sync(); err != nil {
		return fmt.Errorf("sync project: %w", err)
	}
	return nil
}

func (d *Dispatcher) SupportsExtension(p string) bool {
	ext := strings.TrimPrefix(filepath.Ext(p), ".")
	if ext == "" {
		return false
	}

	_, ok := d.Preferences.HandledExtensions()[strings.ToLower(ext)]
	return ok
}

// escape protects a value placed inside double quotes from the shell word
// splitting done by the unix spawner. Windows passes the command line through as is.
func (d *Dispatcher) escape(value string) string {
	if d.GOOS == goosWindows {
		return value
	}
	return unixQuoteEscaper.Replace(value)
}

func (d *Dispatcher) defaultApp() (string, error) {
	if app := d.Preferences.DefaultApp(); app != "" {
		return app, nil
	}

	if d.Discovery != nil {
		if installations := d.Discovery.Installations(); len(installations) > 0 {
			return installations[0].Path, nil
		}
	}

	return "", ErrNoInstallation
}

// ExpandArguments replaces every $(File), $(Line) and $(Column) in template.
// The file is quoted before substitution, other text is kept verbatim. Callers
// escape file for the platform they launch on.
func ExpandArguments(template, file string, line, column int) string {
	if template == "" {
		template = DefaultArgumentTemplate
	}

	return strings.NewReplacer(
		"$(File)", `"`+file+`"`,
		"$(Line)", strconv.Itoa(line),
		"$(Column)", strconv.Itoa(column),
	).Replace(template)
}
