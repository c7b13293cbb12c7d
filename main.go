package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/bitrise-io/subl-launch/config"
	"github.com/bitrise-io/subl-launch/ide"
	"github.com/bitrise-io/subl-launch/logger"
	"github.com/bitrise-io/subl-launch/project"
	"github.com/bitrise-io/subl-launch/sublime"
	"github.com/urfave/cli/v3"
)

const (
	cliName = "subl-launch"

	configFlag     = "config"
	verboseFlag    = "verbose"
	lineFlag       = "line"
	columnFlag     = "column"
	appFlag        = "app"
	projectDirFlag = "project-dir"
)

// exit code 2 without an error message, the caller can fall back to another editor
var errNotHandled = errors.New("target not handled")

type app struct {
	goos      string
	cfg       *config.Config
	discovery *ide.Discovery
	ide       ide.IDE
}

func newApp(goos string, getenv func(string) string) *app {
	discovery := sublime.NewDiscovery(goos, getenv)
	return &app{
		goos:      goos,
		discovery: discovery,
		ide:       sublime.NewIDE(discovery),
	}
}

func newProjectDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  projectDirFlag,
		Usage: "Project root, the .sublime-project file is named after it",
		Value: ".",
	}
}

func main() {
	a := newApp(runtime.GOOS, os.Getenv)

	if err := newRootCommand(a).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errNotHandled) {
			os.Exit(2)
		}
		logger.Error(err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  cliName,
		Usage: fmt.Sprintf("Find %s installations and open files or projects in them", a.ide.Name),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFlag,
				Usage: "Path of the config file",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Usage:   "Print debug logs",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			newIDECommand(a),
			{
				Name:  "config",
				Usage: "Show or change preferences",
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print every preference",
						Action: a.showConfig,
					},
					{
						Name:      "set",
						Usage:     "Set a preference",
						UsageText: fmt.Sprintf("%s config set <KEY> <VALUE>", cliName),
						Action:    a.setConfig,
					},
					{
						Name:   "reset-arguments",
						Usage:  "Restore the default argument template",
						Action: a.resetArguments,
					},
				},
			},
		},
	}
}

func newIDECommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    a.ide.Identifier,
		Aliases: a.ide.Aliases,
		Usage:   fmt.Sprintf("Work with %s installations", a.ide.Name),
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  fmt.Sprintf("List the %s installations found on this machine", a.ide.Name),
				Action: a.listInstallations,
			},
			{
				Name:      "match",
				Usage:     fmt.Sprintf("Check whether a path is a %s installation", a.ide.Name),
				UsageText: usageTextForCommand(a.ide, "match <PATH>"),
				Action:    a.matchInstallation,
			},
			{
				Name:      "open",
				Usage:     "Open a file at a line and column, or the project when no file is given",
				UsageText: usageTextForCommand(a.ide, fmt.Sprintf("open [FILE] --%s <LINE> --%s <COLUMN>", lineFlag, columnFlag)),
				Action:    a.open,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    lineFlag,
						Usage:   "Line to jump to, -1 for unknown",
						Aliases: []string{"l"},
						Value:   -1,
					},
					&cli.IntFlag{
						Name:    columnFlag,
						Usage:   "Column to jump to, -1 for unknown",
						Aliases: []string{"c"},
						Value:   -1,
					},
					&cli.StringFlag{
						Name:  appFlag,
						Usage: "Installation to launch instead of the configured default",
					},
					newProjectDirFlag(),
				},
			},
			{
				Name:      "use",
				Usage:     "Choose the installation files are opened with",
				UsageText: usageTextForCommand(a.ide, "use [PATH]"),
				Action:    a.useInstallation,
			},
			{
				Name:   "sync",
				Usage:  "Create the .sublime-project file if it does not exist",
				Action: a.syncProject,
				Flags:  []cli.Flag{newProjectDirFlag()},
			},
		},
	}
}

func usageTextForCommand(editor ide.IDE, command string) string {
	return fmt.Sprintf("%s %s %s", cliName, editor.Identifier, command)
}

func (a *app) loadConfig(cmd *cli.Command) error {
	logger.SetVerbose(cmd.Bool(verboseFlag))

	path := cmd.String(configFlag)
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", path)

	a.cfg = cfg
	return nil
}

func (a *app) listInstallations(ctx context.Context, cmd *cli.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	installations := a.ide.OnDiscover()
	if len(installations) == 0 {
		logger.Warnf("No %s installation found", a.ide.Name)
		return nil
	}

	for _, installation := range installations {
		marker := " "
		if installation.Path == a.cfg.DefaultApp() {
			marker = "*"
		}
		logger.Detail("%s %s\t%s", marker, installation.Name, installation.Path)
	}
	return nil
}

func (a *app) matchInstallation(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.ShowSubcommandHelp(cmd)
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	path := cmd.Args().First()
	installation, found := a.ide.OnMatch(path)
	if !found {
		return fmt.Errorf("%s is not a %s installation", path, a.ide.Name)
	}

	logger.Successf("%s: %s", installation.Name, installation.Path)
	return nil
}

func (a *app) open(ctx context.Context, cmd *cli.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	if appPath := cmd.String(appFlag); appPath != "" {
		a.cfg.SetDefaultApp(appPath)
	}

	generator, err := project.NewGenerator(cmd.String(projectDirFlag))
	if err != nil {
		return err
	}

	dispatcher := &sublime.Dispatcher{
		GOOS:        a.goos,
		Preferences: a.cfg,
		Project:     generator,
		Discovery:   a.discovery,
		Spawner:     sublime.NewSpawner(),
	}

	target := cmd.Args().First()
	if target == "" {
		// the project file is passed by name, the editor resolves it from its working directory
		if err := os.Chdir(generator.ProjectDirectory()); err != nil {
			return fmt.Errorf("enter project directory: %w", err)
		}
	}

	ok, err := dispatcher.Open(target, int(cmd.Int(lineFlag)), int(cmd.Int(columnFlag)))
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn(fmt.Errorf("%s is not handled by %s", target, a.ide.Name))
		return errNotHandled
	}

	if target == "" {
		logger.Infof("Opening %s...", generator.ProjectFile())
	} else {
		logger.Infof("Opening %s...", target)
	}
	return nil
}

func (a *app) useInstallation(ctx context.Context, cmd *cli.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	var chosen ide.Installation
	if path := cmd.Args().First(); path != "" {
		installation, found := a.ide.OnMatch(path)
		if !found {
			return fmt.Errorf("%s is not a %s installation", path, a.ide.Name)
		}
		chosen = installation
	} else {
		installation, err := a.chooseInstallation()
		if err != nil {
			return err
		}
		chosen = installation
	}

	a.cfg.SetDefaultApp(chosen.Path)
	if err := a.cfg.Save(); err != nil {
		return err
	}

	logger.Successf("%s will be used to open files", chosen.Name)
	return nil
}

func (a *app) chooseInstallation() (ide.Installation, error) {
	installations := a.ide.OnDiscover()
	switch len(installations) {
	case 0:
		return ide.Installation{}, fmt.Errorf("no %s installation found, pass the path of one explicitly", a.ide.Name)
	case 1:
		return installations[0], nil
	}

	labels := make([]string, 0, len(installations))
	paths := make([]string, 0, len(installations))
	for _, installation := range installations {
		labels = append(labels, installation.Name)
		paths = append(paths, installation.Path)
	}

	path, err := logger.Select(fmt.Sprintf("Several %s installations were found, which one should be used?", a.ide.Name), labels, paths)
	if err != nil {
		return ide.Installation{}, fmt.Errorf("select installation: %w", err)
	}

	installation, found := ide.FindByPath(installations, path)
	if !found {
		return ide.Installation{}, fmt.Errorf("select installation: %s was not discovered", path)
	}
	return installation, nil
}

func (a *app) syncProject(ctx context.Context, cmd *cli.Command) error {
	logger.SetVerbose(cmd.Bool(verboseFlag))

	generator, err := project.NewGenerator(cmd.String(projectDirFlag))
	if err != nil {
		return err
	}

	if generator.SolutionExists() {
		logger.Infof("%s already exists", generator.ProjectFile())
		return nil
	}

	if err := generator.Sync(); err != nil {
		return err
	}

	logger.Successf("Created %s", generator.ProjectFile())
	return nil
}

func (a *app) showConfig(ctx context.Context, cmd *cli.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	logger.Infof("Config file: %s", a.cfg.Path())
	for _, kv := range a.cfg.Values() {
		logger.Detail("%s = %s", kv[0], kv[1])
	}
	return nil
}

func (a *app) setConfig(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return cli.ShowSubcommandHelp(cmd)
	}

	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	key, value := cmd.Args().Get(0), cmd.Args().Get(1)
	if err := a.cfg.Set(key, value); err != nil {
		return err
	}
	if err := a.cfg.Save(); err != nil {
		return err
	}

	logger.Successf("%s set to %q", key, value)
	return nil
}

func (a *app) resetArguments(ctx context.Context, cmd *cli.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	confirm, err := logger.Confirm(
		fmt.Sprintf("Reset the argument template to %q?", sublime.DefaultArgumentTemplate),
		"Resetting argument template...",
		"Keeping the current argument template")
	if err != nil || !confirm {
		return err
	}

	a.cfg.ResetArgumentTemplate()
	if err := a.cfg.Save(); err != nil {
		return err
	}

	logger.Success("Argument template reset")
	return nil
}
