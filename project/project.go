package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileExtension = ".sublime-project"

type folder struct {
	Path string `json:"path"`
}

type projectFile struct {
	Folders []folder `json:"folders"`
}

// Generator owns the .sublime-project file at the root of a project directory.
type Generator struct {
	Dir string
}

func NewGenerator(dir string) (*Generator, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory %s: %w", dir, err)
	}
	return &Generator{Dir: abs}, nil
}

func (g *Generator) ProjectDirectory() string {
	return g.Dir
}

func (g *Generator) ProjectFile() string {
	return filepath.Join(g.Dir, filepath.Base(g.Dir)+fileExtension)
}

func (g *Generator) SolutionExists() bool {
	info, err := os.Stat(g.ProjectFile())
	return err == nil && info.Mode().IsRegular()
}

// Sync writes a project file listing the project directory as its only folder.
func (g *Generator) Sync() error {
	content, err := json.MarshalIndent(projectFile{Folders: []folder{{Path: "."}}}, "", "\t")
	if err != nil {
		return fmt.Errorf("encode project file: %w", err)
	}

	if err := os.WriteFile(g.ProjectFile(), append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	return nil
}
