//go:build unix

package sublime

import (
	"fmt"
	"os/exec"
	"syscall"

	"mvdan.cc/sh/v3/shell"
)

type processSpawner struct{}

func NewSpawner() Spawner {
	return processSpawner{}
}

// Spawn splits arguments with shell quoting rules and starts image in its own
// session. The child is released right away, nothing waits on it.
func (processSpawner) Spawn(image, arguments string, hidden bool) error {
	args, err := shell.Fields(arguments, nil)
	if err != nil {
		return fmt.Errorf("parse arguments %q: %w", arguments, err)
	}

	cmd := exec.Command(image, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return err
	}

	return cmd.Process.Release()
}
