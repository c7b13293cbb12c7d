//go:build windows

package sublime

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

type processSpawner struct{}

func NewSpawner() Spawner {
	return processSpawner{}
}

// Spawn hands the argument string to the new process unchanged. Batch
// launchers get no console window.
func (processSpawner) Spawn(image, arguments string, hidden bool) error {
	cmd := exec.Command(image)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       syscall.EscapeArg(image) + " " + arguments,
		HideWindow:    hidden,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
	if hidden {
		cmd.SysProcAttr.CreationFlags |= windows.CREATE_NO_WINDOW
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	return cmd.Process.Release()
}
