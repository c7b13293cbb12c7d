//go:build !unix && !windows

package sublime

import (
	"fmt"
	"runtime"
)

type processSpawner struct{}

func NewSpawner() Spawner {
	return processSpawner{}
}

func (processSpawner) Spawn(image, arguments string, hidden bool) error {
	return fmt.Errorf("launching processes is not supported on %s", runtime.GOOS)
}
