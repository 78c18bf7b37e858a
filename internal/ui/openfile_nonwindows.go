//go:build !windows

package ui

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

// OpenFileInDefaultApp opens filePath with the desktop's default handler.
func OpenFileInDefaultApp(filePath string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	cmd := exec.Command(opener, filePath)
	log.Printf("Opening %s with %s", filePath, opener)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", opener, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
