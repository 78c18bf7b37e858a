package ui

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	iconOnce sync.Once
	iconPath string
)

// iconFile returns an icon file for desktop notifications: icon.png in the
// working directory if present, else the embedded icon written once to the
// temp directory for the life of the process. It returns "" when neither is
// available.
func (n *NotificationManager) iconFile() string {
	iconOnce.Do(func() {
		if _, err := os.Stat("icon.png"); err == nil {
			if abs, err := filepath.Abs("icon.png"); err == nil {
				iconPath = abs
				return
			}
			iconPath = "icon.png"
			return
		}
		if len(n.embeddedIcon) == 0 {
			log.Println("icon.png not found and no embedded icon available.")
			return
		}
		path, err := writeTempIcon(n.embeddedIcon)
		if err != nil {
			log.Printf("Error writing temporary icon: %v", err)
			return
		}
		iconPath = path
	})
	return iconPath
}

func writeTempIcon(iconData []byte) (string, error) {
	if len(iconData) == 0 {
		return "", errors.New("cannot write empty icon data")
	}
	tmpFile, err := os.CreateTemp("", "overlaykeys-icon-*.ico")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(iconData); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", err
	}
	return filepath.Abs(tmpFile.Name())
}
