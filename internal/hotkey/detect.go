package hotkey

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerMacOS
	DisplayServerX11
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerMacOS:
		return "macOS"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// DetectDisplayServer determines which display server is currently in use.
// This function is safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	switch runtime.GOOS {
	case "windows":
		return DisplayServerWindows
	case "darwin":
		return DisplayServerMacOS
	}

	// On Unix-like systems, check environment variables.
	// Check Wayland first (more specific)
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}

	log.Println("Warning: Could not detect display server type")
	return DisplayServerUnknown
}

// SelectBackend chooses the appropriate backend based on the current environment.
// Windows/X11/macOS use the LegacyBackend. Everywhere else bindings are kept
// in a MemoryBackend so validation and focused routing keep working while
// global hotkeys stay silent.
func SelectBackend(post Poster) Backend {
	legacy := NewLegacyBackend(post)
	if legacy.IsAvailable() {
		log.Printf("Selected backend: %s for %s", legacy.Name(), legacy.displayServer)
		return legacy
	}

	if legacy.displayServer == DisplayServerWayland {
		log.Println("Wayland detected - global hotkeys unavailable")
	}
	fallback := NewMemoryBackend()
	log.Printf("Selected backend: %s", fallback.Name())
	return fallback
}

// SandboxEnv forces development-sandbox detection on or off ("1"/"0").
const SandboxEnv = "OVERLAYKEYS_SANDBOX"

// IsDevSandbox reports whether the process runs inside a development sandbox:
// a `go run`/`go test` temporary build, or SandboxEnv=1.
func IsDevSandbox() bool {
	switch os.Getenv(SandboxEnv) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}

	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not get executable path in IsDevSandbox: %v", err)
		return false
	}
	// Check if the executable path contains typical temporary build directories
	if strings.Contains(execPath, string(filepath.Separator)+"go-build") {
		return true
	}
	// Fallback: Check if it's in the general temp directory
	cleanedExecDir := filepath.Clean(filepath.Dir(execPath))
	cleanedTempDir := filepath.Clean(os.TempDir())
	return strings.HasPrefix(cleanedExecDir, cleanedTempDir)
}
