//go:build windows

package ui

import (
	"fmt"
	"syscall"
	"unsafe"
)

const swShowNormal = 1

var (
	shell32           = syscall.NewLazyDLL("shell32.dll")
	procShellExecuteW = shell32.NewProc("ShellExecuteW")
)

func utf16OrNil(s string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	return syscall.UTF16PtrFromString(s)
}

// shellExecute calls ShellExecuteW. Return values above 32 mean success.
func shellExecute(hwnd uintptr, verb, file, params, dir string, showCmd int32) error {
	args := make([]*uint16, 4)
	for i, s := range []string{verb, file, params, dir} {
		p, err := utf16OrNil(s)
		if err != nil {
			return fmt.Errorf("failed to convert %q to UTF-16: %w", s, err)
		}
		args[i] = p
	}

	ret, _, callErr := procShellExecuteW.Call(
		hwnd,
		uintptr(unsafe.Pointer(args[0])),
		uintptr(unsafe.Pointer(args[1])),
		uintptr(unsafe.Pointer(args[2])),
		uintptr(unsafe.Pointer(args[3])),
		uintptr(showCmd),
	)
	if ret > 32 {
		return nil
	}
	if errno, ok := callErr.(syscall.Errno); ok && errno != 0 {
		return fmt.Errorf("ShellExecuteW failed with code %d: %w", ret, errno)
	}
	return fmt.Errorf("ShellExecuteW failed with code %d", ret)
}
