//go:build windows

package ui

import (
	"fmt"
	"strings"

	"github.com/go-toast/toast"
)

func (n *NotificationManager) platformNotify(title, message string) error {
	notification := toast.Notification{
		AppID:   n.appName,
		Title:   title,
		Message: message,
		Icon:    n.iconFile(),
	}
	if err := notification.Push(); err != nil {
		if strings.Contains(err.Error(), "notification platform is unavailable") {
			return fmt.Errorf("toast platform unavailable (notifications may be disabled in Windows Settings): %w", err)
		}
		return fmt.Errorf("toast notification failed: %w", err)
	}
	return nil
}
