package ui

import (
	"log"
	"sync"
)

// Level classifies administrative notifications.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "INFO"
}

// NotificationManager handles showing notifications across platforms.
type NotificationManager struct {
	mu               sync.Mutex
	useNotifications bool
	appName          string
	embeddedIcon     []byte
}

// NewNotificationManager creates a new notification manager.
func NewNotificationManager(useNotifications bool, appName string, embeddedIcon []byte) *NotificationManager {
	return &NotificationManager{
		useNotifications: useNotifications,
		appName:          appName,
		embeddedIcon:     embeddedIcon,
	}
}

// SetEnabled turns desktop notifications on or off, e.g. after a reload.
func (n *NotificationManager) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.useNotifications = enabled
	n.mu.Unlock()
}

// ShowNotification displays a desktop notification if enabled.
func (n *NotificationManager) ShowNotification(title, message string) {
	n.mu.Lock()
	enabled := n.useNotifications
	n.mu.Unlock()
	if !enabled {
		return
	}
	if err := n.platformNotify(title, message); err != nil {
		log.Printf("Error showing notification: %v", err)
	}
}

var globalNotificationManager *NotificationManager

// InitGlobalNotifications initializes the global notification manager.
func InitGlobalNotifications(useNotifications bool, appName string, embeddedIcon []byte) {
	globalNotificationManager = NewNotificationManager(useNotifications, appName, embeddedIcon)
}

// SetNotificationsEnabled updates the global notification manager.
func SetNotificationsEnabled(enabled bool) {
	if globalNotificationManager != nil {
		globalNotificationManager.SetEnabled(enabled)
	}
}

// ShowAdminNotification reports application state to the user. Every
// notification is logged; warnings and errors are shown even when routine
// notifications are turned off.
func ShowAdminNotification(level Level, title, message string) {
	log.Printf("[%s] %s: %s", level, title, message)
	if globalNotificationManager == nil {
		return
	}
	if level == LevelInfo {
		globalNotificationManager.ShowNotification(title, message)
		return
	}
	if err := globalNotificationManager.platformNotify(title, message); err != nil {
		log.Printf("Error showing notification: %v", err)
	}
}

// ShowTriggerNotification reports a routed command or hotkey trigger. It is
// shown only when notifications are enabled.
func ShowTriggerNotification(title, message string) {
	if globalNotificationManager != nil {
		globalNotificationManager.ShowNotification(title, message)
	} else {
		log.Printf("Notification not shown (manager not initialized): %s - %s", title, message)
	}
}
