package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/TanaroSch/overlay-keys/internal/catalog"
	"github.com/TanaroSch/overlay-keys/internal/shortcut"
)

// ErrUnknownTarget is returned when a target id is not in the settings file.
var ErrUnknownTarget = errors.New("unknown target")

// Target is one addressable target with its activation shortcut.
type Target struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Shortcut shortcut.Configuration `json:"shortcut"`
}

// Config holds the application settings.
type Config struct {
	UseNotifications bool                   `json:"use_notifications"`
	DiffContextLines int                    `json:"diff_context_lines,omitempty"`
	GlobalShortcut   shortcut.Configuration `json:"global_shortcut"`
	Targets          []Target               `json:"targets"`
	Bindings         catalog.State          `json:"bindings"`

	// Legacy fields, migrated on load.
	Hotkey         string            `json:"hotkey,omitempty"`
	ServiceHotkeys map[string]string `json:"service_hotkeys,omitempty"`

	configPath string
}

// Path returns the file the settings were loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// GetDiffContextLines returns the number of unchanged lines shown around a
// change in the reload report.
func (c *Config) GetDiffContextLines() int {
	if c.DiffContextLines <= 0 {
		return 3
	}
	return c.DiffContextLines
}

// Load reads the settings file, creating the default file if it is missing,
// and migrates legacy fields.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		log.Printf("Config file '%s' not found. Attempting to create default.", configPath)
		if createErr := CreateDefaultConfig(configPath); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
		}
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s' even after creating default: %w", configPath, err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}
	cfg.configPath = configPath

	if cfg.migrate() {
		if err := cfg.Save(); err != nil {
			log.Printf("Warning: Failed to save migrated config: %v", err)
		} else {
			log.Println("Successfully saved migrated config.")
		}
	}
	return cfg, nil
}

// Parse decodes settings without touching the filesystem. The factory
// bindings are used only when the file has no "bindings" object at all; a
// slot missing inside it stays cleared.
func Parse(data []byte) (*Config, error) {
	var present struct {
		Bindings json.RawMessage `json:"bindings"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(present.Bindings) == 0 || string(present.Bindings) == "null" {
		cfg.Bindings = catalog.DefaultState()
	}
	return cfg, nil
}

// migrate converts legacy string hotkeys and assigns ids to targets and
// actions that lack one. It reports whether anything changed.
func (c *Config) migrate() bool {
	changed := false

	if c.Hotkey != "" {
		log.Println("Migrating legacy 'hotkey' field to 'global_shortcut'...")
		if sc, err := shortcut.Parse(c.Hotkey); err != nil {
			log.Printf("Warning: Legacy hotkey '%s' is invalid, keeping current global shortcut: %v", c.Hotkey, err)
		} else {
			c.GlobalShortcut = sc
		}
		c.Hotkey = ""
		changed = true
	}

	for name, hk := range c.ServiceHotkeys {
		log.Printf("Migrating legacy hotkey for service '%s'...", name)
		sc, err := shortcut.Parse(hk)
		if err != nil {
			log.Printf("Warning: Legacy hotkey '%s' for service '%s' is invalid: %v", hk, name, err)
			sc = shortcut.Disabled
		}
		c.Targets = append(c.Targets, Target{Name: name, Shortcut: sc})
		changed = true
	}
	c.ServiceHotkeys = nil

	for i := range c.Targets {
		if strings.TrimSpace(c.Targets[i].ID) == "" {
			c.Targets[i].ID = uuid.NewString()
			changed = true
		}
	}
	for i := range c.Bindings.Actions {
		if strings.TrimSpace(c.Bindings.Actions[i].ID) == "" {
			c.Bindings.Actions[i].ID = uuid.NewString()
			changed = true
		}
	}
	return changed
}

// Save writes the settings back to their file with owner-only permissions.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config has no file path")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

// SaveGlobalShortcut stores a new global toggle and writes the file.
func (c *Config) SaveGlobalShortcut(sc shortcut.Configuration) error {
	previous := c.GlobalShortcut
	c.GlobalShortcut = sc
	if err := c.Save(); err != nil {
		c.GlobalShortcut = previous
		return err
	}
	return nil
}

// SaveTargetShortcut stores the activation shortcut of a target.
func (c *Config) SaveTargetShortcut(targetID string, sc shortcut.Configuration) error {
	for i := range c.Targets {
		if c.Targets[i].ID != targetID {
			continue
		}
		previous := c.Targets[i].Shortcut
		c.Targets[i].Shortcut = sc
		if err := c.Save(); err != nil {
			c.Targets[i].Shortcut = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownTarget, targetID)
}

// SaveBindings stores the catalog state and writes the file.
func (c *Config) SaveBindings(state catalog.State) error {
	previous := c.Bindings
	c.Bindings = state
	if err := c.Save(); err != nil {
		c.Bindings = previous
		return err
	}
	return nil
}

// NewAction builds a user-defined action with a fresh id.
func NewAction(name string, sc shortcut.Configuration) catalog.Action {
	return catalog.Action{ID: uuid.NewString(), Name: name, Configuration: sc}
}

// Entries returns the per-target bindings in file order.
func (c *Config) Entries() []shortcut.Entry {
	out := make([]shortcut.Entry, 0, len(c.Targets))
	for _, t := range c.Targets {
		out = append(out, shortcut.Entry{TargetID: t.ID, Configuration: t.Shortcut})
	}
	return out
}

// Target looks up a target by id.
func (c *Config) Target(id string) (Target, bool) {
	for _, t := range c.Targets {
		if t.ID == id {
			return t, true
		}
	}
	return Target{}, false
}

// TargetName returns the display name of a target, or its id if unknown.
func (c *Config) TargetName(id string) string {
	if t, ok := c.Target(id); ok && t.Name != "" {
		return t.Name
	}
	return id
}

// Default returns the factory settings.
func Default() *Config {
	targets := []Target{
		{Name: "Chat", Shortcut: shortcut.New(shortcut.Key1, shortcut.Control|shortcut.Option)},
		{Name: "Search", Shortcut: shortcut.New(shortcut.Key2, shortcut.Control|shortcut.Option)},
		{Name: "Notes", Shortcut: shortcut.Disabled},
	}
	for i := range targets {
		targets[i].ID = uuid.NewString()
	}
	return &Config{
		UseNotifications: true,
		GlobalShortcut:   shortcut.DefaultGlobal,
		Targets:          targets,
		Bindings:         catalog.DefaultState(),
	}
}

// CreateDefaultConfig writes the factory settings unless the file exists.
func CreateDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking config path '%s': %w", configPath, err)
	}

	log.Printf("Creating default configuration file at: %s", configPath)
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config to JSON: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write default config file '%s': %w", configPath, err)
	}
	log.Printf("Default configuration file created successfully.")
	return nil
}
