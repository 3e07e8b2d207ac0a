package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// settings is the one persisted record: the user's default callout
// categories, merged with whatever the stylesheet scan finds.
type settings struct {
	DefaultCalloutTypes []string `json:"defaultCalloutTypes"`
}

func defaultSettings() settings {
	return settings{DefaultCalloutTypes: []string{
		"note", "abstract", "summary", "tldr",
		"info", "todo",
		"tip", "hint", "important",
		"success", "check", "done",
		"question", "help", "faq",
		"warning", "caution", "attention",
		"failure", "fail", "missing",
		"danger", "error", "bug",
		"example",
		"quote", "cite",
	}}
}

// loadSettings reads the settings file, falling back to the built-in
// defaults when the file is absent or unreadable. The error reports why the
// fallback happened; callers surface it on the status line at most. An
// explicit empty list stands: it means scan-only, no default categories.
func loadSettings(path string) (settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultSettings(), err
	}
	var s settings
	if err := json.Unmarshal(data, &s); err != nil {
		return defaultSettings(), err
	}
	if s.DefaultCalloutTypes == nil {
		s = defaultSettings()
	}
	return s, nil
}

func saveSettings(path string, s settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mdpad.json"
	}
	return filepath.Join(dir, "mdpad", "settings.json")
}
