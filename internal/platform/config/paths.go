package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per user config directory
const AppName = "combatlog"

// getenv is a seam for tests
var getenv = os.Getenv

// Dir resolves the per user config directory
// order: COMBATLOG_CONFIG_DIR, XDG_CONFIG_HOME, HOME/.config, APPDATA, then the working dir
func Dir() string {
	if p := strings.TrimSpace(getenv("COMBATLOG_CONFIG_DIR")); p != "" {
		return ExpandHome(p)
	}
	if p := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); p != "" {
		return filepath.Join(p, AppName)
	}
	if home := strings.TrimSpace(getenv("HOME")); home != "" {
		return filepath.Join(home, ".config", AppName)
	}
	if p := strings.TrimSpace(getenv("APPDATA")); p != "" {
		return filepath.Join(p, AppName)
	}
	return "."
}

// HistoryDir is the default storage root for encounter history
func HistoryDir() string { return filepath.Join(Dir(), "history") }

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home := strings.TrimSpace(getenv("HOME"))
	if home == "" {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
