package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/yumosx/lazy/internal/env"
)

func baseConfigPath(e env.Env) string {
	if xdgConfigHome := e.Get("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName)
	}

	// for windows, it should be in `%LOCALAPPDATA%/lazyctl/`
	// for linux and macOS, it should be in `$HOME/.config/lazyctl/`
	if runtime.GOOS == "windows" {
		localAppData := e.Get("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(e.Get("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName)
	}

	return filepath.Join(e.Get("HOME"), ".config", appName)
}

// GlobalConfig is the user-wide config file.
func GlobalConfig(e env.Env) string {
	return filepath.Join(baseConfigPath(e), fmt.Sprintf("%s.json", appName))
}

// configPaths lists config files from lowest to highest precedence.
func configPaths(e env.Env, workingDir string) []string {
	return []string{
		GlobalConfig(e),
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	}
}
