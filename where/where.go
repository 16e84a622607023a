// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/filesystem"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "VIDPOOL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// XDG_CONFIG_HOME (or the platform equivalent) is used unless VIDPOOL_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Vidpool))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Vidpool))
}

// Logs resolves the directory log files are written to.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts resolves the directory holding Lua normalizers for custom endpoints.
func Scripts() string {
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// Endpoints resolves the default location of the endpoint catalog.
func Endpoints() string {
	return filepath.Join(Config(), "endpoints.yaml")
}

// Temp resolves a volatile directory for transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Vidpool))
}
