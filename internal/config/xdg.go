package config

import (
	"os"
	"path/filepath"
)

// XDGBaseDirs holds the two XDG Base Directory roots this pipeline reads
// config/cache from.
type XDGBaseDirs struct {
	ConfigHome string
	CacheHome  string
}

// GetXDGBaseDirs resolves XDG_CONFIG_HOME/XDG_CACHE_HOME, falling back to
// ~/.config and ~/.cache when unset.
func GetXDGBaseDirs() XDGBaseDirs {
	return XDGBaseDirs{
		ConfigHome: getXDGDir("XDG_CONFIG_HOME", ".config"),
		CacheHome:  getXDGDir("XDG_CACHE_HOME", ".cache"),
	}
}

func getXDGDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, fallbackSuffix)
	}
	return ""
}

// AppConfigDir returns $XDG_CONFIG_HOME/docmatch (or ~/.config/docmatch).
func AppConfigDir() string {
	return filepath.Join(GetXDGBaseDirs().ConfigHome, "docmatch")
}

// AppCacheDir returns $XDG_CACHE_HOME/docmatch (or ~/.cache/docmatch).
func AppCacheDir() string {
	return filepath.Join(GetXDGBaseDirs().CacheHome, "docmatch")
}
