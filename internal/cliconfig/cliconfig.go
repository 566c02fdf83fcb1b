// Package cliconfig resolves the config, data, and cache directories twig
// uses for its global registry, Jira parser config, and other per-user
// settings, honoring XDG and twig-specific environment overrides.
package cliconfig

import (
	"os"
	"path/filepath"
)

const appName = "twig"

// Dirs holds the resolved configuration, data, and cache directories.
type Dirs struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
}

// Resolve determines Dirs from the environment, in priority order:
// TWIG_CONFIG_DIR/TWIG_DATA_DIR override everything; otherwise
// XDG_CONFIG_HOME/XDG_DATA_HOME/XDG_CACHE_HOME are honored when set;
// otherwise the platform default (os.UserConfigDir/os.UserCacheDir) is
// used. With no override, the data dir falls back to os.UserConfigDir as
// well, so it resolves to the same directory as the config dir.
func Resolve() (Dirs, error) {
	configDir, err := resolveDir("TWIG_CONFIG_DIR", "XDG_CONFIG_HOME", os.UserConfigDir)
	if err != nil {
		return Dirs{}, err
	}

	dataDir, err := resolveDir("TWIG_DATA_DIR", "XDG_DATA_HOME", os.UserConfigDir)
	if err != nil {
		return Dirs{}, err
	}

	cacheDir, err := resolveDir("", "XDG_CACHE_HOME", os.UserCacheDir)
	if err != nil {
		return Dirs{}, err
	}

	return Dirs{ConfigDir: configDir, DataDir: dataDir, CacheDir: cacheDir}, nil
}

// resolveDir applies the override chain: explicit env var (used as-is),
// then XDG env var joined with appName, then the platform default joined
// with appName.
func resolveDir(explicitEnv, xdgEnv string, platformDefault func() (string, error)) (string, error) {
	if explicitEnv != "" {
		if v := os.Getenv(explicitEnv); v != "" {
			return v, nil
		}
	}
	if xdgEnv != "" {
		if v := os.Getenv(xdgEnv); v != "" {
			return filepath.Join(v, appName), nil
		}
	}
	base, err := platformDefault()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// Init ensures the config, data, and cache directories exist, and seeds an
// empty registry.json in the data directory if one is not already present.
func (d Dirs) Init() error {
	for _, dir := range []string{d.ConfigDir, d.DataDir, d.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	registryPath := d.RegistryPath()
	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		if err := os.WriteFile(registryPath, []byte("[]"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// RegistryPath is <data dir>/registry.json.
func (d Dirs) RegistryPath() string {
	return filepath.Join(d.DataDir, "registry.json")
}

// JiraConfigPath is <config dir>/jira.toml.
func (d Dirs) JiraConfigPath() string {
	return filepath.Join(d.ConfigDir, "jira.toml")
}

// RepoStateDir is <repo>/.twig.
func RepoStateDir(repoPath string) string {
	return filepath.Join(repoPath, ".twig")
}

// RepoStatePath is <repo>/.twig/state.json.
func RepoStatePath(repoPath string) string {
	return filepath.Join(RepoStateDir(repoPath), "state.json")
}
