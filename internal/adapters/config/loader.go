// Package config loads the registry settings from config.yaml and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BRIDGE_ROOT.
const EnvPrefix = "bridge"

// Defaults returns the settings used when nothing is configured.
func Defaults(home string) *domain.Config {
	return &domain.Config{
		Root:         domain.DefaultRoot(home),
		Client:       domain.DefaultClient,
		GlobalBinDir: domain.DefaultGlobalBinDir,
		Home:         home,
	}
}

// Load builds the configuration for the user whose home directory is home.
// Defaults are overridden by <home>/.bridge/config.yaml, which is optional,
// and then by BRIDGE_* environment variables.
func Load(home string) (*domain.Config, error) {
	cfg := Defaults(home)

	path := filepath.Join(domain.DefaultRoot(home), domain.ConfigFileName)
	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg.Root = expandHome(cfg.Root, home)
	cfg.GlobalBinDir = expandHome(cfg.GlobalBinDir, home)

	return cfg, nil
}

func applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the home directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Root != "" {
		cfg.Root = file.Root
	}
	if file.Client != "" {
		cfg.Client = file.Client
	}
	if file.GlobalBin != "" {
		cfg.GlobalBinDir = file.GlobalBin
	}
	if file.LogJSON != nil {
		cfg.LogJSON = *file.LogJSON
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// EnsureRoot creates the registry root with its shim and scratch
// directories. When the root is not writable it grants the owner access once
// and retries before giving up with ErrPermissionDenied.
func EnsureRoot(root string) error {
	err := makeRootDirs(root)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "root", root)
	}

	if chmodErr := os.Chmod(root, domain.DirPerm); chmodErr == nil {
		if err = makeRootDirs(root); err == nil {
			return nil
		}
	}
	return zerr.With(errors.Join(domain.ErrPermissionDenied, err), "root", root)
}

func makeRootDirs(root string) error {
	for _, dir := range []string{root, domain.SharedBinPath(root), domain.ScratchPath(root)} {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return err
		}
	}
	probe, err := os.CreateTemp(root, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
