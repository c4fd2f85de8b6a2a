package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest описывает ave.toml, найденный вверх по дереву от стартовой
// директории.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Source  SourceConfig  `toml:"source"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type SourceConfig struct {
	Dir  string `toml:"dir"`
	Main string `toml:"main"`
}

// FindManifest ищет ave.toml начиная со startDir и поднимаясь к корню.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ave.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load читает и валидирует ave.toml по пути.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package] section", path)
	}
	if cfg.Package.Name == "" {
		return nil, fmt.Errorf("%s: package.name must not be empty", path)
	}
	if cfg.Source.Dir == "" {
		cfg.Source.Dir = "."
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadFrom находит и загружает манифест; ok=false если ave.toml нет.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// SourceDir возвращает абсолютный путь к директории исходников.
func (m *Manifest) SourceDir() string {
	return filepath.Join(m.Root, m.Config.Source.Dir)
}
