package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrManifestNotFound is returned by FindManifest when no minispec.toml
// exists between startDir and the filesystem root.
var ErrManifestNotFound = errors.New("minispec.toml not found")

// PackageSection is minispec.toml's [package] table.
type PackageSection struct {
	Name     string `toml:"name"`
	TopLevel string `toml:"topLevel"`
}

// BuildSection is minispec.toml's [build] table: the same knobs the CLI
// flags expose, so a manifest can pin project-wide defaults that flags
// still override.
type BuildSection struct {
	ImportPath []string `toml:"importPath"`
	Output     []string `toml:"output"`
	BscOpts    string   `toml:"bscOpts"`
	KeepTmps   bool     `toml:"keepTmps"`
	AllErrors  bool     `toml:"allErrors"`
}

// Manifest is the decoded shape of minispec.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
}

// FindManifestPath walks up from startDir looking for the first
// minispec.toml.
func FindManifestPath(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "minispec.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing minispec.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifestPath(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadManifest parses minispec.toml at path.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return m, nil
}

// LoadManifestFor discovers and parses the minispec.toml governing
// inputFile, if one exists anywhere above it. Returns ok=false, no error,
// when there is none: the caller falls back to treating inputFile as a
// single-file project, matching the CLI's documented single-file mode.
func LoadManifestFor(inputFile string) (Manifest, string, bool, error) {
	dir := filepath.Dir(inputFile)
	path, ok, err := FindManifestPath(dir)
	if err != nil {
		return Manifest{}, "", false, err
	}
	if !ok {
		return Manifest{}, "", false, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return Manifest{}, "", false, err
	}
	return m, filepath.Dir(path), true, nil
}
