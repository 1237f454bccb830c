package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "minispec.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "adder"
topLevel = "mkAdder"

[build]
importPath = ["./lib", "./vendor"]
bscOpts = "-steps 1000000"
keepTmps = true
`)

	m, err := LoadManifest(filepath.Join(dir, "minispec.toml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "adder" || m.Package.TopLevel != "mkAdder" {
		t.Fatalf("unexpected package section: %+v", m.Package)
	}
	if len(m.Build.ImportPath) != 2 || m.Build.ImportPath[0] != "./lib" {
		t.Fatalf("unexpected importPath: %v", m.Build.ImportPath)
	}
	if !m.Build.KeepTmps {
		t.Fatalf("expected keepTmps = true")
	}
}

func TestFindManifestPathWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `[package]
name = "proj"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifestPath(nested)
	if err != nil {
		t.Fatalf("FindManifestPath: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find manifest")
	}
	want := filepath.Join(root, "minispec.toml")
	if path != want {
		t.Fatalf("got %q, want %q", path, want)
	}
}

func TestLoadManifestForFallsBackWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, _, ok, err := LoadManifestFor(filepath.Join(dir, "main.ms"))
	if err != nil {
		t.Fatalf("LoadManifestFor: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest to be found")
	}
}
