// Package cache implements the elaboration disk cache: a content-hash-keyed
// store of per-file elaboration artifacts (the emitted fragment text for a
// file's non-parametric top-level definitions, and the diagnostics its
// elaboration produced) so repeated invocations over an unchanged file tree
// can skip re-running the elaborator walker on files whose content and
// transitive imports haven't changed.
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"minispec/internal/project"
)

// schemaVersion guards against decoding a payload written by an earlier,
// incompatible layout; bump it whenever DiskPayload's shape changes.
const schemaVersion uint16 = 1

// Disk is a thread-safe content-hash-keyed cache of per-file elaboration
// artifacts, stored as one msgpack-encoded file per ModuleHash.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic re-anchored to byte offsets within its
// originating file rather than a FileID, so it can be replayed against
// whatever FileID the same (unchanged) file is loaded as this run.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// DiskPayload is one file's cached elaboration output, keyed by its
// ModuleHash (content hash folded with its direct imports' ModuleHashes).
type DiskPayload struct {
	Schema uint16

	// Fragment is the backend-HDL text this file's non-parametric
	// top-level definitions emitted, ready to append verbatim to the
	// driver's buffer on a cache hit.
	Fragment string

	// ParametricNames lists the top-level parametric (Module/Function/
	// typedef) definitions this file declares; the driver still parses
	// and registers their ASTs on a cache hit; this list is recorded
	// only as a sanity cross-check, not replayed.
	ParametricNames []string

	Diagnostics []CachedDiagnostic
}

// Open returns a disk cache rooted at dir, creating it if necessary.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// OpenDefault opens the cache at the platform's standard cache directory
// (respecting XDG_CACHE_HOME), under a subdirectory named for app.
func OpenDefault(app string) (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

func (d *Disk) pathFor(key project.Digest) string {
	return filepath.Join(d.dir, "elab", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload under key.
func (d *Disk) Put(key project.Digest, payload *DiskPayload) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	payload.Schema = schemaVersion
	p := d.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and deserializes the payload stored under key, if any. A
// missing or corrupt entry returns (nil, false): the caller falls back to
// re-elaborating and, for a corrupt entry, should evict it via Evict.
func (d *Disk) Get(key project.Digest) (*DiskPayload, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	f, err := os.Open(d.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != schemaVersion {
		return nil, false
	}
	return &payload, true
}

// Evict removes a single corrupt or stale entry; safe to call even if the
// entry was never written.
func (d *Disk) Evict(key project.Digest) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	os.Remove(d.pathFor(key))
}

// DropAll invalidates the entire cache, used after a schema bump or by an
// explicit --no-cache-equivalent maintenance command.
func (d *Disk) DropAll() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	old := d.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(d.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
