// Package manifest handles heapkind.toml target configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/heapkind/heap"
)

// FileName is the name of the manifest file.
const FileName = "heapkind.toml"

var (
	// ErrPointerSize is returned when a manifest names an unsupported pointer width.
	ErrPointerSize = errors.New("pointer-size must be 4 or 8")

	// ErrByteOrder is returned for a byte-order other than "little" or "big".
	ErrByteOrder = errors.New(`byte-order must be "little" or "big"`)
)

// Manifest represents a heapkind.toml configuration.
type Manifest struct {
	Target   Target         `toml:"target"`
	Snapshot SnapshotConfig `toml:"snapshot"`

	// Dir is the directory containing the heapkind.toml file (set at load time).
	Dir string `toml:"-"`
}

// Target describes the platform whose heap is being inspected.
type Target struct {
	Name        string `toml:"name"`
	PointerSize int    `toml:"pointer-size"`
	ByteOrder   string `toml:"byte-order"` // "little" or "big"
}

// SnapshotConfig configures snapshot capture and output.
type SnapshotConfig struct {
	Output string `toml:"output"`
	// Strict makes capture fail on the first corrupt block instead of
	// recording it and moving on.
	Strict bool `toml:"strict"`
}

// Default returns the manifest used when no heapkind.toml exists: the host
// target, writing snapshots to heap.snap.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Target.PointerSize == 0 {
		m.Target.PointerSize = heap.HostLayout.PointerSize
	}
	if m.Target.ByteOrder == "" {
		m.Target.ByteOrder = "little"
		if heap.HostBigEndian {
			m.Target.ByteOrder = "big"
		}
	}
	if m.Target.Name == "" {
		m.Target.Name = "host"
	}
	if m.Snapshot.Output == "" {
		m.Snapshot.Output = "heap.snap"
	}
}

// Load parses a heapkind.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// Parse decodes manifest content and applies defaults.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.applyDefaults()
	if !m.Layout().Valid() {
		return nil, fmt.Errorf("target %q: %w (got %d)", m.Target.Name, ErrPointerSize, m.Target.PointerSize)
	}
	if m.Target.ByteOrder != "little" && m.Target.ByteOrder != "big" {
		return nil, fmt.Errorf("target %q: %w (got %q)", m.Target.Name, ErrByteOrder, m.Target.ByteOrder)
	}
	return &m, nil
}

// FindAndLoad loads the nearest heapkind.toml in startDir or one of its
// parents. A nil manifest with a nil error means none exists; callers
// usually fall back to Default.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := findDir(startDir)
	if err != nil || dir == "" {
		return nil, err
	}
	return Load(dir)
}

func findDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for ; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", nil
		}
	}
}

// Layout returns the block layout of the configured target.
func (m *Manifest) Layout() heap.Layout {
	return heap.Layout{
		PointerSize: m.Target.PointerSize,
		BigEndian:   m.Target.ByteOrder == "big",
	}
}

// SnapshotPath returns the snapshot output path, resolved against Dir.
func (m *Manifest) SnapshotPath() string {
	if filepath.IsAbs(m.Snapshot.Output) || m.Dir == "" {
		return m.Snapshot.Output
	}
	return filepath.Join(m.Dir, m.Snapshot.Output)
}
