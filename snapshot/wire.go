package snapshot

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// encMode encodes snapshots canonically so equal heaps give equal files.
var encMode = mustEncMode(cbor.CanonicalEncOptions())

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic("snapshot: cbor options: " + err.Error())
	}
	return em
}

// Marshal serializes a Snapshot to canonical CBOR bytes.
func Marshal(s *Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

// Unmarshal deserializes a Snapshot from CBOR bytes.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	if !s.Layout().Valid() {
		return nil, fmt.Errorf("snapshot: unmarshal: %w: %d", ErrLayout, s.PointerSize)
	}
	for _, b := range s.Blocks {
		if !b.Kind().IsValid() {
			return nil, fmt.Errorf("snapshot: unmarshal: block at %d: %w: %d", b.Offset, ErrInvalidKind, uint8(b.Kind()))
		}
	}
	return &s, nil
}

// WriteFile writes s to path in CBOR form.
func WriteFile(path string, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a snapshot written by WriteFile.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
