// Package snapshot records the block headers of a heap arena so they can be
// tallied, stored and compared offline.
//
// The allocator owns the arena and knows where blocks start; Capture only
// reads each block's header through the fixed offset contract, so it works
// for any kind without knowing the block's layout.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/heapkind/heap"
)

// logger is looked up per call so it picks up whatever backend the binary
// configures after package initialization.
func logger() commonlog.Logger {
	return commonlog.GetLogger("heapkind.snapshot")
}

var (
	// ErrTruncated is returned when a block's header runs past the arena.
	ErrTruncated = errors.New("block prefix runs past end of arena")

	// ErrInvalidKind is returned when a header's kind byte is not a
	// declared kind.
	ErrInvalidKind = errors.New("kind outside taxonomy")

	// ErrLayout is returned for a layout with an unsupported pointer width.
	ErrLayout = errors.New("unsupported pointer size")
)

// Block is one captured header.
type Block struct {
	Offset uint64 `cbor:"1,keyasint"` // block start within the arena
	Word   uint32 `cbor:"2,keyasint"` // packed header word
}

// Header returns the decoded header of b.
func (b Block) Header() heap.HeaderWord {
	var h heap.HeaderWord
	h.SetWord(b.Word)
	return h
}

func (b Block) Kind() heap.Kind {
	_, k := heap.Unpack(b.Word)
	return k
}

// Corruption records a block that could not be captured.
type Corruption struct {
	Offset int64  `cbor:"1,keyasint"`
	Reason string `cbor:"2,keyasint"`
}

// Snapshot is the set of headers read from one arena.
type Snapshot struct {
	Target      string       `cbor:"1,keyasint"`
	PointerSize int          `cbor:"2,keyasint"`
	Blocks      []Block      `cbor:"3,keyasint"`
	Corrupt     []Corruption `cbor:"4,keyasint,omitempty"`
	BigEndian   bool         `cbor:"5,keyasint,omitempty"`
}

// Layout returns the block layout the snapshot was captured with.
func (s *Snapshot) Layout() heap.Layout {
	return heap.Layout{PointerSize: s.PointerSize, BigEndian: s.BigEndian}
}

// Options controls Capture.
type Options struct {
	Target string
	// Strict makes Capture fail on the first corrupt block. Otherwise the
	// block is recorded in Snapshot.Corrupt and skipped.
	Strict bool
}

// Capture reads the header of every block in arena. starts holds the offset
// of each block's native control word, as reported by the allocator.
func Capture(arena []byte, starts []int, l heap.Layout, opts Options) (*Snapshot, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("snapshot: %w: %d", ErrLayout, l.PointerSize)
	}

	s := &Snapshot{
		Target:      opts.Target,
		PointerSize: l.PointerSize,
		BigEndian:   l.BigEndian,
		Blocks:      make([]Block, 0, len(starts)),
	}
	for _, start := range starts {
		hdr, err := readHeader(arena, start, l)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("snapshot: block at %d: %w", start, err)
			}
			logger().Warningf("skipping block at %d: %s", start, err)
			s.Corrupt = append(s.Corrupt, Corruption{Offset: int64(start), Reason: err.Error()})
			continue
		}
		s.Blocks = append(s.Blocks, Block{Offset: uint64(start), Word: hdr.Word()})
	}

	logger().Debugf("captured %d blocks (%d corrupt) for target %q", len(s.Blocks), len(s.Corrupt), s.Target)
	return s, nil
}

func readHeader(arena []byte, start int, l heap.Layout) (heap.HeaderWord, error) {
	if start < 0 || start > len(arena)-l.PrefixSize() {
		return heap.HeaderWord{}, ErrTruncated
	}
	hdr := l.Header(arena[start:])
	if !hdr.Kind().IsValid() {
		return heap.HeaderWord{}, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(hdr.Kind()))
	}
	return hdr, nil
}
