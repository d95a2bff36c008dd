package snapshot

import (
	"errors"
	"testing"

	"github.com/chazu/heapkind/heap"
)

// arena lays out blocks back to back for layout l, one per header, each
// with size bytes of payload after the prefix.
func arena(l heap.Layout, size int, hdrs ...heap.HeaderWord) ([]byte, []int) {
	stride := l.PrefixSize() + size
	buf := make([]byte, stride*len(hdrs))
	starts := make([]int, len(hdrs))
	for i, h := range hdrs {
		starts[i] = i * stride
		l.PutHeader(buf[starts[i]:], h)
	}
	return buf, starts
}

func header(aux uint16, k heap.Kind, marks uint8) heap.HeaderWord {
	var h heap.HeaderWord
	h.InitAux(aux, k)
	h.SetMarks(marks)
	return h
}

func TestCapture(t *testing.T) {
	for _, l := range []heap.Layout{{PointerSize: 4}, {PointerSize: 8}} {
		buf, starts := arena(l, 16,
			header(3, heap.KindString, 0),
			header(0, heap.KindObject, 1),
			header(8, heap.KindMap, 0),
			header(0, heap.KindFree, 0),
		)

		s, err := Capture(buf, starts, l, Options{Target: "test"})
		if err != nil {
			t.Fatalf("Capture(ptr=%d): %v", l.PointerSize, err)
		}
		if len(s.Blocks) != 4 {
			t.Fatalf("len(Blocks) = %d, want 4", len(s.Blocks))
		}
		if len(s.Corrupt) != 0 {
			t.Errorf("Corrupt = %v, want none", s.Corrupt)
		}

		want := []heap.Kind{heap.KindString, heap.KindObject, heap.KindMap, heap.KindFree}
		for i, b := range s.Blocks {
			if b.Kind() != want[i] {
				t.Errorf("ptr=%d block %d kind = %s, want %s", l.PointerSize, i, b.Kind(), want[i])
			}
			if b.Offset != uint64(starts[i]) {
				t.Errorf("block %d offset = %d, want %d", i, b.Offset, starts[i])
			}
		}
		if aux := s.Blocks[2].Header().Aux(); aux != 8 {
			t.Errorf("map aux = %d, want 8", aux)
		}
		if s.Blocks[1].Header().Marks() != 1 {
			t.Errorf("object marks = %d, want 1", s.Blocks[1].Header().Marks())
		}
	}
}

func TestCaptureTruncated(t *testing.T) {
	l := heap.Layout{PointerSize: 8}
	buf, starts := arena(l, 0, header(0, heap.KindRef, 0))
	starts = append(starts, len(buf)-2, -1)

	s, err := Capture(buf, starts, l, Options{})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(s.Blocks) != 1 || len(s.Corrupt) != 2 {
		t.Fatalf("blocks = %d, corrupt = %d; want 1, 2", len(s.Blocks), len(s.Corrupt))
	}

	_, err = Capture(buf, starts, l, Options{Strict: true})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("strict Capture error = %v, want ErrTruncated", err)
	}
}

func TestCaptureInvalidKind(t *testing.T) {
	l := heap.Layout{PointerSize: 8}
	buf, starts := arena(l, 4, header(0, heap.KindVector, 0), header(0, heap.KindSet, 0))
	buf[starts[1]+l.KindOffset()] = 0xEE

	s, err := Capture(buf, starts, l, Options{})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(s.Blocks) != 1 || len(s.Corrupt) != 1 {
		t.Fatalf("blocks = %d, corrupt = %d; want 1, 1", len(s.Blocks), len(s.Corrupt))
	}
	if s.Corrupt[0].Offset != int64(starts[1]) {
		t.Errorf("corrupt offset = %d, want %d", s.Corrupt[0].Offset, starts[1])
	}

	_, err = Capture(buf, starts, l, Options{Strict: true})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("strict Capture error = %v, want ErrInvalidKind", err)
	}
}

func TestCaptureBadLayout(t *testing.T) {
	_, err := Capture(nil, nil, heap.Layout{PointerSize: 3}, Options{})
	if !errors.Is(err, ErrLayout) {
		t.Errorf("Capture error = %v, want ErrLayout", err)
	}
}

func TestCaptureHostBlocks(t *testing.T) {
	a := make(heap.Block, heap.BlockPrefixSize+8)
	a.InitAux(2, heap.KindImmVector)
	b := make(heap.Block, heap.BlockPrefixSize)
	b.Init(heap.KindHole)

	buf := append(append([]byte{}, a...), b...)
	s, err := Capture(buf, []int{0, len(a)}, heap.HostLayout, Options{})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if s.Blocks[0].Kind() != heap.KindImmVector || s.Blocks[1].Kind() != heap.KindHole {
		t.Errorf("kinds = %s, %s; want ImmVector, Hole", s.Blocks[0].Kind(), s.Blocks[1].Kind())
	}
}
