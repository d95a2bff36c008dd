package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/chazu/heapkind/heap"
	"github.com/chazu/heapkind/manifest"
	"github.com/chazu/heapkind/snapshot"
)

var (
	groupColor = color.New(color.FgCyan).SprintFunc()
	kindColor  = color.New(color.Bold).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
)

// groupOf names the contiguous range k belongs to.
func groupOf(k heap.Kind) string {
	switch {
	case k.IsArray():
		return "array"
	case k >= heap.KindString && k <= heap.KindRef:
		return "refcounted"
	case k.IsCollection():
		return "collection"
	case k.IsObject():
		return "object"
	case k == heap.KindResumableFrame:
		return "frame"
	case k == heap.KindNativeData:
		return "native"
	case k.IsAllocatorInternal():
		return "allocator"
	}
	return "invalid"
}

// traits lists the classification predicates that hold for k.
func traits(k heap.Kind) string {
	var out []string
	if k.IsObject() {
		out = append(out, "object")
	}
	if c, ok := k.Collection(); ok {
		if c.IsMutable() {
			out = append(out, "mutable")
		} else {
			out = append(out, "immutable")
		}
		if c.AllowsIntStringKeys() {
			out = append(out, "keyed")
		}
	}
	return strings.Join(out, ",")
}

func printTable(w io.Writer) {
	fmt.Fprintf(w, "%-4s %-16s %-11s %s\n", "TAG", "KIND", "GROUP", "TRAITS")
	for i := 0; i < heap.NumKinds; i++ {
		k := heap.Kind(i)
		fmt.Fprintf(w, "%-4d %-16s %-11s %s\n", i, kindColor(k.String()), groupColor(groupOf(k)), traits(k))
	}
}

func printOffsets(w io.Writer, m *manifest.Manifest) {
	l := m.Layout()
	fmt.Fprintf(w, "target:        %s\n", m.Target.Name)
	fmt.Fprintf(w, "pointer size:  %d\n", l.PointerSize)
	fmt.Fprintf(w, "header offset: %d\n", l.HeaderOffset())
	fmt.Fprintf(w, "kind offset:   %d\n", l.KindOffset())
	fmt.Fprintf(w, "prefix size:   %d\n", l.PrefixSize())
}

// parseWord accepts decimal or 0x-prefixed hex.
func parseWord(s string, bits int) (uint64, error) {
	return strconv.ParseUint(s, 0, bits)
}

func printDecode(w io.Writer, s string) error {
	v, err := parseWord(s, 32)
	if err != nil {
		return fmt.Errorf("invalid header word %q: %w", s, err)
	}
	var h heap.HeaderWord
	h.SetWord(uint32(v))
	fmt.Fprintf(w, "word:  %#08x\n", h.Word())
	fmt.Fprintf(w, "kind:  %s (%d)\n", kindColor(h.Kind().String()), uint8(h.Kind()))
	fmt.Fprintf(w, "aux:   %#04x\n", h.Aux())
	fmt.Fprintf(w, "marks: %#02x\n", h.Marks())
	if !h.Kind().IsValid() {
		fmt.Fprintf(w, "%s kind byte is outside the taxonomy\n", warnColor("warning:"))
	}
	return nil
}

func printPack(w io.Writer, name string, aux uint) error {
	k, ok := heap.ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown kind %q", name)
	}
	if aux > 0xFFFF {
		return fmt.Errorf("aux %d does not fit in 16 bits", aux)
	}
	fmt.Fprintf(w, "%#08x\n", heap.PackAux(uint16(aux), k))
	return nil
}

func printCensus(w io.Writer, s *snapshot.Snapshot) {
	c := s.Census()
	fmt.Fprintf(w, "target %s, pointer size %d, %d blocks\n", s.Target, s.PointerSize, c.Total)
	for i := 0; i < heap.NumKinds; i++ {
		if c.Counts[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-16s %d\n", kindColor(heap.Kind(i).String()), c.Counts[i])
	}
	fmt.Fprintf(w, "objects: %d  mutable collections: %d  allocator: %d  marked: %d\n",
		c.Objects(), c.Mutable(), c.AllocatorInternal(), c.Marked)
	if len(s.Corrupt) > 0 {
		fmt.Fprintf(w, "%s %d corrupt blocks\n", warnColor("warning:"), len(s.Corrupt))
	}
}
