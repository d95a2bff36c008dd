package heap

import (
	"encoding/binary"
	"unsafe"
)

// PointerSize is the width of a native pointer on the host.
const PointerSize = unsafe.Sizeof(uintptr(0))

// Block-relative offsets. They are the same for every kind, which is what
// lets a scanner read the kind of a block it knows nothing else about.
const (
	// HeaderOffset is where the HeaderWord starts. The first word of a
	// block is reserved for a native control word (vtable-like pointer or
	// refcount).
	HeaderOffset = PointerSize

	// KindOffset is where the Kind byte sits.
	KindOffset = HeaderOffset + unsafe.Offsetof(HeaderWord{}.kind)

	// BlockPrefixSize is the number of bytes every block reserves before
	// its kind-specific payload.
	BlockPrefixSize = HeaderOffset + HeaderSize
)

// HeaderAt returns the header of the block starting at p.
//
// This and KindAt are the only places raw block offsets are applied. p must
// point to the start of a live block with at least BlockPrefixSize bytes.
func HeaderAt(p unsafe.Pointer) *HeaderWord {
	return (*HeaderWord)(unsafe.Add(p, HeaderOffset))
}

// KindAt returns the kind of the block starting at p.
func KindAt(p unsafe.Pointer) Kind {
	return *(*Kind)(unsafe.Add(p, KindOffset))
}

// Layout describes blocks of a target whose pointer width or byte order may
// differ from the host's. Tooling that inspects heaps captured elsewhere uses
// it; code running on the host should use the constants above.
//
// Byte order only affects the aux bytes. The kind and mark bytes sit at the
// same offsets on every target.
type Layout struct {
	PointerSize int
	BigEndian   bool
}

// HostBigEndian reports whether the host stores integers big-endian.
var HostBigEndian = binary.NativeEndian.Uint16([]byte{0, 1}) == 1

// HostLayout is the layout of blocks on the running host.
var HostLayout = Layout{PointerSize: int(PointerSize), BigEndian: HostBigEndian}

// Valid reports whether l has a supported pointer width.
func (l Layout) Valid() bool {
	return l.PointerSize == 4 || l.PointerSize == 8
}

// HeaderOffset returns where the HeaderWord starts in a block of l.
func (l Layout) HeaderOffset() int { return l.PointerSize }

// KindOffset returns where the Kind byte sits in a block of l.
func (l Layout) KindOffset() int {
	return l.PointerSize + int(unsafe.Offsetof(HeaderWord{}.kind))
}

// PrefixSize returns the bytes every block of l reserves before its payload.
func (l Layout) PrefixSize() int { return l.PointerSize + HeaderSize }

// Kind reads the kind byte of block b.
func (l Layout) Kind(b []byte) Kind {
	return Kind(b[l.KindOffset()])
}

func (l Layout) byteOrder() binary.ByteOrder {
	if l.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Header reads the header of block b. The aux bytes are decoded in the
// target's byte order.
func (l Layout) Header(b []byte) HeaderWord {
	h := b[l.HeaderOffset() : l.HeaderOffset()+HeaderSize]
	return HeaderWord{
		aux:   l.byteOrder().Uint16(h[0:2]),
		kind:  Kind(h[2]),
		marks: h[3],
	}
}

// PutHeader writes hdr into block b.
func (l Layout) PutHeader(b []byte, hdr HeaderWord) {
	h := b[l.HeaderOffset() : l.HeaderOffset()+HeaderSize]
	l.byteOrder().PutUint16(h[0:2], hdr.aux)
	h[2] = byte(hdr.kind)
	h[3] = hdr.marks
}

// Block is the byte view of a host heap block, starting at its native
// control word. It must be at least BlockPrefixSize long.
type Block []byte

// Header reads the header of b.
func (b Block) Header() HeaderWord { return HostLayout.Header(b) }

// Kind reads the kind byte of b at the fixed KindOffset.
func (b Block) Kind() Kind { return Kind(b[KindOffset]) }

// Init writes a header holding only kind.
func (b Block) Init(kind Kind) {
	var h HeaderWord
	h.Init(kind)
	HostLayout.PutHeader(b, h)
}

// InitAux writes a header holding aux and kind.
func (b Block) InitAux(aux uint16, kind Kind) {
	var h HeaderWord
	h.InitAux(aux, kind)
	HostLayout.PutHeader(b, h)
}

// SetMarks rewrites the mark byte of b.
func (b Block) SetMarks(m uint8) {
	b[HeaderOffset+3] = m
}
