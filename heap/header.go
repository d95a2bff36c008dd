package heap

import (
	"fmt"
	"unsafe"
)

// HeaderWord is the 4-byte header embedded in every heap block.
//
// Memory layout (byte offsets within the header):
//
//	0-1  aux    kind-specific payload (capacity hint, flags, ...)
//	2    kind   Kind tag
//	3    marks  collector-owned mark bits
//
// The packed uint32 view puts aux in bits 0-15, kind in bits 16-23 and marks
// in bits 24-31. Word and SetWord convert between the two with explicit
// shifts rather than reinterpreting memory, so the field values match on
// every host. The raw bytes of a HeaderWord are the native encoding of Word
// only on little-endian hosts; on a big-endian host they differ.
//
// aux and kind are written once when the block is constructed. Mark bits may
// be rewritten later; callers that touch them concurrently must provide their
// own synchronization.
type HeaderWord struct {
	aux   uint16
	kind  Kind
	marks uint8
}

// HeaderSize is the size of a HeaderWord in bytes.
const HeaderSize = 4

// Bit positions of each field in the packed word.
const (
	auxShift   = 8 * unsafe.Offsetof(HeaderWord{}.aux)
	kindShift  = 8 * unsafe.Offsetof(HeaderWord{}.kind)
	marksShift = 8 * unsafe.Offsetof(HeaderWord{}.marks)

	auxMask   uint32 = 0xFFFF << auxShift
	kindMask  uint32 = 0xFF << kindShift
	marksMask uint32 = 0xFF << marksShift
)

// Compile-time layout checks. Each array length underflows, and the build
// fails, if the field layout drifts from the binary contract.
var (
	_ [unsafe.Sizeof(HeaderWord{}) - HeaderSize]struct{}
	_ [HeaderSize - unsafe.Sizeof(HeaderWord{})]struct{}
	_ [unsafe.Sizeof(HeaderWord{}.aux) - 2]struct{}
	_ [2 - unsafe.Sizeof(HeaderWord{}.aux)]struct{}
	_ [unsafe.Offsetof(HeaderWord{}.kind) - 2]struct{}
	_ [2 - unsafe.Offsetof(HeaderWord{}.kind)]struct{}
	_ [unsafe.Offsetof(HeaderWord{}.marks) - 3]struct{}
	_ [3 - unsafe.Offsetof(HeaderWord{}.marks)]struct{}
)

// Aux is the set of types accepted for the aux field. Only 2-byte types
// satisfy it, so a wider payload is rejected by the compiler.
type Aux interface {
	~uint16 | ~int16
}

// Pack returns the packed encoding of a header with only the kind set.
func Pack(kind Kind) uint32 {
	return uint32(kind) << kindShift
}

// PackAux returns the packed encoding of a header with aux and kind set.
// aux is stored by bit pattern, so negative int16 values round-trip.
func PackAux[T Aux](aux T, kind Kind) uint32 {
	return Pack(kind) | uint32(uint16(aux))<<auxShift
}

// Unpack splits a packed header into its aux and kind fields.
func Unpack(w uint32) (aux uint16, kind Kind) {
	return uint16((w & auxMask) >> auxShift), Kind((w & kindMask) >> kindShift)
}

// UnpackMarks returns the mark bits of a packed header.
func UnpackMarks(w uint32) uint8 {
	return uint8((w & marksMask) >> marksShift)
}

// Init overwrites h with the encoding of kind. Aux and marks are cleared.
func (h *HeaderWord) Init(kind Kind) {
	h.SetWord(Pack(kind))
}

// InitAux overwrites h with the encoding of aux and kind. Marks are cleared.
func (h *HeaderWord) InitAux(aux uint16, kind Kind) {
	h.SetWord(PackAux(aux, kind))
}

// Word returns the packed uint32 view of h.
func (h HeaderWord) Word() uint32 {
	return uint32(h.aux)<<auxShift | uint32(h.kind)<<kindShift | uint32(h.marks)<<marksShift
}

// SetWord replaces all three fields of h from a packed word.
func (h *HeaderWord) SetWord(w uint32) {
	h.aux, h.kind = Unpack(w)
	h.marks = UnpackMarks(w)
}

// Aux returns the kind-specific payload.
func (h HeaderWord) Aux() uint16 { return h.aux }

// Kind returns the kind tag.
func (h HeaderWord) Kind() Kind { return h.kind }

// Marks returns the collector-owned mark bits.
func (h HeaderWord) Marks() uint8 { return h.marks }

// SetMarks replaces the mark bits, leaving aux and kind untouched.
func (h *HeaderWord) SetMarks(m uint8) {
	h.marks = m
}

// String formats h as "<kind> aux=0x.... marks=0x..".
func (h HeaderWord) String() string {
	return fmt.Sprintf("%s aux=%#04x marks=%#02x", h.kind, h.aux, h.marks)
}
