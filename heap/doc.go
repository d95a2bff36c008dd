// Package heap implements the heap block header tagging scheme.
//
// Every heap-allocated block starts with a native control word followed by a
// 4-byte HeaderWord. The header carries:
//   - a 2-byte auxiliary field whose meaning depends on the kind
//   - a 1-byte Kind tag
//   - a 1-byte set of mark bits owned by the collector
//
// Because the header sits at the same offset in every block, the kind of any
// block can be read from a raw pointer without knowing its concrete type.
// See KindOffset and KindAt.
package heap
