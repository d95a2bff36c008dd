package heap

import "fmt"

// Kind identifies the concrete representation of a heap block.
//
// Related kinds occupy contiguous values so that classification is a range
// check. Once assigned, values must NEVER be reordered: dispatch tables are
// indexed by them and the collection range is shared with CollectionType.
type Kind uint8

const (
	// Array representation aliases
	KindPacked Kind = iota
	KindStruct
	KindMixed
	KindEmpty
	KindApc // shared (cross-request) array
	KindGlobals
	KindProxy

	// Other ordinary refcounted heap objects
	KindString
	KindResource
	KindRef

	// Object-like kinds. KindObject..KindImmSet must stay contiguous.
	KindObject
	KindResumableObj
	KindAwaitAllWH

	// Built-in collections. Order is shared with CollectionType.
	KindVector
	KindMap
	KindSet
	KindPair
	KindImmVector
	KindImmMap
	KindImmSet

	KindResumableFrame // resumable node followed by frame and object
	KindNativeData     // native data header preceding an object body

	// Allocator-internal kinds
	KindSmallMalloc // small allocator block
	KindBigMalloc   // big allocator block
	KindBigObj      // big size-tracked object, valid header follows
	KindFree        // small block in a free list
	KindHole        // wasted space not in any free list
	KindDebug       // debug diagnostic header
)

// NumKinds is the number of kinds; it sizes tables indexed by Kind.
const NumKinds = int(KindDebug) + 1

// Range bounds for each contiguous group, inclusive.
const (
	FirstArrayKind      = KindPacked
	LastArrayKind       = KindProxy
	FirstObjectKind     = KindObject
	LastObjectKind      = KindImmSet
	FirstCollectionKind = KindVector
	LastCollectionKind  = KindImmSet
	FirstAllocatorKind  = KindSmallMalloc
	LastAllocatorKind   = KindDebug
)

var kindNames = [NumKinds]string{
	"Packed", "Struct", "Mixed", "Empty", "Apc", "Globals", "Proxy",
	"String", "Resource", "Ref",
	"Object", "ResumableObj", "AwaitAllWH",
	"Vector", "Map", "Set", "Pair", "ImmVector", "ImmMap", "ImmSet",
	"ResumableFrame",
	"NativeData",
	"SmallMalloc", "BigMalloc", "BigObj", "Free", "Hole", "Debug",
}

// String returns the kind's name, or Kind(n) for values outside the taxonomy.
func (k Kind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsValid reports whether k is a declared kind.
func (k Kind) IsValid() bool {
	return int(k) < NumKinds
}

// IsObject reports whether a block of kind k has an object layout
// (refcounted, with a class pointer).
func (k Kind) IsObject() bool {
	return k >= FirstObjectKind && k <= LastObjectKind
}

// IsArray reports whether k is one of the array representation aliases.
func (k Kind) IsArray() bool {
	return k <= LastArrayKind
}

// IsCollection reports whether k is a built-in collection kind.
func (k Kind) IsCollection() bool {
	return k >= FirstCollectionKind && k <= LastCollectionKind
}

// IsAllocatorInternal reports whether k is owned by the allocator rather than
// the object model.
func (k Kind) IsAllocatorInternal() bool {
	return k >= FirstAllocatorKind && k <= LastAllocatorKind
}

// Collection returns k as a CollectionType. The second result is false when
// k is not a collection kind.
func (k Kind) Collection() (CollectionType, bool) {
	if !k.IsCollection() {
		return 0, false
	}
	return CollectionType(k), true
}

// IsObjectKind reports whether k falls in the object-like range.
func IsObjectKind(k Kind) bool { return k.IsObject() }
