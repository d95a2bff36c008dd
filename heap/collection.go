package heap

import "fmt"

// CollectionType is the subset of Kind covering the built-in collections.
// Each value is numerically identical to its Kind, so a stored kind byte
// can be read as either without translation.
type CollectionType uint8

// Values must stay contiguous; iterator dispatch tables are indexed by them.
const (
	CollectionVector    = CollectionType(KindVector)
	CollectionMap       = CollectionType(KindMap)
	CollectionSet       = CollectionType(KindSet)
	CollectionPair      = CollectionType(KindPair)
	CollectionImmVector = CollectionType(KindImmVector)
	CollectionImmMap    = CollectionType(KindImmMap)
	CollectionImmSet    = CollectionType(KindImmSet)
)

// NumCollectionTypes is the number of collection types.
const NumCollectionTypes = int(CollectionImmSet-CollectionVector) + 1

// Kind returns the Kind with the same numeric value.
func (c CollectionType) Kind() Kind { return Kind(c) }

// String returns the name of the matching Kind.
func (c CollectionType) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("CollectionType(%d)", uint8(c))
	}
	return Kind(c).String()
}

// IsValid reports whether c is one of the seven collection types. Values
// from less-trusted paths should be checked with it before using the other
// predicates.
func (c CollectionType) IsValid() bool {
	return c >= CollectionVector && c <= CollectionImmSet
}

// IsVector reports whether c is Vector or ImmVector.
func (c CollectionType) IsVector() bool {
	return c == CollectionVector || c == CollectionImmVector
}

// IsMap reports whether c is Map or ImmMap.
func (c CollectionType) IsMap() bool {
	return c == CollectionMap || c == CollectionImmMap
}

// IsSet reports whether c is Set or ImmSet.
func (c CollectionType) IsSet() bool {
	return c == CollectionSet || c == CollectionImmSet
}

// IsMutable reports whether c is Vector, Map or Set.
func (c CollectionType) IsMutable() bool {
	return c == CollectionVector || c == CollectionMap || c == CollectionSet
}

// IsImmutable is the negation of IsMutable. It does not check IsValid, so
// an out-of-range value reports true.
func (c CollectionType) IsImmutable() bool {
	return !c.IsMutable()
}

// AllowsIntStringKeys reports whether c is keyed by arbitrary int or string
// keys (maps and sets). Vectors and pairs are indexed by position only.
func (c CollectionType) AllowsIntStringKeys() bool {
	return c.IsSet() || c.IsMap()
}

// Package-level forms of the CollectionType predicates, for call sites that
// dispatch on a function value.

// IsValidCollection reports whether c is one of the seven collection types.
func IsValidCollection(c CollectionType) bool { return c.IsValid() }

// IsVectorCollection reports whether c is Vector or ImmVector.
func IsVectorCollection(c CollectionType) bool { return c.IsVector() }

// IsMapCollection reports whether c is Map or ImmMap.
func IsMapCollection(c CollectionType) bool { return c.IsMap() }

// IsSetCollection reports whether c is Set or ImmSet.
func IsSetCollection(c CollectionType) bool { return c.IsSet() }

// IsMutableCollection reports whether c is Vector, Map or Set.
func IsMutableCollection(c CollectionType) bool { return c.IsMutable() }

// IsImmutableCollection is the negation of IsMutableCollection; it does not
// validate c.
func IsImmutableCollection(c CollectionType) bool { return c.IsImmutable() }

// CollectionAllowsIntStringKeys reports whether c is a map or set.
func CollectionAllowsIntStringKeys(c CollectionType) bool { return c.AllowsIntStringKeys() }
