package heap

import "testing"

var objectKinds = []Kind{
	KindObject, KindResumableObj, KindAwaitAllWH,
	KindVector, KindMap, KindSet, KindPair,
	KindImmVector, KindImmMap, KindImmSet,
}

func TestNumKinds(t *testing.T) {
	if NumKinds != int(KindDebug)+1 {
		t.Errorf("NumKinds = %d, want %d", NumKinds, int(KindDebug)+1)
	}
	if NumKinds != 28 {
		t.Errorf("NumKinds = %d, want 28", NumKinds)
	}
	if len(kindNames) != NumKinds {
		t.Errorf("len(kindNames) = %d, want %d", len(kindNames), NumKinds)
	}
}

// Values are part of the binary contract; pin a few so a reorder is caught.
func TestKindValues(t *testing.T) {
	tests := []struct {
		k    Kind
		want uint8
	}{
		{KindPacked, 0},
		{KindProxy, 6},
		{KindString, 7},
		{KindRef, 9},
		{KindObject, 10},
		{KindAwaitAllWH, 12},
		{KindVector, 13},
		{KindImmSet, 19},
		{KindResumableFrame, 20},
		{KindNativeData, 21},
		{KindSmallMalloc, 22},
		{KindDebug, 27},
	}
	for _, tt := range tests {
		if uint8(tt.k) != tt.want {
			t.Errorf("%s = %d, want %d", tt.k, uint8(tt.k), tt.want)
		}
	}
}

func TestIsObjectKind(t *testing.T) {
	want := make(map[Kind]bool)
	for _, k := range objectKinds {
		want[k] = true
	}
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		if got := IsObjectKind(k); got != want[k] {
			t.Errorf("IsObjectKind(%s) = %v, want %v", k, got, want[k])
		}
	}
}

func TestIsObjectKindBoundaries(t *testing.T) {
	if IsObjectKind(KindObject - 1) {
		t.Errorf("IsObjectKind(%s) = true, want false", KindObject-1)
	}
	if KindObject-1 != KindRef {
		t.Errorf("kind before Object = %s, want Ref", KindObject-1)
	}
	if IsObjectKind(KindImmSet + 1) {
		t.Errorf("IsObjectKind(%s) = true, want false", KindImmSet+1)
	}
	if KindImmSet+1 != KindResumableFrame {
		t.Errorf("kind after ImmSet = %s, want ResumableFrame", KindImmSet+1)
	}
}

func TestObjectRangeOrder(t *testing.T) {
	for i, k := range objectKinds {
		if k != FirstObjectKind+Kind(i) {
			t.Errorf("object range[%d] = %s, want %s", i, FirstObjectKind+Kind(i), k)
		}
	}
	if LastObjectKind != objectKinds[len(objectKinds)-1] {
		t.Errorf("LastObjectKind = %s, want ImmSet", LastObjectKind)
	}
}

func TestKindGroups(t *testing.T) {
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		groups := 0
		for _, in := range []bool{
			k.IsArray(),
			k >= KindString && k <= KindRef,
			k.IsObject(),
			k == KindResumableFrame,
			k == KindNativeData,
			k.IsAllocatorInternal(),
		} {
			if in {
				groups++
			}
		}
		if groups != 1 {
			t.Errorf("%s belongs to %d groups, want 1", k, groups)
		}
		if k.IsCollection() && !k.IsObject() {
			t.Errorf("%s is a collection outside the object range", k)
		}
	}
}

func TestKindIsValid(t *testing.T) {
	if !KindDebug.IsValid() {
		t.Error("KindDebug.IsValid() = false, want true")
	}
	if Kind(NumKinds).IsValid() {
		t.Errorf("Kind(%d).IsValid() = true, want false", NumKinds)
	}
	if Kind(0xFF).IsValid() {
		t.Error("Kind(255).IsValid() = true, want false")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindPacked, "Packed"},
		{KindAwaitAllWH, "AwaitAllWH"},
		{KindImmMap, "ImmMap"},
		{KindDebug, "Debug"},
		{Kind(200), "Kind(200)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(tt.k), got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %s, %v; want %s, true", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseKind("Dictionary"); ok {
		t.Error("ParseKind(\"Dictionary\") succeeded, want failure")
	}
}

func TestKindCollection(t *testing.T) {
	for i := 0; i < NumKinds; i++ {
		k := Kind(i)
		c, ok := k.Collection()
		if ok != k.IsCollection() {
			t.Errorf("%s.Collection() ok = %v, want %v", k, ok, k.IsCollection())
		}
		if ok && c.Kind() != k {
			t.Errorf("%s.Collection().Kind() = %s", k, c.Kind())
		}
	}
}
