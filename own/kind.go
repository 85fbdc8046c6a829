package own

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is one of the five pointer/ownership flavors casting supports.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindRef // borrowed, immutable
	KindMut // borrowed, mutable
	KindBox // exclusively owned
	KindRc  // shared, single goroutine
	KindArc // shared, atomic

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota) - 1
)

// Kinds returns every ownership kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRef, KindMut, KindBox, KindRc, KindArc}
}

// IsShared reports whether handles of the kind are reference counted.
func (k Kind) IsShared() bool {
	return k == KindRc || k == KindArc
}

// IsOwned reports whether casting a handle of the kind moves ownership.
func (k Kind) IsOwned() bool {
	return k == KindBox || k.IsShared()
}

// Downcast is the primitive of the borrowed kinds: recover the exact type S
// from an erased value.
func Downcast[S any](v any) (S, bool) {
	s, ok := v.(S)
	return s, ok
}
