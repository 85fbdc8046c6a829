package view

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Marker -output=marker_string.go

// Marker is a structural safety qualifier that can be combined with a view.
// Markers are declarative: they are asserted by whoever declares the views
// of a concrete type and are never verified at run time.
type Marker uint8

const (
	_ Marker = iota // skip zero value, use it as an invalid marker

	Transfer        // the object may be handed off to another goroutine
	Concurrent      // the object may be accessed from several goroutines at once
	Relocatable     // the object does not depend on its own address
	PanicSafe       // the object stays consistent when a panic unwinds through a mutation
	SharedPanicSafe // shared access stays consistent when a panic unwinds through it

	// MarkerTotal is a constant that represents the total number of markers defined
	MarkerTotal = int(iota) - 1
)

var markerNames = [...]string{
	Transfer:        "transfer",
	Concurrent:      "concurrent",
	Relocatable:     "relocatable",
	PanicSafe:       "panic-safe",
	SharedPanicSafe: "shared-panic-safe",
}

// ErrUnknownMarker is returned by ParseMarker for unrecognized names.
var ErrUnknownMarker = errors.New("unknown marker")

// IsValid reports whether m is one of the recognized markers.
func (m Marker) IsValid() bool {
	return m >= Transfer && int(m) <= MarkerTotal
}

// Name returns the directive spelling of the marker (e.g. "panic-safe").
func (m Marker) Name() string {
	if !m.IsValid() {
		return m.String()
	}

	return markerNames[m]
}

func (m Marker) bit() MarkerSet {
	return 1 << (m - 1)
}

// Markers returns every recognized marker in declaration order.
func Markers() []Marker {
	out := make([]Marker, 0, MarkerTotal)
	for m := Transfer; int(m) <= MarkerTotal; m++ {
		out = append(out, m)
	}

	return out
}

// MarkerNames returns the directive spellings of every recognized marker.
func MarkerNames() []string {
	out := make([]string, 0, MarkerTotal)
	for _, m := range Markers() {
		out = append(out, m.Name())
	}

	return out
}

// ParseMarker parses the directive spelling of a marker.
// The Go constant name (e.g. "PanicSafe") is accepted as well.
func ParseMarker(name string) (Marker, error) {
	for _, m := range Markers() {
		if name == m.Name() || name == m.String() {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownMarker, name)
}

// MarkerSet is a set of markers stored as a bitmask.
type MarkerSet uint8

const (
	// None is the empty marker set.
	None MarkerSet = 0

	// All is the set of every recognized marker.
	All MarkerSet = (1 << MarkerTotal) - 1
)

// DefaultMarkers is used when a declaration omits the markers option entirely.
var DefaultMarkers = Set(Transfer, Concurrent)

// SharedAtomic is the marker combination an object must carry before it can
// be cast through atomically shared handles.
var SharedAtomic = Set(Transfer, Concurrent)

// Set builds a MarkerSet from the given markers. Invalid markers are ignored.
func Set(markers ...Marker) MarkerSet {
	var s MarkerSet
	for _, m := range markers {
		if m.IsValid() {
			s |= m.bit()
		}
	}

	return s
}

// Has reports whether m is in the set.
func (s MarkerSet) Has(m Marker) bool {
	return m.IsValid() && s&m.bit() != 0
}

// Contains reports whether every marker of other is in s.
func (s MarkerSet) Contains(other MarkerSet) bool {
	return s&other == other
}

// With returns the union of s and the given markers.
func (s MarkerSet) With(markers ...Marker) MarkerSet {
	return s | Set(markers...)
}

// Len returns the number of markers in the set.
func (s MarkerSet) Len() int {
	n := 0
	for v := s & All; v != 0; v &= v - 1 {
		n++
	}

	return n
}

// Markers returns the markers of the set in declaration order.
func (s MarkerSet) Markers() []Marker {
	var out []Marker
	for _, m := range Markers() {
		if s.Has(m) {
			out = append(out, m)
		}
	}

	return out
}

// Subsets returns the power set of s: 2^Len() sets, ascending by bitmask,
// starting with None and ending with s itself.
func (s MarkerSet) Subsets() []MarkerSet {
	s &= All
	out := make([]MarkerSet, 0, 1<<s.Len())

	// Enumerate submasks of s in ascending order.
	sub := None
	for {
		out = append(out, sub)
		if sub == s {
			return out
		}

		sub = (sub - s) & s
	}
}

// String renders the set as "transfer+concurrent", or "none" when empty.
func (s MarkerSet) String() string {
	if s&All == None {
		return "none"
	}

	names := make([]string, 0, s.Len())
	for _, m := range s.Markers() {
		names = append(names, m.Name())
	}

	return strings.Join(names, "+")
}
