package view

import (
	"reflect"
	"strings"
)

var anyType = reflect.TypeFor[any]()

// ID identifies one castable view: a Go type optionally qualified by markers.
// IDs are comparable and are used directly as map keys.
type ID struct {
	Type    reflect.Type
	Markers MarkerSet
}

// Of returns the ID of the view T qualified by the given markers.
//
//	view.Of[*shapes.Square]()                            // the concrete type
//	view.Of[io.Reader]()                                 // a declared interface
//	view.Of[any](view.Transfer, view.Concurrent)         // qualified base view
func Of[T any](markers ...Marker) ID {
	return ID{Type: reflect.TypeFor[T](), Markers: Set(markers...)}
}

// OfType returns the ID of the view t qualified by ms.
func OfType(t reflect.Type, ms MarkerSet) ID {
	return ID{Type: t, Markers: ms & All}
}

// IsZero reports whether the ID names no view.
func (id ID) IsZero() bool {
	return id.Type == nil
}

// Bare returns the ID without markers.
func (id ID) Bare() ID {
	return ID{Type: id.Type}
}

// String renders the ID as "io.Reader+transfer+concurrent".
func (id ID) String() string {
	if id.Type == nil {
		return "<nil>"
	}

	name := id.Type.String()
	if id.Type == anyType {
		name = "any"
	}

	if id.Markers&All == None {
		return name
	}

	var sb strings.Builder
	sb.WriteString(name)
	for _, m := range id.Markers.Markers() {
		sb.WriteString("+")
		sb.WriteString(m.Name())
	}

	return sb.String()
}
