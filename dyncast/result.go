package dyncast

import (
	"reflect"

	"dyncast-generator/own"
	"dyncast-generator/view"
)

// deferred is the part shared by every result wrapper: the target view and
// the stored cast function, typed by the view's Go type and kept as any so
// dispatch needs no type parameters.
type deferred struct {
	to   view.ID
	fn   any
	used bool
}

// To returns the view the result was dispatched for.
func (d *deferred) To() view.ID {
	return d.to
}

// take hands out the stored function once, asserting its shape.
func take[F any](d *deferred, kind own.Kind) F {
	if d.used {
		panic(violation(kind, d.to, "result finalized twice"))
	}

	d.used = true

	f, ok := d.fn.(F)
	if !ok {
		panic(violation(kind, d.to, "deferred cast is %T, finalized as %s", d.fn, reflect.TypeFor[F]()))
	}

	return f
}

// RefResult is a pending cast of a borrowed object.
type RefResult struct {
	deferred
	src any
}

// MutResult is a pending cast of a mutably borrowed object.
type MutResult struct {
	deferred
	src any
}

// BoxResult is a pending cast of an owned object. It holds the source box
// until finalized.
type BoxResult struct {
	deferred
	src *own.Box[any]
}

// RcResult is a pending cast of a reference-counted object.
type RcResult struct {
	deferred
	src *own.Rc[any]
}

// ArcResult is a pending cast of an atomically reference-counted object.
type ArcResult struct {
	deferred
	src *own.Arc[any]
}

type (
	refFn[T any] func(any) (T, bool)
	boxFn[T any] func(*own.Box[any]) (*own.Box[T], bool)
	rcFn[T any]  func(*own.Rc[any]) (*own.Rc[T], bool)
	arcFn[T any] func(*own.Arc[any]) (*own.Arc[T], bool)
)

// FinalizeRef completes a pending cast as T. A nil result finalizes to
// (zero, false).
func FinalizeRef[T any](r *RefResult) (T, bool) {
	if r == nil {
		var zero T
		return zero, false
	}

	return take[refFn[T]](&r.deferred, own.KindRef)(r.src)
}

// FinalizeMut completes a pending mutable cast as T.
func FinalizeMut[T any](r *MutResult) (T, bool) {
	if r == nil {
		var zero T
		return zero, false
	}

	return take[refFn[T]](&r.deferred, own.KindMut)(r.src)
}

// FinalizeBox completes a pending owned cast. On success the source box is
// moved into the returned one.
func FinalizeBox[T any](r *BoxResult) (*own.Box[T], bool) {
	if r == nil {
		return nil, false
	}

	return take[boxFn[T]](&r.deferred, own.KindBox)(r.src)
}

// FinalizeRc completes a pending reference-counted cast. The counted
// reference moves to the result; the count is unchanged.
func FinalizeRc[T any](r *RcResult) (*own.Rc[T], bool) {
	if r == nil {
		return nil, false
	}

	return take[rcFn[T]](&r.deferred, own.KindRc)(r.src)
}

// FinalizeArc completes a pending atomically reference-counted cast.
func FinalizeArc[T any](r *ArcResult) (*own.Arc[T], bool) {
	if r == nil {
		return nil, false
	}

	return take[arcFn[T]](&r.deferred, own.KindArc)(r.src)
}

// NewRefResult builds the pending cast of src from S to T for a hand-written
// dispatcher.
func NewRefResult[S, T any](src any, to view.ID) *RefResult {
	row := View[S, T](to.Markers)
	return &RefResult{deferred: deferred{to: to, fn: row.ref}, src: src}
}

// NewMutResult is the mutable counterpart of NewRefResult.
func NewMutResult[S, T any](src any, to view.ID) *MutResult {
	row := View[S, T](to.Markers)
	return &MutResult{deferred: deferred{to: to, fn: row.ref}, src: src}
}

func NewBoxResult[S, T any](src *own.Box[any], to view.ID) *BoxResult {
	row := View[S, T](to.Markers)
	return &BoxResult{deferred: deferred{to: to, fn: row.box}, src: src}
}

func NewRcResult[S, T any](src *own.Rc[any], to view.ID) *RcResult {
	row := View[S, T](to.Markers)
	return &RcResult{deferred: deferred{to: to, fn: row.rc}, src: src}
}

func NewArcResult[S, T any](src *own.Arc[any], to view.ID) *ArcResult {
	row := View[S, T](to.Markers)
	return &ArcResult{deferred: deferred{to: to, fn: row.arc}, src: src}
}
