package dyncast

import (
	"dyncast-generator/own"
	"dyncast-generator/view"
)

// sharedAtomic is the view an object must declare to be cast as an Arc.
var sharedAtomic = view.Of[any](view.Transfer, view.Concurrent)

// castable recovers the Castable object held by a handle of any static view.
func castable[S any](v S, ok bool) (Castable, bool) {
	if !ok {
		return nil, false
	}

	obj, ok := any(v).(Castable)

	return obj, ok
}

// CanCast reports whether obj can be viewed as T qualified by markers.
func CanCast[T any](obj Castable, markers ...view.Marker) bool {
	if obj == nil {
		return false
	}

	return obj.CanCast(view.Of[T](markers...))
}

// Views lists every view obj can be cast to.
func Views(obj Castable) []view.ID {
	if obj == nil {
		return nil
	}

	return obj.CastableViews()
}

// CastRef views obj as T.
func CastRef[T any](obj Castable, markers ...view.Marker) (T, bool) {
	var zero T

	to := view.Of[T](markers...)
	if obj == nil || !obj.CanCast(to) {
		return zero, false
	}

	v, ok := FinalizeRef[T](obj.DispatchRef(to))
	if !ok {
		panic(violation(own.KindRef, to, "declared view produced nothing"))
	}

	return v, true
}

// CastMut views obj as T for mutation.
func CastMut[T any](obj Castable, markers ...view.Marker) (T, bool) {
	var zero T

	to := view.Of[T](markers...)
	if obj == nil || !obj.CanCast(to) {
		return zero, false
	}

	v, ok := FinalizeMut[T](obj.DispatchMut(to))
	if !ok {
		panic(violation(own.KindMut, to, "declared view produced nothing"))
	}

	return v, true
}

// CastBox moves the object owned by b into a box of T. b may hold any view of
// a Castable object, including an interface view from an earlier cast. If the
// object does not declare the view, b is left untouched and still owns it.
func CastBox[T, S any](b *own.Box[S], markers ...view.Marker) (*own.Box[T], bool) {
	obj, ok := castable[S](b.Get())
	if !ok {
		return nil, false
	}

	to := view.Of[T](markers...)
	if !obj.CanCast(to) {
		return nil, false
	}

	out, ok := FinalizeBox[T](obj.DispatchBox(own.EraseBox(b), to))
	if !ok {
		panic(violation(own.KindBox, to, "declared view produced nothing"))
	}

	return out, true
}

// CastRc moves the reference held by r into a reference of T. The count is
// unchanged. If the object does not declare the view, r is left untouched.
func CastRc[T, S any](r *own.Rc[S], markers ...view.Marker) (*own.Rc[T], bool) {
	obj, ok := castable[S](r.Get())
	if !ok {
		return nil, false
	}

	to := view.Of[T](markers...)
	if !obj.CanCast(to) {
		return nil, false
	}

	out, ok := FinalizeRc[T](obj.DispatchRc(own.EraseRc(r), to))
	if !ok {
		panic(violation(own.KindRc, to, "declared view produced nothing"))
	}

	return out, true
}

// CastArc is CastRc for atomically counted references. Only objects that
// declare both the transfer and concurrent markers can be cast this way.
func CastArc[T, S any](a *own.Arc[S], markers ...view.Marker) (*own.Arc[T], bool) {
	obj, ok := castable[S](a.Get())
	if !ok {
		return nil, false
	}

	to := view.Of[T](markers...)
	if !obj.CanCast(to) || !obj.CanCast(sharedAtomic) {
		return nil, false
	}

	out, ok := FinalizeArc[T](obj.DispatchArc(own.EraseArc(a), to))
	if !ok {
		panic(violation(own.KindArc, to, "declared view produced nothing"))
	}

	return out, true
}
