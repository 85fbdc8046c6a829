package dyncast

import (
	"dyncast-generator/own"
	"dyncast-generator/view"
)

// Castable is the dispatch protocol of an object that supports cross-casting.
//
// CanCast must report true exactly for the IDs returned by CastableViews, and
// for those IDs every Dispatch method must return a result that finalizes
// successfully with the view's type. The one exception is DispatchArc, which
// returns nil for every view when the object does not qualify for atomic
// sharing.
//
// The source passed to DispatchBox, DispatchRc and DispatchArc holds the
// receiver itself; dispatchers must not retain it.
type Castable interface {
	CanCast(to view.ID) bool
	CastableViews() []view.ID

	DispatchRef(to view.ID) *RefResult
	DispatchMut(to view.ID) *MutResult
	DispatchBox(src *own.Box[any], to view.ID) *BoxResult
	DispatchRc(src *own.Rc[any], to view.ID) *RcResult
	DispatchArc(src *own.Arc[any], to view.ID) *ArcResult
}
