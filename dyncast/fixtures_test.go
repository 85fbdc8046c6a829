package dyncast_test

import (
	"fmt"

	"dyncast-generator/dyncast"
	"dyncast-generator/own"
	"dyncast-generator/view"
)

type Namer interface{ Name() string }

type Sizer interface{ Size() int }

type Unrelated interface{ Unrelated() }

// File declares Namer and Sizer with the default markers, laid out the way
// the generator emits it.
type File struct {
	name string
	size int
}

func (f *File) Name() string { return f.name }
func (f *File) Size() int    { return f.size }
func (f *File) Grow(n int)   { f.size += n }

var fileViews = func() *dyncast.Table {
	rows := []dyncast.Row{dyncast.Self[*File]()}
	for _, ms := range view.DefaultMarkers.Subsets() {
		rows = append(rows,
			dyncast.View[*File, any](ms),
			dyncast.View[*File, dyncast.Castable](ms),
			dyncast.View[*File, Namer](ms),
			dyncast.View[*File, Sizer](ms),
		)
	}

	return dyncast.NewTable(rows...)
}()

func (f *File) CanCast(to view.ID) bool   { return fileViews.Contains(to) }
func (f *File) CastableViews() []view.ID { return fileViews.Views() }

func (f *File) DispatchRef(to view.ID) *dyncast.RefResult { return fileViews.Ref(f, to) }
func (f *File) DispatchMut(to view.ID) *dyncast.MutResult { return fileViews.Mut(f, to) }

func (f *File) DispatchBox(src *own.Box[any], to view.ID) *dyncast.BoxResult {
	return fileViews.Box(src, to)
}

func (f *File) DispatchRc(src *own.Rc[any], to view.ID) *dyncast.RcResult {
	return fileViews.Rc(src, to)
}

func (f *File) DispatchArc(src *own.Arc[any], to view.ID) *dyncast.ArcResult {
	return fileViews.Arc(src, to)
}

// Local declares no interfaces and no markers, so it never qualifies for
// atomic sharing.
type Local struct{ id int }

var localViews = dyncast.NewTable(
	dyncast.Self[*Local](),
	dyncast.View[*Local, any](view.None),
	dyncast.View[*Local, dyncast.Castable](view.None),
)

func (l *Local) CanCast(to view.ID) bool   { return localViews.Contains(to) }
func (l *Local) CastableViews() []view.ID { return localViews.Views() }

func (l *Local) DispatchRef(to view.ID) *dyncast.RefResult { return localViews.Ref(l, to) }
func (l *Local) DispatchMut(to view.ID) *dyncast.MutResult { return localViews.Mut(l, to) }

func (l *Local) DispatchBox(src *own.Box[any], to view.ID) *dyncast.BoxResult {
	return localViews.Box(src, to)
}

func (l *Local) DispatchRc(src *own.Rc[any], to view.ID) *dyncast.RcResult {
	return localViews.Rc(src, to)
}

func (l *Local) DispatchArc(*own.Arc[any], view.ID) *dyncast.ArcResult { return nil }

// Liar claims Namer but dispatches a Sizer cast, and claims Sizer but
// dispatches nothing.
type Liar struct{}

func (*Liar) Name() string { return "liar" }
func (*Liar) Size() int    { return 0 }

func (l *Liar) CanCast(to view.ID) bool {
	return to == view.Of[Namer]() || to == view.Of[Sizer]()
}

func (l *Liar) CastableViews() []view.ID {
	return []view.ID{view.Of[Namer](), view.Of[Sizer]()}
}

func (l *Liar) DispatchRef(to view.ID) *dyncast.RefResult {
	if to == view.Of[Namer]() {
		return dyncast.NewRefResult[*Liar, Sizer](l, to)
	}

	return nil
}

func (l *Liar) DispatchMut(to view.ID) *dyncast.MutResult {
	return dyncast.NewMutResult[*Liar, Sizer](l, to)
}

func (l *Liar) DispatchBox(src *own.Box[any], to view.ID) *dyncast.BoxResult {
	return dyncast.NewBoxResult[*Liar, Sizer](src, to)
}

func (l *Liar) DispatchRc(src *own.Rc[any], to view.ID) *dyncast.RcResult {
	return dyncast.NewRcResult[*Liar, Sizer](src, to)
}

func (l *Liar) DispatchArc(src *own.Arc[any], to view.ID) *dyncast.ArcResult {
	return dyncast.NewArcResult[*Liar, Sizer](src, to)
}

func (f *File) String() string { return fmt.Sprintf("%s(%d)", f.name, f.size) }
