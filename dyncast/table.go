package dyncast

import (
	"fmt"
	"reflect"
	"slices"

	"dyncast-generator/own"
	"dyncast-generator/view"
)

// Row is one castable view of a concrete type S together with the deferred
// casts that produce it for every ownership kind.
type Row struct {
	id  view.ID
	ref any // refFn[T]
	box any // boxFn[T]
	rc  any // rcFn[T]
	arc any // arcFn[T]
}

// ID returns the view the row casts to.
func (r Row) ID() view.ID {
	return r.id
}

// Self returns the row for the concrete view of S.
func Self[S any]() Row {
	return View[S, S](view.None)
}

// View returns the row casting S to T qualified by ms. T must be S or an
// interface S implements; View panics otherwise.
func View[S, T any](ms view.MarkerSet) Row {
	st, tt := reflect.TypeFor[S](), reflect.TypeFor[T]()
	if st != tt && (tt.Kind() != reflect.Interface || !st.Implements(tt)) {
		panic(fmt.Sprintf("dyncast: %s does not implement %s", st, tt))
	}

	conv := func(s S) T {
		t, _ := any(s).(T)
		return t
	}

	return Row{
		id: view.OfType(tt, ms),
		ref: refFn[T](func(src any) (T, bool) {
			s, ok := own.Downcast[S](src)
			if !ok {
				var zero T
				return zero, false
			}

			return conv(s), true
		}),
		box: boxFn[T](func(src *own.Box[any]) (*own.Box[T], bool) {
			b, ok := own.DowncastBox[S](src)
			if !ok {
				return nil, false
			}

			return own.MapBox(b, conv), true
		}),
		rc: rcFn[T](func(src *own.Rc[any]) (*own.Rc[T], bool) {
			r, ok := own.DowncastRc[S](src)
			if !ok {
				return nil, false
			}

			return own.MapRc(r, conv), true
		}),
		arc: arcFn[T](func(src *own.Arc[any]) (*own.Arc[T], bool) {
			a, ok := own.DowncastArc[S](src)
			if !ok {
				return nil, false
			}

			return own.MapArc(a, conv), true
		}),
	}
}

// Table is the castable set of one concrete type: the ordered list of its
// views and a lookup from view ID to the row that produces it.
type Table struct {
	views []view.ID
	rows  map[view.ID]*Row
}

// NewTable builds a table from rows. If two rows share an ID the first one
// wins.
func NewTable(rows ...Row) *Table {
	t := &Table{
		views: make([]view.ID, 0, len(rows)),
		rows:  make(map[view.ID]*Row, len(rows)),
	}

	for i := range rows {
		id := rows[i].id
		if _, ok := t.rows[id]; ok {
			continue
		}

		t.rows[id] = &rows[i]
		t.views = append(t.views, id)
	}

	return t
}

// Contains reports whether to is in the table.
func (t *Table) Contains(to view.ID) bool {
	_, ok := t.rows[to]
	return ok
}

// Views returns the view IDs in declaration order.
func (t *Table) Views() []view.ID {
	return slices.Clone(t.views)
}

func (t *Table) Len() int {
	return len(t.views)
}

func (t *Table) Ref(src any, to view.ID) *RefResult {
	r, ok := t.rows[to]
	if !ok {
		return nil
	}

	return &RefResult{deferred: deferred{to: to, fn: r.ref}, src: src}
}

func (t *Table) Mut(src any, to view.ID) *MutResult {
	r, ok := t.rows[to]
	if !ok {
		return nil
	}

	return &MutResult{deferred: deferred{to: to, fn: r.ref}, src: src}
}

func (t *Table) Box(src *own.Box[any], to view.ID) *BoxResult {
	r, ok := t.rows[to]
	if !ok {
		return nil
	}

	return &BoxResult{deferred: deferred{to: to, fn: r.box}, src: src}
}

func (t *Table) Rc(src *own.Rc[any], to view.ID) *RcResult {
	r, ok := t.rows[to]
	if !ok {
		return nil
	}

	return &RcResult{deferred: deferred{to: to, fn: r.rc}, src: src}
}

func (t *Table) Arc(src *own.Arc[any], to view.ID) *ArcResult {
	r, ok := t.rows[to]
	if !ok {
		return nil
	}

	return &ArcResult{deferred: deferred{to: to, fn: r.arc}, src: src}
}
