package plugin_test

import (
	"dyncast-generator/dyncast"
	"dyncast-generator/own"
	"dyncast-generator/view"
)

type Text interface{ Text() string }

type Counter interface{ Count() int }

// tabled supplies the Castable methods of a test plugin from its table.
type tabled struct {
	self  any
	views *dyncast.Table
}

func (t tabled) CanCast(to view.ID) bool   { return t.views.Contains(to) }
func (t tabled) CastableViews() []view.ID { return t.views.Views() }

func (t tabled) DispatchRef(to view.ID) *dyncast.RefResult { return t.views.Ref(t.self, to) }
func (t tabled) DispatchMut(to view.ID) *dyncast.MutResult { return t.views.Mut(t.self, to) }

func (t tabled) DispatchBox(src *own.Box[any], to view.ID) *dyncast.BoxResult {
	return t.views.Box(src, to)
}

func (t tabled) DispatchRc(src *own.Rc[any], to view.ID) *dyncast.RcResult {
	return t.views.Rc(src, to)
}

func (t tabled) DispatchArc(src *own.Arc[any], to view.ID) *dyncast.ArcResult {
	return t.views.Arc(src, to)
}

type textPlugin struct {
	tabled
	text   string
	closed *[]string
}

var textViews = dyncast.NewTable(
	dyncast.Self[*textPlugin](),
	dyncast.View[*textPlugin, any](view.None),
	dyncast.View[*textPlugin, dyncast.Castable](view.None),
	dyncast.View[*textPlugin, Text](view.None),
	dyncast.View[*textPlugin, any](view.Set(view.Transfer)),
	dyncast.View[*textPlugin, dyncast.Castable](view.Set(view.Transfer)),
	dyncast.View[*textPlugin, Text](view.Set(view.Transfer)),
)

func newText(s string, closed *[]string) *textPlugin {
	p := &textPlugin{text: s, closed: closed}
	p.tabled = tabled{self: p, views: textViews}

	return p
}

func (p *textPlugin) Text() string { return p.text }

func (p *textPlugin) Close() error {
	if p.closed != nil {
		*p.closed = append(*p.closed, p.text)
	}

	return nil
}

type counterPlugin struct {
	tabled
	src Text
}

var counterViews = dyncast.NewTable(
	dyncast.Self[*counterPlugin](),
	dyncast.View[*counterPlugin, any](view.None),
	dyncast.View[*counterPlugin, dyncast.Castable](view.None),
	dyncast.View[*counterPlugin, Counter](view.None),
)

func newCounter(src Text) *counterPlugin {
	p := &counterPlugin{src: src}
	p.tabled = tabled{self: p, views: counterViews}

	return p
}

func (p *counterPlugin) Count() int { return len(p.src.Text()) }

// opaque implements Counter but declares no view of it.
type opaque struct{ tabled }

var opaqueViews = dyncast.NewTable(
	dyncast.Self[*opaque](),
	dyncast.View[*opaque, any](view.None),
)

func newOpaque() *opaque {
	p := &opaque{}
	p.tabled = tabled{self: p, views: opaqueViews}

	return p
}

func (*opaque) Count() int { return 0 }
